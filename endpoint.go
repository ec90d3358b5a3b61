package endpoints

import (
	"context"
	"reflect"
)

// Endpoint is the capability every mappable HTTP operation implements.
// Routes is the routing hook: it must attach one or more routes to reg,
// typically through the Map helpers below.
//
// Routes is invoked once per resolved instance per call to MapEndpoints.
// Mapping only makes sense on a live, container-resolved instance.
type Endpoint interface {
	Routes(reg Registrar)
}

// Grouped is optionally implemented by endpoints that want their routes
// nested under a path prefix. MapEndpoints creates a fresh route group per
// grouped endpoint; endpoints sharing a prefix do not share a group.
type Grouped interface {
	GroupPrefix() string
}

// GroupConfigurer is optionally implemented by grouped endpoints to
// configure the owning group (middleware, tags) before routes attach.
// ConfigureGroup runs exactly once per MapEndpoints call, before Routes.
type GroupConfigurer interface {
	ConfigureGroup(g *Group)
}

// ParameterBound is optionally implemented by endpoints whose request type
// binds from path, query, and form values treated as flattened parameters
// instead of from the message body. The switch is read once at mapping time;
// it is a static property of the endpoint type, not request-scoped.
type ParameterBound interface {
	RequestFromParams() bool
}

// The four endpoint handler shapes. Each embeds Endpoint, so a concrete
// endpoint type satisfies exactly one shape plus the routing hook. Handlers
// are dispatched concurrently by the server and must be safe for concurrent
// use; the request context carries cancellation and must be honored.

// Action handles a request with no typed request and no typed response.
// The returned value is encoded as-is: nil writes the route status only,
// a StatusCoder picks its own status, anything else is JSON.
type Action interface {
	Endpoint
	Handle(ctx context.Context) (any, error)
}

// RequestAction handles a typed request and returns a generic result.
type RequestAction[Req any] interface {
	Endpoint
	Handle(ctx context.Context, req *Req) (any, error)
}

// Responder handles a request with no typed request and a typed response.
type Responder[Resp any] interface {
	Endpoint
	Handle(ctx context.Context) (*Resp, error)
}

// Exchange handles a typed request and returns a typed response.
type Exchange[Req, Resp any] interface {
	Endpoint
	Handle(ctx context.Context, req *Req) (*Resp, error)
}

// MapAction attaches an Action endpoint to reg under method and pattern.
func MapAction(reg Registrar, method, pattern string, e Action, opts ...RouteOption) {
	register(reg, method, pattern, nil, func(ctx context.Context, _ *Void) (any, error) {
		return e.Handle(ctx)
	}, endpointOpts(e, opts)...)
}

// MapRequestAction attaches a RequestAction endpoint to reg.
func MapRequestAction[Req any](reg Registrar, method, pattern string, e RequestAction[Req], opts ...RouteOption) {
	register(reg, method, pattern, nil, e.Handle, endpointOpts(e, opts)...)
}

// MapResponder attaches a Responder endpoint to reg.
func MapResponder[Resp any](reg Registrar, method, pattern string, e Responder[Resp], opts ...RouteOption) {
	register(reg, method, pattern, reflect.TypeFor[Resp](), func(ctx context.Context, _ *Void) (any, error) {
		return deref(e.Handle(ctx))
	}, endpointOpts(e, opts)...)
}

// MapExchange attaches an Exchange endpoint to reg.
func MapExchange[Req, Resp any](reg Registrar, method, pattern string, e Exchange[Req, Resp], opts ...RouteOption) {
	register(reg, method, pattern, reflect.TypeFor[Resp](), func(ctx context.Context, req *Req) (any, error) {
		return deref(e.Handle(ctx, req))
	}, endpointOpts(e, opts)...)
}

// deref boxes a typed response into any without producing a typed-nil
// interface value for nil responses.
func deref[Resp any](resp *Resp, err error) (any, error) {
	if resp == nil {
		return nil, err
	}
	return resp, err
}

// endpointOpts prepends options derived from the endpoint's static
// capabilities. The ParameterBound switch is read here, once per map call.
func endpointOpts(e Endpoint, opts []RouteOption) []RouteOption {
	if pb, ok := e.(ParameterBound); ok && pb.RequestFromParams() {
		return append([]RouteOption{WithRequestFromParams()}, opts...)
	}
	return opts
}
