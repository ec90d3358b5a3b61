// Package endpoints lets HTTP APIs be declared one type per operation. A
// concrete endpoint type carries its own handler logic, its routing hook,
// and (optionally) the route group it lives under — the package discovers
// endpoint types, registers them in a small constructor-injection container,
// and wires resolved instances into a router built on http.ServeMux.
//
// An endpoint implements the Endpoint interface plus one of four handler
// shapes (Action, RequestAction, Responder, Exchange):
//
//	type GetUser struct {
//	    store *UserStore
//	}
//
//	func (e *GetUser) Handle(ctx context.Context, req *GetUserRequest) (*User, error) {
//	    return e.store.Find(ctx, req.ID)
//	}
//
//	func (e *GetUser) Routes(reg endpoints.Registrar) {
//	    endpoints.MapExchange(reg, http.MethodGet, "/users/{id}", e)
//	}
//
// Endpoints are registered through a Container and mapped in bulk:
//
//	c := endpoints.NewContainer()
//	_ = c.Provide(NewUserStore, endpoints.Singleton)
//	if err := endpoints.RegisterEndpoints(c, endpoints.Transient, NewGetUser, NewListUsers); err != nil {
//	    log.Fatal(err)
//	}
//
//	r := endpoints.New()
//	if _, err := endpoints.MapEndpoints(r, c); err != nil {
//	    log.Fatal(err)
//	}
//
// Endpoint types may also announce themselves from init functions and be
// picked up by RegisterDiscovered, which scans the announcement registry
// instead of taking an explicit constructor list.
//
// Request types use struct tags for parameter binding and a Body field for
// request bodies, or bind entirely from path/query/form values when the
// endpoint implements ParameterBound:
//
//	type GetUserRequest struct {
//	    ID             string `path:"id"`
//	    IncludeDetails bool   `query:"includedetails"`
//	}
//
// Middleware uses the standard func(http.Handler) http.Handler signature,
// so the entire Go middleware ecosystem works natively, both globally and
// per route group.
package endpoints
