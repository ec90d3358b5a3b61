package endpoints

import (
	"net/http"
	"reflect"
)

// routeInfo holds metadata for a registered route, used for request
// dispatch and the route manifest.
type routeInfo struct {
	method  string
	pattern string
	summary string
	desc    string
	tags    []string

	status     int
	fromParams bool

	reqType  reflect.Type
	respType reflect.Type

	handler http.Handler
}

// RouteOption configures a route at registration time.
type RouteOption func(*routeInfo)

// WithStatus sets the default HTTP status code for the response.
func WithStatus(code int) RouteOption {
	return func(ri *routeInfo) {
		ri.status = code
	}
}

// WithSummary sets the manifest summary for the route.
func WithSummary(s string) RouteOption {
	return func(ri *routeInfo) {
		ri.summary = s
	}
}

// WithDescription sets the manifest description for the route.
func WithDescription(d string) RouteOption {
	return func(ri *routeInfo) {
		ri.desc = d
	}
}

// WithTags adds manifest tags to the route.
func WithTags(tags ...string) RouteOption {
	return func(ri *routeInfo) {
		ri.tags = append(ri.tags, tags...)
	}
}

// WithRequestFromParams binds the whole request struct from path, query,
// and form values instead of the message body. Endpoints normally set this
// through the ParameterBound interface rather than per route.
func WithRequestFromParams() RouteOption {
	return func(ri *routeInfo) {
		ri.fromParams = true
	}
}
