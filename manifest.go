package endpoints

import (
	"encoding/json"
	"net/http"
	"reflect"
	"strings"

	"gopkg.in/yaml.v3"
)

// RouteDescriptor describes one entry in the route table.
type RouteDescriptor struct {
	Method   string   `json:"method" yaml:"method"`
	Pattern  string   `json:"pattern" yaml:"pattern"`
	Summary  string   `json:"summary,omitempty" yaml:"summary,omitempty"`
	Tags     []string `json:"tags,omitempty" yaml:"tags,omitempty"`
	Request  string   `json:"request,omitempty" yaml:"request,omitempty"`
	Response string   `json:"response,omitempty" yaml:"response,omitempty"`
}

// Routes returns a snapshot of the route table in registration order.
// Calling MapEndpoints twice doubles the snapshot; the table records every
// registration, not distinct patterns.
func (r *Router) Routes() []RouteDescriptor {
	r.mu.Lock()
	defer r.mu.Unlock()

	routes := make([]RouteDescriptor, 0, len(r.routes))
	for _, ri := range r.routes {
		routes = append(routes, RouteDescriptor{
			Method:   ri.method,
			Pattern:  ri.pattern,
			Summary:  ri.summary,
			Tags:     ri.tags,
			Request:  typeName(ri.reqType),
			Response: typeName(ri.respType),
		})
	}
	return routes
}

func typeName(t reflect.Type) string {
	if t == nil || t == reflect.TypeFor[Void]() {
		return ""
	}
	return t.String()
}

// manifest is the document served by ServeManifest.
type manifest struct {
	Count  int               `json:"count" yaml:"count"`
	Routes []RouteDescriptor `json:"routes" yaml:"routes"`
}

// ServeManifest registers a GET route serving the route table as JSON, or
// as YAML when the Accept header or a format=yaml query parameter asks for
// it. The manifest reflects the table at request time, including the
// manifest route itself.
func (r *Router) ServeManifest(pattern string) {
	r.Handle(http.MethodGet, pattern, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		routes := r.Routes()
		doc := manifest{Count: len(routes), Routes: routes}

		if wantsYAML(req) {
			w.Header().Set("Content-Type", "application/yaml")
			//nolint:errcheck,gosec // best-effort after WriteHeader
			yaml.NewEncoder(w).Encode(doc)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		//nolint:errcheck,errchkjson,gosec // best-effort after WriteHeader
		json.NewEncoder(w).Encode(doc)
	}), WithSummary("Route manifest"))
}

func wantsYAML(r *http.Request) bool {
	if r.URL.Query().Get("format") == "yaml" {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "yaml")
}
