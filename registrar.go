package endpoints

import (
	"fmt"
	"reflect"
)

var endpointType = reflect.TypeFor[Endpoint]()

// validateEndpointCtor checks that ctor is a constructor producing a
// concrete type implementing Endpoint, and returns that type.
func validateEndpointCtor(ctor any) (reflect.Type, error) {
	p, err := newProvider(ctor, Transient)
	if err != nil {
		return nil, err
	}
	if p.produces.Kind() == reflect.Interface {
		return nil, fmt.Errorf("%w: %s", ErrAbstractEndpoint, p.produces)
	}
	if !p.produces.Implements(endpointType) {
		return nil, fmt.Errorf("%w: %s", ErrNotEndpoint, p.produces)
	}
	return p.produces, nil
}

// RegisterEndpoints registers an explicit list of endpoint constructors
// into the container at the given lifetime. Every constructor is validated
// before any registration commits: each must produce a concrete type
// implementing Endpoint. On failure the error names the offending type and
// the container is left untouched — registration is all or nothing.
//
// Each accepted constructor registers twice: under its concrete type and
// under Endpoint, so both targeted and bulk resolution work. An empty list
// is a no-op.
func RegisterEndpoints(c *Container, lifetime Lifetime, ctors ...any) error {
	for _, ctor := range ctors {
		if _, err := validateEndpointCtor(ctor); err != nil {
			return err
		}
	}

	for _, ctor := range ctors {
		if err := c.Provide(ctor, lifetime); err != nil {
			return err
		}
		if err := ProvideAs[Endpoint](c, ctor, lifetime); err != nil {
			return err
		}
	}
	return nil
}

// RegisterDiscovered registers every announced endpoint constructor for the
// named modules, or for all announced modules when none are named. A scan
// that matches nothing leaves the container unchanged and is not an error.
func RegisterDiscovered(c *Container, lifetime Lifetime, modules ...string) error {
	return RegisterEndpoints(c, lifetime, announced(modules...)...)
}

// MapEndpoints resolves every Endpoint registered in the container and
// attaches each to the router. Grouped endpoints get a fresh route group
// per endpoint — endpoints sharing a prefix do not share a group, so
// group-level middleware instances are never shared either. ConfigureGroup,
// when implemented, runs exactly once per endpoint before its routes
// attach.
//
// MapEndpoints is not idempotent: calling it twice maps every endpoint
// twice, and the route table doubles. Pattern conflicts surface from the
// underlying mux when the router next compiles.
//
// Returns the router for chaining.
func MapEndpoints(app *Router, c *Container) (*Router, error) {
	eps, err := ResolveAll[Endpoint](c)
	if err != nil {
		return nil, err
	}

	for _, ep := range eps {
		reg := Registrar(app)
		if grouped, ok := ep.(Grouped); ok {
			if prefix := grouped.GroupPrefix(); prefix != "" {
				g := app.Group(prefix)
				if cfg, ok := ep.(GroupConfigurer); ok {
					cfg.ConfigureGroup(g)
				}
				reg = g
			}
		}
		ep.Routes(reg)
	}
	return app, nil
}
