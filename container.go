package endpoints

import (
	"fmt"
	"reflect"
	"sync"
)

// Lifetime governs how often a provider constructs a new instance when
// resolved.
type Lifetime int

const (
	// Transient constructs a new instance per resolution.
	Transient Lifetime = iota
	// Scoped constructs one instance per container scope.
	Scoped
	// Singleton constructs one instance per root container.
	Singleton
)

// String returns the lifetime name.
func (l Lifetime) String() string {
	switch l {
	case Transient:
		return "transient"
	case Scoped:
		return "scoped"
	case Singleton:
		return "singleton"
	default:
		return fmt.Sprintf("lifetime(%d)", int(l))
	}
}

var errType = reflect.TypeFor[error]()

// provider pairs a constructor with the concrete type it produces.
type provider struct {
	ctor     reflect.Value
	produces reflect.Type
	lifetime Lifetime
}

// Container is a reflect.Type-keyed constructor-injection container.
// Registration happens single-threaded at startup; resolution is safe for
// concurrent use afterwards. Pass it explicitly; its lifetime is the
// application's, not the process's.
type Container struct {
	parent *Container

	mu        sync.RWMutex
	providers map[reflect.Type][]*provider
	cache     map[*provider]reflect.Value
}

// NewContainer creates an empty root container.
func NewContainer() *Container {
	return &Container{
		providers: make(map[reflect.Type][]*provider),
		cache:     make(map[*provider]reflect.Value),
	}
}

// Scope derives a child container. Scoped providers cache one instance per
// scope; Singleton providers always cache on the root.
func (c *Container) Scope() *Container {
	return &Container{
		parent:    c,
		providers: make(map[reflect.Type][]*provider),
		cache:     make(map[*provider]reflect.Value),
	}
}

func (c *Container) root() *Container {
	r := c
	for r.parent != nil {
		r = r.parent
	}
	return r
}

// newProvider validates a constructor: a non-variadic func returning a
// value, optionally followed by an error.
func newProvider(ctor any, lifetime Lifetime) (*provider, error) {
	if ctor == nil {
		return nil, ErrInvalidConstructor
	}
	v := reflect.ValueOf(ctor)
	t := v.Type()
	if t.Kind() != reflect.Func || t.IsVariadic() {
		return nil, fmt.Errorf("%w: %T is not a plain func", ErrInvalidConstructor, ctor)
	}
	switch t.NumOut() {
	case 1:
	case 2:
		if t.Out(1) != errType {
			return nil, fmt.Errorf("%w: %T second return value must be error", ErrInvalidConstructor, ctor)
		}
	default:
		return nil, fmt.Errorf("%w: %T must return (T) or (T, error)", ErrInvalidConstructor, ctor)
	}
	return &provider{ctor: v, produces: t.Out(0), lifetime: lifetime}, nil
}

// Provide registers ctor under its return type. Constructor parameters are
// resolved from the container at construction time.
func (c *Container) Provide(ctor any, lifetime Lifetime) error {
	p, err := newProvider(ctor, lifetime)
	if err != nil {
		return err
	}
	c.add(p.produces, p)
	return nil
}

// ProvideAs registers ctor under the service type T, which the constructed
// type must be assignable to. Registering the same constructor with both
// Provide and ProvideAs yields two registrations: one keyed by the concrete
// type, one by the service type.
func ProvideAs[T any](c *Container, ctor any, lifetime Lifetime) error {
	p, err := newProvider(ctor, lifetime)
	if err != nil {
		return err
	}
	service := reflect.TypeFor[T]()
	if !p.produces.AssignableTo(service) {
		return fmt.Errorf("%w: %s is not assignable to %s", ErrInvalidConstructor, p.produces, service)
	}
	c.add(service, p)
	return nil
}

func (c *Container) add(key reflect.Type, p *provider) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.providers[key] = append(c.providers[key], p)
}

// Count returns the number of registrations across all service keys.
func (c *Container) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	n := 0
	for _, ps := range c.providers {
		n += len(ps)
	}
	return n
}

// Resolve returns the instance registered under T, constructing it and its
// dependencies. When multiple providers exist for T the last registered
// wins.
func Resolve[T any](c *Container) (T, error) {
	var zero T
	v, err := c.resolve(reflect.TypeFor[T](), nil)
	if err != nil {
		return zero, err
	}
	return v.Interface().(T), nil
}

// ResolveAll returns every instance registered under T, parent scopes
// first, in registration order within a scope. Callers must not depend on
// this ordering. Zero registrations yield an empty slice, not an error.
func ResolveAll[T any](c *Container) ([]T, error) {
	ps := c.providersFor(reflect.TypeFor[T]())
	out := make([]T, 0, len(ps))
	for _, p := range ps {
		v, err := c.instantiate(p, nil)
		if err != nil {
			return nil, err
		}
		out = append(out, v.Interface().(T))
	}
	return out, nil
}

func (c *Container) providersFor(t reflect.Type) []*provider {
	var ps []*provider
	if c.parent != nil {
		ps = c.parent.providersFor(t)
	}
	c.mu.RLock()
	ps = append(ps, c.providers[t]...)
	c.mu.RUnlock()
	return ps
}

func (c *Container) resolve(t reflect.Type, stack []reflect.Type) (reflect.Value, error) {
	ps := c.providersFor(t)
	if len(ps) == 0 {
		return reflect.Value{}, fmt.Errorf("%w: %s", ErrNotRegistered, t)
	}
	return c.instantiate(ps[len(ps)-1], stack)
}

func (c *Container) instantiate(p *provider, stack []reflect.Type) (reflect.Value, error) {
	for _, s := range stack {
		if s == p.produces {
			return reflect.Value{}, fmt.Errorf("%w: %s", ErrDependencyCycle, p.produces)
		}
	}

	owner := c.cacheOwner(p)
	if owner != nil {
		owner.mu.RLock()
		v, ok := owner.cache[p]
		owner.mu.RUnlock()
		if ok {
			return v, nil
		}
	}

	ct := p.ctor.Type()
	args := make([]reflect.Value, ct.NumIn())
	stack = append(stack, p.produces)
	for i := range args {
		v, err := c.resolve(ct.In(i), stack)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("construct %s: %w", p.produces, err)
		}
		args[i] = v
	}

	out := p.ctor.Call(args)
	if len(out) == 2 && !out[1].IsNil() {
		return reflect.Value{}, out[1].Interface().(error)
	}
	v := out[0]

	if owner != nil {
		owner.mu.Lock()
		// First stored instance wins under concurrent resolution.
		if cached, ok := owner.cache[p]; ok {
			v = cached
		} else {
			owner.cache[p] = v
		}
		owner.mu.Unlock()
	}
	return v, nil
}

func (c *Container) cacheOwner(p *provider) *Container {
	switch p.lifetime {
	case Singleton:
		return c.root()
	case Scoped:
		return c
	default:
		return nil
	}
}
