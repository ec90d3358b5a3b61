package endpoints

import (
	"context"
	"net/http"
	"sync"
	"time"
)

// Router is the central type that holds routes, middleware, and
// configuration. It implements http.Handler.
//
// Routes accumulate in a table and the underlying http.ServeMux is rebuilt
// lazily on the next request after the table changes. Pattern conflicts
// therefore surface when the mux compiles, exactly as http.ServeMux reports
// them.
type Router struct {
	mu     sync.Mutex
	routes []routeInfo
	mux    *http.ServeMux
	dirty  bool

	middleware   []Middleware
	validator    Validator
	errorHandler ErrorHandler
}

// RouterOption configures a Router.
type RouterOption func(*Router)

// WithValidator sets a global request validator.
func WithValidator(v Validator) RouterOption {
	return func(r *Router) {
		r.validator = v
	}
}

// ErrorHandler is a custom error response writer.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// WithErrorHandler sets a custom error handler for the router.
func WithErrorHandler(h ErrorHandler) RouterOption {
	return func(r *Router) {
		r.errorHandler = h
	}
}

// New creates a new Router with the given options.
func New(opts ...RouterOption) *Router {
	r := &Router{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Use adds middleware to the router. Middleware is applied in the order added.
func (r *Router) Use(mw ...Middleware) {
	r.middleware = append(r.middleware, mw...)
}

// Handle registers a raw http.Handler for cases the typed surface does not
// cover (metrics handlers, static files).
func (r *Router) Handle(method, pattern string, h http.Handler, opts ...RouteOption) {
	ri := routeInfo{
		method:  method,
		pattern: pattern,
		status:  http.StatusOK,
		handler: h,
	}
	for _, opt := range opts {
		opt(&ri)
	}
	r.addRoute(ri)
}

// ServeHTTP implements http.Handler.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	handler := r.handler()
	for i := len(r.middleware) - 1; i >= 0; i-- {
		handler = r.middleware[i](handler)
	}
	handler.ServeHTTP(w, req)
}

// handler returns the compiled mux, rebuilding it when the route table has
// changed since the last request.
func (r *Router) handler() http.Handler {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.mux == nil || r.dirty {
		mux := http.NewServeMux()
		for _, ri := range r.routes {
			mux.Handle(ri.method+" "+ri.pattern, ri.handler)
		}
		r.mux = mux
		r.dirty = false
	}
	return r.mux
}

// ListenAndServe starts an HTTP server on the given address.
// It blocks until the context is cancelled, then shuts down gracefully.
func (r *Router) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// addRoute appends a routeInfo to the route table and marks the mux stale.
// Global middleware is applied in ServeHTTP, not here — only group
// middleware is baked into ri.handler.
func (r *Router) addRoute(ri routeInfo) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.routes = append(r.routes, ri)
	r.dirty = true
}

func (r *Router) getValidator() Validator       { return r.validator }
func (r *Router) getErrorHandler() ErrorHandler { return r.errorHandler }
func (r *Router) routeMiddleware() []Middleware { return nil }
