package endpoints_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/endpoints"
)

func headerMiddleware(key, value string) endpoints.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Add(key, value)
			next.ServeHTTP(w, r)
		})
	}
}

func TestRouter_use(t *testing.T) {
	t.Parallel()

	r := endpoints.New()
	r.Use(headerMiddleware("X-MW", "first"), headerMiddleware("X-MW", "second"))

	endpoints.Get(r, "/ok", func(_ context.Context, _ *endpoints.Void) (*endpoints.Void, error) {
		return &endpoints.Void{}, nil
	})

	srv := httptest.NewServer(r)
	defer srv.Close()

	resp := mustGet(t, srv.URL+"/ok")
	defer closeBody(t, resp)

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, []string{"first", "second"}, resp.Header.Values("X-MW"), "middleware applies in the order added")
}

func TestRouter_lazyRecompile(t *testing.T) {
	t.Parallel()

	r := endpoints.New()
	endpoints.Get(r, "/a", func(_ context.Context, _ *endpoints.Void) (*endpoints.Void, error) {
		return &endpoints.Void{}, nil
	})

	srv := httptest.NewServer(r)
	defer srv.Close()

	first := mustGet(t, srv.URL+"/a")
	closeBody(t, first)
	require.Equal(t, http.StatusNoContent, first.StatusCode)

	// Routes added after the mux has compiled become visible on the next
	// request.
	endpoints.Get(r, "/b", func(_ context.Context, _ *endpoints.Void) (*endpoints.Void, error) {
		return &endpoints.Void{}, nil
	})

	second := mustGet(t, srv.URL+"/b")
	defer closeBody(t, second)
	assert.Equal(t, http.StatusNoContent, second.StatusCode)
}

func TestRouter_handleRaw(t *testing.T) {
	t.Parallel()

	r := endpoints.New()
	r.Handle(http.MethodGet, "/raw", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "raw output")
	}))

	srv := httptest.NewServer(r)
	defer srv.Close()

	resp := mustGet(t, srv.URL+"/raw")
	defer closeBody(t, resp)

	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "raw output", string(b))
}

func TestRouter_notFound(t *testing.T) {
	t.Parallel()

	r := endpoints.New()
	endpoints.Get(r, "/known", func(_ context.Context, _ *endpoints.Void) (*endpoints.Void, error) {
		return &endpoints.Void{}, nil
	})

	srv := httptest.NewServer(r)
	defer srv.Close()

	resp := mustGet(t, srv.URL+"/unknown")
	defer closeBody(t, resp)

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRouter_routesSnapshot(t *testing.T) {
	t.Parallel()

	type Req struct {
		ID string `path:"id"`
	}
	type Resp struct {
		Name string `json:"name"`
	}

	r := endpoints.New()
	endpoints.Get(r, "/widgets/{id}", func(_ context.Context, _ *Req) (*Resp, error) {
		return &Resp{}, nil
	}, endpoints.WithSummary("Get a widget"), endpoints.WithTags("widgets"))

	routes := r.Routes()
	require.Len(t, routes, 1)
	assert.Equal(t, http.MethodGet, routes[0].Method)
	assert.Equal(t, "/widgets/{id}", routes[0].Pattern)
	assert.Equal(t, "Get a widget", routes[0].Summary)
	assert.Equal(t, []string{"widgets"}, routes[0].Tags)
	assert.NotEmpty(t, routes[0].Request)
	assert.NotEmpty(t, routes[0].Response)
}

func TestRouter_listenAndServe_shutdown(t *testing.T) {
	t.Parallel()

	r := endpoints.New()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- r.ListenAndServe(ctx, "127.0.0.1:0")
	}()

	cancel()
	assert.NoError(t, <-done)
}
