package endpoints_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/endpoints"
)

func TestRequestID_generated(t *testing.T) {
	t.Parallel()

	r := endpoints.New()
	r.Use(endpoints.RequestID())

	var seen string
	endpoints.Get(r, "/id", func(_ context.Context, _ *endpoints.Void) (*endpoints.Void, error) {
		return &endpoints.Void{}, nil
	})
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			seen = endpoints.GetRequestID(req)
			next.ServeHTTP(w, req)
		})
	})

	srv := httptest.NewServer(r)
	defer srv.Close()

	resp := mustGet(t, srv.URL+"/id")
	defer closeBody(t, resp)

	id := resp.Header.Get("X-Request-ID")
	require.NotEmpty(t, id)
	_, err := uuid.Parse(id)
	assert.NoError(t, err, "generated IDs are UUIDs")
	assert.Equal(t, id, seen, "ID is available from the request context")
}

func TestRequestID_echoesIncoming(t *testing.T) {
	t.Parallel()

	r := endpoints.New()
	r.Use(endpoints.RequestID())

	endpoints.Get(r, "/id", func(_ context.Context, _ *endpoints.Void) (*endpoints.Void, error) {
		return &endpoints.Void{}, nil
	})

	srv := httptest.NewServer(r)
	defer srv.Close()

	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, srv.URL+"/id", nil)
	require.NoError(t, err)
	req.Header.Set("X-Request-ID", "client-chosen")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer closeBody(t, resp)

	assert.Equal(t, "client-chosen", resp.Header.Get("X-Request-ID"))
}
