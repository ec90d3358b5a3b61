package endpoints_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/bjaus/endpoints"
)

type manifestDoc struct {
	Count  int                         `json:"count" yaml:"count"`
	Routes []endpoints.RouteDescriptor `json:"routes" yaml:"routes"`
}

func manifestRouter() *endpoints.Router {
	type Resp struct {
		OK bool `json:"ok"`
	}

	r := endpoints.New()
	endpoints.Get(r, "/status", func(_ context.Context, _ *endpoints.Void) (*Resp, error) {
		return &Resp{OK: true}, nil
	}, endpoints.WithSummary("Status"), endpoints.WithTags("system"))
	r.ServeManifest("/routes")
	return r
}

func TestServeManifest_json(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(manifestRouter())
	defer srv.Close()

	resp := mustGet(t, srv.URL+"/routes")
	defer closeBody(t, resp)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var doc manifestDoc
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&doc))

	// The manifest route includes itself.
	assert.Equal(t, 2, doc.Count)
	require.Len(t, doc.Routes, 2)
	assert.Equal(t, "/status", doc.Routes[0].Pattern)
	assert.Equal(t, "Status", doc.Routes[0].Summary)
	assert.Equal(t, []string{"system"}, doc.Routes[0].Tags)
	assert.Equal(t, "/routes", doc.Routes[1].Pattern)
}

func TestServeManifest_yaml(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(manifestRouter())
	defer srv.Close()

	for _, path := range []string{"/routes?format=yaml", "/routes"} {
		req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, srv.URL+path, nil)
		require.NoError(t, err)
		if path == "/routes" {
			req.Header.Set("Accept", "application/yaml")
		}

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)

		assert.Equal(t, "application/yaml", resp.Header.Get("Content-Type"))

		b, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		closeBody(t, resp)

		var doc manifestDoc
		require.NoError(t, yaml.Unmarshal(b, &doc))
		assert.Equal(t, 2, doc.Count)
	}
}
