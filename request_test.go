package endpoints_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/endpoints"
)

func TestBindParams_tags(t *testing.T) {
	t.Parallel()

	type Req struct {
		ID      string        `path:"id"`
		Limit   int           `query:"limit" default:"10"`
		Trace   string        `header:"X-Trace"`
		Timeout time.Duration `query:"timeout"`
	}

	var got Req

	r := endpoints.New()
	endpoints.Get(r, "/things/{id}", func(_ context.Context, req *Req) (*endpoints.Void, error) {
		got = *req
		return &endpoints.Void{}, nil
	})

	srv := httptest.NewServer(r)
	defer srv.Close()

	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, srv.URL+"/things/t-9?timeout=5s", nil)
	require.NoError(t, err)
	req.Header.Set("X-Trace", "abc")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer closeBody(t, resp)

	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "t-9", got.ID)
	assert.Equal(t, 10, got.Limit, "default applies when query is absent")
	assert.Equal(t, "abc", got.Trace)
	assert.Equal(t, 5*time.Second, got.Timeout)
}

func TestBindParams_bodyField(t *testing.T) {
	t.Parallel()

	type Req struct {
		OrgID string `path:"org_id"`
		Body  struct {
			Name string `json:"name"`
		}
	}

	var got Req

	r := endpoints.New()
	endpoints.Post(r, "/orgs/{org_id}/projects", func(_ context.Context, req *Req) (*endpoints.Void, error) {
		got = *req
		return &endpoints.Void{}, nil
	})

	srv := httptest.NewServer(r)
	defer srv.Close()

	resp := mustPost(t, srv.URL+"/orgs/o-1/projects", `{"name":"skunkworks"}`)
	defer closeBody(t, resp)

	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "o-1", got.OrgID)
	assert.Equal(t, "skunkworks", got.Body.Name)
}

func TestBindFlattenedParams(t *testing.T) {
	t.Parallel()

	type Req struct {
		ID             string `path:"id"`
		IncludeDetails bool
	}

	var got Req

	r := endpoints.New()
	endpoints.Get(r, "/users/{id}", func(_ context.Context, req *Req) (*endpoints.Void, error) {
		got = *req
		return &endpoints.Void{}, nil
	}, endpoints.WithRequestFromParams())

	srv := httptest.NewServer(r)
	defer srv.Close()

	resp := mustGet(t, srv.URL+"/users/123?includedetails=true")
	defer closeBody(t, resp)

	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "123", got.ID, "bound from route value")
	assert.True(t, got.IncludeDetails, "bound from query by lowercased field name")
}

func TestBindFlattenedParams_neverReadsJSONBody(t *testing.T) {
	t.Parallel()

	type Req struct {
		Name string
	}

	var got Req

	r := endpoints.New()
	endpoints.Post(r, "/register", func(_ context.Context, req *Req) (*endpoints.Void, error) {
		got = *req
		return &endpoints.Void{}, nil
	}, endpoints.WithRequestFromParams())

	srv := httptest.NewServer(r)
	defer srv.Close()

	// A JSON body holding the field must be ignored; only the query counts.
	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost,
		srv.URL+"/register?name=fromquery", bytes.NewReader([]byte(`{"name":"frombody"}`)))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer closeBody(t, resp)

	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "fromquery", got.Name)
}

func TestBindParams_badValue(t *testing.T) {
	t.Parallel()

	type Req struct {
		Limit int `query:"limit"`
	}

	r := endpoints.New()
	endpoints.Get(r, "/list", func(_ context.Context, _ *Req) (*endpoints.Void, error) {
		return &endpoints.Void{}, nil
	})

	srv := httptest.NewServer(r)
	defer srv.Close()

	resp := mustGet(t, srv.URL+"/list?limit=notanumber")
	defer closeBody(t, resp)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var problem endpoints.ProblemDetail
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&problem))
	assert.Contains(t, problem.Detail, "bind query")
}

func TestClassify_helpers(t *testing.T) {
	t.Parallel()

	type tagged struct {
		ID string `path:"id"`
	}
	type bodied struct {
		Body struct{ Name string }
	}
	type plain struct {
		Name string `json:"name"`
	}

	assert.True(t, endpoints.HasParamTags(reflect.TypeFor[tagged]()))
	assert.False(t, endpoints.HasParamTags(reflect.TypeFor[plain]()))
	assert.True(t, endpoints.HasBodyField(reflect.TypeFor[bodied]()))
	assert.False(t, endpoints.HasBodyField(reflect.TypeFor[plain]()))
}
