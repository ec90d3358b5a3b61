package endpoints_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bjaus/endpoints"
)

func TestRecovery(t *testing.T) {
	t.Parallel()

	r := endpoints.New()
	r.Use(endpoints.Recovery())

	endpoints.Get(r, "/panic", func(_ context.Context, _ *endpoints.Void) (*endpoints.Void, error) {
		panic("deliberate")
	})

	srv := httptest.NewServer(r)
	defer srv.Close()

	resp := mustGet(t, srv.URL+"/panic")
	defer closeBody(t, resp)

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}
