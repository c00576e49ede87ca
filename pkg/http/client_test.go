package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	httpclient "github.com/astro-web3/dashboard-authgate/pkg/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoResponse struct {
	Cookie string `json:"cookie"`
	Accept string `json:"accept"`
	Method string `json:"method"`
}

func newEchoServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := ""
		if c, err := r.Cookie("token"); err == nil {
			token = c.Value
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"cookie":"` + token + `","accept":"` + r.Header.Get("Accept") + `","method":"` + r.Method + `"}`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGet_AppliesOptions(t *testing.T) {
	srv := newEchoServer(t)

	var got echoResponse
	resp, err := httpclient.Get(context.Background(), srv.URL,
		httpclient.WithCookie(&http.Cookie{Name: "token", Value: "abc123"}),
		httpclient.WithHeader("Accept", "text/html"),
		httpclient.WithResult(&got),
	)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Equal(t, "abc123", got.Cookie)
	assert.Equal(t, "text/html", got.Accept)
	assert.Equal(t, http.MethodGet, got.Method)
}

func TestPost_DefaultsToJSON(t *testing.T) {
	srv := newEchoServer(t)

	var got echoResponse
	_, err := httpclient.Post(context.Background(), srv.URL,
		httpclient.WithCookie(nil),
		httpclient.WithResult(&got),
	)
	require.NoError(t, err)

	assert.Empty(t, got.Cookie)
	assert.Equal(t, "application/json", got.Accept)
	assert.Equal(t, http.MethodPost, got.Method)
}
