package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"codeberg.org/wcorrea/apierror/internal/apierror"
	"codeberg.org/wcorrea/apierror/internal/config"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg, err := config.FromLookup(func(string) string { return "" })
	require.NoError(t, err)

	srv, err := NewServer(cfg)
	require.NoError(t, err)
	t.Cleanup(srv.Close)

	return srv
}

func serve(srv *Server, method, path, acceptLanguage, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if acceptLanguage != "" {
		req.Header.Set("Accept-Language", acceptLanguage)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)

	return w
}

func TestServer_UnknownRouteDefaultsToPortuguese(t *testing.T) {
	srv := newTestServer(t)

	w := serve(srv, http.MethodGet, "/api/v1/nothing", "", "")

	assert.Equal(t, http.StatusNotFound, w.Code)

	var bodies []apierror.Body
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &bodies))
	require.Len(t, bodies, 1)
	assert.Equal(t, "Recurso não encontrado.", bodies[0].Message.Description)
	assert.Equal(t, "/api/v1/nothing", bodies[0].Origin)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestServer_OrderLifecycle(t *testing.T) {
	srv := newTestServer(t)

	created := serve(srv, http.MethodPost, "/api/v1/orders", "en",
		`{"reference":"A-1","customer":"ana@example.com","quantity":1}`)
	require.Equal(t, http.StatusCreated, created.Code, created.Body.String())

	closed := serve(srv, http.MethodPost, "/api/v1/orders/1/close", "en", "")
	require.Equal(t, http.StatusOK, closed.Code)

	again := serve(srv, http.MethodPost, "/api/v1/orders/1/close", "en", "")
	assert.Equal(t, http.StatusBadRequest, again.Code)
	assert.Contains(t, again.Body.String(), `"key":"ORDER_CLOSED"`)
}

func TestServer_MetricsEndpoint(t *testing.T) {
	srv := newTestServer(t)

	serve(srv, http.MethodGet, "/api/v1/orders/nope", "", "")
	w := serve(srv, http.MethodGet, "/metrics", "", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "apierror_classified_total")
	assert.Contains(t, w.Body.String(), "apierror_http_requests_total")
}

func TestServer_ReadyWithoutDependencies(t *testing.T) {
	srv := newTestServer(t)

	w := serve(srv, http.MethodGet, "/ready", "", "")

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestNewServer_RejectsDefaultLocaleWithoutMessages(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cfg, err := config.FromLookup(func(key string) string {
		if key == "DEFAULT_LOCALE" {
			return "es"
		}
		return ""
	})
	require.NoError(t, err)

	_, err = NewServer(cfg)

	assert.Error(t, err)
}
