package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseRequest(e *echo.Echo, method, target string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestDefaultRouteServesDocumentation(t *testing.T) {
	e := echo.New()
	RegisterBase(e)

	rec := baseRequest(e, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Get documentation successfully", body["message"])
	doc := body["documentation"].(map[string]any)
	for _, section := range []string{"auth", "posts", "profile", "role"} {
		assert.Contains(t, doc, section)
	}
}

func TestHealthz(t *testing.T) {
	e := echo.New()
	RegisterBase(e)

	rec := baseRequest(e, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestUnknownRouteIsJSON404(t *testing.T) {
	e := echo.New()
	RegisterBase(e)

	rec := baseRequest(e, http.MethodGet, "/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"Not found"}`, rec.Body.String())
}

func TestCORSHeaders(t *testing.T) {
	e := echo.New()
	RegisterBase(e)

	rec := baseRequest(e, http.MethodGet, "/", map[string]string{
		"Origin": "http://frontend.example.com",
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))

	// Preflight requests are answered by the middleware itself.
	pre := baseRequest(e, http.MethodOptions, "/api/posts", map[string]string{
		"Origin":                        "http://frontend.example.com",
		"Access-Control-Request-Method": http.MethodPost,
	})
	assert.Equal(t, http.StatusNoContent, pre.Code)
	assert.Equal(t, "*", pre.Header().Get(echo.HeaderAccessControlAllowOrigin))
}
