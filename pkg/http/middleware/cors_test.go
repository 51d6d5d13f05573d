package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func corsServer(origins ...string) *echo.Echo {
	e := echo.New()
	e.Use(CORS(CORSConfig{
		AllowOrigins: origins,
		AllowMethods: []string{http.MethodGet, http.MethodPut},
		AllowHeaders: []string{echo.HeaderContentType},
		MaxAge:       600,
	}))
	e.GET("/api/views", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })
	return e
}

func TestCORSAllowsListedOrigin(t *testing.T) {
	e := corsServer("https://radar.example")

	req := httptest.NewRequest(http.MethodGet, "/api/views", nil)
	req.Header.Set(echo.HeaderOrigin, "https://radar.example")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if got := rec.Header().Get(echo.HeaderAccessControlAllowOrigin); got != "https://radar.example" {
		t.Fatalf("expected origin echoed, got %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/views", nil)
	req.Header.Set(echo.HeaderOrigin, "https://evil.example")
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if got := rec.Header().Get(echo.HeaderAccessControlAllowOrigin); got != "" {
		t.Fatalf("unlisted origin should get no CORS header, got %q", got)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("request should still be served, got %d", rec.Code)
	}
}

func TestCORSPreflight(t *testing.T) {
	e := corsServer("*")

	req := httptest.NewRequest(http.MethodOptions, "/api/views", nil)
	req.Header.Set(echo.HeaderOrigin, "https://radar.example")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if rec.Header().Get(echo.HeaderAccessControlAllowMethods) != "GET, PUT" || rec.Header().Get(echo.HeaderAccessControlMaxAge) != "600" {
		t.Fatalf("unexpected preflight headers %v", rec.Header())
	}
}
