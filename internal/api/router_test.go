package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func newCORSTestServer() *echo.Echo {
	e := echo.New()
	e.Use(corsMiddleware())
	e.POST("/auth/signin", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	return e
}

func TestCORS_PreflightAllowsBrowserClients(t *testing.T) {
	e := newCORSTestServer()

	req := httptest.NewRequest(http.MethodOptions, "/auth/signin", nil)
	req.Header.Set(echo.HeaderOrigin, "http://localhost:3000")
	req.Header.Set(echo.HeaderAccessControlRequestMethod, http.MethodPost)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for preflight, got %d", rec.Code)
	}
	if got := rec.Header().Get(echo.HeaderAccessControlAllowOrigin); got != "*" {
		t.Fatalf("expected wildcard allow-origin, got %q", got)
	}
	if got := rec.Header().Get(echo.HeaderAccessControlMaxAge); got != "3600" {
		t.Fatalf("expected preflight cache of 3600 seconds, got %q", got)
	}
}

func TestCORS_ActualRequestCarriesAllowOrigin(t *testing.T) {
	e := newCORSTestServer()

	req := httptest.NewRequest(http.MethodPost, "/auth/signin", nil)
	req.Header.Set(echo.HeaderOrigin, "http://localhost:3000")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get(echo.HeaderAccessControlAllowOrigin); got != "*" {
		t.Fatalf("expected wildcard allow-origin on the response, got %q", got)
	}
}
