package api

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/nexaa/auth-service/internal/core/domain"
)

func TestHTTPErrorHandler_DomainErrors(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{"invalid input", domain.ErrInvalidInput, http.StatusBadRequest, "invalid input"},
		{"email taken", domain.ErrEmailTaken, http.StatusBadRequest, "Error: Email is already in use!"},
		{"username taken", domain.ErrUsernameTaken, http.StatusBadRequest, "Error: Username is already taken!"},
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, "Error: Invalid credentials!"},
		{"throttled", domain.ErrTooManyAttempts, http.StatusTooManyRequests, "Too many sign-in attempts"},
		{"invalid token", domain.ErrTokenInvalid, http.StatusUnauthorized, "invalid token"},
		{"store down", domain.ErrStoreUnavailable, http.StatusServiceUnavailable, "service temporarily unavailable"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodPost, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			h := NewHTTPErrorHandler(zerolog.Nop())
			h(tc.err, c)

			if rec.Code != tc.wantCode {
				t.Fatalf("expected %d, got %d", tc.wantCode, rec.Code)
			}
			if !strings.Contains(rec.Body.String(), tc.wantBody) {
				t.Fatalf("expected body containing %q, got %s", tc.wantBody, rec.Body.String())
			}
		})
	}
}

func TestHTTPErrorHandler_WrappedStoreErrorDoesNotLeak(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := fmt.Errorf("%w: find user: %s", domain.ErrStoreUnavailable, "connection refused")
	h := NewHTTPErrorHandler(zerolog.Nop())
	h(err, c)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "connection refused") {
		t.Fatalf("driver error text leaked to client: %s", rec.Body.String())
	}
}

func TestHTTPErrorHandler_UnknownError(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := NewHTTPErrorHandler(zerolog.Nop())
	h(fmt.Errorf("something internal exploded"), c)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "exploded") {
		t.Fatalf("internal error text leaked to client: %s", rec.Body.String())
	}
}

func TestHTTPErrorHandler_EchoHTTPError(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := NewHTTPErrorHandler(zerolog.Nop())
	h(echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header"), c)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "missing authorization header") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}
