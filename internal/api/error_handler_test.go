package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/buildhub/module-catalog/internal/core/domain"
)

func TestResolveError_DomainMappings(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{domain.ErrInvalidModule, http.StatusBadRequest},
		{domain.ErrScoreOutOfRange, http.StatusBadRequest},
		{domain.ErrEmptyQuery, http.StatusBadRequest},
		{domain.ErrInvalidStatus, http.StatusBadRequest},
		{domain.ErrInvalidRole, http.StatusBadRequest},
		{domain.ErrModuleNotRatable, http.StatusUnprocessableEntity},
		{domain.ErrInvalidCredential, http.StatusUnauthorized},
		{domain.ErrInsufficientRole, http.StatusForbidden},
		{domain.ErrModuleNotFound, http.StatusNotFound},
		{domain.ErrUserNotFound, http.StatusNotFound},
		{domain.ErrModuleExists, http.StatusConflict},
		{context.DeadlineExceeded, http.StatusServiceUnavailable},
		{errors.New("kaboom"), http.StatusInternalServerError},
	}

	e := echo.New()
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		c := e.NewContext(req, httptest.NewRecorder())

		code, _ := resolveError(tc.err, zerolog.Nop(), c)
		if code != tc.code {
			t.Errorf("%v: expected %d, got %d", tc.err, tc.code, code)
		}

		// Wrapped errors map identically.
		wrapped := fmt.Errorf("operation failed: %w", tc.err)
		code, _ = resolveError(wrapped, zerolog.Nop(), c)
		if code != tc.code {
			t.Errorf("wrapped %v: expected %d, got %d", tc.err, tc.code, code)
		}
	}
}

func TestResolveError_EchoHTTPError(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	code, msg := resolveError(echo.NewHTTPError(http.StatusTeapot, "short and stout"), zerolog.Nop(), c)
	if code != http.StatusTeapot {
		t.Fatalf("expected 418, got %d", code)
	}
	if msg != "short and stout" {
		t.Fatalf("unexpected message: %s", msg)
	}
}

func TestResolveError_HidesInternalDetails(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	_, msg := resolveError(errors.New("pq: connection refused on 10.0.0.3"), zerolog.Nop(), c)
	if msg != "internal server error" {
		t.Fatalf("internal details leaked: %s", msg)
	}
}
