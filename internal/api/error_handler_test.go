package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/pathagar/bookshop-api/internal/core/domain"
)

func renderError(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)
	return rec
}

func TestHTTPErrorHandler_DomainErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{domain.ErrForbidden, http.StatusForbidden},
		{domain.ErrUnknownPrincipal, http.StatusForbidden},
		{domain.ErrTokenExpired, http.StatusForbidden},
		{domain.ErrTokenMalformed, http.StatusForbidden},
		{domain.ErrCartItemNotFound, http.StatusNotFound},
		{domain.ErrNotFound, http.StatusNotFound},
		{domain.ErrOrderAlreadyPaid, http.StatusConflict},
		{domain.ErrNegativeQuantity, http.StatusBadRequest},
		{domain.ErrInvalidAmount, http.StatusBadRequest},
		{domain.ErrUpstream, http.StatusBadGateway},
	}

	for _, tc := range cases {
		rec := renderError(t, tc.err)
		if rec.Code != tc.want {
			t.Errorf("%v: expected %d, got %d", tc.err, tc.want, rec.Code)
		}
	}
}

func TestHTTPErrorHandler_WrappedDomainError(t *testing.T) {
	err := fmt.Errorf("capture payment: %w: socket closed", domain.ErrUpstream)
	rec := renderError(t, err)
	if rec.Code != http.StatusBadGateway {
		t.Errorf("expected 502 for a wrapped upstream error, got %d", rec.Code)
	}
}

func TestHTTPErrorHandler_EchoErrorPassthrough(t *testing.T) {
	rec := renderError(t, echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header"))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestHTTPErrorHandler_UnexpectedErrorIs500(t *testing.T) {
	rec := renderError(t, errors.New("nil map write"))
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}
	// The real cause must not leak to the client.
	if body := rec.Body.String(); body == "" || body[0] != '{' {
		t.Fatalf("expected a JSON envelope, got %q", body)
	}
	if got := rec.Body.String(); got != "{\"error\":\"internal server error\"}\n" {
		t.Errorf("unexpected body: %q", got)
	}
}
