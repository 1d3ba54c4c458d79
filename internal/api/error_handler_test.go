package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/99minutos/auth-api/internal/core/domain"
)

func TestHTTPErrorHandler_Mapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
		body   string
	}{
		{domain.ErrUnauthorized, http.StatusUnauthorized, `{"message":"Unauthorized"}`},
		{fmt.Errorf("resolve: %w", domain.ErrTokenNotFound), http.StatusUnauthorized, `{"message":"Unauthorized"}`},
		{domain.ErrInvalidPassword, http.StatusBadRequest, `{"message":"invalid password"}`},
		{domain.ErrUserNotFound, http.StatusBadRequest, `{"message":"user not found"}`},
		{echo.NewHTTPError(http.StatusTeapot, "short and stout"), http.StatusTeapot, `{"message":"short and stout"}`},
		{errors.New("kaboom"), http.StatusInternalServerError, `{"message":"Server internal error"}`},
	}

	h := NewHTTPErrorHandler(zerolog.Nop())
	for _, tc := range cases {
		e := echo.New()
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

		h(tc.err, c)

		if rec.Code != tc.status {
			t.Fatalf("%v: expected %d, got %d", tc.err, tc.status, rec.Code)
		}
		if got := rec.Body.String(); got != tc.body+"\n" {
			t.Fatalf("%v: unexpected body %q", tc.err, got)
		}
	}
}

func TestHTTPErrorHandler_CommittedResponse(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	_ = c.String(http.StatusOK, "done")

	NewHTTPErrorHandler(zerolog.Nop())(errors.New("late"), c)

	if rec.Body.String() != "done" {
		t.Fatalf("committed response was modified: %q", rec.Body.String())
	}
}
