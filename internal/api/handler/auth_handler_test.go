package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/99minutos/auth-api/internal/core/domain"
	"github.com/99minutos/auth-api/internal/core/ports"
)

type stubAuthService struct {
	authenticateFn func(ctx context.Context, in ports.LoginInput) (string, *domain.User, error)
	resolveFn      func(ctx context.Context, token string) (*domain.User, error)
}

func (s *stubAuthService) Authenticate(ctx context.Context, in ports.LoginInput) (string, *domain.User, error) {
	return s.authenticateFn(ctx, in)
}

func (s *stubAuthService) Resolve(ctx context.Context, token string) (*domain.User, error) {
	return s.resolveFn(ctx, token)
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func postLogin(t *testing.T, h *AuthHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := newTestEcho()
	req := httptest.NewRequest(http.MethodPost, "/auth", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return rec
}

func decodeMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	msg, _ := resp["message"].(string)
	return msg
}

func failingWith(err error) *stubAuthService {
	return &stubAuthService{
		authenticateFn: func(ctx context.Context, in ports.LoginInput) (string, *domain.User, error) {
			return "", nil, err
		},
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	stub := &stubAuthService{
		authenticateFn: func(ctx context.Context, in ports.LoginInput) (string, *domain.User, error) {
			if in.Login != "admin" || in.Password != "admin" {
				t.Fatalf("unexpected args: %+v", in)
			}
			return "token123", &domain.User{Login: "admin"}, nil
		},
	}
	h := NewAuthHandler(stub, false, zerolog.Nop())

	rec := postLogin(t, h, `{"login":"admin","password":"admin"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "token123" {
		t.Fatalf("expected token, got %v", resp["token"])
	}
	if len(resp) != 1 {
		t.Fatalf("expected only the token field, got %+v", resp)
	}
}

func TestAuthHandler_Login_InvalidPassword(t *testing.T) {
	h := NewAuthHandler(failingWith(domain.ErrInvalidPassword), false, zerolog.Nop())

	rec := postLogin(t, h, `{"login":"admin","password":"wrong"}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if msg := decodeMessage(t, rec); msg != "invalid password" {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestAuthHandler_Login_UserNotFound(t *testing.T) {
	h := NewAuthHandler(failingWith(domain.ErrUserNotFound), false, zerolog.Nop())

	rec := postLogin(t, h, `{"login":"ghost","password":"pwd"}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if msg := decodeMessage(t, rec); msg != "user not found" {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestAuthHandler_Login_GenericErrors(t *testing.T) {
	for _, err := range []error{domain.ErrUserNotFound, domain.ErrInvalidPassword} {
		h := NewAuthHandler(failingWith(err), true, zerolog.Nop())

		rec := postLogin(t, h, `{"login":"admin","password":"wrong"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%v: expected 400, got %d", err, rec.Code)
		}
		if msg := decodeMessage(t, rec); msg != "invalid credentials" {
			t.Fatalf("%v: unexpected message %q", err, msg)
		}
	}
}

func TestAuthHandler_Login_InternalError(t *testing.T) {
	h := NewAuthHandler(failingWith(errors.New("store down")), false, zerolog.Nop())

	rec := postLogin(t, h, `{"login":"admin","password":"admin"}`)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if msg := decodeMessage(t, rec); msg != "Server internal error" {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestAuthHandler_Login_InvalidPayload(t *testing.T) {
	stub := &stubAuthService{
		authenticateFn: func(ctx context.Context, in ports.LoginInput) (string, *domain.User, error) {
			t.Fatalf("should not be called")
			return "", nil, nil
		},
	}
	h := NewAuthHandler(stub, false, zerolog.Nop())

	for _, body := range []string{"{", `{"login":"admin"}`, `{"password":"admin"}`, `{"login":"","password":""}`} {
		rec := postLogin(t, h, body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("body %s: expected 400, got %d", body, rec.Code)
		}
	}
}

func TestAuthHandler_Login_ValidationMessage(t *testing.T) {
	h := NewAuthHandler(failingWith(nil), false, zerolog.Nop())

	rec := postLogin(t, h, `{"password":"admin"}`)

	if msg := decodeMessage(t, rec); msg != "login is required" {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestAuthHandler_Login_PasswordByteLimit(t *testing.T) {
	var calls int
	stub := &stubAuthService{
		authenticateFn: func(ctx context.Context, in ports.LoginInput) (string, *domain.User, error) {
			calls++
			return "", nil, domain.ErrInvalidPassword
		},
	}
	h := NewAuthHandler(stub, false, zerolog.Nop())

	// 72 characters, 144 bytes.
	long := strings.Repeat("ж", 72)
	rec := postLogin(t, h, `{"login":"admin","password":"`+long+`"}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if msg := decodeMessage(t, rec); msg != "password must be at most 72 bytes" {
		t.Fatalf("unexpected message %q", msg)
	}
	if calls != 0 {
		t.Fatalf("authenticate should not run for oversized passwords")
	}

	rec = postLogin(t, h, `{"login":"admin","password":"`+strings.Repeat("ж", 36)+`"}`)
	if msg := decodeMessage(t, rec); msg != "invalid password" || calls != 1 {
		t.Fatalf("72-byte password should reach authenticate, got %q after %d calls", msg, calls)
	}
}
