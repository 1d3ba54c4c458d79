package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/auth-api/internal/api/middleware"
	"github.com/99minutos/auth-api/internal/core/domain"
)

type stubCatalog struct {
	articles []domain.Article
	err      error
}

func (s *stubCatalog) List(_ context.Context) ([]domain.Article, error) {
	return s.articles, s.err
}

func newGetContext(path string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestProfileHandler_Me(t *testing.T) {
	c, rec := newGetContext("/private/me")
	c.Set(middleware.UserKey, &domain.User{
		ID:           "u-1",
		Login:        "admin",
		Name:         "Admin",
		PasswordHash: "$2a$10$secret",
		Avatar:       "https://i.pravatar.cc/300",
	})

	if err := NewProfileHandler().Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	want := map[string]any{"id": "u-1", "login": "admin", "name": "Admin", "avatar": "https://i.pravatar.cc/300"}
	if len(resp) != len(want) {
		t.Fatalf("unexpected fields: %+v", resp)
	}
	for k, v := range want {
		if resp[k] != v {
			t.Fatalf("field %s = %v, want %v", k, resp[k], v)
		}
	}
}

func TestProfileHandler_Me_FromRequestContext(t *testing.T) {
	c, rec := newGetContext("/private/me")
	ctx := middleware.ContextWithUser(c.Request().Context(), &domain.User{ID: "u-2", Login: "bob"})
	c.SetRequest(c.Request().WithContext(ctx))

	if err := NewProfileHandler().Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestProfileHandler_Me_WithoutIdentity(t *testing.T) {
	c, _ := newGetContext("/private/me")

	err := NewProfileHandler().Me(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestNewsHandler_List(t *testing.T) {
	catalog := &stubCatalog{articles: []domain.Article{
		{ID: "1", Title: "Приключение", Image: "https://i.pravatar.cc/300?img=1", Content: "..."},
		{ID: "2", Title: "Опыт сплава по реке", Image: "https://i.pravatar.cc/300?img=2", Content: "..."},
	}}
	c, rec := newGetContext("/private/news")
	c.Set(middleware.UserKey, &domain.User{ID: "u-1"})

	if err := NewNewsHandler(catalog).List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 2 || resp[0]["title"] != "Приключение" || resp[1]["image"] != "https://i.pravatar.cc/300?img=2" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestNewsHandler_List_CatalogError(t *testing.T) {
	c, _ := newGetContext("/private/news")
	c.Set(middleware.UserKey, &domain.User{ID: "u-1"})

	err := NewNewsHandler(&stubCatalog{err: errors.New("boom")}).List(c)
	if err == nil {
		t.Fatalf("expected error")
	}
}

func TestStatusHandler_StaticEndpoints(t *testing.T) {
	h := NewStatusHandler(0)

	cases := []struct {
		name   string
		fn     echo.HandlerFunc
		status int
		body   string
	}{
		{"root", h.Root, http.StatusOK, `{"GET":"ok"}`},
		{"data", h.Data, http.StatusOK, `{"status":"ok"}`},
		{"error", h.Error, http.StatusInternalServerError, `{"status":"Internal Error"}`},
		{"loading", h.Loading, http.StatusOK, `{"status":"ok"}`},
	}
	for _, tc := range cases {
		c, rec := newGetContext("/")
		if err := tc.fn(c); err != nil {
			t.Fatalf("%s: handler error: %v", tc.name, err)
		}
		if rec.Code != tc.status {
			t.Fatalf("%s: expected %d, got %d", tc.name, tc.status, rec.Code)
		}
		if got := rec.Body.String(); got != tc.body+"\n" {
			t.Fatalf("%s: unexpected body %q", tc.name, got)
		}
	}
}

func TestStatusHandler_Loading_Waits(t *testing.T) {
	h := NewStatusHandler(50 * time.Millisecond)
	c, rec := newGetContext("/loading")

	start := time.Now()
	if err := h.Loading(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 50*time.Millisecond {
		t.Fatalf("responded after %v, expected at least 50ms", elapsed)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestStatusHandler_Loading_ClientGone(t *testing.T) {
	h := NewStatusHandler(time.Hour)
	c, rec := newGetContext("/loading")

	ctx, cancel := context.WithCancel(c.Request().Context())
	c.SetRequest(c.Request().WithContext(ctx))
	cancel()

	if err := h.Loading(c); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if rec.Body.Len() != 0 {
		t.Fatalf("expected no body, got %q", rec.Body.String())
	}
}
