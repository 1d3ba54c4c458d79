package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/auth-api/internal/api/metrics"
	"github.com/99minutos/auth-api/internal/core/domain"
)

// UserKey is the echo.Context key holding the authenticated *domain.User.
const UserKey = "user"

type ctxKey struct{}

// TokenResolver resolves a bearer token to the user it was issued for.
type TokenResolver interface {
	Resolve(ctx context.Context, token string) (*domain.User, error)
}

// Auth admits a request only if it carries "Authorization: Bearer <token>"
// with a token the resolver knows. The resolved user is attached to both the
// echo.Context and the request context before next runs.
func Auth(resolver TokenResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := bearerToken(c.Request())
			if !ok {
				return reject()
			}

			user, err := resolver.Resolve(c.Request().Context(), token)
			if err != nil {
				if errors.Is(err, domain.ErrUnauthorized) {
					return reject()
				}
				return fmt.Errorf("resolve bearer token: %w", err)
			}

			metrics.GuardDecisionsTotal.WithLabelValues("admitted").Inc()
			c.Set(UserKey, user)
			c.SetRequest(c.Request().WithContext(ContextWithUser(c.Request().Context(), user)))

			return next(c)
		}
	}
}

func reject() error {
	metrics.GuardDecisionsTotal.WithLabelValues("rejected").Inc()
	return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
}

func bearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get(echo.HeaderAuthorization)
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

// ContextWithUser returns a copy of ctx carrying user.
func ContextWithUser(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, ctxKey{}, user)
}

// UserFromContext returns the user stored by Auth, if any.
func UserFromContext(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(ctxKey{}).(*domain.User)
	return user, ok && user != nil
}
