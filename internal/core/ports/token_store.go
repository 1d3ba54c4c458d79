package ports

import (
	"context"

	"github.com/99minutos/auth-api/internal/core/domain"
)

// TokenStore maps issued bearer tokens to the identity they were issued for.
// It is the only authority for token resolution.
type TokenStore interface {
	// Put registers token for user. A token is written exactly once.
	Put(ctx context.Context, token string, user *domain.User) error

	// Get resolves token, returning domain.ErrTokenNotFound for unknown or
	// expired tokens.
	Get(ctx context.Context, token string) (*domain.User, error)
}
