package ports

import (
	"context"

	"github.com/99minutos/auth-api/internal/core/domain"
)

// UserRepository is the credential store. Lookups dominate; Create is only
// used to seed accounts at start-up.
type UserRepository interface {
	FindByLogin(ctx context.Context, login string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
