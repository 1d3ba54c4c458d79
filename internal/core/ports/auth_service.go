package ports

import (
	"context"

	"github.com/99minutos/auth-api/internal/core/domain"
)

// LoginInput is the DTO passed from the transport layer to AuthService.
type LoginInput struct {
	Login    string
	Password string
	RemoteIP string // only recorded in the audit trail
}

type AuthService interface {
	Authenticate(ctx context.Context, in LoginInput) (string, *domain.User, error)
	Resolve(ctx context.Context, token string) (*domain.User, error)
}
