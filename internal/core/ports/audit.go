package ports

import (
	"context"

	"github.com/99minutos/auth-api/internal/core/domain"
)

// AuditRecorder accepts login attempts without blocking the caller.
type AuditRecorder interface {
	Record(event domain.AuthEvent)
}

// AuditRepository persists login attempts.
type AuditRepository interface {
	InsertAuthEvent(ctx context.Context, event *domain.AuthEvent) error
}
