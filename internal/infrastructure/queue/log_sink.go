package queue

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/99minutos/auth-api/internal/core/domain"
)

// LogSink is an AuditRepository that writes login attempts to the log. It is
// used when no durable audit store is configured.
type LogSink struct {
	log zerolog.Logger
}

func NewLogSink(log zerolog.Logger) *LogSink {
	return &LogSink{log: log.With().Str("component", "audit").Logger()}
}

func (s *LogSink) InsertAuthEvent(_ context.Context, event *domain.AuthEvent) error {
	s.log.Info().
		Str("login", event.Login).
		Str("outcome", string(event.Outcome)).
		Str("user_id", event.UserID).
		Str("remote_ip", event.RemoteIP).
		Time("at", event.At).
		Msg("auth event")
	return nil
}
