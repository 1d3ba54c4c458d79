package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/99minutos/auth-api/internal/core/domain"
	"github.com/99minutos/auth-api/internal/core/ports"
)

// SeedUser describes an account created at start-up.
type SeedUser struct {
	Login    string
	Password string
	Name     string
	Avatar   string
}

// Seed creates the given accounts. Accounts that already exist (e.g. in a
// durable backend after a restart) are left untouched.
func Seed(ctx context.Context, repo ports.UserRepository, seeds []SeedUser, log zerolog.Logger) error {
	for _, s := range seeds {
		if s.Login == "" || s.Password == "" {
			return fmt.Errorf("seed: %w", domain.ErrInvalidCredentials)
		}

		hash, err := HashPassword(s.Password)
		if err != nil {
			return fmt.Errorf("seed %q: hash password: %w", s.Login, err)
		}

		_, err = repo.Create(ctx, &domain.User{
			ID:           uuid.NewString(),
			Login:        s.Login,
			Name:         s.Name,
			PasswordHash: hash,
			Avatar:       s.Avatar,
		})
		switch {
		case errors.Is(err, domain.ErrUserExists):
			log.Debug().Str("login", s.Login).Msg("seed user already present")
		case err != nil:
			return fmt.Errorf("seed %q: %w", s.Login, err)
		default:
			log.Info().Str("login", s.Login).Msg("seed user created")
		}
	}
	return nil
}
