package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/99minutos/auth-api/internal/core/domain"
	"github.com/99minutos/auth-api/internal/core/ports"
)

// PasswordCost is the bcrypt work factor used for every stored password.
const PasswordCost = 10

// dummyHash is compared against when the login is unknown so that a miss
// takes as long as a wrong password.
var dummyHash = sync.OnceValue(func() []byte {
	h, _ := bcrypt.GenerateFromPassword([]byte("placeholder-password"), PasswordCost)
	return h
})

// AuthService verifies credentials and issues opaque bearer tokens.
type AuthService struct {
	users  ports.UserRepository
	tokens ports.TokenStore
	audit  ports.AuditRecorder
	log    zerolog.Logger
}

// NewAuthService wires the authenticator. audit may be nil.
func NewAuthService(users ports.UserRepository, tokens ports.TokenStore, audit ports.AuditRecorder, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, audit: audit, log: log}
}

// HashPassword returns the bcrypt hash of password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Authenticate checks login/password and, on success, registers a fresh
// token in the token store. Failed attempts never touch the token store.
func (s *AuthService) Authenticate(ctx context.Context, in ports.LoginInput) (token string, user *domain.User, err error) {
	defer func() { s.record(in, user, err) }()

	if in.Login == "" || in.Password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	found, err := s.users.FindByLogin(ctx, in.Login)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash(), []byte(in.Password))
			return "", nil, domain.ErrUserNotFound
		}
		return "", nil, fmt.Errorf("authenticate: find user: %w", err)
	}

	if cmpErr := bcrypt.CompareHashAndPassword([]byte(found.PasswordHash), []byte(in.Password)); cmpErr != nil {
		if errors.Is(cmpErr, bcrypt.ErrMismatchedHashAndPassword) {
			return "", nil, domain.ErrInvalidPassword
		}
		return "", nil, fmt.Errorf("authenticate: compare password: %w", cmpErr)
	}

	id, err := uuid.NewRandom()
	if err != nil {
		return "", nil, fmt.Errorf("authenticate: generate token: %w", err)
	}
	token = id.String()

	if err := s.tokens.Put(ctx, token, found); err != nil {
		return "", nil, fmt.Errorf("authenticate: store token: %w", err)
	}

	return token, found, nil
}

// Resolve maps a bearer token to its user. Malformed, unknown and expired
// tokens all yield domain.ErrUnauthorized.
func (s *AuthService) Resolve(ctx context.Context, token string) (*domain.User, error) {
	if _, err := uuid.Parse(token); err != nil {
		return nil, domain.ErrUnauthorized
	}

	user, err := s.tokens.Get(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrTokenNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("resolve token: %w", err)
	}
	return user, nil
}

func (s *AuthService) record(in ports.LoginInput, user *domain.User, err error) {
	outcome := domain.OutcomeOf(err)

	ev := s.log.Debug()
	if outcome == domain.OutcomeError {
		ev = s.log.Error().Err(err)
	}
	ev.Str("login", in.Login).Str("outcome", string(outcome)).Msg("login attempt")

	if s.audit == nil {
		return
	}
	event := domain.AuthEvent{
		Login:    in.Login,
		Outcome:  outcome,
		RemoteIP: in.RemoteIP,
		At:       time.Now().UTC(),
	}
	if user != nil {
		event.UserID = user.ID
	}
	s.audit.Record(event)
}
