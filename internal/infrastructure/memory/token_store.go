package memory

import (
	"context"
	"sync"
	"time"

	"github.com/99minutos/auth-api/internal/core/domain"
)

type tokenEntry struct {
	user      domain.User
	expiresAt time.Time // zero = never
}

func (e tokenEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// TokenStore is a map-backed ports.TokenStore. With a positive TTL, entries
// stop resolving once they are older than the TTL and are dropped on the
// next read.
type TokenStore struct {
	mu     sync.RWMutex
	ttl    time.Duration
	now    func() time.Time
	tokens map[string]tokenEntry
}

// NewTokenStore creates a TokenStore. ttl <= 0 disables expiry.
func NewTokenStore(ttl time.Duration) *TokenStore {
	return &TokenStore{
		ttl:    ttl,
		now:    time.Now,
		tokens: make(map[string]tokenEntry),
	}
}

func (s *TokenStore) Put(_ context.Context, token string, user *domain.User) error {
	entry := tokenEntry{user: *user}
	entry.user.PasswordHash = ""
	if s.ttl > 0 {
		entry.expiresAt = s.now().Add(s.ttl)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.tokens[token]; exists {
		return domain.ErrTokenExists
	}
	s.tokens[token] = entry
	return nil
}

func (s *TokenStore) Get(_ context.Context, token string) (*domain.User, error) {
	s.mu.RLock()
	entry, ok := s.tokens[token]
	s.mu.RUnlock()

	if !ok {
		return nil, domain.ErrTokenNotFound
	}

	if entry.expired(s.now()) {
		s.mu.Lock()
		if cur, still := s.tokens[token]; still && cur.expired(s.now()) {
			delete(s.tokens, token)
		}
		s.mu.Unlock()
		return nil, domain.ErrTokenNotFound
	}

	u := entry.user
	return &u, nil
}

// Len reports the number of stored tokens, expired ones included until they
// are read.
func (s *TokenStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tokens)
}
