package memory

import (
	"context"
	"sync"

	"github.com/99minutos/auth-api/internal/core/domain"
)

// UserRepository is a map-backed ports.UserRepository keyed by login.
type UserRepository struct {
	mu    sync.RWMutex
	users map[string]domain.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]domain.User)}
}

func (r *UserRepository) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[user.Login]; exists {
		return nil, domain.ErrUserExists
	}
	r.users[user.Login] = *user

	created := *user
	return &created, nil
}

func (r *UserRepository) FindByLogin(_ context.Context, login string) (*domain.User, error) {
	r.mu.RLock()
	u, ok := r.users[login]
	r.mu.RUnlock()

	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &u, nil
}
