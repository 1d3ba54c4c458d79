package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/99minutos/auth-api/internal/core/domain"
)

const tokenKeyPrefix = "auth:token:"

// TokenStore keeps issued tokens in Redis so that several API instances can
// share them. Key format: auth:token:<token>. A zero TTL keeps keys forever.
type TokenStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewTokenStore creates a TokenStore wrapping the given Redis client.
func NewTokenStore(client *redis.Client, ttl time.Duration) *TokenStore {
	if ttl < 0 {
		ttl = 0
	}
	return &TokenStore{client: client, ttl: ttl}
}

// storedIdentity is the JSON value kept under each token key. It never
// carries the password hash.
type storedIdentity struct {
	ID       string    `json:"id"`
	Login    string    `json:"login"`
	Name     string    `json:"name"`
	Avatar   string    `json:"avatar"`
	IssuedAt time.Time `json:"issued_at"`
}

// Put writes the token with SETNX so an existing token is never overwritten.
func (s *TokenStore) Put(ctx context.Context, token string, user *domain.User) error {
	data, err := encodeIdentity(user, time.Now().UTC())
	if err != nil {
		return err
	}

	ok, err := s.client.SetNX(ctx, tokenKey(token), data, s.ttl).Result()
	if err != nil {
		return fmt.Errorf("store token: %w", err)
	}
	if !ok {
		return domain.ErrTokenExists
	}
	return nil
}

// Get resolves a token. Redis expires keys itself, so a missing key covers
// both unknown and expired tokens.
func (s *TokenStore) Get(ctx context.Context, token string) (*domain.User, error) {
	data, err := s.client.Get(ctx, tokenKey(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrTokenNotFound
		}
		return nil, fmt.Errorf("get token: %w", err)
	}
	return decodeIdentity(data)
}

func tokenKey(token string) string {
	return tokenKeyPrefix + token
}

func encodeIdentity(user *domain.User, issuedAt time.Time) ([]byte, error) {
	data, err := json.Marshal(storedIdentity{
		ID:       user.ID,
		Login:    user.Login,
		Name:     user.Name,
		Avatar:   user.Avatar,
		IssuedAt: issuedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("encode token identity: %w", err)
	}
	return data, nil
}

func decodeIdentity(data []byte) (*domain.User, error) {
	var id storedIdentity
	if err := json.Unmarshal(data, &id); err != nil {
		return nil, fmt.Errorf("decode token identity: %w", err)
	}
	return &domain.User{
		ID:     id.ID,
		Login:  id.Login,
		Name:   id.Name,
		Avatar: id.Avatar,
	}, nil
}
