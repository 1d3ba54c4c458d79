package mongo

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/99minutos/auth-api/internal/core/domain"
)

func TestMongoUser_RoundTrip(t *testing.T) {
	in := &domain.User{ID: "u-1", Login: "admin", Name: "Admin", PasswordHash: "$2a$10$x", Avatar: "https://i.pravatar.cc/300"}

	doc := toMongoUser(in, time.Unix(1700000000, 0))
	assert.Equal(t, int64(1700000000), doc.CreatedAt)
	assert.Equal(t, in, doc.toDomain())
}

func TestAuthEventDoc_OptionalFields(t *testing.T) {
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	doc := authEventDoc(&domain.AuthEvent{Login: "ghost", Outcome: domain.OutcomeUserNotFound, At: at}, at)
	assert.Equal(t, "user_not_found", doc["outcome"])
	assert.NotContains(t, doc, "user_id")
	assert.NotContains(t, doc, "remote_ip")

	doc = authEventDoc(&domain.AuthEvent{Login: "admin", Outcome: domain.OutcomeSuccess, UserID: "u-1", RemoteIP: "10.0.0.1", At: at}, at)
	assert.Equal(t, "u-1", doc["user_id"])
	assert.Equal(t, "10.0.0.1", doc["remote_ip"])
}

// TestUserRepository_Mongo runs against a live server when MONGO_TEST_URI is set.
func TestUserRepository_Mongo(t *testing.T) {
	uri := strings.TrimSpace(os.Getenv("MONGO_TEST_URI"))
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}

	ctx := context.Background()
	client, db, err := Connect(ctx, Config{URI: uri, Database: "auth_api_test_" + uuid.NewString()[:8]})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Drop(ctx)
		_ = client.Disconnect(ctx)
	})

	repo := NewUserRepository(db)
	require.NoError(t, repo.EnsureIndexes(ctx))

	user := &domain.User{ID: uuid.NewString(), Login: "admin", Name: "Admin", PasswordHash: "$2a$10$x"}
	_, err = repo.Create(ctx, user)
	require.NoError(t, err)

	_, err = repo.Create(ctx, &domain.User{ID: uuid.NewString(), Login: "admin"})
	assert.ErrorIs(t, err, domain.ErrUserExists)

	found, err := repo.FindByLogin(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	_, err = repo.FindByLogin(ctx, "ghost")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	audit := NewAuditRepository(db)
	require.NoError(t, audit.InsertAuthEvent(ctx, &domain.AuthEvent{Login: "admin", Outcome: domain.OutcomeSuccess, At: time.Now()}))
}
