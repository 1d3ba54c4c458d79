package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/99minutos/auth-api/internal/core/domain"
)

const usersCollection = "auth_users"

// UserRepository is a durable ports.UserRepository.
type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(usersCollection)}
}

type mongoUser struct {
	ID           string `bson:"_id"`
	Login        string `bson:"login"`
	Name         string `bson:"name"`
	PasswordHash string `bson:"password_hash"`
	Avatar       string `bson:"avatar"`
	CreatedAt    int64  `bson:"created_at"`
}

// EnsureIndexes creates the unique login index. Safe to call on every start.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "login", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("login_unique"),
	})
	if err != nil {
		return fmt.Errorf("create login index: %w", err)
	}
	return nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	doc := toMongoUser(user, time.Now().UTC())

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	return doc.toDomain(), nil
}

func (r *UserRepository) FindByLogin(ctx context.Context, login string) (*domain.User, error) {
	var mu mongoUser
	if err := r.coll.FindOne(ctx, bson.M{"login": login}).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return mu.toDomain(), nil
}

func toMongoUser(u *domain.User, now time.Time) mongoUser {
	return mongoUser{
		ID:           u.ID,
		Login:        u.Login,
		Name:         u.Name,
		PasswordHash: u.PasswordHash,
		Avatar:       u.Avatar,
		CreatedAt:    now.Unix(),
	}
}

func (mu mongoUser) toDomain() *domain.User {
	return &domain.User{
		ID:           mu.ID,
		Login:        mu.Login,
		Name:         mu.Name,
		PasswordHash: mu.PasswordHash,
		Avatar:       mu.Avatar,
	}
}
