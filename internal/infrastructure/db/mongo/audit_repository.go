package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/99minutos/auth-api/internal/core/domain"
)

const authEventsCollection = "auth_events"

// AuditRepository appends login attempts to the auth_events collection.
type AuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{coll: db.Collection(authEventsCollection)}
}

func (r *AuditRepository) InsertAuthEvent(ctx context.Context, event *domain.AuthEvent) error {
	if _, err := r.coll.InsertOne(ctx, authEventDoc(event, time.Now().UTC())); err != nil {
		return fmt.Errorf("insert auth event: %w", err)
	}
	return nil
}

func authEventDoc(event *domain.AuthEvent, recordedAt time.Time) bson.M {
	doc := bson.M{
		"login":       event.Login,
		"outcome":     string(event.Outcome),
		"at":          event.At.UTC(),
		"recorded_at": recordedAt,
	}
	if event.UserID != "" {
		doc["user_id"] = event.UserID
	}
	if event.RemoteIP != "" {
		doc["remote_ip"] = event.RemoteIP
	}
	return doc
}
