package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/nexaa/auth-service/internal/core/domain"
	"github.com/nexaa/auth-service/internal/core/ports"
)

const authEventCollection = "auth_events"

// AuditRepository implements ports.AuditRepository using MongoDB.
type AuditRepository struct {
	coll *mongo.Collection
}

// NewAuditRepository creates a new AuditRepository.
func NewAuditRepository(db *mongo.Database) ports.AuditRepository {
	return &AuditRepository{coll: db.Collection(authEventCollection)}
}

type mongoAuthEvent struct {
	Kind      string    `bson:"kind"`
	UserID    string    `bson:"user_id,omitempty"`
	Email     string    `bson:"email"`
	Timestamp time.Time `bson:"timestamp"`
	StoredAt  time.Time `bson:"stored_at"`
}

// InsertEvent persists an auth event to the auth_events audit collection.
func (r *AuditRepository) InsertEvent(ctx context.Context, event *domain.AuthEvent) error {
	doc := mongoAuthEvent{
		Kind:      string(event.Kind),
		UserID:    event.UserID,
		Email:     event.Email,
		Timestamp: event.Timestamp.UTC(),
		StoredAt:  time.Now().UTC(),
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return storeErr("insert auth event", err)
	}
	return nil
}

// ListRecent returns up to limit events, newest first.
func (r *AuditRepository) ListRecent(ctx context.Context, limit int64) ([]domain.AuthEvent, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(limit)

	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, storeErr("list auth events", err)
	}
	defer cur.Close(ctx)

	var events []domain.AuthEvent
	for cur.Next(ctx) {
		var me mongoAuthEvent
		if err := cur.Decode(&me); err != nil {
			return nil, storeErr("decode auth event", err)
		}
		events = append(events, domain.AuthEvent{
			Kind:      domain.AuthEventKind(me.Kind),
			UserID:    me.UserID,
			Email:     me.Email,
			Timestamp: me.Timestamp,
		})
	}
	if err := cur.Err(); err != nil {
		return nil, storeErr("list auth events", err)
	}
	return events, nil
}
