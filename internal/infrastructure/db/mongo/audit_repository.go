package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/buildhub/module-catalog/internal/core/domain"
	"github.com/buildhub/module-catalog/internal/core/ports"
)

// AuditRepository implements ports.AuditRepository using MongoDB.
type AuditRepository struct {
	db *mongo.Database
}

// NewAuditRepository creates a new AuditRepository.
func NewAuditRepository(db *mongo.Database) ports.AuditRepository {
	return &AuditRepository{db: db}
}

// InsertModerationEvent persists a moderation event to the
// moderation_events audit collection.
func (r *AuditRepository) InsertModerationEvent(ctx context.Context, event *domain.ModerationEvent) error {
	doc := bson.M{
		"module_id":    event.ModuleID,
		"from_status":  string(event.FromStatus),
		"to_status":    string(event.ToStatus),
		"actor_id":     event.ActorID,
		"timestamp":    event.Timestamp.UTC(),
		"processed_at": time.Now().UTC(),
	}

	_, err := r.db.Collection("moderation_events").InsertOne(ctx, doc)
	return err
}
