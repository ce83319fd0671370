package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/buildhub/module-catalog/internal/core/domain"
)

const collectionRatings = "ratings"

// RatingRepository persists one document per (module_id, user_id) pair,
// enforced by a unique compound index.
type RatingRepository struct {
	col *mongo.Collection
}

func NewRatingRepository(db *mongo.Database) *RatingRepository {
	return &RatingRepository{col: db.Collection(collectionRatings)}
}

// Upsert inserts or overwrites the rating in a single atomic UpdateOne.
// Two concurrent first-time submissions race on the unique index: one
// inserts, the other becomes an update of the same document.
func (r *RatingRepository) Upsert(ctx context.Context, rating *domain.Rating) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{
		"module_id": rating.ModuleID,
		"user_id":   rating.UserID,
	}
	update := bson.M{
		"$set": bson.M{
			"score":      rating.Score,
			"updated_at": rating.UpdatedAt.UTC(),
		},
		"$setOnInsert": bson.M{
			"module_id":  rating.ModuleID,
			"user_id":    rating.UserID,
			"created_at": rating.UpdatedAt.UTC(),
		},
	}

	res, err := r.col.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return false, fmt.Errorf("upsert rating: %w", err)
	}
	return res.UpsertedCount > 0, nil
}

// Summary recomputes the aggregate for one module with a $group/$avg
// pipeline. The average is never stored, so it cannot drift.
func (r *RatingRepository) Summary(ctx context.Context, moduleID string) (*domain.RatingSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"module_id": moduleID}}},
		{{Key: "$group", Value: bson.M{
			"_id":     nil,
			"average": bson.M{"$avg": "$score"},
			"count":   bson.M{"$sum": 1},
		}}},
	}

	cursor, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate ratings: %w", err)
	}
	defer cursor.Close(ctx)

	summary := &domain.RatingSummary{ModuleID: moduleID}
	if cursor.Next(ctx) {
		var row struct {
			Average float64 `bson:"average"`
			Count   int64   `bson:"count"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("decode rating summary: %w", err)
		}
		summary.Average = row.Average
		summary.Count = row.Count
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("aggregate ratings: %w", err)
	}
	return summary, nil
}

// EnsureIndexes creates the unique key backing the upsert guarantee.
func (r *RatingRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "module_id", Value: 1}, {Key: "user_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
