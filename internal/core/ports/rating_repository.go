package ports

import (
	"context"

	"github.com/buildhub/module-catalog/internal/core/domain"
)

// RatingRepository defines persistence for per-user module ratings.
type RatingRepository interface {
	// Upsert atomically inserts or overwrites the rating keyed by
	// (module_id, user_id) and reports whether a new record was created.
	// Two concurrent first-time submissions for the same key must collapse
	// to a single record.
	Upsert(ctx context.Context, r *domain.Rating) (created bool, err error)

	// Summary recomputes the aggregate over all ratings for the module.
	// A module with no ratings yields a zero Average and Count.
	Summary(ctx context.Context, moduleID string) (*domain.RatingSummary, error)
}
