package ports

import (
	"context"

	"github.com/buildhub/module-catalog/internal/core/domain"
)

// SubmitRatingInput carries one user's score for one module.
type SubmitRatingInput struct {
	ModuleID string
	Score    int
	Actor    domain.Identity
}

// RatingResult is the derived aggregate returned after a submission or an
// average lookup. Average is rounded to two decimal places.
type RatingResult struct {
	ModuleID string
	Average  float64
	Count    int64
	// Updated is true when the submission overwrote the actor's prior score.
	Updated bool
}

// RatingService defines rating submission and aggregate reads.
type RatingService interface {
	// Submit upserts the actor's rating for an approved module and returns
	// the new aggregate.
	Submit(ctx context.Context, input SubmitRatingInput) (*RatingResult, error)

	// Average returns the current aggregate for the module, 0.0 when no
	// ratings exist.
	Average(ctx context.Context, moduleID string) (*RatingResult, error)
}
