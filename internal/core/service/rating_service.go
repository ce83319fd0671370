package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/buildhub/module-catalog/internal/core/domain"
	"github.com/buildhub/module-catalog/internal/core/ports"
)

type ratingService struct {
	ratings ports.RatingRepository
	modules ports.ModuleRepository
	log     zerolog.Logger
}

// NewRatingService returns a RatingService. The module repository is used
// only for existence and approval checks.
func NewRatingService(ratings ports.RatingRepository, modules ports.ModuleRepository, log zerolog.Logger) ports.RatingService {
	return &ratingService{ratings: ratings, modules: modules, log: log}
}

// Submit upserts the actor's score for an approved module and returns the
// recomputed aggregate. The upsert is keyed by (module_id, user_id), so a
// resubmission overwrites rather than duplicates.
func (s *ratingService) Submit(ctx context.Context, input ports.SubmitRatingInput) (*ports.RatingResult, error) {
	if input.Score < domain.MinScore || input.Score > domain.MaxScore {
		return nil, domain.ErrScoreOutOfRange
	}

	module, err := s.modules.FindByID(ctx, input.ModuleID)
	if err != nil {
		return nil, fmt.Errorf("submit rating: %w", err)
	}
	if module.Status != domain.StatusApproved {
		return nil, domain.ErrModuleNotRatable
	}

	rating := &domain.Rating{
		ModuleID:  input.ModuleID,
		UserID:    input.Actor.UserID,
		Score:     input.Score,
		UpdatedAt: time.Now().UTC(),
	}

	created, err := s.ratings.Upsert(ctx, rating)
	if err != nil {
		s.log.Error().Err(err).Str("module_id", input.ModuleID).Msg("failed to upsert rating")
		return nil, fmt.Errorf("submit rating: %w", err)
	}

	result, err := s.Average(ctx, input.ModuleID)
	if err != nil {
		return nil, err
	}
	result.Updated = !created

	s.log.Info().
		Str("module_id", input.ModuleID).
		Str("user_id", input.Actor.UserID).
		Int("score", input.Score).
		Bool("updated", result.Updated).
		Msg("rating submitted")

	return result, nil
}

// Average recomputes the module's mean score from the full rating set.
// Rounded to two decimals, half away from zero; 0.0 when no ratings exist.
func (s *ratingService) Average(ctx context.Context, moduleID string) (*ports.RatingResult, error) {
	summary, err := s.ratings.Summary(ctx, moduleID)
	if err != nil {
		return nil, fmt.Errorf("average rating: %w", err)
	}

	avg := 0.0
	if summary.Count > 0 {
		avg = domain.RoundAverage(summary.Average)
	}

	return &ports.RatingResult{
		ModuleID: moduleID,
		Average:  avg,
		Count:    summary.Count,
	}, nil
}
