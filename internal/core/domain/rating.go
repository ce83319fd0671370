package domain

import (
	"errors"
	"math"
	"time"
)

const (
	MinScore = 1
	MaxScore = 5
)

var ErrScoreOutOfRange = errors.New("score must be between 1 and 5")
var ErrModuleNotRatable = errors.New("module is not approved for rating")

// Rating is a single user's score for one module. At most one rating exists
// per (module, user) pair; resubmission overwrites the prior score.
type Rating struct {
	ModuleID  string    `json:"module_id"`
	UserID    string    `json:"user_id"`
	Score     int       `json:"score"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RatingSummary is the derived aggregate over all ratings for one module.
// Average is the raw arithmetic mean; it is never persisted.
type RatingSummary struct {
	ModuleID string  `json:"module_id"`
	Average  float64 `json:"average"`
	Count    int64   `json:"count"`
}

// RoundAverage rounds a raw mean to two decimal places, half away from zero.
// Scores are positive, so the .xx5 boundary always rounds up.
func RoundAverage(avg float64) float64 {
	return math.Round(avg*100) / 100
}
