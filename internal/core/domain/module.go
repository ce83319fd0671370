package domain

import (
	"errors"
	"time"
)

// ModuleStatus represents the moderation state of a catalog module.
type ModuleStatus string

const (
	StatusPending  ModuleStatus = "pending"
	StatusApproved ModuleStatus = "approved"
	StatusRejected ModuleStatus = "rejected"
)

var ErrModuleNotFound = errors.New("module not found")
var ErrInvalidModule = errors.New("module name and link are required")
var ErrInvalidStatus = errors.New("invalid module status")
var ErrModuleExists = errors.New("module already exists")
var ErrEmptyQuery = errors.New("search query must not be empty")

// DefaultDescription is stored when a submission carries no description.
const DefaultDescription = "No description provided."

// IsValid reports whether s is one of the three known statuses.
func (s ModuleStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Module is a catalog entry describing a submitted piece of software.
// Descriptive fields are immutable after creation; only Status changes,
// and only through a moderation action.
type Module struct {
	ID          string       `json:"id" bson:"_id,omitempty"`
	Name        string       `json:"name" bson:"name"`
	Description string       `json:"description" bson:"description"`
	Keywords    []string     `json:"keywords" bson:"keywords"`
	Link        string       `json:"link" bson:"link"`
	AuthorID    string       `json:"author_id" bson:"author_id"`
	Status      ModuleStatus `json:"status" bson:"status"`
	CreatedAt   time.Time    `json:"created_at" bson:"created_at"`
}

// ModerationEvent records a single status transition for the audit trail.
type ModerationEvent struct {
	ModuleID   string       `json:"module_id"`
	FromStatus ModuleStatus `json:"from_status"`
	ToStatus   ModuleStatus `json:"to_status"`
	ActorID    string       `json:"actor_id"`
	Timestamp  time.Time    `json:"timestamp"`
}
