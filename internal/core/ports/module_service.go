package ports

import (
	"context"

	"github.com/buildhub/module-catalog/internal/core/domain"
)

// SubmitModuleInput carries the data for a new module submission.
type SubmitModuleInput struct {
	Name        string
	Description string
	Keywords    []string
	Link        string
}

// ModuleService defines the use-case operations for module submission,
// retrieval, and moderation. Reads take an optional actor (nil means an
// anonymous public caller); mutations always require one.
type ModuleService interface {
	// Submit creates a new pending module owned by the actor.
	Submit(ctx context.Context, input SubmitModuleInput, actor domain.Identity) (*domain.Module, error)

	// Get returns a module by id. Anonymous and user-role callers only see
	// approved modules; moderators and admins see everything.
	Get(ctx context.Context, id string, actor *domain.Identity) (*domain.Module, error)

	// List returns the public approved catalog. A status filter is a
	// moderator-only view of the submission queue.
	List(ctx context.Context, filter ListModulesFilter, actor *domain.Identity) ([]*domain.Module, error)

	// Transition moves a module to the target status. Requires a moderator
	// or admin actor; any of the three statuses is a valid target so that
	// moderation decisions can be corrected.
	Transition(ctx context.Context, id string, target domain.ModuleStatus, actor domain.Identity) (*domain.Module, error)
}
