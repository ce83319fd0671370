package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/buildhub/module-catalog/internal/core/domain"
	"github.com/buildhub/module-catalog/internal/core/ports"
)

// AuditTrail receives moderation events for asynchronous persistence
// (the sharded dispatcher). Optional: a nil trail drops events.
type AuditTrail interface {
	Enqueue(event domain.ModerationEvent)
}

type moduleService struct {
	repo  ports.ModuleRepository
	audit AuditTrail // optional, may be nil
	log   zerolog.Logger
}

// NewModuleService returns a ModuleService over the given repository.
// audit may be nil when no moderation trail is wired.
func NewModuleService(repo ports.ModuleRepository, audit AuditTrail, log zerolog.Logger) ports.ModuleService {
	return &moduleService{repo: repo, audit: audit, log: log}
}

// Submit validates and stores a new module in pending status.
func (s *moduleService) Submit(ctx context.Context, input ports.SubmitModuleInput, actor domain.Identity) (*domain.Module, error) {
	name := strings.TrimSpace(input.Name)
	link := strings.TrimSpace(input.Link)
	if name == "" || link == "" {
		return nil, domain.ErrInvalidModule
	}

	description := strings.TrimSpace(input.Description)
	if description == "" {
		description = domain.DefaultDescription
	}

	module := &domain.Module{
		ID:          generateModuleID(),
		Name:        name,
		Description: description,
		Keywords:    input.Keywords,
		Link:        link,
		AuthorID:    actor.UserID,
		Status:      domain.StatusPending,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, module); err != nil {
		s.log.Error().Err(err).Str("name", name).Msg("failed to create module")
		return nil, fmt.Errorf("submit module: %w", err)
	}

	s.log.Info().
		Str("module_id", module.ID).
		Str("name", module.Name).
		Str("author_id", actor.UserID).
		Msg("module submitted")

	return module, nil
}

// Get returns a module by id. Unapproved modules are only visible to
// moderators; everyone else gets not-found so existence does not leak.
func (s *moduleService) Get(ctx context.Context, id string, actor *domain.Identity) (*domain.Module, error) {
	module, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get module: %w", err)
	}

	if module.Status != domain.StatusApproved && !isModerator(actor) {
		return nil, domain.ErrModuleNotFound
	}
	return module, nil
}

// List returns the approved catalog for public callers. A status filter is
// a moderator-only view of the moderation queue.
func (s *moduleService) List(ctx context.Context, filter ports.ListModulesFilter, actor *domain.Identity) ([]*domain.Module, error) {
	if filter.Status == "" {
		filter.Status = domain.StatusApproved
	}
	if filter.Status != domain.StatusApproved && !isModerator(actor) {
		return nil, domain.ErrInsufficientRole
	}
	if !filter.Status.IsValid() {
		return nil, domain.ErrInvalidStatus
	}

	modules, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list modules: %w", err)
	}
	return modules, nil
}

// Transition moves a module to the target status. Any of the three statuses
// is a valid target; restricting re-transition would block moderation
// corrections.
func (s *moduleService) Transition(ctx context.Context, id string, target domain.ModuleStatus, actor domain.Identity) (*domain.Module, error) {
	if !actor.Role.AtLeast(domain.RoleModerator) {
		return nil, domain.ErrInsufficientRole
	}
	if !target.IsValid() {
		return nil, domain.ErrInvalidStatus
	}

	module, previous, err := s.repo.SetStatus(ctx, id, target)
	if err != nil {
		return nil, fmt.Errorf("transition module: %w", err)
	}

	if s.audit != nil {
		s.audit.Enqueue(domain.ModerationEvent{
			ModuleID:   module.ID,
			FromStatus: previous,
			ToStatus:   target,
			ActorID:    actor.UserID,
			Timestamp:  time.Now().UTC(),
		})
	}

	s.log.Info().
		Str("module_id", module.ID).
		Str("from", string(previous)).
		Str("to", string(target)).
		Str("actor_id", actor.UserID).
		Msg("module status changed")

	return module, nil
}

func isModerator(actor *domain.Identity) bool {
	return actor != nil && actor.Role.AtLeast(domain.RoleModerator)
}

// generateModuleID returns a unique module id in the format MOD-XXXXXXXX.
func generateModuleID() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		// fallback: use current nanoseconds
		return fmt.Sprintf("MOD-%08X", time.Now().UnixNano()&0xFFFFFFFF)
	}
	return fmt.Sprintf("MOD-%08X", b)
}
