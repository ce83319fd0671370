package ports

import (
	"context"

	"github.com/buildhub/module-catalog/internal/core/domain"
)

// ListModulesFilter narrows a module listing. An empty Status returns the
// full corpus. Results are ordered by creation time then id so repeated
// calls without intervening writes are stable.
type ListModulesFilter struct {
	Status domain.ModuleStatus
}

// ModuleRepository defines persistence operations for catalog modules.
// Every operation must be bounded by the caller's context deadline, and
// SetStatus must be atomic with respect to concurrent writers on the same id.
type ModuleRepository interface {
	Create(ctx context.Context, m *domain.Module) error
	FindByID(ctx context.Context, id string) (*domain.Module, error)
	List(ctx context.Context, filter ListModulesFilter) ([]*domain.Module, error)
	// SetStatus overwrites the module's status in a single read-modify-write
	// and returns the updated module together with the status it replaced,
	// read in the same atomic step.
	SetStatus(ctx context.Context, id string, status domain.ModuleStatus) (*domain.Module, domain.ModuleStatus, error)
}
