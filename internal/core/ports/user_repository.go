package ports

import (
	"context"

	"github.com/buildhub/module-catalog/internal/core/domain"
)

// UserRepository defines persistence for catalog users, keyed by the
// identity provider's subject id.
type UserRepository interface {
	// EnsureBySubject finds the user for the given subject, creating it with
	// the default user role when absent. The create-if-absent must be atomic:
	// concurrent first-time resolutions for one subject yield one record.
	EnsureBySubject(ctx context.Context, subject, displayName string) (*domain.User, error)

	FindByID(ctx context.Context, id string) (*domain.User, error)

	// SetRole overwrites the user's role and returns the updated record.
	SetRole(ctx context.Context, id string, role domain.Role) (*domain.User, error)

	ListByRole(ctx context.Context, role domain.Role) ([]*domain.User, error)
}
