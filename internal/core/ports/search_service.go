package ports

import (
	"context"

	"github.com/buildhub/module-catalog/internal/core/domain"
)

// SearchScope selects which part of the corpus a query runs over.
type SearchScope string

const (
	// ScopePublic searches approved modules only.
	ScopePublic SearchScope = "public"
	// ScopeAll searches the full corpus regardless of status. Moderator only.
	ScopeAll SearchScope = "all"
)

// SearchInput carries a catalog search request. Actor may be nil for
// anonymous public searches.
type SearchInput struct {
	Query string
	Scope SearchScope
	Actor *domain.Identity
}

// SearchService runs case-insensitive substring search over module name,
// description, and keywords. Results preserve the corpus listing order;
// there is no relevance ranking.
type SearchService interface {
	Search(ctx context.Context, input SearchInput) ([]*domain.Module, error)
}
