package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/buildhub/module-catalog/internal/core/domain"
	"github.com/buildhub/module-catalog/internal/core/ports"
)

type searchService struct {
	modules ports.ModuleRepository
	log     zerolog.Logger
}

// NewSearchService returns a SearchService reading from the module
// repository. It maintains no index of its own; the scan is linear in
// corpus size, which is fine at catalog scale.
func NewSearchService(modules ports.ModuleRepository, log zerolog.Logger) ports.SearchService {
	return &searchService{modules: modules, log: log}
}

// Search runs a case-insensitive substring query over the corpus. The
// public scope sees approved modules only; the full-corpus scope requires
// a moderator.
func (s *searchService) Search(ctx context.Context, input ports.SearchInput) ([]*domain.Module, error) {
	query := strings.ToLower(strings.TrimSpace(input.Query))
	if query == "" {
		return nil, domain.ErrEmptyQuery
	}

	filter := ports.ListModulesFilter{Status: domain.StatusApproved}
	if input.Scope == ports.ScopeAll {
		if input.Actor == nil || !input.Actor.Role.AtLeast(domain.RoleModerator) {
			return nil, domain.ErrInsufficientRole
		}
		filter.Status = ""
	}

	corpus, err := s.modules.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("search modules: %w", err)
	}

	results := make([]*domain.Module, 0)
	for _, m := range corpus {
		if matchesQuery(m, query) {
			results = append(results, m)
		}
	}

	s.log.Debug().
		Str("query", query).
		Str("scope", string(input.Scope)).
		Int("hits", len(results)).
		Msg("search executed")

	return results, nil
}

// matchesQuery is the single matching predicate: folded substring
// containment over name, description, and each keyword. Swapping in an
// index later only requires replacing this function's call site.
func matchesQuery(m *domain.Module, query string) bool {
	if strings.Contains(strings.ToLower(m.Name), query) {
		return true
	}
	if strings.Contains(strings.ToLower(m.Description), query) {
		return true
	}
	for _, k := range m.Keywords {
		if strings.Contains(strings.ToLower(k), query) {
			return true
		}
	}
	return false
}
