package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/buildhub/module-catalog/internal/core/domain"
	"github.com/buildhub/module-catalog/internal/core/ports"
)

// IdentityCache abstracts the short-lived subject-to-user lookup cache
// (Redis). It never caches the credential check itself: the verifier runs
// on every Resolve, a hit only skips the user store round trip. It is an
// optimization only: failures are logged and ignored.
type IdentityCache interface {
	Get(ctx context.Context, subject string) (*domain.Identity, bool, error)
	Set(ctx context.Context, subject string, identity domain.Identity) error
}

type identityService struct {
	verifier ports.CredentialVerifier
	users    ports.UserRepository
	cache    IdentityCache // optional, may be nil
	log      zerolog.Logger
}

// NewIdentityService returns an IdentityService backed by the injected
// credential verifier and user store. cache may be nil.
func NewIdentityService(verifier ports.CredentialVerifier, users ports.UserRepository, cache IdentityCache, log zerolog.Logger) ports.IdentityService {
	return &identityService{verifier: verifier, users: users, cache: cache, log: log}
}

// Resolve turns a session credential into a principal. The credential is
// verified on every call, so an expired or revoked token fails immediately
// regardless of cache state. The user record is created with the default
// role on first resolution; the create-if-absent is atomic in the
// repository, so concurrent first logins for one subject cannot produce
// two records.
func (s *identityService) Resolve(ctx context.Context, credential string) (domain.Identity, error) {
	credential = strings.TrimSpace(credential)
	if credential == "" {
		return domain.Identity{}, domain.ErrInvalidCredential
	}

	claims, err := s.verifier.Verify(ctx, credential)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("resolve identity: %w", domain.ErrInvalidCredential)
	}

	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx, claims.Subject)
		if err != nil {
			s.log.Warn().Err(err).Msg("identity cache read failed, resolving anyway")
		} else if ok {
			return *cached, nil
		}
	}

	user, err := s.users.EnsureBySubject(ctx, claims.Subject, claims.DisplayName)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("resolve identity: %w", err)
	}

	identity := domain.Identity{UserID: user.ID, Role: user.Role}

	if s.cache != nil {
		if err := s.cache.Set(ctx, claims.Subject, identity); err != nil {
			s.log.Warn().Err(err).Str("user_id", user.ID).Msg("identity cache write failed")
		}
	}

	return identity, nil
}

// SetRole assigns a role to the target user. Only admins may change roles.
func (s *identityService) SetRole(ctx context.Context, targetID string, role domain.Role, actor domain.Identity) (*domain.User, error) {
	if !actor.Role.AtLeast(domain.RoleAdmin) {
		return nil, domain.ErrInsufficientRole
	}
	if !role.IsValid() {
		return nil, domain.ErrInvalidRole
	}

	user, err := s.users.SetRole(ctx, targetID, role)
	if err != nil {
		return nil, fmt.Errorf("set role: %w", err)
	}

	s.log.Info().
		Str("user_id", user.ID).
		Str("role", string(role)).
		Str("actor_id", actor.UserID).
		Msg("role updated")

	return user, nil
}

// ListModerators returns all moderator-role users. Only admins may list them.
func (s *identityService) ListModerators(ctx context.Context, actor domain.Identity) ([]*domain.User, error) {
	if !actor.Role.AtLeast(domain.RoleAdmin) {
		return nil, domain.ErrInsufficientRole
	}

	users, err := s.users.ListByRole(ctx, domain.RoleModerator)
	if err != nil {
		return nil, fmt.Errorf("list moderators: %w", err)
	}
	return users, nil
}
