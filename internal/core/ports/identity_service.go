package ports

import (
	"context"

	"github.com/buildhub/module-catalog/internal/core/domain"
)

// CredentialClaims are the verified claims extracted from a session
// credential by the external verification capability.
type CredentialClaims struct {
	// Subject is the identity provider's stable opaque user id.
	Subject string
	// DisplayName is an optional human-readable name claim.
	DisplayName string
}

// CredentialVerifier is the injected black-box "verify token" capability.
// The catalog core never mints or cryptographically inspects credentials
// itself. Verification failure of any kind (expired, malformed, revoked)
// must surface as domain.ErrInvalidCredential.
type CredentialVerifier interface {
	Verify(ctx context.Context, credential string) (*CredentialClaims, error)
}

// IdentityService resolves session credentials to principals and carries
// the admin-only role management operations.
type IdentityService interface {
	// Resolve verifies the credential and returns the principal, lazily
	// creating the backing user record on first resolution.
	Resolve(ctx context.Context, credential string) (domain.Identity, error)

	// SetRole assigns a role to the target user. Admin only.
	SetRole(ctx context.Context, targetID string, role domain.Role, actor domain.Identity) (*domain.User, error)

	// ListModerators returns all users holding the moderator role. Admin only.
	ListModerators(ctx context.Context, actor domain.Identity) ([]*domain.User, error)
}
