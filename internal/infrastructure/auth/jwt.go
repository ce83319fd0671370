// Package auth adapts the external credential capability. The catalog core
// treats verification as a black box; this is the production adapter for
// HS256-signed session tokens minted by the identity provider.
package auth

import (
	"context"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/buildhub/module-catalog/internal/core/domain"
	"github.com/buildhub/module-catalog/internal/core/ports"
)

// JWTVerifier verifies HS256 session tokens and extracts the subject and
// optional display-name claim. It implements ports.CredentialVerifier.
type JWTVerifier struct {
	secret []byte
}

func NewJWTVerifier(secret string) *JWTVerifier {
	return &JWTVerifier{secret: []byte(secret)}
}

// Verify parses and validates the token. Any failure (bad signature,
// expiry, malformed payload, missing subject) surfaces as
// domain.ErrInvalidCredential so callers treat the session as anonymous.
func (v *JWTVerifier) Verify(_ context.Context, credential string) (*ports.CredentialClaims, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(credential, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return v.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("verify token: %w", domain.ErrInvalidCredential)
	}

	subject, err := claims.GetSubject()
	if err != nil || subject == "" {
		return nil, fmt.Errorf("verify token: missing subject: %w", domain.ErrInvalidCredential)
	}

	displayName, _ := claims["name"].(string)

	return &ports.CredentialClaims{
		Subject:     subject,
		DisplayName: displayName,
	}, nil
}
