package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/buildhub/module-catalog/internal/core/domain"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestVerify_ValidToken(t *testing.T) {
	credential := signToken(t, testSecret, jwt.MapClaims{
		"sub":  "sub-alice",
		"name": "Alice",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	claims, err := NewJWTVerifier(testSecret).Verify(context.Background(), credential)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if claims.Subject != "sub-alice" {
		t.Fatalf("unexpected subject: %s", claims.Subject)
	}
	if claims.DisplayName != "Alice" {
		t.Fatalf("unexpected display name: %s", claims.DisplayName)
	}
}

func TestVerify_DisplayNameOptional(t *testing.T) {
	credential := signToken(t, testSecret, jwt.MapClaims{
		"sub": "sub-bob",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	claims, err := NewJWTVerifier(testSecret).Verify(context.Background(), credential)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if claims.DisplayName != "" {
		t.Fatalf("expected empty display name, got %q", claims.DisplayName)
	}
}

func TestVerify_Failures(t *testing.T) {
	verifier := NewJWTVerifier(testSecret)

	expired := signToken(t, testSecret, jwt.MapClaims{
		"sub": "sub-old",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	wrongKey := signToken(t, "other-secret", jwt.MapClaims{
		"sub": "sub-x",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	missingSubject := signToken(t, testSecret, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	cases := map[string]string{
		"expired":         expired,
		"wrong key":       wrongKey,
		"missing subject": missingSubject,
		"garbage":         "not.a.jwt",
		"empty":           "",
	}
	for name, credential := range cases {
		_, err := verifier.Verify(context.Background(), credential)
		if !errors.Is(err, domain.ErrInvalidCredential) {
			t.Fatalf("%s: expected ErrInvalidCredential, got %v", name, err)
		}
	}
}

func TestVerify_RejectsUnexpectedAlgorithm(t *testing.T) {
	// A token signed with "none" must never pass, whatever the payload.
	token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": "sub-evil"})
	credential, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	if _, err := NewJWTVerifier(testSecret).Verify(context.Background(), credential); !errors.Is(err, domain.ErrInvalidCredential) {
		t.Fatalf("expected ErrInvalidCredential, got %v", err)
	}
}
