package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/buildhub/module-catalog/internal/core/domain"
	"github.com/buildhub/module-catalog/internal/core/ports"
)

// identityKey is the echo context key holding the resolved *domain.Identity.
const identityKey = "identity"

// Auth resolves the bearer credential to an Identity on every request and
// injects it into the context. Requests without a valid credential are
// rejected with 401.
func Auth(resolver ports.IdentityService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			credential, ok := bearerCredential(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing or malformed authorization header")
			}

			identity, err := resolver.Resolve(c.Request().Context(), credential)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid credential")
			}

			SetIdentity(c, &identity)
			return next(c)
		}
	}
}

// AuthOptional resolves the credential when one is supplied but lets
// anonymous requests through. Used on public endpoints whose behavior
// widens for moderators (status filters, full-corpus search).
// A credential that is present but invalid is still rejected.
func AuthOptional(resolver ports.IdentityService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			credential, ok := bearerCredential(c)
			if !ok {
				return next(c)
			}

			identity, err := resolver.Resolve(c.Request().Context(), credential)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid credential")
			}

			SetIdentity(c, &identity)
			return next(c)
		}
	}
}

// Identity returns the resolved identity from the context, or nil for an
// anonymous request.
func Identity(c echo.Context) *domain.Identity {
	identity, _ := c.Get(identityKey).(*domain.Identity)
	return identity
}

// SetIdentity injects a resolved identity into the context. Used by the
// auth middleware and by handler tests.
func SetIdentity(c echo.Context, identity *domain.Identity) {
	c.Set(identityKey, identity)
}

func bearerCredential(c echo.Context) (string, bool) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	return parts[1], true
}
