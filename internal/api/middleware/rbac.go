package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/buildhub/module-catalog/internal/core/domain"
)

// RequireRole enforces a minimum role on routes behind Auth. Roles are
// totally ordered, so a single floor check replaces per-role allow lists.
func RequireRole(min domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity := Identity(c)
			if identity == nil || !identity.Role.AtLeast(min) {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
