package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/buildhub/module-catalog/internal/api/middleware"
	"github.com/buildhub/module-catalog/internal/core/domain"
	"github.com/buildhub/module-catalog/internal/core/ports"
)

// UserHandler exposes the admin-only role management operations.
type UserHandler struct {
	service ports.IdentityService
}

func NewUserHandler(service ports.IdentityService) *UserHandler {
	return &UserHandler{service: service}
}

// SetRole handles PUT /v1/users/:id/role.
//
// @Summary      Assign a role to a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Target user id"
// @Param        body  body      setRoleRequest  true  "New role"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/users/{id}/role [put]
func (h *UserHandler) SetRole(c echo.Context) error {
	identity := middleware.Identity(c)
	if identity == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}

	var req setRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.service.SetRole(c.Request().Context(), c.Param("id"), domain.Role(req.Role), *identity)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// ListModerators handles GET /v1/users/moderators.
//
// @Summary      List all moderators
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array}   userResponse
// @Failure      403 {object}  errorResponse
// @Router       /v1/users/moderators [get]
func (h *UserHandler) ListModerators(c echo.Context) error {
	identity := middleware.Identity(c)
	if identity == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}

	users, err := h.service.ListModerators(c.Request().Context(), *identity)
	if err != nil {
		return err
	}

	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return c.JSON(http.StatusOK, out)
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:          u.ID,
		DisplayName: u.DisplayName,
		Role:        string(u.Role),
		CreatedAt:   formatTime(u.CreatedAt),
	}
}
