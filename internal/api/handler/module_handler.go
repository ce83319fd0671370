package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/buildhub/module-catalog/internal/api/metrics"
	"github.com/buildhub/module-catalog/internal/api/middleware"
	"github.com/buildhub/module-catalog/internal/core/domain"
	"github.com/buildhub/module-catalog/internal/core/ports"
)

// ModuleHandler handles HTTP requests for module submission, listing, and
// moderation.
type ModuleHandler struct {
	service ports.ModuleService
}

func NewModuleHandler(service ports.ModuleService) *ModuleHandler {
	return &ModuleHandler{service: service}
}

// Submit handles POST /v1/modules.
//
// @Summary      Submit a module for moderation
// @Tags         modules
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      submitModuleRequest  true  "Module submission"
// @Success      201   {object}  moduleResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /v1/modules [post]
func (h *ModuleHandler) Submit(c echo.Context) error {
	identity := middleware.Identity(c)
	if identity == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}

	var req submitModuleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	module, err := h.service.Submit(c.Request().Context(), ports.SubmitModuleInput{
		Name:        req.Name,
		Description: req.Description,
		Keywords:    req.Keywords,
		Link:        req.Link,
	}, *identity)
	if err != nil {
		return err
	}

	metrics.ModulesSubmittedTotal.Inc()
	return c.JSON(http.StatusCreated, toModuleResponse(module))
}

// Get handles GET /v1/modules/:id.
//
// @Summary      Get a module by id
// @Tags         modules
// @Produce      json
// @Param        id  path      string  true  "Module id (e.g. MOD-7A8B9C2D)"
// @Success      200 {object}  moduleResponse
// @Failure      404 {object}  errorResponse
// @Router       /v1/modules/{id} [get]
func (h *ModuleHandler) Get(c echo.Context) error {
	module, err := h.service.Get(c.Request().Context(), c.Param("id"), middleware.Identity(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toModuleResponse(module))
}

// List handles GET /v1/modules. Without a status filter it returns the
// public approved catalog; ?status= is a moderator-only queue view.
//
// @Summary      List catalog modules
// @Tags         modules
// @Produce      json
// @Param        status  query     string  false  "Status filter (moderator only)"
// @Success      200     {object}  moduleListResponse
// @Failure      403     {object}  errorResponse
// @Router       /v1/modules [get]
func (h *ModuleHandler) List(c echo.Context) error {
	filter := ports.ListModulesFilter{
		Status: domain.ModuleStatus(c.QueryParam("status")),
	}

	modules, err := h.service.List(c.Request().Context(), filter, middleware.Identity(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toModuleListResponse(modules))
}

// Transition handles PATCH /v1/modules/:id/status.
//
// @Summary      Transition a module's moderation status
// @Tags         modules
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Module id"
// @Param        body  body      transitionRequest  true  "Target status"
// @Success      200   {object}  moduleResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/modules/{id}/status [patch]
func (h *ModuleHandler) Transition(c echo.Context) error {
	identity := middleware.Identity(c)
	if identity == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}

	var req transitionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	module, err := h.service.Transition(c.Request().Context(), c.Param("id"), domain.ModuleStatus(req.Status), *identity)
	if err != nil {
		return err
	}

	metrics.ModerationTransitionsTotal.WithLabelValues(req.Status).Inc()
	return c.JSON(http.StatusOK, toModuleResponse(module))
}

func toModuleResponse(m *domain.Module) moduleResponse {
	keywords := m.Keywords
	if keywords == nil {
		keywords = []string{}
	}
	return moduleResponse{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Keywords:    keywords,
		Link:        m.Link,
		AuthorID:    m.AuthorID,
		Status:      string(m.Status),
		CreatedAt:   formatTime(m.CreatedAt),
	}
}

func toModuleListResponse(modules []*domain.Module) moduleListResponse {
	out := moduleListResponse{Modules: make([]moduleResponse, 0, len(modules))}
	for _, m := range modules {
		out.Modules = append(out.Modules, toModuleResponse(m))
	}
	out.Count = len(out.Modules)
	return out
}
