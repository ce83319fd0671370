package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/buildhub/module-catalog/internal/api/metrics"
	"github.com/buildhub/module-catalog/internal/api/middleware"
	"github.com/buildhub/module-catalog/internal/core/ports"
)

// SearchHandler handles catalog search requests.
type SearchHandler struct {
	service ports.SearchService
}

func NewSearchHandler(service ports.SearchService) *SearchHandler {
	return &SearchHandler{service: service}
}

// Search handles GET /v1/modules/search?query=...&scope=...
//
// @Summary      Search modules by substring over name, description, and keywords
// @Tags         search
// @Produce      json
// @Param        query  query     string  true   "Search query"
// @Param        scope  query     string  false  "public (default) or all (moderator only)"
// @Success      200    {object}  searchResponse
// @Failure      400    {object}  errorResponse
// @Failure      403    {object}  errorResponse
// @Router       /v1/modules/search [get]
func (h *SearchHandler) Search(c echo.Context) error {
	scope := ports.ScopePublic
	if c.QueryParam("scope") == string(ports.ScopeAll) {
		scope = ports.ScopeAll
	}

	results, err := h.service.Search(c.Request().Context(), ports.SearchInput{
		Query: c.QueryParam("query"),
		Scope: scope,
		Actor: middleware.Identity(c),
	})
	if err != nil {
		return err
	}

	metrics.SearchesTotal.WithLabelValues(string(scope)).Inc()

	list := toModuleListResponse(results)
	return c.JSON(http.StatusOK, searchResponse{
		Query:   c.QueryParam("query"),
		Count:   list.Count,
		Modules: list.Modules,
	})
}
