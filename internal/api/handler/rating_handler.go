package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/buildhub/module-catalog/internal/api/metrics"
	"github.com/buildhub/module-catalog/internal/api/middleware"
	"github.com/buildhub/module-catalog/internal/core/ports"
)

// RatingHandler handles rating submission and aggregate reads.
type RatingHandler struct {
	service ports.RatingService
}

func NewRatingHandler(service ports.RatingService) *RatingHandler {
	return &RatingHandler{service: service}
}

// Submit handles POST /v1/modules/:id/ratings.
//
// @Summary      Submit or update a rating for an approved module
// @Tags         ratings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Module id"
// @Param        body  body      submitRatingRequest  true  "Score 1-5"
// @Success      200   {object}  ratingResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/modules/{id}/ratings [post]
func (h *RatingHandler) Submit(c echo.Context) error {
	identity := middleware.Identity(c)
	if identity == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}

	var req submitRatingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.service.Submit(c.Request().Context(), ports.SubmitRatingInput{
		ModuleID: c.Param("id"),
		Score:    req.Score,
		Actor:    *identity,
	})
	if err != nil {
		return err
	}

	if result.Updated {
		metrics.RatingsSubmittedTotal.WithLabelValues("updated").Inc()
	} else {
		metrics.RatingsSubmittedTotal.WithLabelValues("created").Inc()
	}

	return c.JSON(http.StatusOK, ratingResponse{
		ModuleID: result.ModuleID,
		Average:  result.Average,
		Count:    result.Count,
		Updated:  result.Updated,
	})
}

// Average handles GET /v1/modules/:id/rating.
//
// @Summary      Get the current average rating for a module
// @Tags         ratings
// @Produce      json
// @Param        id  path      string  true  "Module id"
// @Success      200 {object}  ratingResponse
// @Router       /v1/modules/{id}/rating [get]
func (h *RatingHandler) Average(c echo.Context) error {
	result, err := h.service.Average(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ratingResponse{
		ModuleID: result.ModuleID,
		Average:  result.Average,
		Count:    result.Count,
	})
}
