package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/buildhub/module-catalog/internal/api/handler"
	"github.com/buildhub/module-catalog/internal/api/middleware"
	"github.com/buildhub/module-catalog/internal/core/domain"
	"github.com/buildhub/module-catalog/internal/core/ports"
)

// Deps carries the wired services and infrastructure handles the router
// needs. Construction and lifecycle stay in cmd/server.
type Deps struct {
	Identity ports.IdentityService
	Modules  ports.ModuleService
	Ratings  ports.RatingService
	Search   ports.SearchService

	Mongo *mongo.Database
	Redis *redis.Client
	Log   zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("catalog"))

	// --- Handlers ---
	moduleHandler := handler.NewModuleHandler(d.Modules)
	ratingHandler := handler.NewRatingHandler(d.Ratings)
	searchHandler := handler.NewSearchHandler(d.Search)
	userHandler := handler.NewUserHandler(d.Identity)

	authRequired := middleware.Auth(d.Identity)
	authOptional := middleware.AuthOptional(d.Identity)

	// --- Public catalog (identity widens visibility when supplied) ---
	v1 := e.Group("/v1")
	v1.GET("/modules", moduleHandler.List, authOptional)
	v1.GET("/modules/search", searchHandler.Search, authOptional)
	v1.GET("/modules/:id", moduleHandler.Get, authOptional)
	v1.GET("/modules/:id/rating", ratingHandler.Average)

	// --- Authenticated submissions ---
	v1.POST("/modules", moduleHandler.Submit, authRequired)
	v1.POST("/modules/:id/ratings", ratingHandler.Submit, authRequired)

	// --- Moderation ---
	v1.PATCH("/modules/:id/status", moduleHandler.Transition, authRequired, middleware.RequireRole(domain.RoleModerator))

	// --- Administration ---
	admin := v1.Group("/users", authRequired, middleware.RequireRole(domain.RoleAdmin))
	admin.PUT("/:id/role", userHandler.SetRole)
	admin.GET("/moderators", userHandler.ListModerators)

	// --- Probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(d.Mongo, d.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
