package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/buildhub/module-catalog/internal/api"
	"github.com/buildhub/module-catalog/internal/core/service"
	"github.com/buildhub/module-catalog/internal/infrastructure/auth"
	"github.com/buildhub/module-catalog/internal/infrastructure/config"
	catalogmongo "github.com/buildhub/module-catalog/internal/infrastructure/db/mongo"
	catalogredis "github.com/buildhub/module-catalog/internal/infrastructure/db/redis"
	"github.com/buildhub/module-catalog/internal/infrastructure/queue"
	"github.com/buildhub/module-catalog/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Storage ---
	mongoClient, db, err := catalogmongo.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(shutdownCtx)
	}()

	rdb, err := catalogredis.Connect(ctx, cfg.Redis.Addr, cfg.Redis.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	// --- Repositories ---
	userRepo := catalogmongo.NewUserRepository(db)
	moduleRepo := catalogmongo.NewModuleRepository(db)
	ratingRepo := catalogmongo.NewRatingRepository(db)
	auditRepo := catalogmongo.NewAuditRepository(db)

	if err := moduleRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("module index bootstrap failed")
	}
	if err := ratingRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("rating index bootstrap failed")
	}
	if cfg.SeedDemoData {
		if err := catalogmongo.SeedDemoModules(ctx, db); err != nil {
			log.Warn().Err(err).Msg("demo data seeding failed")
		}
	}

	// --- Audit trail ---
	dispatcher := queue.NewDispatcher(cfg.AuditWorkers, auditRepo, log)
	dispatcher.Start(ctx)

	// --- Services ---
	verifier := auth.NewJWTVerifier(cfg.JWTSecret)
	identityCache := catalogredis.NewIdentityCache(rdb)

	identityService := service.NewIdentityService(verifier, userRepo, identityCache, log)
	moduleService := service.NewModuleService(moduleRepo, dispatcher, log)
	ratingService := service.NewRatingService(ratingRepo, moduleRepo, log)
	searchService := service.NewSearchService(moduleRepo, log)

	// --- HTTP ---
	e := api.NewRouter(api.Deps{
		Identity: identityService,
		Modules:  moduleService,
		Ratings:  ratingService,
		Search:   searchService,
		Mongo:    db,
		Redis:    rdb,
		Log:      log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("catalog server starting")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
