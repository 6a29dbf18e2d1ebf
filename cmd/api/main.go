package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/winter-cloth-service/internal/api/http"
	"github.com/spec-kit/winter-cloth-service/internal/api/http/handlers"
	"github.com/spec-kit/winter-cloth-service/internal/auth"
	"github.com/spec-kit/winter-cloth-service/internal/config"
	"github.com/spec-kit/winter-cloth-service/internal/events"
	"github.com/spec-kit/winter-cloth-service/internal/observability"
	"github.com/spec-kit/winter-cloth-service/internal/persistence"
	"github.com/spec-kit/winter-cloth-service/internal/repository"
	"github.com/spec-kit/winter-cloth-service/internal/service"
)

const clothsCollection = "winterCloths"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	mongo, err := persistence.NewMongo(ctx, cfg.Mongo, logger)
	if err != nil {
		logger.Fatal("failed to connect mongodb", zap.Error(err))
	}
	defer mongo.Close(context.Background())

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	dispatcher := events.NewInMemoryDispatcher()
	events.RegisterAuditLogger(dispatcher, logger)

	userRepo := repository.NewUserRepository(pg.PoolHandle())
	clothRepo := repository.NewClothRepository(mongo.Collection(clothsCollection))

	var listCache service.ListCache
	if redis != nil {
		listCache = service.NewRedisListCache(redis.Client)
	}

	authService := service.NewAuthService(*cfg, userRepo, dispatcher)
	catalogService := service.NewCatalogService(clothRepo, listCache, dispatcher)
	authMiddleware := auth.NewMiddleware(authService.TokenManager())

	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics)

	deps := map[string]handlers.Pinger{
		"postgres": pg,
		"mongodb":  mongo,
	}
	if redis != nil {
		deps["redis"] = redis
	}

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, deps),
		Users:          handlers.NewUsersHandler(authService),
		Cloths:         handlers.NewClothsHandler(catalogService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
