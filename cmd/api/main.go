package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/taxease-service/internal/api/http"
	"github.com/spec-kit/taxease-service/internal/api/http/handlers"
	"github.com/spec-kit/taxease-service/internal/auth"
	"github.com/spec-kit/taxease-service/internal/config"
	"github.com/spec-kit/taxease-service/internal/events"
	"github.com/spec-kit/taxease-service/internal/observability"
	"github.com/spec-kit/taxease-service/internal/persistence"
	"github.com/spec-kit/taxease-service/internal/repository"
	"github.com/spec-kit/taxease-service/internal/service"
	"github.com/spec-kit/taxease-service/internal/storage"
	"github.com/spec-kit/taxease-service/internal/worker"
)

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

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	docStore, err := storage.NewS3Store(ctx, cfg.Storage, logger)
	if err != nil {
		logger.Fatal("failed to configure object storage", zap.Error(err))
	}

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	planRepo := repository.NewPlanRepository(pool)
	profileRepo := repository.NewTaxProfileRepository(pool)
	docRepo := repository.NewDocumentRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()

	authService := service.NewAuthService(cfg.Auth, userRepo, dispatcher)
	userService := service.NewUserService(userRepo, planRepo, cfg.Auth.BcryptCost)
	profileService := service.NewTaxProfileService(profileRepo, dispatcher)
	docService := service.NewDocumentService(docRepo, profileRepo, docStore, dispatcher)
	planService := service.NewPlanService(planRepo, persistence.NewRedisCache(redis), logger)
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)

	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager())

	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{
		AppName:   cfg.App.Name,
		BodyLimit: service.MaxDocumentSize + 1<<20,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis, metrics),
		Auth:           handlers.NewAuthHandler(authService),
		Users:          handlers.NewUsersHandler(userService),
		TaxProfiles:    handlers.NewTaxProfilesHandler(profileService),
		Documents:      handlers.NewDocumentsHandler(docService),
		Plans:          handlers.NewPlansHandler(planService),
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
