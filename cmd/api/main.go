package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/fusaf/role-request-service/internal/api/http"
	"github.com/fusaf/role-request-service/internal/api/http/handlers"
	"github.com/fusaf/role-request-service/internal/auth"
	"github.com/fusaf/role-request-service/internal/config"
	"github.com/fusaf/role-request-service/internal/domain"
	"github.com/fusaf/role-request-service/internal/events"
	"github.com/fusaf/role-request-service/internal/observability"
	"github.com/fusaf/role-request-service/internal/persistence"
	"github.com/fusaf/role-request-service/internal/repository"
	"github.com/fusaf/role-request-service/internal/service"
	"github.com/fusaf/role-request-service/internal/store"
	"github.com/fusaf/role-request-service/internal/worker"
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

	// The role request store is constructed once per process and injected
	// everywhere; its contents do not survive restarts.
	var seed []domain.RoleRequest
	if cfg.RoleRequest.SeedData {
		seed = store.Seed()
	}
	requestStore := store.New(seed)
	logger.Info("role request store initialized", zap.Int("seed_records", len(seed)))

	dispatcher := events.NewInMemoryDispatcher()
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	accountRepo := repository.NewAccountRepository(pg.PoolHandle())
	authService := service.NewAuthService(*cfg, accountRepo)
	roleRequestService := service.NewRoleRequestService(requestStore, dispatcher, cfg.RoleRequest)
	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), accountRepo)

	metrics := observability.NewMetrics()
	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:          handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, requestStore, pg, redis),
		Accounts:        handlers.NewAccountsHandler(authService),
		RoleRequests:    handlers.NewRoleRequestsHandler(roleRequestService),
		AuthMiddleware:  authMiddleware,
		RedisClient:     redis.Client,
		SubmitRateLimit: cfg.RoleRequest.SubmitRateLimit,
		SubmitRateWin:   cfg.RoleRequest.SubmitRateWindow(),
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
