package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/fusaf/role-request-service/internal/api/http/handlers"
	"github.com/fusaf/role-request-service/internal/auth"
	"github.com/fusaf/role-request-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Accounts       *handlers.AccountsHandler
	RoleRequests   *handlers.RoleRequestsHandler
	AuthMiddleware *auth.AuthMiddleware

	// Submission rate limiting.
	RedisClient     *redis.Client
	SubmitRateLimit int
	SubmitRateWin   time.Duration
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Accounts.Register)
	authGroup.Post("/login", cfg.Accounts.Login)

	accounts := app.Group("/accounts", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleAdmin))
	accounts.Put("/:id/status", cfg.Accounts.UpdateStatus)

	requests := app.Group("/role-requests", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	requests.Post("/",
		RateLimit(cfg.RedisClient, "role-request-submit", cfg.SubmitRateLimit, cfg.SubmitRateWin),
		cfg.RoleRequests.Submit)
	requests.Get("/status", cfg.RoleRequests.OwnStatus)

	requests.Get("/", auth.RequireAdmin(), cfg.RoleRequests.List)
	requests.Get("/stats", auth.RequireAdmin(), cfg.RoleRequests.Stats)
	requests.Put("/:id", auth.RequireAdmin(), cfg.RoleRequests.Review)
}
