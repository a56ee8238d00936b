package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/taxease-service/internal/api/http/handlers"
	"github.com/spec-kit/taxease-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	TaxProfiles    *handlers.TaxProfilesHandler
	Documents      *handlers.DocumentsHandler
	Plans          *handlers.PlansHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Get("/public", cfg.Auth.Public)
	authGroup.Get("/protected", cfg.AuthMiddleware.Handle, cfg.Auth.Protected)

	users := api.Group("/users", cfg.AuthMiddleware.Handle)
	users.Get("/profile", cfg.Users.GetProfile)
	users.Put("/profile", cfg.Users.UpdateProfile)
	users.Put("/plan", cfg.Users.SelectPlan)

	profiles := api.Group("/tax-profiles", cfg.AuthMiddleware.Handle)
	profiles.Post("/", cfg.TaxProfiles.Create)
	profiles.Get("/", cfg.TaxProfiles.List)
	profiles.Get("/:id", cfg.TaxProfiles.Get)
	profiles.Put("/:id", cfg.TaxProfiles.Update)
	profiles.Post("/:id/submit", cfg.TaxProfiles.Submit)

	documents := api.Group("/documents", cfg.AuthMiddleware.Handle)
	documents.Post("/", cfg.Documents.Upload)
	documents.Get("/", cfg.Documents.List)
	documents.Get("/:id/download-url", cfg.Documents.DownloadURL)

	plans := api.Group("/plans")
	plans.Get("/", cfg.Plans.List)
	plans.Post("/", cfg.AuthMiddleware.Handle, auth.RequireAdmin(), cfg.Plans.Create)
	plans.Put("/:id", cfg.AuthMiddleware.Handle, auth.RequireAdmin(), cfg.Plans.Update)
}
