package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/complaint-service/internal/api/http/handlers"
	"github.com/spec-kit/complaint-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health     *handlers.HealthHandler
	Auth       *handlers.AuthHandler
	Complaints *handlers.ComplaintsHandler
	Gate       *auth.Gate
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)

	complaints := app.Group("/complaints")
	complaints.Post("", cfg.Gate.RequireAuth, cfg.Complaints.Create)
	complaints.Get("", cfg.Gate.RequireAdmin, cfg.Complaints.ListAll)
	complaints.Patch("/:id", cfg.Gate.RequireAdmin, cfg.Complaints.UpdateStatus)
	complaints.Delete("/:id", cfg.Gate.RequireAdmin, cfg.Complaints.Delete)

	app.Get("/users/complaints", cfg.Gate.RequireAuth, cfg.Complaints.ListOwn)
}
