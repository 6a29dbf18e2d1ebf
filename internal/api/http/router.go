package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/winter-cloth-service/internal/api/http/handlers"
	"github.com/spec-kit/winter-cloth-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Cloths         *handlers.ClothsHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes. Catalog reads are public; mutations
// require a bearer token.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/", cfg.Health.Status)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api/v1")
	api.Post("/register", cfg.Users.Register)
	api.Post("/login", cfg.Users.Login)

	cloths := app.Group("/winter-cloth")
	cloths.Get("/", cfg.Cloths.List)
	cloths.Get("/:id", cfg.Cloths.Get)
	cloths.Post("/", cfg.AuthMiddleware.Handle, cfg.Cloths.Create)
	cloths.Delete("/:id", cfg.AuthMiddleware.Handle, cfg.Cloths.Delete)
}
