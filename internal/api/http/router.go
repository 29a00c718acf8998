package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/realty-service/internal/api/http/handlers"
	"github.com/spec-kit/realty-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Categories     *handlers.CategoriesHandler
	Properties     *handlers.PropertiesHandler
	Inquiries      *handlers.InquiriesHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes. Reads on the catalog and the message
// list are public; every mutation passes the access guard.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	if cfg.Health != nil {
		app.Get("/health/live", cfg.Health.Live)
		app.Get("/health/ready", cfg.Health.Ready)
	}

	api := app.Group("/api")

	api.Post("/register", cfg.Users.Register)
	api.Post("/login", cfg.Users.Login)
	api.Get("/activate/:id", cfg.Users.Activate)
	api.Post("/forgot-password", cfg.Users.ForgotPassword)
	api.Post("/reset-password", cfg.Users.ResetPassword)

	guard := cfg.AuthMiddleware.Handle

	api.Get("/categories", cfg.Categories.List)
	api.Get("/categories/:id", cfg.Categories.Show)
	api.Post("/categories", guard, cfg.Categories.Create)
	api.Put("/categories/:id", guard, cfg.Categories.Update)
	api.Delete("/categories/:id", guard, cfg.Categories.Delete)

	api.Get("/properties", cfg.Properties.List)
	api.Get("/properties/:id", cfg.Properties.Show)
	api.Post("/properties", guard, cfg.Properties.Create)
	api.Put("/properties/:id", guard, cfg.Properties.Update)
	api.Delete("/properties/:id", guard, cfg.Properties.Delete)

	api.Get("/messages", cfg.Inquiries.List)
	api.Post("/messages", guard, cfg.Inquiries.Create)
	api.Post("/messages/response", guard, cfg.Inquiries.Respond)
	api.Post("/messages/:id/read", guard, cfg.Inquiries.MarkRead)
	api.Delete("/messages/:id", guard, cfg.Inquiries.Delete)
}
