package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/estate-navigator/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health   *handlers.HealthHandler
	Sessions *handlers.SessionsHandler
	Auth     *handlers.AuthHandler
	Session  *handlers.SessionMiddleware
}

// RegisterRoutes wires HTTP routes. Page tokens travel in request bodies only.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Get("/routes", cfg.Sessions.Routes)

	sessions := app.Group("/sessions")
	sessions.Post("/", cfg.Sessions.Create)
	sessions.Delete("/:id", cfg.Sessions.Delete)

	shell := sessions.Group("/:id", cfg.Session.Handle)
	shell.Get("/view", cfg.Sessions.View)
	shell.Post("/navigate", cfg.Sessions.Navigate)

	authGroup := shell.Group("/auth")
	authGroup.Get("/", cfg.Auth.State)
	authGroup.Post("/account-type", cfg.Auth.SelectAccountType)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/register/open", cfg.Auth.OpenRegistration)
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/password-reset/open", cfg.Auth.OpenPasswordReset)
	authGroup.Post("/password-reset", cfg.Auth.RequestPasswordReset)
	authGroup.Post("/back", cfg.Auth.Back)
	authGroup.Post("/confirm", cfg.Auth.Confirm)
}
