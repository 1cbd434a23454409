package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/pulsedash/pulsedash/internal/config"
	"github.com/pulsedash/pulsedash/internal/handlers"
	"github.com/pulsedash/pulsedash/internal/i18n"
	"github.com/pulsedash/pulsedash/internal/logging"
	"github.com/pulsedash/pulsedash/internal/middleware"
	"github.com/pulsedash/pulsedash/internal/session"
)

// Setup configures all routes and middlewares
func Setup(app *fiber.App, logger *logging.Logger, resolver *i18n.Resolver,
	sessions session.Store, cfg config.Config,
) *handlers.Handler {
	// Create handler instance
	h := handlers.New(logger, cfg.Analytics, resolver, sessions)

	// Global middlewares
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization,X-API-Key,X-Request-ID,X-Session-ID",
	}))
	app.Use(logging.FiberMiddleware(logger))

	// Health check (no auth required)
	app.Get("/health", h.Health)

	// API key authentication middleware
	authMiddleware := middleware.APIKeyAuth(logger, cfg.Auth.APIKeys, cfg.Auth.Enabled)

	// API v1 routes (protected by API key)
	v1 := app.Group("/v1", authMiddleware)

	// Metric Analytics Routes
	v1.Post("/metrics/forecast", h.Forecast)
	v1.Post("/metrics/anomalies", h.Anomalies)

	// Localization Routes
	v1.Get("/languages", h.Languages)
	v1.Get("/labels/:key", h.Label)

	// Session Preference Routes
	v1.Get("/sessions/:session_id/language", h.SessionLanguage)
	v1.Put("/sessions/:session_id/language", h.SetSessionLanguage)

	// 404 handler
	app.Use(h.NotFound)

	return h
}

// New creates a new Fiber app with configuration
func New(logger *logging.Logger, resolver *i18n.Resolver,
	sessions session.Store, cfg config.Config,
) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "PulseDash Dashboard",
		DisableStartupMessage: true,
		ErrorHandler:          middleware.ErrorHandler(logger),
	})

	Setup(app, logger, resolver, sessions, cfg)

	return app
}
