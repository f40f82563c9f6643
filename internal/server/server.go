package server

import (
	"log"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"commerce-agent-be/internal/bootstrap"
	"commerce-agent-be/internal/config"
)

type Server struct {
	app       *fiber.App
	cfg       *config.Config
	container *bootstrap.Container
}

func New(cfg *config.Config, container *bootstrap.Container) *Server {
	app := fiber.New(fiber.Config{
		BodyLimit: 10 * 1024 * 1024, // 10MB, inline image payloads
	})

	app.Use(cors.New(corsConfig(cfg.App.CorsAllowedOrigins)))

	// OpenTelemetry tracing middleware (traces all HTTP requests)
	app.Use(otelfiber.Middleware())

	registerRoutes(app, container)

	return &Server{
		app:       app,
		cfg:       cfg,
		container: container,
	}
}

func (s *Server) GetApp() *fiber.App {
	return s.app
}

func (s *Server) Run() error {
	log.Printf("✅ Server is running on http://localhost:%s", s.cfg.App.Port)
	return s.app.Listen(":" + s.cfg.App.Port)
}

// corsConfig builds the CORS policy from the configured origin list.
// The wildcard uses AllowOriginsFunc because the middleware rejects a
// literal "*" combined with AllowCredentials.
func corsConfig(allowedOrigins string) cors.Config {
	cfg := cors.Config{
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}
	if allowedOrigins == "" || allowedOrigins == "*" {
		cfg.AllowOriginsFunc = func(origin string) bool { return true }
		return cfg
	}
	cfg.AllowOrigins = allowedOrigins
	return cfg
}

func registerRoutes(app *fiber.App, c *bootstrap.Container) {
	c.SystemController.RegisterRoutes(app)
	c.ChatController.RegisterRoutes(app)
	c.CartController.RegisterRoutes(app)
}
