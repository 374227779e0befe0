package handler

import (
	"github.com/AnthoniusHendriyanto/studypath-auth/internal/metrics"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
)

func RegisterRoutes(app *fiber.App, h *AuthHandler, health *HealthHandler, gatherer prometheus.Gatherer) {
	app.Get("/health", health.Health)
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler(gatherer)))

	auth := app.Group("/api/auth")
	auth.Post("/register", h.Register)
	auth.Post("/login", h.Login)
	auth.Post("/logout", h.Logout)
	auth.Get("/me", h.RequireAuth(), h.Me)
}
