package handler

import (
	"context"
	"time"

	"github.com/AnthoniusHendriyanto/studypath-auth/internal/auth/domain"
	"github.com/gofiber/fiber/v2"
)

const (
	statusHealthy   = "healthy"
	statusUnhealthy = "unhealthy"

	healthCheckTimeout = 2 * time.Second
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db        Pinger
	cache     domain.SessionCache
	startedAt time.Time
	now       func() time.Time
}

func NewHealthHandler(db Pinger, cache domain.SessionCache) *HealthHandler {
	return &HealthHandler{
		db:        db,
		cache:     cache,
		startedAt: time.Now(),
		now:       time.Now,
	}
}

// Health reports 503 only when the database is down. A missing cache leaves
// the service fully functional.
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), healthCheckTimeout)
	defer cancel()

	database := statusHealthy
	if err := h.db.Ping(ctx); err != nil {
		database = statusUnhealthy
	}

	redis := statusUnhealthy
	if h.cache.IsAvailable(ctx) {
		redis = statusHealthy
	}

	status, code := "ok", fiber.StatusOK
	if database != statusHealthy {
		status, code = "degraded", fiber.StatusServiceUnavailable
	}

	now := h.now()
	return c.Status(code).JSON(fiber.Map{
		"status":    status,
		"uptime":    now.Sub(h.startedAt).Seconds(),
		"timestamp": now.UTC(),
		"services": fiber.Map{
			"database": database,
			"redis":    redis,
		},
	})
}
