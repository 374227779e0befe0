package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AnthoniusHendriyanto/studypath-auth/config"
	"github.com/AnthoniusHendriyanto/studypath-auth/db"
	"github.com/AnthoniusHendriyanto/studypath-auth/internal/auth/domain"
	"github.com/AnthoniusHendriyanto/studypath-auth/internal/auth/handler"
	"github.com/AnthoniusHendriyanto/studypath-auth/internal/auth/password"
	repo "github.com/AnthoniusHendriyanto/studypath-auth/internal/auth/repository/postgres"
	"github.com/AnthoniusHendriyanto/studypath-auth/internal/auth/service"
	"github.com/AnthoniusHendriyanto/studypath-auth/internal/auth/session"
	"github.com/AnthoniusHendriyanto/studypath-auth/internal/logger"
	"github.com/AnthoniusHendriyanto/studypath-auth/internal/metrics"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const shutdownTimeout = 30 * time.Second

func main() {
	cfg := config.Load()
	log := logger.SetupDefault(os.Stdout, cfg.LogLevel)

	ctx := context.Background()

	dbPool, err := db.NewPostgresPool(ctx, cfg.DBURL)
	if err != nil {
		log.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	if err := db.RunMigrations(ctx, dbPool); err != nil {
		log.Error("database migration failed", "error", err)
		os.Exit(1)
	}

	cache := newSessionCache(ctx, cfg, log)
	defer cache.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	recorder := metrics.NewCollector(reg)

	userRepo := repo.NewPostgresRepository(dbPool)
	hasher := password.NewBcryptHasher(cfg.BcryptCost)
	tokenService := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL())
	userService := service.NewUserService(userRepo, hasher, tokenService, cache, log, recorder)
	authHandler := handler.NewAuthHandler(userService, tokenService, cfg.RequestTimeout)
	healthHandler := handler.NewHealthHandler(userRepo, cache)

	app := fiber.New(fiber.Config{
		AppName:      "studypath-auth",
		ReadTimeout:  cfg.RequestTimeout,
		WriteTimeout: cfg.RequestTimeout,
	})
	handler.RegisterRoutes(app, authHandler, healthHandler, reg)

	go func() {
		log.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Error("server stopped", "error", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info("shutting down")
	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		log.Error("server shutdown failed", "error", err)
	}
}

// newSessionCache connects to Redis when configured. The service keeps
// running without a cache if Redis is absent or unreachable at startup.
func newSessionCache(ctx context.Context, cfg *config.Config, log *slog.Logger) domain.SessionCache {
	if cfg.RedisURL == "" {
		log.Warn("REDIS_URL not set, running without session cache")
		return session.NoopCache{}
	}

	client, err := session.NewRedisClient(cfg.RedisURL, cfg.RedisPassword)
	if err != nil {
		log.Warn("invalid REDIS_URL, running without session cache", "error", err)
		return session.NoopCache{}
	}

	cache := session.NewRedisCache(client, session.DefaultPrefix)
	if !cache.IsAvailable(ctx) {
		log.Warn("redis unreachable, running without session cache", "addr", client.Options().Addr)
		_ = client.Close()
		return session.NoopCache{}
	}

	log.Info("session cache connected")
	return cache
}
