package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"

	"github.com/ahmetcoskunkizilkaya/ideahub-backend/internal/ai"
	"github.com/ahmetcoskunkizilkaya/ideahub-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/ideahub-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/ideahub-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/ideahub-backend/internal/logging"
	"github.com/ahmetcoskunkizilkaya/ideahub-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/ideahub-backend/internal/ratelimit"
	"github.com/ahmetcoskunkizilkaya/ideahub-backend/internal/repository"
	"github.com/ahmetcoskunkizilkaya/ideahub-backend/internal/routes"
	"github.com/ahmetcoskunkizilkaya/ideahub-backend/internal/security"
	"github.com/ahmetcoskunkizilkaya/ideahub-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Setup("production")
		slog.Error("config load failed", "error", err)
		os.Exit(1)
	}

	// Structured logging (JSON to stdout)
	stdoutHandler := logging.Setup(cfg.AppEnv)

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	// Database
	db, err := database.Connect(cfg)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(db); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	// PostgreSQL log handler (ERROR+ async batch)
	pgLogHandler := logging.NewPGHandler(db)
	slog.SetDefault(slog.New(logging.NewMultiHandler(stdoutHandler, pgLogHandler)))

	// Log cleanup
	cleanupCtx, stopCleanup := context.WithCancel(context.Background())
	logging.StartCleanup(cleanupCtx, db, cfg.LogRetentionDays)

	// Shared limiter counters when Redis is configured
	var limitCounter *ratelimit.RedisCounter
	if cfg.RedisURL != "" {
		limitCounter, err = ratelimit.NewRedisCounter(cfg.RedisURL)
		if err != nil {
			slog.Error("redis connection failed", "error", err)
			os.Exit(1)
		}
		defer limitCounter.Close()
		slog.Info("rate limiter using redis")
	}

	// AI analysis
	analyzer := ai.NewAnalyzer(ai.NewCompleter(cfg), cfg.AITimeout)
	if !analyzer.IsAvailable() {
		slog.Warn("AI_API_KEY not set, ideas will receive the fallback analysis")
	}

	// Services
	stores := services.Stores{
		Users:          repository.NewUserRepo(db),
		Ideas:          repository.NewIdeaRepo(db),
		Likes:          repository.NewLikeRepo(db),
		Comments:       repository.NewCommentRepo(db),
		Collaborations: repository.NewCollaborationRepo(db),
		Notifications:  repository.NewNotificationRepo(db),
	}
	enricher := services.NewEnricher(stores.Ideas, analyzer, cfg.AIEnrichMode == config.EnrichAsync)
	authService := services.NewAuthService(stores.Users, security.NewBcryptHasher(), security.NewJWTSigner(cfg.JWTSecret, cfg.JWTExpiry))
	ideaService := services.NewIdeaService(stores, enricher, analyzer)
	socialService := services.NewSocialService(stores)
	adminService := services.NewAdminService(stores)

	// Handlers
	h := routes.Handlers{
		Auth:   handlers.NewAuthHandler(authService),
		Health: handlers.NewHealthHandler(func() error { return database.Ping(db) }, analyzer.IsAvailable()),
		Idea:   handlers.NewIdeaHandler(ideaService),
		Social: handlers.NewSocialHandler(socialService),
		Admin:  handlers.NewAdminHandler(adminService),
	}

	// Sentry error tracking
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.AppEnv,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    1 * 1024 * 1024,
		ErrorHandler: handlers.ErrorHandler,
	})

	// Sentry middleware
	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path} | ${locals:requestid}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		return c.Next()
	})

	// Routes
	routes.Setup(app, cfg, h, authService, limitCounter)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("server starting", "port", cfg.Port, "enrich_mode", cfg.AIEnrichMode)
		serverErr <- app.Listen(":" + cfg.Port)
	}()

	select {
	case <-quit:
	case err := <-serverErr:
		if err != nil && !errors.Is(err, context.Canceled) {
			slog.Error("server failed to start", "error", err)
		}
	}
	slog.Info("shutting down server...")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	// In-flight enrichments finish before the pool closes.
	enricher.Wait()

	stopCleanup()
	pgLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if err := database.Close(db); err != nil {
		slog.Error("database close error", "error", err)
	}

	slog.Info("server stopped")
}
