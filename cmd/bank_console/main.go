package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/SscSPs/bank_console/internal/adapters/ledger"
	"github.com/SscSPs/bank_console/internal/adapters/sessionstore"
	portsrepo "github.com/SscSPs/bank_console/internal/core/ports/repositories"
	"github.com/SscSPs/bank_console/internal/core/services"
	"github.com/SscSPs/bank_console/internal/handlers"
	"github.com/SscSPs/bank_console/internal/middleware"
	"github.com/SscSPs/bank_console/internal/platform/config"
	"github.com/SscSPs/bank_console/internal/utils"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	analytics := utils.InitializePosthogClient(cfg.PosthogAPIKey, cfg.PosthogEndpoint, logger)
	defer analytics.Close()

	var store portsrepo.SessionStore = sessionstore.NewMemoryStore()
	if cfg.SessionFile != "" {
		store = sessionstore.NewFileStore(cfg.SessionFile)
		logger.Info("Persisting session to file", slog.String("path", cfg.SessionFile))
	}

	ledgerClient := ledger.NewClient(cfg.LedgerBaseURL, ledger.WithTimeout(cfg.LedgerTimeout))
	container := services.NewServiceContainer(cfg, ledgerClient, store, analytics, logger)

	ctx := middleware.WithLogger(context.Background(), logger)
	if container.Session.RestoreSession(ctx) {
		logger.Info("Restored previous session", slog.String("username", container.Session.Current().Username))
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery(), middleware.CORS(cfg.CORSAllowedOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.RateLimit != "" {
		limiter, err := middleware.NewRateLimiter(cfg.RateLimit)
		if err != nil {
			logger.Error("Invalid rate limit", slog.String("rate", cfg.RateLimit), slog.String("error", err.Error()))
			os.Exit(1)
		}
		r.Use(middleware.RateLimit(limiter))
	}
	r.Use(middleware.PosthogMiddleware(analytics))

	handlers.RegisterRoutes(r, container)

	logger.Info("Console starting", slog.String("port", cfg.Port), slog.String("ledger", cfg.LedgerBaseURL))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
