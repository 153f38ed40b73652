// Command ledger_stub serves an in-memory ledger for running the console locally.
package main

import (
	"log/slog"
	"os"

	"github.com/SscSPs/bank_console/internal/ledgerstub"
	"github.com/SscSPs/bank_console/internal/platform/config"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	if cfg.IsProduction {
		logger.Error("The ledger stub keeps balances in memory and must not run in production")
		os.Exit(1)
	}

	r, err := ledgerstub.NewRouter(ledgerstub.NewBank(), ledgerstub.Config{
		JWTSecret:      cfg.StubJWTSecret,
		JWTExpiry:      cfg.StubJWTExpiry,
		JWTIssuer:      cfg.StubJWTIssuer,
		LoginRateLimit: cfg.StubLoginRate,
	}, logger)
	if err != nil {
		logger.Error("Failed to build ledger stub", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("Ledger stub starting", slog.String("port", cfg.StubPort))
	if err := r.Run(":" + cfg.StubPort); err != nil {
		logger.Error("Ledger stub failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
