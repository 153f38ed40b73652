package config

import (
	"log"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	// Ledger service
	LedgerBaseURL string
	LedgerTimeout time.Duration

	// Console API
	Port               string
	IsProduction       bool
	LogLevel           slog.Level
	CORSAllowedOrigins []string
	RateLimit          string

	// Session storage; empty keeps the session in memory for the life of the process.
	SessionFile string

	// Notification lifetimes
	NotifySuccessTTL time.Duration
	NotifyErrorTTL   time.Duration

	// Analytics
	PosthogAPIKey   string `mapstructure:"POSTHOG_API_KEY"`
	PosthogEndpoint string `mapstructure:"POSTHOG_ENDPOINT"`

	// Development ledger stub
	StubPort      string
	StubJWTSecret string
	StubJWTExpiry time.Duration
	StubJWTIssuer string
	StubLoginRate string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("LEDGER_BASE_URL", "http://localhost:8080/api")
	v.SetDefault("LEDGER_TIMEOUT", "15s")
	v.SetDefault("PORT", "3001")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("RATE_LIMIT", "60-M")
	v.SetDefault("SESSION_FILE", "")
	v.SetDefault("NOTIFY_SUCCESS_TTL", "6s")
	v.SetDefault("NOTIFY_ERROR_TTL", "8s")
	v.SetDefault("POSTHOG_API_KEY", "")
	v.SetDefault("POSTHOG_ENDPOINT", "")
	v.SetDefault("STUB_PORT", "8080")
	v.SetDefault("STUB_JWT_SECRET", "ledger-stub-secret-change-me")
	v.SetDefault("STUB_JWT_EXPIRY", "1h")
	v.SetDefault("STUB_JWT_ISSUER", "ledger-stub")
	v.SetDefault("STUB_LOGIN_RATE_LIMIT", "20-M")

	v.AutomaticEnv()

	cfg := &Config{}

	cfg.LedgerBaseURL = strings.TrimRight(v.GetString("LEDGER_BASE_URL"), "/")
	if cfg.LedgerBaseURL == "" {
		cfg.LedgerBaseURL = "http://localhost:8080/api"
		log.Printf("Warning: LEDGER_BASE_URL not set. Defaulting to %s\n", cfg.LedgerBaseURL)
	}

	cfg.LedgerTimeout = durationOrDefault(v, "LEDGER_TIMEOUT", 15*time.Second)

	cfg.Port = v.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "3001"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.IsProduction = v.GetBool("IS_PRODUCTION")
	cfg.LogLevel = parseLevel(v.GetString("LOG_LEVEL"))
	cfg.CORSAllowedOrigins = parseCSV(v.GetString("CORS_ALLOWED_ORIGINS"))
	cfg.RateLimit = v.GetString("RATE_LIMIT")
	cfg.SessionFile = strings.TrimSpace(v.GetString("SESSION_FILE"))

	cfg.NotifySuccessTTL = durationOrDefault(v, "NOTIFY_SUCCESS_TTL", 6*time.Second)
	cfg.NotifyErrorTTL = durationOrDefault(v, "NOTIFY_ERROR_TTL", 8*time.Second)

	cfg.PosthogAPIKey = v.GetString("POSTHOG_API_KEY")
	cfg.PosthogEndpoint = v.GetString("POSTHOG_ENDPOINT")

	cfg.StubPort = v.GetString("STUB_PORT")
	cfg.StubJWTSecret = v.GetString("STUB_JWT_SECRET")
	if cfg.StubJWTSecret == "ledger-stub-secret-change-me" {
		log.Println("Warning: STUB_JWT_SECRET not set. Using default insecure key.")
	}
	cfg.StubJWTExpiry = durationOrDefault(v, "STUB_JWT_EXPIRY", time.Hour)
	cfg.StubJWTIssuer = v.GetString("STUB_JWT_ISSUER")
	cfg.StubLoginRate = v.GetString("STUB_LOGIN_RATE_LIMIT")

	return cfg, nil
}

func durationOrDefault(v *viper.Viper, key string, def time.Duration) time.Duration {
	raw := v.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, def)
		}
		return def
	}
	return d
}

func parseLevel(raw string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(raw))); err != nil {
		log.Printf("Warning: Invalid value for LOG_LEVEL ('%s'). Defaulting to info.\n", raw)
		return slog.LevelInfo
	}
	return level
}

func parseCSV(input string) []string {
	var out []string
	for _, part := range strings.Split(input, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
