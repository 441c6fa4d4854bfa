package config

import (
	"fmt"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration, sourced from environment
// variables with an optional .env file for local development.
type Config struct {
	Environment string
	ServerPort  string

	DatabaseURL    string
	MigrationsPath string

	JWTSecret        string
	JWTExpiryMinutes int
	JWTIssuer        string

	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string

	PosthogAPIKey string

	// RateLimit uses the limiter formatted notation, e.g. "100-M".
	RateLimit string

	SubscriptionSweepIntervalMinutes int
}

// LoadConfig reads configuration from the environment. A missing .env file is
// fine; explicit environment variables always win.
func LoadConfig(logger *slog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug("No .env file found, relying on environment variables")
	}

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("MIGRATIONS_PATH", "migrations")
	v.SetDefault("JWT_EXPIRY_MINUTES", 60)
	v.SetDefault("JWT_ISSUER", "via-ensino")
	v.SetDefault("RATE_LIMIT", "100-M")
	v.SetDefault("SUBSCRIPTION_SWEEP_INTERVAL_MINUTES", 60)

	cfg := &Config{
		Environment:                      v.GetString("ENVIRONMENT"),
		ServerPort:                       v.GetString("SERVER_PORT"),
		DatabaseURL:                      v.GetString("DATABASE_URL"),
		MigrationsPath:                   v.GetString("MIGRATIONS_PATH"),
		JWTSecret:                        v.GetString("JWT_SECRET"),
		JWTExpiryMinutes:                 v.GetInt("JWT_EXPIRY_MINUTES"),
		JWTIssuer:                        v.GetString("JWT_ISSUER"),
		GoogleClientID:                   v.GetString("GOOGLE_CLIENT_ID"),
		GoogleClientSecret:               v.GetString("GOOGLE_CLIENT_SECRET"),
		GoogleRedirectURL:                v.GetString("GOOGLE_REDIRECT_URL"),
		PosthogAPIKey:                    v.GetString("POSTHOG_API_KEY"),
		RateLimit:                        v.GetString("RATE_LIMIT"),
		SubscriptionSweepIntervalMinutes: v.GetInt("SUBSCRIPTION_SWEEP_INTERVAL_MINUTES"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}
