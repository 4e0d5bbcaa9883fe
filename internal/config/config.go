package config

import (
	"errors"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	Port              string
	Env               string
	DatabaseURL       string
	RedisURL          string
	AccessTokenSecret string
	MigrationsPath    string
}

// Load reads configuration from environment variables.
// In development, it loads from a .env file if present.
func Load() (*Config, error) {
	// Load .env file if it exists (useful for local development)
	_ = godotenv.Load()

	cfg := &Config{
		Port:              getEnv("PORT", "8080"),
		Env:               getEnv("ENV", "development"),
		DatabaseURL:       strings.TrimSpace(os.Getenv("DATABASE_URL")),
		RedisURL:          strings.TrimSpace(os.Getenv("REDIS_URL")),
		AccessTokenSecret: os.Getenv("ACCESS_TOKEN_SECRET"),
		MigrationsPath:    getEnv("MIGRATIONS_PATH", "migrations"),
	}

	if cfg.DatabaseURL == "" {
		return nil, errors.New("config: DATABASE_URL environment variable is not set")
	}
	if cfg.AccessTokenSecret == "" {
		return nil, errors.New("config: ACCESS_TOKEN_SECRET environment variable is not set")
	}

	return cfg, nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
