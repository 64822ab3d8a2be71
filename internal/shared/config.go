package shared

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// AppConfig holds the env-driven process configuration. Store instances and
// services receive their dependencies explicitly at construction; nothing in
// here is a global singleton.
type AppConfig struct {
	Port           string
	Environment    string
	DatabaseDriver string
	DatabaseDSN    string
	MigrationsPath string
	JWTSecret      string

	RateLimitEnabled bool
	CacheEnabled     bool
	EnforceHTTPS     bool
}

func LoadConfig() *AppConfig {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using process environment")
	}

	cfg := &AppConfig{
		Port:           envOr("PORT", "8080"),
		Environment:    envOr("APP_ENV", "development"),
		DatabaseDriver: envOr("DATABASE_DRIVER", "sqlite3"),
		DatabaseDSN:    envOr("DATABASE_DSN", "inkfolio.db"),
		MigrationsPath: envOr("MIGRATIONS_PATH", "db/migrations"),
		JWTSecret:      envOr("JWT_SECRET", ""),

		RateLimitEnabled: envOr("RATE_LIMIT_ENABLED", "true") == "true",
		CacheEnabled:     envOr("CACHE_ENABLED", "true") == "true",
		EnforceHTTPS:     envOr("ENFORCE_HTTPS", "false") == "true",
	}

	if os.Getenv("GIN_MODE") == "release" {
		cfg.Environment = "production"
		cfg.EnforceHTTPS = true
	}

	return cfg
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return fallback
}
