package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/ulule/limiter/v3"
	"golang.org/x/text/language"
)

const (
	defaultPort      = "8080"
	defaultLocale    = "pt-BR"
	defaultRateLimit = "300-M"
)

// loads configuration from environment variables
func LoadEnvironmentVariables() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		_ = err // not an error - production environments may not have .env file
	}

	return FromLookup(os.Getenv)
}

// builds the configuration from getenv, applying defaults and validating values
func FromLookup(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		Environment:   withDefault(getenv("ENVIRONMENT"), "development"),
		Port:          withDefault(getenv("PORT"), defaultPort),
		DatabaseURL:   getenv("DATABASE_URL"),
		RedisURL:      getenv("REDIS_URL"),
		DefaultLocale: withDefault(getenv("DEFAULT_LOCALE"), defaultLocale),
		MessagesDir:   getenv("MESSAGES_DIR"),
		RateLimit:     withDefault(getenv("RATE_LIMIT"), defaultRateLimit),
		CORSOrigins:   splitList(getenv("CORS_ORIGINS")),
	}

	if _, err := language.Parse(cfg.DefaultLocale); err != nil {
		return nil, fmt.Errorf("DEFAULT_LOCALE %q is not a valid language tag: %w", cfg.DefaultLocale, err)
	}

	if _, err := limiter.NewRateFromFormatted(cfg.RateLimit); err != nil {
		return nil, fmt.Errorf("RATE_LIMIT %q is invalid: %w", cfg.RateLimit, err)
	}

	if cfg.IsProduction() && len(cfg.CORSOrigins) == 0 {
		return nil, fmt.Errorf("CORS_ORIGINS environment variable is required in production")
	}

	return cfg, nil
}

func withDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}

	return value
}

func splitList(value string) []string {
	var out []string

	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}

	return out
}
