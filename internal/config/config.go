// Package config reads process settings from optional .env files and the
// environment.
package config

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pysugar/code-facts/internal/db"
)

const defaultHTTPTimeout = 2 * time.Minute

// Config is the resolved server configuration.
type Config struct {
	Host          string
	Port          string
	DBPath        string
	DBLogLevel    string
	AdminPassword string
	// HTTPTimeout caps every outbound provider call, on top of the per
	// provider timeout.
	HTTPTimeout time.Duration
	// Bootstrap holds settings seeded on startup, keyed by settings key.
	Bootstrap map[string]string
}

// Load reads the given .env files, skipping any that do not exist, then builds
// a Config from the environment. Variables already set in the environment win
// over .env values.
func Load(files ...string) (Config, error) {
	for _, file := range files {
		if _, err := os.Stat(file); err != nil {
			continue
		}
		if err := godotenv.Load(file); err != nil {
			return Config{}, fmt.Errorf("failed to load %s: %w", file, err)
		}
		log.Printf("📄 Loaded environment from %s", file)
	}

	cfg := Config{
		Host:          getEnv("HOST", "127.0.0.1"),
		Port:          os.Getenv("PORT"),
		DBPath:        getEnv("FACTS_DB_PATH", "facts.db"),
		DBLogLevel:    getEnv("FACTS_DB_LOG_LEVEL", "warn"),
		AdminPassword: os.Getenv("FACTS_ADMIN_PASSWORD"),
		HTTPTimeout:   defaultHTTPTimeout,
		Bootstrap:     map[string]string{},
	}
	if cfg.Port == "" {
		if os.Getenv("FACTS_MODE") == "release" {
			cfg.Port = "8087"
		} else {
			cfg.Port = "8080"
		}
	}

	if raw := strings.TrimSpace(os.Getenv("FACTS_HTTP_TIMEOUT")); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			return Config{}, fmt.Errorf("invalid FACTS_HTTP_TIMEOUT %q", raw)
		}
		cfg.HTTPTimeout = d
	}

	for env, key := range map[string]string{
		"FACTS_PROVIDER": db.KeySelectedProvider,
		"FACTS_API_KEY":  db.KeyAPIKey,
		"FACTS_BASE_URL": db.KeyBaseURL,
		"FACTS_MODEL":    db.KeySelectedModel,
	} {
		if v := strings.TrimSpace(os.Getenv(env)); v != "" {
			cfg.Bootstrap[key] = v
		}
	}

	return cfg, nil
}

// Addr is the listen address.
func (c Config) Addr() string {
	return c.Host + ":" + c.Port
}

// DisplayURL is the address shown in the startup banner.
func (c Config) DisplayURL() string {
	if c.Host == "0.0.0.0" {
		return "<your-ip>:" + c.Port
	}
	return "localhost:" + c.Port
}

// Seeder stores a value only when its key is absent.
type Seeder interface {
	SetDefault(ctx context.Context, key string, value any) error
}

// SeedSettings writes the bootstrap values without overwriting anything the
// user already chose.
func (c Config) SeedSettings(ctx context.Context, s Seeder) error {
	for key, value := range c.Bootstrap {
		if err := s.SetDefault(ctx, key, value); err != nil {
			return fmt.Errorf("seed %s: %w", key, err)
		}
	}
	if len(c.Bootstrap) > 0 {
		log.Printf("🌱 Seeded %d setting(s) from environment", len(c.Bootstrap))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
