package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config captures the runtime configuration for the application.
type Config struct {
	Database DatabaseConfig
	LogLevel string
	Seed     SeedConfig
}

// DatabaseConfig contains the local store settings.
type DatabaseConfig struct {
	Path string
}

// SeedConfig controls demo-data seeding on startup.
type SeedConfig struct {
	DemoData bool
}

// Load inspects the environment and builds a Config value.
func Load() (Config, error) {
	cfg := Config{}

	cfg.Database = DatabaseConfig{
		Path: firstNonEmpty(
			os.Getenv("MEADERY_DB_PATH"),
			os.Getenv("DB_PATH"),
			"meadery.db",
		),
	}

	cfg.LogLevel = firstNonEmpty(os.Getenv("LOG_LEVEL"), "info")

	cfg.Seed = SeedConfig{
		DemoData: parseBoolWithDefault(os.Getenv("SEED_DEMO_DATA"), false),
	}

	if strings.TrimSpace(cfg.Database.Path) == "" {
		return Config{}, fmt.Errorf("database path must not be empty")
	}

	return cfg, nil
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}

func parseBoolWithDefault(value string, def bool) bool {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return def
	}
	parsed, err := strconv.ParseBool(trimmed)
	if err != nil {
		return def
	}
	return parsed
}
