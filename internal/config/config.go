package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all runtime configuration, populated from the
// environment. A .env file in the working directory is loaded first if
// present.
type Config struct {
	Port        string `env:"PORT" envDefault:"8080"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevelRaw string `env:"LOG_LEVEL" envDefault:"info"`

	// Storage of world snapshots: "redis" or "sqlite".
	StorageBackend string `env:"STORAGE_BACKEND" envDefault:"redis"`
	RedisURL       string `env:"REDIS_URL" envDefault:"localhost:6379"`
	SQLitePath     string `env:"SQLITE_PATH" envDefault:"./case-engine.db"`
	DataDir        string `env:"DATA_DIR" envDefault:"./data"`

	// Narrative generation: "anthropic", "ollama", or "none" for the
	// deterministic template narrator.
	NarratorProvider string `env:"NARRATOR_PROVIDER" envDefault:"none"`
	ModelName        string `env:"MODEL_NAME"`
	AnthropicAPIKey  string `env:"ANTHROPIC_API_KEY"`
	OllamaURL        string `env:"OLLAMA_URL" envDefault:"http://localhost:11434"`

	LogLevel slog.Level `env:"-"`
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	// Missing .env is fine; the environment may be set directly.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	cfg.LogLevel = parseLogLevel(cfg.LogLevelRaw)
	return cfg, nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
