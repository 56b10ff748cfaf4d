package logger

import (
	"log/slog"
	"os"

	"github.com/jwebster45206/case-engine/internal/config"
)

// Setup configures the global slog logger. Production gets JSON output,
// everything else a text handler.
func Setup(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}

	var handler slog.Handler
	if cfg.Environment == "production" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}
