package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	stdlog "log"

	"github.com/jwebster45206/case-engine/internal/config"
	"github.com/jwebster45206/case-engine/internal/handlers"
	"github.com/jwebster45206/case-engine/internal/logger"
	"github.com/jwebster45206/case-engine/internal/middleware"
	"github.com/jwebster45206/case-engine/internal/services"
	"github.com/jwebster45206/case-engine/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		stdlog.Fatal(err)
	}

	log := logger.Setup(cfg)

	log.Info("Starting Case Engine API",
		"port", cfg.Port,
		"environment", cfg.Environment,
		"storage_backend", cfg.StorageBackend,
		"narrator_provider", cfg.NarratorProvider,
		"model_name", cfg.ModelName)

	var narrator services.Narrator
	switch strings.ToLower(cfg.NarratorProvider) {
	case "anthropic":
		if cfg.AnthropicAPIKey == "" {
			log.Error("Anthropic API key is required when using anthropic provider")
			os.Exit(1)
		}
		narrator = services.NewAnthropicNarrator(cfg.AnthropicAPIKey, cfg.ModelName, log)
		log.Info("Using Anthropic narrator")
	case "ollama":
		narrator = services.NewOllamaNarrator(cfg.OllamaURL, cfg.ModelName, log)
		log.Info("Using Ollama narrator")
	case "none", "":
		log.Info("No narrator provider configured, using template narration")
	default:
		log.Error("Invalid narrator provider specified", "provider", cfg.NarratorProvider, "supported", []string{"anthropic", "ollama", "none"})
		os.Exit(1)
	}

	var store storage.Storage
	switch strings.ToLower(cfg.StorageBackend) {
	case "redis":
		rs := storage.NewRedisStorage(cfg.RedisURL, cfg.DataDir, log)
		storageCtx, storageCancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer storageCancel()
		if err := rs.WaitForConnection(storageCtx); err != nil {
			log.Error("Failed to connect to Redis", "error", err)
			os.Exit(1)
		}
		store = rs
	case "sqlite":
		ss, err := storage.NewSQLiteStorage(cfg.SQLitePath, cfg.DataDir, log)
		if err != nil {
			log.Error("Failed to open SQLite storage", "error", err, "path", cfg.SQLitePath)
			os.Exit(1)
		}
		store = ss
	default:
		log.Error("Invalid storage backend specified", "backend", cfg.StorageBackend, "supported", []string{"redis", "sqlite"})
		os.Exit(1)
	}
	log.Info("Storage connection established successfully")

	if narrator != nil {
		initCtx, initCancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer initCancel()
		if err := narrator.InitModel(initCtx, cfg.ModelName); err != nil {
			log.Error("Failed to initialize narrator model", "error", err, "model", cfg.ModelName)
			os.Exit(1)
		}
	}

	mux := http.NewServeMux()

	mux.Handle("/health", handlers.NewHealthHandler(store, log))

	casefileHandler := handlers.NewCasefileHandler(log, store)
	mux.Handle("/v1/casefiles", casefileHandler)
	mux.Handle("/v1/casefiles/", casefileHandler)

	gameStateHandler := handlers.NewGameStateHandler(log, store)
	mux.Handle("/v1/gamestate", gameStateHandler)
	mux.Handle("/v1/gamestate/", gameStateHandler)

	mux.Handle("/v1/action", handlers.NewActionHandler(log, store, narrator))

	server := &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     middleware.Logger(mux),
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	go func() {
		log.Info("Server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Server is shutting down...")

	if err := store.Close(); err != nil {
		log.Error("Error closing storage connection", "error", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("Server exited")
}
