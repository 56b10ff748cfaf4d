package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jwebster45206/case-engine/internal/config"
	"github.com/jwebster45206/case-engine/internal/services"
	"github.com/jwebster45206/case-engine/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// The terminal belongs to the UI; keep logs out of it.
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	store, err := storage.NewSQLiteStorage(cfg.SQLitePath, cfg.DataDir, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open local save storage: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = store.Close() // Ignore error in defer
	}()

	var narrator services.Narrator
	switch strings.ToLower(cfg.NarratorProvider) {
	case "anthropic":
		if cfg.AnthropicAPIKey == "" {
			fmt.Fprintf(os.Stderr, "ANTHROPIC_API_KEY is required when NARRATOR_PROVIDER=anthropic\n")
			os.Exit(1)
		}
		narrator = services.NewAnthropicNarrator(cfg.AnthropicAPIKey, cfg.ModelName, log)
	case "ollama":
		narrator = services.NewOllamaNarrator(cfg.OllamaURL, cfg.ModelName, log)
	}

	session := NewGameSession(store, narrator, log)

	p := tea.NewProgram(NewConsoleUI(session),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}
