package main

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/jwebster45206/case-engine/internal/services"
	"github.com/jwebster45206/case-engine/internal/storage"
	"github.com/jwebster45206/case-engine/pkg/engine"
)

const sessionTimeout = 60 * time.Second

// GameSession runs a case in-process: it owns the engine, saves every
// turn to local storage, and exposes just what the UI needs.
type GameSession struct {
	store    storage.Storage
	narrator services.Narrator
	logger   *slog.Logger

	engine   *engine.Engine
	casefile string
}

func NewGameSession(store storage.Storage, narrator services.Narrator, logger *slog.Logger) *GameSession {
	return &GameSession{
		store:    store,
		narrator: narrator,
		logger:   logger,
	}
}

// ListCasefiles returns casefile titles in stable order plus the
// title -> filename map.
func (s *GameSession) ListCasefiles() ([]string, map[string]string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), sessionTimeout)
	defer cancel()

	casefiles, err := s.store.ListCasefiles(ctx)
	if err != nil {
		return nil, nil, err
	}
	if len(casefiles) == 0 {
		return nil, nil, fmt.Errorf("no casefiles found")
	}

	titles := make([]string, 0, len(casefiles))
	for title := range casefiles {
		titles = append(titles, title)
	}
	sort.Strings(titles)
	return titles, casefiles, nil
}

// StartCase builds a fresh world from a casefile, saves the opening
// snapshot, and returns the case briefing text.
func (s *GameSession) StartCase(filename string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), sessionTimeout)
	defer cancel()

	cf, err := s.store.GetCasefile(ctx, filename)
	if err != nil {
		return "", fmt.Errorf("failed to load casefile: %w", err)
	}
	if err := cf.Validate(); err != nil {
		return "", fmt.Errorf("casefile is invalid: %w", err)
	}

	ws, err := cf.Build()
	if err != nil {
		return "", fmt.Errorf("failed to build world: %w", err)
	}

	var narrator engine.Narrator
	if s.narrator != nil {
		narrator = s.narrator
	}
	s.engine = engine.New(ws, cf.Endings, narrator, s.logger)
	s.casefile = filename

	if err := s.store.SaveWorldState(ctx, ws.ID, ws); err != nil {
		return "", fmt.Errorf("failed to save opening state: %w", err)
	}
	return cf.Story, nil
}

// Perform applies one action and persists the resulting snapshot. The
// world mutation always survives even if the save fails; the UI shows
// the save error alongside the narration.
func (s *GameSession) Perform(actionID string) (*engine.ActionResult, error) {
	ctx, cancel := context.WithTimeout(context.Background(), sessionTimeout)
	defer cancel()

	result := s.engine.Perform(ctx, actionID)

	ws := s.engine.World()
	if err := s.store.SaveWorldState(ctx, ws.ID, ws); err != nil {
		return result, fmt.Errorf("failed to save game: %w", err)
	}
	return result, nil
}

// Actions returns the current action surface.
func (s *GameSession) Actions() []engine.Action {
	return s.engine.ListActions()
}

// Stats returns the current session summary.
func (s *GameSession) Stats() engine.GameStats {
	return s.engine.Stats()
}

// SessionID is the persisted snapshot id, used to resume via the API.
func (s *GameSession) SessionID() string {
	return s.engine.World().ID.String()
}
