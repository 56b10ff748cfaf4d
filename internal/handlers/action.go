package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jwebster45206/case-engine/internal/services"
	"github.com/jwebster45206/case-engine/internal/storage"
	"github.com/jwebster45206/case-engine/pkg/engine"
)

const actionTimeout = 45 * time.Second

// ActionRequest asks the engine to perform one action in a running case.
type ActionRequest struct {
	GameStateID string `json:"gamestate_id"`
	ActionID    string `json:"action_id"`
}

// ActionResponse carries the outcome of an action plus the refreshed
// action list so clients never have to diff world snapshots.
type ActionResponse struct {
	Narrative   string           `json:"narrative"`
	Discoveries []string         `json:"discoveries,omitempty"`
	Actions     []engine.Action  `json:"actions"`
	Stats       engine.GameStats `json:"stats"`
	GameOver    bool             `json:"game_over"`
	Ending      string           `json:"ending,omitempty"`
}

type ActionHandler struct {
	storage  storage.Storage
	narrator services.Narrator
	logger   *slog.Logger
}

func NewActionHandler(logger *slog.Logger, s storage.Storage, narrator services.Narrator) *ActionHandler {
	return &ActionHandler{
		storage:  s,
		narrator: narrator,
		logger:   logger,
	}
}

func (h *ActionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodPost {
		h.logger.Warn("Method not allowed for action endpoint", "method", r.Method)
		writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Only POST is supported.")
		return
	}

	var req ActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Invalid JSON in request body", "error", err)
		writeError(w, h.logger, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}

	if req.ActionID == "" {
		writeError(w, h.logger, http.StatusBadRequest, "action_id field is required")
		return
	}
	gameStateID, err := uuid.Parse(req.GameStateID)
	if err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "Invalid game state ID format")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), actionTimeout)
	defer cancel()

	ws, err := h.storage.LoadWorldState(ctx, gameStateID)
	if err != nil {
		h.logger.Error("Failed to load game state", "error", err, "id", gameStateID.String())
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to load game state")
		return
	}
	if ws == nil {
		writeError(w, h.logger, http.StatusNotFound, "Game state not found")
		return
	}

	cf, err := h.storage.GetCasefile(ctx, ws.CasefileName)
	if err != nil {
		h.logger.Error("Failed to load casefile for game state", "error", err, "casefile", ws.CasefileName)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to load game state")
		return
	}

	var narrator engine.Narrator
	if h.narrator != nil {
		narrator = h.narrator
	}
	eng := engine.New(ws, cf.Endings, narrator, h.logger)

	result := eng.Perform(ctx, req.ActionID)

	if err := h.storage.SaveWorldState(ctx, ws.ID, ws); err != nil {
		h.logger.Error("Failed to save game state after action", "error", err, "id", ws.ID.String())
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to save game state")
		return
	}

	writeJSON(w, h.logger, http.StatusOK, ActionResponse{
		Narrative:   result.Narrative,
		Discoveries: result.Discoveries,
		Actions:     eng.ListActions(),
		Stats:       eng.Stats(),
		GameOver:    ws.GameOver,
		Ending:      string(ws.Ending),
	})
}
