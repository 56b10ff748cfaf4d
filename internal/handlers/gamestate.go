package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/jwebster45206/case-engine/internal/storage"
	"github.com/jwebster45206/case-engine/pkg/engine"
	"github.com/jwebster45206/case-engine/pkg/world"
)

type GameStateHandler struct {
	storage storage.Storage
	logger  *slog.Logger
}

func NewGameStateHandler(logger *slog.Logger, s storage.Storage) *GameStateHandler {
	return &GameStateHandler{
		storage: s,
		logger:  logger,
	}
}

// CreateGameStateRequest defines the request body for starting a new case.
type CreateGameStateRequest struct {
	Casefile   string `json:"casefile"`              // Required: casefile filename
	PlayerName string `json:"player_name,omitempty"` // Optional: override casefile's player name
}

// Normalize lowercases the casefile name and ensures a .json extension.
func (req *CreateGameStateRequest) Normalize() {
	req.Casefile = strings.ToLower(strings.TrimSpace(req.Casefile))
	if req.Casefile != "" && !strings.HasSuffix(req.Casefile, ".json") {
		req.Casefile += ".json"
	}
}

// GameStateResponse pairs a world snapshot with the actions
// currently available to the player.
type GameStateResponse struct {
	GameState *world.WorldState `json:"gamestate"`
	Actions   []engine.Action   `json:"actions"`
	Stats     engine.GameStats  `json:"stats"`
}

// ServeHTTP handles game state CRUD.
// Routes:
// POST /v1/gamestate          - Start a new case
// GET /v1/gamestate/{id}      - Read game state by ID
// DELETE /v1/gamestate/{id}   - Delete game state by ID
func (h *GameStateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	path := strings.Trim(strings.TrimPrefix(r.URL.Path, "/v1/gamestate"), "/")
	var gameStateID uuid.UUID
	var err error

	if path != "" {
		gameStateID, err = uuid.Parse(path)
		if err != nil {
			h.logger.Warn("Invalid game state ID", "id", path, "error", err)
			writeError(w, h.logger, http.StatusBadRequest, "Invalid game state ID format")
			return
		}
	}

	switch r.Method {
	case http.MethodPost:
		h.handleCreate(w, r)

	case http.MethodGet:
		if gameStateID == uuid.Nil {
			writeError(w, h.logger, http.StatusBadRequest, "Game state ID is required for GET requests")
			return
		}
		h.handleRead(w, r, gameStateID)

	case http.MethodDelete:
		if gameStateID == uuid.Nil {
			writeError(w, h.logger, http.StatusBadRequest, "Game state ID is required for DELETE requests")
			return
		}
		h.handleDelete(w, r, gameStateID)

	default:
		h.logger.Warn("Method not allowed for game state endpoint", "method", r.Method)
		writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Supported methods: POST, GET, DELETE")
	}
}

func (h *GameStateHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateGameStateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Invalid JSON in request body", "error", err)
		writeError(w, h.logger, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}
	req.Normalize()

	if req.Casefile == "" {
		writeError(w, h.logger, http.StatusBadRequest, "casefile field is required")
		return
	}

	cf, err := h.storage.GetCasefile(r.Context(), req.Casefile)
	if err != nil {
		h.logger.Warn("Failed to load casefile", "error", err, "casefile", req.Casefile)
		writeError(w, h.logger, http.StatusBadRequest, "Failed to load casefile: "+err.Error())
		return
	}

	if err := cf.Validate(); err != nil {
		h.logger.Error("Casefile failed validation", "error", err, "casefile", req.Casefile)
		writeError(w, h.logger, http.StatusInternalServerError, "Casefile is invalid: "+err.Error())
		return
	}

	ws, err := cf.Build()
	if err != nil {
		h.logger.Error("Failed to build world state", "error", err, "casefile", req.Casefile)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to start case")
		return
	}
	if req.PlayerName != "" {
		ws.Player.Name = req.PlayerName
	}

	eng := engine.New(ws, cf.Endings, nil, h.logger)

	if err := h.storage.SaveWorldState(r.Context(), ws.ID, ws); err != nil {
		h.logger.Error("Failed to save new game state", "error", err, "id", ws.ID.String())
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to create game state")
		return
	}

	h.logger.Debug("Game state created", "id", ws.ID.String(), "casefile", req.Casefile)
	writeJSON(w, h.logger, http.StatusCreated, GameStateResponse{
		GameState: ws,
		Actions:   eng.ListActions(),
		Stats:     eng.Stats(),
	})
}

func (h *GameStateHandler) handleRead(w http.ResponseWriter, r *http.Request, gameStateID uuid.UUID) {
	ws, err := h.storage.LoadWorldState(r.Context(), gameStateID)
	if err != nil {
		h.logger.Error("Failed to load game state", "error", err, "id", gameStateID.String())
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to load game state")
		return
	}
	if ws == nil {
		writeError(w, h.logger, http.StatusNotFound, "Game state not found")
		return
	}

	cf, err := h.storage.GetCasefile(r.Context(), ws.CasefileName)
	if err != nil {
		h.logger.Error("Failed to load casefile for game state", "error", err, "id", gameStateID.String(), "casefile", ws.CasefileName)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to load game state")
		return
	}

	eng := engine.New(ws, cf.Endings, nil, h.logger)
	writeJSON(w, h.logger, http.StatusOK, GameStateResponse{
		GameState: ws,
		Actions:   eng.ListActions(),
		Stats:     eng.Stats(),
	})
}

func (h *GameStateHandler) handleDelete(w http.ResponseWriter, r *http.Request, gameStateID uuid.UUID) {
	ws, err := h.storage.LoadWorldState(r.Context(), gameStateID)
	if err != nil {
		h.logger.Error("Failed to load game state for delete", "error", err, "id", gameStateID.String())
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to delete game state")
		return
	}
	if ws == nil {
		writeError(w, h.logger, http.StatusNotFound, "Game state not found")
		return
	}

	if err := h.storage.DeleteWorldState(r.Context(), gameStateID); err != nil {
		h.logger.Error("Failed to delete game state", "error", err, "id", gameStateID.String())
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to delete game state")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
