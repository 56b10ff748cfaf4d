package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/jwebster45206/case-engine/internal/storage"
)

type CasefileHandler struct {
	logger  *slog.Logger
	storage storage.Storage
}

func NewCasefileHandler(logger *slog.Logger, s storage.Storage) *CasefileHandler {
	return &CasefileHandler{
		logger:  logger,
		storage: s,
	}
}

func (h *CasefileHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodGet {
		writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	filename := strings.TrimSpace(strings.TrimPrefix(r.URL.Path, "/v1/casefiles"))
	filename = strings.TrimPrefix(filename, "/")

	if filename == "" {
		h.handleList(w, r)
		return
	}
	h.handleGet(w, r, filename)
}

func (h *CasefileHandler) handleList(w http.ResponseWriter, r *http.Request) {
	casefiles, err := h.storage.ListCasefiles(r.Context())
	if err != nil {
		h.logger.Error("Failed to list casefiles", "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to list casefiles")
		return
	}
	writeJSON(w, h.logger, http.StatusOK, casefiles)
}

func (h *CasefileHandler) handleGet(w http.ResponseWriter, r *http.Request, filename string) {
	if strings.Contains(filename, "..") || strings.Contains(filename, "/") {
		writeError(w, h.logger, http.StatusBadRequest, "Invalid filename")
		return
	}

	cf, err := h.storage.GetCasefile(r.Context(), filename)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			writeError(w, h.logger, http.StatusNotFound, "Casefile not found")
			return
		}
		h.logger.Error("Failed to get casefile", "error", err, "filename", filename)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to retrieve casefile")
		return
	}
	writeJSON(w, h.logger, http.StatusOK, cf)
}
