package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/uclcentral/prediction-api/internal/logic"
	"github.com/uclcentral/prediction-api/internal/models"
)

// IngestResult marks a scheduled match as finished with its final score
// @Summary Ingest Match Result
// @Tags Results
// @Accept json
// @Produce json
// @Param result body models.ResultIngestRequest true "Final result"
// @Success 200 {object} models.Match
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /results [post]
func (h *Handler) IngestResult(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodySize)

	var req models.ResultIngestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	match, applied, err := h.results.MarkFinished(r.Context(), &req)
	if errors.Is(err, logic.ErrMatchNotFound) {
		h.errorResponse(w, http.StatusNotFound, "Match not found")
		return
	}
	if err != nil {
		h.logger.Errorw("Failed to ingest result", "error", err, "matchID", req.MatchID)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to ingest result")
		return
	}

	status := http.StatusOK
	if !applied {
		// Replay of an already-finished match; idempotent, not an error.
		h.logger.Infow("Duplicate result ignored", "matchID", req.MatchID)
	}
	h.jsonResponse(w, status, match)
}
