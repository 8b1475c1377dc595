package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/uclcentral/prediction-api/internal/engine"
	"github.com/uclcentral/prediction-api/internal/logic"
)

// GetPlayerForecast returns phase-aware multi-horizon forecasts for a player
// @Summary Get Player Forecast
// @Tags Forecasts
// @Produce json
// @Param player path string true "Player name"
// @Param horizons query int false "Matchdays ahead (1-3)" default(3)
// @Success 200 {object} models.PlayerForecast
// @Failure 404 {object} map[string]string "Not Found"
// @Router /forecast/player/{player} [get]
func (h *Handler) GetPlayerForecast(w http.ResponseWriter, r *http.Request) {
	player := chi.URLParam(r, "player")
	if player == "" {
		h.errorResponse(w, http.StatusBadRequest, "Player name is required")
		return
	}

	horizons := engine.MaxHorizon
	if raw := r.URL.Query().Get("horizons"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > engine.MaxHorizon {
			h.errorResponse(w, http.StatusBadRequest, "horizons must be between 1 and 3")
			return
		}
		horizons = n
	}

	forecast, err := h.forecast.GetPlayerForecast(r.Context(), player, horizons)
	if errors.Is(err, logic.ErrPlayerNotFound) {
		h.errorResponse(w, http.StatusNotFound, "Player not found")
		return
	}
	if err != nil {
		h.logger.Errorw("Failed to get player forecast", "error", err, "player", player)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to get forecast")
		return
	}

	h.jsonResponse(w, http.StatusOK, forecast)
}
