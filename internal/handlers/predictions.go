package handlers

import "net/http"

// GetMatchPrediction returns the outcome forecast for one fixture
// @Summary Predict Match Outcome
// @Tags Predictions
// @Produce json
// @Param home query string true "Home team name"
// @Param away query string true "Away team name"
// @Param venue query string false "Venue name"
// @Param stage query string false "Competition stage" default(group)
// @Success 200 {object} models.MatchPrediction
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /predict/match [get]
func (h *Handler) GetMatchPrediction(w http.ResponseWriter, r *http.Request) {
	home := r.URL.Query().Get("home")
	away := r.URL.Query().Get("away")
	if home == "" || away == "" {
		h.errorResponse(w, http.StatusBadRequest, "home and away are required")
		return
	}
	if home == away {
		h.errorResponse(w, http.StatusBadRequest, "home and away must differ")
		return
	}
	venue := r.URL.Query().Get("venue")
	stage := r.URL.Query().Get("stage")

	pred, err := h.prediction.GetMatchPrediction(r.Context(), home, away, venue, stage)
	if err != nil {
		h.logger.Errorw("Failed to get match prediction", "error", err, "home", home, "away", away)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to get prediction")
		return
	}

	h.jsonResponse(w, http.StatusOK, pred)
}

// ExplainMatchPrediction returns a prediction with feature attribution
// @Summary Explain Match Prediction
// @Tags Predictions
// @Produce json
// @Param home query string true "Home team name"
// @Param away query string true "Away team name"
// @Param venue query string false "Venue name"
// @Param stage query string false "Competition stage" default(group)
// @Success 200 {object} models.MatchExplanation
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /predict/match/explain [get]
func (h *Handler) ExplainMatchPrediction(w http.ResponseWriter, r *http.Request) {
	home := r.URL.Query().Get("home")
	away := r.URL.Query().Get("away")
	if home == "" || away == "" {
		h.errorResponse(w, http.StatusBadRequest, "home and away are required")
		return
	}
	venue := r.URL.Query().Get("venue")
	stage := r.URL.Query().Get("stage")

	explained, err := h.prediction.ExplainMatchPrediction(r.Context(), home, away, venue, stage)
	if err != nil {
		h.logger.Errorw("Failed to explain prediction", "error", err, "home", home, "away", away)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to explain prediction")
		return
	}

	h.jsonResponse(w, http.StatusOK, explained)
}
