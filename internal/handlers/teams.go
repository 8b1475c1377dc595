package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// GetRatings returns the current rating snapshot, strongest first
// @Summary List Team Ratings
// @Tags Teams
// @Produce json
// @Success 200 {array} models.TeamRating
// @Router /ratings [get]
func (h *Handler) GetRatings(w http.ResponseWriter, r *http.Request) {
	h.jsonResponse(w, http.StatusOK, h.stats.Ratings(r.Context()))
}

// GetTeamForm returns a team's rolling last-5 aggregates
// @Summary Get Team Form
// @Tags Teams
// @Produce json
// @Param team path string true "Team name"
// @Success 200 {object} models.TeamForm
// @Router /teams/{team}/form [get]
func (h *Handler) GetTeamForm(w http.ResponseWriter, r *http.Request) {
	team := chi.URLParam(r, "team")
	if team == "" {
		h.errorResponse(w, http.StatusBadRequest, "Team name is required")
		return
	}
	h.jsonResponse(w, http.StatusOK, h.stats.TeamForm(r.Context(), team))
}

// GetHeadToHead returns the historical tally between two teams
// @Summary Get Head-to-Head Tally
// @Tags Teams
// @Produce json
// @Param home query string true "First team name"
// @Param away query string true "Second team name"
// @Success 200 {object} models.HeadToHead
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /teams/h2h [get]
func (h *Handler) GetHeadToHead(w http.ResponseWriter, r *http.Request) {
	home := r.URL.Query().Get("home")
	away := r.URL.Query().Get("away")
	if home == "" || away == "" {
		h.errorResponse(w, http.StatusBadRequest, "home and away are required")
		return
	}
	h.jsonResponse(w, http.StatusOK, h.stats.HeadToHead(r.Context(), home, away))
}
