package handlers

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Routes assembles the HTTP surface.
func (h *Handler) Routes(allowedOrigins []string) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/predict/match", h.GetMatchPrediction)
		r.Get("/predict/match/explain", h.ExplainMatchPrediction)
		r.Get("/forecast/player/{player}", h.GetPlayerForecast)
		r.Post("/results", h.IngestResult)
		r.Get("/ratings", h.GetRatings)
		r.Get("/teams/{team}/form", h.GetTeamForm)
		r.Get("/teams/h2h", h.GetHeadToHead)
	})

	return r
}
