package models

import "time"

// ResultIngestRequest marks a scheduled match as finished with its final
// score. XG values are optional; absent values fall back to the goal counts.
type ResultIngestRequest struct {
	MatchID   string   `json:"match_id" validate:"required"`
	HomeGoals int      `json:"home_goals" validate:"gte=0,lte=20"`
	AwayGoals int      `json:"away_goals" validate:"gte=0,lte=20"`
	HomeXG    *float64 `json:"home_xg,omitempty" validate:"omitempty,gte=0,lte=15"`
	AwayXG    *float64 `json:"away_xg,omitempty" validate:"omitempty,gte=0,lte=15"`
}

// ModelMatchRequest is the payload sent to the external ML service.
type ModelMatchRequest struct {
	HomeTeam string        `json:"home_team"`
	AwayTeam string        `json:"away_team"`
	Features FeatureVector `json:"features"`
}

// ModelMatchResponse is the ML service's match prediction shape.
type ModelMatchResponse struct {
	HomeWinProb float64 `json:"home_win_prob"`
	DrawProb    float64 `json:"draw_prob"`
	AwayWinProb float64 `json:"away_win_prob"`
	HomeXG      float64 `json:"home_xg"`
	AwayXG      float64 `json:"away_xg"`
	Confidence  float64 `json:"confidence"`
}

// ModelExplainResponse carries the ML service's attribution data.
type ModelExplainResponse struct {
	Prediction ModelMatchResponse `json:"prediction"`
	TopFactors struct {
		Positive []ExplainFactor `json:"positive"`
		Negative []ExplainFactor `json:"negative"`
	} `json:"top_factors"`
}

// ModelPlayerRequest asks the ML service for per-stat player expectations.
type ModelPlayerRequest struct {
	PlayerName string             `json:"player_name"`
	Position   string             `json:"position"`
	Features   map[string]float64 `json:"features"`
}

// ModelPlayerResponse maps stat name to expected value.
type ModelPlayerResponse struct {
	PlayerName  string             `json:"player_name"`
	Position    string             `json:"position"`
	Predictions map[string]float64 `json:"predictions"`
	Confidence  float64            `json:"confidence"`
}

// ModelHealthResponse is the ML service's health probe shape.
type ModelHealthResponse struct {
	Status       string          `json:"status"`
	ModelsLoaded map[string]bool `json:"models_loaded"`
	Version      string          `json:"version"`
	CheckedAt    time.Time       `json:"-"`
}
