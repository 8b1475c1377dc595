package models

import "time"

// Prediction sources.
const (
	SourceModel    = "model"    // external ML service
	SourceFallback = "fallback" // built-in statistical model
)

// MatchPrediction is the outcome forecast for one fixture. Probabilities are
// percentages and always sum to 100.
type MatchPrediction struct {
	HomeTeam    string  `json:"home_team"`
	AwayTeam    string  `json:"away_team"`
	HomeWinProb float64 `json:"home_win_prob"`
	DrawProb    float64 `json:"draw_prob"`
	AwayWinProb float64 `json:"away_win_prob"`
	HomeXG      float64 `json:"home_xg"`
	AwayXG      float64 `json:"away_xg"`
	Confidence  float64 `json:"confidence"`
	Source      string  `json:"source"`
}

// ExplainFactor is one feature's contribution to a prediction.
type ExplainFactor struct {
	Feature string  `json:"feature"`
	Impact  float64 `json:"impact"`
}

// MatchExplanation pairs a prediction with its driving factors.
type MatchExplanation struct {
	Prediction MatchPrediction `json:"prediction"`
	Positive   []ExplainFactor `json:"positive"`
	Negative   []ExplainFactor `json:"negative"`
}

// TournamentContext describes where in the competition a forecast is made.
// Derived from the current matchday, never stored.
type TournamentContext struct {
	Matchday                int     `json:"matchday"`
	Phase                   string  `json:"phase"`
	QualificationLikelihood float64 `json:"qualification_likelihood"`
	RotationRisk            float64 `json:"rotation_risk"`
	FixtureDifficulty       float64 `json:"fixture_difficulty"`
}

// UncertaintyFactor is a named multiplicative discount on forecast
// confidence, applied only while its condition holds.
type UncertaintyFactor struct {
	Name       string  `json:"name"`
	Adjustment float64 `json:"adjustment"`
}

// HorizonForecast is one matchday-ahead slice of a player forecast.
type HorizonForecast struct {
	Horizon              int     `json:"horizon"`
	ExpectedPoints       float64 `json:"expected_points"`
	PrimaryStat          string  `json:"primary_stat"`
	PrimaryStatProb      float64 `json:"primary_stat_prob"`
	SecondaryStat        string  `json:"secondary_stat"`
	SecondaryStatProb    float64 `json:"secondary_stat_prob"`
	ParticipationProb    float64 `json:"participation_prob"`
	CaptaincySuitability float64 `json:"captaincy_suitability"`
	Variance             float64 `json:"variance"`
	Confidence           float64 `json:"confidence"`
}

// PlayerForecast is the multi-horizon forecast for one player.
type PlayerForecast struct {
	Player      string              `json:"player"`
	Team        string              `json:"team"`
	Position    string              `json:"position"`
	Context     TournamentContext   `json:"context"`
	Factors     []UncertaintyFactor `json:"uncertainty_factors"`
	Horizons    []HorizonForecast   `json:"horizons"`
	GeneratedAt time.Time           `json:"generated_at"`
}

// PredictionRecord is the audit row written to ClickHouse for every served
// match prediction.
type PredictionRecord struct {
	ID          string    `json:"id"`
	ServedAt    time.Time `json:"served_at"`
	HomeTeam    string    `json:"home_team"`
	AwayTeam    string    `json:"away_team"`
	Stage       string    `json:"stage"`
	Venue       string    `json:"venue"`
	HomeWinProb float64   `json:"home_win_prob"`
	DrawProb    float64   `json:"draw_prob"`
	AwayWinProb float64   `json:"away_win_prob"`
	HomeXG      float64   `json:"home_xg"`
	AwayXG      float64   `json:"away_xg"`
	Confidence  float64   `json:"confidence"`
	Source      string    `json:"source"`
	CacheHit    bool      `json:"cache_hit"`
}
