package models

// FeatureVector is the fixed-schema numeric input for one fixture. Field
// names follow the ML service contract; the vector is rebuilt per request
// and never persisted.
type FeatureVector struct {
	HomeElo        float64 `json:"home_elo"`
	AwayElo        float64 `json:"away_elo"`
	EloDiff        float64 `json:"elo_diff"`
	HomeFormLast5  float64 `json:"home_form_last5"`
	AwayFormLast5  float64 `json:"away_form_last5"`
	HomeGoalsLast5 int     `json:"home_goals_last5"`
	AwayGoalsLast5 int     `json:"away_goals_last5"`
	HomeXGLast5    float64 `json:"home_xg_last5"`
	AwayXGLast5    float64 `json:"away_xg_last5"`
	H2HHomeWins    int     `json:"h2h_home_wins"`
	H2HDraws       int     `json:"h2h_draws"`
	H2HAwayWins    int     `json:"h2h_away_wins"`

	// Possession is not tracked by the engine; the ML service expects the
	// fields, so both sides get a neutral 50.
	HomePossessionAvg float64 `json:"home_possession_avg"`
	AwayPossessionAvg float64 `json:"away_possession_avg"`

	VenueAdvantage  float64 `json:"venue_advantage"`
	StageImportance float64 `json:"stage_importance"`
	HomeRestDays    int     `json:"home_rest_days"`
	AwayRestDays    int     `json:"away_rest_days"`

	// Anti-bias features.
	EloGapMagnitude       float64 `json:"elo_gap_magnitude"`
	UnderdogFactor        int     `json:"underdog_factor"`
	QualityTierHome       int     `json:"quality_tier_home"`
	QualityTierAway       int     `json:"quality_tier_away"`
	StrengthAdjustedVenue float64 `json:"strength_adjusted_venue"`
}
