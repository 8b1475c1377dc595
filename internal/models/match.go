package models

import "time"

// Match statuses. A match is created SCHEDULED and transitions to FINISHED
// exactly once, together with its score fields.
const (
	StatusScheduled = "SCHEDULED"
	StatusFinished  = "FINISHED"
)

// Match is one fixture between two teams.
type Match struct {
	ID        string    `json:"id"`
	HomeTeam  string    `json:"home_team"`
	AwayTeam  string    `json:"away_team"`
	Date      time.Time `json:"date"`
	Venue     string    `json:"venue"`
	Stage     string    `json:"stage"`
	Matchday  int       `json:"matchday"`
	Status    string    `json:"status"`
	HomeGoals *int      `json:"home_goals,omitempty"`
	AwayGoals *int      `json:"away_goals,omitempty"`
	HomeXG    *float64  `json:"home_xg,omitempty"`
	AwayXG    *float64  `json:"away_xg,omitempty"`
}

// TeamForm is the rolling last-5 summary exposed by the form endpoint.
type TeamForm struct {
	Team                string  `json:"team"`
	MatchesCounted      int     `json:"matches_counted"`
	PointsPerGame       float64 `json:"points_per_game"`
	GoalsPerGame        float64 `json:"goals_per_game"`
	GoalsAgainstPerGame float64 `json:"goals_against_per_game"`
	XGPerGame           float64 `json:"xg_per_game"`
	XGAgainstPerGame    float64 `json:"xga_per_game"`
}

// HeadToHead is the historical tally between two teams, from the first
// team's perspective.
type HeadToHead struct {
	HomeTeam string `json:"home_team"`
	AwayTeam string `json:"away_team"`
	HomeWins int    `json:"home_wins"`
	Draws    int    `json:"draws"`
	AwayWins int    `json:"away_wins"`
}

// TeamRating is one row of the ratings snapshot.
type TeamRating struct {
	Team   string  `json:"team"`
	Rating float64 `json:"rating"`
}
