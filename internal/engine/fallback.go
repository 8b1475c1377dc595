package engine

import (
	"math"

	"github.com/uclcentral/prediction-api/internal/models"
)

// Fallback model constants. The bonus tiers and venue factors are
// empirically tuned defaults, not derived values.
const (
	// Elo ratings are compressed to strength points before the logistic so
	// the small tuned constants keep their meaning.
	strengthScale = 10

	logisticDivisor = 10

	drawCeiling = 0.30
	drawFloor   = 0.10

	xgBase = 1.5
	xgMin  = 0.5
	xgMax  = 3.5
)

// Home bonus shrinks as the rating gap grows: rating dominance is already in
// the logistic, so big favorites must not collect it twice via the venue.
func homeBonusTier(gapMagnitude float64) float64 {
	switch {
	case gapMagnitude >= 150:
		return 2.0
	case gapMagnitude >= 60:
		return 2.5
	default:
		return 3.5
	}
}

// DefaultVenueFactors weights the home bonus for notoriously hard away
// grounds. Unlisted venues (and neutral finals) stay at 1.0.
func DefaultVenueFactors() map[string]float64 {
	return map[string]float64{
		"Anfield":               1.4,
		"Signal Iduna Park":     1.35,
		"Celtic Park":           1.3,
		"Santiago Bernabeu":     1.25,
		"Camp Nou":              1.25,
		"Allianz Arena":         1.2,
		"San Siro":              1.2,
		"Ali Sami Yen":          1.2,
		"Parc des Princes":      1.15,
		"Estadio Metropolitano": 1.1,
		"Johan Cruijff Arena":   1.1,
		"Stamford Bridge":       1.1,
	}
}

// FallbackModel is the closed-form outcome estimator used whenever the
// external model is unavailable. It has no external dependencies and never
// fails for finite inputs.
type FallbackModel struct {
	venueFactors map[string]float64
}

// NewFallbackModel creates the model. A nil factor table selects
// DefaultVenueFactors.
func NewFallbackModel(venueFactors map[string]float64) *FallbackModel {
	if venueFactors == nil {
		venueFactors = DefaultVenueFactors()
	}
	return &FallbackModel{venueFactors: venueFactors}
}

// sanitizeRating guards the math against non-finite inputs.
func sanitizeRating(r float64) float64 {
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return InitialRating
	}
	return r
}

func (m *FallbackModel) venueFactor(venue string) float64 {
	if f, ok := m.venueFactors[venue]; ok {
		return f
	}
	return 1.0
}

// Predict estimates outcome probabilities and expected goals for a fixture
// from its feature vector. Probabilities come back in percent and sum to
// exactly 100: home and away are rounded to one decimal and the draw absorbs
// the rounding remainder.
func (m *FallbackModel) Predict(home, away, venue string, fv models.FeatureVector) models.MatchPrediction {
	homeElo := sanitizeRating(fv.HomeElo)
	awayElo := sanitizeRating(fv.AwayElo)

	gap := math.Abs(homeElo - awayElo)
	bonus := homeBonusTier(gap) * m.venueFactor(venue)

	homeStrength := homeElo/strengthScale + bonus
	awayStrength := awayElo / strengthScale
	diff := homeStrength - awayStrength

	rawHome := 1 / (1 + math.Exp(-diff/logisticDivisor))
	rawAway := 1 - rawHome

	// Draw odds come off the raw gap, not the venue-boosted one, so equal
	// sides always sit at the ceiling.
	rawDraw := drawCeiling - gap/strengthScale/80
	if rawDraw < drawFloor {
		rawDraw = drawFloor
	}

	total := rawHome + rawAway + rawDraw
	homeProb := round1(rawHome / total * 100)
	awayProb := round1(rawAway / total * 100)
	drawProb := round1(100 - homeProb - awayProb)

	return models.MatchPrediction{
		HomeTeam:    home,
		AwayTeam:    away,
		HomeWinProb: homeProb,
		DrawProb:    drawProb,
		AwayWinProb: awayProb,
		HomeXG:      expectedGoals(homeElo, awayElo),
		AwayXG:      expectedGoals(awayElo, homeElo),
		Confidence:  clamp(80+gap/strengthScale/2, 75, 95),
		Source:      models.SourceFallback,
	}
}

// expectedGoals estimates one side's goals from the attack/defense rating
// edge, clamped to a plausible football range. Computed independently per
// direction.
func expectedGoals(attack, defense float64) float64 {
	xg := xgBase + (attack-defense)/strengthScale/50
	return clamp(xg, xgMin, xgMax)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
