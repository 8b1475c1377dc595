package engine

import (
	"math"
	"time"

	"github.com/uclcentral/prediction-api/internal/models"
)

const (
	// baseVenueAdvantage is the neutral-gap home edge, an empirically tuned
	// default.
	baseVenueAdvantage = 0.15
	maxVenueAdvantage  = 0.20

	tierOneThreshold = 1850
	tierTwoThreshold = 1750

	// The engine does not track possession or rest; the model contract
	// still expects the fields.
	neutralPossession = 50
	defaultRestDays   = 3
)

// Assembler builds feature vectors from the rating book and history
// tracker. Every derived field is a pure function of the stores' state at
// the fixture's kickoff.
type Assembler struct {
	ratings *RatingBook
	history *HistoryTracker
}

func NewAssembler(ratings *RatingBook, history *HistoryTracker) *Assembler {
	return &Assembler{ratings: ratings, history: history}
}

// qualityTier buckets a rating: 1 elite, 2 strong, 3 the rest.
func qualityTier(rating float64) int {
	switch {
	case rating > tierOneThreshold:
		return 1
	case rating > tierTwoThreshold:
		return 2
	default:
		return 3
	}
}

// strengthAdjustedVenue shrinks the home edge as the rating gap grows:
// favorites hosting get little extra, underdog hosts keep more. Capped at
// maxVenueAdvantage either way.
func strengthAdjustedVenue(homeRating, awayRating float64) float64 {
	gap := homeRating - awayRating
	adv := baseVenueAdvantage - gap/4000
	if adv < 0 {
		adv = 0
	}
	if adv > maxVenueAdvantage {
		adv = maxVenueAdvantage
	}
	return adv
}

// Assemble builds the feature vector for one fixture. All temporal inputs
// are cut off strictly before kickoff; a zero kickoff uses current state.
func (a *Assembler) Assemble(home, away string, stage Stage, kickoff time.Time) models.FeatureVector {
	var homeElo, awayElo float64
	if kickoff.IsZero() {
		homeElo = a.ratings.Rating(home)
		awayElo = a.ratings.Rating(away)
	} else {
		homeElo = a.ratings.RatingAt(home, kickoff)
		awayElo = a.ratings.RatingAt(away, kickoff)
	}

	homeForm := a.history.FormBefore(home, kickoff)
	awayForm := a.history.FormBefore(away, kickoff)
	homeGoals, homeXG := a.history.WindowTotals(home, kickoff)
	awayGoals, awayXG := a.history.WindowTotals(away, kickoff)
	h2h := a.history.HeadToHeadBefore(home, away, kickoff)

	diff := homeElo - awayElo
	underdog := 0
	if awayElo > homeElo {
		underdog = 1
	}

	return models.FeatureVector{
		HomeElo:        homeElo,
		AwayElo:        awayElo,
		EloDiff:        diff,
		HomeFormLast5:  homeForm.PointsPerGame,
		AwayFormLast5:  awayForm.PointsPerGame,
		HomeGoalsLast5: homeGoals,
		AwayGoalsLast5: awayGoals,
		HomeXGLast5:    homeXG,
		AwayXGLast5:    awayXG,
		H2HHomeWins:    h2h.HomeWins,
		H2HDraws:       h2h.Draws,
		H2HAwayWins:    h2h.AwayWins,

		HomePossessionAvg: neutralPossession,
		AwayPossessionAvg: neutralPossession,

		VenueAdvantage:  baseVenueAdvantage,
		StageImportance: stage.Importance(),
		HomeRestDays:    defaultRestDays,
		AwayRestDays:    defaultRestDays,

		EloGapMagnitude:       math.Abs(diff),
		UnderdogFactor:        underdog,
		QualityTierHome:       qualityTier(homeElo),
		QualityTierAway:       qualityTier(awayElo),
		StrengthAdjustedVenue: strengthAdjustedVenue(homeElo, awayElo),
	}
}
