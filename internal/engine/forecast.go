package engine

import (
	"math"

	"github.com/uclcentral/prediction-api/internal/models"
)

// Player positions.
const (
	PositionForward    = "FWD"
	PositionMidfielder = "MID"
	PositionDefender   = "DEF"
	PositionGoalkeeper = "GK"
)

// PlayerProfile is the per-player input to the forecast layer, built by the
// caller from the player log.
type PlayerProfile struct {
	Name           string
	Team           string
	Position       string
	Overall        float64
	GoalsLast5     float64
	AssistsLast5   float64
	MinutesLast5   float64
	AvgRatingLast5 float64
}

// MaxHorizon bounds how many matchdays ahead a forecast reaches.
const MaxHorizon = 3

// horizonDecay multiplies raw expectation per step ahead.
var horizonDecay = [MaxHorizon]float64{1.0, 0.95, 0.90}

// Knockout tactics get more cautious round by round: defensive roles gain
// weight, offensive roles lose it.
var (
	phaseOffense = map[Stage]float64{
		StageGroup:   1.0,
		StageRound16: 0.95,
		StageQuarter: 0.90,
		StageSemi:    0.85,
		StageFinal:   0.80,
	}
	phaseDefense = map[Stage]float64{
		StageGroup:   1.0,
		StageRound16: 1.05,
		StageQuarter: 1.10,
		StageSemi:    1.15,
		StageFinal:   1.20,
	}
)

func offensiveRole(position string) bool {
	return position == PositionForward || position == PositionMidfielder
}

// Forecaster produces phase-aware multi-horizon player forecasts.
type Forecaster struct{}

func NewForecaster() *Forecaster {
	return &Forecaster{}
}

// DeriveContext computes the tournament context for a team at a matchday.
// It is recomputed per request and never stored.
func (f *Forecaster) DeriveContext(matchday int, teamForm models.TeamForm, teamRating, opponentRating float64) models.TournamentContext {
	stage := StageForMatchday(matchday)

	qual := 1.0
	if stage == StageGroup {
		// Points pace against the ~10-point qualification line, nudged by
		// rating strength.
		pace := teamForm.PointsPerGame / 3
		edge := (teamRating - InitialRating) / 800
		qual = clamp(0.15+0.7*pace+edge, 0.05, 0.98)
	}

	rotation := 0.15
	if stage == StageGroup && matchday >= 5 && qual >= 0.85 {
		// Dead rubbers invite heavy rotation.
		rotation = 0.55
	} else if stage.Knockout() {
		rotation = 0.10
	}

	difficulty := clamp(0.5+(opponentRating-teamRating)/800, 0.10, 0.90)

	return models.TournamentContext{
		Matchday:                matchday,
		Phase:                   stage.String(),
		QualificationLikelihood: round2(qual),
		RotationRisk:            rotation,
		FixtureDifficulty:       round2(difficulty),
	}
}

// UncertaintyFactors lists the named discounts whose trigger condition
// holds for this context. Each factor multiplies into per-horizon
// confidence.
func (f *Forecaster) UncertaintyFactors(ctx models.TournamentContext) []models.UncertaintyFactor {
	stage := ParseStage(ctx.Phase)
	var factors []models.UncertaintyFactor

	if stage.Knockout() {
		factors = append(factors, models.UncertaintyFactor{Name: "knockout_pressure", Adjustment: 0.92})
	}
	if stage == StageGroup && ctx.QualificationLikelihood > 0.25 && ctx.QualificationLikelihood < 0.75 {
		factors = append(factors, models.UncertaintyFactor{Name: "qualification_pressure", Adjustment: 0.95})
	}
	if ctx.RotationRisk > 0.4 {
		factors = append(factors, models.UncertaintyFactor{Name: "rotation_risk", Adjustment: 0.90})
	}
	if ctx.FixtureDifficulty > 0.6 {
		factors = append(factors, models.UncertaintyFactor{Name: "fixture_difficulty", Adjustment: 0.93})
	}
	return factors
}

// statLine is a per-position expectation for the two headline stats.
type statLine struct {
	primary      string
	primaryExp   float64
	secondary    string
	secondaryExp float64
	primaryPts   float64
	secondaryPts float64
	baseVariance float64
}

// baseStats mirrors the rating-based heuristics the original per-position
// models degrade to: expectations scale linearly with overall rating.
func baseStats(position string, overall float64) statLine {
	switch position {
	case PositionForward:
		return statLine{
			primary:      "goals",
			primaryExp:   math.Max(0, (overall-50)/100),
			secondary:    "assists",
			secondaryExp: math.Max(0, (overall-60)/120),
			primaryPts:   4, secondaryPts: 3,
			baseVariance: 1.6,
		}
	case PositionDefender:
		return statLine{
			primary:      "tackles",
			primaryExp:   math.Max(0, (overall-55)/60+2.0),
			secondary:    "clean_sheet",
			secondaryExp: math.Max(0, math.Min(1, (overall-65)/50+0.2)),
			primaryPts:   0.5, secondaryPts: 4,
			baseVariance: 1.0,
		}
	case PositionGoalkeeper:
		return statLine{
			primary:      "saves",
			primaryExp:   math.Max(0, (overall-60)/20+2.0),
			secondary:    "clean_sheet",
			secondaryExp: math.Max(0, math.Min(1, (overall-65)/50+0.2)),
			primaryPts:   0.5, secondaryPts: 4,
			baseVariance: 0.8,
		}
	default: // midfielders and unknown positions
		return statLine{
			primary:      "assists",
			primaryExp:   math.Max(0, (overall-55)/100),
			secondary:    "key_passes",
			secondaryExp: math.Max(0, (overall-50)/80+1.0),
			primaryPts:   3, secondaryPts: 1,
			baseVariance: 1.2,
		}
	}
}

// eventProb converts an expected count into P(at least one), assuming
// Poisson arrivals.
func eventProb(expected float64) float64 {
	return 1 - math.Exp(-math.Max(0, expected))
}

// Forecast produces per-horizon forecasts for one player under the given
// context. overrides carries per-stat expectations from the external model
// and takes precedence over the built-in heuristics when present. horizons
// is clamped to [1, MaxHorizon].
func (f *Forecaster) Forecast(p PlayerProfile, ctx models.TournamentContext, overrides map[string]float64, horizons int) []models.HorizonForecast {
	if horizons < 1 {
		horizons = 1
	}
	if horizons > MaxHorizon {
		horizons = MaxHorizon
	}

	stage := ParseStage(ctx.Phase)
	factors := f.UncertaintyFactors(ctx)
	factorProduct := 1.0
	for _, uf := range factors {
		factorProduct *= uf.Adjustment
	}

	phaseMult := phaseDefense[stage]
	if offensiveRole(p.Position) {
		phaseMult = phaseOffense[stage]
	}

	line := baseStats(p.Position, p.Overall)

	// Recent output blends into the rating baseline where the player log
	// has it.
	primaryExp := line.primaryExp
	if p.Position == PositionForward && p.GoalsLast5 > 0 {
		primaryExp = 0.6*primaryExp + 0.4*(p.GoalsLast5/5)
	}
	secondaryExp := line.secondaryExp
	if offensiveRole(p.Position) && p.AssistsLast5 > 0 {
		secondaryExp = 0.6*secondaryExp + 0.4*(p.AssistsLast5/5)
	}

	// Model-served expectations win over the heuristics.
	if v, ok := overrides[line.primary]; ok && v >= 0 {
		primaryExp = v
	}
	if v, ok := overrides[line.secondary]; ok && v >= 0 {
		secondaryExp = v
	}

	minutesRatio := clamp(p.MinutesLast5/450, 0.30, 0.98)
	participation := clamp(minutesRatio*(1-ctx.RotationRisk*0.5), 0.20, 0.99)

	out := make([]models.HorizonForecast, 0, horizons)
	for h := 1; h <= horizons; h++ {
		decay := horizonDecay[h-1]

		pExp := primaryExp * phaseMult * decay
		sExp := secondaryExp * phaseMult * decay

		points := (2*participation + pExp*line.primaryPts + sExp*line.secondaryPts) * decay
		confidence := clamp((1-float64(h-1)*0.15)*factorProduct, 0.30, 1.0)
		variance := line.baseVariance * (1 + float64(h-1)*0.25) * (1 + ctx.FixtureDifficulty)

		out = append(out, models.HorizonForecast{
			Horizon:              h,
			ExpectedPoints:       round2(points),
			PrimaryStat:          line.primary,
			PrimaryStatProb:      round3(eventProb(pExp)),
			SecondaryStat:        line.secondary,
			SecondaryStatProb:    round3(eventProb(sExp)),
			ParticipationProb:    round3(participation),
			CaptaincySuitability: round1(clamp(points*confidence, 0, 10)),
			Variance:             round2(variance),
			Confidence:           round3(confidence),
		})
	}
	return out
}
