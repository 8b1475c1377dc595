package engine

import (
	"math"
	"testing"

	"github.com/uclcentral/prediction-api/internal/models"
)

func TestDeriveContext(t *testing.T) {
	f := NewForecaster()

	tests := []struct {
		name         string
		matchday     int
		form         models.TeamForm
		teamRating   float64
		oppRating    float64
		wantPhase    string
		wantRotation float64
	}{
		{
			name:         "Early group stage",
			matchday:     2,
			form:         models.TeamForm{PointsPerGame: 1.5, MatchesCounted: 1},
			teamRating:   1500,
			oppRating:    1500,
			wantPhase:    "group",
			wantRotation: 0.15,
		},
		{
			name:         "Dead rubber invites rotation",
			matchday:     6,
			form:         models.TeamForm{PointsPerGame: 3, MatchesCounted: 5},
			teamRating:   1900,
			oppRating:    1500,
			wantPhase:    "group",
			wantRotation: 0.55,
		},
		{
			name:         "Knockout locks the lineup",
			matchday:     9,
			form:         models.TeamForm{PointsPerGame: 2, MatchesCounted: 5},
			teamRating:   1800,
			oppRating:    1850,
			wantPhase:    "quarter",
			wantRotation: 0.10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := f.DeriveContext(tt.matchday, tt.form, tt.teamRating, tt.oppRating)
			if ctx.Phase != tt.wantPhase {
				t.Errorf("Phase = %q, want %q", ctx.Phase, tt.wantPhase)
			}
			if ctx.RotationRisk != tt.wantRotation {
				t.Errorf("RotationRisk = %v, want %v", ctx.RotationRisk, tt.wantRotation)
			}
			if ctx.QualificationLikelihood < 0.05 || ctx.QualificationLikelihood > 1.0 {
				t.Errorf("QualificationLikelihood out of range: %v", ctx.QualificationLikelihood)
			}
			if ctx.FixtureDifficulty < 0.10 || ctx.FixtureDifficulty > 0.90 {
				t.Errorf("FixtureDifficulty out of range: %v", ctx.FixtureDifficulty)
			}
		})
	}
}

func TestKnockoutQualificationSettled(t *testing.T) {
	f := NewForecaster()
	ctx := f.DeriveContext(9, models.TeamForm{}, 1500, 1500)
	if ctx.QualificationLikelihood != 1.0 {
		t.Errorf("knockout qualification = %v, want 1.0", ctx.QualificationLikelihood)
	}
}

func TestUncertaintyFactors(t *testing.T) {
	f := NewForecaster()

	tests := []struct {
		name string
		ctx  models.TournamentContext
		want []string
	}{
		{
			name: "Calm group fixture",
			ctx:  models.TournamentContext{Phase: "group", QualificationLikelihood: 0.9, RotationRisk: 0.15, FixtureDifficulty: 0.4},
			want: nil,
		},
		{
			name: "Qualification on a knife edge",
			ctx:  models.TournamentContext{Phase: "group", QualificationLikelihood: 0.5, RotationRisk: 0.15, FixtureDifficulty: 0.4},
			want: []string{"qualification_pressure"},
		},
		{
			name: "Rotation-heavy dead rubber",
			ctx:  models.TournamentContext{Phase: "group", QualificationLikelihood: 0.95, RotationRisk: 0.55, FixtureDifficulty: 0.3},
			want: []string{"rotation_risk"},
		},
		{
			name: "Hard knockout tie",
			ctx:  models.TournamentContext{Phase: "semi", QualificationLikelihood: 1.0, RotationRisk: 0.10, FixtureDifficulty: 0.7},
			want: []string{"knockout_pressure", "fixture_difficulty"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := f.UncertaintyFactors(tt.ctx)
			if len(got) != len(tt.want) {
				t.Fatalf("factors = %+v, want names %v", got, tt.want)
			}
			for i, uf := range got {
				if uf.Name != tt.want[i] {
					t.Errorf("factor[%d] = %q, want %q", i, uf.Name, tt.want[i])
				}
				if uf.Adjustment <= 0 || uf.Adjustment >= 1 {
					t.Errorf("factor %q adjustment %v outside (0, 1)", uf.Name, uf.Adjustment)
				}
			}
		})
	}
}

func TestForecastHorizons(t *testing.T) {
	f := NewForecaster()
	p := PlayerProfile{
		Name: "Erling Haaland", Team: "Manchester City", Position: PositionForward,
		Overall: 91, GoalsLast5: 4, AssistsLast5: 1, MinutesLast5: 440,
	}
	ctx := models.TournamentContext{
		Matchday: 13, Phase: "final", QualificationLikelihood: 1.0,
		RotationRisk: 0.10, FixtureDifficulty: 0.7,
	}

	out := f.Forecast(p, ctx, nil, 3)
	if len(out) != 3 {
		t.Fatalf("forecast count = %d, want 3", len(out))
	}

	for i := 1; i < len(out); i++ {
		if out[i].Confidence > out[i-1].Confidence {
			t.Errorf("confidence rises at horizon %d: %v > %v",
				out[i].Horizon, out[i].Confidence, out[i-1].Confidence)
		}
		if out[i].Variance < out[i-1].Variance {
			t.Errorf("variance falls at horizon %d: %v < %v",
				out[i].Horizon, out[i].Variance, out[i-1].Variance)
		}
	}

	for _, h := range out {
		if h.PrimaryStat != "goals" {
			t.Errorf("horizon %d primary stat = %q, want goals", h.Horizon, h.PrimaryStat)
		}
		if h.PrimaryStatProb < 0 || h.PrimaryStatProb > 1 {
			t.Errorf("horizon %d primary prob out of range: %v", h.Horizon, h.PrimaryStatProb)
		}
		if h.Confidence < 0.30 || h.Confidence > 1.0 {
			t.Errorf("horizon %d confidence out of range: %v", h.Horizon, h.Confidence)
		}
		if h.ParticipationProb < 0.20 || h.ParticipationProb > 0.99 {
			t.Errorf("horizon %d participation out of range: %v", h.Horizon, h.ParticipationProb)
		}
	}
}

func TestForecastHorizonsClamped(t *testing.T) {
	f := NewForecaster()
	p := PlayerProfile{Name: "Rodri", Position: PositionMidfielder, Overall: 89, MinutesLast5: 450}
	ctx := models.TournamentContext{Phase: "group", QualificationLikelihood: 0.9, RotationRisk: 0.15, FixtureDifficulty: 0.4}

	if got := f.Forecast(p, ctx, nil, 0); len(got) != 1 {
		t.Errorf("horizons=0 produced %d forecasts, want 1", len(got))
	}
	if got := f.Forecast(p, ctx, nil, 99); len(got) != MaxHorizon {
		t.Errorf("horizons=99 produced %d forecasts, want %d", len(got), MaxHorizon)
	}
}

func TestForecastModelOverrides(t *testing.T) {
	f := NewForecaster()
	p := PlayerProfile{Name: "Mohamed Salah", Position: PositionForward, Overall: 89, MinutesLast5: 450}
	ctx := models.TournamentContext{Phase: "group", QualificationLikelihood: 0.9, RotationRisk: 0.15, FixtureDifficulty: 0.4}

	base := f.Forecast(p, ctx, nil, 1)[0]
	boosted := f.Forecast(p, ctx, map[string]float64{"goals": 2.0}, 1)[0]

	if boosted.PrimaryStatProb <= base.PrimaryStatProb {
		t.Errorf("override did not raise goal probability: %v <= %v",
			boosted.PrimaryStatProb, base.PrimaryStatProb)
	}
	// phase=group, decay=1: pExp is exactly the override.
	want := round3(1 - math.Exp(-2.0))
	if boosted.PrimaryStatProb != want {
		t.Errorf("PrimaryStatProb = %v, want %v", boosted.PrimaryStatProb, want)
	}
}

func TestForecastDefensivePhaseShift(t *testing.T) {
	f := NewForecaster()
	fwd := PlayerProfile{Name: "F", Position: PositionForward, Overall: 85, MinutesLast5: 450}
	def := PlayerProfile{Name: "D", Position: PositionDefender, Overall: 85, MinutesLast5: 450}
	group := models.TournamentContext{Phase: "group", QualificationLikelihood: 0.9, RotationRisk: 0.15, FixtureDifficulty: 0.4}
	final := models.TournamentContext{Phase: "final", QualificationLikelihood: 1.0, RotationRisk: 0.10, FixtureDifficulty: 0.4}

	// Forwards lose expected output in the final, defenders gain it.
	if g, f2 := f.Forecast(fwd, group, nil, 1)[0], f.Forecast(fwd, final, nil, 1)[0]; f2.PrimaryStatProb >= g.PrimaryStatProb {
		t.Errorf("forward goal prob in final (%v) not below group (%v)", f2.PrimaryStatProb, g.PrimaryStatProb)
	}
	if g, f2 := f.Forecast(def, group, nil, 1)[0], f.Forecast(def, final, nil, 1)[0]; f2.PrimaryStatProb <= g.PrimaryStatProb {
		t.Errorf("defender tackle prob in final (%v) not above group (%v)", f2.PrimaryStatProb, g.PrimaryStatProb)
	}
}
