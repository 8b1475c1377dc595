package engine

import (
	"math"
	"testing"
	"time"
)

func TestFormWindowEviction(t *testing.T) {
	tr := NewHistoryTracker()
	base := time.Date(2025, 9, 16, 21, 0, 0, 0, time.UTC)

	// Six wins; only the last five may count.
	for i := 0; i < 6; i++ {
		tr.RecordResult("Liverpool", "Opponent", 2, 0, 1.8, 0.6, base.Add(time.Duration(i)*24*time.Hour))
	}

	form := tr.Form("Liverpool")
	if form.MatchesCounted != FormWindowSize {
		t.Errorf("MatchesCounted = %d, want %d", form.MatchesCounted, FormWindowSize)
	}
	if form.PointsPerGame != 3 {
		t.Errorf("PointsPerGame = %v, want 3", form.PointsPerGame)
	}

	goals, xg := tr.WindowTotals("Liverpool", time.Time{})
	if goals != 10 {
		t.Errorf("window goals = %d, want 10", goals)
	}
	if math.Abs(xg-9.0) > 1e-9 {
		t.Errorf("window xG = %v, want 9.0", xg)
	}
}

func TestFormColdStart(t *testing.T) {
	tr := NewHistoryTracker()
	form := tr.Form("Qarabag")
	if form.MatchesCounted != 0 || form.PointsPerGame != 0 || form.GoalsPerGame != 0 {
		t.Errorf("cold-start form not zeroed: %+v", form)
	}
}

func TestFormAggregates(t *testing.T) {
	tr := NewHistoryTracker()
	base := time.Date(2025, 9, 16, 21, 0, 0, 0, time.UTC)

	// W 2-0, D 1-1, L 0-3
	tr.RecordResult("Arsenal", "PSG", 2, 0, 2.1, 0.4, base)
	tr.RecordResult("Arsenal", "Inter", 1, 1, 1.2, 1.1, base.Add(24*time.Hour))
	tr.RecordResult("Arsenal", "Bayern Munich", 0, 3, 0.7, 2.9, base.Add(48*time.Hour))

	form := tr.Form("Arsenal")
	if form.MatchesCounted != 3 {
		t.Fatalf("MatchesCounted = %d, want 3", form.MatchesCounted)
	}
	if math.Abs(form.PointsPerGame-4.0/3.0) > 1e-9 {
		t.Errorf("PointsPerGame = %v, want %v", form.PointsPerGame, 4.0/3.0)
	}
	if math.Abs(form.GoalsPerGame-1.0) > 1e-9 {
		t.Errorf("GoalsPerGame = %v, want 1", form.GoalsPerGame)
	}
	if math.Abs(form.GoalsAgainstPerGame-4.0/3.0) > 1e-9 {
		t.Errorf("GoalsAgainstPerGame = %v, want %v", form.GoalsAgainstPerGame, 4.0/3.0)
	}
}

func TestFormBeforeExcludesCutoff(t *testing.T) {
	tr := NewHistoryTracker()
	base := time.Date(2025, 9, 16, 21, 0, 0, 0, time.UTC)

	tr.RecordResult("Barcelona", "Inter", 3, 0, 2.5, 0.5, base)
	tr.RecordResult("Barcelona", "Ajax", 2, 1, 1.9, 1.0, base.Add(7*24*time.Hour))

	// Cutoff at the second match's kickoff: that match must not count.
	form := tr.FormBefore("Barcelona", base.Add(7*24*time.Hour))
	if form.MatchesCounted != 1 {
		t.Errorf("MatchesCounted = %d, want 1", form.MatchesCounted)
	}
	if form.PointsPerGame != 3 {
		t.Errorf("PointsPerGame = %v, want 3", form.PointsPerGame)
	}
}

func TestHeadToHeadSymmetry(t *testing.T) {
	tr := NewHistoryTracker()
	base := time.Date(2025, 9, 16, 21, 0, 0, 0, time.UTC)

	tr.RecordResult("Real Madrid", "Liverpool", 2, 1, 1.8, 1.2, base)
	tr.RecordResult("Liverpool", "Real Madrid", 1, 1, 1.4, 1.3, base.Add(90*24*time.Hour))
	tr.RecordResult("Real Madrid", "Liverpool", 0, 2, 0.9, 2.0, base.Add(180*24*time.Hour))

	ab := tr.HeadToHead("Real Madrid", "Liverpool")
	ba := tr.HeadToHead("Liverpool", "Real Madrid")

	if ab.HomeWins != 1 || ab.Draws != 1 || ab.AwayWins != 1 {
		t.Errorf("h2h from Real Madrid = %+v, want 1/1/1", ab)
	}
	if ab.HomeWins != ba.AwayWins || ab.AwayWins != ba.HomeWins || ab.Draws != ba.Draws {
		t.Errorf("h2h not symmetric: %+v vs %+v", ab, ba)
	}
}

func TestHeadToHeadBeforeCutoff(t *testing.T) {
	tr := NewHistoryTracker()
	base := time.Date(2025, 9, 16, 21, 0, 0, 0, time.UTC)

	tr.RecordResult("Arsenal", "PSG", 2, 0, 2.1, 0.4, base)
	tr.RecordResult("PSG", "Arsenal", 3, 1, 2.6, 1.0, base.Add(90*24*time.Hour))

	h2h := tr.HeadToHeadBefore("Arsenal", "PSG", base.Add(90*24*time.Hour))
	if h2h.HomeWins != 1 || h2h.AwayWins != 0 || h2h.Draws != 0 {
		t.Errorf("h2h before cutoff = %+v, want only the first meeting", h2h)
	}
}

func TestPoints(t *testing.T) {
	tests := []struct {
		name  string
		entry FormEntry
		want  int
	}{
		{"Win", FormEntry{GoalsFor: 2, GoalsAgainst: 0}, 3},
		{"Draw", FormEntry{GoalsFor: 1, GoalsAgainst: 1}, 1},
		{"Loss", FormEntry{GoalsFor: 0, GoalsAgainst: 1}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.entry.Points(); got != tt.want {
				t.Errorf("Points() = %d, want %d", got, tt.want)
			}
		})
	}
}
