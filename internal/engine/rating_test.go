package engine

import (
	"math"
	"testing"
	"time"
)

func TestExpectedScore(t *testing.T) {
	tests := []struct {
		name string
		ra   float64
		rb   float64
		want float64
	}{
		{"Equal", 1500, 1500, 0.5},
		{"Plus400", 1900, 1500, 10.0 / 11.0},
		{"Minus400", 1500, 1900, 1.0 / 11.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExpectedScore(tt.ra, tt.rb)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("ExpectedScore(%v, %v) = %v, want %v", tt.ra, tt.rb, got, tt.want)
			}
		})
	}
}

func TestExpectedScoreZeroSum(t *testing.T) {
	pairs := [][2]float64{{1500, 1500}, {1920, 1700}, {1400, 2100}, {1850.5, 1633.2}}
	for _, p := range pairs {
		sum := ExpectedScore(p[0], p[1]) + ExpectedScore(p[1], p[0])
		if math.Abs(sum-1) > 1e-9 {
			t.Errorf("expectations for %v do not sum to 1: %v", p, sum)
		}
	}
}

func TestRecordResultConservesRating(t *testing.T) {
	b := NewRatingBook(0)
	now := time.Now()

	b.RecordResult("Real Madrid", "Liverpool", 2, 1, now)

	home := b.Rating("Real Madrid")
	away := b.Rating("Liverpool")
	if home <= InitialRating {
		t.Errorf("winner rating = %v, want > %v", home, float64(InitialRating))
	}
	if away >= InitialRating {
		t.Errorf("loser rating = %v, want < %v", away, float64(InitialRating))
	}
	// Winner's gain mirrors the loser's loss when K is shared.
	if math.Abs((home-InitialRating)+(away-InitialRating)) > 1e-9 {
		t.Errorf("rating not conserved: home %v away %v", home, away)
	}
}

func TestDrawRewardsUnderdog(t *testing.T) {
	b := NewRatingBook(0)
	now := time.Now()

	// Build a gap first.
	b.RecordResult("Bayern Munich", "Inter", 3, 0, now.Add(-48*time.Hour))
	strong := b.Rating("Bayern Munich")
	weak := b.Rating("Inter")

	b.RecordResult("Bayern Munich", "Inter", 1, 1, now)

	if got := b.Rating("Bayern Munich"); got >= strong {
		t.Errorf("favorite rating after draw = %v, want < %v", got, strong)
	}
	if got := b.Rating("Inter"); got <= weak {
		t.Errorf("underdog rating after draw = %v, want > %v", got, weak)
	}
}

func TestRatingAt(t *testing.T) {
	b := NewRatingBook(0)
	base := time.Date(2025, 9, 16, 21, 0, 0, 0, time.UTC)

	b.RecordResult("Arsenal", "PSG", 2, 0, base)
	afterFirst := b.Rating("Arsenal")
	b.RecordResult("Arsenal", "PSG", 0, 1, base.Add(14*24*time.Hour))

	tests := []struct {
		name string
		at   time.Time
		want float64
	}{
		{"Before any result", base.Add(-time.Hour), InitialRating},
		{"At first result", base, InitialRating}, // strictly before: own match excluded
		{"Between results", base.Add(24 * time.Hour), afterFirst},
		{"After everything", base.Add(30 * 24 * time.Hour), b.Rating("Arsenal")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.RatingAt("Arsenal", tt.at); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("RatingAt = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRatingAtOutOfOrderReplay(t *testing.T) {
	b := NewRatingBook(0)
	base := time.Date(2025, 10, 1, 21, 0, 0, 0, time.UTC)

	// Later match lands first, as happens when results arrive out of order.
	b.RecordResult("Barcelona", "Inter", 1, 0, base.Add(7*24*time.Hour))
	b.RecordResult("Barcelona", "Chelsea", 2, 2, base)

	// History must still answer point-in-time queries in timestamp order.
	if got := b.RatingAt("Barcelona", base.Add(time.Hour)); got == InitialRating {
		t.Errorf("RatingAt after first chronological match = initial, want updated")
	}
}

func TestSnapshotSorted(t *testing.T) {
	b := NewRatingBook(0)
	now := time.Now()
	b.RecordResult("Real Madrid", "Celtic", 3, 0, now)
	b.RecordResult("Manchester City", "Ajax", 2, 0, now)

	snap := b.Snapshot()
	if len(snap) != 4 {
		t.Fatalf("snapshot len = %d, want 4", len(snap))
	}
	for i := 1; i < len(snap); i++ {
		if snap[i].Rating > snap[i-1].Rating {
			t.Errorf("snapshot not sorted descending at %d: %v after %v", i, snap[i], snap[i-1])
		}
	}
}

func TestUnseenTeamDefaults(t *testing.T) {
	b := NewRatingBook(0)
	if got := b.Rating("Qarabag"); got != InitialRating {
		t.Errorf("unseen team rating = %v, want %v", got, float64(InitialRating))
	}
}
