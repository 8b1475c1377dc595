// Package engine implements the prediction core: Elo-style team ratings,
// rolling form and head-to-head history, feature assembly, the built-in
// statistical model, the external model bridge, and the tournament forecast
// layer. All state is in-process; persistence is the caller's concern.
package engine

import (
	"hash/fnv"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/uclcentral/prediction-api/internal/models"
)

const (
	// InitialRating is assigned lazily to any team on first reference.
	InitialRating = 1500

	// DefaultKFactor controls rating volatility after each result.
	DefaultKFactor = 24

	ratingShards = 16
)

type ratingPoint struct {
	at     time.Time
	rating float64
}

type ratingShard struct {
	mu      sync.RWMutex
	current map[string]float64
	history map[string][]ratingPoint
}

// RatingBook tracks one Elo rating per team. Shards are keyed by team name
// so concurrent reads during prediction never contend with writes for
// unrelated teams.
type RatingBook struct {
	k      float64
	shards [ratingShards]*ratingShard
}

// NewRatingBook creates an empty book. k <= 0 selects DefaultKFactor.
func NewRatingBook(k float64) *RatingBook {
	if k <= 0 {
		k = DefaultKFactor
	}
	b := &RatingBook{k: k}
	for i := range b.shards {
		b.shards[i] = &ratingShard{
			current: make(map[string]float64),
			history: make(map[string][]ratingPoint),
		}
	}
	return b
}

func (b *RatingBook) shard(team string) *ratingShard {
	h := fnv.New32a()
	h.Write([]byte(team))
	return b.shards[h.Sum32()%ratingShards]
}

// Rating returns the current rating, or InitialRating for an unseen team.
func (b *RatingBook) Rating(team string) float64 {
	s := b.shard(team)
	s.mu.RLock()
	defer s.mu.RUnlock()
	if r, ok := s.current[team]; ok {
		return r
	}
	return InitialRating
}

// RatingAt returns the rating as of strictly before t. Results applied at or
// after t do not count, so features for a fixture never see that fixture's
// own outcome.
func (b *RatingBook) RatingAt(team string, t time.Time) float64 {
	s := b.shard(team)
	s.mu.RLock()
	defer s.mu.RUnlock()
	hist := s.history[team]
	// First point at or after t; the answer precedes it.
	i := sort.Search(len(hist), func(i int) bool { return !hist[i].at.Before(t) })
	if i == 0 {
		return InitialRating
	}
	return hist[i-1].rating
}

// ExpectedScore is the logistic win expectation for a side rated ra against
// rb. ExpectedScore(ra, rb) + ExpectedScore(rb, ra) == 1 for all inputs.
func ExpectedScore(ra, rb float64) float64 {
	return 1 / (1 + math.Pow(10, (rb-ra)/400))
}

// RecordResult applies a finished match to both teams. Both updates use the
// pre-update ratings, never a half-applied value. The caller guarantees each
// finished match is applied exactly once; there is no dedup here.
func (b *RatingBook) RecordResult(home, away string, homeGoals, awayGoals int, playedAt time.Time) {
	oldHome := b.Rating(home)
	oldAway := b.Rating(away)

	expHome := ExpectedScore(oldHome, oldAway)
	expAway := 1 - expHome

	var actHome, actAway float64
	switch {
	case homeGoals > awayGoals:
		actHome, actAway = 1, 0
	case homeGoals < awayGoals:
		actHome, actAway = 0, 1
	default:
		actHome, actAway = 0.5, 0.5
	}

	b.set(home, oldHome+b.k*(actHome-expHome), playedAt)
	b.set(away, oldAway+b.k*(actAway-expAway), playedAt)
}

func (b *RatingBook) set(team string, rating float64, at time.Time) {
	s := b.shard(team)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current[team] = rating
	hist := s.history[team]
	// Out-of-order replays still land sorted so RatingAt stays correct.
	i := sort.Search(len(hist), func(i int) bool { return hist[i].at.After(at) })
	hist = append(hist, ratingPoint{})
	copy(hist[i+1:], hist[i:])
	hist[i] = ratingPoint{at: at, rating: rating}
	s.history[team] = hist
}

// Snapshot returns every tracked team's current rating, sorted descending.
func (b *RatingBook) Snapshot() []models.TeamRating {
	var out []models.TeamRating
	for _, s := range b.shards {
		s.mu.RLock()
		for team, r := range s.current {
			out = append(out, models.TeamRating{Team: team, Rating: r})
		}
		s.mu.RUnlock()
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Rating != out[j].Rating {
			return out[i].Rating > out[j].Rating
		}
		return out[i].Team < out[j].Team
	})
	return out
}
