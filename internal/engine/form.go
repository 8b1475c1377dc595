package engine

import (
	"hash/fnv"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/uclcentral/prediction-api/internal/models"
)

// FormWindowSize bounds the rolling form window per team.
const FormWindowSize = 5

// FormEntry is one finished match from a single team's perspective.
type FormEntry struct {
	PlayedAt     time.Time
	GoalsFor     int
	GoalsAgainst int
	XGFor        float64
	XGAgainst    float64
}

// Points returns the league points earned for this entry.
func (e FormEntry) Points() int {
	switch {
	case e.GoalsFor > e.GoalsAgainst:
		return 3
	case e.GoalsFor == e.GoalsAgainst:
		return 1
	default:
		return 0
	}
}

type meeting struct {
	playedAt time.Time
	// Goals from the perspective of the pair's lexicographically first team.
	firstGoals  int
	secondGoals int
}

type historyShard struct {
	mu       sync.RWMutex
	windows  map[string][]FormEntry
	meetings map[string][]meeting
}

// HistoryTracker keeps the rolling form window per team and the full
// head-to-head meeting list per unordered pair. Meetings retain their
// timestamps so aggregates can exclude anything at or after a cutoff.
type HistoryTracker struct {
	shards [ratingShards]*historyShard
}

func NewHistoryTracker() *HistoryTracker {
	t := &HistoryTracker{}
	for i := range t.shards {
		t.shards[i] = &historyShard{
			windows:  make(map[string][]FormEntry),
			meetings: make(map[string][]meeting),
		}
	}
	return t
}

func (t *HistoryTracker) shard(key string) *historyShard {
	h := fnv.New32a()
	h.Write([]byte(key))
	return t.shards[h.Sum32()%ratingShards]
}

// pairKey is order-independent so tally(a,b) and tally(b,a) read the same
// bucket.
func pairKey(a, b string) (key string, aFirst bool) {
	if strings.Compare(a, b) <= 0 {
		return a + "|" + b, true
	}
	return b + "|" + a, false
}

// RecordResult pushes a finished match into both teams' windows and the
// pair's meeting list. Oldest window entry is evicted FIFO past
// FormWindowSize.
func (t *HistoryTracker) RecordResult(home, away string, homeGoals, awayGoals int, homeXG, awayXG float64, playedAt time.Time) {
	t.push(home, FormEntry{PlayedAt: playedAt, GoalsFor: homeGoals, GoalsAgainst: awayGoals, XGFor: homeXG, XGAgainst: awayXG})
	t.push(away, FormEntry{PlayedAt: playedAt, GoalsFor: awayGoals, GoalsAgainst: homeGoals, XGFor: awayXG, XGAgainst: homeXG})

	key, homeFirst := pairKey(home, away)
	m := meeting{playedAt: playedAt, firstGoals: homeGoals, secondGoals: awayGoals}
	if !homeFirst {
		m.firstGoals, m.secondGoals = awayGoals, homeGoals
	}
	s := t.shard(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.meetings[key]
	i := sort.Search(len(list), func(i int) bool { return list[i].playedAt.After(playedAt) })
	list = append(list, meeting{})
	copy(list[i+1:], list[i:])
	list[i] = m
	s.meetings[key] = list
}

func (t *HistoryTracker) push(team string, e FormEntry) {
	s := t.shard(team)
	s.mu.Lock()
	defer s.mu.Unlock()
	w := s.windows[team]
	i := sort.Search(len(w), func(i int) bool { return w[i].PlayedAt.After(e.PlayedAt) })
	w = append(w, FormEntry{})
	copy(w[i+1:], w[i:])
	w[i] = e
	if len(w) > FormWindowSize {
		w = w[len(w)-FormWindowSize:]
	}
	s.windows[team] = w
}

// Form returns the rolling aggregates over the whole window. A team with no
// history gets zeros, never an error.
func (t *HistoryTracker) Form(team string) models.TeamForm {
	return t.FormBefore(team, time.Time{})
}

// FormBefore restricts the aggregates to entries strictly before cutoff.
// A zero cutoff means no restriction.
func (t *HistoryTracker) FormBefore(team string, cutoff time.Time) models.TeamForm {
	s := t.shard(team)
	s.mu.RLock()
	defer s.mu.RUnlock()

	form := models.TeamForm{Team: team}
	var points int
	for _, e := range s.windows[team] {
		if !cutoff.IsZero() && !e.PlayedAt.Before(cutoff) {
			continue
		}
		form.MatchesCounted++
		points += e.Points()
		form.GoalsPerGame += float64(e.GoalsFor)
		form.GoalsAgainstPerGame += float64(e.GoalsAgainst)
		form.XGPerGame += e.XGFor
		form.XGAgainstPerGame += e.XGAgainst
	}
	if form.MatchesCounted == 0 {
		return form
	}
	n := float64(form.MatchesCounted)
	form.PointsPerGame = float64(points) / n
	form.GoalsPerGame /= n
	form.GoalsAgainstPerGame /= n
	form.XGPerGame /= n
	form.XGAgainstPerGame /= n
	return form
}

// WindowTotals sums goals and xG over the window entries strictly before
// cutoff, matching the last-5 totals the feature vector carries.
func (t *HistoryTracker) WindowTotals(team string, cutoff time.Time) (goals int, xg float64) {
	s := t.shard(team)
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.windows[team] {
		if !cutoff.IsZero() && !e.PlayedAt.Before(cutoff) {
			continue
		}
		goals += e.GoalsFor
		xg += e.XGFor
	}
	return goals, xg
}

// HeadToHead returns the full historical tally between two teams from the
// first argument's perspective.
func (t *HistoryTracker) HeadToHead(a, b string) models.HeadToHead {
	return t.HeadToHeadBefore(a, b, time.Time{})
}

// HeadToHeadBefore excludes meetings at or after cutoff, so the match being
// featurized never counts itself.
func (t *HistoryTracker) HeadToHeadBefore(a, b string, cutoff time.Time) models.HeadToHead {
	key, aFirst := pairKey(a, b)
	s := t.shard(key)
	s.mu.RLock()
	defer s.mu.RUnlock()

	h2h := models.HeadToHead{HomeTeam: a, AwayTeam: b}
	for _, m := range s.meetings[key] {
		if !cutoff.IsZero() && !m.playedAt.Before(cutoff) {
			continue
		}
		aGoals, bGoals := m.firstGoals, m.secondGoals
		if !aFirst {
			aGoals, bGoals = bGoals, aGoals
		}
		switch {
		case aGoals > bGoals:
			h2h.HomeWins++
		case aGoals < bGoals:
			h2h.AwayWins++
		default:
			h2h.Draws++
		}
	}
	return h2h
}
