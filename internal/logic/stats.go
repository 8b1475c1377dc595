package logic

import (
	"context"

	"github.com/uclcentral/prediction-api/internal/engine"
	"github.com/uclcentral/prediction-api/internal/models"
)

type statsService struct {
	ratings *engine.RatingBook
	history *engine.HistoryTracker
}

func NewStatsService(ratings *engine.RatingBook, history *engine.HistoryTracker) StatsService {
	return &statsService{ratings: ratings, history: history}
}

func (s *statsService) Ratings(ctx context.Context) []models.TeamRating {
	return s.ratings.Snapshot()
}

func (s *statsService) TeamForm(ctx context.Context, team string) models.TeamForm {
	return s.history.Form(team)
}

func (s *statsService) HeadToHead(ctx context.Context, home, away string) models.HeadToHead {
	return s.history.HeadToHead(home, away)
}
