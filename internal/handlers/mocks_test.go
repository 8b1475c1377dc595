package handlers

import (
	"context"

	"github.com/uclcentral/prediction-api/internal/models"
)

// MockPredictionService
type MockPredictionService struct {
	GetMatchPredictionFunc     func(ctx context.Context, home, away, venue, stage string) (*models.MatchPrediction, error)
	ExplainMatchPredictionFunc func(ctx context.Context, home, away, venue, stage string) (*models.MatchExplanation, error)
}

func (m *MockPredictionService) GetMatchPrediction(ctx context.Context, home, away, venue, stage string) (*models.MatchPrediction, error) {
	if m.GetMatchPredictionFunc != nil {
		return m.GetMatchPredictionFunc(ctx, home, away, venue, stage)
	}
	return &models.MatchPrediction{HomeTeam: home, AwayTeam: away, Source: models.SourceFallback}, nil
}

func (m *MockPredictionService) ExplainMatchPrediction(ctx context.Context, home, away, venue, stage string) (*models.MatchExplanation, error) {
	if m.ExplainMatchPredictionFunc != nil {
		return m.ExplainMatchPredictionFunc(ctx, home, away, venue, stage)
	}
	return &models.MatchExplanation{}, nil
}

// MockForecastService
type MockForecastService struct {
	GetPlayerForecastFunc func(ctx context.Context, player string, horizons int) (*models.PlayerForecast, error)
}

func (m *MockForecastService) GetPlayerForecast(ctx context.Context, player string, horizons int) (*models.PlayerForecast, error) {
	if m.GetPlayerForecastFunc != nil {
		return m.GetPlayerForecastFunc(ctx, player, horizons)
	}
	return &models.PlayerForecast{Player: player}, nil
}

// MockResultsService
type MockResultsService struct {
	MarkFinishedFunc func(ctx context.Context, req *models.ResultIngestRequest) (*models.Match, bool, error)
}

func (m *MockResultsService) MarkFinished(ctx context.Context, req *models.ResultIngestRequest) (*models.Match, bool, error) {
	if m.MarkFinishedFunc != nil {
		return m.MarkFinishedFunc(ctx, req)
	}
	return &models.Match{ID: req.MatchID, Status: models.StatusFinished}, true, nil
}

func (m *MockResultsService) ReplayFinished(ctx context.Context) (int, error) { return 0, nil }

// MockStatsService
type MockStatsService struct {
	RatingsFunc func(ctx context.Context) []models.TeamRating
}

func (m *MockStatsService) Ratings(ctx context.Context) []models.TeamRating {
	if m.RatingsFunc != nil {
		return m.RatingsFunc(ctx)
	}
	return nil
}

func (m *MockStatsService) TeamForm(ctx context.Context, team string) models.TeamForm {
	return models.TeamForm{Team: team}
}

func (m *MockStatsService) HeadToHead(ctx context.Context, home, away string) models.HeadToHead {
	return models.HeadToHead{HomeTeam: home, AwayTeam: away}
}

// MockAuditQueue
type MockAuditQueue struct {
	Depth int
}

func (m *MockAuditQueue) QueueDepth() int { return m.Depth }
