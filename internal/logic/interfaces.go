package logic

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"

	"github.com/uclcentral/prediction-api/internal/models"
)

// PgPool defines the interface for the PostgreSQL connection pool.
type PgPool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// RedisCache defines the slice of the Redis client the prediction cache
// needs.
type RedisCache interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// AuditQueue is the worker pool sink for served-prediction records.
type AuditQueue interface {
	Enqueue(rec *models.PredictionRecord) bool
}

// PredictionService serves match outcome predictions, degrading from the
// external model to the built-in statistical model.
type PredictionService interface {
	GetMatchPrediction(ctx context.Context, home, away, venue, stage string) (*models.MatchPrediction, error)
	ExplainMatchPrediction(ctx context.Context, home, away, venue, stage string) (*models.MatchExplanation, error)
}

// ForecastService serves multi-horizon player forecasts.
type ForecastService interface {
	GetPlayerForecast(ctx context.Context, player string, horizons int) (*models.PlayerForecast, error)
}

// ResultsService ingests finished results and replays history on startup.
type ResultsService interface {
	MarkFinished(ctx context.Context, req *models.ResultIngestRequest) (*models.Match, bool, error)
	ReplayFinished(ctx context.Context) (int, error)
}

// StatsService exposes the engine's rating and history state.
type StatsService interface {
	Ratings(ctx context.Context) []models.TeamRating
	TeamForm(ctx context.Context, team string) models.TeamForm
	HeadToHead(ctx context.Context, home, away string) models.HeadToHead
}
