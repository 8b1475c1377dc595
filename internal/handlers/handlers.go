package handlers

import (
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/uclcentral/prediction-api/internal/logic"
)

// MaxBodySize limits the size of request bodies to 1MB
const MaxBodySize = 1048576

// AuditQueue exposes the audit pool's depth for readiness reporting.
type AuditQueue interface {
	QueueDepth() int
}

type Config struct {
	AuditPool  AuditQueue
	Postgres   *pgxpool.Pool
	ClickHouse driver.Conn
	Redis      *redis.Client
	Logger     *zap.Logger
	// Services
	Prediction logic.PredictionService
	Forecast   logic.ForecastService
	Results    logic.ResultsService
	Stats      logic.StatsService
}

type Handler struct {
	pool       AuditQueue
	pg         *pgxpool.Pool
	ch         driver.Conn
	redis      *redis.Client
	logger     *zap.SugaredLogger
	validator  *validator.Validate
	prediction logic.PredictionService
	forecast   logic.ForecastService
	results    logic.ResultsService
	stats      logic.StatsService
}

func New(cfg Config) *Handler {
	return &Handler{
		pool:       cfg.AuditPool,
		pg:         cfg.Postgres,
		ch:         cfg.ClickHouse,
		redis:      cfg.Redis,
		logger:     cfg.Logger.Sugar(),
		validator:  validator.New(),
		prediction: cfg.Prediction,
		forecast:   cfg.Forecast,
		results:    cfg.Results,
		stats:      cfg.Stats,
	}
}
