package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	_ "github.com/uclcentral/prediction-api/docs"
	"github.com/uclcentral/prediction-api/internal/config"
	"github.com/uclcentral/prediction-api/internal/engine"
	"github.com/uclcentral/prediction-api/internal/handlers"
	"github.com/uclcentral/prediction-api/internal/logic"
	"github.com/uclcentral/prediction-api/internal/worker"
)

// @title UCL Prediction Engine API
// @version 1.0
// @description Match outcome predictions and player forecasts for the Champions League.
// @BasePath /api/v1
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	var logger *zap.Logger
	if cfg.Env == "development" {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Postgres: the contest log.
	pg, err := pgxpool.New(ctx, cfg.PostgresURL)
	if err != nil {
		sugar.Fatalw("Failed to connect to Postgres", "error", err)
	}
	defer pg.Close()

	// ClickHouse: the prediction audit log.
	chOpts, err := clickhouse.ParseDSN(cfg.ClickHouseURL)
	if err != nil {
		sugar.Fatalw("Invalid ClickHouse URL", "error", err)
	}
	ch, err := clickhouse.Open(chOpts)
	if err != nil {
		sugar.Fatalw("Failed to connect to ClickHouse", "error", err)
	}
	defer ch.Close()

	// Redis: prediction cache and served counters.
	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		sugar.Fatalw("Invalid Redis URL", "error", err)
	}
	rdb := redis.NewClient(redisOpts)
	defer rdb.Close()

	// Engine state.
	ratings := engine.NewRatingBook(cfg.EloKFactor)
	history := engine.NewHistoryTracker()
	assembler := engine.NewAssembler(ratings, history)
	fallback := engine.NewFallbackModel(nil)
	bridge := engine.NewBridge(cfg.MLServiceURL, cfg.MLTimeout, sugar)
	forecaster := engine.NewForecaster()

	// Audit pool.
	pool := worker.NewPool(worker.PoolConfig{
		WorkerCount:   cfg.WorkerCount,
		QueueSize:     cfg.QueueSize,
		BatchSize:     cfg.BatchSize,
		FlushInterval: cfg.FlushInterval,
		ClickHouse:    ch,
		Redis:         rdb,
		Logger:        logger,
	})
	pool.Start(ctx)

	// Services.
	results := logic.NewResultsService(pg, ratings, history, sugar)
	prediction := logic.NewPredictionService(assembler, fallback, bridge, rdb, pool, cfg.PredictionCacheTTL, sugar)
	forecast := logic.NewForecastService(pg, ratings, history, bridge, forecaster, sugar)
	stats := logic.NewStatsService(ratings, history)

	// Warm the engine from the contest log before serving.
	if count, err := results.ReplayFinished(ctx); err != nil {
		sugar.Fatalw("Failed to replay finished matches", "error", err, "applied", count)
	}

	h := handlers.New(handlers.Config{
		AuditPool:  pool,
		Postgres:   pg,
		ClickHouse: ch,
		Redis:      rdb,
		Logger:     logger,
		Prediction: prediction,
		Forecast:   forecast,
		Results:    results,
		Stats:      stats,
	})

	srv := &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.Port),
		Handler:      h.Routes(cfg.AllowedOrigins),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 35 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		sugar.Infow("Server listening", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			sugar.Fatalw("Server failed", "error", err)
		}
	}()

	<-ctx.Done()
	sugar.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		sugar.Errorw("Server shutdown failed", "error", err)
	}
	pool.Stop()
	sugar.Info("Shutdown complete")
}
