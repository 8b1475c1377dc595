// Package worker implements the buffered audit pool for served predictions.
// It decouples request handling from ClickHouse writes: handlers enqueue a
// record and workers batch-insert on size or interval, flushing on shutdown.
package worker

import (
	"context"
	"sync"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/uclcentral/prediction-api/internal/models"
)

var (
	recordsEnqueued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "uclpredict_audit_records_enqueued_total",
		Help: "Total prediction records accepted by the audit pool",
	})

	recordsWritten = promauto.NewCounter(prometheus.CounterOpts{
		Name: "uclpredict_audit_records_written_total",
		Help: "Total prediction records written to ClickHouse",
	})

	recordsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "uclpredict_audit_records_failed_total",
		Help: "Total prediction records that failed to persist",
	})

	queueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "uclpredict_audit_queue_depth",
		Help: "Current depth of the audit queue",
	})

	batchInsertDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "uclpredict_audit_batch_insert_duration_seconds",
		Help:    "Duration of audit batch inserts to ClickHouse",
		Buckets: prometheus.DefBuckets,
	})
)

// PoolConfig configures the audit pool.
type PoolConfig struct {
	WorkerCount   int
	QueueSize     int
	BatchSize     int
	FlushInterval time.Duration
	ClickHouse    driver.Conn
	Redis         *redis.Client
	Logger        *zap.Logger
}

// Pool manages the audit workers.
type Pool struct {
	config   PoolConfig
	jobQueue chan *models.PredictionRecord
	wg       sync.WaitGroup
	ctx      context.Context
	cancel   context.CancelFunc
	logger   *zap.SugaredLogger
}

// NewPool creates an audit pool with sane defaults for unset fields.
func NewPool(cfg PoolConfig) *Pool {
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 2
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 5000
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 200
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = time.Second
	}
	return &Pool{
		config:   cfg,
		jobQueue: make(chan *models.PredictionRecord, cfg.QueueSize),
		logger:   cfg.Logger.Sugar(),
	}
}

// Start launches the worker goroutines.
func (p *Pool) Start(ctx context.Context) {
	p.ctx, p.cancel = context.WithCancel(ctx)

	for i := 0; i < p.config.WorkerCount; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
	go p.reportQueueDepth()

	p.logger.Infow("Audit pool started",
		"workers", p.config.WorkerCount,
		"queueSize", p.config.QueueSize,
		"batchSize", p.config.BatchSize,
	)
}

// Stop drains the queue and flushes remaining batches.
func (p *Pool) Stop() {
	p.logger.Info("Stopping audit pool...")
	close(p.jobQueue)
	p.wg.Wait()
	p.cancel()
	p.logger.Info("Audit pool stopped")
}

// Enqueue adds a record to the queue. Records are dropped, not queued
// unboundedly, when the pool is saturated or stopped: the audit trail is
// best-effort and must never block a prediction response.
func (p *Pool) Enqueue(rec *models.PredictionRecord) bool {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Warnw("Failed to enqueue record (pool stopped)", "error", r)
		}
	}()

	select {
	case p.jobQueue <- rec:
		recordsEnqueued.Inc()
		return true
	default:
		recordsFailed.Inc()
		return false
	}
}

// QueueDepth returns the current queue size.
func (p *Pool) QueueDepth() int {
	return len(p.jobQueue)
}

func (p *Pool) reportQueueDepth() {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			queueDepth.Set(float64(len(p.jobQueue)))
		case <-p.ctx.Done():
			return
		}
	}
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()

	batch := make([]*models.PredictionRecord, 0, p.config.BatchSize)
	ticker := time.NewTicker(p.config.FlushInterval)
	defer ticker.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}
		start := time.Now()
		if err := p.writeBatch(batch); err != nil {
			p.logger.Errorw("Audit batch failed", "worker", id, "batchSize", len(batch), "error", err)
			recordsFailed.Add(float64(len(batch)))
		} else {
			recordsWritten.Add(float64(len(batch)))
		}
		batchInsertDuration.Observe(time.Since(start).Seconds())
		batch = batch[:0]
	}

	// Exit on queue close only; Stop closes the queue, so every accepted
	// record drains before shutdown completes.
	for {
		select {
		case rec, ok := <-p.jobQueue:
			if !ok {
				flush()
				return
			}
			batch = append(batch, rec)
			if len(batch) >= p.config.BatchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		}
	}
}

func (p *Pool) writeBatch(batch []*models.PredictionRecord) error {
	ctx := context.Background()

	chBatch, err := p.config.ClickHouse.PrepareBatch(ctx, `
		INSERT INTO ucl_predict.prediction_log (
			id, served_at, home_team, away_team, stage, venue,
			home_win_prob, draw_prob, away_win_prob, home_xg, away_xg,
			confidence, source, cache_hit
		)
	`)
	if err != nil {
		return err
	}

	for _, rec := range batch {
		if err := chBatch.Append(
			rec.ID,
			rec.ServedAt,
			rec.HomeTeam,
			rec.AwayTeam,
			rec.Stage,
			rec.Venue,
			rec.HomeWinProb,
			rec.DrawProb,
			rec.AwayWinProb,
			rec.HomeXG,
			rec.AwayXG,
			rec.Confidence,
			rec.Source,
			rec.CacheHit,
		); err != nil {
			p.logger.Warnw("Failed to append record to batch", "error", err, "id", rec.ID)
			continue
		}
	}

	// Redis counters are side effects; batch copied because the slice is
	// reused by the worker loop.
	batchCopy := make([]*models.PredictionRecord, len(batch))
	copy(batchCopy, batch)
	go p.writeSideEffects(ctx, batchCopy)

	return chBatch.Send()
}

// writeSideEffects bumps per-team served counters and stores the latest
// record per fixture in Redis.
func (p *Pool) writeSideEffects(ctx context.Context, batch []*models.PredictionRecord) {
	if p.config.Redis == nil {
		return
	}
	pipe := p.config.Redis.Pipeline()
	for _, rec := range batch {
		pipe.Incr(ctx, "team:"+rec.HomeTeam+":predictions_served")
		pipe.Incr(ctx, "team:"+rec.AwayTeam+":predictions_served")
		pipe.HSet(ctx, "last_prediction",
			rec.HomeTeam+"|"+rec.AwayTeam, rec.ServedAt.Format(time.RFC3339))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		p.logger.Warnw("Audit side effects failed", "error", err)
	}
}
