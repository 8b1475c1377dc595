package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/uclcentral/prediction-api/internal/models"
)

var (
	bridgeAvailable = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "uclpredict_bridge_available",
		Help: "1 when the external model service is considered available",
	})

	bridgeFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "uclpredict_bridge_failures_total",
		Help: "Total failed calls to the external model service",
	})

	bridgeProbes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "uclpredict_bridge_probes_total",
		Help: "Total health probes issued to the external model service",
	})
)

// reprobeDelays schedules the delayed re-probes after a failed startup
// probe. No busy polling: two timers and then the bridge waits for traffic.
var reprobeDelays = []time.Duration{2 * time.Second, 5 * time.Second}

// Bridge delegates predictions to the external model service and tracks its
// availability. It is a degraded-mode protocol, not a queue: no buffering,
// no retry on the prediction call itself, and a nil result always means
// "fall back to the statistical model".
type Bridge struct {
	baseURL   string
	client    *http.Client
	logger    *zap.SugaredLogger
	available atomic.Bool
}

// NewBridge constructs the bridge and fires a non-blocking health probe. An
// empty baseURL disables the bridge permanently (every Predict returns nil).
func NewBridge(baseURL string, timeout time.Duration, logger *zap.SugaredLogger) *Bridge {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	b := &Bridge{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
	bridgeAvailable.Set(0)

	if baseURL == "" {
		logger.Info("Model bridge disabled, statistical model only")
		return b
	}

	go func() {
		if b.probe(context.Background()) {
			return
		}
		for _, d := range reprobeDelays {
			time.AfterFunc(d, func() {
				if !b.available.Load() {
					b.probe(context.Background())
				}
			})
		}
	}()

	return b
}

// Available reports the current availability flag. It is the single source
// of truth; a probe completing mid-request does not retroactively change
// that request's outcome.
func (b *Bridge) Available() bool {
	return b.available.Load()
}

// probe checks the service's /health endpoint and updates the flag.
func (b *Bridge) probe(ctx context.Context) bool {
	bridgeProbes.Inc()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.baseURL+"/health", nil)
	if err != nil {
		b.setAvailable(false)
		return false
	}
	resp, err := b.client.Do(req)
	if err != nil {
		b.logger.Warnw("Model service health probe failed", "error", err)
		b.setAvailable(false)
		return false
	}
	defer resp.Body.Close()

	ok := resp.StatusCode == http.StatusOK
	if ok {
		var health models.ModelHealthResponse
		if err := json.NewDecoder(resp.Body).Decode(&health); err == nil {
			b.logger.Infow("Model service healthy", "status", health.Status, "version", health.Version)
		}
	}
	b.setAvailable(ok)
	return ok
}

func (b *Bridge) setAvailable(ok bool) {
	prev := b.available.Swap(ok)
	if ok {
		bridgeAvailable.Set(1)
	} else {
		bridgeAvailable.Set(0)
	}
	if prev != ok {
		b.logger.Infow("Model bridge state changed", "available", ok)
	}
}

// post issues one synchronous call. Any failure flips the bridge to
// UNAVAILABLE.
func (b *Bridge) post(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("model service returned %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// ready gates a call on the availability flag, spending one fresh probe if
// the bridge is currently down.
func (b *Bridge) ready(ctx context.Context) bool {
	if b.baseURL == "" {
		return false
	}
	if b.available.Load() {
		return true
	}
	return b.probe(ctx)
}

// Predict asks the model service for a match prediction. A nil result means
// the service is unavailable or the call failed; the caller falls back.
func (b *Bridge) Predict(ctx context.Context, req *models.ModelMatchRequest) *models.ModelMatchResponse {
	if !b.ready(ctx) {
		return nil
	}
	var out models.ModelMatchResponse
	if err := b.post(ctx, "/predict/match", req, &out); err != nil {
		bridgeFailures.Inc()
		b.logger.Warnw("Model predict call failed", "error", err, "home", req.HomeTeam, "away", req.AwayTeam)
		b.setAvailable(false)
		return nil
	}
	return &out
}

// Explain forwards to the model service's attribution endpoint.
func (b *Bridge) Explain(ctx context.Context, req *models.ModelMatchRequest) *models.ModelExplainResponse {
	if !b.ready(ctx) {
		return nil
	}
	var out models.ModelExplainResponse
	if err := b.post(ctx, "/explain/match", req, &out); err != nil {
		bridgeFailures.Inc()
		b.logger.Warnw("Model explain call failed", "error", err)
		b.setAvailable(false)
		return nil
	}
	return &out
}

// PredictPlayer forwards to the per-player stat model.
func (b *Bridge) PredictPlayer(ctx context.Context, req *models.ModelPlayerRequest) *models.ModelPlayerResponse {
	if !b.ready(ctx) {
		return nil
	}
	var out models.ModelPlayerResponse
	if err := b.post(ctx, "/predict/player", req, &out); err != nil {
		bridgeFailures.Inc()
		b.logger.Warnw("Model player call failed", "error", err, "player", req.PlayerName)
		b.setAvailable(false)
		return nil
	}
	return &out
}
