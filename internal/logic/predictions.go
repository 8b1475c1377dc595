package logic

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/uclcentral/prediction-api/internal/engine"
	"github.com/uclcentral/prediction-api/internal/models"
)

var (
	predictionsServed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "uclpredict_predictions_served_total",
		Help: "Total match predictions served",
	})

	fallbackPredictions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "uclpredict_fallback_predictions_total",
		Help: "Total predictions served by the statistical fallback model",
	})

	predictionCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "uclpredict_prediction_cache_hits_total",
		Help: "Total match predictions served from the Redis cache",
	})
)

type predictionService struct {
	assembler *engine.Assembler
	fallback  *engine.FallbackModel
	bridge    *engine.Bridge
	cache     RedisCache
	audit     AuditQueue
	cacheTTL  time.Duration
	logger    *zap.SugaredLogger
}

// NewPredictionService wires the prediction path: cache, bridge, fallback,
// audit trail. cache and audit may be nil in tests.
func NewPredictionService(assembler *engine.Assembler, fallback *engine.FallbackModel, bridge *engine.Bridge, cache RedisCache, audit AuditQueue, cacheTTL time.Duration, logger *zap.SugaredLogger) PredictionService {
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	return &predictionService{
		assembler: assembler,
		fallback:  fallback,
		bridge:    bridge,
		cache:     cache,
		audit:     audit,
		cacheTTL:  cacheTTL,
		logger:    logger,
	}
}

func cacheKey(home, away, venue, stage string) string {
	return "predict:" + home + ":" + away + ":" + stage + ":" + venue
}

// GetMatchPrediction always returns a prediction for valid team names: the
// external model when available, the statistical model otherwise. Service
// failures degrade silently, they are never surfaced to the caller.
func (s *predictionService) GetMatchPrediction(ctx context.Context, home, away, venue, stage string) (*models.MatchPrediction, error) {
	key := cacheKey(home, away, venue, stage)
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, key).Result(); err == nil {
			var cached models.MatchPrediction
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				predictionCacheHits.Inc()
				s.record(&cached, stage, venue, true)
				return &cached, nil
			}
		}
	}

	pred := s.predict(ctx, home, away, venue, stage)

	if s.cache != nil {
		if raw, err := json.Marshal(pred); err == nil {
			if err := s.cache.Set(ctx, key, raw, s.cacheTTL).Err(); err != nil {
				s.logger.Warnw("Failed to cache prediction", "error", err, "key", key)
			}
		}
	}
	s.record(pred, stage, venue, false)
	return pred, nil
}

func (s *predictionService) predict(ctx context.Context, home, away, venue, stage string) *models.MatchPrediction {
	st := engine.ParseStage(stage)
	fv := s.assembler.Assemble(home, away, st, time.Time{})

	if resp := s.bridge.Predict(ctx, &models.ModelMatchRequest{HomeTeam: home, AwayTeam: away, Features: fv}); resp != nil {
		return &models.MatchPrediction{
			HomeTeam:    home,
			AwayTeam:    away,
			HomeWinProb: resp.HomeWinProb,
			DrawProb:    resp.DrawProb,
			AwayWinProb: resp.AwayWinProb,
			HomeXG:      resp.HomeXG,
			AwayXG:      resp.AwayXG,
			Confidence:  resp.Confidence,
			Source:      models.SourceModel,
		}
	}

	fallbackPredictions.Inc()
	pred := s.fallback.Predict(home, away, venue, fv)
	return &pred
}

func (s *predictionService) record(pred *models.MatchPrediction, stage, venue string, cacheHit bool) {
	predictionsServed.Inc()
	if s.audit == nil {
		return
	}
	s.audit.Enqueue(&models.PredictionRecord{
		ID:          uuid.NewString(),
		ServedAt:    time.Now().UTC(),
		HomeTeam:    pred.HomeTeam,
		AwayTeam:    pred.AwayTeam,
		Stage:       engine.ParseStage(stage).String(),
		Venue:       venue,
		HomeWinProb: pred.HomeWinProb,
		DrawProb:    pred.DrawProb,
		AwayWinProb: pred.AwayWinProb,
		HomeXG:      pred.HomeXG,
		AwayXG:      pred.AwayXG,
		Confidence:  pred.Confidence,
		Source:      pred.Source,
		CacheHit:    cacheHit,
	})
}

// ExplainMatchPrediction returns the prediction with its driving factors.
// With the model service up the attribution comes from it; degraded mode
// derives a deterministic factor list from the feature vector.
func (s *predictionService) ExplainMatchPrediction(ctx context.Context, home, away, venue, stage string) (*models.MatchExplanation, error) {
	st := engine.ParseStage(stage)
	fv := s.assembler.Assemble(home, away, st, time.Time{})
	req := &models.ModelMatchRequest{HomeTeam: home, AwayTeam: away, Features: fv}

	if resp := s.bridge.Explain(ctx, req); resp != nil {
		return &models.MatchExplanation{
			Prediction: models.MatchPrediction{
				HomeTeam:    home,
				AwayTeam:    away,
				HomeWinProb: resp.Prediction.HomeWinProb,
				DrawProb:    resp.Prediction.DrawProb,
				AwayWinProb: resp.Prediction.AwayWinProb,
				HomeXG:      resp.Prediction.HomeXG,
				AwayXG:      resp.Prediction.AwayXG,
				Confidence:  resp.Prediction.Confidence,
				Source:      models.SourceModel,
			},
			Positive: resp.TopFactors.Positive,
			Negative: resp.TopFactors.Negative,
		}, nil
	}

	fallbackPredictions.Inc()
	pred := s.fallback.Predict(home, away, venue, fv)
	pos, neg := fallbackFactors(fv)
	return &models.MatchExplanation{Prediction: pred, Positive: pos, Negative: neg}, nil
}

// fallbackFactors derives attribution from the home side's perspective:
// positive impacts favor the home team.
func fallbackFactors(fv models.FeatureVector) (pos, neg []models.ExplainFactor) {
	factors := []models.ExplainFactor{
		{Feature: "elo_diff", Impact: fv.EloDiff / 100},
		{Feature: "form_last5", Impact: fv.HomeFormLast5 - fv.AwayFormLast5},
		{Feature: "xg_last5", Impact: (fv.HomeXGLast5 - fv.AwayXGLast5) / 5},
		{Feature: "h2h_record", Impact: float64(fv.H2HHomeWins-fv.H2HAwayWins) / 4},
		{Feature: "venue_advantage", Impact: fv.StrengthAdjustedVenue},
	}
	for _, f := range factors {
		if f.Impact >= 0 {
			pos = append(pos, f)
		} else {
			neg = append(neg, f)
		}
	}
	sort.Slice(pos, func(i, j int) bool { return pos[i].Impact > pos[j].Impact })
	sort.Slice(neg, func(i, j int) bool { return neg[i].Impact < neg[j].Impact })
	return pos, neg
}
