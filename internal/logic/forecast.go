package logic

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/uclcentral/prediction-api/internal/engine"
	"github.com/uclcentral/prediction-api/internal/models"
)

// ErrPlayerNotFound signals an unknown player name.
var ErrPlayerNotFound = errors.New("player not found")

type forecastService struct {
	pg         PgPool
	ratings    *engine.RatingBook
	history    *engine.HistoryTracker
	bridge     *engine.Bridge
	forecaster *engine.Forecaster
	logger     *zap.SugaredLogger
}

func NewForecastService(pg PgPool, ratings *engine.RatingBook, history *engine.HistoryTracker, bridge *engine.Bridge, forecaster *engine.Forecaster, logger *zap.SugaredLogger) ForecastService {
	return &forecastService{
		pg:         pg,
		ratings:    ratings,
		history:    history,
		bridge:     bridge,
		forecaster: forecaster,
		logger:     logger,
	}
}

// GetPlayerForecast builds the tournament context for the player's team and
// runs the forecast layer over the requested horizons. The external model
// refines the per-stat expectations when it is reachable.
func (s *forecastService) GetPlayerForecast(ctx context.Context, player string, horizons int) (*models.PlayerForecast, error) {
	var (
		profile  engine.PlayerProfile
		matchday int
		opponent string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := s.fetchProfile(gctx, player)
		if err != nil {
			return err
		}
		profile = p
		return nil
	})
	g.Go(func() error {
		md, err := s.currentMatchday(gctx)
		if err != nil {
			return err
		}
		matchday = md
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Needs the profile's team, so it runs after the fan-out.
	opponent = s.nextOpponent(ctx, profile.Team)

	teamRating := s.ratings.Rating(profile.Team)
	opponentRating := float64(engine.InitialRating)
	if opponent != "" {
		opponentRating = s.ratings.Rating(opponent)
	}

	tctx := s.forecaster.DeriveContext(matchday, s.history.Form(profile.Team), teamRating, opponentRating)

	overrides := s.modelOverrides(ctx, profile, teamRating, opponentRating)

	forecast := &models.PlayerForecast{
		Player:      profile.Name,
		Team:        profile.Team,
		Position:    profile.Position,
		Context:     tctx,
		Factors:     s.forecaster.UncertaintyFactors(tctx),
		Horizons:    s.forecaster.Forecast(profile, tctx, overrides, horizons),
		GeneratedAt: time.Now().UTC(),
	}
	return forecast, nil
}

// modelOverrides asks the external model for per-stat expectations. A nil
// map means degraded mode and the heuristics stand.
func (s *forecastService) modelOverrides(ctx context.Context, p engine.PlayerProfile, teamRating, opponentRating float64) map[string]float64 {
	resp := s.bridge.PredictPlayer(ctx, &models.ModelPlayerRequest{
		PlayerName: p.Name,
		Position:   p.Position,
		Features: map[string]float64{
			"overall_rating":           p.Overall,
			"team_elo":                 teamRating,
			"opponent_elo":             opponentRating,
			"elo_differential":         teamRating - opponentRating,
			"player_goals_last_5":      p.GoalsLast5,
			"player_assists_last_5":    p.AssistsLast5,
			"player_minutes_last_5":    p.MinutesLast5,
			"player_avg_rating_last_5": p.AvgRatingLast5,
		},
	})
	if resp == nil {
		return nil
	}
	return resp.Predictions
}

func (s *forecastService) fetchProfile(ctx context.Context, player string) (engine.PlayerProfile, error) {
	var p engine.PlayerProfile
	err := s.pg.QueryRow(ctx, `
		SELECT name, team, position, overall_rating,
		       coalesce(goals_last5, 0), coalesce(assists_last5, 0),
		       coalesce(minutes_last5, 0), coalesce(avg_rating_last5, 0)
		FROM players
		WHERE name = $1
	`, player).Scan(&p.Name, &p.Team, &p.Position, &p.Overall,
		&p.GoalsLast5, &p.AssistsLast5, &p.MinutesLast5, &p.AvgRatingLast5)
	if errors.Is(err, pgx.ErrNoRows) {
		return p, ErrPlayerNotFound
	}
	if err != nil {
		return p, fmt.Errorf("fetch player: %w", err)
	}
	return p, nil
}

// currentMatchday is one past the highest finished matchday.
func (s *forecastService) currentMatchday(ctx context.Context) (int, error) {
	var last int
	err := s.pg.QueryRow(ctx, `
		SELECT coalesce(max(matchday), 0) FROM matches WHERE status = $1
	`, models.StatusFinished).Scan(&last)
	if err != nil {
		return 0, fmt.Errorf("current matchday: %w", err)
	}
	return last + 1, nil
}

// nextOpponent looks up the team's next scheduled fixture. Empty when the
// schedule has run out; the forecast then assumes an average opponent.
func (s *forecastService) nextOpponent(ctx context.Context, team string) string {
	var home, away string
	err := s.pg.QueryRow(ctx, `
		SELECT home_team, away_team
		FROM matches
		WHERE status = $1 AND (home_team = $2 OR away_team = $2)
		ORDER BY date ASC
		LIMIT 1
	`, models.StatusScheduled, team).Scan(&home, &away)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			s.logger.Warnw("Next opponent lookup failed", "error", err, "team", team)
		}
		return ""
	}
	if home == team {
		return away
	}
	return home
}
