package logic

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/uclcentral/prediction-api/internal/engine"
	"github.com/uclcentral/prediction-api/internal/models"
)

// ErrMatchNotFound signals an unknown match id.
var ErrMatchNotFound = errors.New("match not found")

type resultsService struct {
	pg      PgPool
	ratings *engine.RatingBook
	history *engine.HistoryTracker
	logger  *zap.SugaredLogger
}

func NewResultsService(pg PgPool, ratings *engine.RatingBook, history *engine.HistoryTracker, logger *zap.SugaredLogger) ResultsService {
	return &resultsService{pg: pg, ratings: ratings, history: history, logger: logger}
}

// MarkFinished transitions a scheduled match to FINISHED and applies the
// result to the rating and history stores. The guarded UPDATE makes the
// transition exactly-once: a replay of an already-finished match returns the
// stored row with applied=false and leaves the engine untouched.
func (s *resultsService) MarkFinished(ctx context.Context, req *models.ResultIngestRequest) (*models.Match, bool, error) {
	match, err := s.fetchMatch(ctx, req.MatchID)
	if err != nil {
		return nil, false, err
	}

	homeXG := float64(req.HomeGoals)
	if req.HomeXG != nil {
		homeXG = *req.HomeXG
	}
	awayXG := float64(req.AwayGoals)
	if req.AwayXG != nil {
		awayXG = *req.AwayXG
	}

	tag, err := s.pg.Exec(ctx, `
		UPDATE matches
		SET status = $2, home_goals = $3, away_goals = $4, home_xg = $5, away_xg = $6
		WHERE id = $1 AND status = $7
	`, req.MatchID, models.StatusFinished, req.HomeGoals, req.AwayGoals, homeXG, awayXG, models.StatusScheduled)
	if err != nil {
		return nil, false, fmt.Errorf("finish transition: %w", err)
	}
	if tag.RowsAffected() == 0 {
		s.logger.Infow("Result replay ignored", "matchID", req.MatchID)
		return match, false, nil
	}

	// Rating and form updates are not transactional with the row update;
	// replays are tolerated instead (the guard above keeps them out of the
	// engine).
	s.ratings.RecordResult(match.HomeTeam, match.AwayTeam, req.HomeGoals, req.AwayGoals, match.Date)
	s.history.RecordResult(match.HomeTeam, match.AwayTeam, req.HomeGoals, req.AwayGoals, homeXG, awayXG, match.Date)

	match.Status = models.StatusFinished
	match.HomeGoals = &req.HomeGoals
	match.AwayGoals = &req.AwayGoals
	match.HomeXG = &homeXG
	match.AwayXG = &awayXG

	s.logger.Infow("Result applied",
		"matchID", match.ID,
		"home", match.HomeTeam,
		"away", match.AwayTeam,
		"score", fmt.Sprintf("%d-%d", req.HomeGoals, req.AwayGoals),
	)
	return match, true, nil
}

func (s *resultsService) fetchMatch(ctx context.Context, id string) (*models.Match, error) {
	m := &models.Match{}
	err := s.pg.QueryRow(ctx, `
		SELECT id, home_team, away_team, date, venue, stage, matchday, status
		FROM matches
		WHERE id = $1
	`, id).Scan(&m.ID, &m.HomeTeam, &m.AwayTeam, &m.Date, &m.Venue, &m.Stage, &m.Matchday, &m.Status)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrMatchNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetch match: %w", err)
	}
	return m, nil
}

// ReplayFinished loads every finished match in chronological order and
// replays it through the rating and history stores. Called once at startup
// to warm the engine from the contest log.
func (s *resultsService) ReplayFinished(ctx context.Context) (int, error) {
	rows, err := s.pg.Query(ctx, `
		SELECT home_team, away_team, date, home_goals, away_goals,
		       coalesce(home_xg, home_goals::float8), coalesce(away_xg, away_goals::float8)
		FROM matches
		WHERE status = $1 AND home_goals IS NOT NULL AND away_goals IS NOT NULL
		ORDER BY date ASC
	`, models.StatusFinished)
	if err != nil {
		return 0, fmt.Errorf("load finished matches: %w", err)
	}
	defer rows.Close()

	count := 0
	for rows.Next() {
		var m models.Match
		var homeGoals, awayGoals int
		var homeXG, awayXG float64
		if err := rows.Scan(&m.HomeTeam, &m.AwayTeam, &m.Date, &homeGoals, &awayGoals, &homeXG, &awayXG); err != nil {
			return count, fmt.Errorf("scan finished match: %w", err)
		}
		s.ratings.RecordResult(m.HomeTeam, m.AwayTeam, homeGoals, awayGoals, m.Date)
		s.history.RecordResult(m.HomeTeam, m.AwayTeam, homeGoals, awayGoals, homeXG, awayXG, m.Date)
		count++
	}
	if err := rows.Err(); err != nil {
		return count, fmt.Errorf("iterate finished matches: %w", err)
	}

	s.logger.Infow("Replayed finished matches", "count", count)
	return count, nil
}
