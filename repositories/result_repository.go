package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/debatetab/tab-system/models"
	"github.com/lib/pq"
)

var (
	ErrResultMatchInvalid = errors.New("result match conflict or invalid")
	ErrResultTeamInvalid  = errors.New("result team conflict or invalid")
	ErrResultDuplicate    = errors.New("result already exists for this match and team")
)

type ResultRepository interface {
	// Create and DeleteByMatch accept an executor so a match's result
	// set can be replaced atomically: either all new rows land and all
	// old ones are gone, or the prior state survives.
	Create(ctx context.Context, exec SQLExecutor, result *models.Result) error
	DeleteByMatch(ctx context.Context, exec SQLExecutor, matchID int) error
	ListByMatch(ctx context.Context, matchID int) ([]models.Result, error)
	ListByTournament(ctx context.Context, tournamentID int) ([]models.Result, error)
	// ListPriorByTournament returns results joined with their round's
	// sequence number, for power pairing.
	ListPriorByTournament(ctx context.Context, tournamentID int) ([]models.Result, error)
}

type postgresResultRepository struct {
	db *sql.DB
}

func NewPostgresResultRepository(db *sql.DB) ResultRepository {
	return &postgresResultRepository{db: db}
}

func (r *postgresResultRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresResultRepository) Create(ctx context.Context, exec SQLExecutor, result *models.Result) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO results (match_id, team_id, rank, points)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := executor.QueryRowContext(ctx, query,
		result.MatchID,
		result.TeamID,
		result.Rank,
		result.Points,
	).Scan(&result.ID, &result.CreatedAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Code {
			case "23503":
				switch pqErr.Constraint {
				case "results_match_id_fkey":
					return ErrResultMatchInvalid
				case "results_team_id_fkey":
					return ErrResultTeamInvalid
				}
			case "23505":
				return ErrResultDuplicate
			}
		}
		return err
	}
	return nil
}

func (r *postgresResultRepository) DeleteByMatch(ctx context.Context, exec SQLExecutor, matchID int) error {
	executor := r.getExecutor(exec)
	_, err := executor.ExecContext(ctx, `DELETE FROM results WHERE match_id = $1`, matchID)
	return err
}

func (r *postgresResultRepository) ListByMatch(ctx context.Context, matchID int) ([]models.Result, error) {
	query := `
		SELECT id, match_id, team_id, rank, points, created_at
		FROM results
		WHERE match_id = $1
		ORDER BY rank ASC`

	rows, err := r.db.QueryContext(ctx, query, matchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.collectResults(rows, false)
}

func (r *postgresResultRepository) ListByTournament(ctx context.Context, tournamentID int) ([]models.Result, error) {
	query := `
		SELECT res.id, res.match_id, res.team_id, res.rank, res.points, res.created_at
		FROM results res
		JOIN matches m ON m.id = res.match_id
		JOIN rounds r ON r.id = m.round_id
		WHERE r.tournament_id = $1
		ORDER BY res.id ASC`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.collectResults(rows, false)
}

func (r *postgresResultRepository) ListPriorByTournament(ctx context.Context, tournamentID int) ([]models.Result, error) {
	query := `
		SELECT res.id, res.match_id, res.team_id, res.rank, res.points, res.created_at, r.seq
		FROM results res
		JOIN matches m ON m.id = res.match_id
		JOIN rounds r ON r.id = m.round_id
		WHERE r.tournament_id = $1
		ORDER BY r.seq ASC, res.id ASC`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.collectResults(rows, true)
}

func (r *postgresResultRepository) collectResults(rows *sql.Rows, withRoundSeq bool) ([]models.Result, error) {
	results := make([]models.Result, 0)
	for rows.Next() {
		var result models.Result
		var scanErr error
		if withRoundSeq {
			scanErr = rows.Scan(
				&result.ID, &result.MatchID, &result.TeamID,
				&result.Rank, &result.Points, &result.CreatedAt,
				&result.RoundSeq,
			)
		} else {
			scanErr = rows.Scan(
				&result.ID, &result.MatchID, &result.TeamID,
				&result.Rank, &result.Points, &result.CreatedAt,
			)
		}
		if scanErr != nil {
			return nil, scanErr
		}
		results = append(results, result)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
