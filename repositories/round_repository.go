package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/debatetab/tab-system/models"
	"github.com/lib/pq"
)

var (
	ErrRoundNotFound    = errors.New("round not found")
	ErrRoundSeqConflict = errors.New("round sequence number is already taken in this tournament")
)

type RoundRepository interface {
	// Create assigns the next sequence number within the tournament.
	Create(ctx context.Context, round *models.Round) error
	GetByID(ctx context.Context, id int) (*models.Round, error)
	ListByTournament(ctx context.Context, tournamentID int) ([]*models.Round, error)
	UpdateMotion(ctx context.Context, id int, motion *string) error
	UpdateDrawStatus(ctx context.Context, exec SQLExecutor, id int, status models.DrawStatus) error
	UpdateCompleted(ctx context.Context, id int, completed bool) error
	Delete(ctx context.Context, id int) error
}

type postgresRoundRepository struct {
	db *sql.DB
}

func NewPostgresRoundRepository(db *sql.DB) RoundRepository {
	return &postgresRoundRepository{db: db}
}

func (r *postgresRoundRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresRoundRepository) Create(ctx context.Context, round *models.Round) error {
	query := `
		INSERT INTO rounds (tournament_id, seq, motion, draw_status, completed)
		VALUES (
			$1,
			COALESCE((SELECT MAX(seq) FROM rounds WHERE tournament_id = $1), 0) + 1,
			$2, $3, FALSE
		)
		RETURNING id, seq, created_at`

	if round.DrawStatus == "" {
		round.DrawStatus = models.DrawStatusNone
	}

	err := r.db.QueryRowContext(ctx, query,
		round.TournamentID,
		round.Motion,
		round.DrawStatus,
	).Scan(&round.ID, &round.Seq, &round.CreatedAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" && pqErr.Constraint == "rounds_tournament_id_seq_key" {
				return ErrRoundSeqConflict
			}
		}
		return err
	}
	return nil
}

func (r *postgresRoundRepository) GetByID(ctx context.Context, id int) (*models.Round, error) {
	query := `
		SELECT id, tournament_id, seq, motion, draw_status, completed, created_at
		FROM rounds
		WHERE id = $1`

	round := &models.Round{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&round.ID,
		&round.TournamentID,
		&round.Seq,
		&round.Motion,
		&round.DrawStatus,
		&round.Completed,
		&round.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRoundNotFound
		}
		return nil, err
	}
	return round, nil
}

func (r *postgresRoundRepository) ListByTournament(ctx context.Context, tournamentID int) ([]*models.Round, error) {
	query := `
		SELECT id, tournament_id, seq, motion, draw_status, completed, created_at
		FROM rounds
		WHERE tournament_id = $1
		ORDER BY seq ASC`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rounds := make([]*models.Round, 0)
	for rows.Next() {
		var round models.Round
		if scanErr := rows.Scan(
			&round.ID,
			&round.TournamentID,
			&round.Seq,
			&round.Motion,
			&round.DrawStatus,
			&round.Completed,
			&round.CreatedAt,
		); scanErr != nil {
			return nil, scanErr
		}
		rounds = append(rounds, &round)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return rounds, nil
}

func (r *postgresRoundRepository) UpdateMotion(ctx context.Context, id int, motion *string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE rounds SET motion = $1 WHERE id = $2`, motion, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrRoundNotFound)
}

func (r *postgresRoundRepository) UpdateDrawStatus(ctx context.Context, exec SQLExecutor, id int, status models.DrawStatus) error {
	executor := r.getExecutor(exec)
	result, err := executor.ExecContext(ctx, `UPDATE rounds SET draw_status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrRoundNotFound)
}

func (r *postgresRoundRepository) UpdateCompleted(ctx context.Context, id int, completed bool) error {
	result, err := r.db.ExecContext(ctx, `UPDATE rounds SET completed = $1 WHERE id = $2`, completed, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrRoundNotFound)
}

func (r *postgresRoundRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM rounds WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrRoundNotFound)
}
