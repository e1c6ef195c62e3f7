package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/debatetab/tab-system/models"
	"github.com/lib/pq"
)

var (
	ErrScoreMemberInvalid = errors.New("speaker score member conflict or invalid")
	ErrScoreMatchInvalid  = errors.New("speaker score match conflict or invalid")
)

type ScoreRepository interface {
	// Upsert inserts or overwrites the score for (member, match).
	// Concurrent submissions for the same pair converge on the last
	// write; duplicates never accumulate.
	Upsert(ctx context.Context, score *models.SpeakerScore) error
	// ListByMatch returns scores with the owning team attached via the
	// member join, in insertion order.
	ListByMatch(ctx context.Context, matchID int) ([]models.SpeakerScore, error)
	ListByTournament(ctx context.Context, tournamentID int) ([]models.SpeakerScore, error)
	Delete(ctx context.Context, id int) error
}

type postgresScoreRepository struct {
	db *sql.DB
}

func NewPostgresScoreRepository(db *sql.DB) ScoreRepository {
	return &postgresScoreRepository{db: db}
}

func (r *postgresScoreRepository) Upsert(ctx context.Context, score *models.SpeakerScore) error {
	query := `
		INSERT INTO speaker_scores (member_id, match_id, round_id, points)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (member_id, match_id)
		DO UPDATE SET points = EXCLUDED.points, round_id = EXCLUDED.round_id
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		score.MemberID,
		score.MatchID,
		score.RoundID,
		score.Points,
	).Scan(&score.ID, &score.CreatedAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			switch pqErr.Constraint {
			case "speaker_scores_member_id_fkey":
				return ErrScoreMemberInvalid
			case "speaker_scores_match_id_fkey", "speaker_scores_round_id_fkey":
				return ErrScoreMatchInvalid
			}
		}
		return err
	}
	return nil
}

func (r *postgresScoreRepository) ListByMatch(ctx context.Context, matchID int) ([]models.SpeakerScore, error) {
	query := `
		SELECT s.id, s.member_id, s.match_id, s.round_id, s.points, s.created_at, m.team_id
		FROM speaker_scores s
		JOIN members m ON m.id = s.member_id
		WHERE s.match_id = $1
		ORDER BY s.id ASC`
	return r.listScores(ctx, query, matchID)
}

func (r *postgresScoreRepository) ListByTournament(ctx context.Context, tournamentID int) ([]models.SpeakerScore, error) {
	query := `
		SELECT s.id, s.member_id, s.match_id, s.round_id, s.points, s.created_at, m.team_id
		FROM speaker_scores s
		JOIN members m ON m.id = s.member_id
		JOIN teams t ON t.id = m.team_id
		WHERE t.tournament_id = $1
		ORDER BY s.id ASC`
	return r.listScores(ctx, query, tournamentID)
}

func (r *postgresScoreRepository) listScores(ctx context.Context, query string, arg interface{}) ([]models.SpeakerScore, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	scores := make([]models.SpeakerScore, 0)
	for rows.Next() {
		var score models.SpeakerScore
		if scanErr := rows.Scan(
			&score.ID,
			&score.MemberID,
			&score.MatchID,
			&score.RoundID,
			&score.Points,
			&score.CreatedAt,
			&score.TeamID,
		); scanErr != nil {
			return nil, scanErr
		}
		scores = append(scores, score)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return scores, nil
}

func (r *postgresScoreRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM speaker_scores WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, errors.New("speaker score not found"))
}
