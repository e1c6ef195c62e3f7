package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/debatetab/tab-system/models"
	"github.com/lib/pq"
)

var (
	ErrMatchNotFound      = errors.New("match not found")
	ErrMatchRoundInvalid  = errors.New("match round conflict or invalid")
	ErrMatchTeamInvalid   = errors.New("match team conflict or invalid")
	ErrMatchPositionTaken = errors.New("position is already taken in this match")
	ErrMatchTeamDuplicate = errors.New("team is already assigned to this match")
)

type MatchRepository interface {
	// Create and CreateMatchTeam accept an executor so a whole round's
	// draw can be written inside one transaction.
	Create(ctx context.Context, exec SQLExecutor, match *models.Match) error
	CreateMatchTeam(ctx context.Context, exec SQLExecutor, matchTeam *models.MatchTeam) error
	GetByID(ctx context.Context, id int) (*models.Match, error)
	// ListByRound returns matches with their team assignments attached,
	// ordered by position within the round.
	ListByRound(ctx context.Context, roundID int) ([]*models.Match, error)
	ListIDsByRound(ctx context.Context, roundID int) ([]int, error)
	// DeleteByRound removes all matches of a round (match_teams,
	// speaker_scores and results cascade at the schema level).
	DeleteByRound(ctx context.Context, exec SQLExecutor, roundID int) error
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

func (r *postgresMatchRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresMatchRepository) Create(ctx context.Context, exec SQLExecutor, match *models.Match) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO matches (round_id, order_in_round, short)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := executor.QueryRowContext(ctx, query,
		match.RoundID,
		match.OrderInRound,
		match.Short,
	).Scan(&match.ID, &match.CreatedAt)

	return r.handleMatchError(err)
}

func (r *postgresMatchRepository) CreateMatchTeam(ctx context.Context, exec SQLExecutor, matchTeam *models.MatchTeam) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO match_teams (match_id, team_id, position)
		VALUES ($1, $2, $3)
		RETURNING id`

	err := executor.QueryRowContext(ctx, query,
		matchTeam.MatchID,
		matchTeam.TeamID,
		matchTeam.Position,
	).Scan(&matchTeam.ID)

	return r.handleMatchError(err)
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, id int) (*models.Match, error) {
	query := `
		SELECT id, round_id, order_in_round, short, created_at
		FROM matches
		WHERE id = $1`

	match := &models.Match{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&match.ID,
		&match.RoundID,
		&match.OrderInRound,
		&match.Short,
		&match.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}

	teams, err := r.listMatchTeams(ctx, []int{match.ID})
	if err != nil {
		return nil, err
	}
	match.Teams = teams[match.ID]
	return match, nil
}

func (r *postgresMatchRepository) ListByRound(ctx context.Context, roundID int) ([]*models.Match, error) {
	query := `
		SELECT id, round_id, order_in_round, short, created_at
		FROM matches
		WHERE round_id = $1
		ORDER BY order_in_round ASC`

	rows, err := r.db.QueryContext(ctx, query, roundID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches := make([]*models.Match, 0)
	ids := make([]int, 0)
	for rows.Next() {
		var match models.Match
		if scanErr := rows.Scan(
			&match.ID,
			&match.RoundID,
			&match.OrderInRound,
			&match.Short,
			&match.CreatedAt,
		); scanErr != nil {
			return nil, scanErr
		}
		matches = append(matches, &match)
		ids = append(ids, match.ID)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	if len(ids) == 0 {
		return matches, nil
	}

	teamsByMatch, err := r.listMatchTeams(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, match := range matches {
		match.Teams = teamsByMatch[match.ID]
	}
	return matches, nil
}

func (r *postgresMatchRepository) ListIDsByRound(ctx context.Context, roundID int) ([]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id FROM matches WHERE round_id = $1 ORDER BY order_in_round ASC`, roundID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]int, 0)
	for rows.Next() {
		var id int
		if scanErr := rows.Scan(&id); scanErr != nil {
			return nil, scanErr
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *postgresMatchRepository) DeleteByRound(ctx context.Context, exec SQLExecutor, roundID int) error {
	executor := r.getExecutor(exec)
	_, err := executor.ExecContext(ctx, `DELETE FROM matches WHERE round_id = $1`, roundID)
	return err
}

func (r *postgresMatchRepository) listMatchTeams(ctx context.Context, matchIDs []int) (map[int][]models.MatchTeam, error) {
	query := `
		SELECT mt.id, mt.match_id, mt.team_id, mt.position,
		       t.tournament_id, t.name, t.institution
		FROM match_teams mt
		JOIN teams t ON t.id = mt.team_id
		WHERE mt.match_id = ANY($1)
		ORDER BY mt.match_id ASC, mt.id ASC`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(matchIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byMatch := make(map[int][]models.MatchTeam, len(matchIDs))
	for rows.Next() {
		var mt models.MatchTeam
		var team models.Team
		if scanErr := rows.Scan(
			&mt.ID,
			&mt.MatchID,
			&mt.TeamID,
			&mt.Position,
			&team.TournamentID,
			&team.Name,
			&team.Institution,
		); scanErr != nil {
			return nil, scanErr
		}
		team.ID = mt.TeamID
		mt.Team = &team
		byMatch[mt.MatchID] = append(byMatch[mt.MatchID], mt)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return byMatch, nil
}

func (r *postgresMatchRepository) handleMatchError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok {
		switch pqErr.Code {
		case "23503": // foreign_key_violation
			switch pqErr.Constraint {
			case "matches_round_id_fkey":
				return ErrMatchRoundInvalid
			case "match_teams_match_id_fkey", "match_teams_team_id_fkey":
				return ErrMatchTeamInvalid
			}
		case "23505": // unique_violation
			switch pqErr.Constraint {
			case "match_teams_match_id_position_key":
				return ErrMatchPositionTaken
			case "match_teams_match_id_team_id_key":
				return ErrMatchTeamDuplicate
			}
		}
	}
	return err
}
