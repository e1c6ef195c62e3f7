package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/debatetab/tab-system/models"
	"github.com/lib/pq"
)

var (
	ErrMemberNotFound     = errors.New("member not found")
	ErrMemberTeamInvalid  = errors.New("member team conflict or invalid")
	ErrMemberUserInvalid  = errors.New("member user conflict or invalid")
	ErrMemberUserConflict = errors.New("user is already a member of a team in this tournament")
)

type MemberRepository interface {
	Create(ctx context.Context, member *models.Member) error
	GetByID(ctx context.Context, id int) (*models.Member, error)
	ListByTeam(ctx context.Context, teamID int) ([]*models.Member, error)
	// ListByTournament loads members across all the tournament's teams
	// with user and team details attached.
	ListByTournament(ctx context.Context, tournamentID int) ([]*models.Member, error)
	Delete(ctx context.Context, id int) error
}

type postgresMemberRepository struct {
	db *sql.DB
}

func NewPostgresMemberRepository(db *sql.DB) MemberRepository {
	return &postgresMemberRepository{db: db}
}

func (r *postgresMemberRepository) Create(ctx context.Context, member *models.Member) error {
	query := `
		INSERT INTO members (team_id, user_id, role)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		member.TeamID,
		member.UserID,
		member.Role,
	).Scan(&member.ID, &member.CreatedAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Code {
			case "23503":
				switch pqErr.Constraint {
				case "members_team_id_fkey":
					return ErrMemberTeamInvalid
				case "members_user_id_fkey":
					return ErrMemberUserInvalid
				}
			case "23505":
				return ErrMemberUserConflict
			}
		}
		return err
	}
	return nil
}

func (r *postgresMemberRepository) GetByID(ctx context.Context, id int) (*models.Member, error) {
	query := `
		SELECT id, team_id, user_id, role, created_at
		FROM members
		WHERE id = $1`

	member := &models.Member{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&member.ID,
		&member.TeamID,
		&member.UserID,
		&member.Role,
		&member.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	return member, nil
}

func (r *postgresMemberRepository) ListByTeam(ctx context.Context, teamID int) ([]*models.Member, error) {
	query := `
		SELECT id, team_id, user_id, role, created_at
		FROM members
		WHERE team_id = $1
		ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := make([]*models.Member, 0)
	for rows.Next() {
		var member models.Member
		if scanErr := rows.Scan(
			&member.ID,
			&member.TeamID,
			&member.UserID,
			&member.Role,
			&member.CreatedAt,
		); scanErr != nil {
			return nil, scanErr
		}
		members = append(members, &member)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return members, nil
}

func (r *postgresMemberRepository) ListByTournament(ctx context.Context, tournamentID int) ([]*models.Member, error) {
	query := `
		SELECT m.id, m.team_id, m.user_id, m.role, m.created_at,
		       u.full_name, u.email,
		       t.name, t.institution
		FROM members m
		JOIN users u ON u.id = m.user_id
		JOIN teams t ON t.id = m.team_id
		WHERE t.tournament_id = $1
		ORDER BY m.id ASC`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := make([]*models.Member, 0)
	for rows.Next() {
		var member models.Member
		var user models.User
		var team models.Team
		if scanErr := rows.Scan(
			&member.ID,
			&member.TeamID,
			&member.UserID,
			&member.Role,
			&member.CreatedAt,
			&user.FullName,
			&user.Email,
			&team.Name,
			&team.Institution,
		); scanErr != nil {
			return nil, scanErr
		}
		user.ID = member.UserID
		team.ID = member.TeamID
		team.TournamentID = tournamentID
		member.User = &user
		member.Team = &team
		members = append(members, &member)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return members, nil
}

func (r *postgresMemberRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM members WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrMemberNotFound)
}
