package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/debatetab/tab-system/models"
	"github.com/debatetab/tab-system/repositories"
)

type CreateTeamInput struct {
	TournamentID int     `json:"tournament_id"`
	Name         string  `json:"name"`
	Institution  *string `json:"institution"`
}

type AddMemberInput struct {
	TeamID int               `json:"team_id"`
	UserID int               `json:"user_id"`
	Role   models.MemberRole `json:"role"`
}

type TeamService interface {
	Create(ctx context.Context, input CreateTeamInput) (*models.Team, error)
	GetByID(ctx context.Context, id int) (*models.Team, error)
	ListByTournament(ctx context.Context, tournamentID int) ([]*models.Team, error)
	Update(ctx context.Context, team *models.Team) error
	Delete(ctx context.Context, id int) error
	AddMember(ctx context.Context, input AddMemberInput) (*models.Member, error)
	RemoveMember(ctx context.Context, memberID int) error
}

type teamService struct {
	teamRepo       repositories.TeamRepository
	memberRepo     repositories.MemberRepository
	tournamentRepo repositories.TournamentRepository
	userRepo       repositories.UserRepository
}

func NewTeamService(
	teamRepo repositories.TeamRepository,
	memberRepo repositories.MemberRepository,
	tournamentRepo repositories.TournamentRepository,
	userRepo repositories.UserRepository,
) TeamService {
	return &teamService{
		teamRepo:       teamRepo,
		memberRepo:     memberRepo,
		tournamentRepo: tournamentRepo,
		userRepo:       userRepo,
	}
}

func (s *teamService) Create(ctx context.Context, input CreateTeamInput) (*models.Team, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrTeamNameRequired
	}

	if _, err := s.tournamentRepo.GetByID(ctx, input.TournamentID); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to load tournament %d: %w", input.TournamentID, err)
	}

	team := &models.Team{
		TournamentID: input.TournamentID,
		Name:         input.Name,
		Institution:  input.Institution,
	}
	if err := s.teamRepo.Create(ctx, team); err != nil {
		if errors.Is(err, repositories.ErrTeamNameConflict) {
			return nil, ErrTeamNameConflict
		}
		return nil, fmt.Errorf("failed to create team: %w", err)
	}
	return team, nil
}

func (s *teamService) GetByID(ctx context.Context, id int) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to load team %d: %w", id, err)
	}

	members, err := s.memberRepo.ListByTeam(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load members for team %d: %w", id, err)
	}
	team.Members = make([]models.Member, 0, len(members))
	for _, member := range members {
		team.Members = append(team.Members, *member)
	}
	return team, nil
}

func (s *teamService) ListByTournament(ctx context.Context, tournamentID int) ([]*models.Team, error) {
	teams, err := s.teamRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams for tournament %d: %w", tournamentID, err)
	}
	return teams, nil
}

func (s *teamService) Update(ctx context.Context, team *models.Team) error {
	if strings.TrimSpace(team.Name) == "" {
		return ErrTeamNameRequired
	}
	err := s.teamRepo.Update(ctx, team)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrTeamNotFound):
			return ErrTeamNotFound
		case errors.Is(err, repositories.ErrTeamNameConflict):
			return ErrTeamNameConflict
		}
		return fmt.Errorf("failed to update team %d: %w", team.ID, err)
	}
	return nil
}

func (s *teamService) Delete(ctx context.Context, id int) error {
	if err := s.teamRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return ErrTeamNotFound
		}
		return fmt.Errorf("failed to delete team %d: %w", id, err)
	}
	return nil
}

func (s *teamService) AddMember(ctx context.Context, input AddMemberInput) (*models.Member, error) {
	if _, err := s.userRepo.GetByID(ctx, input.UserID); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user %d: %w", input.UserID, err)
	}

	role := input.Role
	if role == "" {
		role = models.RoleMember
	}

	member := &models.Member{
		TeamID: input.TeamID,
		UserID: input.UserID,
		Role:   role,
	}
	if err := s.memberRepo.Create(ctx, member); err != nil {
		switch {
		case errors.Is(err, repositories.ErrMemberTeamInvalid):
			return nil, ErrTeamNotFound
		case errors.Is(err, repositories.ErrMemberUserConflict):
			return nil, ErrMemberConflict
		}
		return nil, fmt.Errorf("failed to add member: %w", err)
	}
	return member, nil
}

func (s *teamService) RemoveMember(ctx context.Context, memberID int) error {
	if err := s.memberRepo.Delete(ctx, memberID); err != nil {
		if errors.Is(err, repositories.ErrMemberNotFound) {
			return ErrMemberNotFound
		}
		return fmt.Errorf("failed to remove member %d: %w", memberID, err)
	}
	return nil
}
