package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/debatetab/tab-system/models"
	"github.com/debatetab/tab-system/repositories"
)

type CreateRoundInput struct {
	TournamentID int     `json:"tournament_id"`
	Motion       *string `json:"motion"`
}

type RoundService interface {
	Create(ctx context.Context, input CreateRoundInput) (*models.Round, error)
	GetByID(ctx context.Context, id int) (*models.Round, error)
	ListByTournament(ctx context.Context, tournamentID int) ([]*models.Round, error)
	UpdateMotion(ctx context.Context, id int, motion *string) error
	SetCompleted(ctx context.Context, id int, completed bool) error
	Delete(ctx context.Context, id int) error
}

type roundService struct {
	roundRepo      repositories.RoundRepository
	tournamentRepo repositories.TournamentRepository
}

func NewRoundService(
	roundRepo repositories.RoundRepository,
	tournamentRepo repositories.TournamentRepository,
) RoundService {
	return &roundService{
		roundRepo:      roundRepo,
		tournamentRepo: tournamentRepo,
	}
}

func (s *roundService) Create(ctx context.Context, input CreateRoundInput) (*models.Round, error) {
	if _, err := s.tournamentRepo.GetByID(ctx, input.TournamentID); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to load tournament %d: %w", input.TournamentID, err)
	}

	round := &models.Round{
		TournamentID: input.TournamentID,
		Motion:       input.Motion,
		DrawStatus:   models.DrawStatusNone,
	}
	if err := s.roundRepo.Create(ctx, round); err != nil {
		return nil, fmt.Errorf("failed to create round: %w", err)
	}
	return round, nil
}

func (s *roundService) GetByID(ctx context.Context, id int) (*models.Round, error) {
	round, err := s.roundRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrRoundNotFound) {
			return nil, ErrRoundNotFound
		}
		return nil, fmt.Errorf("failed to load round %d: %w", id, err)
	}
	return round, nil
}

func (s *roundService) ListByTournament(ctx context.Context, tournamentID int) ([]*models.Round, error) {
	rounds, err := s.roundRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list rounds for tournament %d: %w", tournamentID, err)
	}
	return rounds, nil
}

func (s *roundService) UpdateMotion(ctx context.Context, id int, motion *string) error {
	if err := s.roundRepo.UpdateMotion(ctx, id, motion); err != nil {
		if errors.Is(err, repositories.ErrRoundNotFound) {
			return ErrRoundNotFound
		}
		return fmt.Errorf("failed to update motion for round %d: %w", id, err)
	}
	return nil
}

func (s *roundService) SetCompleted(ctx context.Context, id int, completed bool) error {
	if err := s.roundRepo.UpdateCompleted(ctx, id, completed); err != nil {
		if errors.Is(err, repositories.ErrRoundNotFound) {
			return ErrRoundNotFound
		}
		return fmt.Errorf("failed to update completion for round %d: %w", id, err)
	}
	return nil
}

func (s *roundService) Delete(ctx context.Context, id int) error {
	if err := s.roundRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrRoundNotFound) {
			return ErrRoundNotFound
		}
		return fmt.Errorf("failed to delete round %d: %w", id, err)
	}
	return nil
}
