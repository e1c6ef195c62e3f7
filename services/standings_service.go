package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/debatetab/tab-system/models"
	"github.com/debatetab/tab-system/repositories"
	"github.com/debatetab/tab-system/tab"
	"golang.org/x/sync/errgroup"
)

// StandingsService computes standings on demand. Nothing is cached or
// stored; every call reflects the results at the moment of the request.
type StandingsService interface {
	TeamStandings(ctx context.Context, tournamentID int) ([]models.TeamStanding, error)
	SpeakerStandings(ctx context.Context, tournamentID int) ([]models.SpeakerStanding, error)
}

type standingsService struct {
	tournamentRepo repositories.TournamentRepository
	teamRepo       repositories.TeamRepository
	memberRepo     repositories.MemberRepository
	scoreRepo      repositories.ScoreRepository
	resultRepo     repositories.ResultRepository
}

func NewStandingsService(
	tournamentRepo repositories.TournamentRepository,
	teamRepo repositories.TeamRepository,
	memberRepo repositories.MemberRepository,
	scoreRepo repositories.ScoreRepository,
	resultRepo repositories.ResultRepository,
) StandingsService {
	return &standingsService{
		tournamentRepo: tournamentRepo,
		teamRepo:       teamRepo,
		memberRepo:     memberRepo,
		scoreRepo:      scoreRepo,
		resultRepo:     resultRepo,
	}
}

func (s *standingsService) checkTournament(ctx context.Context, tournamentID int) error {
	if _, err := s.tournamentRepo.GetByID(ctx, tournamentID); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return ErrTournamentNotFound
		}
		return fmt.Errorf("failed to load tournament %d: %w", tournamentID, err)
	}
	return nil
}

func (s *standingsService) TeamStandings(ctx context.Context, tournamentID int) ([]models.TeamStanding, error) {
	if err := s.checkTournament(ctx, tournamentID); err != nil {
		return nil, err
	}

	var (
		teams   []*models.Team
		results []models.Result
		scores  []models.SpeakerScore
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		teams, err = s.teamRepo.ListByTournament(gCtx, tournamentID)
		return err
	})
	g.Go(func() (err error) {
		results, err = s.resultRepo.ListByTournament(gCtx, tournamentID)
		return err
	})
	g.Go(func() (err error) {
		scores, err = s.scoreRepo.ListByTournament(gCtx, tournamentID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load standings data for tournament %d: %w", tournamentID, err)
	}

	input := tab.TeamStandingsInput{
		Teams:   make([]models.Team, 0, len(teams)),
		Results: results,
		Scores:  scores,
	}
	for _, team := range teams {
		input.Teams = append(input.Teams, *team)
	}
	return tab.ComputeTeamStandings(input), nil
}

func (s *standingsService) SpeakerStandings(ctx context.Context, tournamentID int) ([]models.SpeakerStanding, error) {
	if err := s.checkTournament(ctx, tournamentID); err != nil {
		return nil, err
	}

	var (
		members []*models.Member
		scores  []models.SpeakerScore
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		members, err = s.memberRepo.ListByTournament(gCtx, tournamentID)
		return err
	})
	g.Go(func() (err error) {
		scores, err = s.scoreRepo.ListByTournament(gCtx, tournamentID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load standings data for tournament %d: %w", tournamentID, err)
	}

	input := tab.SpeakerStandingsInput{
		Members: make([]models.Member, 0, len(members)),
		Scores:  scores,
	}
	for _, member := range members {
		input.Members = append(input.Members, *member)
	}
	return tab.ComputeSpeakerStandings(input), nil
}
