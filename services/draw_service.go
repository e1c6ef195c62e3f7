package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/debatetab/tab-system/draw"
	"github.com/debatetab/tab-system/models"
	"github.com/debatetab/tab-system/realtime"
	"github.com/debatetab/tab-system/repositories"
)

type DrawService interface {
	// Preview generates a draw proposal without touching the database.
	Preview(ctx context.Context, roundID int, drawType models.DrawType) ([]*draw.ProposedMatch, error)
	// Commit generates a draw and persists it in one transaction,
	// replacing any existing matches of the round. The round ends up in
	// the draft state so admins can still adjust the pairing.
	Commit(ctx context.Context, roundID int, drawType models.DrawType) ([]*models.Match, error)
	// CommitProposal persists an admin-reviewed proposal after
	// validation and marks the draw confirmed.
	CommitProposal(ctx context.Context, roundID int, proposal []*draw.ProposedMatch) ([]*models.Match, error)
	GetDraw(ctx context.Context, roundID int) ([]*models.Match, error)
	// Release makes a confirmed draw visible and notifies the
	// tournament's speakers by email.
	Release(ctx context.Context, roundID int) error
}

type drawService struct {
	db             *sql.DB
	roundRepo      repositories.RoundRepository
	tournamentRepo repositories.TournamentRepository
	teamRepo       repositories.TeamRepository
	matchRepo      repositories.MatchRepository
	resultRepo     repositories.ResultRepository
	memberRepo     repositories.MemberRepository
	generators     map[models.DrawType]draw.Generator
	hub            *realtime.Hub
	email          *EmailService
	logger         *slog.Logger
}

func NewDrawService(
	db *sql.DB,
	roundRepo repositories.RoundRepository,
	tournamentRepo repositories.TournamentRepository,
	teamRepo repositories.TeamRepository,
	matchRepo repositories.MatchRepository,
	resultRepo repositories.ResultRepository,
	memberRepo repositories.MemberRepository,
	generators []draw.Generator,
	hub *realtime.Hub,
	email *EmailService,
	logger *slog.Logger,
) DrawService {
	byType := make(map[models.DrawType]draw.Generator, len(generators))
	for _, generator := range generators {
		byType[models.DrawType(generator.GetName())] = generator
	}
	return &drawService{
		db:             db,
		roundRepo:      roundRepo,
		tournamentRepo: tournamentRepo,
		teamRepo:       teamRepo,
		matchRepo:      matchRepo,
		resultRepo:     resultRepo,
		memberRepo:     memberRepo,
		generators:     byType,
		hub:            hub,
		email:          email,
		logger:         logger,
	}
}

// drawContext carries everything a draw operation needs about its round.
type drawContext struct {
	round      *models.Round
	tournament *models.Tournament
	teams      []models.Team
}

func (s *drawService) loadContext(ctx context.Context, roundID int) (*drawContext, error) {
	round, err := s.roundRepo.GetByID(ctx, roundID)
	if err != nil {
		if errors.Is(err, repositories.ErrRoundNotFound) {
			return nil, ErrRoundNotFound
		}
		return nil, fmt.Errorf("failed to load round %d: %w", roundID, err)
	}

	tournament, err := s.tournamentRepo.GetByID(ctx, round.TournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load tournament %d: %w", round.TournamentID, err)
	}

	teamPtrs, err := s.teamRepo.ListByTournament(ctx, tournament.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load teams for tournament %d: %w", tournament.ID, err)
	}
	teams := make([]models.Team, 0, len(teamPtrs))
	for _, team := range teamPtrs {
		teams = append(teams, *team)
	}

	return &drawContext{round: round, tournament: tournament, teams: teams}, nil
}

func (s *drawService) generate(ctx context.Context, dc *drawContext, drawType models.DrawType) ([]*draw.ProposedMatch, error) {
	generator, ok := s.generators[drawType]
	if !ok {
		return nil, fmt.Errorf("%w: unknown draw type %q", ErrValidationFailed, drawType)
	}

	params := draw.Params{
		Format:          dc.tournament.Format,
		Teams:           dc.teams,
		TargetRoundSeq:  dc.round.Seq,
		AllowShortMatch: dc.tournament.AllowShortMatch,
	}

	if drawType == models.DrawTypePowerPaired {
		results, err := s.resultRepo.ListPriorByTournament(ctx, dc.tournament.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load prior results for tournament %d: %w", dc.tournament.ID, err)
		}
		params.PriorResults = make([]draw.PriorResult, 0, len(results))
		for _, result := range results {
			params.PriorResults = append(params.PriorResults, draw.PriorResult{
				TeamID:   result.TeamID,
				RoundSeq: result.RoundSeq,
				Points:   result.Points,
			})
		}
	}

	return generator.GenerateDraw(ctx, params)
}

func (s *drawService) Preview(ctx context.Context, roundID int, drawType models.DrawType) ([]*draw.ProposedMatch, error) {
	dc, err := s.loadContext(ctx, roundID)
	if err != nil {
		return nil, err
	}
	return s.generate(ctx, dc, drawType)
}

func (s *drawService) Commit(ctx context.Context, roundID int, drawType models.DrawType) ([]*models.Match, error) {
	dc, err := s.loadContext(ctx, roundID)
	if err != nil {
		return nil, err
	}
	if dc.round.Completed {
		return nil, ErrRoundCompleted
	}

	proposal, err := s.generate(ctx, dc, drawType)
	if err != nil {
		return nil, err
	}

	if err := s.persist(ctx, dc, proposal, models.DrawStatusDraft); err != nil {
		return nil, err
	}
	return s.broadcastAndReload(ctx, dc, "commit")
}

func (s *drawService) CommitProposal(ctx context.Context, roundID int, proposal []*draw.ProposedMatch) ([]*models.Match, error) {
	dc, err := s.loadContext(ctx, roundID)
	if err != nil {
		return nil, err
	}
	if dc.round.Completed {
		return nil, ErrRoundCompleted
	}

	if err := s.validateProposal(dc, proposal); err != nil {
		return nil, err
	}

	if err := s.persist(ctx, dc, proposal, models.DrawStatusConfirmed); err != nil {
		return nil, err
	}
	return s.broadcastAndReload(ctx, dc, "confirm")
}

// validateProposal checks an externally supplied proposal against the
// tournament it targets. Generated proposals skip this: the generator
// cannot produce an invalid one.
func (s *drawService) validateProposal(dc *drawContext, proposal []*draw.ProposedMatch) error {
	if len(proposal) == 0 {
		return fmt.Errorf("%w: proposal has no matches", ErrProposalInvalid)
	}

	groupSize, err := dc.tournament.Format.GroupSize()
	if err != nil {
		return err
	}
	positions, err := dc.tournament.Format.Positions()
	if err != nil {
		return err
	}
	validPositions := make(map[string]bool, len(positions))
	for _, position := range positions {
		validPositions[position] = true
	}

	tournamentTeams := make(map[int]bool, len(dc.teams))
	for _, team := range dc.teams {
		tournamentTeams[team.ID] = true
	}

	seenTeams := make(map[int]bool)
	for _, match := range proposal {
		if len(match.Assignments) < 2 {
			return fmt.Errorf("%w: match %d has fewer than 2 teams", ErrProposalInvalid, match.OrderInRound)
		}
		if len(match.Assignments) > groupSize {
			return fmt.Errorf("%w: match %d has more than %d teams", ErrProposalInvalid, match.OrderInRound, groupSize)
		}
		if len(match.Assignments) < groupSize && !dc.tournament.AllowShortMatch {
			return fmt.Errorf("%w: short matches are disabled for this tournament", ErrProposalInvalid)
		}

		seenPositions := make(map[string]bool, len(match.Assignments))
		for _, assignment := range match.Assignments {
			if !validPositions[assignment.Position] {
				return fmt.Errorf("%w: unknown position %q", ErrProposalInvalid, assignment.Position)
			}
			if seenPositions[assignment.Position] {
				return fmt.Errorf("%w: duplicate position %q in match %d", ErrProposalInvalid, assignment.Position, match.OrderInRound)
			}
			seenPositions[assignment.Position] = true

			if !tournamentTeams[assignment.TeamID] {
				return fmt.Errorf("%w: team %d does not belong to the tournament", ErrProposalInvalid, assignment.TeamID)
			}
			if seenTeams[assignment.TeamID] {
				return fmt.Errorf("%w: team %d appears more than once", ErrProposalInvalid, assignment.TeamID)
			}
			seenTeams[assignment.TeamID] = true
		}
	}
	return nil
}

// persist replaces the round's matches with the proposal in a single
// transaction. Either the whole new draw lands or the old one survives.
func (s *drawService) persist(ctx context.Context, dc *drawContext, proposal []*draw.ProposedMatch, status models.DrawStatus) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if err = s.matchRepo.DeleteByRound(ctx, tx, dc.round.ID); err != nil {
		return fmt.Errorf("failed to clear existing draw for round %d: %w", dc.round.ID, err)
	}

	for _, proposed := range proposal {
		match := &models.Match{
			RoundID:      dc.round.ID,
			OrderInRound: proposed.OrderInRound,
			Short:        proposed.Short,
		}
		if err = s.matchRepo.Create(ctx, tx, match); err != nil {
			return fmt.Errorf("failed to insert match: %w", err)
		}
		for _, assignment := range proposed.Assignments {
			matchTeam := &models.MatchTeam{
				MatchID:  match.ID,
				TeamID:   assignment.TeamID,
				Position: assignment.Position,
			}
			if err = s.matchRepo.CreateMatchTeam(ctx, tx, matchTeam); err != nil {
				return fmt.Errorf("failed to insert match team: %w", err)
			}
		}
	}

	if err = s.roundRepo.UpdateDrawStatus(ctx, tx, dc.round.ID, status); err != nil {
		return fmt.Errorf("failed to update draw status for round %d: %w", dc.round.ID, err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit draw transaction: %w", err)
	}
	return nil
}

func (s *drawService) broadcastAndReload(ctx context.Context, dc *drawContext, event string) ([]*models.Match, error) {
	matches, err := s.matchRepo.ListByRound(ctx, dc.round.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload draw for round %d: %w", dc.round.ID, err)
	}

	s.hub.Broadcast(realtime.ChangeEvent{
		Table:        "draws",
		Event:        event,
		TournamentID: dc.tournament.ID,
		Payload:      map[string]int{"round_id": dc.round.ID},
	})
	return matches, nil
}

func (s *drawService) GetDraw(ctx context.Context, roundID int) ([]*models.Match, error) {
	if _, err := s.roundRepo.GetByID(ctx, roundID); err != nil {
		if errors.Is(err, repositories.ErrRoundNotFound) {
			return nil, ErrRoundNotFound
		}
		return nil, fmt.Errorf("failed to load round %d: %w", roundID, err)
	}

	matches, err := s.matchRepo.ListByRound(ctx, roundID)
	if err != nil {
		return nil, fmt.Errorf("failed to load draw for round %d: %w", roundID, err)
	}
	return matches, nil
}

func (s *drawService) Release(ctx context.Context, roundID int) error {
	dc, err := s.loadContext(ctx, roundID)
	if err != nil {
		return err
	}
	if dc.round.DrawStatus != models.DrawStatusConfirmed {
		return ErrDrawNotConfirmed
	}

	if err := s.roundRepo.UpdateDrawStatus(ctx, nil, roundID, models.DrawStatusReleased); err != nil {
		return fmt.Errorf("failed to release draw for round %d: %w", roundID, err)
	}

	s.hub.Broadcast(realtime.ChangeEvent{
		Table:        "draws",
		Event:        "release",
		TournamentID: dc.tournament.ID,
		Payload:      map[string]int{"round_id": roundID},
	})

	// Notification only; the release itself already succeeded.
	go s.notifyRelease(dc)

	return nil
}

func (s *drawService) notifyRelease(dc *drawContext) {
	members, err := s.memberRepo.ListByTournament(context.Background(), dc.tournament.ID)
	if err != nil {
		s.logger.Warn("failed to load members for release notification",
			slog.Int("tournament_id", dc.tournament.ID), slog.Any("error", err))
		return
	}
	for _, member := range members {
		if member.User == nil || member.User.Email == "" {
			continue
		}
		if err := s.email.SendDrawReleasedEmail(member.User.Email, dc.tournament.Name, dc.round.Seq); err != nil {
			s.logger.Warn("failed to send draw release email",
				slog.String("email", member.User.Email), slog.Any("error", err))
		}
	}
}
