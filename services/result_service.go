package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/debatetab/tab-system/models"
	"github.com/debatetab/tab-system/realtime"
	"github.com/debatetab/tab-system/repositories"
	"github.com/debatetab/tab-system/tab"
)

type SubmitScoreInput struct {
	MemberID int     `json:"member_id"`
	MatchID  int     `json:"match_id"`
	Points   float64 `json:"points"`
}

// SubmitScoreOutput reports the stored score and whether the match could
// already be resolved. Resolved stays false while teammates are still
// unscored; that is the normal intermediate state, not a failure.
type SubmitScoreOutput struct {
	Score    *models.SpeakerScore `json:"score"`
	Resolved bool                 `json:"resolved"`
	Results  []models.Result      `json:"results,omitempty"`
}

type ResultService interface {
	// SubmitScore upserts the speaker's score for the match and retries
	// result resolution. Resubmitting overwrites the earlier value and
	// converges the match's results.
	SubmitScore(ctx context.Context, input SubmitScoreInput) (*SubmitScoreOutput, error)
	// ResolveMatch recomputes the match's results from its current
	// scores and replaces the stored rows atomically. Returns
	// tab.ErrIncompleteScores when fewer than 2 teams are fully scored.
	ResolveMatch(ctx context.Context, matchID int) ([]models.Result, error)
	ListByMatch(ctx context.Context, matchID int) ([]models.Result, error)
	ListByRound(ctx context.Context, roundID int) ([]models.Result, error)
	// ResolvePendingForRound resolves every match of the round that has
	// complete scores but no current results yet. Incomplete matches
	// are skipped silently.
	ResolvePendingForRound(ctx context.Context, roundID int) (int, error)
}

type resultService struct {
	db         *sql.DB
	matchRepo  repositories.MatchRepository
	memberRepo repositories.MemberRepository
	roundRepo  repositories.RoundRepository
	tournRepo  repositories.TournamentRepository
	scoreRepo  repositories.ScoreRepository
	resultRepo repositories.ResultRepository
	hub        *realtime.Hub
	logger     *slog.Logger
}

func NewResultService(
	db *sql.DB,
	matchRepo repositories.MatchRepository,
	memberRepo repositories.MemberRepository,
	roundRepo repositories.RoundRepository,
	tournRepo repositories.TournamentRepository,
	scoreRepo repositories.ScoreRepository,
	resultRepo repositories.ResultRepository,
	hub *realtime.Hub,
	logger *slog.Logger,
) ResultService {
	return &resultService{
		db:         db,
		matchRepo:  matchRepo,
		memberRepo: memberRepo,
		roundRepo:  roundRepo,
		tournRepo:  tournRepo,
		scoreRepo:  scoreRepo,
		resultRepo: resultRepo,
		hub:        hub,
		logger:     logger,
	}
}

// matchContext bundles a match with its round and tournament, the chain
// every resolution needs for the format and the broadcast room.
type matchContext struct {
	match      *models.Match
	round      *models.Round
	tournament *models.Tournament
}

func (s *resultService) loadMatchContext(ctx context.Context, matchID int) (*matchContext, error) {
	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to load match %d: %w", matchID, err)
	}

	round, err := s.roundRepo.GetByID(ctx, match.RoundID)
	if err != nil {
		return nil, fmt.Errorf("failed to load round %d: %w", match.RoundID, err)
	}

	tournament, err := s.tournRepo.GetByID(ctx, round.TournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load tournament %d: %w", round.TournamentID, err)
	}

	return &matchContext{match: match, round: round, tournament: tournament}, nil
}

func (s *resultService) SubmitScore(ctx context.Context, input SubmitScoreInput) (*SubmitScoreOutput, error) {
	if input.Points < models.SpeakerScoreMin || input.Points > models.SpeakerScoreMax {
		return nil, ErrScoreOutOfRange
	}

	if _, err := s.memberRepo.GetByID(ctx, input.MemberID); err != nil {
		if errors.Is(err, repositories.ErrMemberNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to load member %d: %w", input.MemberID, err)
	}

	mc, err := s.loadMatchContext(ctx, input.MatchID)
	if err != nil {
		return nil, err
	}
	if mc.round.Completed {
		return nil, ErrRoundCompleted
	}

	score := &models.SpeakerScore{
		MemberID: input.MemberID,
		MatchID:  input.MatchID,
		RoundID:  mc.match.RoundID,
		Points:   input.Points,
	}
	if err := s.scoreRepo.Upsert(ctx, score); err != nil {
		return nil, fmt.Errorf("failed to store speaker score: %w", err)
	}

	s.hub.Broadcast(realtime.ChangeEvent{
		Table:        "speaker_scores",
		Event:        "upsert",
		TournamentID: mc.tournament.ID,
		Payload:      map[string]int{"match_id": input.MatchID},
	})

	output := &SubmitScoreOutput{Score: score}

	results, err := s.resolve(ctx, mc)
	if err != nil {
		if errors.Is(err, tab.ErrIncompleteScores) {
			return output, nil
		}
		return nil, err
	}
	output.Resolved = true
	output.Results = results
	return output, nil
}

func (s *resultService) ResolveMatch(ctx context.Context, matchID int) ([]models.Result, error) {
	mc, err := s.loadMatchContext(ctx, matchID)
	if err != nil {
		return nil, err
	}
	return s.resolve(ctx, mc)
}

// resolve recomputes ranked results from the match's current scores and
// replaces the stored set in one transaction.
func (s *resultService) resolve(ctx context.Context, mc *matchContext) ([]models.Result, error) {
	scores, err := s.scoreRepo.ListByMatch(ctx, mc.match.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load scores for match %d: %w", mc.match.ID, err)
	}

	speakersPerTeam, err := mc.tournament.Format.SpeakersPerTeam()
	if err != nil {
		return nil, err
	}

	totals := tab.AggregateMatchScores(scores, speakersPerTeam)
	results, err := tab.ResolveRanks(mc.match.ID, totals, mc.tournament.Format)
	if err != nil {
		return nil, err
	}

	if err := s.replaceResults(ctx, mc.match.ID, results); err != nil {
		return nil, err
	}

	s.hub.Broadcast(realtime.ChangeEvent{
		Table:        "results",
		Event:        "resolve",
		TournamentID: mc.tournament.ID,
		Payload:      map[string]int{"match_id": mc.match.ID},
	})
	return results, nil
}

func (s *resultService) replaceResults(ctx context.Context, matchID int, results []models.Result) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if err = s.resultRepo.DeleteByMatch(ctx, tx, matchID); err != nil {
		return fmt.Errorf("failed to clear results for match %d: %w", matchID, err)
	}
	for i := range results {
		if err = s.resultRepo.Create(ctx, tx, &results[i]); err != nil {
			return fmt.Errorf("failed to insert result for match %d: %w", matchID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit result transaction: %w", err)
	}
	return nil
}

func (s *resultService) ListByMatch(ctx context.Context, matchID int) ([]models.Result, error) {
	results, err := s.resultRepo.ListByMatch(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list results for match %d: %w", matchID, err)
	}
	return results, nil
}

func (s *resultService) ListByRound(ctx context.Context, roundID int) ([]models.Result, error) {
	if _, err := s.roundRepo.GetByID(ctx, roundID); err != nil {
		if errors.Is(err, repositories.ErrRoundNotFound) {
			return nil, ErrRoundNotFound
		}
		return nil, fmt.Errorf("failed to load round %d: %w", roundID, err)
	}

	matchIDs, err := s.matchRepo.ListIDsByRound(ctx, roundID)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches for round %d: %w", roundID, err)
	}

	results := make([]models.Result, 0)
	for _, matchID := range matchIDs {
		matchResults, err := s.resultRepo.ListByMatch(ctx, matchID)
		if err != nil {
			return nil, fmt.Errorf("failed to list results for match %d: %w", matchID, err)
		}
		results = append(results, matchResults...)
	}
	return results, nil
}

func (s *resultService) ResolvePendingForRound(ctx context.Context, roundID int) (int, error) {
	matchIDs, err := s.matchRepo.ListIDsByRound(ctx, roundID)
	if err != nil {
		return 0, fmt.Errorf("failed to list matches for round %d: %w", roundID, err)
	}

	resolved := 0
	for _, matchID := range matchIDs {
		existing, err := s.resultRepo.ListByMatch(ctx, matchID)
		if err != nil {
			return resolved, fmt.Errorf("failed to check results for match %d: %w", matchID, err)
		}
		if len(existing) > 0 {
			continue
		}

		if _, err := s.ResolveMatch(ctx, matchID); err != nil {
			if errors.Is(err, tab.ErrIncompleteScores) {
				continue
			}
			s.logger.Error("failed to resolve match",
				slog.Int("match_id", matchID), slog.Any("error", err))
			continue
		}
		resolved++
	}
	return resolved, nil
}
