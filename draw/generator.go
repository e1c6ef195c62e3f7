package draw

import (
	"context"
	"errors"

	"github.com/debatetab/tab-system/models"
)

var ErrInsufficientTeams = errors.New("not enough teams to generate a draw (minimum 2)")

// PriorResult is one team's outcome in an earlier round, used by
// power pairing to order teams before grouping.
type PriorResult struct {
	TeamID   int
	RoundSeq int
	Points   int
}

type Params struct {
	Format models.TournamentFormat
	// Teams in roster order. Roster order is the stable tie-break for
	// power pairing, so repeated runs with unchanged inputs reproduce
	// the same draw.
	Teams []models.Team
	// TargetRoundSeq bounds which prior results count: only rounds with
	// Seq strictly below it contribute points.
	TargetRoundSeq int
	PriorResults   []PriorResult
	// AllowShortMatch keeps a trailing group of 2..groupSize-1 teams as
	// an under-full debate instead of dropping it.
	AllowShortMatch bool
}

// Assignment pairs a team with its position within one debate.
type Assignment struct {
	TeamID   int    `json:"team_id"`
	Position string `json:"position"`
}

// ProposedMatch is one debate of a draw proposal. Nothing is persisted
// until a caller commits the proposal.
type ProposedMatch struct {
	OrderInRound int          `json:"order_in_round"`
	Short        bool         `json:"short"`
	Assignments  []Assignment `json:"assignments"`
}

type Generator interface {
	GenerateDraw(ctx context.Context, params Params) ([]*ProposedMatch, error)

	GetName() string
}

// group chops an ordered team list into debates of the format's group
// size and assigns positions in order. Shared by all generators: the
// only thing a generator decides is the ordering of teams.
func group(ordered []models.Team, format models.TournamentFormat, allowShort bool) ([]*ProposedMatch, error) {
	groupSize, err := format.GroupSize()
	if err != nil {
		return nil, err
	}
	positions, err := format.Positions()
	if err != nil {
		return nil, err
	}

	matches := make([]*ProposedMatch, 0, len(ordered)/groupSize+1)
	for start := 0; start < len(ordered); start += groupSize {
		end := start + groupSize
		if end > len(ordered) {
			end = len(ordered)
		}
		chunk := ordered[start:end]

		// A single leftover team cannot debate anyone.
		if len(chunk) < 2 {
			break
		}
		short := len(chunk) < groupSize
		if short && !allowShort {
			break
		}

		match := &ProposedMatch{
			OrderInRound: len(matches) + 1,
			Short:        short,
			Assignments:  make([]Assignment, 0, len(chunk)),
		}
		for i, team := range chunk {
			match.Assignments = append(match.Assignments, Assignment{
				TeamID:   team.ID,
				Position: positions[i],
			})
		}
		matches = append(matches, match)
	}

	return matches, nil
}
