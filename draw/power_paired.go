package draw

import (
	"context"
	"sort"

	"github.com/debatetab/tab-system/models"
)

type PowerPairedGenerator struct{}

// NewPowerPairedGenerator returns a draw generator that groups teams by
// accumulated points, so the top bracket debates together. Fully
// deterministic: no randomness in this mode.
func NewPowerPairedGenerator() Generator {
	return &PowerPairedGenerator{}
}

func (g *PowerPairedGenerator) GetName() string {
	return "power_paired"
}

func (g *PowerPairedGenerator) GenerateDraw(ctx context.Context, params Params) ([]*ProposedMatch, error) {
	if len(params.Teams) < 2 {
		return nil, ErrInsufficientTeams
	}

	// Sum points from rounds strictly before the target round. Teams
	// without prior results stay at 0.
	totals := make(map[int]int, len(params.Teams))
	for _, prior := range params.PriorResults {
		if prior.RoundSeq >= params.TargetRoundSeq {
			continue
		}
		totals[prior.TeamID] += prior.Points
	}

	ordered := make([]models.Team, len(params.Teams))
	copy(ordered, params.Teams)

	// Stable sort keeps roster order among equal totals, which makes
	// repeated runs with unchanged inputs reproducible.
	sort.SliceStable(ordered, func(i, j int) bool {
		return totals[ordered[i].ID] > totals[ordered[j].ID]
	})

	return group(ordered, params.Format, params.AllowShortMatch)
}
