package tab

import (
	"errors"
	"sort"

	"github.com/debatetab/tab-system/models"
)

// ErrIncompleteScores signals that a match does not yet have enough
// fully scored teams to rank. It is an expected intermediate state
// while judges are still submitting, not a failure.
var ErrIncompleteScores = errors.New("match does not have enough complete team scores to rank")

// ResolveRanks converts per-team totals for one match into ranked
// results with tournament points from the format's point table.
//
// Ties on total keep the aggregation order (first appearance in the
// match's score set), so resolution is deterministic and re-running it
// with unchanged scores yields identical results.
func ResolveRanks(matchID int, totals []TeamScore, format models.TournamentFormat) ([]models.Result, error) {
	if !format.Valid() {
		return nil, models.ErrUnknownFormat
	}
	if len(totals) < 2 {
		return nil, ErrIncompleteScores
	}

	ranked := make([]TeamScore, len(totals))
	copy(ranked, totals)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Total > ranked[j].Total
	})

	results := make([]models.Result, 0, len(ranked))
	for i, ts := range ranked {
		rank := i + 1
		points, err := format.PointsForRank(rank)
		if err != nil {
			return nil, err
		}
		results = append(results, models.Result{
			MatchID: matchID,
			TeamID:  ts.TeamID,
			Rank:    rank,
			Points:  points,
		})
	}

	return results, nil
}
