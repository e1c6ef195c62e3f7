// Package tab computes debate results and tournament standings from raw
// speaker scores. Everything here is a pure function of its inputs:
// persistence and retriggering live in the service layer.
package tab

import "github.com/debatetab/tab-system/models"

// TeamScore is one team's aggregated speaker total for a single match.
type TeamScore struct {
	TeamID      int
	Total       float64
	MemberCount int
}

// AggregateMatchScores reduces the complete set of speaker scores for
// one match to per-team totals. A team counts only when the number of
// distinct scored members equals speakersPerTeam; partially scored
// teams are excluded entirely rather than aggregated short.
//
// Output order follows the first appearance of each team in the input,
// which downstream ranking uses as its stable tie-break.
func AggregateMatchScores(scores []models.SpeakerScore, speakersPerTeam int) []TeamScore {
	type teamAgg struct {
		total   float64
		members map[int]struct{}
	}

	byTeam := make(map[int]*teamAgg)
	order := make([]int, 0)

	for _, score := range scores {
		agg, ok := byTeam[score.TeamID]
		if !ok {
			agg = &teamAgg{members: make(map[int]struct{})}
			byTeam[score.TeamID] = agg
			order = append(order, score.TeamID)
		}
		if _, seen := agg.members[score.MemberID]; seen {
			// Upsert semantics upstream guarantee one row per
			// (member, match); a duplicate here would double-count.
			continue
		}
		agg.members[score.MemberID] = struct{}{}
		agg.total += score.Points
	}

	totals := make([]TeamScore, 0, len(order))
	for _, teamID := range order {
		agg := byTeam[teamID]
		if len(agg.members) != speakersPerTeam {
			continue
		}
		totals = append(totals, TeamScore{
			TeamID:      teamID,
			Total:       agg.total,
			MemberCount: len(agg.members),
		})
	}

	return totals
}
