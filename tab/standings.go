package tab

import (
	"math"
	"sort"

	"github.com/debatetab/tab-system/models"
)

// TeamStandingsInput carries everything team standings need. Scores
// must have TeamID populated (joined through members).
type TeamStandingsInput struct {
	Teams   []models.Team
	Results []models.Result
	Scores  []models.SpeakerScore
}

// ComputeTeamStandings aggregates all persisted results of a tournament
// into per-team standings. Sort order: total points descending, then
// average speaker score descending, then team ID ascending. Rank is the
// 1-based position in that order; it is derived here, never stored.
func ComputeTeamStandings(input TeamStandingsInput) []models.TeamStanding {
	type teamAgg struct {
		points       int
		matches      map[int]struct{}
		speakerTotal float64
	}

	aggregates := make(map[int]*teamAgg, len(input.Teams))
	for _, team := range input.Teams {
		aggregates[team.ID] = &teamAgg{matches: make(map[int]struct{})}
	}

	for _, result := range input.Results {
		agg, ok := aggregates[result.TeamID]
		if !ok {
			continue
		}
		agg.points += result.Points
		agg.matches[result.MatchID] = struct{}{}
	}

	// Speaker scores only count toward matches the team has a result
	// in, so an unresolved match never skews the averages.
	for _, score := range input.Scores {
		agg, ok := aggregates[score.TeamID]
		if !ok {
			continue
		}
		if _, resolved := agg.matches[score.MatchID]; !resolved {
			continue
		}
		agg.speakerTotal += score.Points
	}

	standings := make([]models.TeamStanding, 0, len(input.Teams))
	for _, team := range input.Teams {
		agg := aggregates[team.ID]
		standing := models.TeamStanding{
			TeamID:            team.ID,
			TeamName:          team.Name,
			Institution:       team.Institution,
			TotalPoints:       agg.points,
			MatchesPlayed:     len(agg.matches),
			TotalSpeakerScore: agg.speakerTotal,
		}
		if standing.MatchesPlayed > 0 {
			standing.AverageSpeakerScore = agg.speakerTotal / float64(standing.MatchesPlayed)
		}
		standings = append(standings, standing)
	}

	sort.SliceStable(standings, func(i, j int) bool {
		if standings[i].TotalPoints != standings[j].TotalPoints {
			return standings[i].TotalPoints > standings[j].TotalPoints
		}
		if standings[i].AverageSpeakerScore != standings[j].AverageSpeakerScore {
			return standings[i].AverageSpeakerScore > standings[j].AverageSpeakerScore
		}
		return standings[i].TeamID < standings[j].TeamID
	})
	for i := range standings {
		standings[i].Rank = i + 1
	}

	return standings
}

// SpeakerStandingsInput carries everything speaker standings need.
type SpeakerStandingsInput struct {
	Members []models.Member
	Scores  []models.SpeakerScore
}

// ComputeSpeakerStandings aggregates all speaker scores of a tournament
// into per-speaker standings. Rounds participated counts distinct
// rounds; the standard deviation is the population formula over the
// speaker's per-round totals, defined as 0 for one round or fewer.
// Sort order: total points descending, then member ID ascending.
func ComputeSpeakerStandings(input SpeakerStandingsInput) []models.SpeakerStanding {
	perRound := make(map[int]map[int]float64, len(input.Members))
	for _, member := range input.Members {
		perRound[member.ID] = make(map[int]float64)
	}

	for _, score := range input.Scores {
		rounds, ok := perRound[score.MemberID]
		if !ok {
			continue
		}
		rounds[score.RoundID] += score.Points
	}

	standings := make([]models.SpeakerStanding, 0, len(input.Members))
	for _, member := range input.Members {
		rounds := perRound[member.ID]

		var total float64
		for _, points := range rounds {
			total += points
		}

		standing := models.SpeakerStanding{
			MemberID:           member.ID,
			TotalPoints:        total,
			RoundsParticipated: len(rounds),
		}
		if member.User != nil {
			standing.SpeakerName = member.User.FullName
		}
		if member.Team != nil {
			standing.TeamName = member.Team.Name
			standing.Institution = member.Team.Institution
		}
		if standing.RoundsParticipated > 0 {
			standing.AveragePoints = total / float64(standing.RoundsParticipated)
		}
		if standing.RoundsParticipated > 1 {
			mean := standing.AveragePoints
			var sumSquares float64
			for _, points := range rounds {
				diff := points - mean
				sumSquares += diff * diff
			}
			standing.StandardDeviation = math.Sqrt(sumSquares / float64(standing.RoundsParticipated))
		}
		standings = append(standings, standing)
	}

	sort.SliceStable(standings, func(i, j int) bool {
		if standings[i].TotalPoints != standings[j].TotalPoints {
			return standings[i].TotalPoints > standings[j].TotalPoints
		}
		return standings[i].MemberID < standings[j].MemberID
	})
	for i := range standings {
		standings[i].Rank = i + 1
	}

	return standings
}
