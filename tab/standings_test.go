package tab

import (
	"math"
	"testing"

	"github.com/debatetab/tab-system/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestComputeTeamStandingsTotalsAndOrder(t *testing.T) {
	input := TeamStandingsInput{
		Teams: []models.Team{
			{ID: 1, Name: "Alpha", Institution: strPtr("Uni A")},
			{ID: 2, Name: "Beta"},
			{ID: 3, Name: "Gamma"},
		},
		Results: []models.Result{
			{MatchID: 10, TeamID: 1, Rank: 1, Points: 3},
			{MatchID: 10, TeamID: 2, Rank: 2, Points: 2},
			{MatchID: 11, TeamID: 1, Rank: 2, Points: 2},
			{MatchID: 11, TeamID: 3, Rank: 1, Points: 3},
		},
		Scores: []models.SpeakerScore{
			{MemberID: 1, MatchID: 10, TeamID: 1, Points: 40},
			{MemberID: 2, MatchID: 10, TeamID: 1, Points: 42},
			{MemberID: 3, MatchID: 10, TeamID: 2, Points: 38},
			{MemberID: 4, MatchID: 10, TeamID: 2, Points: 39},
			{MemberID: 1, MatchID: 11, TeamID: 1, Points: 41},
			{MemberID: 2, MatchID: 11, TeamID: 1, Points: 37},
			{MemberID: 5, MatchID: 11, TeamID: 3, Points: 44},
			{MemberID: 6, MatchID: 11, TeamID: 3, Points: 45},
		},
	}

	standings := ComputeTeamStandings(input)
	require.Len(t, standings, 3)

	// Alpha: 5 points over 2 matches, 160 speaks.
	assert.Equal(t, 1, standings[0].Rank)
	assert.Equal(t, 1, standings[0].TeamID)
	assert.Equal(t, 5, standings[0].TotalPoints)
	assert.Equal(t, 2, standings[0].MatchesPlayed)
	assert.InDelta(t, 160.0, standings[0].TotalSpeakerScore, 1e-9)
	assert.InDelta(t, 80.0, standings[0].AverageSpeakerScore, 1e-9)

	// Gamma (3 pts, avg 89) beats Beta (2 pts).
	assert.Equal(t, 3, standings[1].TeamID)
	assert.Equal(t, 2, standings[2].TeamID)
}

func TestComputeTeamStandingsAverageBreaksPointTies(t *testing.T) {
	input := TeamStandingsInput{
		Teams: []models.Team{{ID: 1}, {ID: 2}},
		Results: []models.Result{
			{MatchID: 10, TeamID: 1, Points: 3},
			{MatchID: 11, TeamID: 2, Points: 3},
		},
		Scores: []models.SpeakerScore{
			{MemberID: 1, MatchID: 10, TeamID: 1, Points: 70},
			{MemberID: 2, MatchID: 11, TeamID: 2, Points: 90},
		},
	}

	standings := ComputeTeamStandings(input)
	require.Len(t, standings, 2)
	assert.Equal(t, 2, standings[0].TeamID)
	assert.Equal(t, 1, standings[1].TeamID)
}

func TestComputeTeamStandingsFullTieFallsBackToTeamID(t *testing.T) {
	input := TeamStandingsInput{
		Teams: []models.Team{{ID: 9}, {ID: 4}},
	}

	standings := ComputeTeamStandings(input)
	require.Len(t, standings, 2)
	assert.Equal(t, 4, standings[0].TeamID)
	assert.Equal(t, 9, standings[1].TeamID)
}

func TestComputeTeamStandingsIgnoresUnresolvedMatchScores(t *testing.T) {
	input := TeamStandingsInput{
		Teams: []models.Team{{ID: 1}},
		Results: []models.Result{
			{MatchID: 10, TeamID: 1, Points: 3},
		},
		Scores: []models.SpeakerScore{
			{MemberID: 1, MatchID: 10, TeamID: 1, Points: 40},
			// Match 99 has no result yet; its speaks must not count.
			{MemberID: 1, MatchID: 99, TeamID: 1, Points: 75},
		},
	}

	standings := ComputeTeamStandings(input)
	require.Len(t, standings, 1)
	assert.InDelta(t, 40.0, standings[0].TotalSpeakerScore, 1e-9)
	assert.Equal(t, 1, standings[0].MatchesPlayed)
}

func TestComputeTeamStandingsNoMatchesPlayed(t *testing.T) {
	standings := ComputeTeamStandings(TeamStandingsInput{
		Teams: []models.Team{{ID: 1, Name: "Idle"}},
	})
	require.Len(t, standings, 1)
	assert.Zero(t, standings[0].TotalPoints)
	assert.Zero(t, standings[0].MatchesPlayed)
	assert.Zero(t, standings[0].AverageSpeakerScore)
}

func speakerMember(id int, name string) models.Member {
	return models.Member{
		ID:   id,
		User: &models.User{FullName: name},
		Team: &models.Team{Name: "Team"},
	}
}

func TestComputeSpeakerStandingsTotalsAndDeviation(t *testing.T) {
	input := SpeakerStandingsInput{
		Members: []models.Member{
			speakerMember(1, "Ann"),
			speakerMember(2, "Bob"),
		},
		Scores: []models.SpeakerScore{
			{MemberID: 1, RoundID: 1, Points: 70},
			{MemberID: 1, RoundID: 2, Points: 80},
			{MemberID: 2, RoundID: 1, Points: 75},
		},
	}

	standings := ComputeSpeakerStandings(input)
	require.Len(t, standings, 2)

	ann := standings[0]
	assert.Equal(t, 1, ann.MemberID)
	assert.Equal(t, 1, ann.Rank)
	assert.InDelta(t, 150.0, ann.TotalPoints, 1e-9)
	assert.Equal(t, 2, ann.RoundsParticipated)
	assert.InDelta(t, 75.0, ann.AveragePoints, 1e-9)
	// Population stddev of {70, 80} is 5.
	assert.InDelta(t, 5.0, ann.StandardDeviation, 1e-9)
	assert.Equal(t, "Ann", ann.SpeakerName)

	bob := standings[1]
	assert.Equal(t, 2, bob.MemberID)
	assert.Equal(t, 1, bob.RoundsParticipated)
	assert.Zero(t, bob.StandardDeviation)
}

func TestComputeSpeakerStandingsSingleRoundNoDeviation(t *testing.T) {
	input := SpeakerStandingsInput{
		Members: []models.Member{speakerMember(1, "Solo")},
		Scores: []models.SpeakerScore{
			{MemberID: 1, RoundID: 1, Points: 68},
		},
	}

	standings := ComputeSpeakerStandings(input)
	require.Len(t, standings, 1)
	assert.Zero(t, standings[0].StandardDeviation)
	assert.InDelta(t, 68.0, standings[0].AveragePoints, 1e-9)
}

func TestComputeSpeakerStandingsNoScores(t *testing.T) {
	input := SpeakerStandingsInput{
		Members: []models.Member{speakerMember(1, "Fresh")},
	}

	standings := ComputeSpeakerStandings(input)
	require.Len(t, standings, 1)
	assert.Zero(t, standings[0].TotalPoints)
	assert.Zero(t, standings[0].RoundsParticipated)
	assert.Zero(t, standings[0].AveragePoints)
	assert.False(t, math.IsNaN(standings[0].AveragePoints))
}

func TestComputeSpeakerStandingsTieBreaksByMemberID(t *testing.T) {
	input := SpeakerStandingsInput{
		Members: []models.Member{
			speakerMember(8, "Late"),
			speakerMember(2, "Early"),
		},
		Scores: []models.SpeakerScore{
			{MemberID: 8, RoundID: 1, Points: 70},
			{MemberID: 2, RoundID: 1, Points: 70},
		},
	}

	standings := ComputeSpeakerStandings(input)
	require.Len(t, standings, 2)
	assert.Equal(t, 2, standings[0].MemberID)
	assert.Equal(t, 8, standings[1].MemberID)
}

func TestComputeSpeakerStandingsSumsWithinRound(t *testing.T) {
	// Two matches in the same round both count toward that round's
	// total for the deviation calculation.
	input := SpeakerStandingsInput{
		Members: []models.Member{speakerMember(1, "Busy")},
		Scores: []models.SpeakerScore{
			{MemberID: 1, RoundID: 1, MatchID: 10, Points: 30},
			{MemberID: 1, RoundID: 1, MatchID: 11, Points: 40},
		},
	}

	standings := ComputeSpeakerStandings(input)
	require.Len(t, standings, 1)
	assert.Equal(t, 1, standings[0].RoundsParticipated)
	assert.InDelta(t, 70.0, standings[0].TotalPoints, 1e-9)
}
