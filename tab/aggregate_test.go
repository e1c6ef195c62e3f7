package tab

import (
	"testing"

	"github.com/debatetab/tab-system/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateMatchScoresSumsCompleteTeams(t *testing.T) {
	scores := []models.SpeakerScore{
		{MemberID: 1, TeamID: 10, Points: 40},
		{MemberID: 2, TeamID: 10, Points: 42},
		{MemberID: 3, TeamID: 20, Points: 38},
		{MemberID: 4, TeamID: 20, Points: 39},
	}

	totals := AggregateMatchScores(scores, 2)
	require.Len(t, totals, 2)
	assert.Equal(t, TeamScore{TeamID: 10, Total: 82, MemberCount: 2}, totals[0])
	assert.Equal(t, TeamScore{TeamID: 20, Total: 77, MemberCount: 2}, totals[1])
}

func TestAggregateMatchScoresExcludesIncompleteTeams(t *testing.T) {
	scores := []models.SpeakerScore{
		{MemberID: 1, TeamID: 10, Points: 40},
		{MemberID: 2, TeamID: 10, Points: 42},
		// Team 20 has only one of two speakers scored.
		{MemberID: 3, TeamID: 20, Points: 38},
	}

	totals := AggregateMatchScores(scores, 2)
	require.Len(t, totals, 1)
	assert.Equal(t, 10, totals[0].TeamID)
}

func TestAggregateMatchScoresIgnoresDuplicateMemberRows(t *testing.T) {
	scores := []models.SpeakerScore{
		{MemberID: 1, TeamID: 10, Points: 40},
		{MemberID: 1, TeamID: 10, Points: 40},
		{MemberID: 2, TeamID: 10, Points: 42},
	}

	totals := AggregateMatchScores(scores, 2)
	require.Len(t, totals, 1)
	assert.Equal(t, float64(82), totals[0].Total)
}

func TestAggregateMatchScoresPreservesFirstAppearanceOrder(t *testing.T) {
	scores := []models.SpeakerScore{
		{MemberID: 5, TeamID: 30, Points: 35},
		{MemberID: 1, TeamID: 10, Points: 40},
		{MemberID: 6, TeamID: 30, Points: 36},
		{MemberID: 2, TeamID: 10, Points: 41},
	}

	totals := AggregateMatchScores(scores, 2)
	require.Len(t, totals, 2)
	assert.Equal(t, 30, totals[0].TeamID)
	assert.Equal(t, 10, totals[1].TeamID)
}

func TestAggregateMatchScoresEmptyInput(t *testing.T) {
	totals := AggregateMatchScores(nil, 2)
	assert.Empty(t, totals)
}
