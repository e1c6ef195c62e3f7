package tab

import (
	"testing"

	"github.com/debatetab/tab-system/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveRanksBPDebate(t *testing.T) {
	totals := []TeamScore{
		{TeamID: 1, Total: 82, MemberCount: 2},
		{TeamID: 2, Total: 77, MemberCount: 2},
		{TeamID: 3, Total: 89, MemberCount: 2},
		{TeamID: 4, Total: 63, MemberCount: 2},
	}

	results, err := ResolveRanks(100, totals, models.FormatBP)
	require.NoError(t, err)
	require.Len(t, results, 4)

	byTeam := make(map[int]models.Result, len(results))
	for _, result := range results {
		assert.Equal(t, 100, result.MatchID)
		byTeam[result.TeamID] = result
	}

	assert.Equal(t, 1, byTeam[3].Rank)
	assert.Equal(t, 3, byTeam[3].Points)
	assert.Equal(t, 2, byTeam[1].Rank)
	assert.Equal(t, 2, byTeam[1].Points)
	assert.Equal(t, 3, byTeam[2].Rank)
	assert.Equal(t, 1, byTeam[2].Points)
	assert.Equal(t, 4, byTeam[4].Rank)
	assert.Equal(t, 0, byTeam[4].Points)
}

func TestResolveRanksTieKeepsAggregationOrder(t *testing.T) {
	totals := []TeamScore{
		{TeamID: 7, Total: 80},
		{TeamID: 3, Total: 80},
	}

	results, err := ResolveRanks(1, totals, models.FormatAP)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, 7, results[0].TeamID)
	assert.Equal(t, 1, results[0].Rank)
	assert.Equal(t, 3, results[0].Points)
	assert.Equal(t, 3, results[1].TeamID)
	assert.Equal(t, 2, results[1].Rank)
	assert.Equal(t, 2, results[1].Points)
}

func TestResolveRanksIncomplete(t *testing.T) {
	_, err := ResolveRanks(1, []TeamScore{{TeamID: 1, Total: 80}}, models.FormatBP)
	assert.ErrorIs(t, err, ErrIncompleteScores)

	_, err = ResolveRanks(1, nil, models.FormatBP)
	assert.ErrorIs(t, err, ErrIncompleteScores)
}

func TestResolveRanksUnknownFormat(t *testing.T) {
	totals := []TeamScore{{TeamID: 1, Total: 80}, {TeamID: 2, Total: 70}}
	_, err := ResolveRanks(1, totals, models.TournamentFormat("LD"))
	assert.ErrorIs(t, err, models.ErrUnknownFormat)
}

func TestResolveRanksDoesNotMutateInput(t *testing.T) {
	totals := []TeamScore{
		{TeamID: 1, Total: 60},
		{TeamID: 2, Total: 90},
	}

	_, err := ResolveRanks(1, totals, models.FormatAP)
	require.NoError(t, err)

	assert.Equal(t, 1, totals[0].TeamID)
	assert.Equal(t, 2, totals[1].TeamID)
}

func TestResolveRanksIdempotent(t *testing.T) {
	totals := []TeamScore{
		{TeamID: 1, Total: 82},
		{TeamID: 2, Total: 77},
		{TeamID: 3, Total: 89},
	}

	first, err := ResolveRanks(5, totals, models.FormatBP)
	require.NoError(t, err)
	second, err := ResolveRanks(5, totals, models.FormatBP)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
