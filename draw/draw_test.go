package draw

import (
	"context"
	"math/rand"
	"testing"

	"github.com/debatetab/tab-system/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeTeams(n int) []models.Team {
	teams := make([]models.Team, 0, n)
	for i := 1; i <= n; i++ {
		teams = append(teams, models.Team{ID: i})
	}
	return teams
}

func assignedTeamIDs(t *testing.T, matches []*ProposedMatch) []int {
	t.Helper()
	ids := make([]int, 0)
	for _, match := range matches {
		for _, assignment := range match.Assignments {
			ids = append(ids, assignment.TeamID)
		}
	}
	return ids
}

func TestRandomDrawPartitionsAllTeams(t *testing.T) {
	gen := NewRandomGenerator(rand.New(rand.NewSource(1)))

	matches, err := gen.GenerateDraw(context.Background(), Params{
		Format:          models.FormatBP,
		Teams:           makeTeams(8),
		AllowShortMatch: true,
	})
	require.NoError(t, err)
	require.Len(t, matches, 2)

	seen := make(map[int]bool)
	for _, match := range matches {
		assert.Len(t, match.Assignments, 4)
		assert.False(t, match.Short)

		positions := make(map[string]bool)
		for _, a := range match.Assignments {
			assert.False(t, seen[a.TeamID], "team %d assigned twice", a.TeamID)
			seen[a.TeamID] = true
			assert.False(t, positions[a.Position], "position %s duplicated", a.Position)
			positions[a.Position] = true
		}
	}
	assert.Len(t, seen, 8)
}

func TestRandomDrawSeededReproducibility(t *testing.T) {
	params := Params{
		Format:          models.FormatAP,
		Teams:           makeTeams(6),
		AllowShortMatch: true,
	}

	first, err := NewRandomGenerator(rand.New(rand.NewSource(42))).GenerateDraw(context.Background(), params)
	require.NoError(t, err)
	second, err := NewRandomGenerator(rand.New(rand.NewSource(42))).GenerateDraw(context.Background(), params)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRandomDrawInsufficientTeams(t *testing.T) {
	gen := NewRandomGenerator(rand.New(rand.NewSource(1)))

	_, err := gen.GenerateDraw(context.Background(), Params{
		Format: models.FormatBP,
		Teams:  makeTeams(1),
	})
	assert.ErrorIs(t, err, ErrInsufficientTeams)
}

func TestRandomDrawUnknownFormat(t *testing.T) {
	gen := NewRandomGenerator(rand.New(rand.NewSource(1)))

	_, err := gen.GenerateDraw(context.Background(), Params{
		Format: models.TournamentFormat("WSDC"),
		Teams:  makeTeams(4),
	})
	assert.ErrorIs(t, err, models.ErrUnknownFormat)
}

func TestShortMatchTrailingChunk(t *testing.T) {
	// 6 teams in BP: one full debate of 4 and a trailing pair.
	gen := NewPowerPairedGenerator()

	matches, err := gen.GenerateDraw(context.Background(), Params{
		Format:          models.FormatBP,
		Teams:           makeTeams(6),
		TargetRoundSeq:  1,
		AllowShortMatch: true,
	})
	require.NoError(t, err)
	require.Len(t, matches, 2)

	assert.False(t, matches[0].Short)
	assert.Len(t, matches[0].Assignments, 4)
	assert.True(t, matches[1].Short)
	assert.Len(t, matches[1].Assignments, 2)
	assert.Equal(t, "OG", matches[1].Assignments[0].Position)
	assert.Equal(t, "OO", matches[1].Assignments[1].Position)
}

func TestShortMatchDisabledDropsTrailingChunk(t *testing.T) {
	gen := NewPowerPairedGenerator()

	matches, err := gen.GenerateDraw(context.Background(), Params{
		Format:          models.FormatBP,
		Teams:           makeTeams(6),
		TargetRoundSeq:  1,
		AllowShortMatch: false,
	})
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Len(t, matches[0].Assignments, 4)
}

func TestSingleLeftoverTeamDropped(t *testing.T) {
	gen := NewPowerPairedGenerator()

	matches, err := gen.GenerateDraw(context.Background(), Params{
		Format:          models.FormatAP,
		Teams:           makeTeams(5),
		TargetRoundSeq:  1,
		AllowShortMatch: true,
	})
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.NotContains(t, assignedTeamIDs(t, matches), 5)
}

func TestPowerPairedOrdersByPriorPoints(t *testing.T) {
	gen := NewPowerPairedGenerator()

	// Round 1 gave T1..T4 a clean 3/2/1/0 split. T5..T8 have nothing
	// yet and keep roster order behind them.
	matches, err := gen.GenerateDraw(context.Background(), Params{
		Format:         models.FormatBP,
		Teams:          makeTeams(8),
		TargetRoundSeq: 2,
		PriorResults: []PriorResult{
			{TeamID: 1, RoundSeq: 1, Points: 3},
			{TeamID: 2, RoundSeq: 1, Points: 2},
			{TeamID: 3, RoundSeq: 1, Points: 1},
			{TeamID: 4, RoundSeq: 1, Points: 0},
			{TeamID: 5, RoundSeq: 1, Points: 3},
			{TeamID: 6, RoundSeq: 1, Points: 2},
			{TeamID: 7, RoundSeq: 1, Points: 1},
			{TeamID: 8, RoundSeq: 1, Points: 0},
		},
		AllowShortMatch: true,
	})
	require.NoError(t, err)
	require.Len(t, matches, 2)

	assert.Equal(t, []int{1, 5, 2, 6, 3, 7, 4, 8}, assignedTeamIDs(t, matches))
}

func TestPowerPairedIgnoresLaterRounds(t *testing.T) {
	gen := NewPowerPairedGenerator()

	// Points from the target round itself (and beyond) must not count.
	matches, err := gen.GenerateDraw(context.Background(), Params{
		Format:         models.Format2vs2,
		Teams:          makeTeams(4),
		TargetRoundSeq: 2,
		PriorResults: []PriorResult{
			{TeamID: 4, RoundSeq: 2, Points: 3},
			{TeamID: 3, RoundSeq: 3, Points: 3},
			{TeamID: 2, RoundSeq: 1, Points: 3},
		},
		AllowShortMatch: true,
	})
	require.NoError(t, err)

	// Only T2 has countable points; everyone else keeps roster order.
	assert.Equal(t, []int{2, 1, 3, 4}, assignedTeamIDs(t, matches))
}

func TestPowerPairedTieKeepsRosterOrder(t *testing.T) {
	gen := NewPowerPairedGenerator()

	matches, err := gen.GenerateDraw(context.Background(), Params{
		Format:          models.FormatAP,
		Teams:           makeTeams(4),
		TargetRoundSeq:  2,
		PriorResults:    nil,
		AllowShortMatch: true,
	})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4}, assignedTeamIDs(t, matches))
}

func TestPowerPairedAccumulatesAcrossRounds(t *testing.T) {
	gen := NewPowerPairedGenerator()

	matches, err := gen.GenerateDraw(context.Background(), Params{
		Format:         models.FormatAP,
		Teams:          makeTeams(2),
		TargetRoundSeq: 3,
		PriorResults: []PriorResult{
			{TeamID: 2, RoundSeq: 1, Points: 1},
			{TeamID: 2, RoundSeq: 2, Points: 3},
			{TeamID: 1, RoundSeq: 1, Points: 3},
		},
		AllowShortMatch: true,
	})
	require.NoError(t, err)
	assert.Equal(t, []int{2, 1}, assignedTeamIDs(t, matches))
}

func TestRandomDrawDoesNotMutateInput(t *testing.T) {
	teams := makeTeams(4)
	gen := NewRandomGenerator(rand.New(rand.NewSource(7)))

	_, err := gen.GenerateDraw(context.Background(), Params{
		Format:          models.FormatAP,
		Teams:           teams,
		AllowShortMatch: true,
	})
	require.NoError(t, err)

	for i, team := range teams {
		assert.Equal(t, i+1, team.ID)
	}
}
