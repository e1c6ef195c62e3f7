package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatPositions(t *testing.T) {
	tests := []struct {
		format    TournamentFormat
		positions []string
	}{
		{FormatBP, []string{"OG", "OO", "CG", "CO"}},
		{FormatAP, []string{"Government", "Opposition"}},
		{Format2vs2, []string{"Affirmative", "Negative"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			positions, err := tt.format.Positions()
			require.NoError(t, err)
			assert.Equal(t, tt.positions, positions)

			size, err := tt.format.GroupSize()
			require.NoError(t, err)
			assert.Equal(t, len(tt.positions), size)
		})
	}
}

func TestFormatPointsForRank(t *testing.T) {
	for rank, want := range map[int]int{1: 3, 2: 2, 3: 1, 4: 0} {
		points, err := FormatBP.PointsForRank(rank)
		require.NoError(t, err)
		assert.Equal(t, want, points, "rank %d", rank)
	}

	// Ranks beyond the table earn zero rather than erroring.
	points, err := FormatAP.PointsForRank(5)
	require.NoError(t, err)
	assert.Zero(t, points)
}

func TestFormatUnknown(t *testing.T) {
	unknown := TournamentFormat("WSDC")

	assert.False(t, unknown.Valid())

	_, err := unknown.Positions()
	assert.ErrorIs(t, err, ErrUnknownFormat)
	_, err = unknown.GroupSize()
	assert.ErrorIs(t, err, ErrUnknownFormat)
	_, err = unknown.SpeakersPerTeam()
	assert.ErrorIs(t, err, ErrUnknownFormat)
	_, err = unknown.PointsForRank(1)
	assert.ErrorIs(t, err, ErrUnknownFormat)
}
