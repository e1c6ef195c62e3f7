package models

import "errors"

// TournamentFormat определяет количество команд в одном дебате и набор позиций.
type TournamentFormat string

const (
	// FormatBP — British Parliamentary: four teams per debate.
	FormatBP TournamentFormat = "BP"
	// FormatAP — Asian Parliamentary: two teams per debate.
	FormatAP TournamentFormat = "AP"
	// Format2vs2 — generic two-team format (Affirmative/Negative).
	Format2vs2 TournamentFormat = "2vs2"
)

var ErrUnknownFormat = errors.New("unknown tournament format")

var formatPositions = map[TournamentFormat][]string{
	FormatBP:   {"OG", "OO", "CG", "CO"},
	FormatAP:   {"Government", "Opposition"},
	Format2vs2: {"Affirmative", "Negative"},
}

// Points awarded by rank within a single debate, index = rank-1.
// Identical for all supported formats today, but kept per-format so a
// future format can diverge without touching the resolver.
var formatPointTables = map[TournamentFormat][]int{
	FormatBP:   {3, 2, 1, 0},
	FormatAP:   {3, 2, 1, 0},
	Format2vs2: {3, 2, 1, 0},
}

var formatSpeakersPerTeam = map[TournamentFormat]int{
	FormatBP:   2,
	FormatAP:   2,
	Format2vs2: 2,
}

func (f TournamentFormat) Valid() bool {
	_, ok := formatPositions[f]
	return ok
}

// Positions returns the ordered position names for the format.
// Position i is assigned to the i-th team of a paired group.
func (f TournamentFormat) Positions() ([]string, error) {
	positions, ok := formatPositions[f]
	if !ok {
		return nil, ErrUnknownFormat
	}
	out := make([]string, len(positions))
	copy(out, positions)
	return out, nil
}

// GroupSize returns how many teams take part in one debate.
func (f TournamentFormat) GroupSize() (int, error) {
	positions, ok := formatPositions[f]
	if !ok {
		return 0, ErrUnknownFormat
	}
	return len(positions), nil
}

// SpeakersPerTeam returns how many distinct speaker scores a team needs
// before its total for a match counts as complete.
func (f TournamentFormat) SpeakersPerTeam() (int, error) {
	n, ok := formatSpeakersPerTeam[f]
	if !ok {
		return 0, ErrUnknownFormat
	}
	return n, nil
}

// PointsForRank converts a 1-based rank into tournament points.
// Ranks beyond the table earn zero.
func (f TournamentFormat) PointsForRank(rank int) (int, error) {
	table, ok := formatPointTables[f]
	if !ok {
		return 0, ErrUnknownFormat
	}
	if rank < 1 || rank > len(table) {
		return 0, nil
	}
	return table[rank-1], nil
}
