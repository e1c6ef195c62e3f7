package models

import "time"

// Result — derived rank and points for one team in one match.
// Exactly one row per (match, team); recomputation replaces the whole
// set for the match.
type Result struct {
	ID        int       `json:"id" db:"id"`
	MatchID   int       `json:"match_id" db:"match_id"`
	TeamID    int       `json:"team_id" db:"team_id"`
	Rank      int       `json:"rank" db:"rank"`
	Points    int       `json:"points" db:"points"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// RoundSeq is populated by joins against rounds for power pairing.
	RoundSeq int `json:"round_seq,omitempty" db:"-"`
}
