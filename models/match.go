package models

import "time"

// Match — один дебат внутри раунда.
type Match struct {
	ID           int  `json:"id" db:"id"`
	RoundID      int  `json:"round_id" db:"round_id"`
	OrderInRound int  `json:"order_in_round" db:"order_in_round"`
	// Short marks an under-full debate paired from a trailing group
	// smaller than the format's group size.
	Short     bool      `json:"short" db:"short"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	Teams []MatchTeam `json:"teams,omitempty" db:"-"`
}

// MatchTeam binds a team to a match with its assigned position.
// Positions within one match are unique and drawn from the format's
// position set.
type MatchTeam struct {
	ID       int    `json:"id" db:"id"`
	MatchID  int    `json:"match_id" db:"match_id"`
	TeamID   int    `json:"team_id" db:"team_id"`
	Position string `json:"position" db:"position"`

	Team *Team `json:"team,omitempty" db:"-"`
}
