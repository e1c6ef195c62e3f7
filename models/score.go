package models

import "time"

const (
	SpeakerScoreMin = 0
	SpeakerScoreMax = 100
)

// SpeakerScore — one score per member per match. A second submission
// for the same (member, match) pair overwrites the first.
type SpeakerScore struct {
	ID        int       `json:"id" db:"id"`
	MemberID  int       `json:"member_id" db:"member_id"`
	MatchID   int       `json:"match_id" db:"match_id"`
	RoundID   int       `json:"round_id" db:"round_id"`
	Points    float64   `json:"points" db:"points"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// TeamID is populated by joins, not stored on the row itself.
	TeamID int `json:"team_id,omitempty" db:"-"`
}
