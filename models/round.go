package models

import "time"

// DrawStatus отражает жизненный цикл жеребьёвки раунда.
type DrawStatus string

const (
	DrawStatusNone      DrawStatus = "none"
	DrawStatusDraft     DrawStatus = "draft"
	DrawStatusConfirmed DrawStatus = "confirmed"
	DrawStatusReleased  DrawStatus = "released"
)

type DrawType string

const (
	DrawTypeRandom      DrawType = "random"
	DrawTypePowerPaired DrawType = "power_paired"
)

type Round struct {
	ID           int        `json:"id" db:"id"`
	TournamentID int        `json:"tournament_id" db:"tournament_id"`
	// Seq is unique within a tournament and defines chronological order.
	Seq        int        `json:"seq" db:"seq"`
	Motion     *string    `json:"motion,omitempty" db:"motion"`
	DrawStatus DrawStatus `json:"draw_status" db:"draw_status"`
	Completed  bool       `json:"completed" db:"completed"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
}
