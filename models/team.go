package models

import "time"

type Team struct {
	ID           int       `json:"id" db:"id"`
	TournamentID int       `json:"tournament_id" db:"tournament_id"`
	Name         string    `json:"name" db:"name"`
	Institution  *string   `json:"institution,omitempty" db:"institution"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`

	Members []Member `json:"members,omitempty" db:"-"`
}
