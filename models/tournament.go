package models

import "time"

// Tournament представляет турнир.
type Tournament struct {
	ID          int              `json:"id" db:"id"`
	Name        string           `json:"name" db:"name"`
	Slug        string           `json:"slug" db:"slug"`
	Description *string          `json:"description,omitempty" db:"description"`
	Format      TournamentFormat `json:"format" db:"format"`
	Active      bool             `json:"active" db:"active"`
	// AllowShortMatch controls whether a trailing group of 2..groupSize-1
	// teams is paired as an under-full debate or dropped from the draw.
	AllowShortMatch bool      `json:"allow_short_match" db:"allow_short_match"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	LogoKey         *string   `json:"-" db:"logo_key"`
	LogoURL         *string   `json:"logo_url,omitempty" db:"-"`

	// Опциональные связанные сущности (не мапятся напрямую)
	Teams  []Team  `json:"teams,omitempty" db:"-"`
	Rounds []Round `json:"rounds,omitempty" db:"-"`
}
