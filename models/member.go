package models

import "time"

type MemberRole string

const (
	RoleLeader     MemberRole = "leader"
	RoleMember     MemberRole = "member"
	RoleSubstitute MemberRole = "substitute"
)

// Member — выступающий в составе команды (спикер).
type Member struct {
	ID        int        `json:"id" db:"id"`
	TeamID    int        `json:"team_id" db:"team_id"`
	UserID    int        `json:"user_id" db:"user_id"`
	Role      MemberRole `json:"role" db:"role"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`

	User *User `json:"user,omitempty" db:"-"`
	Team *Team `json:"team,omitempty" db:"-"`
}
