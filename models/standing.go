package models

// Standings are derived on demand and never persisted.

type TeamStanding struct {
	Rank                int     `json:"rank"`
	TeamID              int     `json:"team_id"`
	TeamName            string  `json:"team_name"`
	Institution         *string `json:"institution,omitempty"`
	TotalPoints         int     `json:"total_points"`
	MatchesPlayed       int     `json:"matches_played"`
	TotalSpeakerScore   float64 `json:"total_speaker_score"`
	AverageSpeakerScore float64 `json:"average_speaker_score"`
}

type SpeakerStanding struct {
	Rank               int     `json:"rank"`
	MemberID           int     `json:"member_id"`
	SpeakerName        string  `json:"speaker_name"`
	TeamName           string  `json:"team_name"`
	Institution        *string `json:"institution,omitempty"`
	TotalPoints        float64 `json:"total_points"`
	AveragePoints      float64 `json:"average_points"`
	RoundsParticipated int     `json:"rounds_participated"`
	StandardDeviation  float64 `json:"standard_deviation"`
}
