package services

import "errors"

// Common errors shared across services and HTTP mapping.
var (
	// Универсальная "не найдено"
	ErrNotFound = errors.New("requested resource not found")

	// Validation and business rules
	ErrValidationFailed       = errors.New("validation failed")
	ErrPasswordTooShort       = errors.New("password is too short")
	ErrTournamentNameRequired = errors.New("tournament name is required")
	ErrTeamNameRequired       = errors.New("team name is required")
	ErrScoreOutOfRange        = errors.New("speaker score is out of the allowed range")
	ErrRoundCompleted         = errors.New("round is already completed")
	ErrDrawConfirmed          = errors.New("draw is already confirmed for this round")
	ErrDrawNotConfirmed       = errors.New("draw must be confirmed before release")
	ErrProposalInvalid        = errors.New("draw proposal does not match the tournament roster or format")

	// Conflicts
	ErrUserEmailConflict      = errors.New("email address is already in use")
	ErrTeamNameConflict       = errors.New("team name is already in use")
	ErrTournamentSlugConflict = errors.New("tournament slug is already in use")
	ErrMemberConflict         = errors.New("user is already a member of a team in this tournament")

	// Authentication and authorization
	ErrAuthInvalidCredentials = errors.New("invalid email or password")
	ErrForbiddenOperation     = errors.New("operation not allowed for the current user")
	ErrAdminRequired          = errors.New("administrator role is required for this operation")

	// Entity-specific (more context than the generic ErrNotFound)
	ErrUserNotFound       = errors.New("user not found")
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrTeamNotFound       = errors.New("team not found")
	ErrRoundNotFound      = errors.New("round not found")
	ErrMatchNotFound      = errors.New("match not found")
	ErrMemberNotFound     = errors.New("member not found")
)
