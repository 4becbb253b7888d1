package services

import "errors"

// Shared errors used across services and the HTTP mapping.
var (
	ErrNotFound = errors.New("requested resource not found")

	// Validation and business rules
	ErrValidationFailed      = errors.New("validation failed")
	ErrPasswordTooShort      = errors.New("password is too short")
	ErrTeamNameRequired      = errors.New("team name is required")
	ErrGroupNameRequired     = errors.New("group name is required")
	ErrPlayerNameRequired    = errors.New("player full name is required")
	ErrNewsBodyRequired      = errors.New("news post body is required")
	ErrMatchTeamsRequired    = errors.New("both match teams are required")
	ErrMatchSameTeam         = errors.New("home and away team must differ")
	ErrMatchGroupRequired    = errors.New("group stage match requires a group")
	ErrMatchScoreNegative    = errors.New("match score must not be negative")
	ErrGoalScorerRequired    = errors.New("goal scorer is required")
	ErrGoalAssistIsScorer    = errors.New("assist player must differ from the scorer")
	ErrGoalTeamNotInMatch    = errors.New("scoring team is not part of the match")
	ErrGoalMinuteNegative    = errors.New("goal minute must not be negative")
	ErrMOTMNotInMatch        = errors.New("man of the match must play for one of the match teams")
	ErrPredictionMatchClosed = errors.New("predictions are closed for this match")
	ErrInvalidMediaType      = errors.New("unsupported media type")

	// Conflicts
	ErrTeamNameConflict     = errors.New("team name is already in use")
	ErrGroupNameConflict    = errors.New("group name is already in use")
	ErrPredictionConflict   = errors.New("prediction already submitted for this match")
	ErrProfileLinkConflict  = errors.New("profile is already linked to another player")
	ErrProfileEmailConflict = errors.New("email address is already registered")

	// Authentication and authorization
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrForbiddenOperation   = errors.New("operation not allowed for the current user")
	ErrAdminRequired        = errors.New("active admin account required")
	ErrFanRequired          = errors.New("active fan account required")

	// Entity-specific not-found (more context than the generic ErrNotFound)
	ErrProfileNotFound  = errors.New("profile not found")
	ErrTeamNotFound     = errors.New("team not found")
	ErrGroupNotFound    = errors.New("group not found")
	ErrPlayerNotFound   = errors.New("player not found")
	ErrMatchNotFound    = errors.New("match not found")
	ErrGoalNotFound     = errors.New("goal event not found")
	ErrNewsPostNotFound = errors.New("news post not found")

	// References that point at rows that do not exist (or are in use)
	ErrTeamInUse          = errors.New("team is referenced by existing matches")
	ErrGroupInUse         = errors.New("group is referenced by existing matches")
	ErrInvalidRoleOrState = errors.New("invalid role or status value")
)
