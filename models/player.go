package models

import (
	"strings"
	"time"
)

// PositionClass is the coarse bucket a free-text position string is sorted
// into. The stored position stays verbatim; the class only drives ordering.
type PositionClass int

const (
	PositionGoalkeeper PositionClass = iota
	PositionDefender
	PositionMidfielder
	PositionForward
	PositionOther
)

// Player is a roster entry, independent of any login account. At most one
// profile may be linked to a roster player.
type Player struct {
	ID              int        `json:"id" db:"id"`
	FullName        string     `json:"full_name" db:"full_name"`
	DisplayName     *string    `json:"display_name,omitempty" db:"display_name"`
	University      *string    `json:"university,omitempty" db:"university"`
	Position        string     `json:"position" db:"position"`
	LinkedProfileID *int       `json:"linked_profile_id,omitempty" db:"linked_profile_id"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`

	// TeamID is populated from the roster assignment when present.
	TeamID *int `json:"team_id,omitempty" db:"-"`
}

// PresentedName prefers the display name, falling back to the full name.
func (p *Player) PresentedName() string {
	if p.DisplayName != nil && strings.TrimSpace(*p.DisplayName) != "" {
		return *p.DisplayName
	}
	return p.FullName
}

// ClassifyPosition pattern-matches a free-text position into a sortable
// class. Matching is case-insensitive and substring-based; anything
// unrecognized lands in PositionOther.
func ClassifyPosition(position string) PositionClass {
	p := strings.ToLower(strings.TrimSpace(position))
	switch {
	case p == "gk" || strings.Contains(p, "keeper") || strings.Contains(p, "goalie"):
		return PositionGoalkeeper
	case strings.Contains(p, "def") || strings.Contains(p, "back") || p == "cb" || p == "lb" || p == "rb":
		return PositionDefender
	case strings.Contains(p, "mid") || p == "cm" || p == "dm" || p == "am":
		return PositionMidfielder
	case strings.Contains(p, "forward") || strings.Contains(p, "striker") || strings.Contains(p, "wing") || p == "fwd" || p == "st" || p == "cf":
		return PositionForward
	default:
		return PositionOther
	}
}

// TeamPlayerAssignment binds a player to at most one team at a time.
type TeamPlayerAssignment struct {
	TeamID   int `json:"team_id" db:"team_id"`
	PlayerID int `json:"player_id" db:"player_id"`
}

// PlayerStats are admin-editable counters, one row per player. They are not
// derived automatically on write; a best-effort background recompute from
// goal events may refresh them.
type PlayerStats struct {
	PlayerID      int `json:"player_id" db:"player_id"`
	MatchesPlayed int `json:"matches_played" db:"matches_played"`
	Goals         int `json:"goals" db:"goals"`
	Assists       int `json:"assists" db:"assists"`
	MOTM          int `json:"motm" db:"motm"`
}
