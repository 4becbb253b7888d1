package models

import "time"

type Team struct {
	ID        int       `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// GroupID is populated from the assignment record when listed with
	// assignments, not a column on the teams table.
	GroupID *int `json:"group_id,omitempty" db:"-"`
}

type Group struct {
	ID        int       `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// TeamGroupAssignment binds a team to at most one group. Upsert-by-team-id
// semantics; a null group removes the assignment.
type TeamGroupAssignment struct {
	TeamID  int `json:"team_id" db:"team_id"`
	GroupID int `json:"group_id" db:"group_id"`
}
