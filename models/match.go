package models

import "time"

type MatchStage string

const (
	StageGroup    MatchStage = "group"
	StageKnockout MatchStage = "knockout"
)

type MatchStatus string

const (
	MatchStatusScheduled MatchStatus = "scheduled"
	MatchStatusFinished  MatchStatus = "finished"
)

// Recognized knockout round codes. Free-text labels are also accepted and
// grouped verbatim by the standings engine.
const (
	RoundOf16    = "R16"
	QuarterFinal = "QF"
	SemiFinal    = "SF"
	Final        = "F"
	ThirdPlace   = "3P"
)

type Match struct {
	ID         int         `json:"id" db:"id"`
	Stage      MatchStage  `json:"stage" db:"stage"`
	GroupID    *int        `json:"group_id,omitempty" db:"group_id"`
	HomeTeamID int         `json:"home_team_id" db:"home_team_id"`
	AwayTeamID int         `json:"away_team_id" db:"away_team_id"`
	StartTime  *time.Time  `json:"start_time,omitempty" db:"start_time"`
	Status     MatchStatus `json:"status" db:"status"`
	HomeScore  int         `json:"home_score" db:"home_score"`
	AwayScore  int         `json:"away_score" db:"away_score"`

	// Knockout-only metadata. KnockoutOrder is always >= 1 when set.
	KnockoutRound *string `json:"knockout_round,omitempty" db:"knockout_round"`
	KnockoutOrder *int    `json:"knockout_order,omitempty" db:"knockout_order"`
	KnockoutLabel *string `json:"knockout_label,omitempty" db:"knockout_label"`

	MOTMPlayerID *int      `json:"motm_player_id,omitempty" db:"motm_player_id"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// InvolvesTeam reports whether teamID is one of the two participants.
func (m *Match) InvolvesTeam(teamID int) bool {
	return teamID == m.HomeTeamID || teamID == m.AwayTeamID
}

type MatchFilter struct {
	Stage   *MatchStage
	GroupID *int
	Status  *MatchStatus
}

type GoalEvent struct {
	ID             int       `json:"id" db:"id"`
	MatchID        int       `json:"match_id" db:"match_id"`
	ScoringTeamID  int       `json:"scoring_team_id" db:"scoring_team_id"`
	ScorerPlayerID int       `json:"scorer_player_id" db:"scorer_player_id"`
	AssistPlayerID *int      `json:"assist_player_id,omitempty" db:"assist_player_id"`
	Minute         *int      `json:"minute,omitempty" db:"minute"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}
