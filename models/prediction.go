package models

import "time"

// Prediction is a one-time, immutable score guess. One row per fan per match,
// enforced by a unique constraint; no update or delete is exposed.
type Prediction struct {
	MatchID   int       `json:"match_id" db:"match_id"`
	UserID    int       `json:"user_id" db:"user_id"`
	HomePred  int       `json:"home_pred" db:"home_pred"`
	AwayPred  int       `json:"away_pred" db:"away_pred"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// PredictionOutcome is a prediction joined with the final score of its
// (finished) match, the shape the scoring pass consumes.
type PredictionOutcome struct {
	UserID    int    `json:"user_id" db:"user_id"`
	UserName  string `json:"user_name" db:"user_name"`
	HomePred  int    `json:"home_pred" db:"home_pred"`
	AwayPred  int    `json:"away_pred" db:"away_pred"`
	HomeScore int    `json:"home_score" db:"home_score"`
	AwayScore int    `json:"away_score" db:"away_score"`
}

// PredictionStanding is one row of the fan leaderboard.
type PredictionStanding struct {
	UserID   int    `json:"user_id"`
	UserName string `json:"user_name"`
	Played   int    `json:"played"`
	Exact    int    `json:"exact"`
	Outcomes int    `json:"outcomes"`
	Points   int    `json:"points"`
}
