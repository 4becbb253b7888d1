package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/karimdoss-design/campustad/models"
	"github.com/lib/pq"
)

var (
	ErrGoalNotFound      = errors.New("goal event not found")
	ErrGoalMatchInvalid  = errors.New("goal event match reference is invalid")
	ErrGoalPlayerInvalid = errors.New("goal event player reference is invalid")
)

type GoalRepository interface {
	Create(ctx context.Context, goal *models.GoalEvent) error
	ListByMatch(ctx context.Context, matchID int) ([]models.GoalEvent, error)
	Delete(ctx context.Context, id int) error
}

type postgresGoalRepository struct {
	db *sql.DB
}

func NewPostgresGoalRepository(db *sql.DB) GoalRepository {
	return &postgresGoalRepository{db: db}
}

func (r *postgresGoalRepository) Create(ctx context.Context, goal *models.GoalEvent) error {
	query := `
		INSERT INTO goal_events (match_id, scoring_team_id, scorer_player_id, assist_player_id, minute)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		goal.MatchID,
		goal.ScoringTeamID,
		goal.ScorerPlayerID,
		goal.AssistPlayerID,
		goal.Minute,
	).Scan(&goal.ID, &goal.CreatedAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			if strings.Contains(pqErr.Constraint, "match") {
				return ErrGoalMatchInvalid
			}
			return ErrGoalPlayerInvalid
		}
		return fmt.Errorf("failed to create goal event: %w", err)
	}
	return nil
}

// ListByMatch orders events the way a match report reads: by minute, with
// unknown minutes last, created_at breaking ties.
func (r *postgresGoalRepository) ListByMatch(ctx context.Context, matchID int) ([]models.GoalEvent, error) {
	query := `
		SELECT id, match_id, scoring_team_id, scorer_player_id, assist_player_id, minute, created_at
		FROM goal_events
		WHERE match_id = $1
		ORDER BY minute ASC NULLS LAST, created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, matchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	goals := make([]models.GoalEvent, 0)
	for rows.Next() {
		var g models.GoalEvent
		err := rows.Scan(&g.ID, &g.MatchID, &g.ScoringTeamID, &g.ScorerPlayerID, &g.AssistPlayerID, &g.Minute, &g.CreatedAt)
		if err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

func (r *postgresGoalRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM goal_events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete goal event: %w", err)
	}
	return checkAffectedRows(result, ErrGoalNotFound)
}
