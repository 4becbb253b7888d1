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
	ErrPredictionConflict     = errors.New("prediction already submitted for this match")
	ErrPredictionMatchInvalid = errors.New("prediction match reference is invalid")
)

type PredictionRepository interface {
	// Create inserts the one allowed guess; a repeat submission for the same
	// (match, user) pair surfaces as ErrPredictionConflict.
	Create(ctx context.Context, prediction *models.Prediction) error
	ListByUser(ctx context.Context, userID int) ([]models.Prediction, error)

	// ListOutcomes returns every prediction joined with the final score of
	// its finished match, the input of the leaderboard scoring pass.
	ListOutcomes(ctx context.Context) ([]models.PredictionOutcome, error)
}

type postgresPredictionRepository struct {
	db *sql.DB
}

func NewPostgresPredictionRepository(db *sql.DB) PredictionRepository {
	return &postgresPredictionRepository{db: db}
}

func (r *postgresPredictionRepository) Create(ctx context.Context, prediction *models.Prediction) error {
	query := `
		INSERT INTO predictions (match_id, user_id, home_pred, away_pred)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`

	err := r.db.QueryRowContext(ctx, query,
		prediction.MatchID,
		prediction.UserID,
		prediction.HomePred,
		prediction.AwayPred,
	).Scan(&prediction.CreatedAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Code {
			case "23505":
				return ErrPredictionConflict
			case "23503":
				if strings.Contains(pqErr.Constraint, "match") {
					return ErrPredictionMatchInvalid
				}
				return ErrProfileNotFound
			}
		}
		return fmt.Errorf("failed to create prediction: %w", err)
	}
	return nil
}

func (r *postgresPredictionRepository) ListByUser(ctx context.Context, userID int) ([]models.Prediction, error) {
	query := `
		SELECT match_id, user_id, home_pred, away_pred, created_at
		FROM predictions
		WHERE user_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	predictions := make([]models.Prediction, 0)
	for rows.Next() {
		var p models.Prediction
		if err := rows.Scan(&p.MatchID, &p.UserID, &p.HomePred, &p.AwayPred, &p.CreatedAt); err != nil {
			return nil, err
		}
		predictions = append(predictions, p)
	}
	return predictions, rows.Err()
}

func (r *postgresPredictionRepository) ListOutcomes(ctx context.Context) ([]models.PredictionOutcome, error) {
	query := `
		SELECT p.user_id, pr.name, p.home_pred, p.away_pred, m.home_score, m.away_score
		FROM predictions p
		JOIN matches m ON m.id = p.match_id AND m.status = 'finished'
		JOIN profiles pr ON pr.id = p.user_id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	outcomes := make([]models.PredictionOutcome, 0)
	for rows.Next() {
		var o models.PredictionOutcome
		err := rows.Scan(&o.UserID, &o.UserName, &o.HomePred, &o.AwayPred, &o.HomeScore, &o.AwayScore)
		if err != nil {
			return nil, err
		}
		outcomes = append(outcomes, o)
	}
	return outcomes, rows.Err()
}
