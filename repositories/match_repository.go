package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/karimdoss-design/campustad/models"
	"github.com/lib/pq"
)

var (
	ErrMatchNotFound     = errors.New("match not found")
	ErrMatchTeamInvalid  = errors.New("match team reference is invalid")
	ErrMatchGroupInvalid = errors.New("match group reference is invalid")
	ErrMatchMOTMInvalid  = errors.New("man of the match player reference is invalid")
)

type MatchRepository interface {
	Create(ctx context.Context, match *models.Match) error
	GetByID(ctx context.Context, id int) (*models.Match, error)
	List(ctx context.Context, filter models.MatchFilter) ([]models.Match, error)
	Update(ctx context.Context, match *models.Match) error

	// DeleteWithGoals removes the match and its dependent goal events as one
	// transaction: both rows go, or neither does.
	DeleteWithGoals(ctx context.Context, id int) error
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

const matchColumns = `id, stage, group_id, home_team_id, away_team_id, start_time, status,
	home_score, away_score, knockout_round, knockout_order, knockout_label, motm_player_id, created_at`

func scanMatch(row interface{ Scan(...interface{}) error }, m *models.Match) error {
	return row.Scan(
		&m.ID,
		&m.Stage,
		&m.GroupID,
		&m.HomeTeamID,
		&m.AwayTeamID,
		&m.StartTime,
		&m.Status,
		&m.HomeScore,
		&m.AwayScore,
		&m.KnockoutRound,
		&m.KnockoutOrder,
		&m.KnockoutLabel,
		&m.MOTMPlayerID,
		&m.CreatedAt,
	)
}

func mapMatchConstraintError(err error) error {
	pqErr, ok := err.(*pq.Error)
	if !ok || pqErr.Code != "23503" {
		return nil
	}
	switch {
	case strings.Contains(pqErr.Constraint, "group"):
		return ErrMatchGroupInvalid
	case strings.Contains(pqErr.Constraint, "motm"):
		return ErrMatchMOTMInvalid
	default:
		return ErrMatchTeamInvalid
	}
}

func (r *postgresMatchRepository) Create(ctx context.Context, match *models.Match) error {
	query := `
		INSERT INTO matches
			(stage, group_id, home_team_id, away_team_id, start_time, status,
			 home_score, away_score, knockout_round, knockout_order, knockout_label, motm_player_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		match.Stage,
		match.GroupID,
		match.HomeTeamID,
		match.AwayTeamID,
		match.StartTime,
		match.Status,
		match.HomeScore,
		match.AwayScore,
		match.KnockoutRound,
		match.KnockoutOrder,
		match.KnockoutLabel,
		match.MOTMPlayerID,
	).Scan(&match.ID, &match.CreatedAt)

	if err != nil {
		if mapped := mapMatchConstraintError(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("failed to create match: %w", err)
	}
	return nil
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, id int) (*models.Match, error) {
	match := &models.Match{}
	err := scanMatch(r.db.QueryRowContext(ctx, `SELECT `+matchColumns+` FROM matches WHERE id = $1`, id), match)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return match, nil
}

func (r *postgresMatchRepository) List(ctx context.Context, filter models.MatchFilter) ([]models.Match, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + matchColumns + ` FROM matches WHERE 1=1`)

	args := []interface{}{}
	if filter.Stage != nil {
		args = append(args, *filter.Stage)
		queryBuilder.WriteString(" AND stage = $" + strconv.Itoa(len(args)))
	}
	if filter.GroupID != nil {
		args = append(args, *filter.GroupID)
		queryBuilder.WriteString(" AND group_id = $" + strconv.Itoa(len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		queryBuilder.WriteString(" AND status = $" + strconv.Itoa(len(args)))
	}
	queryBuilder.WriteString(" ORDER BY start_time ASC NULLS LAST, id ASC")

	rows, err := r.db.QueryContext(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches := make([]models.Match, 0)
	for rows.Next() {
		var m models.Match
		if err := scanMatch(rows, &m); err != nil {
			return nil, err
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

// Update writes the full row. Callers merge partial input onto the fetched
// match first; last write wins, there is no optimistic concurrency check.
func (r *postgresMatchRepository) Update(ctx context.Context, match *models.Match) error {
	query := `
		UPDATE matches SET
			stage = $1, group_id = $2, home_team_id = $3, away_team_id = $4,
			start_time = $5, status = $6, home_score = $7, away_score = $8,
			knockout_round = $9, knockout_order = $10, knockout_label = $11, motm_player_id = $12
		WHERE id = $13`

	result, err := r.db.ExecContext(ctx, query,
		match.Stage,
		match.GroupID,
		match.HomeTeamID,
		match.AwayTeamID,
		match.StartTime,
		match.Status,
		match.HomeScore,
		match.AwayScore,
		match.KnockoutRound,
		match.KnockoutOrder,
		match.KnockoutLabel,
		match.MOTMPlayerID,
		match.ID,
	)
	if err != nil {
		if mapped := mapMatchConstraintError(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("failed to update match: %w", err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) DeleteWithGoals(ctx context.Context, id int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM goal_events WHERE match_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete goal events for match %d: %w", id, err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM matches WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete match %d: %w", id, err)
	}
	if err := checkAffectedRows(result, ErrMatchNotFound); err != nil {
		return err
	}

	return tx.Commit()
}
