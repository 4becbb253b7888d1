package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/karimdoss-design/campustad/models"
	"github.com/lib/pq"
)

var (
	ErrTeamNotFound     = errors.New("team not found")
	ErrTeamNameConflict = errors.New("team name is already in use")
	ErrTeamInUse        = errors.New("team is referenced by existing matches")
)

type TeamRepository interface {
	Create(ctx context.Context, team *models.Team) error
	GetByID(ctx context.Context, id int) (*models.Team, error)
	List(ctx context.Context) ([]*models.Team, error)
	Delete(ctx context.Context, id int) error

	// AssignGroup upserts the team's group assignment; a nil groupID removes it.
	AssignGroup(ctx context.Context, teamID int, groupID *int) error
	ListGroupAssignments(ctx context.Context) ([]models.TeamGroupAssignment, error)
}

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

func (r *postgresTeamRepository) Create(ctx context.Context, team *models.Team) error {
	query := `INSERT INTO teams (name) VALUES ($1) RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query, team.Name).Scan(&team.ID, &team.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return ErrTeamNameConflict
		}
		return fmt.Errorf("failed to create team: %w", err)
	}
	return nil
}

func (r *postgresTeamRepository) GetByID(ctx context.Context, id int) (*models.Team, error) {
	query := `
		SELECT t.id, t.name, t.created_at, a.group_id
		FROM teams t
		LEFT JOIN team_group_assignments a ON a.team_id = t.id
		WHERE t.id = $1`

	team := &models.Team{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&team.ID, &team.Name, &team.CreatedAt, &team.GroupID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	return team, nil
}

func (r *postgresTeamRepository) List(ctx context.Context) ([]*models.Team, error) {
	query := `
		SELECT t.id, t.name, t.created_at, a.group_id
		FROM teams t
		LEFT JOIN team_group_assignments a ON a.team_id = t.id
		ORDER BY t.name ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teams := make([]*models.Team, 0)
	for rows.Next() {
		team := &models.Team{}
		if err := rows.Scan(&team.ID, &team.Name, &team.CreatedAt, &team.GroupID); err != nil {
			return nil, err
		}
		teams = append(teams, team)
	}
	return teams, rows.Err()
}

// Delete removes the team. Group and roster assignments go with it via ON
// DELETE CASCADE; matches reference teams with RESTRICT, surfaced as
// ErrTeamInUse so the caller gets a clear conflict instead of a bare 500.
func (r *postgresTeamRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM teams WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrTeamInUse
		}
		return fmt.Errorf("failed to delete team: %w", err)
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) AssignGroup(ctx context.Context, teamID int, groupID *int) error {
	if groupID == nil {
		_, err := r.db.ExecContext(ctx, `DELETE FROM team_group_assignments WHERE team_id = $1`, teamID)
		if err != nil {
			return fmt.Errorf("failed to remove group assignment: %w", err)
		}
		return nil
	}

	query := `
		INSERT INTO team_group_assignments (team_id, group_id)
		VALUES ($1, $2)
		ON CONFLICT (team_id) DO UPDATE SET group_id = EXCLUDED.group_id`

	_, err := r.db.ExecContext(ctx, query, teamID, *groupID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			switch pqErr.Constraint {
			case "team_group_assignments_team_id_fkey":
				return ErrTeamNotFound
			case "team_group_assignments_group_id_fkey":
				return ErrGroupNotFound
			}
		}
		return fmt.Errorf("failed to assign team to group: %w", err)
	}
	return nil
}

func (r *postgresTeamRepository) ListGroupAssignments(ctx context.Context) ([]models.TeamGroupAssignment, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT team_id, group_id FROM team_group_assignments`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assignments := make([]models.TeamGroupAssignment, 0)
	for rows.Next() {
		var a models.TeamGroupAssignment
		if err := rows.Scan(&a.TeamID, &a.GroupID); err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}
