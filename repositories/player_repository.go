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
	ErrPlayerNotFound        = errors.New("player not found")
	ErrPlayerProfileConflict = errors.New("profile is already linked to another player")
	ErrPlayerTeamInvalid     = errors.New("player or team reference is invalid")
)

type PlayerRepository interface {
	// CreateWithStats inserts the roster entry and its (possibly non-zero)
	// stats row as one unit.
	CreateWithStats(ctx context.Context, player *models.Player, stats *models.PlayerStats) error
	GetByID(ctx context.Context, id int) (*models.Player, error)
	List(ctx context.Context) ([]*models.Player, error)
	Delete(ctx context.Context, id int) error

	AssignTeam(ctx context.Context, teamID, playerID int) error
	RemoveFromTeam(ctx context.Context, teamID, playerID int) error
	ListTeamAssignments(ctx context.Context) ([]models.TeamPlayerAssignment, error)

	GetStats(ctx context.Context, playerID int) (*models.PlayerStats, error)
	ListStats(ctx context.Context) ([]models.PlayerStats, error)
	UpdateStats(ctx context.Context, stats *models.PlayerStats) error

	// RecomputeStatsFromGoals refreshes goal and assist counters from the
	// goal event ledger. Best-effort maintenance, invoked by the scheduler.
	RecomputeStatsFromGoals(ctx context.Context) error
}

type postgresPlayerRepository struct {
	db *sql.DB
}

func NewPostgresPlayerRepository(db *sql.DB) PlayerRepository {
	return &postgresPlayerRepository{db: db}
}

const playerColumns = `p.id, p.full_name, p.display_name, p.university, p.position, p.linked_profile_id, p.created_at, a.team_id`

func scanPlayer(row interface{ Scan(...interface{}) error }) (*models.Player, error) {
	player := &models.Player{}
	err := row.Scan(
		&player.ID,
		&player.FullName,
		&player.DisplayName,
		&player.University,
		&player.Position,
		&player.LinkedProfileID,
		&player.CreatedAt,
		&player.TeamID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	return player, nil
}

func (r *postgresPlayerRepository) CreateWithStats(ctx context.Context, player *models.Player, stats *models.PlayerStats) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO players (full_name, display_name, university, position, linked_profile_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err = tx.QueryRowContext(ctx, query,
		player.FullName,
		player.DisplayName,
		player.University,
		player.Position,
		player.LinkedProfileID,
	).Scan(&player.ID, &player.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return ErrPlayerProfileConflict
		}
		return fmt.Errorf("failed to create player: %w", err)
	}

	if stats == nil {
		stats = &models.PlayerStats{}
	}
	stats.PlayerID = player.ID
	if err := upsertPlayerStats(ctx, tx, stats); err != nil {
		return err
	}

	return tx.Commit()
}

// upsertPlayerStats writes the stats row through either the pool or a
// caller-owned transaction.
func upsertPlayerStats(ctx context.Context, exec SQLExecutor, stats *models.PlayerStats) error {
	query := `
		INSERT INTO player_stats (player_id, matches_played, goals, assists, motm)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (player_id) DO UPDATE SET
			matches_played = EXCLUDED.matches_played,
			goals = EXCLUDED.goals,
			assists = EXCLUDED.assists,
			motm = EXCLUDED.motm`

	_, err := exec.ExecContext(ctx, query,
		stats.PlayerID, stats.MatchesPlayed, stats.Goals, stats.Assists, stats.MOTM)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrPlayerNotFound
		}
		return fmt.Errorf("failed to write player stats: %w", err)
	}
	return nil
}

func (r *postgresPlayerRepository) GetByID(ctx context.Context, id int) (*models.Player, error) {
	query := `
		SELECT ` + playerColumns + `
		FROM players p
		LEFT JOIN team_player_assignments a ON a.player_id = p.id
		WHERE p.id = $1`
	return scanPlayer(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresPlayerRepository) List(ctx context.Context) ([]*models.Player, error) {
	query := `
		SELECT ` + playerColumns + `
		FROM players p
		LEFT JOIN team_player_assignments a ON a.player_id = p.id
		ORDER BY p.full_name ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	players := make([]*models.Player, 0)
	for rows.Next() {
		player, err := scanPlayer(rows)
		if err != nil {
			return nil, err
		}
		players = append(players, player)
	}
	return players, rows.Err()
}

func (r *postgresPlayerRepository) Delete(ctx context.Context, id int) error {
	// Stats and roster assignment cascade; goal events keep the ledger
	// consistent by cascading too (a deleted roster entry takes its goals).
	result, err := r.db.ExecContext(ctx, `DELETE FROM players WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete player: %w", err)
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

// AssignTeam moves the player: one team per player, so any previous
// assignment is replaced in the same statement.
func (r *postgresPlayerRepository) AssignTeam(ctx context.Context, teamID, playerID int) error {
	query := `
		INSERT INTO team_player_assignments (team_id, player_id)
		VALUES ($1, $2)
		ON CONFLICT (player_id) DO UPDATE SET team_id = EXCLUDED.team_id`

	_, err := r.db.ExecContext(ctx, query, teamID, playerID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrPlayerTeamInvalid
		}
		return fmt.Errorf("failed to assign player to team: %w", err)
	}
	return nil
}

func (r *postgresPlayerRepository) RemoveFromTeam(ctx context.Context, teamID, playerID int) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM team_player_assignments WHERE team_id = $1 AND player_id = $2`,
		teamID, playerID,
	)
	if err != nil {
		return fmt.Errorf("failed to remove player from team: %w", err)
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

func (r *postgresPlayerRepository) ListTeamAssignments(ctx context.Context) ([]models.TeamPlayerAssignment, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT team_id, player_id FROM team_player_assignments`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assignments := make([]models.TeamPlayerAssignment, 0)
	for rows.Next() {
		var a models.TeamPlayerAssignment
		if err := rows.Scan(&a.TeamID, &a.PlayerID); err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}

func (r *postgresPlayerRepository) GetStats(ctx context.Context, playerID int) (*models.PlayerStats, error) {
	stats := &models.PlayerStats{}
	err := r.db.QueryRowContext(ctx,
		`SELECT player_id, matches_played, goals, assists, motm FROM player_stats WHERE player_id = $1`,
		playerID,
	).Scan(&stats.PlayerID, &stats.MatchesPlayed, &stats.Goals, &stats.Assists, &stats.MOTM)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	return stats, nil
}

func (r *postgresPlayerRepository) ListStats(ctx context.Context) ([]models.PlayerStats, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT player_id, matches_played, goals, assists, motm FROM player_stats`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := make([]models.PlayerStats, 0)
	for rows.Next() {
		var s models.PlayerStats
		if err := rows.Scan(&s.PlayerID, &s.MatchesPlayed, &s.Goals, &s.Assists, &s.MOTM); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

func (r *postgresPlayerRepository) UpdateStats(ctx context.Context, stats *models.PlayerStats) error {
	return upsertPlayerStats(ctx, r.db, stats)
}

func (r *postgresPlayerRepository) RecomputeStatsFromGoals(ctx context.Context) error {
	// Goals and assists come straight from the ledger; matches played counts
	// finished matches the player's team took part in; MOTM counts match
	// awards. Manual edits to these columns are overwritten on the next run.
	query := `
		UPDATE player_stats ps SET
			goals = COALESCE(g.goals, 0),
			assists = COALESCE(a.assists, 0),
			motm = COALESCE(m.motm, 0),
			matches_played = COALESCE(mp.played, 0)
		FROM player_stats ps2
		LEFT JOIN (
			SELECT scorer_player_id AS player_id, COUNT(*) AS goals
			FROM goal_events GROUP BY scorer_player_id
		) g ON g.player_id = ps2.player_id
		LEFT JOIN (
			SELECT assist_player_id AS player_id, COUNT(*) AS assists
			FROM goal_events WHERE assist_player_id IS NOT NULL
			GROUP BY assist_player_id
		) a ON a.player_id = ps2.player_id
		LEFT JOIN (
			SELECT motm_player_id AS player_id, COUNT(*) AS motm
			FROM matches WHERE motm_player_id IS NOT NULL
			GROUP BY motm_player_id
		) m ON m.player_id = ps2.player_id
		LEFT JOIN (
			SELECT tpa.player_id, COUNT(*) AS played
			FROM team_player_assignments tpa
			JOIN matches mt ON mt.status = 'finished'
				AND (mt.home_team_id = tpa.team_id OR mt.away_team_id = tpa.team_id)
			GROUP BY tpa.player_id
		) mp ON mp.player_id = ps2.player_id
		WHERE ps.player_id = ps2.player_id`

	if _, err := r.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to recompute player stats: %w", err)
	}
	return nil
}
