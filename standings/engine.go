// Package standings derives every table and leaderboard the tracker shows
// from a plain snapshot of teams, assignments, matches and player stats.
// Everything here is a pure function over already-fetched data: a full
// recompute on every call, no incremental state, no failure modes of its own.
package standings

import (
	"sort"

	"github.com/karimdoss-design/campustad/models"
)

// TeamRow is one line of a group table.
type TeamRow struct {
	TeamID         int    `json:"team_id"`
	TeamName       string `json:"team_name"`
	Played         int    `json:"played"`
	Won            int    `json:"won"`
	Drawn          int    `json:"drawn"`
	Lost           int    `json:"lost"`
	GoalsFor       int    `json:"goals_for"`
	GoalsAgainst   int    `json:"goals_against"`
	GoalDifference int    `json:"goal_difference"`
	Points         int    `json:"points"`
}

// GroupTable is a group together with its ordered rows.
type GroupTable struct {
	Group models.Group `json:"group"`
	Rows  []TeamRow    `json:"rows"`
}

// ComputeGroupTables builds one table per group from finished group-stage
// matches. Teams assigned to a group appear even with zero matches played.
// A finished match whose participant was never assigned to the group (or was
// assigned after the match was recorded) still counts: the missing row is
// added zero-initialized before the result is applied. Deliberate leniency,
// not a data-integrity rejection.
func ComputeGroupTables(
	groups []models.Group,
	teams []models.Team,
	assignments []models.TeamGroupAssignment,
	matches []models.Match,
) []GroupTable {
	teamNames := make(map[int]string, len(teams))
	for _, t := range teams {
		teamNames[t.ID] = t.Name
	}

	// group id -> team id -> row
	rowsByGroup := make(map[int]map[int]*TeamRow, len(groups))
	for _, g := range groups {
		rowsByGroup[g.ID] = make(map[int]*TeamRow)
	}
	for _, a := range assignments {
		rows, ok := rowsByGroup[a.GroupID]
		if !ok {
			continue
		}
		rows[a.TeamID] = &TeamRow{TeamID: a.TeamID, TeamName: teamNames[a.TeamID]}
	}

	ensureRow := func(rows map[int]*TeamRow, teamID int) *TeamRow {
		row, ok := rows[teamID]
		if !ok {
			row = &TeamRow{TeamID: teamID, TeamName: teamNames[teamID]}
			rows[teamID] = row
		}
		return row
	}

	for _, m := range matches {
		if m.Stage != models.StageGroup || m.Status != models.MatchStatusFinished || m.GroupID == nil {
			continue
		}
		rows, ok := rowsByGroup[*m.GroupID]
		if !ok {
			continue
		}

		home := ensureRow(rows, m.HomeTeamID)
		away := ensureRow(rows, m.AwayTeamID)

		home.Played++
		away.Played++
		home.GoalsFor += m.HomeScore
		home.GoalsAgainst += m.AwayScore
		away.GoalsFor += m.AwayScore
		away.GoalsAgainst += m.HomeScore

		switch {
		case m.HomeScore > m.AwayScore:
			home.Won++
			home.Points += 3
			away.Lost++
		case m.HomeScore < m.AwayScore:
			away.Won++
			away.Points += 3
			home.Lost++
		default:
			home.Drawn++
			away.Drawn++
			home.Points++
			away.Points++
		}

		home.GoalDifference = home.GoalsFor - home.GoalsAgainst
		away.GoalDifference = away.GoalsFor - away.GoalsAgainst
	}

	tables := make([]GroupTable, 0, len(groups))
	for _, g := range groups {
		rows := make([]TeamRow, 0, len(rowsByGroup[g.ID]))
		for _, row := range rowsByGroup[g.ID] {
			rows = append(rows, *row)
		}
		sortTable(rows)
		tables = append(tables, GroupTable{Group: g, Rows: rows})
	}

	sort.SliceStable(tables, func(i, j int) bool {
		return tables[i].Group.Name < tables[j].Group.Name
	})
	return tables
}

// sortTable orders rows by points desc, goal difference desc, goals for desc,
// then team name asc. Ties are common with few matches, so the order must be
// a strict, deterministic total order.
func sortTable(rows []TeamRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.GoalDifference != b.GoalDifference {
			return a.GoalDifference > b.GoalDifference
		}
		if a.GoalsFor != b.GoalsFor {
			return a.GoalsFor > b.GoalsFor
		}
		return a.TeamName < b.TeamName
	})
}

// LeaderboardKind selects which counter ranks first.
type LeaderboardKind string

const (
	LeaderboardScorers   LeaderboardKind = "scorers"
	LeaderboardAssisters LeaderboardKind = "assisters"
)

// LeaderboardEntry is one line of the top-scorer / top-assister boards.
type LeaderboardEntry struct {
	PlayerID int    `json:"player_id"`
	Name     string `json:"name"`
	Goals    int    `json:"goals"`
	Assists  int    `json:"assists"`
}

// ComputeLeaderboard ranks players by goals (scorers) or assists (assisters),
// breaking ties by the other counter and then by display name. Players with
// no stats row are treated as all-zero, not excluded.
func ComputeLeaderboard(players []models.Player, stats []models.PlayerStats, kind LeaderboardKind, limit int) []LeaderboardEntry {
	statsByPlayer := make(map[int]models.PlayerStats, len(stats))
	for _, s := range stats {
		statsByPlayer[s.PlayerID] = s
	}

	entries := make([]LeaderboardEntry, 0, len(players))
	for i := range players {
		p := &players[i]
		s := statsByPlayer[p.ID]
		entries = append(entries, LeaderboardEntry{
			PlayerID: p.ID,
			Name:     p.PresentedName(),
			Goals:    s.Goals,
			Assists:  s.Assists,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		primaryA, primaryB := a.Goals, b.Goals
		secondaryA, secondaryB := a.Assists, b.Assists
		if kind == LeaderboardAssisters {
			primaryA, primaryB = a.Assists, b.Assists
			secondaryA, secondaryB = a.Goals, b.Goals
		}
		if primaryA != primaryB {
			return primaryA > primaryB
		}
		if secondaryA != secondaryB {
			return secondaryA > secondaryB
		}
		return a.Name < b.Name
	})

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}
