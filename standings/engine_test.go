package standings

import (
	"reflect"
	"testing"

	"github.com/karimdoss-design/campustad/models"
)

func groupMatch(groupID, home, away, homeScore, awayScore int) models.Match {
	gid := groupID
	return models.Match{
		Stage:      models.StageGroup,
		GroupID:    &gid,
		HomeTeamID: home,
		AwayTeamID: away,
		HomeScore:  homeScore,
		AwayScore:  awayScore,
		Status:     models.MatchStatusFinished,
	}
}

func TestComputeGroupTablesScenario(t *testing.T) {
	// Group with A, B, C, D; A 2-1 B and C 0-0 D finished.
	groups := []models.Group{{ID: 1, Name: "Group A"}}
	teams := []models.Team{
		{ID: 1, Name: "Alpha"},
		{ID: 2, Name: "Bravo"},
		{ID: 3, Name: "Charlie"},
		{ID: 4, Name: "Delta"},
	}
	assignments := []models.TeamGroupAssignment{
		{TeamID: 1, GroupID: 1},
		{TeamID: 2, GroupID: 1},
		{TeamID: 3, GroupID: 1},
		{TeamID: 4, GroupID: 1},
	}
	matches := []models.Match{
		groupMatch(1, 1, 2, 2, 1),
		groupMatch(1, 3, 4, 0, 0),
	}

	tables := ComputeGroupTables(groups, teams, assignments, matches)
	if len(tables) != 1 {
		t.Fatalf("expected 1 table, got %d", len(tables))
	}
	rows := tables[0].Rows
	if len(rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(rows))
	}

	wantOrder := []string{"Alpha", "Charlie", "Delta", "Bravo"}
	for i, name := range wantOrder {
		if rows[i].TeamName != name {
			t.Errorf("row %d: expected %s, got %s", i, name, rows[i].TeamName)
		}
	}

	alpha := rows[0]
	if alpha.Played != 1 || alpha.Won != 1 || alpha.Drawn != 0 || alpha.Lost != 0 ||
		alpha.GoalDifference != 1 || alpha.Points != 3 {
		t.Errorf("unexpected Alpha row: %+v", alpha)
	}
	bravo := rows[3]
	if bravo.Played != 1 || bravo.Lost != 1 || bravo.GoalDifference != -1 || bravo.Points != 0 {
		t.Errorf("unexpected Bravo row: %+v", bravo)
	}
	// Charlie and Delta drew 0-0: identical records, alphabetical tie-break.
	for _, row := range rows[1:3] {
		if row.Played != 1 || row.Drawn != 1 || row.GoalDifference != 0 || row.Points != 1 {
			t.Errorf("unexpected draw row: %+v", row)
		}
	}
}

func TestComputeGroupTablesZeroMatchTeam(t *testing.T) {
	groups := []models.Group{{ID: 1, Name: "Group B"}}
	teams := []models.Team{{ID: 7, Name: "Idle"}}
	assignments := []models.TeamGroupAssignment{{TeamID: 7, GroupID: 1}}

	tables := ComputeGroupTables(groups, teams, assignments, nil)
	if len(tables) != 1 || len(tables[0].Rows) != 1 {
		t.Fatalf("expected one table with one row, got %+v", tables)
	}
	row := tables[0].Rows[0]
	want := TeamRow{TeamID: 7, TeamName: "Idle"}
	if !reflect.DeepEqual(row, want) {
		t.Errorf("expected all-zero row %+v, got %+v", want, row)
	}
}

func TestComputeGroupTablesUnassignedParticipantIsAdded(t *testing.T) {
	// Team 2 plays a finished match in group 1 without ever being assigned:
	// it must still appear, zero-initialized before the result applies.
	groups := []models.Group{{ID: 1, Name: "Group C"}}
	teams := []models.Team{{ID: 1, Name: "Assigned"}, {ID: 2, Name: "Stray"}}
	assignments := []models.TeamGroupAssignment{{TeamID: 1, GroupID: 1}}
	matches := []models.Match{groupMatch(1, 1, 2, 3, 1)}

	tables := ComputeGroupTables(groups, teams, assignments, matches)
	rows := tables[0].Rows
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[1].TeamName != "Stray" || rows[1].Played != 1 || rows[1].Lost != 1 || rows[1].GoalsAgainst != 3 {
		t.Errorf("unexpected stray row: %+v", rows[1])
	}
}

func TestComputeGroupTablesIgnoresUnfinishedAndKnockout(t *testing.T) {
	gid := 1
	groups := []models.Group{{ID: 1, Name: "Group D"}}
	teams := []models.Team{{ID: 1, Name: "One"}, {ID: 2, Name: "Two"}}
	assignments := []models.TeamGroupAssignment{{TeamID: 1, GroupID: 1}, {TeamID: 2, GroupID: 1}}
	matches := []models.Match{
		{Stage: models.StageGroup, GroupID: &gid, HomeTeamID: 1, AwayTeamID: 2, HomeScore: 5, AwayScore: 0, Status: models.MatchStatusScheduled},
		{Stage: models.StageKnockout, HomeTeamID: 1, AwayTeamID: 2, HomeScore: 2, AwayScore: 0, Status: models.MatchStatusFinished},
	}

	tables := ComputeGroupTables(groups, teams, assignments, matches)
	for _, row := range tables[0].Rows {
		if row.Played != 0 || row.Points != 0 {
			t.Errorf("expected untouched row, got %+v", row)
		}
	}
}

func TestGroupTablePointsSumProperty(t *testing.T) {
	// 3 points per decisive match, 2 per draw, across the whole group.
	groups := []models.Group{{ID: 1, Name: "G"}}
	teams := []models.Team{{ID: 1, Name: "a"}, {ID: 2, Name: "b"}, {ID: 3, Name: "c"}}
	assignments := []models.TeamGroupAssignment{
		{TeamID: 1, GroupID: 1}, {TeamID: 2, GroupID: 1}, {TeamID: 3, GroupID: 1},
	}
	matches := []models.Match{
		groupMatch(1, 1, 2, 2, 0), // decisive
		groupMatch(1, 2, 3, 1, 1), // draw
		groupMatch(1, 3, 1, 0, 4), // decisive
	}

	tables := ComputeGroupTables(groups, teams, assignments, matches)
	total := 0
	for _, row := range tables[0].Rows {
		total += row.Points
		if row.GoalDifference != row.GoalsFor-row.GoalsAgainst {
			t.Errorf("gd invariant violated: %+v", row)
		}
	}
	if want := 3*2 + 2*1; total != want {
		t.Errorf("expected total points %d, got %d", want, total)
	}
}

func TestSortTableIdempotent(t *testing.T) {
	rows := []TeamRow{
		{TeamName: "b", Points: 3, GoalDifference: 1, GoalsFor: 2},
		{TeamName: "a", Points: 3, GoalDifference: 1, GoalsFor: 2},
		{TeamName: "c", Points: 6},
	}
	sortTable(rows)
	first := make([]TeamRow, len(rows))
	copy(first, rows)
	sortTable(rows)
	if !reflect.DeepEqual(first, rows) {
		t.Errorf("sort is not idempotent: %+v vs %+v", first, rows)
	}
	if rows[0].TeamName != "c" || rows[1].TeamName != "a" || rows[2].TeamName != "b" {
		t.Errorf("unexpected order: %+v", rows)
	}
}

func TestComputeLeaderboard(t *testing.T) {
	nameB := "Bilal"
	players := []models.Player{
		{ID: 1, FullName: "Aziz Karimov"},
		{ID: 2, FullName: "Bekzod Rahimov", DisplayName: &nameB},
		{ID: 3, FullName: "Chori Tashkentov"},
		{ID: 4, FullName: "Davron Yusupov"}, // no stats row at all
	}
	stats := []models.PlayerStats{
		{PlayerID: 1, Goals: 5, Assists: 2},
		{PlayerID: 2, Goals: 5, Assists: 2},
		{PlayerID: 3, Goals: 1, Assists: 7},
	}

	scorers := ComputeLeaderboard(players, stats, LeaderboardScorers, 10)
	if len(scorers) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(scorers))
	}
	// Aziz and Bilal tie on goals and assists: name decides.
	if scorers[0].Name != "Aziz Karimov" || scorers[1].Name != "Bilal" {
		t.Errorf("unexpected scorer order: %+v", scorers)
	}
	if scorers[3].PlayerID != 4 || scorers[3].Goals != 0 {
		t.Errorf("player without stats must rank last with zeros: %+v", scorers[3])
	}

	assisters := ComputeLeaderboard(players, stats, LeaderboardAssisters, 2)
	if len(assisters) != 2 {
		t.Fatalf("expected limit to apply, got %d entries", len(assisters))
	}
	if assisters[0].PlayerID != 3 {
		t.Errorf("expected top assister to be player 3, got %+v", assisters[0])
	}
}
