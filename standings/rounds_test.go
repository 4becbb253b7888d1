package standings

import (
	"testing"
	"time"

	"github.com/karimdoss-design/campustad/models"
)

func knockoutMatch(id int, round *string, order *int, start *time.Time) models.Match {
	return models.Match{
		ID:            id,
		Stage:         models.StageKnockout,
		KnockoutRound: round,
		KnockoutOrder: order,
		StartTime:     start,
	}
}

func strptr(s string) *string { return &s }
func intptr(n int) *int       { return &n }

func TestComputeKnockoutRoundsOrdering(t *testing.T) {
	labels := []string{"Final", "Round of 16", "Quarterfinal", "Knockout", "Semifinal"}
	matches := make([]models.Match, 0, len(labels))
	for i, label := range labels {
		var round *string
		if label != "Knockout" {
			round = strptr(label)
		}
		matches = append(matches, knockoutMatch(i+1, round, nil, nil))
	}

	rounds := ComputeKnockoutRounds(matches)

	want := []string{"Round of 16", "Quarterfinal", "Semifinal", "Final", "Knockout"}
	if len(rounds) != len(want) {
		t.Fatalf("expected %d rounds, got %d", len(want), len(rounds))
	}
	for i, label := range want {
		if rounds[i].Label != label {
			t.Errorf("round %d: expected %q, got %q", i, label, rounds[i].Label)
		}
	}
}

func TestComputeKnockoutRoundsPartition(t *testing.T) {
	matches := []models.Match{
		knockoutMatch(1, strptr("Semifinal"), nil, nil),
		knockoutMatch(2, strptr("Semifinal"), nil, nil),
		knockoutMatch(3, strptr("Final"), nil, nil),
		knockoutMatch(4, nil, nil, nil),
		{ID: 5, Stage: models.StageGroup}, // must be excluded
	}

	rounds := ComputeKnockoutRounds(matches)

	seen := make(map[int]int)
	total := 0
	for _, round := range rounds {
		for _, m := range round.Matches {
			seen[m.ID]++
			total++
		}
	}
	if total != 4 {
		t.Fatalf("expected 4 knockout matches across rounds, got %d", total)
	}
	for id := 1; id <= 4; id++ {
		if seen[id] != 1 {
			t.Errorf("match %d appears %d times", id, seen[id])
		}
	}
	if seen[5] != 0 {
		t.Error("group-stage match leaked into knockout rounds")
	}
}

func TestComputeKnockoutRoundsMatchOrderWithinRound(t *testing.T) {
	early := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	late := time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC)
	matches := []models.Match{
		knockoutMatch(1, strptr("Quarterfinal"), intptr(2), nil), // TBD, order 2
		knockoutMatch(2, strptr("Quarterfinal"), nil, &late),
		knockoutMatch(3, strptr("Quarterfinal"), intptr(1), nil), // TBD, order 1
		knockoutMatch(4, strptr("Quarterfinal"), nil, &early),
	}

	rounds := ComputeKnockoutRounds(matches)
	if len(rounds) != 1 {
		t.Fatalf("expected 1 round, got %d", len(rounds))
	}

	wantIDs := []int{4, 2, 3, 1}
	for i, want := range wantIDs {
		if got := rounds[0].Matches[i].ID; got != want {
			t.Errorf("position %d: expected match %d, got %d", i, want, got)
		}
	}
}

func TestNormalizeRoundLabel(t *testing.T) {
	tests := []struct {
		name  string
		round *string
		want  string
	}{
		{"nil", nil, "Knockout"},
		{"blank", strptr("   "), "Knockout"},
		{"verbatim", strptr("Play-In"), "Play-In"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalizeRoundLabel(tt.round); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestRoundPrecedence(t *testing.T) {
	tests := []struct {
		label string
		want  int
	}{
		{"Round of 16", 1},
		{"R16", 1},
		{"Quarterfinal", 2},
		{"QF 2", 2},
		{"Semifinal", 3},
		{"Third Place", 4},
		{"Bronze Final", 4},
		{"Final", 5},
		{"Grand Final", 5},
		{"Play-In", precedenceUnrecognized},
		{"Knockout", precedenceFallback},
	}
	for _, tt := range tests {
		if got := roundPrecedence(tt.label); got != tt.want {
			t.Errorf("roundPrecedence(%q): expected %d, got %d", tt.label, tt.want, got)
		}
	}
}

func TestKnockoutOrderDefaults(t *testing.T) {
	if got := knockoutOrder(models.Match{}); got != 1 {
		t.Errorf("expected absent order to default to 1, got %d", got)
	}
	if got := knockoutOrder(models.Match{KnockoutOrder: intptr(0)}); got != 1 {
		t.Errorf("expected sub-minimum order to coerce to 1, got %d", got)
	}
	if got := knockoutOrder(models.Match{KnockoutOrder: intptr(3)}); got != 3 {
		t.Errorf("expected stored order 3, got %d", got)
	}
}
