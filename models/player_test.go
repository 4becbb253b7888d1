package models

import "testing"

func TestClassifyPosition(t *testing.T) {
	tests := []struct {
		position string
		want     PositionClass
	}{
		{"GK", PositionGoalkeeper},
		{"Goalkeeper", PositionGoalkeeper},
		{"goalie", PositionGoalkeeper},
		{"Centre Back", PositionDefender},
		{"defender", PositionDefender},
		{"LB", PositionDefender},
		{"Central Midfielder", PositionMidfielder},
		{"cm", PositionMidfielder},
		{"Striker", PositionForward},
		{"Right Winger", PositionForward},
		{"ST", PositionForward},
		{"  forward  ", PositionForward},
		{"Libero", PositionOther},
		{"", PositionOther},
	}
	for _, tt := range tests {
		if got := ClassifyPosition(tt.position); got != tt.want {
			t.Errorf("ClassifyPosition(%q): expected %v, got %v", tt.position, tt.want, got)
		}
	}
}

func TestPresentedName(t *testing.T) {
	display := "Momo"
	blank := "   "
	tests := []struct {
		name   string
		player Player
		want   string
	}{
		{"display name wins", Player{FullName: "Mohammed Aliyev", DisplayName: &display}, "Momo"},
		{"nil display falls back", Player{FullName: "Mohammed Aliyev"}, "Mohammed Aliyev"},
		{"blank display falls back", Player{FullName: "Mohammed Aliyev", DisplayName: &blank}, "Mohammed Aliyev"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.player.PresentedName(); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
