package services

import "testing"

func TestPredictionPoints(t *testing.T) {
	tests := []struct {
		name                 string
		homePred, awayPred   int
		homeScore, awayScore int
		want                 int
	}{
		{"exact score", 2, 1, 2, 1, 3},
		{"exact draw", 0, 0, 0, 0, 3},
		{"right winner wrong score", 3, 0, 1, 0, 1},
		{"right draw wrong score", 1, 1, 2, 2, 1},
		{"wrong winner", 0, 2, 2, 0, 0},
		{"predicted draw, decisive result", 1, 1, 2, 1, 0},
		{"predicted win, draw result", 2, 0, 1, 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PredictionPoints(tt.homePred, tt.awayPred, tt.homeScore, tt.awayScore)
			if got != tt.want {
				t.Errorf("PredictionPoints(%d-%d vs %d-%d): expected %d, got %d",
					tt.homePred, tt.awayPred, tt.homeScore, tt.awayScore, tt.want, got)
			}
		})
	}
}
