package standings

import (
	"sort"
	"strings"

	"github.com/karimdoss-design/campustad/models"
)

// fallbackRoundLabel groups knockout matches that carry no round label at all.
const fallbackRoundLabel = "Knockout"

// Precedence values for round ordering. Unrecognized custom labels sort in
// the middle (after the early rounds, before the recognized late ones) so
// they are never lost off either end; the unlabeled fallback bucket sorts
// last.
const (
	precedenceUnrecognized = 50
	precedenceFallback     = 99
)

// KnockoutRound is one round-label bucket with its matches in kickoff order.
type KnockoutRound struct {
	Label   string         `json:"label"`
	Matches []models.Match `json:"matches"`
}

// normalizeRoundLabel maps an absent label to the fallback bucket and keeps
// everything else verbatim as the grouping key.
func normalizeRoundLabel(round *string) string {
	if round == nil || strings.TrimSpace(*round) == "" {
		return fallbackRoundLabel
	}
	return *round
}

// roundPrecedence recognizes common round spellings case-insensitively by
// substring. R16 -> 1, QF -> 2, SF -> 3, third place -> 4, final -> 5.
// The order of checks matters: "quarterfinal" and "semifinal" both contain
// "final", so the final check runs last.
func roundPrecedence(label string) int {
	if label == fallbackRoundLabel {
		return precedenceFallback
	}
	l := strings.ToLower(label)
	switch {
	case strings.Contains(l, "round of 16"), strings.Contains(l, "r16"), strings.Contains(l, "ro16"):
		return 1
	case strings.Contains(l, "quarter"), strings.Contains(l, "qf"):
		return 2
	case strings.Contains(l, "semi"), strings.Contains(l, "sf"):
		return 3
	case strings.Contains(l, "third"), strings.Contains(l, "3rd"), strings.Contains(l, "3p"), strings.Contains(l, "bronze"):
		return 4
	case strings.Contains(l, "final"), l == "f":
		return 5
	default:
		return precedenceUnrecognized
	}
}

// ComputeKnockoutRounds partitions knockout matches into round-label buckets
// and orders the buckets by round precedence (alphabetical within equal
// precedence). Within a bucket, matches run in start-time order; a missing
// start time means TBD and sorts after every scheduled kickoff, with the
// stored knockout order breaking remaining ties.
func ComputeKnockoutRounds(matches []models.Match) []KnockoutRound {
	buckets := make(map[string][]models.Match)
	for _, m := range matches {
		if m.Stage != models.StageKnockout {
			continue
		}
		label := normalizeRoundLabel(m.KnockoutRound)
		buckets[label] = append(buckets[label], m)
	}

	labels := make([]string, 0, len(buckets))
	for label := range buckets {
		labels = append(labels, label)
	}
	sort.SliceStable(labels, func(i, j int) bool {
		pi, pj := roundPrecedence(labels[i]), roundPrecedence(labels[j])
		if pi != pj {
			return pi < pj
		}
		return labels[i] < labels[j]
	})

	rounds := make([]KnockoutRound, 0, len(labels))
	for _, label := range labels {
		ms := buckets[label]
		sort.SliceStable(ms, func(i, j int) bool {
			a, b := ms[i], ms[j]
			switch {
			case a.StartTime == nil && b.StartTime == nil:
				return knockoutOrder(a) < knockoutOrder(b)
			case a.StartTime == nil:
				return false
			case b.StartTime == nil:
				return true
			case !a.StartTime.Equal(*b.StartTime):
				return a.StartTime.Before(*b.StartTime)
			default:
				return knockoutOrder(a) < knockoutOrder(b)
			}
		})
		rounds = append(rounds, KnockoutRound{Label: label, Matches: ms})
	}
	return rounds
}

// knockoutOrder reads the stored order, defaulting to 1 when absent.
func knockoutOrder(m models.Match) int {
	if m.KnockoutOrder == nil || *m.KnockoutOrder < 1 {
		return 1
	}
	return *m.KnockoutOrder
}
