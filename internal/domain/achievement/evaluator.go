// Package achievement derives a completion percentage and badge from a
// user's full set of progress records. Evaluate is pure: no I/O, no state.
// Badges are recomputed on every call; nothing records that a badge was
// already shown, so re-reaching the same percentage re-reports the same
// badge.
package achievement

import (
	"math"

	"career-pods/internal/domain/progress"
)

const (
	BadgeMaster  = "master"
	BadgeHalfway = "halfway"
)

type Badge struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Summary struct {
	CompletionPercentage int    `json:"completion_percentage"`
	Badge                *Badge `json:"badge"`
}

// Evaluate computes the share of achieved records, rounded to the nearest
// integer percent, and applies the badge thresholds top-down: the master
// badge needs at least five tracked skills all achieved, halfway needs 50%.
func Evaluate(rows []progress.Record) Summary {
	total := len(rows)
	if total == 0 {
		return Summary{}
	}

	achieved := 0
	for _, r := range rows {
		if r.Achieved() {
			achieved++
		}
	}

	pct := int(math.Round(100 * float64(achieved) / float64(total)))

	var badge *Badge
	switch {
	case total >= 5 && pct == 100:
		badge = &Badge{ID: BadgeMaster, Name: "Master Achiever"}
	case pct >= 50:
		badge = &Badge{ID: BadgeHalfway, Name: "Halfway There"}
	}

	return Summary{CompletionPercentage: pct, Badge: badge}
}
