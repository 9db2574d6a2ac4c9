// Package insights computes summary views over a working set of classified
// feedback records. Every function is pure: records are never modified and
// an empty working set yields empty results.
package insights

import (
	"sort"
	"time"

	"github.com/valentinpelus/signal/pkg/analysis"
	"github.com/valentinpelus/signal/pkg/feedback"
)

const (
	DefaultTopThemes       = 5
	DefaultUrgentItems     = 5
	DefaultRecommendations = 3

	// UrgentWindow is the trailing period considered "this week"
	UrgentWindow = 7 * 24 * time.Hour
	// UrgentThreshold is the minimum urgency of an urgent item
	UrgentThreshold = 4
)

// ThemeCount is one row of the theme leaderboard
type ThemeCount struct {
	Rank  int            `json:"rank"`
	Theme analysis.Theme `json:"theme"`
	Count int            `json:"count"`
}

// TopThemes ranks themes by number of records. Ties keep first-encounter
// order. limit <= 0 returns every theme.
func TopThemes(records []feedback.Record, limit int) []ThemeCount {
	counts := make(map[analysis.Theme]int)
	var order []analysis.Theme
	for _, r := range records {
		theme := r.Analysis().Theme
		if _, ok := counts[theme]; !ok {
			order = append(order, theme)
		}
		counts[theme]++
	}

	ranked := make([]ThemeCount, 0, len(order))
	for _, theme := range order {
		ranked = append(ranked, ThemeCount{Theme: theme, Count: counts[theme]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})

	ranked = truncate(ranked, limit)
	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked
}

func truncate[T any](s []T, limit int) []T {
	if limit > 0 && len(s) > limit {
		return s[:limit]
	}
	return s
}
