package insights

import (
	"sort"
	"time"

	"github.com/valentinpelus/signal/pkg/feedback"
)

// UrgentThisWeek selects records newer than now minus UrgentWindow with
// urgency >= UrgentThreshold, most urgent first. Equal urgency keeps input
// order. limit <= 0 returns every match.
func UrgentThisWeek(records []feedback.Record, now time.Time, limit int) []feedback.Record {
	cutoff := now.Add(-UrgentWindow)

	urgent := make([]feedback.Record, 0)
	for _, r := range records {
		if r.Timestamp().After(cutoff) && r.Analysis().Urgency >= UrgentThreshold {
			urgent = append(urgent, r)
		}
	}

	sort.SliceStable(urgent, func(i, j int) bool {
		return urgent[i].Analysis().Urgency > urgent[j].Analysis().Urgency
	})

	return truncate(urgent, limit)
}
