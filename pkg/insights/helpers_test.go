package insights

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/valentinpelus/signal/pkg/analysis"
	"github.com/valentinpelus/signal/pkg/feedback"
	"github.com/valentinpelus/signal/pkg/types"
)

var testNow = time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC)

type spec struct {
	id        string
	source    string
	message   string
	theme     analysis.Theme
	sentiment analysis.Sentiment
	urgency   int
	impact    analysis.Impact
	age       time.Duration
}

func build(t *testing.T, specs ...spec) []feedback.Record {
	t.Helper()

	records := make([]feedback.Record, 0, len(specs))
	for i, s := range specs {
		if s.id == "" {
			s.id = fmt.Sprintf("r%d", i)
		}
		if s.source == "" {
			s.source = "Support"
		}
		if s.message == "" {
			s.message = "message " + s.id
		}
		if s.sentiment == "" {
			s.sentiment = analysis.SentimentNeutral
		}
		if s.urgency == 0 {
			s.urgency = 1
		}
		if s.impact == "" {
			s.impact = analysis.ImpactLow
		}

		r, err := feedback.Restore(types.FeedbackItem{
			ID:        s.id,
			Source:    s.source,
			Message:   s.message,
			Timestamp: testNow.Add(-s.age),
			Analysis: analysis.Analysis{
				Theme:     s.theme,
				Sentiment: s.sentiment,
				Urgency:   s.urgency,
				Impact:    s.impact,
				Summary:   "summary",
			},
		})
		require.NoError(t, err)
		records = append(records, r)
	}
	return records
}

func recordIDs(records []feedback.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ID()
	}
	return out
}
