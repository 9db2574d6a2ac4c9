package insights

import (
	"fmt"
	"strings"
	"time"

	"github.com/valentinpelus/signal/pkg/feedback"
)

const (
	reportThemes          = 3
	reportUrgentItems     = 3
	reportRecommendations = 3
	reportExcerptRunes    = 60
)

// UrgentExcerpt is an urgent record shortened for the summary report
type UrgentExcerpt struct {
	Theme   string `json:"theme"`
	Source  string `json:"source"`
	Excerpt string `json:"excerpt"`
	Urgency int    `json:"urgency"`
}

// Summary is the structured content of the summary report
type Summary struct {
	GeneratedAt     time.Time        `json:"generatedAt"`
	TopThemes       []ThemeCount     `json:"topThemes"`
	Urgent          []UrgentExcerpt  `json:"urgent"`
	Recommendations []Recommendation `json:"recommendations"`
	// RecentCount is the number of records inside the weekly window
	RecentCount int `json:"recentCount"`
}

// BuildSummary composes the weekly theme leaderboard, the most urgent recent
// items and the top recommendations for records
func BuildSummary(records []feedback.Record, now time.Time) Summary {
	cutoff := now.Add(-UrgentWindow)
	recent := make([]feedback.Record, 0, len(records))
	for _, r := range records {
		if r.Timestamp().After(cutoff) {
			recent = append(recent, r)
		}
	}

	urgent := UrgentThisWeek(records, now, reportUrgentItems)
	excerpts := make([]UrgentExcerpt, 0, len(urgent))
	for _, r := range urgent {
		excerpts = append(excerpts, UrgentExcerpt{
			Theme:   string(r.Analysis().Theme),
			Source:  r.Source(),
			Excerpt: excerpt(r.Message(), reportExcerptRunes),
			Urgency: r.Analysis().Urgency,
		})
	}

	return Summary{
		GeneratedAt:     now,
		TopThemes:       TopThemes(recent, reportThemes),
		Urgent:          excerpts,
		Recommendations: Recommendations(records, reportRecommendations),
		RecentCount:     len(recent),
	}
}

// SummaryReport renders the summary of records as a Markdown text block
// ready for delivery
func SummaryReport(records []feedback.Record, now time.Time) string {
	return BuildSummary(records, now).String()
}

// String renders the summary as Markdown
func (s Summary) String() string {
	var b strings.Builder

	fmt.Fprintf(&b, "📊 **Signal Feedback Summary** - %s\n\n", s.GeneratedAt.Format("Jan 2, 2006"))

	b.WriteString("**🔥 Top Themes This Week:**\n")
	if len(s.TopThemes) == 0 {
		b.WriteString("• No feedback this week\n")
	}
	for _, tc := range s.TopThemes {
		fmt.Fprintf(&b, "• %s: %d mentions\n", tc.Theme, tc.Count)
	}

	b.WriteString("\n**⚠️ Urgent Items:**\n")
	if len(s.Urgent) == 0 {
		b.WriteString("• No urgent items this week\n")
	}
	for _, u := range s.Urgent {
		fmt.Fprintf(&b, "• %s (%s): %s\n", u.Theme, u.Source, u.Excerpt)
	}

	b.WriteString("\n**🎯 Priority Recommendations:**\n")
	if len(s.Recommendations) == 0 {
		b.WriteString("• No recommendations yet\n")
	}
	for i, rec := range s.Recommendations {
		fmt.Fprintf(&b, "%d. **%s** - %s\n", i+1, rec.Theme, rec.Reasoning)
	}

	b.WriteString("\n---\n")
	b.WriteString("Generated by Signal - Product Feedback Analysis\n")
	fmt.Fprintf(&b, "Total feedback analyzed: %d items", s.RecentCount)

	return b.String()
}

// excerpt keeps the first n runes of msg and marks it as an excerpt
func excerpt(msg string, n int) string {
	runes := []rune(msg)
	if len(runes) > n {
		runes = runes[:n]
	}
	return string(runes) + "..."
}
