package processor

import (
	"github.com/valentinpelus/signal/pkg/analysis"
	"github.com/valentinpelus/signal/pkg/feedback"
	"github.com/valentinpelus/signal/pkg/insights"
	"github.com/valentinpelus/signal/pkg/types"
)

// Insights is the dashboard view of a filtered working set
type Insights struct {
	Total           int                       `json:"total"`
	Stats           feedback.Stats            `json:"stats"` // sentiment counts of the working set
	TopThemes       []insights.ThemeCount     `json:"topThemes"`
	Urgent          []types.FeedbackItem      `json:"urgent"`
	Hotspots        []insights.Hotspot        `json:"hotspots"`
	Recommendations []insights.Recommendation `json:"recommendations"`
	Themes          []analysis.Theme          `json:"themes"`
}

// Records returns the collection narrowed by filter, in collection order
func (p *FeedbackProcessor) Records(filter feedback.Filter) []feedback.Record {
	return filter.Apply(p.manager.Records())
}

// Get looks up one record
func (p *FeedbackProcessor) Get(id string) (feedback.Record, bool) {
	return p.manager.Get(id)
}

// Page returns one page of the filtered collection, newest first
func (p *FeedbackProcessor) Page(filter feedback.Filter, page, perPage int) feedback.Page {
	return feedback.Paginate(p.Records(filter), page, perPage)
}

// Insights computes every aggregate view over the filtered collection. Only
// Themes spans the whole collection, since it lists the filter options.
func (p *FeedbackProcessor) Insights(filter feedback.Filter) Insights {
	all := p.manager.Records()
	working := filter.Apply(all)

	return Insights{
		Total:           len(working),
		Stats:           feedback.CountSentiments(working),
		TopThemes:       insights.TopThemes(working, insights.DefaultTopThemes),
		Urgent:          feedback.Items(insights.UrgentThisWeek(working, p.now(), insights.DefaultUrgentItems)),
		Hotspots:        insights.SentimentHotspots(working),
		Recommendations: insights.Recommendations(working, insights.DefaultRecommendations),
		Themes:          feedback.Themes(all),
	}
}

// Report renders the summary report for the filtered collection
func (p *FeedbackProcessor) Report(filter feedback.Filter) string {
	return insights.SummaryReport(p.Records(filter), p.now())
}
