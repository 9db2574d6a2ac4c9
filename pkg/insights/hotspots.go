package insights

import (
	"math"
	"sort"

	"github.com/valentinpelus/signal/pkg/analysis"
	"github.com/valentinpelus/signal/pkg/feedback"
)

// Hotspot is a source with at least one negative record
type Hotspot struct {
	Source             string  `json:"source"`
	Positive           int     `json:"positive"`
	Neutral            int     `json:"neutral"`
	Negative           int     `json:"negative"`
	Total              int     `json:"total"`
	NegativePercentage float64 `json:"negativePercentage"` // rounded to one decimal
}

// SentimentHotspots breaks sentiment down per source and returns the sources
// with negative feedback, highest negative share first
func SentimentHotspots(records []feedback.Record) []Hotspot {
	bySource := make(map[string]*Hotspot)
	var order []string
	for _, r := range records {
		h, ok := bySource[r.Source()]
		if !ok {
			h = &Hotspot{Source: r.Source()}
			bySource[r.Source()] = h
			order = append(order, r.Source())
		}

		switch r.Analysis().Sentiment {
		case analysis.SentimentPositive:
			h.Positive++
		case analysis.SentimentNegative:
			h.Negative++
		default:
			h.Neutral++
		}
		h.Total++
	}

	hotspots := make([]Hotspot, 0)
	for _, source := range order {
		h := bySource[source]
		if h.Negative == 0 {
			continue
		}
		h.NegativePercentage = roundTo1(float64(h.Negative) / float64(h.Total) * 100)
		hotspots = append(hotspots, *h)
	}

	sort.SliceStable(hotspots, func(i, j int) bool {
		return hotspots[i].NegativePercentage > hotspots[j].NegativePercentage
	})
	return hotspots
}

func roundTo1(v float64) float64 {
	return math.Round(v*10) / 10
}
