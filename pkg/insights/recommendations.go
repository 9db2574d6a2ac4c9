package insights

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/valentinpelus/signal/pkg/analysis"
	"github.com/valentinpelus/signal/pkg/feedback"
)

const (
	// maxFrequencyScore caps the frequency component of the priority score
	maxFrequencyScore = 5.0
	// componentScale maps ratios in [0,1] onto the 0-5 scoring range
	componentScale = 5.0

	mentionsThreshold   = 3
	highUrgencyAverage  = 4.0
	negativeTrendCount  = 2
	monitoringReasoning = "Emerging pattern worth monitoring"
)

// Recommendation is a prioritized theme with the breakdown of its score
type Recommendation struct {
	Rank            int            `json:"rank"`
	Theme           analysis.Theme `json:"theme"`
	Count           int            `json:"count"`
	HighImpactCount int            `json:"highImpactCount"`
	NegativeCount   int            `json:"negativeCount"`
	AvgUrgency      float64        `json:"avgUrgency"`
	FrequencyScore  float64        `json:"frequencyScore"`
	UrgencyScore    float64        `json:"urgencyScore"`
	ImpactScore     float64        `json:"impactScore"`
	SentimentScore  float64        `json:"sentimentScore"`
	Score           float64        `json:"score"`
	Reasoning       string         `json:"reasoning"`
}

type themeTally struct {
	count           int
	totalUrgency    int
	highImpactCount int
	negativeCount   int
}

// Recommendations scores every theme by frequency, urgency, impact and
// negative sentiment and returns the highest-scoring ones. Ties keep
// first-encounter order. limit <= 0 returns every theme.
func Recommendations(records []feedback.Record, limit int) []Recommendation {
	tallies := make(map[analysis.Theme]*themeTally)
	var order []analysis.Theme
	for _, r := range records {
		a := r.Analysis()
		t, ok := tallies[a.Theme]
		if !ok {
			t = &themeTally{}
			tallies[a.Theme] = t
			order = append(order, a.Theme)
		}
		t.count++
		t.totalUrgency += a.Urgency
		if a.Impact == analysis.ImpactHigh {
			t.highImpactCount++
		}
		if a.Sentiment == analysis.SentimentNegative {
			t.negativeCount++
		}
	}

	recs := make([]Recommendation, 0, len(order))
	for _, theme := range order {
		recs = append(recs, score(theme, tallies[theme]))
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Score > recs[j].Score
	})

	recs = truncate(recs, limit)
	for i := range recs {
		recs[i].Rank = i + 1
	}
	return recs
}

func score(theme analysis.Theme, t *themeTally) Recommendation {
	n := float64(t.count)
	avgUrgency := float64(t.totalUrgency) / n

	rec := Recommendation{
		Theme:           theme,
		Count:           t.count,
		HighImpactCount: t.highImpactCount,
		NegativeCount:   t.negativeCount,
		AvgUrgency:      avgUrgency,
		FrequencyScore:  math.Min(n/3, maxFrequencyScore),
		UrgencyScore:    avgUrgency,
		ImpactScore:     float64(t.highImpactCount) / n * componentScale,
		SentimentScore:  float64(t.negativeCount) / n * componentScale,
	}
	rec.Score = rec.FrequencyScore + rec.UrgencyScore + rec.ImpactScore + rec.SentimentScore
	rec.Reasoning = reasoning(t, avgUrgency)
	return rec
}

func reasoning(t *themeTally, avgUrgency float64) string {
	var reasons []string
	if t.count >= mentionsThreshold {
		reasons = append(reasons, fmt.Sprintf("%d mentions", t.count))
	}
	if avgUrgency >= highUrgencyAverage {
		reasons = append(reasons, "high urgency")
	}
	if t.highImpactCount > 0 {
		reasons = append(reasons, "high impact customers")
	}
	if t.negativeCount >= negativeTrendCount {
		reasons = append(reasons, "negative sentiment trend")
	}

	if len(reasons) == 0 {
		return monitoringReasoning
	}
	return strings.Join(reasons, ", ") + ". Prioritize this area."
}
