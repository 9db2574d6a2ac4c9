package insights

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valentinpelus/signal/pkg/analysis"
)

const epsilon = 1e-9

func TestRecommendations_PricingArithmetic(t *testing.T) {
	records := build(t,
		spec{theme: analysis.ThemePricing, sentiment: analysis.SentimentNegative, urgency: 3, impact: analysis.ImpactHigh},
		spec{theme: analysis.ThemePricing, sentiment: analysis.SentimentNegative, urgency: 3, impact: analysis.ImpactMedium},
		spec{theme: analysis.ThemePricing, sentiment: analysis.SentimentNeutral, urgency: 2, impact: analysis.ImpactLow},
	)

	recs := Recommendations(records, DefaultRecommendations)
	require.Len(t, recs, 1)
	rec := recs[0]

	assert.Equal(t, 1, rec.Rank)
	assert.Equal(t, analysis.ThemePricing, rec.Theme)
	assert.Equal(t, 3, rec.Count)
	assert.InDelta(t, 1.0, rec.FrequencyScore, epsilon)
	assert.InDelta(t, 8.0/3, rec.AvgUrgency, epsilon)
	assert.InDelta(t, 8.0/3, rec.UrgencyScore, epsilon)
	assert.InDelta(t, 5.0/3, rec.ImpactScore, epsilon)
	assert.InDelta(t, 10.0/3, rec.SentimentScore, epsilon)
	assert.InDelta(t, 26.0/3, rec.Score, epsilon)
	assert.Equal(t, "3 mentions, high impact customers, negative sentiment trend. Prioritize this area.", rec.Reasoning)
}

func TestRecommendations_RankingAndLimit(t *testing.T) {
	records := build(t,
		spec{theme: analysis.ThemeDocs, urgency: 1},
		spec{theme: analysis.ThemeSecurity, urgency: 5, impact: analysis.ImpactHigh, sentiment: analysis.SentimentNegative},
		spec{theme: analysis.ThemeUX, urgency: 3},
		spec{theme: analysis.ThemeFeatures, urgency: 2},
	)

	recs := Recommendations(records, 3)
	require.Len(t, recs, 3)
	assert.Equal(t, analysis.ThemeSecurity, recs[0].Theme)
	assert.Equal(t, analysis.ThemeUX, recs[1].Theme)
	assert.Equal(t, analysis.ThemeFeatures, recs[2].Theme)
	for i := 1; i < len(recs); i++ {
		assert.GreaterOrEqual(t, recs[i-1].Score, recs[i].Score)
		assert.Equal(t, i+1, recs[i].Rank)
	}

	assert.Len(t, Recommendations(records, 0), 4)
}

func TestRecommendations_Reasoning(t *testing.T) {
	tests := []struct {
		name  string
		specs []spec
		want  string
	}{
		{
			name:  "nothing notable",
			specs: []spec{{theme: analysis.ThemeDocs, urgency: 2}},
			want:  "Emerging pattern worth monitoring",
		},
		{
			name:  "high urgency only",
			specs: []spec{{theme: analysis.ThemeDocs, urgency: 4, impact: analysis.ImpactMedium}},
			want:  "high urgency. Prioritize this area.",
		},
		{
			name: "negative trend",
			specs: []spec{
				{theme: analysis.ThemeDocs, urgency: 3, sentiment: analysis.SentimentNegative},
				{theme: analysis.ThemeDocs, urgency: 3, sentiment: analysis.SentimentNegative},
			},
			want: "negative sentiment trend. Prioritize this area.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recs := Recommendations(build(t, tt.specs...), 3)
			require.Len(t, recs, 1)
			assert.Equal(t, tt.want, recs[0].Reasoning)
		})
	}
}

func TestRecommendations_MonotonicInCount(t *testing.T) {
	prev := -1.0
	for n := 1; n <= 20; n++ {
		specs := make([]spec, n)
		for i := range specs {
			specs[i] = spec{theme: analysis.ThemeDocs, urgency: 3}
		}
		score := Recommendations(build(t, specs...), 1)[0].Score
		assert.GreaterOrEqual(t, score, prev, "n=%d", n)
		prev = score
	}
}

func TestRecommendations_MonotonicInComponents(t *testing.T) {
	base := func(urgency int, impact analysis.Impact, sentiment analysis.Sentiment) float64 {
		records := build(t,
			spec{theme: analysis.ThemeUX, urgency: 2},
			spec{theme: analysis.ThemeUX, urgency: urgency, impact: impact, sentiment: sentiment},
		)
		return Recommendations(records, 1)[0].Score
	}

	low := base(2, analysis.ImpactLow, analysis.SentimentNeutral)
	assert.Greater(t, base(3, analysis.ImpactLow, analysis.SentimentNeutral), low, "urgency")
	assert.Greater(t, base(2, analysis.ImpactHigh, analysis.SentimentNeutral), low, "impact")
	assert.Greater(t, base(2, analysis.ImpactLow, analysis.SentimentNegative), low, "sentiment")
}

func TestRecommendations_Empty(t *testing.T) {
	assert.Empty(t, Recommendations(nil, 3))
}
