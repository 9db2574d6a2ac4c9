package analysis

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubRand replays vals in order, each reduced modulo n.
type stubRand struct {
	vals  []int
	calls int
}

func (s *stubRand) Intn(n int) int {
	v := s.vals[s.calls%len(s.vals)]
	s.calls++
	return v % n
}

func TestClassify_EndToEndExamples(t *testing.T) {
	c := NewClassifier(&stubRand{vals: []int{0}})

	t.Run("critical bug from enterprise", func(t *testing.T) {
		got := c.Classify("Critical bug: Data export is failing for all our reports this morning.", "Enterprise")
		assert.Equal(t, ThemeReliability, got.Theme)
		assert.Equal(t, SentimentNegative, got.Sentiment)
		assert.Equal(t, 5, got.Urgency)
		assert.Equal(t, ImpactHigh, got.Impact)
		assert.Equal(t, "User complains about Reliability issues critically.", got.Summary)
	})

	t.Run("api praise from mid-market", func(t *testing.T) {
		got := c.Classify("Love the new API endpoints! They are well-documented and easy to use.", "Mid-Market")
		assert.Equal(t, ThemeIntegration, got.Theme)
		assert.Equal(t, SentimentPositive, got.Sentiment)
		assert.Equal(t, 2, got.Urgency)
		assert.Equal(t, ImpactMedium, got.Impact)
		assert.Equal(t, "User praises Integration aspects mildly.", got.Summary)
	})
}

func TestClassify_ThemePriority(t *testing.T) {
	c := NewClassifier(&stubRand{vals: []int{0}})

	tests := []struct {
		name    string
		message string
		want    Theme
	}{
		{"performance beats reliability", "The app is slow and has a bug", ThemePerformance},
		{"ux keyword", "The new interface is confusing", ThemeUX},
		{"pricing keyword", "Way too expensive for us", ThemePricing},
		{"reliability keyword", "It crashed on startup", ThemeReliability},
		{"docs keyword", "Please improve the documentation", ThemeDocs},
		{"features keyword", "Feature request for dark mode", ThemeFeatures},
		{"integration keyword", "Salesforce integration keeps dropping", ThemeIntegration},
		{"security keyword", "Need better permission controls", ThemeSecurity},
		{"case insensitive", "SPEED matters", ThemePerformance},
		{"substring match inside other words", "Read the guide first", ThemeUX},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.message, "Individual").Theme)
		})
	}
}

func TestClassify_Sentiment(t *testing.T) {
	c := NewClassifier(&stubRand{vals: []int{0}})

	tests := []struct {
		message string
		want    Sentiment
	}{
		{"Great work on the release", SentimentPositive},
		{"I love it but there is a bug", SentimentPositive},
		{"This is terrible", SentimentNegative},
		{"Export is broken", SentimentNegative},
		{"Just a note on the release", SentimentNeutral},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.message, "Individual").Sentiment)
		})
	}
}

func TestClassify_Urgency(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    int
	}{
		{"urgent keyword", "Urgent: nobody can log in", 5},
		{"blocking keyword wins over positive", "Love it, but this is blocking us", 5},
		{"priority keyword", "This should be a priority", 4},
		{"negative reliability", "Export is broken with an error", 4},
		{"negative security", "Security hole is a terrible problem", 4},
		{"negative other theme", "The pricing is awful", 3},
		{"positive", "Amazing support team", 2},
	}

	c := NewClassifier(&stubRand{vals: []int{0}})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.message, "Individual").Urgency)
		})
	}
}

func TestClassify_RandomFallbacks(t *testing.T) {
	// theme pick, neutral urgency pick, summary verb pick
	rng := &stubRand{vals: []int{2, 1, 0}}
	c := NewClassifier(rng)

	got := c.Classify("Hello there", "Individual")

	assert.Equal(t, ThemePricing, got.Theme)
	assert.Equal(t, SentimentNeutral, got.Sentiment)
	assert.Equal(t, 2, got.Urgency)
	assert.Equal(t, ImpactLow, got.Impact)
	assert.Equal(t, "User mentions Pricing aspects mildly.", got.Summary)
	assert.Equal(t, 3, rng.calls)
}

func TestClassify_Impact(t *testing.T) {
	c := NewClassifier(&stubRand{vals: []int{0}})

	tests := []struct {
		name         string
		message      string
		customerType string
		want         Impact
	}{
		{"enterprise always high", "Amazing support team", "Enterprise", ImpactHigh},
		{"mid-market always medium", "Urgent: outage", "Mid-Market", ImpactMedium},
		{"urgency 4 is high", "Export is broken with an error", "Small Business", ImpactHigh},
		{"urgency 3 is medium", "The pricing is awful", "Individual", ImpactMedium},
		{"low urgency is low", "Amazing support team", "Individual", ImpactLow},
		{"unknown tier treated uniformly", "Amazing support team", "Nonprofit", ImpactLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.message, tt.customerType).Impact)
		})
	}
}

func TestClassify_Invariants(t *testing.T) {
	messages := []string{
		"Hello there",
		"ok",
		"The dashboard is loading extremely slowly today",
		"Would love to see more widgets",
		"Your platform has transformed how we handle customer feedback!",
		"Urgent: Our team cannot access the analytics module since yesterday.",
		"nothing to report",
	}
	tiers := []string{"Enterprise", "Mid-Market", "Small Business", "Individual", ""}

	c := NewClassifier(rand.New(rand.NewSource(42)))
	for i := 0; i < 200; i++ {
		msg := messages[i%len(messages)]
		tier := tiers[i%len(tiers)]
		got := c.Classify(msg, tier)

		require.NoError(t, got.Validate(), "message %q", msg)
		assert.NotEmpty(t, got.Summary)
		if tier == "Enterprise" {
			assert.Equal(t, ImpactHigh, got.Impact)
		}
	}
}

func TestSeededClassifier_IsReproducible(t *testing.T) {
	a := NewSeededClassifier(7)
	b := NewSeededClassifier(7)

	for _, msg := range []string{"Hello there", "nothing to report", "just saying hi"} {
		assert.Equal(t, a.Classify(msg, "Individual"), b.Classify(msg, "Individual"))
	}
}

func TestAnalysisValidate(t *testing.T) {
	valid := Analysis{Theme: ThemeDocs, Sentiment: SentimentNeutral, Urgency: 1, Impact: ImpactLow}
	require.NoError(t, valid.Validate())

	bad := valid
	bad.Urgency = 6
	assert.Error(t, bad.Validate())

	bad = valid
	bad.Theme = "Other"
	assert.Error(t, bad.Validate())

	bad = valid
	bad.Sentiment = "Mixed"
	assert.Error(t, bad.Validate())

	bad = valid
	bad.Impact = "Severe"
	assert.Error(t, bad.Validate())
}
