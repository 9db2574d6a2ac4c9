// Package analysis assigns a heuristic theme, sentiment, urgency and impact to
// a single feedback message using ordered keyword rules.
package analysis

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
)

// Rand is the random source used for the two non-deterministic choices made
// during classification: the fallback theme and the summary verb.
// *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// globalRand delegates to the math/rand top-level functions, which are safe
// for concurrent use.
type globalRand struct{}

func (globalRand) Intn(n int) int { return rand.Intn(n) }

type lockedRand struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func (l *lockedRand) Intn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rng.Intn(n)
}

type themeRule struct {
	theme    Theme
	keywords []string
}

// Checked in order, first match wins
var themeRules = []themeRule{
	{ThemePerformance, []string{"slow", "performance", "speed"}},
	{ThemeUX, []string{"ui", "interface", "design"}},
	{ThemePricing, []string{"price", "cost", "expensive"}},
	{ThemeReliability, []string{"bug", "crash", "error"}},
	{ThemeDocs, []string{"documentation", "docs", "guide"}},
	{ThemeFeatures, []string{"feature", "add", "request"}},
	{ThemeIntegration, []string{"integration", "api", "connect"}},
	{ThemeSecurity, []string{"security", "auth", "permission"}},
}

type sentimentRule struct {
	sentiment Sentiment
	keywords  []string
}

var sentimentRules = []sentimentRule{
	{SentimentPositive, []string{"love", "great", "amazing", "excellent"}},
	{SentimentNegative, []string{"hate", "terrible", "awful", "frustrated", "angry"}},
	{SentimentNegative, []string{"bug", "issue", "problem", "broken"}},
}

var (
	criticalKeywords  = []string{"urgent", "critical", "blocking"}
	importantKeywords = []string{"important", "priority"}
)

var summaryVerbs = map[Sentiment][]string{
	SentimentPositive: {"praises", "appreciates", "likes"},
	SentimentNeutral:  {"mentions", "notes", "suggests"},
	SentimentNegative: {"complains about", "frustrated with", "issues with"},
}

var urgencyAdverbs = map[int]string{
	5: "critically",
	4: "very",
	3: "somewhat",
	2: "mildly",
	1: "slightly",
}

// Classifier maps raw feedback text and customer tier to an Analysis
type Classifier struct {
	rng Rand
}

// NewClassifier creates a classifier drawing randomness from rng.
// A nil rng uses the process-wide math/rand source.
func NewClassifier(rng Rand) *Classifier {
	if rng == nil {
		rng = globalRand{}
	}
	return &Classifier{rng: rng}
}

// NewSeededClassifier creates a classifier with a reproducible random source.
// Output is reproducible only when calls are made from a single goroutine.
func NewSeededClassifier(seed int64) *Classifier {
	return NewClassifier(&lockedRand{rng: rand.New(rand.NewSource(seed))})
}

// Classify derives the analysis for one message. The caller is responsible
// for rejecting blank messages before calling it.
func (c *Classifier) Classify(message, customerType string) Analysis {
	text := strings.ToLower(message)

	theme, ok := matchTheme(text)
	if !ok {
		theme = Themes[c.rng.Intn(len(Themes))]
	}

	sentiment := matchSentiment(text)
	urgency := c.urgency(text, theme, sentiment)
	impact := assessImpact(customerType, urgency)

	return Analysis{
		Theme:     theme,
		Sentiment: sentiment,
		Urgency:   urgency,
		Impact:    impact,
		Summary:   c.summarize(theme, sentiment, urgency),
	}
}

func matchTheme(text string) (Theme, bool) {
	for _, rule := range themeRules {
		if containsAny(text, rule.keywords) {
			return rule.theme, true
		}
	}
	return "", false
}

func matchSentiment(text string) Sentiment {
	for _, rule := range sentimentRules {
		if containsAny(text, rule.keywords) {
			return rule.sentiment
		}
	}
	return SentimentNeutral
}

func (c *Classifier) urgency(text string, theme Theme, sentiment Sentiment) int {
	switch {
	case containsAny(text, criticalKeywords):
		return 5
	case containsAny(text, importantKeywords):
		return 4
	case sentiment == SentimentNegative && (theme == ThemeReliability || theme == ThemeSecurity):
		return 4
	case sentiment == SentimentNegative:
		return 3
	case sentiment == SentimentPositive:
		return 2
	default:
		return c.rng.Intn(3) + 1
	}
}

func assessImpact(customerType string, urgency int) Impact {
	switch {
	case customerType == CustomerEnterprise:
		return ImpactHigh
	case customerType == CustomerMidMarket:
		return ImpactMedium
	case urgency >= 4:
		return ImpactHigh
	case urgency >= 3:
		return ImpactMedium
	default:
		return ImpactLow
	}
}

func (c *Classifier) summarize(theme Theme, sentiment Sentiment, urgency int) string {
	verbs := summaryVerbs[sentiment]
	verb := verbs[c.rng.Intn(len(verbs))]

	noun := "aspects"
	if urgency > 3 {
		noun = "issues"
	}

	return fmt.Sprintf("User %s %s %s %s.", verb, theme, noun, urgencyAdverbs[urgency])
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
