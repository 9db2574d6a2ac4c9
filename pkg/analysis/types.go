package analysis

import "fmt"

// Theme is the product area a feedback item is mapped to
type Theme string

const (
	ThemePerformance Theme = "Performance"
	ThemeUX          Theme = "UX"
	ThemePricing     Theme = "Pricing"
	ThemeReliability Theme = "Reliability"
	ThemeDocs        Theme = "Docs"
	ThemeFeatures    Theme = "Features"
	ThemeIntegration Theme = "Integration"
	ThemeSecurity    Theme = "Security"
)

// Themes lists every theme in rule priority order
var Themes = []Theme{
	ThemePerformance,
	ThemeUX,
	ThemePricing,
	ThemeReliability,
	ThemeDocs,
	ThemeFeatures,
	ThemeIntegration,
	ThemeSecurity,
}

// Valid reports whether t is one of the known themes
func (t Theme) Valid() bool {
	for _, known := range Themes {
		if t == known {
			return true
		}
	}
	return false
}

// Sentiment is the coarse polarity of a feedback message
type Sentiment string

const (
	SentimentPositive Sentiment = "Positive"
	SentimentNeutral  Sentiment = "Neutral"
	SentimentNegative Sentiment = "Negative"
)

// Sentiments lists every sentiment
var Sentiments = []Sentiment{SentimentPositive, SentimentNeutral, SentimentNegative}

// Valid reports whether s is one of the known sentiments
func (s Sentiment) Valid() bool {
	for _, known := range Sentiments {
		if s == known {
			return true
		}
	}
	return false
}

// Impact is the customer-weighted severity tier
type Impact string

const (
	ImpactLow    Impact = "Low"
	ImpactMedium Impact = "Medium"
	ImpactHigh   Impact = "High"
)

// Valid reports whether i is one of the known impact tiers
func (i Impact) Valid() bool {
	switch i {
	case ImpactLow, ImpactMedium, ImpactHigh:
		return true
	}
	return false
}

const (
	MinUrgency = 1
	MaxUrgency = 5
)

// Customer tiers that the impact rules look at. Any other string is accepted
// and treated uniformly.
const (
	CustomerEnterprise = "Enterprise"
	CustomerMidMarket  = "Mid-Market"
)

// Analysis is the derived classification attached to a feedback record
type Analysis struct {
	Theme     Theme     `json:"theme"`
	Sentiment Sentiment `json:"sentiment"`
	Urgency   int       `json:"urgency"`
	Impact    Impact    `json:"impact"`
	Summary   string    `json:"summary"`
}

// Validate checks that every field of a (typically restored) analysis is in range
func (a Analysis) Validate() error {
	if !a.Theme.Valid() {
		return fmt.Errorf("unknown theme %q", a.Theme)
	}
	if !a.Sentiment.Valid() {
		return fmt.Errorf("unknown sentiment %q", a.Sentiment)
	}
	if a.Urgency < MinUrgency || a.Urgency > MaxUrgency {
		return fmt.Errorf("urgency %d out of range [%d,%d]", a.Urgency, MinUrgency, MaxUrgency)
	}
	if !a.Impact.Valid() {
		return fmt.Errorf("unknown impact %q", a.Impact)
	}
	return nil
}
