package processor

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/valentinpelus/signal/internal/metrics"
	"github.com/valentinpelus/signal/pkg/analysis"
	"github.com/valentinpelus/signal/pkg/feedback"
	"github.com/valentinpelus/signal/pkg/ingest"
	"github.com/valentinpelus/signal/pkg/llm"
)

// Notifier delivers a rendered report to one outbound channel
type Notifier interface {
	Name() string
	IsConfigured() bool
	Send(ctx context.Context, report string) error
}

// FeedbackProcessor ties classification, the master collection, insights
// and delivery together
type FeedbackProcessor struct {
	classifier  *analysis.Classifier
	manager     *feedback.Manager
	notifiers   []Notifier
	llmProvider llm.Provider
	metrics     *metrics.Metrics
	logger      *zap.Logger
	defaults    ingest.Defaults
	now         func() time.Time
}

// NewFeedbackProcessor creates a new feedback processor. llmProvider may be
// nil to disable narration.
func NewFeedbackProcessor(
	classifier *analysis.Classifier,
	manager *feedback.Manager,
	notifiers []Notifier,
	llmProvider llm.Provider,
	m *metrics.Metrics,
	defaults ingest.Defaults,
	logger *zap.Logger,
) *FeedbackProcessor {
	if logger == nil {
		logger = zap.NewNop()
	}
	if m == nil {
		m = metrics.New()
	}
	if defaults.Source == "" {
		defaults.Source = ingest.DefaultValues.Source
	}
	if defaults.CustomerType == "" {
		defaults.CustomerType = ingest.DefaultValues.CustomerType
	}

	p := &FeedbackProcessor{
		classifier:  classifier,
		manager:     manager,
		notifiers:   notifiers,
		llmProvider: llmProvider,
		metrics:     m,
		logger:      logger,
		defaults:    defaults,
		now:         time.Now,
	}
	p.metrics.FeedbackRecords.Set(float64(manager.Len()))
	return p
}

// SetClock replaces the time source used for report windows
func (p *FeedbackProcessor) SetClock(now func() time.Time) {
	p.now = now
}

// Classify runs the classifier without storing anything
func (p *FeedbackProcessor) Classify(message, customerType string) (analysis.Analysis, error) {
	in := feedback.Input{Message: message, CustomerType: customerType}
	if err := in.Validate(); err != nil {
		return analysis.Analysis{}, err
	}
	return p.classifier.Classify(message, customerType), nil
}
