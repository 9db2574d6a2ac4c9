package processor

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/valentinpelus/signal/pkg/feedback"
)

// ErrNoChannels is returned when no delivery channel is configured
var ErrNoChannels = errors.New("no delivery channel configured")

const (
	StatusDelivered = "delivered"
	StatusFailed    = "failed"
)

// DeliveryResult is the outcome for one channel
type DeliveryResult struct {
	Channel string `json:"channel"`
	Status  string `json:"status"`
	Error   string `json:"error,omitempty"`
}

// Deliver renders the report for filter, appends narration when a provider
// is set, and sends it to every configured channel concurrently. A failing
// channel does not stop the others.
func (p *FeedbackProcessor) Deliver(ctx context.Context, filter feedback.Filter) ([]DeliveryResult, error) {
	var targets []Notifier
	for _, n := range p.notifiers {
		if n.IsConfigured() {
			targets = append(targets, n)
		}
	}
	if len(targets) == 0 {
		return nil, ErrNoChannels
	}

	report := p.narrate(ctx, p.Report(filter))

	results := make([]DeliveryResult, len(targets))
	var g errgroup.Group
	for i, n := range targets {
		g.Go(func() error {
			start := time.Now()
			err := n.Send(ctx, report)
			p.metrics.DeliveryDuration.WithLabelValues(n.Name()).Observe(time.Since(start).Seconds())

			results[i] = DeliveryResult{Channel: n.Name(), Status: StatusDelivered}
			if err != nil {
				results[i].Status = StatusFailed
				results[i].Error = err.Error()
				p.logger.Error("Report delivery failed", zap.String("channel", n.Name()), zap.Error(err))
			} else {
				p.logger.Info("Report delivered", zap.String("channel", n.Name()))
			}
			p.metrics.ReportsDelivered.WithLabelValues(n.Name(), results[i].Status).Inc()
			return nil
		})
	}
	_ = g.Wait()

	return results, nil
}

// narrate appends analyst notes to report. Narration failures only drop the
// notes.
func (p *FeedbackProcessor) narrate(ctx context.Context, report string) string {
	if p.llmProvider == nil {
		return report
	}

	notes, err := p.llmProvider.Narrate(ctx, report)
	if err != nil {
		p.logger.Warn("Narration failed, sending report without notes",
			zap.String("provider", p.llmProvider.Name()),
			zap.Error(err))
		return report
	}
	if notes == "" {
		return report
	}
	return report + "\n\n**🧠 Analyst Notes:**\n" + notes
}
