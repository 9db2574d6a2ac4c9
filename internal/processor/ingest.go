package processor

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/valentinpelus/signal/pkg/feedback"
	"github.com/valentinpelus/signal/pkg/ingest"
	"github.com/valentinpelus/signal/pkg/types"
)

// ErrInvalidImport is returned when an import document cannot be read or parsed.
// Nothing is stored in that case.
var ErrInvalidImport = errors.New("invalid import")

// ImportResult reports the outcome of a bulk import
type ImportResult struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

// Submit classifies manual submissions and places them at the front of the
// collection, keeping their relative order. The batch is rejected as a whole
// if any submission is invalid. On a store error the records already stored
// are returned alongside the error.
func (p *FeedbackProcessor) Submit(ctx context.Context, subs []types.FeedbackSubmission) ([]feedback.Record, error) {
	records := make([]feedback.Record, 0, len(subs))
	for i, sub := range subs {
		r, err := feedback.New(p.classifier, p.input(sub))
		if err != nil {
			p.reject(err)
			return nil, fmt.Errorf("submission %d: %w", i, err)
		}
		records = append(records, r)
	}

	for i := len(records) - 1; i >= 0; i-- {
		if err := p.manager.Prepend(ctx, records[i]); err != nil {
			stored := records[i+1:]
			p.logger.Error("Submission stored partially",
				zap.Int("stored", len(stored)),
				zap.Int("total", len(records)),
				zap.Error(err))
			return stored, err
		}
		p.ingested(records[i])
	}

	p.logger.Info("Accepted feedback submissions", zap.Int("count", len(records)))
	return records, nil
}

// Import parses a CSV export and appends every valid row to the end of the
// collection. A document that cannot be parsed yields ErrInvalidImport. On a
// store error the result counts the rows stored before the failure.
func (p *FeedbackProcessor) Import(ctx context.Context, r io.Reader) (ImportResult, error) {
	parsed, err := ingest.ParseCSV(r, p.defaults)
	if err != nil {
		return ImportResult{}, fmt.Errorf("%w: %w", ErrInvalidImport, err)
	}

	res := ImportResult{Skipped: parsed.Skipped}
	records := make([]feedback.Record, 0, len(parsed.Inputs))
	for _, in := range parsed.Inputs {
		rec, err := feedback.New(p.classifier, in)
		if err != nil {
			p.reject(err)
			res.Skipped++
			continue
		}
		records = append(records, rec)
	}

	if err := p.manager.Append(ctx, records...); err != nil {
		// Append keeps the records stored before the failure, in order
		for _, rec := range records {
			if _, ok := p.manager.Get(rec.ID()); !ok {
				break
			}
			p.ingested(rec)
			res.Imported++
		}
		p.logger.Error("Import stored partially",
			zap.Int("imported", res.Imported),
			zap.Int("total", len(records)),
			zap.Error(err))
		return res, err
	}
	for _, rec := range records {
		p.ingested(rec)
	}
	res.Imported = len(records)

	p.logger.Info("Imported feedback",
		zap.Int("imported", res.Imported),
		zap.Int("skipped", res.Skipped))
	return res, nil
}

// SeedDemo loads the demo records when the collection is empty and returns
// how many were added
func (p *FeedbackProcessor) SeedDemo(ctx context.Context) (int, error) {
	if p.manager.Len() > 0 {
		return 0, nil
	}

	inputs := feedback.DemoInputs(p.now())
	records := make([]feedback.Record, 0, len(inputs))
	for _, in := range inputs {
		r, err := feedback.New(p.classifier, in)
		if err != nil {
			return 0, fmt.Errorf("failed to build demo record: %w", err)
		}
		records = append(records, r)
	}

	if err := p.manager.Append(ctx, records...); err != nil {
		return 0, err
	}
	for _, r := range records {
		p.ingested(r)
	}

	p.logger.Info("Seeded demo feedback", zap.Int("count", len(records)))
	return len(records), nil
}

// Remove deletes a record from the collection
func (p *FeedbackProcessor) Remove(ctx context.Context, id string) error {
	if err := p.manager.Remove(ctx, id); err != nil {
		return err
	}
	p.metrics.FeedbackRecords.Set(float64(p.manager.Len()))
	return nil
}

func (p *FeedbackProcessor) input(sub types.FeedbackSubmission) feedback.Input {
	in := feedback.Input{
		Source:       sub.Source,
		Message:      sub.Message,
		CustomerType: sub.CustomerType,
		Timestamp:    sub.Timestamp,
	}
	if in.Source == "" {
		in.Source = p.defaults.Source
	}
	if in.CustomerType == "" {
		in.CustomerType = p.defaults.CustomerType
	}
	return in
}

func (p *FeedbackProcessor) ingested(r feedback.Record) {
	a := r.Analysis()
	p.metrics.FeedbackIngested.WithLabelValues(r.Source(), string(a.Theme), string(a.Sentiment)).Inc()
	p.metrics.FeedbackRecords.Set(float64(p.manager.Len()))
}

func (p *FeedbackProcessor) reject(err error) {
	reason := "invalid"
	var verr *feedback.ValidationError
	switch {
	case errors.Is(err, feedback.ErrEmptyMessage):
		reason = "empty_message"
	case errors.Is(err, feedback.ErrInvalidTimestamp):
		reason = "invalid_timestamp"
	case errors.As(err, &verr):
		reason = "invalid_" + verr.Field
	}
	p.metrics.FeedbackRejected.WithLabelValues(reason).Inc()
	p.logger.Debug("Rejected feedback", zap.String("reason", reason), zap.Error(err))
}
