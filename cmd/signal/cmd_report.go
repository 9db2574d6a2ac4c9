package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/valentinpelus/signal/internal/app"
	"github.com/valentinpelus/signal/internal/processor"
	"github.com/valentinpelus/signal/pkg/analysis"
	"github.com/valentinpelus/signal/pkg/feedback"
)

func runReport(cmd *cobra.Command, args []string) error {
	filter := feedback.Filter{
		Source:    filterSource,
		Sentiment: analysis.Sentiment(filterSentiment),
		Theme:     analysis.Theme(filterTheme),
	}
	if err := filter.Validate(); err != nil {
		return fmt.Errorf("%w (themes: %s; sentiments: %s)", err, joinThemes(), joinSentiments())
	}

	application, err := app.New(cmd.Context(), cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	defer application.Close()

	out := cmd.OutOrStdout()
	if !deliverReport {
		fmt.Fprintln(out, application.FeedbackProcessor.Report(filter))
		return nil
	}

	results, err := application.FeedbackProcessor.Deliver(cmd.Context(), filter)
	if errors.Is(err, processor.ErrNoChannels) {
		return fmt.Errorf("cannot deliver report: set SLACK_WEBHOOK_URL, SLACK_BOT_TOKEN or DISCORD_WEBHOOK_URL")
	}
	if err != nil {
		return err
	}

	failed := 0
	for _, r := range results {
		if r.Status == processor.StatusFailed {
			failed++
			fmt.Fprintf(out, "%s: %s (%s)\n", r.Channel, r.Status, r.Error)
			continue
		}
		fmt.Fprintf(out, "%s: %s\n", r.Channel, r.Status)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d channels failed", failed, len(results))
	}
	return nil
}

func joinThemes() string {
	names := make([]string, len(analysis.Themes))
	for i, t := range analysis.Themes {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}

func joinSentiments() string {
	names := make([]string, len(analysis.Sentiments))
	for i, s := range analysis.Sentiments {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}
