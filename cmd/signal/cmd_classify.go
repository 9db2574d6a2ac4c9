package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/valentinpelus/signal/pkg/analysis"
	"github.com/valentinpelus/signal/pkg/feedback"
)

func runClassify(cmd *cobra.Command, args []string) error {
	in := feedback.Input{Message: args[0], CustomerType: customerType}
	if err := in.Validate(); err != nil {
		return err
	}

	classifier := analysis.NewClassifier(nil)
	if cfg.ClassifierSeed != 0 {
		classifier = analysis.NewSeededClassifier(cfg.ClassifierSeed)
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(classifier.Classify(in.Message, in.CustomerType))
}
