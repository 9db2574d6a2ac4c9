package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/valentinpelus/signal/internal/app"
)

func runImport(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", args[0], err)
	}
	defer f.Close()

	application, err := app.New(cmd.Context(), cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	defer application.Close()

	res, err := application.FeedbackProcessor.Import(cmd.Context(), f)
	if err != nil {
		if res.Imported > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "Stored %d records before the failure\n", res.Imported)
		}
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d records (%d rows skipped), %d records total\n",
		res.Imported, res.Skipped, application.FeedbackManager.Len())
	return nil
}
