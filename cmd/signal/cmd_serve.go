package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/valentinpelus/signal/internal/app"
)

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	defer func() {
		if err := application.Close(); err != nil {
			logger.Warn("Failed to close store", zap.Error(err))
		}
	}()

	application.LogStartupInfo()

	if err := application.Server().Start(ctx); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
