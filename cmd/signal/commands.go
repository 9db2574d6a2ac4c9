package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/valentinpelus/signal/internal/config"
)

var (
	verbose bool

	cfg    *config.Config
	logger *zap.Logger

	rootCmd = &cobra.Command{
		Use:   "signal",
		Short: "Classify and summarize product feedback",
		Long: `Signal classifies customer feedback by theme, sentiment, urgency and
business impact, then aggregates it into insights and a weekly summary report.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg = config.LoadConfig()
			l, err := newLogger(cfg.LogLevel, verbose)
			if err != nil {
				return err
			}
			logger = l
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
	}

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Run the feedback HTTP API",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}

	importCmd = &cobra.Command{
		Use:   "import [csv file]",
		Short: "Import a CSV export into the configured store",
		Args:  cobra.ExactArgs(1),
		RunE:  runImport,
	}

	reportCmd = &cobra.Command{
		Use:   "report",
		Short: "Print the summary report, optionally delivering it to Slack and Discord",
		Args:  cobra.NoArgs,
		RunE:  runReport,
	}

	classifyCmd = &cobra.Command{
		Use:   "classify [message]",
		Short: "Classify a single message without storing it",
		Args:  cobra.ExactArgs(1),
		RunE:  runClassify,
	}
)

var (
	filterSource    string
	filterSentiment string
	filterTheme     string
	deliverReport   bool
	customerType    string
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	reportCmd.Flags().StringVar(&filterSource, "source", "", "only include feedback from this source")
	reportCmd.Flags().StringVar(&filterSentiment, "sentiment", "", "only include feedback with this sentiment")
	reportCmd.Flags().StringVar(&filterTheme, "theme", "", "only include feedback with this theme")
	reportCmd.Flags().BoolVar(&deliverReport, "deliver", false, "send the report to the configured channels")

	classifyCmd.Flags().StringVar(&customerType, "customer-type", "Individual", "customer tier of the author")

	rootCmd.AddCommand(serveCmd, importCmd, reportCmd, classifyCmd)
}

// newLogger builds a production zap logger at the configured level
func newLogger(level string, verbose bool) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", level, err)
	}
	if verbose {
		lvl = zapcore.DebugLevel
	}

	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	zcfg.EncoderConfig.TimeKey = "time"
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return zcfg.Build()
}
