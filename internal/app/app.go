package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/valentinpelus/signal/internal/config"
	"github.com/valentinpelus/signal/internal/handler"
	"github.com/valentinpelus/signal/internal/metrics"
	"github.com/valentinpelus/signal/internal/middleware"
	"github.com/valentinpelus/signal/internal/processor"
	"github.com/valentinpelus/signal/internal/server"
	"github.com/valentinpelus/signal/pkg/adapters"
	"github.com/valentinpelus/signal/pkg/analysis"
	"github.com/valentinpelus/signal/pkg/discord"
	"github.com/valentinpelus/signal/pkg/feedback"
	"github.com/valentinpelus/signal/pkg/ingest"
	"github.com/valentinpelus/signal/pkg/llm"
	"github.com/valentinpelus/signal/pkg/slack"
	"github.com/valentinpelus/signal/pkg/store"
)

// App holds all application dependencies
type App struct {
	Config            *config.Config
	Logger            *zap.Logger
	Store             feedback.Store
	FeedbackManager   *feedback.Manager
	LLMProvider       llm.Provider
	SlackClient       *slack.Client
	DiscordClient     *discord.Client
	Metrics           *metrics.Metrics
	FeedbackProcessor *processor.FeedbackProcessor
}

// New initializes a new application with all dependencies
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	st, err := openStore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	feedbackManager, err := feedback.NewManager(ctx, st, logger.Named("feedback"))
	if err != nil {
		closeStore(st)
		return nil, err
	}

	llmProvider, err := llm.NewFactory(llm.Config{
		Provider:        cfg.LLMProvider,
		OllamaURL:       cfg.OllamaURL,
		OllamaModel:     cfg.OllamaModel,
		AnthropicAPIKey: cfg.AnthropicAPIKey,
		AnthropicModel:  cfg.AnthropicModel,
		BedrockRegion:   cfg.BedrockRegion,
		BedrockModel:    cfg.BedrockModel,
		PromptTemplate:  cfg.PromptTemplate,
		Logger:          logger.Named("llm"),
	}).CreateProvider()
	if err != nil {
		closeStore(st)
		return nil, err
	}

	slackClient := slack.NewClient(cfg.SlackWebhookURL, cfg.SlackBotToken, cfg.SlackChannelID, logger.Named("slack"))
	if slackClient.HasBotToken() {
		if err := slackClient.ValidateToken(ctx); err != nil {
			logger.Warn("Slack bot token validation failed", zap.Error(err))
		} else {
			logger.Info("Slack bot token validated")
		}
	}
	discordClient := discord.NewClient(cfg.DiscordWebhookURL, logger.Named("discord"))

	classifier := analysis.NewClassifier(nil)
	if cfg.ClassifierSeed != 0 {
		classifier = analysis.NewSeededClassifier(cfg.ClassifierSeed)
	}

	m := metrics.New()
	feedbackProcessor := processor.NewFeedbackProcessor(
		classifier,
		feedbackManager,
		[]processor.Notifier{slackClient, discordClient},
		llmProvider,
		m,
		ingest.Defaults{Source: cfg.DefaultSource, CustomerType: cfg.DefaultCustomerType},
		logger.Named("processor"),
	)

	if cfg.SeedDemoData {
		if _, err := feedbackProcessor.SeedDemo(ctx); err != nil {
			closeStore(st)
			return nil, err
		}
	}

	stats := feedbackManager.GetStats()
	if stats.Total > 0 {
		logger.Info("Feedback collection ready",
			zap.Int("total", stats.Total),
			zap.Int("positive", stats.Positive),
			zap.Int("neutral", stats.Neutral),
			zap.Int("negative", stats.Negative))
	}

	return &App{
		Config:            cfg,
		Logger:            logger,
		Store:             st,
		FeedbackManager:   feedbackManager,
		LLMProvider:       llmProvider,
		SlackClient:       slackClient,
		DiscordClient:     discordClient,
		Metrics:           m,
		FeedbackProcessor: feedbackProcessor,
	}, nil
}

// Server builds the HTTP server for the application
func (a *App) Server() *server.Server {
	auth := middleware.NewAuthMiddleware(a.Config.APIAuthToken, a.Logger.Named("auth"))
	h := handler.NewFeedbackHandler(
		a.FeedbackProcessor,
		adapters.NewRegistry(a.Config.FeedbackAdapters),
		a.Config.PageSize,
		a.Logger.Named("handler"),
	)
	return server.New(a.Config.Port, auth, h, a.Metrics, a.Logger.Named("server"))
}

// Close releases the store
func (a *App) Close() error {
	if a.Store == nil {
		return nil
	}
	return a.Store.Close()
}

// LogStartupInfo logs application startup information
func (a *App) LogStartupInfo() {
	a.Logger.Info("Starting Signal feedback service",
		zap.String("port", a.Config.Port),
		zap.String("store", a.Config.StoreBackend))

	if a.LLMProvider != nil {
		a.Logger.Info("Report narration enabled", zap.String("provider", a.LLMProvider.Name()))
	} else {
		a.Logger.Info("Report narration disabled")
	}

	if a.Config.APIAuthToken != "" {
		a.Logger.Info("API authentication: enabled (Bearer token required for writes)")
	} else {
		a.Logger.Warn("API authentication: disabled (anyone can submit or delete feedback)")
	}

	switch {
	case a.SlackClient.HasBotToken():
		a.Logger.Info("Slack delivery: enabled (bot token)")
	case a.SlackClient.IsConfigured():
		a.Logger.Info("Slack delivery: enabled (webhook)")
	default:
		a.Logger.Info("Slack delivery: disabled")
	}

	if a.DiscordClient.IsConfigured() {
		a.Logger.Info("Discord delivery: enabled")
	} else {
		a.Logger.Info("Discord delivery: disabled")
	}
}

func openStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (feedback.Store, error) {
	storeLogger := logger.Named("store")

	switch cfg.StoreBackend {
	case config.StoreFile:
		fs, err := store.NewFileStore(cfg.StoreFilePath, storeLogger)
		if err != nil {
			return nil, err
		}
		return fs, nil
	case config.StorePostgres:
		ss, err := store.OpenPostgres(ctx, cfg.DatabaseURL, storeLogger)
		if err != nil {
			return nil, err
		}
		return ss, nil
	case config.StoreSQLite:
		ss, err := store.OpenSQLite(ctx, cfg.SQLitePath, storeLogger)
		if err != nil {
			return nil, err
		}
		return ss, nil
	default:
		return nil, nil
	}
}

func closeStore(st feedback.Store) {
	if st != nil {
		_ = st.Close()
	}
}
