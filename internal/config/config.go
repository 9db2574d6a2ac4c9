package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/valentinpelus/signal/pkg/llm"
)

// Store backends
const (
	StoreMemory   = "memory"
	StoreFile     = "file"
	StorePostgres = "postgres"
	StoreSQLite   = "sqlite"
)

// Config holds all application configuration
type Config struct {
	Port         string
	APIAuthToken string
	LogLevel     string

	// Master collection storage
	StoreBackend  string // "memory", "file", "postgres", "sqlite"
	StoreFilePath string
	DatabaseURL   string
	SQLitePath    string

	// Ingestion
	FeedbackAdapters    []string
	DefaultSource       string
	DefaultCustomerType string
	PageSize            int
	ClassifierSeed      int64 // 0 uses the process-wide random source
	SeedDemoData        bool

	// Delivery
	SlackWebhookURL   string
	SlackBotToken     string
	SlackChannelID    string
	DiscordWebhookURL string

	// Narration
	LLMProvider     string // "none", "ollama", "anthropic", "bedrock"
	OllamaURL       string
	OllamaModel     string
	AnthropicAPIKey string
	AnthropicModel  string
	BedrockRegion   string
	BedrockModel    string
	PromptTemplate  string // empty uses the built-in template
}

// LoadConfig loads configuration from environment variables. A .env file in
// the working directory is read first when present.
func LoadConfig() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:         getEnv("PORT", "8080"),
		APIAuthToken: getEnv("API_AUTH_TOKEN", ""),
		LogLevel:     getEnv("LOG_LEVEL", "info"),

		StoreBackend:  strings.ToLower(getEnv("STORE_BACKEND", StoreMemory)),
		StoreFilePath: getEnv("STORE_FILE_PATH", "/data/feedback.json"),
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		SQLitePath:    getEnv("SQLITE_PATH", "/data/signal.db"),

		FeedbackAdapters:    getEnvList("FEEDBACK_ADAPTERS"),
		DefaultSource:       getEnv("DEFAULT_SOURCE", "Support"),
		DefaultCustomerType: getEnv("DEFAULT_CUSTOMER_TYPE", "Individual"),
		PageSize:            getEnvInt("PAGE_SIZE", 10),
		ClassifierSeed:      int64(getEnvInt("CLASSIFIER_SEED", 0)),
		SeedDemoData:        getEnvBool("SEED_DEMO_DATA", false),

		SlackWebhookURL:   getEnv("SLACK_WEBHOOK_URL", ""),
		SlackBotToken:     getEnv("SLACK_BOT_TOKEN", ""),
		SlackChannelID:    getEnv("SLACK_CHANNEL_ID", ""),
		DiscordWebhookURL: getEnv("DISCORD_WEBHOOK_URL", ""),

		LLMProvider:     strings.ToLower(getEnv("LLM_PROVIDER", "none")),
		OllamaURL:       getEnv("OLLAMA_URL", "http://localhost:11434"),
		OllamaModel:     getEnv("OLLAMA_MODEL", "llama3"),
		AnthropicAPIKey: getEnv("ANTHROPIC_API_KEY", ""),
		AnthropicModel:  getEnv("ANTHROPIC_MODEL", "claude-3-5-sonnet-20241022"),
		BedrockRegion:   getEnv("BEDROCK_REGION", "us-east-1"),
		BedrockModel:    getEnv("BEDROCK_MODEL", "anthropic.claude-3-5-sonnet-20241022-v2:0"),
		PromptTemplate:  getEnv("NARRATION_PROMPT_TEMPLATE", ""),
	}
}

// Validate checks that the selected backends have what they need
func (c *Config) Validate() error {
	switch c.StoreBackend {
	case StoreMemory:
	case StoreFile:
		if c.StoreFilePath == "" {
			return fmt.Errorf("STORE_FILE_PATH is required for the file store")
		}
	case StorePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres store")
		}
	case StoreSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required for the sqlite store")
		}
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q (supported: memory, file, postgres, sqlite)", c.StoreBackend)
	}

	if c.PageSize <= 0 {
		return fmt.Errorf("PAGE_SIZE must be positive, got %d", c.PageSize)
	}
	if c.SlackBotToken != "" && c.SlackChannelID == "" {
		return fmt.Errorf("SLACK_CHANNEL_ID is required with SLACK_BOT_TOKEN")
	}
	if c.PromptTemplate != "" {
		if err := llm.ValidatePromptTemplate(c.PromptTemplate); err != nil {
			return fmt.Errorf("invalid NARRATION_PROMPT_TEMPLATE: %w", err)
		}
	}
	return nil
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an int environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

// getEnvBool gets a bool environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

// getEnvList splits a comma separated environment variable
func getEnvList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
