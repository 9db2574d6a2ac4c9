// Package llm adds optional model-written commentary to feedback reports.
// Narration is appended to a report and never feeds back into
// classification.
package llm

import (
	"context"

	"go.uber.org/zap"
)

// Provider defines the interface for LLM providers (Ollama, Claude, Bedrock)
type Provider interface {
	// Narrate returns analyst notes for a rendered summary report
	Narrate(ctx context.Context, report string) (string, error)

	// Name returns the provider name (for logging)
	Name() string
}

// Config holds common configuration for LLM providers
type Config struct {
	Provider string // "none", "ollama", "anthropic", "bedrock"

	// Ollama-specific
	OllamaURL   string
	OllamaModel string

	// Anthropic-specific
	AnthropicAPIKey string
	AnthropicModel  string // e.g., "claude-3-5-sonnet-20241022"

	// AWS Bedrock-specific
	BedrockRegion string // e.g., "us-east-1", "us-west-2"
	BedrockModel  string // e.g., "anthropic.claude-3-5-sonnet-20241022-v2:0"

	// PromptTemplate overrides DefaultNarrationPromptTemplate and must
	// contain {REPORT}
	PromptTemplate string

	Logger *zap.Logger
}
