package llm

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Factory creates LLM providers based on configuration
type Factory struct {
	config Config
}

// NewFactory creates a new provider factory
func NewFactory(config Config) *Factory {
	if config.Logger == nil {
		config.Logger = zap.NewNop()
	}
	return &Factory{config: config}
}

// CreateProvider creates the configured LLM provider. It returns a nil
// provider when narration is disabled.
func (f *Factory) CreateProvider() (Provider, error) {
	logger := f.config.Logger

	provider := strings.ToLower(f.config.Provider)
	if provider != "" && provider != "none" && f.config.PromptTemplate != "" {
		if err := ValidatePromptTemplate(f.config.PromptTemplate); err != nil {
			return nil, err
		}
	}

	switch provider {
	case "", "none":
		return nil, nil

	case "ollama":
		if f.config.OllamaURL == "" {
			return nil, fmt.Errorf("ollama URL not configured")
		}
		if f.config.OllamaModel == "" {
			f.config.OllamaModel = "llama3" // Default model
		}
		logger.Info("Using Ollama provider",
			zap.String("model", f.config.OllamaModel),
			zap.String("url", f.config.OllamaURL))
		p := NewOllamaProvider(f.config.OllamaURL, f.config.OllamaModel)
		p.template = f.config.PromptTemplate
		return p, nil

	case "anthropic", "claude":
		if f.config.AnthropicAPIKey == "" {
			return nil, fmt.Errorf("anthropic API key not configured")
		}
		if f.config.AnthropicModel == "" {
			f.config.AnthropicModel = "claude-3-5-sonnet-20241022" // Default model
		}
		logger.Info("Using Anthropic provider", zap.String("model", f.config.AnthropicModel))
		p := NewAnthropicProvider(f.config.AnthropicAPIKey, f.config.AnthropicModel)
		p.template = f.config.PromptTemplate
		return p, nil

	case "bedrock", "aws":
		if f.config.BedrockRegion == "" {
			f.config.BedrockRegion = "us-east-1" // Default region
		}
		if f.config.BedrockModel == "" {
			f.config.BedrockModel = "anthropic.claude-3-5-sonnet-20241022-v2:0" // Default model
		}
		logger.Info("Using AWS Bedrock provider",
			zap.String("model", f.config.BedrockModel),
			zap.String("region", f.config.BedrockRegion))
		p, err := NewBedrockProvider(f.config.BedrockRegion, f.config.BedrockModel)
		if err != nil {
			return nil, err
		}
		p.template = f.config.PromptTemplate
		return p, nil

	default:
		return nil, fmt.Errorf("unknown provider: %s (supported: none, ollama, anthropic, bedrock)", f.config.Provider)
	}
}
