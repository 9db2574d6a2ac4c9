package llm

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
)

const bedrockAnthropicVersion = "bedrock-2023-05-31"

// bedrockInvoker is the subset of the Bedrock runtime client used here
type bedrockInvoker interface {
	InvokeModel(ctx context.Context, params *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error)
}

// BedrockProvider implements the Provider interface for AWS Bedrock
type BedrockProvider struct {
	client   bedrockInvoker
	model    string
	region   string
	template string
}

// NewBedrockProvider creates a new AWS Bedrock provider
func NewBedrockProvider(region, model string) (*BedrockProvider, error) {
	if region == "" {
		region = "us-east-1" // Default region
	}
	if model == "" {
		model = "anthropic.claude-3-5-sonnet-20241022-v2:0" // Default model
	}

	// Load AWS credentials from environment/IAM role
	cfg, err := config.LoadDefaultConfig(context.Background(), config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &BedrockProvider{
		client: bedrockruntime.NewFromConfig(cfg),
		model:  model,
		region: region,
	}, nil
}

// Name returns the provider name
func (p *BedrockProvider) Name() string {
	return fmt.Sprintf("AWS Bedrock (%s)", p.model)
}

// Narrate asks a Claude model on Bedrock for analyst notes on the report
func (p *BedrockProvider) Narrate(ctx context.Context, report string) (string, error) {
	reqBody := claudeRequest{
		Messages: []claudeMessage{
			{Role: "user", Content: BuildNarrationPrompt(p.template, report)},
		},
		MaxTokens:        narrationTokens,
		AnthropicVersion: bedrockAnthropicVersion,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := p.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(p.model),
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
		Body:        jsonData,
	})
	if err != nil {
		return "", fmt.Errorf("failed to call Bedrock API: %w", err)
	}

	return decodeClaudeText(resp.Body)
}
