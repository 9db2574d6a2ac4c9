package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/valentinpelus/signal/pkg/types"
)

const (
	defaultAPIURL = "https://slack.com/api"
	// sectionLimit stays under the 3000 character cap of a section block
	sectionLimit = 2900
	reportTitle  = "📊 Signal Feedback Summary"
)

// Client posts feedback reports to Slack
type Client struct {
	webhookURL string
	botToken   string
	channelID  string
	apiURL     string
	client     *http.Client
	logger     *zap.Logger
}

// NewClient creates a new Slack client. Bot mode is used when both a bot
// token and a channel are set, otherwise the incoming webhook.
func NewClient(webhookURL, botToken, channelID string, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		webhookURL: webhookURL,
		botToken:   botToken,
		channelID:  channelID,
		apiURL:     defaultAPIURL,
		client:     &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
	}
}

// SetAPIURL overrides the Slack Web API base URL
func (c *Client) SetAPIURL(apiURL string) {
	c.apiURL = strings.TrimRight(apiURL, "/")
}

// Name identifies the channel in delivery results
func (c *Client) Name() string {
	return "slack"
}

// IsConfigured checks if Slack notifications are configured
func (c *Client) IsConfigured() bool {
	return c.webhookURL != "" || c.HasBotToken()
}

// HasBotToken checks if the bot token API can be used
func (c *Client) HasBotToken() bool {
	return c.botToken != "" && c.channelID != ""
}

// Send posts a Markdown report
func (c *Client) Send(ctx context.Context, report string) error {
	message := BuildReportMessage(report)

	if c.HasBotToken() {
		message.Channel = c.channelID
		_, err := c.postMessage(ctx, message)
		return err
	}
	if c.webhookURL != "" {
		return c.sendWithWebhook(ctx, message)
	}
	return fmt.Errorf("slack is not configured")
}

// BuildReportMessage lays a Markdown report out as Block Kit sections, one
// per paragraph
func BuildReportMessage(report string) types.SlackMessage {
	text := ConvertMarkdownToSlack(report)

	message := types.SlackMessage{
		Text:        truncateForSlack(text, sectionLimit),
		UnfurlLinks: false,
		Blocks: []types.SlackBlock{
			{
				Type: "header",
				Text: &types.SlackText{Type: "plain_text", Text: reportTitle, Emoji: true},
			},
		},
	}

	paragraphs := strings.Split(text, "\n\n")
	// the first paragraph is the title line, replaced by the header block
	if len(paragraphs) > 1 && strings.Contains(paragraphs[0], "Signal Feedback Summary") {
		message.Blocks = append(message.Blocks, types.SlackBlock{
			Type: "context",
			Elements: []types.SlackText{
				{Type: "mrkdwn", Text: strings.TrimSpace(paragraphs[0])},
			},
		})
		paragraphs = paragraphs[1:]
	}

	for _, p := range paragraphs {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if p == "---" || strings.HasPrefix(p, "---\n") {
			message.Blocks = append(message.Blocks, types.SlackBlock{Type: "divider"})
			p = strings.TrimSpace(strings.TrimPrefix(p, "---"))
			if p == "" {
				continue
			}
		}
		message.Blocks = append(message.Blocks, types.SlackBlock{
			Type: "section",
			Text: &types.SlackText{Type: "mrkdwn", Text: truncateForSlack(p, sectionLimit)},
		})
	}

	return message
}

// sendWithWebhook sends a message using Slack incoming webhook
func (c *Client) sendWithWebhook(ctx context.Context, message types.SlackMessage) error {
	jsonData, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal Slack message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send to Slack: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("Slack API returned status %d: %s", resp.StatusCode, string(body))
	}

	// Incoming webhooks typically just return "ok"
	if strings.TrimSpace(string(body)) != "ok" {
		var slackResp types.SlackAPIResponse
		if err := json.Unmarshal(body, &slackResp); err == nil && !slackResp.OK && slackResp.Error != "" {
			return fmt.Errorf("Slack error: %s", slackResp.Error)
		}
	}

	c.logger.Info("Report sent to Slack webhook")
	return nil
}

// postMessage sends a message using the Slack chat.postMessage API
// Reference: https://api.slack.com/methods/chat.postMessage
func (c *Client) postMessage(ctx context.Context, message types.SlackMessage) (string, error) {
	jsonData, err := json.Marshal(message)
	if err != nil {
		return "", fmt.Errorf("failed to marshal Slack message: %w", err)
	}

	var slackResp types.SlackAPIResponse
	if err := c.call(ctx, http.MethodPost, "chat.postMessage", bytes.NewBuffer(jsonData), &slackResp); err != nil {
		return "", err
	}

	if !slackResp.OK {
		return "", fmt.Errorf("Slack error: %s", slackResp.Error)
	}

	c.logger.Info("Report sent to Slack",
		zap.String("channel", slackResp.Channel),
		zap.String("ts", slackResp.TS))
	return slackResp.TS, nil
}

// ValidateToken calls auth.test to check the bot token
func (c *Client) ValidateToken(ctx context.Context) error {
	if !c.HasBotToken() {
		return fmt.Errorf("bot token not configured")
	}

	var result types.SlackAPIResponse
	if err := c.call(ctx, http.MethodGet, "auth.test", nil, &result); err != nil {
		return err
	}
	if !result.OK {
		return fmt.Errorf("token validation failed: %s", result.Error)
	}
	return nil
}

func (c *Client) call(ctx context.Context, method, endpoint string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.apiURL+"/"+endpoint, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+c.botToken)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call Slack %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse Slack response: %w", err)
	}
	return nil
}

// truncateForSlack truncates text to fit within Slack message limits
func truncateForSlack(text string, maxLen int) string {
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	return string(runes[:maxLen]) + "\n... (truncated)"
}

// ConvertMarkdownToSlack converts standard Markdown to Slack's mrkdwn format
func ConvertMarkdownToSlack(text string) string {
	// Convert **bold** to *bold*
	return strings.ReplaceAll(text, "**", "*")
}
