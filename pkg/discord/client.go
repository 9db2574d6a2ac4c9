// Package discord posts reports to a Discord channel through an incoming
// webhook.
package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/valentinpelus/signal/pkg/types"
)

// MaxContentLength is the Discord limit for message content
const MaxContentLength = 2000

const truncationMarker = "\n... (truncated)"

// Client wraps a Discord webhook
type Client struct {
	webhookURL string
	username   string
	client     *http.Client
	logger     *zap.Logger
}

// NewClient creates a new Discord client
func NewClient(webhookURL string, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		webhookURL: webhookURL,
		username:   "Signal",
		client:     &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
	}
}

// Name identifies the channel in delivery results
func (c *Client) Name() string {
	return "discord"
}

// IsConfigured checks if a webhook URL is set
func (c *Client) IsConfigured() bool {
	return c.webhookURL != ""
}

// Send posts a Markdown report. Discord renders **bold** natively.
func (c *Client) Send(ctx context.Context, report string) error {
	if !c.IsConfigured() {
		return fmt.Errorf("discord is not configured")
	}

	message := types.DiscordMessage{
		Content:  truncateContent(report, MaxContentLength),
		Username: c.username,
	}

	jsonData, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal Discord message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send to Discord: %w", err)
	}
	defer resp.Body.Close()

	// 204 without ?wait=true, 200 with it
	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("Discord API returned status %d: %s", resp.StatusCode, string(body))
	}

	c.logger.Info("Report sent to Discord")
	return nil
}

// truncateContent keeps the message, marker included, within maxLen characters
func truncateContent(text string, maxLen int) string {
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	keep := maxLen - len([]rune(truncationMarker))
	return string(runes[:keep]) + truncationMarker
}
