package discord

import (
	"github.com/valentinpelus/signal/pkg/types"
)

// Webhook represents a Discord message object as relayed by a bot
// Reference: https://discord.com/developers/docs/resources/message#message-object
type Webhook struct {
	ID        string `json:"id"`
	ChannelID string `json:"channel_id"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
	Author    Author `json:"author"`
}

type Author struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Bot      bool   `json:"bot"`
}

// Adapter converts Discord messages to feedback submissions
type Adapter struct {
	Webhook Webhook
}

// ToSubmissions converts the message content
func (a *Adapter) ToSubmissions() ([]types.FeedbackSubmission, error) {
	ts, err := types.ParseTimestamp(a.Webhook.Timestamp)
	if err != nil {
		return nil, err
	}

	return []types.FeedbackSubmission{{
		Source:    a.GetSource(),
		Message:   a.Webhook.Content,
		Timestamp: ts,
	}}, nil
}

// GetSource returns the source identifier
func (a *Adapter) GetSource() string {
	return "Discord"
}
