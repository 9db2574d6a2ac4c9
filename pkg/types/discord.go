package types

// DiscordMessage represents a Discord webhook execution payload
// Reference: https://discord.com/developers/docs/resources/webhook#execute-webhook
type DiscordMessage struct {
	Content  string `json:"content"`
	Username string `json:"username,omitempty"`
}
