package types

// SlackMessage is a report payload accepted by both incoming webhooks and
// chat.postMessage. Text is the notification fallback for Blocks.
type SlackMessage struct {
	Channel     string       `json:"channel,omitempty"`
	Text        string       `json:"text"`
	Blocks      []SlackBlock `json:"blocks"`
	UnfurlLinks bool         `json:"unfurl_links"`
}

// SlackBlock is one Block Kit layout block. Reports use header, context,
// section and divider blocks; only context blocks carry Elements.
type SlackBlock struct {
	Type     string      `json:"type"`
	Text     *SlackText  `json:"text,omitempty"`
	Elements []SlackText `json:"elements,omitempty"`
}

// SlackText is a plain_text or mrkdwn composition object
type SlackText struct {
	Type  string `json:"type"`
	Text  string `json:"text"`
	Emoji bool   `json:"emoji,omitempty"` // plain_text only
}

// SlackAPIResponse is the envelope of every Slack Web API reply
type SlackAPIResponse struct {
	OK      bool   `json:"ok"`
	Error   string `json:"error,omitempty"`
	TS      string `json:"ts,omitempty"`
	Channel string `json:"channel,omitempty"`
}
