package generic

import (
	"github.com/valentinpelus/signal/pkg/types"
)

// Item is one feedback entry in the generic format
type Item struct {
	Source       string `json:"source"`
	Message      string `json:"message"`
	CustomerType string `json:"customerType"`
	Timestamp    string `json:"timestamp"`
}

// Webhook accepts either a single item or a batch under "items"
type Webhook struct {
	Item
	Items []Item `json:"items"`
}

// Adapter converts generic payloads to feedback submissions
type Adapter struct {
	Webhook Webhook
}

// ToSubmissions returns the batch when present, otherwise the single item
func (a *Adapter) ToSubmissions() ([]types.FeedbackSubmission, error) {
	items := a.Webhook.Items
	if len(items) == 0 {
		items = []Item{a.Webhook.Item}
	}

	subs := make([]types.FeedbackSubmission, 0, len(items))
	for _, it := range items {
		ts, err := types.ParseTimestamp(it.Timestamp)
		if err != nil {
			return nil, err
		}
		subs = append(subs, types.FeedbackSubmission{
			Source:       it.Source,
			Message:      it.Message,
			CustomerType: it.CustomerType,
			Timestamp:    ts,
		})
	}
	return subs, nil
}

// GetSource returns the source identifier
func (a *Adapter) GetSource() string {
	return "generic"
}
