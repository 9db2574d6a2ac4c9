package types

import (
	"time"

	"github.com/valentinpelus/signal/pkg/analysis"
)

// FeedbackItem is the wire and storage representation of a classified feedback record
type FeedbackItem struct {
	ID           string            `json:"id"`
	Source       string            `json:"source"`
	Message      string            `json:"message"`
	CustomerType string            `json:"customerType"`
	Timestamp    time.Time         `json:"timestamp"`
	Analysis     analysis.Analysis `json:"analysis"`
}

// StoredFeedback pairs a feedback item with its position in the master collection
type StoredFeedback struct {
	Position int64        `json:"position"`
	Item     FeedbackItem `json:"item"`
}

// FeedbackStore holds all persisted feedback for the JSON file backend
type FeedbackStore struct {
	Feedbacks []StoredFeedback `json:"feedbacks"`
}

// FeedbackSubmission is an unclassified feedback item as submitted by a client
type FeedbackSubmission struct {
	Source       string    `json:"source"`
	Message      string    `json:"message"`
	CustomerType string    `json:"customerType"`
	Timestamp    time.Time `json:"timestamp,omitempty"`
}
