package github

import (
	"strings"

	"github.com/valentinpelus/signal/pkg/types"
)

// Webhook represents an issues or issue_comment event from GitHub
// Reference: https://docs.github.com/en/webhooks/webhook-events-and-payloads#issues
type Webhook struct {
	Action     string     `json:"action"`
	Issue      *Issue     `json:"issue"`
	Comment    *Comment   `json:"comment"`
	Repository Repository `json:"repository"`
}

type Issue struct {
	Number    int    `json:"number"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	HTMLURL   string `json:"html_url"`
	User      User   `json:"user"`
	CreatedAt string `json:"created_at"`
}

type Comment struct {
	Body      string `json:"body"`
	HTMLURL   string `json:"html_url"`
	User      User   `json:"user"`
	CreatedAt string `json:"created_at"`
}

type User struct {
	Login string `json:"login"`
}

type Repository struct {
	FullName string `json:"full_name"`
}

// Adapter converts GitHub issue events to feedback submissions
type Adapter struct {
	Webhook Webhook
}

// ToSubmissions uses the comment body for comment events and the issue
// title plus body otherwise
func (a *Adapter) ToSubmissions() ([]types.FeedbackSubmission, error) {
	w := a.Webhook

	var message, created string
	if w.Comment != nil {
		message = w.Comment.Body
		created = w.Comment.CreatedAt
	} else {
		message = strings.TrimSpace(w.Issue.Title + "\n\n" + w.Issue.Body)
		created = w.Issue.CreatedAt
	}

	ts, err := types.ParseTimestamp(created)
	if err != nil {
		return nil, err
	}

	return []types.FeedbackSubmission{{
		Source:    a.GetSource(),
		Message:   message,
		Timestamp: ts,
	}}, nil
}

// GetSource returns the source identifier
func (a *Adapter) GetSource() string {
	return "GitHub"
}
