package adapters

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/valentinpelus/signal/pkg/adapters/discord"
	"github.com/valentinpelus/signal/pkg/adapters/generic"
	"github.com/valentinpelus/signal/pkg/adapters/github"
	"github.com/valentinpelus/signal/pkg/types"
)

// ErrUnrecognizedPayload is returned when no enabled adapter accepts a body
var ErrUnrecognizedPayload = errors.New("payload not recognized by any enabled adapter")

// FeedbackAdapter converts an inbound payload format to feedback submissions
type FeedbackAdapter interface {
	ToSubmissions() ([]types.FeedbackSubmission, error)
	GetSource() string
}

// Names lists every adapter in detection order
var Names = []string{"generic", "github", "discord"}

// Registry manages enabled inbound adapters
type Registry struct {
	enabledAdapters map[string]bool
}

// NewRegistry creates a new adapter registry with specified enabled adapters.
// If no adapters are specified, all are enabled.
func NewRegistry(enabledAdapters []string) *Registry {
	registry := &Registry{
		enabledAdapters: make(map[string]bool),
	}

	if len(enabledAdapters) == 0 {
		enabledAdapters = Names
	}

	for _, adapter := range enabledAdapters {
		registry.enabledAdapters[strings.ToLower(strings.TrimSpace(adapter))] = true
	}

	return registry
}

// IsEnabled checks if an adapter is enabled
func (r *Registry) IsEnabled(adapterName string) bool {
	return r.enabledAdapters[adapterName]
}

// DetectAndConvert tries each enabled adapter in order and returns the
// submissions of the first one that accepts body, with that adapter's name
func (r *Registry) DetectAndConvert(body []byte) ([]types.FeedbackSubmission, string, error) {
	tries := map[string]func([]byte) (FeedbackAdapter, error){
		"generic": tryGeneric,
		"github":  tryGitHub,
		"discord": tryDiscord,
	}

	var reasons []string
	for _, name := range Names {
		if !r.IsEnabled(name) {
			continue
		}

		adapter, err := tries[name](body)
		if err != nil {
			reasons = append(reasons, fmt.Sprintf("%s: %v", name, err))
			continue
		}

		subs, err := adapter.ToSubmissions()
		if err != nil {
			reasons = append(reasons, fmt.Sprintf("%s: %v", name, err))
			continue
		}
		return subs, name, nil
	}

	return nil, "", fmt.Errorf("%w: %s", ErrUnrecognizedPayload, strings.Join(reasons, "; "))
}

func tryGeneric(body []byte) (FeedbackAdapter, error) {
	var webhook generic.Webhook
	if err := json.Unmarshal(body, &webhook); err != nil {
		return nil, err
	}

	if len(webhook.Items) == 0 && webhook.Message == "" {
		return nil, fmt.Errorf("no message or items")
	}

	return &generic.Adapter{Webhook: webhook}, nil
}

func tryGitHub(body []byte) (FeedbackAdapter, error) {
	var webhook github.Webhook
	if err := json.Unmarshal(body, &webhook); err != nil {
		return nil, err
	}

	if webhook.Issue == nil {
		return nil, fmt.Errorf("not a GitHub issue event")
	}
	kind := githubKind(webhook)
	if want := githubCreateActions[kind]; webhook.Action != want {
		return nil, fmt.Errorf("%s action %q carries no new feedback (only %q is accepted)", kind, webhook.Action, want)
	}

	return &github.Adapter{Webhook: webhook}, nil
}

func tryDiscord(body []byte) (FeedbackAdapter, error) {
	var webhook discord.Webhook
	if err := json.Unmarshal(body, &webhook); err != nil {
		return nil, err
	}

	if webhook.Content == "" || webhook.Author.Username == "" {
		return nil, fmt.Errorf("not a Discord message")
	}
	if webhook.Author.Bot {
		return nil, fmt.Errorf("bot messages are ignored")
	}

	return &discord.Adapter{Webhook: webhook}, nil
}

// The only GitHub action per event kind that becomes feedback
var githubCreateActions = map[string]string{
	"issue":   "opened",
	"comment": "created",
}

func githubKind(w github.Webhook) string {
	if w.Comment != nil {
		return "comment"
	}
	return "issue"
}
