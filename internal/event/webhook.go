package event

import (
	"context"

	"github.com/google/go-github/v84/github"
	"github.com/isometry/gh-transfer-issue/internal/models"
	"github.com/pkg/errors"
)

// IssuesEventType is the X-GitHub-Event value of issue webhooks.
const IssuesEventType = "issues"

// ParseIssuesWebhook decodes a webhook delivery that must be an issues event.
func ParseIssuesWebhook(eventType string, body []byte) (*github.IssuesEvent, error) {
	if eventType != IssuesEventType {
		return nil, errors.Errorf("unhandled event type: %s", eventType)
	}
	parsed, err := github.ParseWebHook(eventType, body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse webhook payload")
	}
	issuesEvent, ok := parsed.(*github.IssuesEvent)
	if !ok {
		return nil, errors.Errorf("unexpected payload type %T", parsed)
	}
	return issuesEvent, nil
}

// WebhookSource serves an already parsed webhook delivery.
type WebhookSource struct {
	event *github.IssuesEvent
}

// NewWebhookSource wraps a parsed issues event.
func NewWebhookSource(event *github.IssuesEvent) *WebhookSource {
	return &WebhookSource{event: event}
}

// Resolve returns the delivery's context.
func (s *WebhookSource) Resolve(_ context.Context) (*models.Event, error) {
	return FromIssuesEvent(s.event), nil
}
