package event

import (
	"context"
	"encoding/json"

	"github.com/google/go-github/v84/github"
	"github.com/isometry/gh-transfer-issue/internal/models"
	"github.com/pkg/errors"
	"github.com/sethvargo/go-githubactions"
)

// ActionSource reads the event payload of the running GitHub Actions job.
type ActionSource struct {
	action *githubactions.Action
}

// NewActionSource creates an ActionSource reading through action.
func NewActionSource(action *githubactions.Action) *ActionSource {
	return &ActionSource{action: action}
}

// Resolve decodes the job's event payload as an issues event.
func (s *ActionSource) Resolve(_ context.Context) (*models.Event, error) {
	ghCtx, err := s.action.Context()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read the GitHub Actions context")
	}
	if len(ghCtx.Event) == 0 {
		return &models.Event{}, nil
	}
	raw, err := json.Marshal(ghCtx.Event)
	if err != nil {
		return nil, errors.Wrap(err, "failed to re-encode event payload")
	}
	var payload github.IssuesEvent
	if err = json.Unmarshal(raw, &payload); err != nil {
		return nil, errors.Wrapf(err, "failed to decode %s payload", ghCtx.EventName)
	}
	return FromIssuesEvent(&payload), nil
}
