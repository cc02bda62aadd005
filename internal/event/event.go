// Package event resolves the repository, issue and label of the event that triggered a transfer.
package event

import (
	"context"

	"github.com/google/go-github/v84/github"
	"github.com/isometry/gh-transfer-issue/internal/models"
)

// Source resolves the context of a triggering event.
type Source interface {
	Resolve(ctx context.Context) (*models.Event, error)
}

// FromIssuesEvent maps an issues payload onto the workflow's event model.
// Absent payload sections stay nil so the workflow can reject them.
func FromIssuesEvent(e *github.IssuesEvent) *models.Event {
	if e == nil {
		return &models.Event{}
	}
	out := &models.Event{}
	if repo := e.GetRepo(); repo != nil {
		out.Repository = &models.SourceRepository{
			Owner:  repo.GetOwner().GetLogin(),
			Name:   repo.GetName(),
			NodeID: repo.GetNodeID(),
		}
	}
	if issue := e.GetIssue(); issue != nil {
		out.Issue = &models.SourceIssue{
			NodeID: issue.GetNodeID(),
			Number: issue.GetNumber(),
			Title:  issue.GetTitle(),
			Body:   issue.GetBody(),
			Author: issue.GetUser().GetLogin(),
		}
	}
	if label := e.GetLabel(); label != nil {
		out.Label = &models.TriggerLabel{Name: label.GetName()}
	}
	return out
}
