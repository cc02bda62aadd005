package event

import (
	"context"

	"github.com/isometry/gh-transfer-issue/internal/models"
)

// Fixture is the synthetic issue and label used to exercise a transfer without a label-triggered event.
type Fixture struct {
	IssueID string
	Label   string
	Body    string
	Title   string
}

// FixtureSource substitutes a Fixture for the issue and label of a base source.
// The repository still comes from the base source.
type FixtureSource struct {
	base    Source
	fixture Fixture
}

// NewFixtureSource wraps base with fixture.
func NewFixtureSource(base Source, fixture Fixture) *FixtureSource {
	return &FixtureSource{base: base, fixture: fixture}
}

// Resolve returns the base repository with the synthetic issue authored by the repository owner.
// Without a base repository the issue has no author and the workflow rejects the event.
func (s *FixtureSource) Resolve(ctx context.Context) (*models.Event, error) {
	event, err := s.base.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	out := &models.Event{
		Issue: &models.SourceIssue{
			NodeID: s.fixture.IssueID,
			Title:  s.fixture.Title,
			Body:   s.fixture.Body,
		},
		Label: &models.TriggerLabel{Name: s.fixture.Label},
	}
	if event != nil && event.Repository != nil {
		out.Repository = event.Repository
		out.Issue.Author = event.Repository.Owner
	}
	return out, nil
}
