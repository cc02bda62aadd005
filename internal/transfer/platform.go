package transfer

import (
	"context"

	"github.com/isometry/gh-transfer-issue/internal/models"
)

// Platform is the issue-tracker surface the workflow drives.
type Platform interface {
	GetRepository(ctx context.Context, owner, name string) (*models.TargetRepository, error)
	TransferIssue(ctx context.Context, issueID, repositoryID, mutationID string) (int, error)
	CreateIssue(ctx context.Context, owner, repo, title, body string) (int, error)
	CreateComment(ctx context.Context, owner, repo string, number int, body string) error
	CloseIssue(ctx context.Context, owner, repo string, number int) error
	LockIssue(ctx context.Context, owner, repo string, number int, reason string) error
	ListLabels(ctx context.Context, owner, repo string) ([]models.Label, error)
	CreateLabel(ctx context.Context, owner, repo string, label models.Label) error
	ReplaceLabels(ctx context.Context, owner, repo string, number int, labels []string) error
}

// EventSource resolves the context of the triggering event.
type EventSource interface {
	Resolve(ctx context.Context) (*models.Event, error)
}
