package cmd

import (
	"context"

	"github.com/isometry/gh-transfer-issue/internal/config"
	"github.com/isometry/gh-transfer-issue/internal/event"
	"github.com/isometry/gh-transfer-issue/internal/runtime"
	"github.com/isometry/gh-transfer-issue/internal/transfer"
	"github.com/sethvargo/go-githubactions"
	"github.com/spf13/cobra"
)

func cmdAction() *cobra.Command {
	return &cobra.Command{
		Use:   "action",
		Short: "Transfer the issue of the running GitHub Actions event",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAction(cmd.Context())
		},
	}
}

func runAction(ctx context.Context) error {
	action := githubactions.New()
	return runtime.Present(action, executeAction(ctx, action))
}

func executeAction(ctx context.Context, action *githubactions.Action) *transfer.Outcome {
	settings := transferSettings()

	logger.Debug("connecting to GitHub...")
	ctl, err := connectGitHub(ctx)
	if err != nil {
		return &transfer.Outcome{
			Status: transfer.StatusFailed,
			Err:    &transfer.ConfigurationError{Input: "token", Cause: err},
		}
	}
	settings.Token = ctl.AccessToken()

	var source transfer.EventSource = event.NewActionSource(action)
	if config.FixtureRequested() {
		action.Warningf("Test mode enabled")
		source = event.NewFixtureSource(source, event.Fixture{
			IssueID: config.Fixture.IssueID,
			Label:   config.Fixture.Label,
			Body:    config.Fixture.Body,
			Title:   config.Fixture.Title,
		})
	}

	return transfer.NewWorkflow(ctl, source, settings, transfer.WithLogger(workflowLogger())).Run(ctx)
}
