package cmd

import (
	"context"
	"log/slog"
	"strings"

	"github.com/isometry/gh-transfer-issue/internal/config"
	"github.com/isometry/gh-transfer-issue/internal/controllers/aws"
	"github.com/isometry/gh-transfer-issue/internal/controllers/github"
	"github.com/isometry/gh-transfer-issue/internal/transfer"
	"github.com/isometry/gh-transfer-issue/internal/validation"
	"github.com/pkg/errors"
)

// newGitHubController wires a controller for the configured auth mode. It is not connected yet.
func newGitHubController(ctx context.Context) (*github.Controller, error) {
	opts := []github.GHOption{
		github.WithLogger(logger.With("component", "github-controller")),
		github.WithAuthMode(config.GitHub.AuthMode),
		github.WithToken(config.Transfer.Token),
		github.WithSSMKey(config.GitHub.SSMKey),
		github.WithWebhookSecret(validation.NewWebhookSecret(config.GitHub.WebhookSecret)),
		github.WithAPIURL(config.GitHub.APIURL),
		github.WithGraphQLURL(config.GitHub.GraphQLURL),
	}
	if strings.EqualFold(strings.TrimSpace(config.GitHub.AuthMode), github.AuthModeSSM) {
		logger.Debug("creating AWS controller...")
		awsCtl, err := aws.NewController(
			aws.WithLogger(logger.With("component", "aws-controller")),
			aws.WithContext(ctx))
		if err != nil {
			return nil, errors.Wrap(err, "failed to create AWS controller")
		}
		opts = append(opts, github.WithAWSController(awsCtl))
	}
	return github.NewController(opts...)
}

// connectGitHub creates and connects a controller, retrieving credentials on the way.
func connectGitHub(ctx context.Context) (*github.Controller, error) {
	ctl, err := newGitHubController(ctx)
	if err != nil {
		return nil, err
	}
	if _, err = ctl.Connect(ctx); err != nil {
		return nil, err
	}
	return ctl, nil
}

// transferSettings maps the configured inputs onto workflow settings.
func transferSettings() transfer.Settings {
	return transfer.Settings{
		TargetRepo:    config.Transfer.TargetRepo,
		Token:         config.Transfer.Token,
		BodyPattern:   config.Transfer.ReqRegexpMatch,
		RequiredLabel: config.Transfer.ReqLabel,
		CreateStub:    config.Enabled(config.Transfer.CreateStub),
		LabelSpec:     config.Transfer.ApplyLabel,
		ServerURL:     config.GitHub.ServerURL,
	}
}

func workflowLogger() *slog.Logger {
	return logger.With("component", "workflow")
}
