package cmd

import (
	"context"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/isometry/gh-transfer-issue/internal/runtime"
	"github.com/spf13/cobra"
)

func cmdLambda() *cobra.Command {
	return &cobra.Command{
		Use:   "lambda",
		Short: "Serve issues webhooks from AWS Lambda behind API Gateway v2",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return reportError(runLambda(cmd.Context()))
		},
	}
}

func runLambda(ctx context.Context) error {
	processor := newProcessor()
	logger.Info("lambda starting...")
	lambda.StartWithOptions(processor.HandleLambda,
		lambda.WithContext(ctx))
	return nil
}

// newProcessor opens a fresh GitHub session for every delivery.
func newProcessor() *runtime.Processor {
	return runtime.NewProcessor(
		func(ctx context.Context) (runtime.Session, error) {
			ctl, err := connectGitHub(ctx)
			if err != nil {
				return nil, err
			}
			return ctl, nil
		},
		transferSettings(),
		runtime.WithLogger(logger.With("component", "runtime")))
}
