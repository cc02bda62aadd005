package cmd

import (
	"time"

	"github.com/isometry/gh-transfer-issue/internal/config"
	"github.com/isometry/gh-transfer-issue/internal/helpers"
)

var envMapString = map[*string]boundEnvVar[string]{
	&config.Global.Mode: {
		Name:        "mode",
		Description: "The application runtime mode. Possible values are 'action', 'lambda' and 'service'",
		Env:         helpers.Ptr("TRANSFER_MODE"),
		Short:       helpers.Ptr("m"),
	},
	&config.Transfer.TargetRepo: {
		Name:        "target-repo",
		Description: "The repository, under the source owner, the issue is transferred to",
		Env:         helpers.Ptr("INPUT_TARGET_REPO"),
		Short:       helpers.Ptr("t"),
	},
	&config.Transfer.Token: {
		Name:        "token",
		Description: "The token used for every GitHub call in 'token' auth mode",
		Env:         helpers.Ptr("INPUT_TOKEN"),
	},
	&config.Transfer.ReqRegexpMatch: {
		Name:        "req-regexp-match",
		Description: "Only transfer issues whose body matches this regular expression",
		Env:         helpers.Ptr("INPUT_REQ_REGEXP_MATCH"),
	},
	&config.Transfer.ReqLabel: {
		Name:        "req-label",
		Description: "The label expected to trigger the transfer. A mismatch is only logged",
		Env:         helpers.Ptr("INPUT_REQ_LABEL"),
	},
	&config.Transfer.CreateStub: {
		Name:        "create-stub",
		Description: "Leave a closed and locked stub issue in the source repository unless 'false'",
		Env:         helpers.Ptr("INPUT_CREATE_STUB"),
	},
	&config.Transfer.ApplyLabel: {
		Name:        "apply-label",
		Description: "Label the transferred issue with 'name' or 'name:color' unless empty or 'false'",
		Env:         helpers.Ptr("INPUT_APPLY_LABEL"),
	},
	&config.Transfer.Debug: {
		Name:        "debug",
		Description: "Log at debug level unless 'false'",
		Env:         helpers.Ptr("INPUT_DEBUG"),
	},
	&config.Fixture.IssueID: {
		Name:        "issue-id",
		Description: "Node id of an issue to transfer instead of the event's issue (test mode)",
		Env:         helpers.Ptr("INPUT_ISSUEID"),
	},
	&config.Fixture.Label: {
		Name:        "test-label",
		Description: "Trigger label used in test mode",
		Env:         helpers.Ptr("INPUT_TESTLABEL"),
	},
	&config.Fixture.Body: {
		Name:        "test-body",
		Description: "Issue body used in test mode",
		Env:         helpers.Ptr("INPUT_TESTBODY"),
	},
	&config.Fixture.Title: {
		Name:        "test-title",
		Description: "Issue title used in test mode",
		Env:         helpers.Ptr("INPUT_TESTTITLE"),
	},
	&config.GitHub.AuthMode: {
		Name:        "github-auth-mode",
		Description: "Authentication credentials provider. Supported values are 'token' and 'ssm'.",
		Short:       helpers.Ptr("A"),
	},
	&config.GitHub.SSMKey: {
		Name:        "github-ssm-key",
		Description: "The SSM parameter key holding the GitHub token and webhook secret as JSON",
	},
	&config.GitHub.WebhookSecret: {
		Name:        "github-webhook-secret",
		Description: "The secret to use when validating incoming GitHub webhook payloads. If not specified, no validation is performed",
	},
	&config.GitHub.ServerURL: {
		Name:        "github-server-url",
		Description: "The GitHub web URL used to build issue links",
	},
	&config.GitHub.APIURL: {
		Name:        "github-api-url",
		Description: "The GitHub REST API URL",
	},
	&config.GitHub.GraphQLURL: {
		Name:        "github-graphql-url",
		Description: "The GitHub GraphQL API URL",
	},
	&config.Service.Addr: {
		Name:        "service-host-addr",
		Description: "The address to serve the service on (default all interfaces in dual-stack mode)",
		Short:       helpers.Ptr("H"),
	},
	&config.Service.Port: {
		Name:        "service-host-port",
		Description: "The port to serve the service on",
		Short:       helpers.Ptr("p"),
	},
	&config.Service.Path: {
		Name:        "service-host-path",
		Description: "The path to serve the service on",
		Short:       helpers.Ptr("P"),
	},
}

var envMapBool = map[*bool]boundEnvVar[bool]{
	&config.Global.Logging.CallerTrace: {
		Name:        "verbosity-caller-trace",
		Description: "Enable caller trace in logs",
		Short:       helpers.Ptr("V"),
	},
}

var envMapCount = map[*int]boundEnvVar[int]{
	&config.Global.Logging.Verbosity: {
		Name:        "verbosity",
		Description: "Increase logger verbosity (default WarnLevel)",
		Short:       helpers.Ptr("v"),
	},
}

var envMapDuration = map[*time.Duration]boundEnvVar[time.Duration]{
	&config.Service.Timeout: {
		Name:        "service-io-timeout",
		Description: "The timeout for I/O operations",
	},
}
