package cmd

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/isometry/gh-transfer-issue/internal/config"
	"github.com/isometry/gh-transfer-issue/internal/transfer"
	"github.com/sethvargo/go-githubactions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const labeledPayload = `{
  "action": "labeled",
  "issue": {"node_id": "I_1", "number": 3, "title": "Crash", "body": "please move", "user": {"login": "octocat"}},
  "label": {"name": "move"},
  "repository": {"node_id": "R_source", "name": "app", "owner": {"login": "acme"}}
}`

func preserveConfig(t *testing.T) {
	t.Helper()
	global, gh, tr, fx, svc := config.Global, config.GitHub, config.Transfer, config.Fixture, config.Service
	t.Cleanup(func() {
		config.Global, config.GitHub, config.Transfer, config.Fixture, config.Service = global, gh, tr, fx, svc
	})
}

func TestNewBindsInputs(t *testing.T) {
	preserveConfig(t)
	t.Chdir(t.TempDir())
	t.Setenv("INPUT_TARGET_REPO", "app-archive")
	t.Setenv("INPUT_CREATE_STUB", "false")
	t.Setenv("INPUT_APPLY_LABEL", "")
	t.Setenv("TRANSFER_MODE", "lambda")

	cmd := New()
	require.NoError(t, cmd.PersistentFlags().Parse([]string{"--apply-label", "bug:ff0000"}))

	assert.Equal(t, "app-archive", config.Transfer.TargetRepo)
	assert.Equal(t, "false", config.Transfer.CreateStub)
	assert.Equal(t, "bug:ff0000", config.Transfer.ApplyLabel)
	assert.Equal(t, config.ModeLambda, config.Global.Mode)
	assert.Equal(t, "false", config.Transfer.Debug)
}

func TestInvalidMode(t *testing.T) {
	preserveConfig(t)
	t.Chdir(t.TempDir())

	var stderr bytes.Buffer
	cmd := New()
	cmd.SetArgs([]string{"--mode", "bogus"})
	cmd.SetOut(io.Discard)
	cmd.SetErr(&stderr)
	assert.EqualError(t, cmd.Execute(), "invalid mode: bogus")
	assert.Empty(t, stderr.String())
}

func TestConfigFileFlag(t *testing.T) {
	preserveConfig(t)
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "transfer.yaml")
	require.NoError(t, os.WriteFile(path, []byte("global:\n  mode: bogus\ntransfer:\n  targetRepo: from-file\n"), 0o600))

	cmd := New()
	cmd.SetArgs([]string{"-c", path, "--target-repo", "from-flag"})
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	assert.EqualError(t, cmd.Execute(), "invalid mode: bogus")
	assert.Equal(t, "from-flag", config.Transfer.TargetRepo)
}

func TestConfigFileKeepsEnvInputs(t *testing.T) {
	preserveConfig(t)
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("INPUT_TARGET_REPO", "app-archive")
	t.Setenv("INPUT_TOKEN", "ghp_env")
	t.Setenv("INPUT_CREATE_STUB", "")
	path := filepath.Join(dir, "transfer.yaml")
	require.NoError(t, os.WriteFile(path, []byte("global:\n  mode: bogus\ntransfer:\n  createStub: \"false\"\n"), 0o600))

	cmd := New()
	cmd.SetArgs([]string{"-c", path})
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	assert.EqualError(t, cmd.Execute(), "invalid mode: bogus")
	assert.Equal(t, "app-archive", config.Transfer.TargetRepo)
	assert.Equal(t, "ghp_env", config.Transfer.Token)
	assert.Equal(t, "false", config.Transfer.CreateStub)
}

func newTestAction(t *testing.T, payload string) *githubactions.Action {
	t.Helper()
	path := filepath.Join(t.TempDir(), "event.json")
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o600))
	env := map[string]string{"GITHUB_EVENT_NAME": "issues", "GITHUB_EVENT_PATH": path}
	return githubactions.New(
		githubactions.WithWriter(io.Discard),
		githubactions.WithGetenv(func(key string) string { return env[key] }),
	)
}

func fakeGitHub(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /repos/acme/app-archive", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"node_id":"R_target","name":"app-archive"}`))
	})
	mux.HandleFunc("POST /graphql", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"transferIssue":{"issue":{"number":42}}}}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func configureAction(t *testing.T, srv *httptest.Server) {
	t.Helper()
	preserveConfig(t)
	require.NoError(t, config.SetDefaults())
	config.GitHub.APIURL = srv.URL
	config.GitHub.GraphQLURL = srv.URL + "/graphql"
	config.Transfer.TargetRepo = "app-archive"
	config.Transfer.Token = "ghp_test"
	config.Transfer.CreateStub = "false"
}

func TestExecuteAction(t *testing.T) {
	srv := fakeGitHub(t)

	t.Run("transferred", func(t *testing.T) {
		configureAction(t, srv)
		outcome := executeAction(context.Background(), newTestAction(t, labeledPayload))
		require.NoError(t, outcome.Err)
		assert.Equal(t, transfer.StatusTransferred, outcome.Status)
		assert.Equal(t, "https://github.com/acme/app-archive/issues/42", outcome.Outputs.NewIssueURL)
	})

	t.Run("fixture", func(t *testing.T) {
		configureAction(t, srv)
		config.Fixture.IssueID = "I_fixture"
		config.Fixture.Label = "move"
		outcome := executeAction(context.Background(), newTestAction(t, labeledPayload))
		require.NoError(t, outcome.Err)
		assert.Equal(t, "I_fixture", outcome.Event.Issue.NodeID)
		assert.Equal(t, "acme", outcome.Event.Issue.Author)
	})

	t.Run("missing_token", func(t *testing.T) {
		configureAction(t, srv)
		config.Transfer.Token = ""
		outcome := executeAction(context.Background(), newTestAction(t, labeledPayload))
		var target *transfer.ConfigurationError
		require.ErrorAs(t, outcome.Err, &target)
		assert.Equal(t, "token", target.Input)
	})
}
