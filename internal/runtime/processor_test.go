package runtime_test

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/isometry/gh-transfer-issue/internal/models"
	"github.com/isometry/gh-transfer-issue/internal/runtime"
	"github.com/isometry/gh-transfer-issue/internal/transfer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const labeledDelivery = `{
  "action": "labeled",
  "issue": {"node_id": "I_1", "number": 3, "title": "Crash", "body": "please move", "user": {"login": "octocat"}},
  "label": {"name": "move"},
  "repository": {"node_id": "R_source", "name": "app", "owner": {"login": "acme"}}
}`

// fakeSession is a platform that always succeeds unless told otherwise.
type fakeSession struct {
	signatureErr error
	lookupErr    error
	calls        []string
}

func (f *fakeSession) AccessToken() string { return "ghp_session" }

func (f *fakeSession) ValidateWebhookSecret([]byte, map[string]string) error {
	return f.signatureErr
}

func (f *fakeSession) GetRepository(_ context.Context, owner, name string) (*models.TargetRepository, error) {
	f.calls = append(f.calls, "GetRepository")
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	return &models.TargetRepository{Owner: owner, Name: name, NodeID: "R_target"}, nil
}

func (f *fakeSession) TransferIssue(context.Context, string, string, string) (int, error) {
	f.calls = append(f.calls, "TransferIssue")
	return 42, nil
}

func (f *fakeSession) CreateIssue(context.Context, string, string, string, string) (int, error) {
	f.calls = append(f.calls, "CreateIssue")
	return 9, nil
}

func (f *fakeSession) CreateComment(context.Context, string, string, int, string) error {
	f.calls = append(f.calls, "CreateComment")
	return nil
}

func (f *fakeSession) CloseIssue(context.Context, string, string, int) error {
	f.calls = append(f.calls, "CloseIssue")
	return nil
}

func (f *fakeSession) LockIssue(context.Context, string, string, int, string) error {
	f.calls = append(f.calls, "LockIssue")
	return nil
}

func (f *fakeSession) ListLabels(context.Context, string, string) ([]models.Label, error) {
	f.calls = append(f.calls, "ListLabels")
	return nil, nil
}

func (f *fakeSession) CreateLabel(context.Context, string, string, models.Label) error {
	f.calls = append(f.calls, "CreateLabel")
	return nil
}

func (f *fakeSession) ReplaceLabels(context.Context, string, string, int, []string) error {
	f.calls = append(f.calls, "ReplaceLabels")
	return nil
}

func newProcessor(session *fakeSession, settings transfer.Settings) *runtime.Processor {
	return runtime.NewProcessor(func(context.Context) (runtime.Session, error) {
		return session, nil
	}, settings)
}

func TestProcess(t *testing.T) {
	testCases := []struct {
		Name           string
		Headers        map[string]string
		Body           string
		Session        *fakeSession
		Settings       transfer.Settings
		ExpectedStatus int
		ExpectedBody   string
		ExpectedCalls  int
	}{
		{
			Name:           "missing_event_type",
			Body:           labeledDelivery,
			ExpectedStatus: http.StatusUnprocessableEntity,
		},
		{
			Name:           "non_issues_event",
			Headers:        map[string]string{"X-GitHub-Event": "push"},
			Body:           `{}`,
			ExpectedStatus: http.StatusBadRequest,
		},
		{
			Name:           "invalid_signature",
			Headers:        map[string]string{"X-GitHub-Event": "issues"},
			Body:           labeledDelivery,
			Session:        &fakeSession{signatureErr: errors.New("payload signature check failed")},
			ExpectedStatus: http.StatusForbidden,
		},
		{
			Name:           "non_labeled_action",
			Headers:        map[string]string{"X-GitHub-Event": "issues"},
			Body:           strings.Replace(labeledDelivery, `"labeled"`, `"opened"`, 1),
			ExpectedStatus: http.StatusUnprocessableEntity,
		},
		{
			Name:           "transferred",
			Headers:        map[string]string{"X-GitHub-Event": "issues", "X-GitHub-Delivery": "d-1"},
			Body:           labeledDelivery,
			Settings:       transfer.Settings{TargetRepo: "app-archive"},
			ExpectedStatus: http.StatusCreated,
			ExpectedBody:   `{"destination_repo":"app-archive","new_issue_number":"42","new_issue_url":"https://github.com/acme/app-archive/issues/42"}`,
			ExpectedCalls:  2,
		},
		{
			Name:           "skipped",
			Headers:        map[string]string{"X-GitHub-Event": "issues"},
			Body:           labeledDelivery,
			Settings:       transfer.Settings{TargetRepo: "app-archive", BodyPattern: "urgent"},
			ExpectedStatus: http.StatusOK,
			ExpectedBody:   `Issue not transferred because body doesn't match "urgent"`,
		},
		{
			Name:           "required_label_mismatch",
			Headers:        map[string]string{"X-GitHub-Event": "issues"},
			Body:           strings.Replace(labeledDelivery, `"name": "move"`, `"name": "good first issue"`, 1),
			Settings:       transfer.Settings{TargetRepo: "app-archive", RequiredLabel: "transfer-me"},
			ExpectedStatus: http.StatusOK,
			ExpectedBody:   "ignored label good first issue",
		},
		{
			Name:           "required_label_match",
			Headers:        map[string]string{"X-GitHub-Event": "issues"},
			Body:           labeledDelivery,
			Settings:       transfer.Settings{TargetRepo: "app-archive", RequiredLabel: "move"},
			ExpectedStatus: http.StatusCreated,
			ExpectedCalls:  2,
		},
		{
			Name:           "configuration_error",
			Headers:        map[string]string{"X-GitHub-Event": "issues"},
			Body:           labeledDelivery,
			ExpectedStatus: http.StatusBadRequest,
			ExpectedBody:   "transfer failed",
		},
		{
			Name:           "verification_error",
			Headers:        map[string]string{"X-GitHub-Event": "issues"},
			Body:           labeledDelivery,
			Session:        &fakeSession{lookupErr: errors.New("404 Not Found")},
			Settings:       transfer.Settings{TargetRepo: "missing"},
			ExpectedStatus: http.StatusNotFound,
			ExpectedCalls:  1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			session := tc.Session
			if session == nil {
				session = &fakeSession{}
			}
			response, err := newProcessor(session, tc.Settings).Process(context.Background(), models.Request{
				Body:    tc.Body,
				Headers: tc.Headers,
			})

			assert.Equal(t, tc.ExpectedStatus, response.StatusCode)
			if tc.ExpectedBody != "" {
				assert.Equal(t, tc.ExpectedBody, response.Body)
			}
			if tc.ExpectedStatus >= http.StatusBadRequest {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Len(t, session.calls, tc.ExpectedCalls)
		})
	}
}

func TestProcessSessionFailure(t *testing.T) {
	processor := runtime.NewProcessor(func(context.Context) (runtime.Session, error) {
		return nil, errors.New("failed to fetch credentials from SSM")
	}, transfer.Settings{TargetRepo: "app-archive"})

	response, err := processor.Process(context.Background(), models.Request{
		Body:    labeledDelivery,
		Headers: map[string]string{"X-GitHub-Event": "issues"},
	})
	assert.Equal(t, http.StatusInternalServerError, response.StatusCode)
	assert.ErrorContains(t, err, "SSM")
}

func TestStatusCode(t *testing.T) {
	cause := errors.New("boom")
	testCases := []struct {
		Name     string
		Err      error
		Expected int
	}{
		{Name: "configuration", Err: &transfer.ConfigurationError{Input: "token", Cause: cause}, Expected: http.StatusBadRequest},
		{Name: "context", Err: &transfer.ContextError{Cause: cause}, Expected: http.StatusUnprocessableEntity},
		{Name: "verification", Err: &transfer.VerificationError{Repository: "x", Cause: cause}, Expected: http.StatusNotFound},
		{Name: "remote", Err: &transfer.RemoteCallError{Operation: "transfer issue", Cause: cause}, Expected: http.StatusBadGateway},
		{Name: "unknown", Err: cause, Expected: http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			assert.Equal(t, tc.Expected, runtime.StatusCode(tc.Err))
		})
	}
}

func TestServeHTTP(t *testing.T) {
	session := &fakeSession{}
	srv := httptest.NewServer(newProcessor(session, transfer.Settings{TargetRepo: "app-archive"}))
	t.Cleanup(srv.Close)

	t.Run("method_not_allowed", func(t *testing.T) {
		resp, err := http.Get(srv.URL)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	})

	t.Run("transferred", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodPost, srv.URL, strings.NewReader(labeledDelivery))
		require.NoError(t, err)
		req.Header.Set("X-GitHub-Event", "issues")
		req.Header.Set("Content-Type", "application/json")

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	})
}

func TestHandleLambda(t *testing.T) {
	testCases := []struct {
		Name           string
		Request        events.APIGatewayV2HTTPRequest
		ExpectedStatus int
		ExpectedBody   string
	}{
		{
			Name: "plain_body",
			Request: events.APIGatewayV2HTTPRequest{
				Headers: map[string]string{"x-github-event": "issues"},
				Body:    labeledDelivery,
			},
			ExpectedStatus: http.StatusCreated,
			ExpectedBody:   "new_issue_url",
		},
		{
			Name: "base64_body",
			Request: events.APIGatewayV2HTTPRequest{
				Headers:         map[string]string{"x-github-event": "issues"},
				Body:            base64.StdEncoding.EncodeToString([]byte(labeledDelivery)),
				IsBase64Encoded: true,
			},
			ExpectedStatus: http.StatusCreated,
			ExpectedBody:   "new_issue_url",
		},
		{
			Name: "invalid_base64",
			Request: events.APIGatewayV2HTTPRequest{
				Headers:         map[string]string{"x-github-event": "issues"},
				Body:            "%%%",
				IsBase64Encoded: true,
			},
			ExpectedStatus: http.StatusBadRequest,
			ExpectedBody:   `"error"`,
		},
		{
			Name: "non_issues_event",
			Request: events.APIGatewayV2HTTPRequest{
				Headers: map[string]string{"x-github-event": "push"},
				Body:    `{}`,
			},
			ExpectedStatus: http.StatusBadRequest,
			ExpectedBody:   "unhandled event type: push",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			processor := newProcessor(&fakeSession{}, transfer.Settings{TargetRepo: "app-archive"})
			resp, err := processor.HandleLambda(context.Background(), tc.Request)
			require.NoError(t, err)
			assert.Equal(t, tc.ExpectedStatus, resp.StatusCode)
			assert.Equal(t, "application/json", resp.Headers["Content-Type"])
			assert.Contains(t, resp.Body, tc.ExpectedBody)
		})
	}
}
