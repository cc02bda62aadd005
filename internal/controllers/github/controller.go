// Package github provides a Controller for the GitHub operations the transfer workflow performs and its credentials management.
package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v84/github"
	"github.com/isometry/gh-transfer-issue/internal/controllers/aws"
	"github.com/isometry/gh-transfer-issue/internal/helpers"
	"github.com/isometry/gh-transfer-issue/internal/models"
	"github.com/isometry/gh-transfer-issue/internal/validation"
	"github.com/pkg/errors"
	"github.com/shurcooL/githubv4"
	"golang.org/x/oauth2"
)

const (
	// AuthModeToken uses the token supplied as an input.
	AuthModeToken = "token"
	// AuthModeSSM reads Credentials as JSON from an SSM parameter.
	AuthModeSSM = "ssm"

	defaultAPIURL     = "https://api.github.com/"
	defaultGraphQLURL = "https://api.github.com/graphql"
	labelsPerPage     = 100
)

// GHOption is a functional option used to configure or modify the properties of a Controller instance.
type GHOption func(*Controller)

// NewController initializes a new Controller with the provided options, setting defaults where necessary.
func NewController(opts ...GHOption) (*Controller, error) {
	_inst := new(Controller)
	for _, opt := range opts {
		opt(_inst)
	}
	if _inst.logger == nil {
		_inst.logger = helpers.NewNoopLogger()
	}
	if _inst.authMode == "" {
		_inst.authMode = AuthModeToken
	}
	_inst.logger = _inst.logger.With("authMode", _inst.authMode)
	return _inst, nil
}

// Client holds the REST and GraphQL clients sharing one authenticated transport.
type Client struct {
	V3 *github.Client
	V4 *githubv4.Client
}

// Controller encapsulates GitHub operations and credentials management for the supported authentication modes.
type Controller struct {
	Credentials

	authMode      string
	ssmKey        string
	apiURL        string
	graphqlURL    string
	logger        *slog.Logger
	awsController *aws.Controller
	clients       *Client
}

// Credentials is a helper struct to hold the GitHub credentials.
type Credentials struct {
	Token         string                    `json:"token,omitempty"`
	WebhookSecret *validation.WebhookSecret `json:"webhook_secret,omitempty"`
}

// RetrieveCredentials resolves the token from the inputs or SSM.
func (g *Controller) RetrieveCredentials(ctx context.Context) error {
	switch strings.TrimSpace(strings.ToLower(g.authMode)) {
	case AuthModeToken:
		if g.Token == "" {
			return errors.New("`token` input must be defined")
		}
		return nil
	case AuthModeSSM:
		if g.Token != "" {
			g.logger.Debug("using cached credentials...")
			return nil
		}
		if g.awsController == nil {
			return errors.New("ssm auth mode requires an AWS controller")
		}
		g.logger.Debug("retrieving credentials from SSM...")
		secret, err := g.awsController.GetSecret(ctx, g.ssmKey, true)
		if err != nil {
			return errors.Wrap(err, "failed to fetch credentials from SSM")
		}
		if err = json.Unmarshal([]byte(secret), &g.Credentials); err != nil {
			return errors.Wrap(err, "failed to unmarshal credentials")
		}
		if g.Token == "" {
			return errors.Errorf("SSM parameter %s holds no token", g.ssmKey)
		}
		return nil
	default:
		return fmt.Errorf("unsupported auth mode: %s", g.authMode)
	}
}

// Connect retrieves the credentials and spawns the REST and GraphQL clients.
func (g *Controller) Connect(ctx context.Context) (*Client, error) {
	if g.clients != nil {
		return g.clients, nil
	}
	if err := g.RetrieveCredentials(ctx); err != nil {
		return nil, err
	}

	g.logger.Debug("spawning clients...")
	base := &http.Client{Transport: &loggingRoundTripper{logger: g.logger, next: http.DefaultTransport}}
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: g.Token})
	httpClient := oauth2.NewClient(context.WithValue(ctx, oauth2.HTTPClient, base), src)

	clientV3 := github.NewClient(httpClient)
	if g.apiURL != "" && g.apiURL != defaultAPIURL {
		baseURL, err := url.Parse(strings.TrimSuffix(g.apiURL, "/") + "/")
		if err != nil {
			return nil, errors.Wrapf(err, "invalid API URL %s", g.apiURL)
		}
		clientV3.BaseURL = baseURL
	}

	graphqlURL := g.graphqlURL
	if graphqlURL == "" {
		graphqlURL = defaultGraphQLURL
	}

	g.clients = &Client{
		V3: clientV3,
		V4: githubv4.NewEnterpriseClient(graphqlURL, httpClient),
	}
	return g.clients, nil
}

// AccessToken returns the token the clients authenticate with, once credentials are retrieved.
func (g *Controller) AccessToken() string {
	return g.Token
}

// ValidateWebhookSecret checks a delivery signature. Without a configured secret no validation is performed.
func (g *Controller) ValidateWebhookSecret(body []byte, headers map[string]string) error {
	if g.WebhookSecret == nil {
		g.logger.Debug("no webhook secret configured, skipping signature validation")
		return nil
	}
	return g.WebhookSecret.ValidateSignature(body, headers)
}

func (g *Controller) connected() (*Client, error) {
	if g.clients == nil {
		return nil, errors.New("github controller is not connected")
	}
	return g.clients, nil
}

// GetRepository looks up a repository and returns its persistent identity.
func (g *Controller) GetRepository(ctx context.Context, owner, name string) (*models.TargetRepository, error) {
	clients, err := g.connected()
	if err != nil {
		return nil, err
	}
	repo, _, err := clients.V3.Repositories.Get(ctx, owner, name)
	if err != nil {
		return nil, err
	}
	g.logger.Debug("retrieved repository", slog.String("repository", repo.GetFullName()), slog.String("nodeId", repo.GetNodeID()))
	return &models.TargetRepository{
		Owner:  owner,
		Name:   name,
		NodeID: repo.GetNodeID(),
	}, nil
}

// TransferIssue moves an issue to the repository identified by repositoryID and returns its new number.
func (g *Controller) TransferIssue(ctx context.Context, issueID, repositoryID, mutationID string) (int, error) {
	clients, err := g.connected()
	if err != nil {
		return 0, err
	}
	var mutation struct {
		TransferIssue struct {
			Issue struct {
				Number githubv4.Int
			}
		} `graphql:"transferIssue(input: $input)"`
	}
	input := githubv4.TransferIssueInput{
		IssueID:          githubv4.ID(issueID),
		RepositoryID:     githubv4.ID(repositoryID),
		ClientMutationID: githubv4.NewString(githubv4.String(mutationID)),
	}
	if err = clients.V4.Mutate(ctx, &mutation, input, nil); err != nil {
		return 0, errors.Wrap(err, "transferIssue mutation failed")
	}
	return int(mutation.TransferIssue.Issue.Number), nil
}

// CreateIssue opens an issue and returns its number.
func (g *Controller) CreateIssue(ctx context.Context, owner, repo, title, body string) (int, error) {
	clients, err := g.connected()
	if err != nil {
		return 0, err
	}
	issue, _, err := clients.V3.Issues.Create(ctx, owner, repo, &github.IssueRequest{
		Title: github.Ptr(title),
		Body:  github.Ptr(body),
	})
	if err != nil {
		return 0, err
	}
	return issue.GetNumber(), nil
}

// CreateComment posts a comment on an issue.
func (g *Controller) CreateComment(ctx context.Context, owner, repo string, number int, body string) error {
	clients, err := g.connected()
	if err != nil {
		return err
	}
	_, _, err = clients.V3.Issues.CreateComment(ctx, owner, repo, number, &github.IssueComment{
		Body: github.Ptr(body),
	})
	return err
}

// CloseIssue transitions an issue to the closed state.
func (g *Controller) CloseIssue(ctx context.Context, owner, repo string, number int) error {
	clients, err := g.connected()
	if err != nil {
		return err
	}
	_, _, err = clients.V3.Issues.Edit(ctx, owner, repo, number, &github.IssueRequest{
		State: github.Ptr("closed"),
	})
	return err
}

// LockIssue locks an issue's conversation with the given reason.
func (g *Controller) LockIssue(ctx context.Context, owner, repo string, number int, reason string) error {
	clients, err := g.connected()
	if err != nil {
		return err
	}
	_, err = clients.V3.Issues.Lock(ctx, owner, repo, number, &github.LockIssueOptions{
		LockReason: reason,
	})
	return err
}

// ListLabels returns every label defined in a repository.
func (g *Controller) ListLabels(ctx context.Context, owner, repo string) ([]models.Label, error) {
	clients, err := g.connected()
	if err != nil {
		return nil, err
	}
	var labels []models.Label
	opts := &github.ListOptions{PerPage: labelsPerPage}
	for {
		page, resp, err := clients.V3.Issues.ListLabels(ctx, owner, repo, opts)
		if err != nil {
			return nil, err
		}
		for _, l := range page {
			labels = append(labels, models.Label{Name: l.GetName(), Color: l.GetColor()})
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return labels, nil
}

// CreateLabel defines a new label in a repository.
func (g *Controller) CreateLabel(ctx context.Context, owner, repo string, label models.Label) error {
	clients, err := g.connected()
	if err != nil {
		return err
	}
	_, _, err = clients.V3.Issues.CreateLabel(ctx, owner, repo, &github.Label{
		Name:  github.Ptr(label.Name),
		Color: github.Ptr(label.Color),
	})
	return err
}

// ReplaceLabels sets the issue's labels to exactly the given set.
func (g *Controller) ReplaceLabels(ctx context.Context, owner, repo string, number int, labels []string) error {
	clients, err := g.connected()
	if err != nil {
		return err
	}
	_, _, err = clients.V3.Issues.Edit(ctx, owner, repo, number, &github.IssueRequest{
		Labels: &labels,
	})
	return err
}

type loggingRoundTripper struct {
	logger *slog.Logger
	next   http.RoundTripper
}

// RoundTrip logs the request and response.
func (l *loggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	var buf bytes.Buffer
	if req.Body != nil {
		_, _ = io.ReadAll(io.TeeReader(req.Body, &buf))
		req.Body = io.NopCloser(bytes.NewReader(buf.Bytes()))
	}
	var container map[string]any
	_ = json.NewDecoder(&buf).Decode(&container)
	l.logger.Log(req.Context(), slog.Level(-8), "sending request", slog.String("method", req.Method), slog.String("url", req.URL.String()), slog.Any("body", container))
	resp, err := l.next.RoundTrip(req)
	if err != nil {
		l.logger.Log(req.Context(), slog.Level(-8), "failed to send request", slog.Any("error", err))
		return nil, err
	}
	l.logger.Log(req.Context(), slog.Level(-8), "received response", slog.Any("status", resp.Status))
	return resp, nil
}
