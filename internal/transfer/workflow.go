// Package transfer moves an issue to another repository of the same owner, optionally leaving a locked stub behind
// and labeling the transferred issue.
package transfer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/isometry/gh-transfer-issue/internal/helpers"
	"github.com/isometry/gh-transfer-issue/internal/models"
	"github.com/pkg/errors"
)

const (
	stubTitle      = "Issue Stub Test"
	stubBody       = "This is an automatically generated issue stub created for testing purposes."
	stubLockReason = "off-topic"
)

// Status is the discriminant of an Outcome.
type Status string

const (
	// StatusTransferred means the issue was moved and every enabled step completed.
	StatusTransferred Status = "transferred"
	// StatusSkipped means the body guard declined the transfer. It is a success.
	StatusSkipped Status = "skipped"
	// StatusFailed means Err holds a *ConfigurationError, *ContextError, *VerificationError or *RemoteCallError.
	StatusFailed Status = "failed"
)

// Outcome is the result of a run. Outputs produced before a failure are kept.
type Outcome struct {
	Status  Status
	Outputs models.Outputs
	Notice  string
	Err     error

	Event  *models.Event
	Target *models.TargetRepository
	Result *models.TransferResult
	Stub   *models.StubIssue
	Label  *models.Label
}

// bus carries state between the workflow steps.
type bus struct {
	settings *compiledSettings
	outcome  *Outcome
	logger   *slog.Logger
}

type step struct {
	name string
	run  func(context.Context, *bus) error
}

// Option is a functional option used to configure a Workflow.
type Option func(*Workflow)

// WithLogger sets the logger every step logs through.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Workflow) {
		w.logger = logger
	}
}

// WithMutationID overrides the client mutation id generator.
func WithMutationID(fn func() string) Option {
	return func(w *Workflow) {
		w.mutationID = fn
	}
}

// Workflow runs the transfer steps in order against a Platform.
type Workflow struct {
	platform   Platform
	source     EventSource
	settings   Settings
	logger     *slog.Logger
	mutationID func() string
}

// NewWorkflow creates a Workflow for a single run.
func NewWorkflow(platform Platform, source EventSource, settings Settings, opts ...Option) *Workflow {
	_inst := &Workflow{
		platform: platform,
		source:   source,
		settings: settings,
	}
	for _, opt := range opts {
		opt(_inst)
	}
	if _inst.logger == nil {
		_inst.logger = helpers.NewNoopLogger()
	}
	if _inst.mutationID == nil {
		_inst.mutationID = NewMutationID
	}
	return _inst
}

// Run executes the workflow once. It never returns nil.
func (w *Workflow) Run(ctx context.Context) *Outcome {
	outcome := &Outcome{}
	settings, err := w.settings.compile()
	if err != nil {
		outcome.Status, outcome.Err = StatusFailed, err
		return outcome
	}

	b := &bus{settings: settings, outcome: outcome, logger: w.logger}
	steps := []step{
		{"resolve", w.resolve},
		{"guard", w.guard},
		{"verify", w.verify},
		{"transfer", w.transfer},
		{"stub", w.stub},
		{"label", w.label},
	}
	for _, s := range steps {
		b.logger = w.logger.With(slog.String("step", s.name))
		if err = s.run(ctx, b); err != nil {
			b.logger.Error("step failed", slog.Any("error", err))
			outcome.Status, outcome.Err = StatusFailed, err
			return outcome
		}
		if outcome.Status == StatusSkipped {
			return outcome
		}
	}
	outcome.Status = StatusTransferred
	return outcome
}

func (w *Workflow) resolve(ctx context.Context, b *bus) error {
	event, err := w.source.Resolve(ctx)
	if err != nil {
		var contextErr *ContextError
		if errors.As(err, &contextErr) {
			return err
		}
		return &ContextError{Cause: errors.Wrap(err, "failed to resolve event context")}
	}
	if event == nil || event.Issue == nil {
		return &ContextError{Cause: errors.New("Action must run on an event that has an issue context!")}
	}
	if event.Repository == nil {
		return &ContextError{Cause: errors.New("Action must run on event that has a repository context!")}
	}
	b.outcome.Event = event

	s := b.settings
	b.logger.Debug("resolved inputs",
		slog.Any("event", event),
		slog.String("targetRepo", s.TargetRepo),
		slog.String("bodyRegexp", s.BodyPattern),
		slog.String("issueBody", helpers.Truncate(event.Issue.Body, 140)))

	if s.RequiredLabel != "" && event.Label != nil && event.Label.Name != s.RequiredLabel {
		b.logger.Warn("trigger label differs from req_label",
			slog.String("label", event.Label.Name), slog.String("reqLabel", s.RequiredLabel))
	}
	return nil
}

func (w *Workflow) guard(_ context.Context, b *bus) error {
	body := b.outcome.Event.Issue.Body
	if shouldTransfer(body, b.settings.pattern) {
		return nil
	}
	b.logger.Info("body does not match pattern", slog.String("pattern", b.settings.BodyPattern))
	b.outcome.Status = StatusSkipped
	b.outcome.Notice = skipNotice(b.settings.BodyPattern)
	return nil
}

func (w *Workflow) verify(ctx context.Context, b *bus) error {
	owner := b.outcome.Event.Repository.Owner
	name := b.settings.TargetRepo
	target, err := w.platform.GetRepository(ctx, owner, name)
	if err != nil {
		return &VerificationError{Repository: name, Cause: err}
	}
	if target.NodeID == "" {
		return &VerificationError{Repository: name, Cause: errors.New("repository has no node id")}
	}
	b.logger.Debug("retrieved target repo metadata", slog.String("nodeId", target.NodeID))
	b.outcome.Target = target
	return nil
}

func (w *Workflow) transfer(ctx context.Context, b *bus) error {
	event, target := b.outcome.Event, b.outcome.Target
	number, err := w.platform.TransferIssue(ctx, event.Issue.NodeID, target.NodeID, w.mutationID())
	if err != nil {
		return &RemoteCallError{Operation: "transfer issue", Cause: err}
	}
	result := &models.TransferResult{
		NewIssueNumber: number,
		NewIssueURL:    IssueURL(b.settings.ServerURL, target.Owner, target.Name, number),
	}
	b.outcome.Result = result
	b.outcome.Outputs.NewIssueNumber = result.NewIssueNumber
	b.outcome.Outputs.NewIssueURL = result.NewIssueURL
	b.outcome.Outputs.DestinationRepo = target.Name
	b.logger.Info("transferred issue",
		slog.String("source", event.Repository.Name), slog.String("issue", event.Issue.NodeID),
		slog.String("target", target.Name), slog.Int("number", number))
	return nil
}

func (w *Workflow) stub(ctx context.Context, b *bus) error {
	if !b.settings.CreateStub {
		return nil
	}
	source, issue := b.outcome.Event.Repository, b.outcome.Event.Issue
	owner, repo := source.Owner, source.Name

	title, body := issue.Title, issue.Body
	if title == "" {
		title = stubTitle
	}
	if body == "" {
		body = stubBody
	}
	number, err := w.platform.CreateIssue(ctx, owner, repo, title, body)
	if err != nil {
		return &RemoteCallError{Operation: "create stub issue", Cause: err}
	}
	b.outcome.Stub = &models.StubIssue{Number: number}
	b.logger.Debug("stub issue created", slog.Int("number", number))

	if err = w.platform.CreateComment(ctx, owner, repo, number, StubComment(issue.Author, b.outcome.Result.NewIssueURL)); err != nil {
		return &RemoteCallError{Operation: fmt.Sprintf("comment on stub issue #%d", number), Cause: err}
	}
	b.logger.Debug("stub issue comment created")

	if err = w.platform.CloseIssue(ctx, owner, repo, number); err != nil {
		return &RemoteCallError{Operation: fmt.Sprintf("close stub issue #%d", number), Cause: err}
	}
	b.logger.Debug("stub issue closed")

	if err = w.platform.LockIssue(ctx, owner, repo, number, stubLockReason); err != nil {
		return &RemoteCallError{Operation: fmt.Sprintf("lock stub issue #%d", number), Cause: err}
	}
	b.logger.Debug("stub issue locked")

	b.outcome.Outputs.StubIssueNumber = number
	return nil
}

func (w *Workflow) label(ctx context.Context, b *bus) error {
	label := b.settings.label
	if label == nil {
		return nil
	}
	target, result := b.outcome.Target, b.outcome.Result
	b.logger.Debug("applying label",
		slog.String("label", label.Name), slog.String("color", label.Color), slog.String("issue", result.NewIssueURL))

	existing, err := w.platform.ListLabels(ctx, target.Owner, target.Name)
	if err != nil {
		return &RemoteCallError{Operation: "list labels", Cause: err}
	}
	if !hasLabel(existing, label.Name) {
		if err = w.platform.CreateLabel(ctx, target.Owner, target.Name, *label); err != nil {
			return &RemoteCallError{Operation: fmt.Sprintf("create label %s", label.Name), Cause: err}
		}
		b.logger.Debug("created new label", slog.String("label", label.Name), slog.String("repository", target.Name))
	}

	// Replaces whatever labels the issue carried over from the source repository.
	if err = w.platform.ReplaceLabels(ctx, target.Owner, target.Name, result.NewIssueNumber, []string{label.Name}); err != nil {
		return &RemoteCallError{Operation: fmt.Sprintf("apply label %s", label.Name), Cause: err}
	}
	b.outcome.Label = label
	return nil
}

func hasLabel(labels []models.Label, name string) bool {
	for _, l := range labels {
		if l.Name == name {
			return true
		}
	}
	return false
}

// IssueURL builds the web URL of an issue.
func IssueURL(serverURL, owner, repo string, number int) string {
	return fmt.Sprintf("%s/%s/%s/issues/%d", serverURL, owner, repo, number)
}

// StubComment is the pointer left on the stub for the original author.
func StubComment(author, newIssueURL string) string {
	return fmt.Sprintf("@%s this is a stub issue that has been created as a placeholder in this repo.", author) +
		"\n\n" + fmt.Sprintf("Your original issue has been moved to [%s](%s)", newIssueURL, newIssueURL)
}
