// Package runtime presents transfer outcomes to the surface that invoked the workflow:
// a GitHub Actions job, an AWS Lambda behind API Gateway or a plain HTTP service.
package runtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/go-github/v84/github"
	"github.com/isometry/gh-transfer-issue/internal/event"
	"github.com/isometry/gh-transfer-issue/internal/helpers"
	"github.com/isometry/gh-transfer-issue/internal/models"
	"github.com/isometry/gh-transfer-issue/internal/transfer"
)

// LabeledAction is the only issues action that triggers a transfer.
const LabeledAction = "labeled"

// Session is a connected platform opened for a single webhook delivery.
type Session interface {
	transfer.Platform
	AccessToken() string
	ValidateWebhookSecret(body []byte, headers map[string]string) error
}

// SessionFactory opens a fresh Session, retrieving credentials as needed.
type SessionFactory func(ctx context.Context) (Session, error)

// Option is a functional option used to configure a Processor.
type Option func(*Processor)

// WithLogger sets the logger of the Processor and of the workflows it runs.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Processor) {
		p.logger = logger
	}
}

// Processor runs the transfer workflow for issues webhook deliveries.
type Processor struct {
	open     SessionFactory
	settings transfer.Settings
	logger   *slog.Logger
}

// NewProcessor creates a Processor opening a session per delivery with open.
func NewProcessor(open SessionFactory, settings transfer.Settings, opts ...Option) *Processor {
	_inst := &Processor{open: open, settings: settings}
	for _, opt := range opts {
		opt(_inst)
	}
	if _inst.logger == nil {
		_inst.logger = helpers.NewNoopLogger()
	}
	return _inst
}

// Process handles one delivery. The returned error is the cause behind a non-2xx response.
func (p *Processor) Process(ctx context.Context, req models.Request) (models.Response, error) {
	logger := p.logger
	logger.Info("processing request...")
	headers := helpers.LowerKeys(req.Headers)
	body := []byte(req.Body)

	eventType, found := headers[strings.ToLower(github.EventTypeHeader)]
	if !found {
		logger.Warn("missing event type")
		return models.Response{Body: "missing event type", StatusCode: http.StatusUnprocessableEntity}, errors.New("missing event type")
	}
	if eventType != event.IssuesEventType {
		logger.Warn("unhandled event type", slog.String("event", eventType))
		return models.Response{Body: "unhandled event type", StatusCode: http.StatusBadRequest}, fmt.Errorf("unhandled event type: %s", eventType)
	}
	logger = logger.With(slog.String("event", eventType))
	if deliveryID, ok := headers[strings.ToLower(github.DeliveryIDHeader)]; ok {
		logger = logger.With(slog.String("deliveryId", deliveryID))
	}

	session, err := p.open(ctx)
	if err != nil {
		logger.Error("failed to open GitHub session", slog.Any("error", err))
		return models.Response{Body: "failed to open GitHub session", StatusCode: http.StatusInternalServerError}, err
	}
	if err = session.ValidateWebhookSecret(body, headers); err != nil {
		logger.Warn("validating signature", slog.Any("error", err))
		return models.Response{Body: "invalid signature", StatusCode: http.StatusForbidden}, err
	}
	logger.Debug("request body is valid")

	payload, err := event.ParseIssuesWebhook(eventType, body)
	if err != nil {
		logger.Warn("parsing webhook payload", slog.Any("error", err))
		return models.Response{Body: "invalid payload", StatusCode: http.StatusUnprocessableEntity}, err
	}
	if action := payload.GetAction(); action != LabeledAction {
		logger.Info("ignoring issues action", slog.String("action", action))
		return models.Response{Body: "ignored issues action", StatusCode: http.StatusUnprocessableEntity}, fmt.Errorf("unhandled issues action: %s", action)
	}
	// Webhook deliveries only transfer on the required label, when one is set.
	if required, label := p.settings.RequiredLabel, payload.GetLabel().GetName(); required != "" && label != required {
		logger.Info("ignoring label", slog.String("label", label), slog.String("reqLabel", required))
		return models.Response{Body: fmt.Sprintf("ignored label %s", label), StatusCode: http.StatusOK}, nil
	}

	settings := p.settings
	if settings.Token == "" {
		settings.Token = session.AccessToken()
	}
	outcome := transfer.NewWorkflow(session, event.NewWebhookSource(payload), settings,
		transfer.WithLogger(logger.With("component", "workflow"))).Run(ctx)
	return Respond(outcome)
}

// Respond maps an outcome onto a webhook response.
func Respond(outcome *transfer.Outcome) (models.Response, error) {
	switch outcome.Status {
	case transfer.StatusTransferred:
		body, _ := json.Marshal(outcome.Outputs.Map())
		return models.Response{Body: string(body), StatusCode: http.StatusCreated}, nil
	case transfer.StatusSkipped:
		return models.Response{Body: outcome.Notice, StatusCode: http.StatusOK}, nil
	}
	return models.Response{Body: "transfer failed", StatusCode: StatusCode(outcome.Err)}, outcome.Err
}

// StatusCode classifies a workflow error.
func StatusCode(err error) int {
	var (
		configErr       *transfer.ConfigurationError
		contextErr      *transfer.ContextError
		verificationErr *transfer.VerificationError
		remoteErr       *transfer.RemoteCallError
	)
	switch {
	case errors.As(err, &configErr):
		return http.StatusBadRequest
	case errors.As(err, &contextErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &verificationErr):
		return http.StatusNotFound
	case errors.As(err, &remoteErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
