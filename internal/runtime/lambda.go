package runtime

import (
	"context"
	"encoding/base64"
	"log/slog"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/isometry/gh-transfer-issue/internal/helpers"
	"github.com/isometry/gh-transfer-issue/internal/models"
)

// HandleLambda is the Lambda handler for API Gateway v2 HTTP deliveries.
// Failures are reported through the status code so API Gateway forwards them to GitHub.
func (p *Processor) HandleLambda(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	p.logger.Info("received API Gateway request", slog.String("requestId", req.RequestContext.RequestID))

	body := req.Body
	if req.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(body)
		if err != nil {
			p.logger.Warn("failed to decode request body", slog.Any("error", err))
			return lambdaResponse(models.Response{Body: "invalid body encoding", StatusCode: http.StatusBadRequest}, err), nil
		}
		body = string(decoded)
	}

	response, err := p.Process(ctx, models.Request{Body: body, Headers: req.Headers})
	if err != nil {
		p.logger.Info("handled event", slog.Int("status", response.StatusCode), slog.Any("error", err))
	}
	return lambdaResponse(response, err), nil
}

func lambdaResponse(response models.Response, err error) events.APIGatewayV2HTTPResponse {
	return events.APIGatewayV2HTTPResponse{
		StatusCode: response.StatusCode,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       helpers.ResponseBody(response, err),
	}
}
