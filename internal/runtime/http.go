package runtime

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/isometry/gh-transfer-issue/internal/helpers"
	"github.com/isometry/gh-transfer-issue/internal/models"
)

// ServeHTTP is the HTTP handler for the service mode.
func (p *Processor) ServeHTTP(resp http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPost {
		p.logger.Debug("rejecting HTTP request...", slog.Any("requestor", req.RemoteAddr), "reason", "method not allowed", slog.Any("method", req.Method))
		helpers.RespondHTTP(models.Response{StatusCode: http.StatusMethodNotAllowed}, nil, resp)
		return
	}

	p.logger.Debug("received HTTP request...", slog.Any("requestor", req.RemoteAddr), slog.Any("path", req.URL.Path))
	body, err := io.ReadAll(req.Body)
	if err != nil {
		p.logger.Error("failed to read request body", slog.Any("error", err))
		helpers.RespondHTTP(models.Response{StatusCode: http.StatusInternalServerError}, err, resp)
		return
	}

	headers := make(map[string]string, len(req.Header))
	for k, v := range req.Header {
		headers[k] = v[0]
	}

	response, err := p.Process(req.Context(), models.Request{Body: string(body), Headers: headers})
	helpers.RespondHTTP(response, err, resp)
}
