package helpers

import (
	"encoding/json"
	"net/http"

	"github.com/isometry/gh-transfer-issue/internal/models"
)

type httpResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// ResponseBody renders a models.Response and its error as the JSON envelope returned to webhook callers.
func ResponseBody(response models.Response, err error) string {
	hR := httpResponse{
		Message: response.Body,
	}
	if err != nil {
		hR.Error = err.Error()
	}
	respBody, _ := json.Marshal(hR)
	return string(respBody)
}

// RespondHTTP writes a models.Response as a JSON envelope, defaulting to 200.
func RespondHTTP(response models.Response, err error, rw http.ResponseWriter) {
	statusCode := response.StatusCode
	if statusCode == 0 {
		statusCode = http.StatusOK
	}
	rw.Header().Set("Content-Type", "application/json")
	for k, v := range response.Headers {
		rw.Header().Set(k, v)
	}
	rw.WriteHeader(statusCode)
	_, _ = rw.Write([]byte(ResponseBody(response, err)))
}
