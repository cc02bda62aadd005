// Package validation authenticates GitHub webhook deliveries.
package validation

import (
	"errors"
	"fmt"
	"mime"
	"strings"

	"github.com/google/go-github/v84/github"
)

var (
	errNoSecret    = errors.New("missing webhook secret")
	errNoSignature = errors.New("missing HMAC-SHA256 signature")
)

// WebhookSecret is the shared secret a repository or app signs its deliveries with.
type WebhookSecret string

// NewWebhookSecret returns nil for an empty secret, which disables validation.
func NewWebhookSecret(secret string) *WebhookSecret {
	if secret == "" {
		return nil
	}
	s := WebhookSecret(secret)
	return &s
}

// ValidateSignature checks the X-Hub-Signature-256 header against body.
// Header keys must already be lower-cased. Only JSON deliveries are accepted.
func (s *WebhookSecret) ValidateSignature(body []byte, headers map[string]string) error {
	if s == nil {
		return errNoSecret
	}
	signature, found := headers[strings.ToLower(github.SHA256SignatureHeader)]
	if !found {
		return errNoSignature
	}
	contentType := headers["content-type"]
	if mediaType, _, err := mime.ParseMediaType(contentType); err != nil || mediaType != "application/json" {
		return fmt.Errorf("unsupported content type: %s", contentType)
	}
	return github.ValidateSignature(signature, body, []byte(*s))
}
