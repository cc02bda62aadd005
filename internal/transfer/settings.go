package transfer

import (
	"regexp"
	"strings"

	"github.com/isometry/gh-transfer-issue/internal/models"
	"github.com/pkg/errors"
)

const defaultServerURL = "https://github.com"

// Settings are the resolved inputs of a single run.
type Settings struct {
	// TargetRepo is the destination repository name under the source owner.
	TargetRepo string
	// Token is checked for presence only; the platform client carries it.
	Token string
	// BodyPattern gates the transfer on the issue body when set.
	BodyPattern string
	// RequiredLabel is informational; a mismatch with the trigger label is only logged.
	RequiredLabel string
	// CreateStub leaves a locked placeholder in the source repository.
	CreateStub bool
	// LabelSpec is "name" or "name:color"; empty or "false" disables labeling.
	LabelSpec string
	// ServerURL is the web host used to build issue URLs.
	ServerURL string
}

type compiledSettings struct {
	Settings
	pattern *regexp.Regexp
	label   *models.Label
}

func (s Settings) compile() (*compiledSettings, error) {
	if strings.TrimSpace(s.TargetRepo) == "" {
		return nil, &ConfigurationError{Input: "target_repo", Cause: errors.New("input required and not supplied")}
	}
	if strings.TrimSpace(s.Token) == "" {
		return nil, &ConfigurationError{Input: "token", Cause: errors.New("`token` input must be defined")}
	}
	c := &compiledSettings{Settings: s}
	if c.ServerURL == "" {
		c.ServerURL = defaultServerURL
	}
	c.ServerURL = strings.TrimSuffix(c.ServerURL, "/")

	if s.BodyPattern != "" {
		re, err := regexp.Compile(s.BodyPattern)
		if err != nil {
			return nil, &ConfigurationError{Input: "req_regexp_match", Cause: err}
		}
		c.pattern = re
	}

	label, enabled, err := ParseLabelSpec(s.LabelSpec)
	if err != nil {
		return nil, &ConfigurationError{Input: "apply_label", Cause: err}
	}
	if enabled {
		c.label = label
	}
	return c, nil
}
