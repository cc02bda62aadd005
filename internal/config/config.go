// Package config provides a centralized entrypoint for the application parameters.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"go.yaml.in/yaml/v3"
)

const (
	// ModeAction runs once inside a GitHub Actions job.
	ModeAction = "action"
	// ModeLambda serves issue webhooks from AWS Lambda.
	ModeLambda = "lambda"
	// ModeService serves issue webhooks over plain HTTP.
	ModeService = "service"
)

var (
	// Global is a struct that contains the global configuration.
	Global global
	// GitHub is a struct that contains the configuration for GitHub.
	GitHub github
	// Transfer is a struct that contains the transfer inputs.
	Transfer transfer
	// Fixture is a struct that contains the test-mode event substitute.
	Fixture fixture
	// Service is a struct that contains the configuration for the service mode.
	Service service
)

type global struct {
	// Mode is the runtime mode of the application.
	Mode string `yaml:"mode,omitempty" default:"action"`
	// Logging is a struct that contains the logging configuration.
	Logging struct {
		// Verbosity is the verbosity level of the application. It represents slog levels.
		Verbosity int `yaml:"verbosity,omitempty"`
		// CallerTrace is a flag that enables the caller trace in the logger.
		CallerTrace bool `yaml:"callerTrace,omitempty"`
	} `yaml:"logging,omitempty"`
}

type github struct {
	// AuthMode selects where the token comes from: 'token' or 'ssm'.
	AuthMode      string `yaml:"authMode,omitempty" default:"token"`
	SSMKey        string `yaml:"ssmKey,omitempty"`
	WebhookSecret string `yaml:"webhookSecret,omitempty"`
	ServerURL     string `yaml:"serverUrl,omitempty" default:"https://github.com"`
	APIURL        string `yaml:"apiUrl,omitempty" default:"https://api.github.com"`
	GraphQLURL    string `yaml:"graphqlUrl,omitempty" default:"https://api.github.com/graphql"`
}

type transfer struct {
	TargetRepo     string `yaml:"targetRepo,omitempty"`
	Token          string `yaml:"token,omitempty"`
	ReqRegexpMatch string `yaml:"reqRegexpMatch,omitempty"`
	// ReqLabel is informational only; it never gates a run.
	ReqLabel   string `yaml:"reqLabel,omitempty"`
	CreateStub string `yaml:"createStub,omitempty" default:"true"`
	ApplyLabel string `yaml:"applyLabel,omitempty" default:"false"`
	Debug      string `yaml:"debug,omitempty" default:"false"`
}

type fixture struct {
	IssueID string `yaml:"issueId,omitempty"`
	Label   string `yaml:"label,omitempty"`
	Body    string `yaml:"body,omitempty"`
	Title   string `yaml:"title,omitempty"`
}

type service struct {
	Path    string        `yaml:"path,omitempty" default:"/"`
	Addr    string        `yaml:"addr,omitempty"`
	Port    string        `yaml:"port,omitempty" default:"8080"`
	Timeout time.Duration `yaml:"timeout,omitempty" default:"10s"`
}

// Enabled reports whether a boolean-like action input is switched on.
// Anything other than the literal "false" counts, matching how the inputs are documented.
func Enabled(v string) bool {
	return v != "false"
}

// FixtureRequested reports whether both test-mode inputs needed to substitute the event are present.
func FixtureRequested() bool {
	return strings.TrimSpace(Fixture.IssueID) != "" && strings.TrimSpace(Fixture.Label) != ""
}

// SetDefaults sets the default values for the configuration.
func SetDefaults() error {
	return errors.Join(
		defaults.Set(&Global),
		defaults.Set(&GitHub),
		defaults.Set(&Transfer),
		defaults.Set(&Fixture),
		defaults.Set(&Service),
	)
}

// LoadFromFile loads the configuration from a file.
func LoadFromFile(path string) error {
	if len(path) == 0 {
		return nil
	}
	fstat, err := os.Stat(path)
	if err != nil {
		return nil //nolint:nilerr // If the file does not exist, we ignore it.
	}
	if fstat.IsDir() {
		return fmt.Errorf("configuration file %s is a directory", path)
	}
	if !fstat.Mode().IsRegular() {
		return fmt.Errorf("configuration file %s is not a regular file", path)
	}

	content, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("failed to read configuration file %s: %w", path, err)
	}
	type all struct {
		Global   global   `yaml:"global,omitempty"`
		GitHub   github   `yaml:"github,omitempty"`
		Transfer transfer `yaml:"transfer,omitempty"`
		Fixture  fixture  `yaml:"fixture,omitempty"`
		Service  service  `yaml:"service,omitempty"`
	}
	var a all
	if err = yaml.Unmarshal(content, &a); err != nil {
		return fmt.Errorf("failed to unmarshal configuration file %s: %w", path, err)
	}
	Global = a.Global
	GitHub = a.GitHub
	Transfer = a.Transfer
	Fixture = a.Fixture
	Service = a.Service

	return nil
}
