package transfer

import (
	"fmt"
)

// ConfigurationError reports a missing or invalid input. It is raised before any remote call.
type ConfigurationError struct {
	Input string
	Cause error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid input %s: %v", e.Input, e.Cause)
}

func (e *ConfigurationError) Unwrap() error { return e.Cause }

// ContextError reports a triggering event without the issue or repository it must carry.
type ContextError struct {
	Cause error
}

func (e *ContextError) Error() string {
	return e.Cause.Error()
}

func (e *ContextError) Unwrap() error { return e.Cause }

// VerificationError reports a target repository that could not be looked up.
type VerificationError struct {
	Repository string
	Cause      error
}

func (e *VerificationError) Error() string {
	return fmt.Sprintf("Could not access %s: %v", e.Repository, e.Cause)
}

func (e *VerificationError) Unwrap() error { return e.Cause }

// RemoteCallError reports a failed platform call after verification.
// Operation names the call so partially applied stubs can be traced.
type RemoteCallError struct {
	Operation string
	Cause     error
}

func (e *RemoteCallError) Error() string {
	return fmt.Sprintf("failed to %s: %v", e.Operation, e.Cause)
}

func (e *RemoteCallError) Unwrap() error { return e.Cause }
