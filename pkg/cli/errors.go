package cli

import (
	"errors"
	"fmt"
)

// Process exit codes.
const (
	// ExitOK means the command succeeded and the invariant held.
	ExitOK = 0
	// ExitViolated means the command ran but the invariant was violated.
	ExitViolated = 1
	// ExitUsage means malformed input: bad flags, seeds or parameters.
	ExitUsage = 2
)

// ErrInvariantViolated is returned by commands whose result breaks the
// invariant.
var ErrInvariantViolated = errors.New("invariant violated")

// ExitError carries an explicit process exit code.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError wraps err with an exit code.
func NewExitError(code int, err error) *ExitError {
	return &ExitError{Code: code, Err: err}
}

// UsageError marks err as malformed input.
func UsageError(err error) *ExitError {
	return NewExitError(ExitUsage, err)
}

// ExitCode maps an error returned by a command to a process exit code.
// An explicit ExitError wins; invariant violations map to ExitViolated and
// every other error is treated as malformed input.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	if errors.Is(err, ErrInvariantViolated) {
		return ExitViolated
	}
	return ExitUsage
}

// ConfigError represents an error in configuration.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error in %s: %s", e.Field, e.Message)
}

// CommandError represents an error from a command execution.
type CommandError struct {
	Command string
	Err     error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("command %s failed: %v", e.Command, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError.
func NewConfigError(field, message string) *ConfigError {
	return &ConfigError{
		Field:   field,
		Message: message,
	}
}

// NewCommandError creates a new CommandError.
func NewCommandError(command string, err error) *CommandError {
	return &CommandError{
		Command: command,
		Err:     err,
	}
}
