package client

import (
	"errors"

	"github.com/apimgr/ipweather/src/services"
)

// Exit codes
const (
	// Success
	ExitSuccess = 0
	// General error
	ExitGeneralError = 1
	// Configuration error
	ExitConfigError = 2
	// Network error at any stage
	ExitConnError = 3
	// Upstream response could not be parsed
	ExitParseError = 6
	// Usage error
	ExitUsageError = 64
)

// ExitError represents an error with a specific exit code
type ExitError struct {
	Message string
	Code    int
}

// Error implements the error interface
func (e *ExitError) Error() string {
	return e.Message
}

// NewExitError creates a new ExitError
func NewExitError(message string, code int) *ExitError {
	return &ExitError{Message: message, Code: code}
}

// NewConfigError creates a config error (exit code 2)
func NewConfigError(message string) *ExitError {
	return &ExitError{Message: message, Code: ExitConfigError}
}

// NewConnectionError creates a connection error (exit code 3)
func NewConnectionError(message string) *ExitError {
	return &ExitError{Message: message, Code: ExitConnError}
}

// NewParseError creates a parse error (exit code 6)
func NewParseError(message string) *ExitError {
	return &ExitError{Message: message, Code: ExitParseError}
}

// NewUsageError creates a usage error (exit code 64)
func NewUsageError(message string) *ExitError {
	return &ExitError{Message: message, Code: ExitUsageError}
}

// toExitError maps pipeline errors onto exit codes
func toExitError(err error) *ExitError {
	var exitErr *ExitError
	switch {
	case errors.As(err, &exitErr):
		return exitErr
	case services.IsNetworkError(err):
		return NewConnectionError(err.Error())
	case services.IsParseError(err):
		return NewParseError(err.Error())
	default:
		return NewExitError(err.Error(), ExitGeneralError)
	}
}
