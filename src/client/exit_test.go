package client

import (
	"errors"
	"fmt"
	"testing"

	"github.com/apimgr/ipweather/src/services"
)

func TestExitCodes(t *testing.T) {
	tests := []struct {
		name     string
		expected int
		actual   int
	}{
		{"ExitSuccess", 0, ExitSuccess},
		{"ExitGeneralError", 1, ExitGeneralError},
		{"ExitConfigError", 2, ExitConfigError},
		{"ExitConnError", 3, ExitConnError},
		{"ExitParseError", 6, ExitParseError},
		{"ExitUsageError", 64, ExitUsageError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.actual != tt.expected {
				t.Errorf("Expected %s to be %d, got %d", tt.name, tt.expected, tt.actual)
			}
		})
	}
}

func TestExitErrorConstructors(t *testing.T) {
	tests := []struct {
		name string
		err  *ExitError
		code int
	}{
		{"exit", NewExitError("custom error", 99), 99},
		{"config", NewConfigError("config not found"), ExitConfigError},
		{"connection", NewConnectionError("connection refused"), ExitConnError},
		{"parse", NewParseError("bad body"), ExitParseError},
		{"usage", NewUsageError("bad flag"), ExitUsageError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.code {
				t.Errorf("Expected code %d, got %d", tt.code, tt.err.Code)
			}
			if tt.err.Error() != tt.err.Message {
				t.Errorf("Expected Error() %q, got %q", tt.err.Message, tt.err.Error())
			}
		})
	}
}

func TestToExitError(t *testing.T) {
	usage := NewUsageError("unexpected argument: x")

	tests := []struct {
		name string
		err  error
		code int
	}{
		{"network", &services.NetworkError{Stage: services.StageIP, Err: errors.New("dial tcp: refused")}, ExitConnError},
		{"parse", &services.ParseError{Stage: services.StageGeolocation, Field: "lat", Err: services.ErrMissingField}, ExitParseError},
		{"wrapped parse", fmt.Errorf("lookup: %w", &services.ParseError{Stage: services.StageWeather, Err: services.ErrNotObject}), ExitParseError},
		{"exit error", usage, ExitUsageError},
		{"other", errors.New("boom"), ExitGeneralError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := toExitError(tt.err)
			if got.Code != tt.code {
				t.Errorf("Expected code %d, got %d", tt.code, got.Code)
			}
			if got.Message != tt.err.Error() {
				t.Errorf("Expected message %q, got %q", tt.err.Error(), got.Message)
			}
		})
	}

	if toExitError(usage) != usage {
		t.Error("Expected an ExitError to be returned unchanged")
	}
}
