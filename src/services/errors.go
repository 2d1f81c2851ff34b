package services

import (
	"errors"
	"fmt"
)

// Stage names a step of the lookup pipeline
type Stage string

const (
	StageIP          Stage = "ip"
	StageGeolocation Stage = "geolocation"
	StageWeather     Stage = "weather"
)

// Sentinel causes for ParseError
var (
	ErrMissingField = errors.New("missing required field")
	ErrWrongType    = errors.New("wrong type")
	ErrNotObject    = errors.New("expected JSON object")
)

// ErrUpstreamStatus is wrapped by NetworkError when an upstream answers with a non-2xx status
var ErrUpstreamStatus = errors.New("unexpected upstream status")

// NetworkError is a transport-level failure: DNS, connect, TLS, timeout,
// proxy or a non-2xx upstream status.
type NetworkError struct {
	Stage Stage
	Err   error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: network error: %v", e.Stage, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ParseError is a response body that is not valid JSON or lacks a required field
type ParseError struct {
	Stage Stage
	// Field is the dotted path of the offending field, empty for whole-body failures
	Field string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: parse error: field %q: %v", e.Stage, e.Field, e.Err)
	}
	return fmt.Sprintf("%s: parse error: %v", e.Stage, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// IsNetworkError checks if err is or wraps a NetworkError
func IsNetworkError(err error) bool {
	var e *NetworkError
	return errors.As(err, &e)
}

// IsParseError checks if err is or wraps a ParseError
func IsParseError(err error) bool {
	var e *ParseError
	return errors.As(err, &e)
}

// ErrorKind classifies err as "network", "parse" or "other"
func ErrorKind(err error) string {
	switch {
	case IsNetworkError(err):
		return "network"
	case IsParseError(err):
		return "parse"
	default:
		return "other"
	}
}
