package api

import (
	"errors"
	"fmt"
)

// ErrRequestFailed matches every error returned by Client, so callers that
// only care whether the exchange worked can use errors.Is.
var ErrRequestFailed = errors.New("request failed")

// NetworkError means the request did not reach the server or the server
// answered with a non-success status.
type NetworkError struct {
	Op         string
	StatusCode int // Zero when no response was received
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: API returned status %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

func (e *NetworkError) Is(target error) bool { return target == ErrRequestFailed }

// ParseError means the server answered but the body was not what we expect.
type ParseError struct {
	Op  string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func (e *ParseError) Is(target error) bool { return target == ErrRequestFailed }
