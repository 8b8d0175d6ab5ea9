package stage

import (
	"errors"
	"fmt"
)

var (
	ErrExpired = errors.New("stage time is up")
	ErrBusy    = errors.New("submission already in flight")
)

// ValidationError is a rule failure; nothing was sent.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// RejectedError is a non-2xx reply from the backend.
type RejectedError struct {
	StatusCode int
	Message    string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("rejected with status %d: %s", e.StatusCode, e.Message)
}

// NetworkError means the request never completed.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
