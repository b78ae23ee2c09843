package client

import (
	"errors"
	"fmt"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
)

// StatusError is an HTTP failure with no sentinel of its own. Message is the
// service's "error" field when it sent one.
type StatusError struct {
	Code    int
	Message string
	wrapped error
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("http %d", e.Code)
	}
	return fmt.Sprintf("http %d: %s", e.Code, e.Message)
}

func (e *StatusError) Unwrap() error {
	return e.wrapped
}
