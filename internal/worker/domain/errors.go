package domain

import "errors"

var (
	// ErrMalformedEvent is returned when an event body cannot be decoded
	ErrMalformedEvent = errors.New("malformed event payload")

	// ErrUnknownEventType is returned for a routing key the worker has no mapping for
	ErrUnknownEventType = errors.New("unknown event type")
)

// RetryableError wraps transient errors that should trigger a requeue
type RetryableError struct {
	Err error
}

func (e *RetryableError) Error() string {
	return "retryable error: " + e.Err.Error()
}

func (e *RetryableError) Unwrap() error {
	return e.Err
}

// NewRetryableError creates a new retryable error
func NewRetryableError(err error) error {
	return &RetryableError{Err: err}
}
