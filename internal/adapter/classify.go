package adapter

import (
	"context"
	"errors"
	"net/http"
)

// ErrorClass is the result of [Classify]. It tells the action queue whether a
// failed submission should be retried or surfaced for rollback.
type ErrorClass int

const (
	// ClassTerminal means the failure will not go away by retrying: 4xx
	// statuses, business-rule rejections, undecodable responses. This is the
	// default for unrecognised errors.
	ClassTerminal ErrorClass = iota

	// ClassRetryable means the same request may succeed later: network
	// failures, timeouts and 5xx statuses.
	ClassRetryable
)

// String implements fmt.Stringer.
func (c ErrorClass) String() string {
	switch c {
	case ClassRetryable:
		return "retryable"
	case ClassTerminal:
		return "terminal"
	default:
		return "unknown"
	}
}

// Classify maps a submission error to an [ErrorClass].
//
// Retryable:
//   - [ErrTimeout], [ErrNetwork], context.DeadlineExceeded
//   - [ErrInternalServerError], [ErrBadGateway], [ErrServiceUnavailable],
//     [ErrGatewayTimeout] and any other 5xx [StatusError]
//
// Everything else, including nil, is [ClassTerminal].
func Classify(err error) ErrorClass {
	if err == nil {
		return ClassTerminal
	}

	switch {
	case errors.Is(err, ErrTimeout),
		errors.Is(err, ErrNetwork),
		errors.Is(err, context.DeadlineExceeded):
		return ClassRetryable

	case errors.Is(err, ErrInternalServerError),
		errors.Is(err, ErrBadGateway),
		errors.Is(err, ErrServiceUnavailable),
		errors.Is(err, ErrGatewayTimeout):
		return ClassRetryable
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) && statusErr.Code >= http.StatusInternalServerError {
		return ClassRetryable
	}

	return ClassTerminal
}
