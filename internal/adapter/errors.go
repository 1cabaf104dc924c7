package adapter

import "errors"

// Sentinel errors mapped from HTTP status codes by mapHTTPError. Callers match
// them with [errors.Is].
var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrUnprocessable       = errors.New("unprocessable entity")
	ErrTooManyRequests     = errors.New("too many requests")
	ErrInternalServerError = errors.New("internal server error")
	ErrBadGateway          = errors.New("bad gateway")
	ErrServiceUnavailable  = errors.New("service unavailable")
	ErrGatewayTimeout      = errors.New("gateway timeout")
)

// Transport-level errors that never produced an HTTP response.
var (
	// ErrTimeout is returned when a request exceeds its deadline.
	ErrTimeout = errors.New("request timeout")

	// ErrNetwork is returned when the request could not reach the server or
	// the connection broke before a response arrived.
	ErrNetwork = errors.New("network error")

	// ErrDecodeResponse is returned when a 2xx response body cannot be decoded.
	ErrDecodeResponse = errors.New("cannot decode server response")

	// ErrInvalidToken is returned when the actor token cannot be parsed.
	ErrInvalidToken = errors.New("invalid actor token")
)
