package backend

import (
	"errors"
	"fmt"
)

// NetworkError is the single failure shape for all transport problems:
// connection failures, timeouts, non-success status codes, and
// malformed response bodies. Callers branch on the error as a whole;
// StatusCode is informational and zero when no HTTP response arrived.
type NetworkError struct {
	// Op names the operation that failed (e.g. "chat", "upload").
	Op string

	// StatusCode is the HTTP status, or 0 for connection-level failures.
	StatusCode int

	// Message is a human-readable description, typically the server's
	// error body.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error implements the error interface.
func (e *NetworkError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Message != "":
		return fmt.Sprintf("backend %s: status %d: %s", e.Op, e.StatusCode, e.Message)
	case e.StatusCode != 0:
		return fmt.Sprintf("backend %s: status %d", e.Op, e.StatusCode)
	case e.Message != "":
		return fmt.Sprintf("backend %s: %s", e.Op, e.Message)
	default:
		return fmt.Sprintf("backend %s: %v", e.Op, e.Err)
	}
}

// Unwrap returns the underlying error.
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// AsNetworkError extracts a NetworkError from an error chain.
func AsNetworkError(err error) (*NetworkError, bool) {
	var netErr *NetworkError
	ok := errors.As(err, &netErr)
	return netErr, ok
}
