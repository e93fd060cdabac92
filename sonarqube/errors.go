package sonarqube

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a client failure so callers can branch on it, for
// example to decide CI exit codes or whether retrying with a longer timeout
// makes sense.
type ErrorKind int

const (
	// KindHTTP is a transport-level failure before any HTTP status was
	// obtained (connection refused, DNS failure, reset).
	KindHTTP ErrorKind = iota
	// KindAPI means the server returned a non-success status.
	KindAPI
	// KindDeserialize means the server returned a success status but the
	// body did not match the expected shape.
	KindDeserialize
	// KindConfig means required configuration was missing for the
	// requested operation, e.g. no project key.
	KindConfig
	// KindTimeout means a deadline was exceeded, either the per-request
	// timeout or the overall wait budget of WaitForTask.
	KindTimeout
	// KindAnalysis means a background analysis task reached a terminal
	// failure or cancellation state.
	KindAnalysis
)

// String returns the kind's name.
func (k ErrorKind) String() string {
	switch k {
	case KindHTTP:
		return "http"
	case KindAPI:
		return "api"
	case KindDeserialize:
		return "deserialize"
	case KindConfig:
		return "config"
	case KindTimeout:
		return "timeout"
	case KindAnalysis:
		return "analysis"
	default:
		return "unknown"
	}
}

// Error is the error type returned by all client operations. The client
// never retries or recovers internally; every failure is reported to the
// caller with the context needed to render a useful message.
type Error struct {
	Kind     ErrorKind
	Endpoint string
	// Status is the HTTP status code for KindAPI errors, zero otherwise.
	Status int
	// Message is the server-provided or generated description.
	Message string
	// TaskStatus is the last observed task status when WaitForTask gave
	// up, empty for other kinds.
	TaskStatus string
	// Err is the underlying error, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch e.Kind {
	case KindAPI:
		return fmt.Sprintf("sonarqube: API error on %s: status %d: %s", e.Endpoint, e.Status, e.Message)
	case KindTimeout:
		if e.TaskStatus != "" {
			return fmt.Sprintf("sonarqube: timed out waiting for analysis (last status %s)", e.TaskStatus)
		}
		return fmt.Sprintf("sonarqube: request to %s timed out", e.Endpoint)
	case KindAnalysis:
		return fmt.Sprintf("sonarqube: analysis failed: %s", e.Message)
	case KindConfig:
		return fmt.Sprintf("sonarqube: configuration error: %s", e.Message)
	case KindDeserialize:
		return fmt.Sprintf("sonarqube: unexpected response from %s: %s", e.Endpoint, e.Message)
	default:
		return fmt.Sprintf("sonarqube: request to %s failed: %s", e.Endpoint, e.Message)
	}
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of a client error and true, or false when err was
// not produced by this package.
func KindOf(err error) (ErrorKind, bool) {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind, true
	}
	return 0, false
}

// IsKind reports whether err is a client error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}

func configError(format string, args ...any) *Error {
	return &Error{Kind: KindConfig, Message: fmt.Sprintf(format, args...)}
}
