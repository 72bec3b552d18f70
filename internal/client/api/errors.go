package api

import (
	"errors"
	"fmt"
)

// Sentinel errors forming the closed failure taxonomy of the gateway.
// Callers match them with errors.Is.
var (
	// ErrAuthExpired means the server rejected the bearer token. The
	// gateway has already cleared the session; the operation must not be
	// retried until the user authenticates again.
	ErrAuthExpired = errors.New("authorization expired")

	// ErrValidation means the input was rejected, either locally before a
	// request was issued or by the server with a 4xx validation response.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound means the addressed resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrServer means the server accepted the request but failed to
	// process it.
	ErrServer = errors.New("server error")

	// ErrNetwork means the request never produced a response.
	ErrNetwork = errors.New("network unavailable")
)

// Error is a classified remote failure. Kind is one of the sentinel errors
// above so that errors.Is works through it; Message carries the
// human-readable text from the server when one was provided.
type Error struct {
	Kind       error
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return e.Kind.Error()
}

func (e *Error) Unwrap() error { return e.Kind }

// Message extracts a display string from any error produced by the
// gateway or the stores. Classified errors yield the server-provided text
// when present; everything else falls back to err.Error().
func Message(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return err.Error()
}
