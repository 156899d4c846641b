package client

import (
	"errors"
	"fmt"
)

// HTTPError represents a non-2xx HTTP response from the API.
type HTTPError struct {
	StatusCode int
	// Message is the "message" (or "error") field of a JSON error body, and is
	// empty when the server sent none.
	Message string
	// Body is the raw error body, trimmed. It is kept for logs and Error, never
	// shown to the user.
	Body string
}

func (e *HTTPError) Error() string {
	detail := e.Message
	if detail == "" {
		detail = e.Body
	}
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, detail)
}

// IsStatus returns true if err (or any wrapped error) is an HTTPError with the given status code.
func IsStatus(err error, code int) bool {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == code
	}
	return false
}

// ServerMessage returns the message the server attached to err, or "" when
// err is not an HTTPError or its body carried no message field.
func ServerMessage(err error) string {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Message
	}
	return ""
}
