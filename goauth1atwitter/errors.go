package goauth1atwitter

import (
	"fmt"
	"strings"
)

const maxErrorBody = 512

// TransportError reports a failed exchange with the API: the request could
// not be sent, timed out, or came back with a non-2xx status.
type TransportError struct {
	// Operation is the API operation that failed, e.g. "update_status"
	Operation string
	// URL is the endpoint without its query string
	URL string
	// StatusCode is the HTTP status, zero when no response arrived
	StatusCode int
	// Body is the start of the response body, if any
	Body string
	// Err contains the underlying error if available
	Err error
}

func (e *TransportError) Error() string {
	var parts []string
	if e.StatusCode > 0 {
		parts = append(parts, fmt.Sprintf("status code %d", e.StatusCode))
	}
	if e.Body != "" {
		parts = append(parts, fmt.Sprintf("body: %q", e.Body))
	}
	if e.Err != nil {
		parts = append(parts, fmt.Sprintf("err: %v", e.Err))
	}
	return fmt.Sprintf("transport error during %s to %s: %s", e.Operation, e.URL, strings.Join(parts, ", "))
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Temporary reports whether retrying the same request later could succeed.
func (e *TransportError) Temporary() bool {
	return e.StatusCode == 0 || e.StatusCode == 429 || e.StatusCode >= 500
}

// DeserializationError reports a response body that does not have the
// expected shape.
type DeserializationError struct {
	// Operation is the API operation whose response failed to decode
	Operation string
	// Body is the start of the response body
	Body string
	// Err contains the underlying error if available
	Err error
}

func (e *DeserializationError) Error() string {
	return fmt.Sprintf("deserialization error during %s: %v, body: %q", e.Operation, e.Err, e.Body)
}

func (e *DeserializationError) Unwrap() error {
	return e.Err
}

func truncate(b []byte) string {
	s := strings.TrimSpace(string(b))
	if len(s) > maxErrorBody {
		return s[:maxErrorBody] + "..."
	}
	return s
}
