package generation

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUpstream is matched by every *UpstreamError.
	ErrUpstream = errors.New("language model request failed")

	// ErrInvalidConfig is returned when a generator or completer is built from
	// invalid settings.
	ErrInvalidConfig = errors.New("invalid generator configuration")
)

// UpstreamKind separates the ways a completion call can fail. Callers treat
// all kinds alike; logs tell them apart.
type UpstreamKind string

const (
	// UpstreamTransport means no HTTP response was received.
	UpstreamTransport UpstreamKind = "transport"
	// UpstreamStatus means the endpoint answered with a non-2xx status.
	UpstreamStatus UpstreamKind = "status"
	// UpstreamEnvelope means the response lacked the message content.
	UpstreamEnvelope UpstreamKind = "envelope"
)

// UpstreamError describes a failed completion call. Body holds the raw
// response body for diagnostics and must not be shown to clients.
type UpstreamError struct {
	Kind       UpstreamKind
	StatusCode int
	Body       string
	Err        error
}

// Error implements the error interface.
func (e *UpstreamError) Error() string {
	switch e.Kind {
	case UpstreamStatus:
		return fmt.Sprintf("%s: upstream returned status %d", ErrUpstream, e.StatusCode)
	case UpstreamEnvelope:
		if e.Err != nil {
			return fmt.Sprintf("%s: malformed response envelope: %v", ErrUpstream, e.Err)
		}
		return fmt.Sprintf("%s: malformed response envelope", ErrUpstream)
	default:
		if e.Err != nil {
			return fmt.Sprintf("%s: %v", ErrUpstream, e.Err)
		}
		return ErrUpstream.Error()
	}
}

// Is reports whether target is ErrUpstream.
func (e *UpstreamError) Is(target error) bool {
	return target == ErrUpstream
}

// Unwrap returns the underlying cause, if any.
func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// Summary is a short description of the failure that is safe to store in a
// placeholder flashcard.
func (e *UpstreamError) Summary() string {
	switch e.Kind {
	case UpstreamStatus:
		return fmt.Sprintf("API error: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	case UpstreamEnvelope:
		return "AI response did not contain expected content."
	default:
		return "The AI service could not be reached. Please try again later."
	}
}
