package llm

import (
	"fmt"
	"net/http"
)

// Kind classifies why the generation service could not produce text.
type Kind string

const (
	KindAuthentication Kind = "authentication"
	KindRateLimit      Kind = "rate_limit"
	KindNetwork        Kind = "network"
	KindContentPolicy  Kind = "content_policy"
	KindInvalidRequest Kind = "invalid_request"
	KindEmptyResponse  Kind = "empty_response"
	KindUnknown        Kind = "unknown"
)

// GenerationError is returned by Client implementations when no text could
// be produced.
type GenerationError struct {
	Kind       Kind
	StatusCode int
	Message    string
	Err        error
}

func (e *GenerationError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s (status %d): %s", e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *GenerationError) Unwrap() error { return e.Err }

func kindForStatus(status int) Kind {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return KindAuthentication
	case status == http.StatusTooManyRequests:
		return KindRateLimit
	case status == http.StatusBadRequest || status == http.StatusNotFound || status == http.StatusUnprocessableEntity:
		return KindInvalidRequest
	case status >= 500:
		return KindNetwork
	default:
		return KindUnknown
	}
}
