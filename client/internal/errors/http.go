// Package errors turns failed HTTP exchanges into typed SDK errors.
package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/claralima1/Planner/internal/model"
)

// ErrNotFound is matched by errors.Is for any 404 answer.
var ErrNotFound = model.ErrNotFound

// HTTPError is returned for every non-2xx response.
type HTTPError struct {
	StatusCode int
	Message    string // best human-readable message found in the body
	Body       string // raw response body for debugging
}

func (e *HTTPError) Error() string { return e.Message }

// Is lets callers write errors.Is(err, ErrNotFound).
func (e *HTTPError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// FromResponse builds an HTTPError. The message is taken from the JSON
// "error" field, then "message", then the trimmed body text, and finally
// falls back to "HTTP <status>".
func FromResponse(statusCode int, body []byte) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    messageFrom(statusCode, body),
		Body:       string(body),
	}
}

func messageFrom(statusCode int, body []byte) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Error != "" {
			return payload.Error
		}
		if payload.Message != "" {
			return payload.Message
		}
	}
	if text := strings.TrimSpace(string(body)); text != "" {
		return text
	}
	return fmt.Sprintf("HTTP %d", statusCode)
}

// NewNetworkError wraps a transport-level failure (no HTTP status).
func NewNetworkError(operation string, err error) error {
	return fmt.Errorf("%s network error: %w", operation, err)
}
