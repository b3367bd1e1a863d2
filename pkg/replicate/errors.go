package replicate

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// APIError represents a non-2xx response from the Replicate API. It carries
// the HTTP status and the raw detail string from the response body.
type APIError struct {
	Status int    `json:"status" yaml:"status"`
	Detail string `json:"detail" yaml:"detail"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("replicate: unexpected status %d", e.Status)
	}

	return fmt.Sprintf("replicate: status %d: %s", e.Status, e.Detail)
}

// Status codes that map to a dedicated error kind. Anything else non-2xx is
// the generic server error.
const (
	StatusUnauthorized = 401
	StatusForbidden    = 403
	StatusNotFound     = 404
)

// NewAPIError builds an APIError from a response status and body. The body is
// expected to be a JSON object with a "detail" field; anything else is kept
// verbatim as the detail.
func NewAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{Status: status}

	var payload struct {
		Detail string `json:"detail"`
		Title  string `json:"title"`
	}

	if err := json.Unmarshal(body, &payload); err == nil && payload.Detail != "" {
		apiErr.Detail = payload.Detail
		if payload.Title != "" {
			apiErr.Detail = payload.Title + ": " + payload.Detail
		}

		return apiErr
	}

	apiErr.Detail = strings.TrimSpace(string(body))

	return apiErr
}

// IsNotFound checks if the error is a not found error.
func IsNotFound(err error) bool {
	return hasStatus(err, StatusNotFound)
}

// IsUnauthorized checks if the error is an authentication error.
func IsUnauthorized(err error) bool {
	return hasStatus(err, StatusUnauthorized)
}

// IsForbidden checks if the error is an authorization error.
func IsForbidden(err error) bool {
	return hasStatus(err, StatusForbidden)
}

// IsServerError checks if the error is any non-2xx API error that is not one
// of the dedicated unauthorized/forbidden/not-found kinds.
func IsServerError(err error) bool {
	apiErr := &APIError{}
	if !errors.As(err, &apiErr) {
		return false
	}

	switch apiErr.Status {
	case StatusUnauthorized, StatusForbidden, StatusNotFound:
		return false
	default:
		return true
	}
}

func hasStatus(err error, status int) bool {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.Status == status
	}

	return false
}

// Static errors that can be wrapped with context.
var (
	ErrConfigRequired        = errors.New("config is required")
	ErrModelRefRequired      = errors.New("model reference is required")
	ErrDeploymentRefRequired = errors.New("deployment reference is required")
	ErrVersionRequired       = errors.New("model version id is required")
	ErrNoModelVersion        = errors.New("model has no published versions")
	ErrRequestRequired       = errors.New("request is required")
	ErrNoMoreItems           = errors.New("no more items")
	ErrTokenRequired         = errors.New("API token is required")
)
