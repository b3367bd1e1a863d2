// Package replicateclient provides the main entry point for creating
// Replicate API clients.
package replicateclient

import (
	"os"
	"strings"

	"github.com/fivetwenty-io/replicate-client/internal/client"
	"github.com/fivetwenty-io/replicate-client/internal/constants"
	"github.com/fivetwenty-io/replicate-client/pkg/replicate"
)

// New creates a new Replicate API client from the given configuration. The
// base URL is normalized (trailing slash trimmed, "https://" prepended when
// no scheme is present); everything else is passed through unvalidated.
func New(config *replicate.Config) (replicate.Client, error) {
	if config == nil {
		return nil, replicate.ErrConfigRequired
	}

	normalized := *config
	normalized.BaseURL = normalizeBaseURL(config.BaseURL)

	apiClient, err := client.New(&normalized)
	if err != nil {
		return nil, err
	}

	return apiClient, nil
}

// NewWithToken creates a new client for the production API with an API token.
func NewWithToken(token string) (replicate.Client, error) {
	return New(&replicate.Config{
		APIToken: token,
	})
}

// NewFromEnv creates a new client configured from the environment:
// REPLICATE_API_TOKEN for the token and optionally REPLICATE_BASE_URL for
// the endpoint.
func NewFromEnv() (replicate.Client, error) {
	return New(&replicate.Config{
		APIToken: os.Getenv(constants.EnvAPIToken),
		BaseURL:  os.Getenv(constants.EnvBaseURL),
	})
}

// normalizeBaseURL trims a trailing slash and defaults the scheme to https.
func normalizeBaseURL(baseURL string) string {
	if baseURL == "" {
		return ""
	}

	baseURL = strings.TrimSuffix(baseURL, "/")
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "https://" + baseURL
	}

	return baseURL
}
