package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fivetwenty-io/replicate-client/internal/http"
	"github.com/fivetwenty-io/replicate-client/pkg/replicate"
)

// HardwareClient implements replicate.HardwareClient.
type HardwareClient struct {
	httpClient *http.Client
}

// NewHardwareClient creates a new hardware catalog client.
func NewHardwareClient(httpClient *http.Client) *HardwareClient {
	return &HardwareClient{
		httpClient: httpClient,
	}
}

// List implements replicate.HardwareClient.List. The catalog endpoint
// returns a plain JSON array, not a paginated envelope.
func (c *HardwareClient) List(ctx context.Context) ([]replicate.Hardware, error) {
	resp, err := c.httpClient.Get(ctx, "/hardware", nil)
	if err != nil {
		return nil, fmt.Errorf("listing hardware: %w", err)
	}

	var hardware []replicate.Hardware
	if err := json.Unmarshal(resp.Body, &hardware); err != nil {
		return nil, fmt.Errorf("parsing hardware response: %w", err)
	}

	return hardware, nil
}
