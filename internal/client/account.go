package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fivetwenty-io/replicate-client/internal/http"
	"github.com/fivetwenty-io/replicate-client/pkg/replicate"
)

// AccountClient implements replicate.AccountClient.
type AccountClient struct {
	httpClient *http.Client
}

// NewAccountClient creates a new account client.
func NewAccountClient(httpClient *http.Client) *AccountClient {
	return &AccountClient{
		httpClient: httpClient,
	}
}

// Get implements replicate.AccountClient.Get.
func (c *AccountClient) Get(ctx context.Context) (*replicate.Account, error) {
	resp, err := c.httpClient.Get(ctx, "/account", nil)
	if err != nil {
		return nil, fmt.Errorf("getting account: %w", err)
	}

	var account replicate.Account
	if err := json.Unmarshal(resp.Body, &account); err != nil {
		return nil, fmt.Errorf("parsing account response: %w", err)
	}

	return &account, nil
}
