package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fivetwenty-io/replicate-client/internal/http"
	"github.com/fivetwenty-io/replicate-client/pkg/replicate"
)

// VersionsClient implements replicate.VersionsClient.
type VersionsClient struct {
	httpClient *http.Client
}

// NewVersionsClient creates a new model versions client.
func NewVersionsClient(httpClient *http.Client) *VersionsClient {
	return &VersionsClient{
		httpClient: httpClient,
	}
}

// Get implements replicate.VersionsClient.Get.
func (c *VersionsClient) Get(ctx context.Context, model replicate.ModelReference, versionID string) (*replicate.ModelVersion, error) {
	if model == nil {
		return nil, replicate.ErrModelRefRequired
	}

	path := model.ModelRef().Path() + "/versions/" + versionID

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting model version %s: %w", versionID, err)
	}

	var version replicate.ModelVersion
	if err := json.Unmarshal(resp.Body, &version); err != nil {
		return nil, fmt.Errorf("parsing model version response: %w", err)
	}

	return &version, nil
}

// Find implements replicate.VersionsClient.Find.
func (c *VersionsClient) Find(ctx context.Context, model replicate.ModelReference, versionID string) (*replicate.ModelVersion, error) {
	version, err := c.Get(ctx, model, versionID)
	if replicate.IsNotFound(err) {
		return nil, nil
	}

	return version, err
}

// List implements replicate.VersionsClient.List.
func (c *VersionsClient) List(ctx context.Context, model replicate.ModelReference, opts *replicate.ListOptions) (*replicate.ModelVersionList, error) {
	if model == nil {
		return nil, replicate.ErrModelRefRequired
	}

	path := model.ModelRef().Path() + "/versions"

	resp, err := c.httpClient.Get(ctx, path, cursorQuery(opts))
	if err != nil {
		return nil, fmt.Errorf("listing model versions: %w", err)
	}

	var result replicate.ModelVersionList
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing model versions list response: %w", err)
	}

	return &result, nil
}

// All implements replicate.VersionsClient.All.
func (c *VersionsClient) All(ctx context.Context, model replicate.ModelReference) *replicate.PageIterator[replicate.ModelVersion] {
	return replicate.NewPageIterator(ctx, func(ctx context.Context, cursor string) (*replicate.ModelVersionList, error) {
		return c.List(ctx, model, &replicate.ListOptions{Cursor: cursor})
	})
}
