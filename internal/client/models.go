package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fivetwenty-io/replicate-client/internal/http"
	"github.com/fivetwenty-io/replicate-client/pkg/replicate"
)

// ModelsClient implements replicate.ModelsClient.
type ModelsClient struct {
	httpClient *http.Client
}

// NewModelsClient creates a new models client.
func NewModelsClient(httpClient *http.Client) *ModelsClient {
	return &ModelsClient{
		httpClient: httpClient,
	}
}

// Create implements replicate.ModelsClient.Create.
func (c *ModelsClient) Create(ctx context.Context, request *replicate.ModelCreateRequest) (*replicate.Model, error) {
	if request == nil {
		return nil, replicate.ErrRequestRequired
	}

	resp, err := c.httpClient.Post(ctx, "/models", request)
	if err != nil {
		return nil, fmt.Errorf("creating model: %w", err)
	}

	var model replicate.Model
	if err := json.Unmarshal(resp.Body, &model); err != nil {
		return nil, fmt.Errorf("parsing model response: %w", err)
	}

	return &model, nil
}

// Get implements replicate.ModelsClient.Get.
func (c *ModelsClient) Get(ctx context.Context, owner, name string) (*replicate.Model, error) {
	ref := replicate.ModelRef{Owner: owner, Name: name}

	resp, err := c.httpClient.Get(ctx, ref.Path(), nil)
	if err != nil {
		return nil, fmt.Errorf("getting model %s: %w", ref, err)
	}

	var model replicate.Model
	if err := json.Unmarshal(resp.Body, &model); err != nil {
		return nil, fmt.Errorf("parsing model response: %w", err)
	}

	return &model, nil
}

// Find implements replicate.ModelsClient.Find.
func (c *ModelsClient) Find(ctx context.Context, owner, name string) (*replicate.Model, error) {
	model, err := c.Get(ctx, owner, name)
	if replicate.IsNotFound(err) {
		return nil, nil
	}

	return model, err
}

// List implements replicate.ModelsClient.List.
func (c *ModelsClient) List(ctx context.Context, opts *replicate.ListOptions) (*replicate.ModelList, error) {
	resp, err := c.httpClient.Get(ctx, "/models", cursorQuery(opts))
	if err != nil {
		return nil, fmt.Errorf("listing models: %w", err)
	}

	var result replicate.ModelList
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing models list response: %w", err)
	}

	return &result, nil
}

// All implements replicate.ModelsClient.All.
func (c *ModelsClient) All(ctx context.Context) *replicate.PageIterator[replicate.Model] {
	return replicate.NewPageIterator(ctx, func(ctx context.Context, cursor string) (*replicate.ModelList, error) {
		return c.List(ctx, &replicate.ListOptions{Cursor: cursor})
	})
}

// Delete implements replicate.ModelsClient.Delete.
func (c *ModelsClient) Delete(ctx context.Context, owner, name string) error {
	ref := replicate.ModelRef{Owner: owner, Name: name}

	_, err := c.httpClient.Delete(ctx, ref.Path())
	if err != nil {
		return fmt.Errorf("deleting model %s: %w", ref, err)
	}

	return nil
}
