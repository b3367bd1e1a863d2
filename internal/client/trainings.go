package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fivetwenty-io/replicate-client/internal/http"
	"github.com/fivetwenty-io/replicate-client/pkg/replicate"
)

// TrainingsClient implements replicate.TrainingsClient.
type TrainingsClient struct {
	httpClient        *http.Client
	models            *ModelsClient
	defaultWebhookURL string
}

// NewTrainingsClient creates a new trainings client. The models client is
// used to resolve a model's latest version when no version is supplied.
func NewTrainingsClient(httpClient *http.Client, models *ModelsClient, defaultWebhookURL string) *TrainingsClient {
	return &TrainingsClient{
		httpClient:        httpClient,
		models:            models,
		defaultWebhookURL: defaultWebhookURL,
	}
}

// Get implements replicate.TrainingsClient.Get.
func (c *TrainingsClient) Get(ctx context.Context, trainingID string) (*replicate.Training, error) {
	path := "/trainings/" + trainingID

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting training %s: %w", trainingID, err)
	}

	var training replicate.Training
	if err := json.Unmarshal(resp.Body, &training); err != nil {
		return nil, fmt.Errorf("parsing training response: %w", err)
	}

	return &training, nil
}

// Find implements replicate.TrainingsClient.Find.
func (c *TrainingsClient) Find(ctx context.Context, trainingID string) (*replicate.Training, error) {
	training, err := c.Get(ctx, trainingID)
	if replicate.IsNotFound(err) {
		return nil, nil
	}

	return training, err
}

// List implements replicate.TrainingsClient.List.
func (c *TrainingsClient) List(ctx context.Context, opts *replicate.ListOptions) (*replicate.TrainingList, error) {
	resp, err := c.httpClient.Get(ctx, "/trainings", cursorQuery(opts))
	if err != nil {
		return nil, fmt.Errorf("listing trainings: %w", err)
	}

	var result replicate.TrainingList
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing trainings list response: %w", err)
	}

	return &result, nil
}

// All implements replicate.TrainingsClient.All.
func (c *TrainingsClient) All(ctx context.Context) *replicate.PageIterator[replicate.Training] {
	return replicate.NewPageIterator(ctx, func(ctx context.Context, cursor string) (*replicate.TrainingList, error) {
		return c.List(ctx, &replicate.ListOptions{Cursor: cursor})
	})
}

// Create implements replicate.TrainingsClient.Create.
func (c *TrainingsClient) Create(ctx context.Context, model replicate.ModelReference, version replicate.VersionSource, request *replicate.TrainingCreateRequest) (*replicate.Training, error) {
	if model == nil {
		return nil, replicate.ErrModelRefRequired
	}

	if request == nil {
		return nil, replicate.ErrRequestRequired
	}

	versionID, err := c.resolveVersionID(ctx, model, version)
	if err != nil {
		return nil, err
	}

	body := *request
	if body.Webhook == "" && c.defaultWebhookURL != "" {
		body.Webhook = c.defaultWebhookURL
	}

	path := model.ModelRef().Path() + "/versions/" + versionID + "/trainings"

	resp, err := c.httpClient.Post(ctx, path, &body)
	if err != nil {
		return nil, fmt.Errorf("creating training: %w", err)
	}

	var training replicate.Training
	if err := json.Unmarshal(resp.Body, &training); err != nil {
		return nil, fmt.Errorf("parsing training response: %w", err)
	}

	return &training, nil
}

// Cancel implements replicate.TrainingsClient.Cancel.
func (c *TrainingsClient) Cancel(ctx context.Context, trainingID string) (*replicate.Training, error) {
	path := "/trainings/" + trainingID + "/cancel"

	resp, err := c.httpClient.Post(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("canceling training %s: %w", trainingID, err)
	}

	var training replicate.Training
	if err := json.Unmarshal(resp.Body, &training); err != nil {
		return nil, fmt.Errorf("parsing training response: %w", err)
	}

	return &training, nil
}

// resolveVersionID resolves the version a training runs against, in order:
// an explicitly supplied version, the version already carried by the model
// handle, and finally a fresh lookup of the model's latest version. The chain
// stops at the first id available, so an explicit version never triggers a
// request.
func (c *TrainingsClient) resolveVersionID(ctx context.Context, model replicate.ModelReference, version replicate.VersionSource) (string, error) {
	if versionID, ok := replicate.KnownVersionID(version); ok {
		return versionID, nil
	}

	if handle, ok := model.(*replicate.Model); ok {
		if versionID, ok := replicate.KnownVersionID(handle); ok {
			return versionID, nil
		}
	}

	ref := model.ModelRef()

	fetched, err := c.models.Get(ctx, ref.Owner, ref.Name)
	if err != nil {
		return "", fmt.Errorf("resolving latest version of %s: %w", ref, err)
	}

	if fetched.LatestVersion == nil || fetched.LatestVersion.ID == "" {
		return "", fmt.Errorf("%w: %s", replicate.ErrNoModelVersion, ref)
	}

	return fetched.LatestVersion.ID, nil
}
