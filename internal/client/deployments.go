package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fivetwenty-io/replicate-client/internal/http"
	"github.com/fivetwenty-io/replicate-client/pkg/replicate"
)

// DeploymentsClient implements replicate.DeploymentsClient.
type DeploymentsClient struct {
	httpClient        *http.Client
	defaultWebhookURL string
}

// NewDeploymentsClient creates a new deployments client.
func NewDeploymentsClient(httpClient *http.Client, defaultWebhookURL string) *DeploymentsClient {
	return &DeploymentsClient{
		httpClient:        httpClient,
		defaultWebhookURL: defaultWebhookURL,
	}
}

// Get implements replicate.DeploymentsClient.Get.
func (c *DeploymentsClient) Get(ctx context.Context, owner, name string) (*replicate.Deployment, error) {
	ref := replicate.DeploymentRef{Owner: owner, Name: name}

	resp, err := c.httpClient.Get(ctx, ref.Path(), nil)
	if err != nil {
		return nil, fmt.Errorf("getting deployment %s: %w", ref, err)
	}

	var deployment replicate.Deployment
	if err := json.Unmarshal(resp.Body, &deployment); err != nil {
		return nil, fmt.Errorf("parsing deployment response: %w", err)
	}

	return &deployment, nil
}

// Find implements replicate.DeploymentsClient.Find.
func (c *DeploymentsClient) Find(ctx context.Context, owner, name string) (*replicate.Deployment, error) {
	deployment, err := c.Get(ctx, owner, name)
	if replicate.IsNotFound(err) {
		return nil, nil
	}

	return deployment, err
}

// List implements replicate.DeploymentsClient.List.
func (c *DeploymentsClient) List(ctx context.Context, opts *replicate.ListOptions) (*replicate.DeploymentList, error) {
	resp, err := c.httpClient.Get(ctx, "/deployments", cursorQuery(opts))
	if err != nil {
		return nil, fmt.Errorf("listing deployments: %w", err)
	}

	var result replicate.DeploymentList
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing deployments list response: %w", err)
	}

	return &result, nil
}

// All implements replicate.DeploymentsClient.All.
func (c *DeploymentsClient) All(ctx context.Context) *replicate.PageIterator[replicate.Deployment] {
	return replicate.NewPageIterator(ctx, func(ctx context.Context, cursor string) (*replicate.DeploymentList, error) {
		return c.List(ctx, &replicate.ListOptions{Cursor: cursor})
	})
}

// Create implements replicate.DeploymentsClient.Create.
func (c *DeploymentsClient) Create(ctx context.Context, request *replicate.DeploymentCreateRequest) (*replicate.Deployment, error) {
	if request == nil {
		return nil, replicate.ErrRequestRequired
	}

	resp, err := c.httpClient.Post(ctx, "/deployments", request)
	if err != nil {
		return nil, fmt.Errorf("creating deployment: %w", err)
	}

	var deployment replicate.Deployment
	if err := json.Unmarshal(resp.Body, &deployment); err != nil {
		return nil, fmt.Errorf("parsing deployment response: %w", err)
	}

	return &deployment, nil
}

// Update implements replicate.DeploymentsClient.Update. Nil request fields
// are omitted from the PATCH body entirely rather than sent as null.
func (c *DeploymentsClient) Update(ctx context.Context, deployment replicate.DeploymentReference, request *replicate.DeploymentUpdateRequest) (*replicate.Deployment, error) {
	if deployment == nil {
		return nil, replicate.ErrDeploymentRefRequired
	}

	if request == nil {
		return nil, replicate.ErrRequestRequired
	}

	ref := deployment.DeploymentRef()

	resp, err := c.httpClient.Patch(ctx, ref.Path(), request)
	if err != nil {
		return nil, fmt.Errorf("updating deployment %s: %w", ref, err)
	}

	var updated replicate.Deployment
	if err := json.Unmarshal(resp.Body, &updated); err != nil {
		return nil, fmt.Errorf("parsing deployment response: %w", err)
	}

	return &updated, nil
}

// Delete implements replicate.DeploymentsClient.Delete.
func (c *DeploymentsClient) Delete(ctx context.Context, deployment replicate.DeploymentReference) error {
	if deployment == nil {
		return replicate.ErrDeploymentRefRequired
	}

	ref := deployment.DeploymentRef()

	_, err := c.httpClient.Delete(ctx, ref.Path())
	if err != nil {
		return fmt.Errorf("deleting deployment %s: %w", ref, err)
	}

	return nil
}

// CreatePrediction implements replicate.DeploymentsClient.CreatePrediction.
// The deployment pins the model version, so the request must not carry one.
func (c *DeploymentsClient) CreatePrediction(ctx context.Context, deployment replicate.DeploymentReference, request *replicate.PredictionCreateRequest) (*replicate.Prediction, error) {
	if deployment == nil {
		return nil, replicate.ErrDeploymentRefRequired
	}

	if request == nil {
		request = &replicate.PredictionCreateRequest{}
	}

	body := applyWebhookDefault(request, c.defaultWebhookURL)
	body.Version = ""

	ref := deployment.DeploymentRef()

	resp, err := c.httpClient.Post(ctx, ref.Path()+"/predictions", body)
	if err != nil {
		return nil, fmt.Errorf("creating prediction for deployment %s: %w", ref, err)
	}

	var prediction replicate.Prediction
	if err := json.Unmarshal(resp.Body, &prediction); err != nil {
		return nil, fmt.Errorf("parsing prediction response: %w", err)
	}

	return &prediction, nil
}
