package client

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fivetwenty-io/replicate-client/internal/constants"
	"github.com/fivetwenty-io/replicate-client/internal/http"
	"github.com/fivetwenty-io/replicate-client/pkg/replicate"
)

// PredictionsClient implements replicate.PredictionsClient.
type PredictionsClient struct {
	httpClient        *http.Client
	defaultWebhookURL string
}

// NewPredictionsClient creates a new predictions client.
func NewPredictionsClient(httpClient *http.Client, defaultWebhookURL string) *PredictionsClient {
	return &PredictionsClient{
		httpClient:        httpClient,
		defaultWebhookURL: defaultWebhookURL,
	}
}

// Get implements replicate.PredictionsClient.Get.
func (c *PredictionsClient) Get(ctx context.Context, predictionID string) (*replicate.Prediction, error) {
	path := "/predictions/" + predictionID

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting prediction %s: %w", predictionID, err)
	}

	var prediction replicate.Prediction
	if err := json.Unmarshal(resp.Body, &prediction); err != nil {
		return nil, fmt.Errorf("parsing prediction response: %w", err)
	}

	return &prediction, nil
}

// Find implements replicate.PredictionsClient.Find.
func (c *PredictionsClient) Find(ctx context.Context, predictionID string) (*replicate.Prediction, error) {
	prediction, err := c.Get(ctx, predictionID)
	if replicate.IsNotFound(err) {
		return nil, nil
	}

	return prediction, err
}

// Create implements replicate.PredictionsClient.Create. The request must
// carry an explicit model version id.
func (c *PredictionsClient) Create(ctx context.Context, request *replicate.PredictionCreateRequest) (*replicate.Prediction, error) {
	if request == nil || request.Version == "" {
		return nil, replicate.ErrVersionRequired
	}

	body := applyWebhookDefault(request, c.defaultWebhookURL)

	return c.post(ctx, "/predictions", body)
}

// CreateForModel implements replicate.PredictionsClient.CreateForModel.
//
// A version id already carried by the request or by a model handle goes
// through the standard version-based endpoint; a reference with no version id
// goes through the official-model endpoint. No version lookup is performed
// here.
func (c *PredictionsClient) CreateForModel(ctx context.Context, model replicate.ModelReference, request *replicate.PredictionCreateRequest) (*replicate.Prediction, error) {
	if model == nil {
		return nil, replicate.ErrModelRefRequired
	}

	if request == nil {
		request = &replicate.PredictionCreateRequest{}
	}

	if request.Version != "" {
		return c.Create(ctx, request)
	}

	if handle, ok := model.(*replicate.Model); ok {
		if versionID, ok := replicate.KnownVersionID(handle); ok {
			versioned := *request
			versioned.Version = versionID

			return c.Create(ctx, &versioned)
		}
	}

	body := applyWebhookDefault(request, c.defaultWebhookURL)

	return c.post(ctx, model.ModelRef().Path()+"/predictions", body)
}

// Cancel implements replicate.PredictionsClient.Cancel. The returned snapshot
// reflects the server state at cancellation time; previously fetched
// instances are not updated.
func (c *PredictionsClient) Cancel(ctx context.Context, predictionID string) (*replicate.Prediction, error) {
	path := "/predictions/" + predictionID + "/cancel"

	resp, err := c.httpClient.Post(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("canceling prediction %s: %w", predictionID, err)
	}

	var prediction replicate.Prediction
	if err := json.Unmarshal(resp.Body, &prediction); err != nil {
		return nil, fmt.Errorf("parsing prediction response: %w", err)
	}

	return &prediction, nil
}

// Wait implements replicate.PredictionsClient.Wait.
func (c *PredictionsClient) Wait(ctx context.Context, predictionID string, interval time.Duration) (*replicate.Prediction, error) {
	if interval <= 0 {
		interval = constants.DefaultPollInterval
	}

	for {
		prediction, err := c.Get(ctx, predictionID)
		if err != nil {
			return nil, err
		}

		if prediction.Status.Terminated() {
			return prediction, nil
		}

		select {
		case <-ctx.Done():
			return prediction, ctx.Err()
		case <-time.After(interval):
		}
	}
}

func (c *PredictionsClient) post(ctx context.Context, path string, body *replicate.PredictionCreateRequest) (*replicate.Prediction, error) {
	resp, err := c.httpClient.Post(ctx, path, body)
	if err != nil {
		return nil, fmt.Errorf("creating prediction: %w", err)
	}

	var prediction replicate.Prediction
	if err := json.Unmarshal(resp.Body, &prediction); err != nil {
		return nil, fmt.Errorf("parsing prediction response: %w", err)
	}

	return &prediction, nil
}

// applyWebhookDefault copies the request, filling in the configured default
// webhook when the request carries none. The caller's request is never
// mutated.
func applyWebhookDefault(request *replicate.PredictionCreateRequest, defaultWebhookURL string) *replicate.PredictionCreateRequest {
	body := *request
	if body.Webhook == "" && defaultWebhookURL != "" {
		body.Webhook = defaultWebhookURL
	}

	return &body
}
