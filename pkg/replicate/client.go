package replicate

import (
	"context"
	"time"
)

// ModelsClient provides access to the models collection.
type ModelsClient interface {
	// Create creates a new model.
	Create(ctx context.Context, request *ModelCreateRequest) (*Model, error)
	// Get fetches a model by owner and name. A missing model is an error
	// satisfying IsNotFound.
	Get(ctx context.Context, owner, name string) (*Model, error)
	// Find is Get with absent-result semantics: a missing model yields
	// (nil, nil) instead of an error.
	Find(ctx context.Context, owner, name string) (*Model, error)
	// List fetches one page of models.
	List(ctx context.Context, opts *ListOptions) (*ModelList, error)
	// All iterates over every model, fetching pages on demand.
	All(ctx context.Context) *PageIterator[Model]
	// Delete deletes a model.
	Delete(ctx context.Context, owner, name string) error
}

// VersionsClient provides access to the versions of a model.
type VersionsClient interface {
	// Get fetches a single version of a model.
	Get(ctx context.Context, model ModelReference, versionID string) (*ModelVersion, error)
	// Find is Get with absent-result semantics.
	Find(ctx context.Context, model ModelReference, versionID string) (*ModelVersion, error)
	// List fetches one page of a model's versions.
	List(ctx context.Context, model ModelReference, opts *ListOptions) (*ModelVersionList, error)
	// All iterates over every version of a model.
	All(ctx context.Context, model ModelReference) *PageIterator[ModelVersion]
}

// PredictionsClient provides access to predictions.
type PredictionsClient interface {
	// Get fetches a prediction by id.
	Get(ctx context.Context, predictionID string) (*Prediction, error)
	// Find is Get with absent-result semantics.
	Find(ctx context.Context, predictionID string) (*Prediction, error)
	// Create creates a prediction for an explicit model version
	// (request.Version must be set).
	Create(ctx context.Context, request *PredictionCreateRequest) (*Prediction, error)
	// CreateForModel creates a prediction for a model reference. A version id
	// carried by the request or by a model handle routes through the standard
	// version-based endpoint; a reference with no version id routes through
	// the official-model endpoint. No version lookup is ever performed.
	CreateForModel(ctx context.Context, model ModelReference, request *PredictionCreateRequest) (*Prediction, error)
	// Cancel requests cancellation of a running prediction.
	Cancel(ctx context.Context, predictionID string) (*Prediction, error)
	// Wait polls a prediction until it reaches a terminal status or ctx is
	// done.
	Wait(ctx context.Context, predictionID string, interval time.Duration) (*Prediction, error)
}

// TrainingsClient provides access to trainings.
type TrainingsClient interface {
	// Get fetches a training by id.
	Get(ctx context.Context, trainingID string) (*Training, error)
	// Find is Get with absent-result semantics.
	Find(ctx context.Context, trainingID string) (*Training, error)
	// List fetches one page of trainings.
	List(ctx context.Context, opts *ListOptions) (*TrainingList, error)
	// All iterates over every training.
	All(ctx context.Context) *PageIterator[Training]
	// Create starts a training of a model version. The version is resolved in
	// order from: the version argument, the version already carried by the
	// model handle, and finally a fresh lookup of the model's latest version.
	// The chain short-circuits at the first id available.
	Create(ctx context.Context, model ModelReference, version VersionSource, request *TrainingCreateRequest) (*Training, error)
	// Cancel requests cancellation of a running training.
	Cancel(ctx context.Context, trainingID string) (*Training, error)
}

// DeploymentsClient provides access to deployments.
type DeploymentsClient interface {
	// Get fetches a deployment by owner and name.
	Get(ctx context.Context, owner, name string) (*Deployment, error)
	// Find is Get with absent-result semantics.
	Find(ctx context.Context, owner, name string) (*Deployment, error)
	// List fetches one page of the account's deployments.
	List(ctx context.Context, opts *ListOptions) (*DeploymentList, error)
	// All iterates over every deployment.
	All(ctx context.Context) *PageIterator[Deployment]
	// Create creates a deployment.
	Create(ctx context.Context, request *DeploymentCreateRequest) (*Deployment, error)
	// Update patches a deployment's configuration; nil fields are left
	// unchanged.
	Update(ctx context.Context, deployment DeploymentReference, request *DeploymentUpdateRequest) (*Deployment, error)
	// Delete deletes a deployment.
	Delete(ctx context.Context, deployment DeploymentReference) error
	// CreatePrediction creates a prediction against the deployment.
	CreatePrediction(ctx context.Context, deployment DeploymentReference, request *PredictionCreateRequest) (*Prediction, error)
}

// HardwareClient provides access to the hardware catalog.
type HardwareClient interface {
	// List fetches the full hardware catalog (not paginated).
	List(ctx context.Context) ([]Hardware, error)
}

// AccountClient provides access to the authenticated account.
type AccountClient interface {
	// Get fetches the account associated with the configured token.
	Get(ctx context.Context) (*Account, error)
}

// Client is the root of the Replicate API client surface.
type Client interface {
	Models() ModelsClient
	Versions() VersionsClient
	Predictions() PredictionsClient
	Trainings() TrainingsClient
	Deployments() DeploymentsClient
	Hardware() HardwareClient
	Account() AccountClient
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building a Client. There is no
// process-wide configuration: every client carries its own copy.
//
// Config content is not validated locally. In particular a missing APIToken
// is not an error at construction time; requests are sent unauthenticated and
// surface as an unauthorized APIError from the remote service.
type Config struct {
	// APIToken is the Replicate API token, sent as a Bearer header on every
	// request when set.
	APIToken string
	// BaseURL overrides the API base URL. Defaults to
	// "https://api.replicate.com/v1". replicateclient.New normalizes the
	// value by trimming a trailing slash and adding "https://" if no scheme
	// is present.
	BaseURL string
	// HTTPTimeout is the wall-clock timeout for a single request. Defaults
	// to 120 seconds. Per-call cancellation is done via context.
	HTTPTimeout time.Duration
	// DefaultWebhookURL is applied to prediction and training create
	// requests that carry no webhook of their own.
	DefaultWebhookURL string
	// UserAgent overrides the default User-Agent header.
	UserAgent string
	// Debug enables verbose HTTP request/response logging when a Logger is
	// provided.
	Debug bool
	// Logger is an optional structured logger used by the HTTP layer.
	Logger Logger
}
