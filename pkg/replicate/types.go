package replicate

import "time"

// Model represents a model hosted on Replicate.
type Model struct {
	URL            string        `json:"url"                       yaml:"url"`
	Owner          string        `json:"owner"                     yaml:"owner"`
	Name           string        `json:"name"                      yaml:"name"`
	Description    string        `json:"description,omitempty"     yaml:"description,omitempty"`
	Visibility     string        `json:"visibility"                yaml:"visibility"`
	GithubURL      string        `json:"github_url,omitempty"      yaml:"github_url,omitempty"`
	PaperURL       string        `json:"paper_url,omitempty"       yaml:"paper_url,omitempty"`
	LicenseURL     string        `json:"license_url,omitempty"     yaml:"license_url,omitempty"`
	RunCount       int64         `json:"run_count"                 yaml:"run_count"`
	CoverImageURL  string        `json:"cover_image_url,omitempty" yaml:"cover_image_url,omitempty"`
	DefaultExample *Prediction   `json:"default_example,omitempty" yaml:"default_example,omitempty"`
	LatestVersion  *ModelVersion `json:"latest_version,omitempty"  yaml:"latest_version,omitempty"`
}

// ModelCreateRequest represents a request to create a model.
type ModelCreateRequest struct {
	// Owner is the user or organization that will own the model.
	Owner string `json:"owner" yaml:"owner"`
	// Name is the model name (unique within the owner's namespace).
	Name string `json:"name" yaml:"name"`
	// Visibility is either "public" or "private".
	Visibility string `json:"visibility" yaml:"visibility"`
	// Hardware is the SKU the model runs on; see HardwareClient.List.
	Hardware      string `json:"hardware"                  yaml:"hardware"`
	Description   string `json:"description,omitempty"     yaml:"description,omitempty"`
	GithubURL     string `json:"github_url,omitempty"      yaml:"github_url,omitempty"`
	PaperURL      string `json:"paper_url,omitempty"       yaml:"paper_url,omitempty"`
	LicenseURL    string `json:"license_url,omitempty"     yaml:"license_url,omitempty"`
	CoverImageURL string `json:"cover_image_url,omitempty" yaml:"cover_image_url,omitempty"`
}

// ModelVersion represents a single published version of a model.
type ModelVersion struct {
	ID             string                 `json:"id"                       yaml:"id"`
	CreatedAt      time.Time              `json:"created_at"               yaml:"created_at"`
	CogVersion     string                 `json:"cog_version,omitempty"    yaml:"cog_version,omitempty"`
	OpenAPISchema  map[string]interface{} `json:"openapi_schema,omitempty" yaml:"openapi_schema,omitempty"`
}

// PredictionStatus is the lifecycle state of a prediction or training.
type PredictionStatus string

const (
	PredictionStatusStarting   PredictionStatus = "starting"
	PredictionStatusProcessing PredictionStatus = "processing"
	PredictionStatusSucceeded  PredictionStatus = "succeeded"
	PredictionStatusFailed     PredictionStatus = "failed"
	PredictionStatusCanceled   PredictionStatus = "canceled"
)

// Terminated reports whether the status is a terminal state.
func (s PredictionStatus) Terminated() bool {
	return s == PredictionStatusSucceeded || s == PredictionStatusFailed || s == PredictionStatusCanceled
}

// PredictionMetrics holds server-reported execution metrics.
type PredictionMetrics struct {
	PredictTime float64 `json:"predict_time,omitempty" yaml:"predict_time,omitempty"`
}

// PredictionURLs holds the API URLs associated with a prediction.
type PredictionURLs struct {
	Get    string `json:"get,omitempty"    yaml:"get,omitempty"`
	Cancel string `json:"cancel,omitempty" yaml:"cancel,omitempty"`
}

// Prediction represents one run of a model version.
//
// A Prediction is a snapshot of the server-side state at the time of the last
// fetch or mutation; instances are not shared or cached, and cancellation does
// not update the local snapshot.
type Prediction struct {
	ID                  string                 `json:"id"                              yaml:"id"`
	Model               string                 `json:"model,omitempty"                 yaml:"model,omitempty"`
	Version             string                 `json:"version,omitempty"               yaml:"version,omitempty"`
	Status              PredictionStatus       `json:"status"                          yaml:"status"`
	Input               map[string]interface{} `json:"input,omitempty"                 yaml:"input,omitempty"`
	Output              interface{}            `json:"output,omitempty"                yaml:"output,omitempty"`
	Logs                string                 `json:"logs,omitempty"                  yaml:"logs,omitempty"`
	Error               string                 `json:"error,omitempty"                 yaml:"error,omitempty"`
	Source              string                 `json:"source,omitempty"                yaml:"source,omitempty"`
	CreatedAt           time.Time              `json:"created_at"                      yaml:"created_at"`
	StartedAt           *time.Time             `json:"started_at,omitempty"            yaml:"started_at,omitempty"`
	CompletedAt         *time.Time             `json:"completed_at,omitempty"          yaml:"completed_at,omitempty"`
	Metrics             *PredictionMetrics     `json:"metrics,omitempty"               yaml:"metrics,omitempty"`
	URLs                *PredictionURLs        `json:"urls,omitempty"                  yaml:"urls,omitempty"`
	Webhook             string                 `json:"webhook,omitempty"               yaml:"webhook,omitempty"`
	WebhookEventsFilter []WebhookEventType     `json:"webhook_events_filter,omitempty" yaml:"webhook_events_filter,omitempty"`
	DataRemoved         bool                   `json:"data_removed,omitempty"          yaml:"data_removed,omitempty"`
}

// PredictionCreateRequest represents a request to create a prediction.
type PredictionCreateRequest struct {
	// Version is the model version id. It is required for creation against
	// POST /predictions; PredictionsClient.CreateForModel routes requests
	// that carry one through that endpoint, and
	// DeploymentsClient.CreatePrediction ignores it since the deployment
	// pins the version.
	Version string `json:"version,omitempty" yaml:"version,omitempty"`
	// Input is the model input, keyed by the model's input schema.
	Input map[string]interface{} `json:"input" yaml:"input"`
	// Webhook optionally receives lifecycle events for this prediction. When
	// empty, Config.DefaultWebhookURL is applied if set.
	Webhook             string             `json:"webhook,omitempty"               yaml:"webhook,omitempty"`
	WebhookEventsFilter []WebhookEventType `json:"webhook_events_filter,omitempty" yaml:"webhook_events_filter,omitempty"`
}

// TrainingOutput is the result of a completed training.
type TrainingOutput struct {
	Version string `json:"version,omitempty" yaml:"version,omitempty"`
	Weights string `json:"weights,omitempty" yaml:"weights,omitempty"`
}

// Training represents a fine-tuning run of a model version.
type Training struct {
	ID                  string                 `json:"id"                              yaml:"id"`
	Model               string                 `json:"model,omitempty"                 yaml:"model,omitempty"`
	Version             string                 `json:"version,omitempty"               yaml:"version,omitempty"`
	Status              PredictionStatus       `json:"status"                          yaml:"status"`
	Input               map[string]interface{} `json:"input,omitempty"                 yaml:"input,omitempty"`
	Output              *TrainingOutput        `json:"output,omitempty"                yaml:"output,omitempty"`
	Logs                string                 `json:"logs,omitempty"                  yaml:"logs,omitempty"`
	Error               string                 `json:"error,omitempty"                 yaml:"error,omitempty"`
	CreatedAt           time.Time              `json:"created_at"                      yaml:"created_at"`
	StartedAt           *time.Time             `json:"started_at,omitempty"            yaml:"started_at,omitempty"`
	CompletedAt         *time.Time             `json:"completed_at,omitempty"          yaml:"completed_at,omitempty"`
	URLs                *PredictionURLs        `json:"urls,omitempty"                  yaml:"urls,omitempty"`
	Webhook             string                 `json:"webhook,omitempty"               yaml:"webhook,omitempty"`
	WebhookEventsFilter []WebhookEventType     `json:"webhook_events_filter,omitempty" yaml:"webhook_events_filter,omitempty"`
}

// TrainingCreateRequest represents a request to create a training.
type TrainingCreateRequest struct {
	// Destination is the "owner/name" of the model that will receive the
	// trained version.
	Destination string `json:"destination" yaml:"destination"`
	// Input is the training input, keyed by the version's training schema.
	Input map[string]interface{} `json:"input" yaml:"input"`
	// Webhook optionally receives lifecycle events for this training. When
	// empty, Config.DefaultWebhookURL is applied if set.
	Webhook             string             `json:"webhook,omitempty"               yaml:"webhook,omitempty"`
	WebhookEventsFilter []WebhookEventType `json:"webhook_events_filter,omitempty" yaml:"webhook_events_filter,omitempty"`
}

// DeploymentConfiguration is the scaling configuration of a deployment release.
type DeploymentConfiguration struct {
	Hardware     string `json:"hardware"      yaml:"hardware"`
	MinInstances int    `json:"min_instances" yaml:"min_instances"`
	MaxInstances int    `json:"max_instances" yaml:"max_instances"`
}

// DeploymentRelease is one released configuration of a deployment.
type DeploymentRelease struct {
	Number        int                      `json:"number"                  yaml:"number"`
	Model         string                   `json:"model"                   yaml:"model"`
	Version       string                   `json:"version"                 yaml:"version"`
	CreatedAt     time.Time                `json:"created_at"              yaml:"created_at"`
	CreatedBy     *Account                 `json:"created_by,omitempty"    yaml:"created_by,omitempty"`
	Configuration *DeploymentConfiguration `json:"configuration,omitempty" yaml:"configuration,omitempty"`
}

// Deployment represents a named, always-on deployment of a model version.
type Deployment struct {
	Owner          string             `json:"owner"                     yaml:"owner"`
	Name           string             `json:"name"                      yaml:"name"`
	CurrentRelease *DeploymentRelease `json:"current_release,omitempty" yaml:"current_release,omitempty"`
}

// DeploymentCreateRequest represents a request to create a deployment.
type DeploymentCreateRequest struct {
	Name string `json:"name" yaml:"name"`
	// Model is the "owner/name" of the model to deploy.
	Model        string `json:"model"         yaml:"model"`
	Version      string `json:"version"       yaml:"version"`
	Hardware     string `json:"hardware"      yaml:"hardware"`
	MinInstances int    `json:"min_instances" yaml:"min_instances"`
	MaxInstances int    `json:"max_instances" yaml:"max_instances"`
}

// DeploymentUpdateRequest represents a partial update of a deployment.
// Nil fields are omitted from the PATCH body and leave the remote value
// unchanged.
type DeploymentUpdateRequest struct {
	Version      *string `json:"version,omitempty"       yaml:"version,omitempty"`
	Hardware     *string `json:"hardware,omitempty"      yaml:"hardware,omitempty"`
	MinInstances *int    `json:"min_instances,omitempty" yaml:"min_instances,omitempty"`
	MaxInstances *int    `json:"max_instances,omitempty" yaml:"max_instances,omitempty"`
}

// Hardware represents one SKU from the hardware catalog.
type Hardware struct {
	SKU  string `json:"sku"  yaml:"sku"`
	Name string `json:"name" yaml:"name"`
}

// Account represents the authenticated account or a resource author.
type Account struct {
	Type      string `json:"type"                 yaml:"type"`
	Username  string `json:"username"             yaml:"username"`
	Name      string `json:"name,omitempty"       yaml:"name,omitempty"`
	GithubURL string `json:"github_url,omitempty" yaml:"github_url,omitempty"`
}

// ListResponse represents one page of a cursor-paginated list response.
type ListResponse[T any] struct {
	Results  []T     `json:"results"            yaml:"results"`
	Next     *string `json:"next,omitempty"     yaml:"next,omitempty"`
	Previous *string `json:"previous,omitempty" yaml:"previous,omitempty"`
}

// ModelList represents a paginated list of Model resources.
type ModelList = ListResponse[Model]

// ModelVersionList represents a paginated list of ModelVersion resources.
type ModelVersionList = ListResponse[ModelVersion]

// TrainingList represents a paginated list of Training resources.
type TrainingList = ListResponse[Training]

// DeploymentList represents a paginated list of Deployment resources.
type DeploymentList = ListResponse[Deployment]

// ListOptions holds options for list calls.
type ListOptions struct {
	// Cursor is the opaque continuation token from a previous page's next
	// URL. Empty requests the first page.
	Cursor string
}
