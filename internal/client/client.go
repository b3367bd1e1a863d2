package client

import (
	"net/url"

	"github.com/fivetwenty-io/replicate-client/internal/auth"
	"github.com/fivetwenty-io/replicate-client/internal/constants"
	"github.com/fivetwenty-io/replicate-client/internal/http"
	"github.com/fivetwenty-io/replicate-client/pkg/replicate"
)

// Client implements the replicate.Client interface.
type Client struct {
	httpClient   *http.Client
	tokenManager auth.TokenManager
	baseURL      string
	logger       replicate.Logger

	// Resource clients
	models      replicate.ModelsClient
	versions    replicate.VersionsClient
	predictions replicate.PredictionsClient
	trainings   replicate.TrainingsClient
	deployments replicate.DeploymentsClient
	hardware    replicate.HardwareClient
	account     replicate.AccountClient
}

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *replicate.Config) []http.Option {
	var httpOpts []http.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(&loggerAdapter{logger: config.Logger}))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.HTTPTimeout > 0 {
		httpOpts = append(httpOpts, http.WithTimeout(config.HTTPTimeout))
	}

	return httpOpts
}

// New creates a new Replicate API client. The config content itself is not
// validated: a missing token is sent as-is and surfaces as an unauthorized
// error from the remote service.
func New(config *replicate.Config) (*Client, error) {
	if config == nil {
		return nil, replicate.ErrConfigRequired
	}

	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = constants.DefaultBaseURL
	}

	var tokenManager auth.TokenManager
	if config.APIToken != "" {
		tokenManager = auth.NewStaticTokenManager(config.APIToken)
	}

	httpOpts := createHTTPClientOptions(config)
	httpClient := http.NewClient(baseURL, tokenManager, httpOpts...)

	client := &Client{
		httpClient:   httpClient,
		tokenManager: tokenManager,
		baseURL:      baseURL,
		logger:       config.Logger,
	}

	client.initializeResourceClients(config.DefaultWebhookURL)

	return client, nil
}

// initializeResourceClients initializes all resource-specific clients.
func (c *Client) initializeResourceClients(defaultWebhookURL string) {
	models := NewModelsClient(c.httpClient)

	c.models = models
	c.versions = NewVersionsClient(c.httpClient)
	c.predictions = NewPredictionsClient(c.httpClient, defaultWebhookURL)
	c.trainings = NewTrainingsClient(c.httpClient, models, defaultWebhookURL)
	c.deployments = NewDeploymentsClient(c.httpClient, defaultWebhookURL)
	c.hardware = NewHardwareClient(c.httpClient)
	c.account = NewAccountClient(c.httpClient)
}

// Models implements replicate.Client.Models.
func (c *Client) Models() replicate.ModelsClient {
	return c.models
}

// Versions implements replicate.Client.Versions.
func (c *Client) Versions() replicate.VersionsClient {
	return c.versions
}

// Predictions implements replicate.Client.Predictions.
func (c *Client) Predictions() replicate.PredictionsClient {
	return c.predictions
}

// Trainings implements replicate.Client.Trainings.
func (c *Client) Trainings() replicate.TrainingsClient {
	return c.trainings
}

// Deployments implements replicate.Client.Deployments.
func (c *Client) Deployments() replicate.DeploymentsClient {
	return c.deployments
}

// Hardware implements replicate.Client.Hardware.
func (c *Client) Hardware() replicate.HardwareClient {
	return c.hardware
}

// Account implements replicate.Client.Account.
func (c *Client) Account() replicate.AccountClient {
	return c.account
}

// cursorQuery converts list options into the cursor query parameter.
func cursorQuery(opts *replicate.ListOptions) url.Values {
	if opts == nil || opts.Cursor == "" {
		return nil
	}

	return url.Values{"cursor": []string{opts.Cursor}}
}

// loggerAdapter adapts replicate.Logger to http.Logger.
type loggerAdapter struct {
	logger replicate.Logger
}

func (l *loggerAdapter) Debug(msg string, fields map[string]interface{}) {
	l.logger.Debug(msg, fields)
}

func (l *loggerAdapter) Info(msg string, fields map[string]interface{}) {
	l.logger.Info(msg, fields)
}

func (l *loggerAdapter) Warn(msg string, fields map[string]interface{}) {
	l.logger.Warn(msg, fields)
}

func (l *loggerAdapter) Error(msg string, fields map[string]interface{}) {
	l.logger.Error(msg, fields)
}
