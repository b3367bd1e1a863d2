package constants

import "time"

// API defaults.
const (
	// DefaultBaseURL is the production Replicate API base URL.
	DefaultBaseURL = "https://api.replicate.com/v1"

	// DefaultUserAgent is sent when the config does not override it.
	DefaultUserAgent = "replicate-client-go"

	// EnvAPIToken is the environment variable holding the API token.
	EnvAPIToken = "REPLICATE_API_TOKEN"

	// EnvBaseURL optionally overrides the API base URL.
	EnvBaseURL = "REPLICATE_BASE_URL"
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default wall-clock timeout for one request.
	DefaultHTTPTimeout = 120 * time.Second

	// ShortHTTPTimeout is used for quick operations.
	ShortHTTPTimeout = 10 * time.Second
)

// Polling intervals.
const (
	// DefaultPollInterval is used when waiting on predictions and trainings.
	DefaultPollInterval = 2 * time.Second
)

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// CLI configuration locations.
const (
	// ConfigDirName is the directory under $HOME holding CLI configuration.
	ConfigDirName = ".replicate"

	// ConfigFileName is the CLI configuration file name.
	ConfigFileName = "config.yml"
)
