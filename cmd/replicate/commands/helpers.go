package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/fivetwenty-io/replicate-client/internal/constants"
	"github.com/fivetwenty-io/replicate-client/pkg/replicate"
	"github.com/fivetwenty-io/replicate-client/pkg/replicateclient"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Common string constants used throughout the commands package.
const (
	NotAvailable = "N/A"

	// Output formats.
	OutputFormatJSON = "json"
	OutputFormatYAML = "yaml"

	// JSON formatting.
	defaultJSONIndent = "  "

	Masked = "***"
)

// Common static errors used throughout the commands package.
var (
	ErrNotLoggedIn        = errors.New("no API token configured. Use 'replicate auth login' or set REPLICATE_API_TOKEN")
	ErrModelRefFormat     = errors.New("model must be given as owner/name")
	ErrInputFormat        = errors.New("invalid input format. Expected key=value")
	ErrVersionRequired    = errors.New("either --version or --model is required")
	ErrDestinationFormat  = errors.New("destination must be given as owner/name")
	ErrPredictionRequired = errors.New("prediction ID is required")
)

// createClient builds a Replicate client from the effective configuration:
// flags first, then config file values via viper, then the environment.
func createClient() (replicate.Client, error) {
	token := viper.GetString("token")
	if token == "" {
		token = viper.GetString("api_token")
	}

	if token == "" {
		token = os.Getenv(constants.EnvAPIToken)
	}

	if token == "" {
		return nil, ErrNotLoggedIn
	}

	config := &replicate.Config{
		APIToken:          token,
		BaseURL:           viper.GetString("base_url"),
		DefaultWebhookURL: viper.GetString("webhook_url"),
		Debug:             viper.GetBool("verbose"),
	}

	client, err := replicateclient.New(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return client, nil
}

// renderOutput writes v as JSON or YAML when the --output flag asks for it,
// and otherwise calls renderTable for the human-readable default.
func renderOutput(v interface{}, renderTable func() error) error {
	switch viper.GetString("output") {
	case OutputFormatJSON:
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", defaultJSONIndent)

		err := encoder.Encode(v)
		if err != nil {
			return fmt.Errorf("encoding to JSON: %w", err)
		}

		return nil
	case OutputFormatYAML:
		encoder := yaml.NewEncoder(os.Stdout)

		err := encoder.Encode(v)
		if err != nil {
			return fmt.Errorf("encoding to YAML: %w", err)
		}

		return nil
	default:
		return renderTable()
	}
}

// formatTime renders an optional timestamp for table output.
func formatTime(t *time.Time) string {
	if t == nil || t.IsZero() {
		return NotAvailable
	}

	return t.Local().Format(time.RFC3339)
}

// formatTimeValue renders a required timestamp for table output.
func formatTimeValue(t time.Time) string {
	return formatTime(&t)
}

// stringOrDefault returns s, or NotAvailable when s is empty.
func stringOrDefault(s string) string {
	if s == "" {
		return NotAvailable
	}

	return s
}

// derefOrDefault renders an optional string field for table output.
func derefOrDefault(s *string) string {
	if s == nil || *s == "" {
		return NotAvailable
	}

	return *s
}

// truncate shortens long values so tables stay readable.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}

	return s[:max-3] + "..."
}

// compactJSON renders an arbitrary value as a single JSON line for tables.
func compactJSON(v interface{}) string {
	if v == nil {
		return NotAvailable
	}

	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}

	return string(data)
}
