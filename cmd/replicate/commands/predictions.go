package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fivetwenty-io/replicate-client/pkg/replicate"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewPredictionsCommand creates the predictions command group.
func NewPredictionsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "predictions",
		Short: "Manage predictions",
		Long:  "Create, inspect, wait for, and cancel predictions",
	}

	cmd.AddCommand(newPredictionsCreateCommand())
	cmd.AddCommand(newPredictionsGetCommand())
	cmd.AddCommand(newPredictionsCancelCommand())
	cmd.AddCommand(newPredictionsWaitCommand())

	return cmd
}

func newPredictionsCreateCommand() *cobra.Command {
	var (
		model   string
		version string
		inputs  []string
		webhook string
		wait    bool
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a prediction",
		Long: `Create a prediction for a model.

With --version the prediction runs that exact model version. With --model
alone the request is routed through the official-model endpoint and the
service picks the latest version.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := parseInputs(inputs)
			if err != nil {
				return err
			}

			client, err := createClient()
			if err != nil {
				return err
			}

			ctx := context.Background()
			request := &replicate.PredictionCreateRequest{
				Input:   input,
				Webhook: webhook,
			}

			var prediction *replicate.Prediction

			switch {
			case version != "":
				request.Version = version
				prediction, err = client.Predictions().Create(ctx, request)
			case model != "":
				ref := replicate.ParseModelRef(model)
				if ref.IsZero() {
					return ErrModelRefFormat
				}

				prediction, err = client.Predictions().CreateForModel(ctx, ref, request)
			default:
				return ErrVersionRequired
			}

			if err != nil {
				return fmt.Errorf("failed to create prediction: %w", err)
			}

			if wait {
				prediction, err = client.Predictions().Wait(ctx, prediction.ID, 0)
				if err != nil {
					return fmt.Errorf("waiting for prediction: %w", err)
				}
			}

			return renderOutput(prediction, func() error {
				renderPredictionTable(prediction)

				return nil
			})
		},
	}

	cmd.Flags().StringVar(&model, "model", "", "model as owner/name (official-model endpoint)")
	cmd.Flags().StringVar(&version, "version", "", "model version id")
	cmd.Flags().StringArrayVarP(&inputs, "input", "i", nil, "prediction input (key=value, repeatable; values are parsed as JSON when possible)")
	cmd.Flags().StringVar(&webhook, "webhook", "", "webhook URL for lifecycle events")
	cmd.Flags().BoolVar(&wait, "wait", false, "poll until the prediction reaches a terminal state")

	return cmd
}

func newPredictionsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get PREDICTION_ID",
		Short: "Show a prediction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			prediction, err := client.Predictions().Get(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get prediction: %w", err)
			}

			return renderOutput(prediction, func() error {
				renderPredictionTable(prediction)

				return nil
			})
		},
	}
}

func newPredictionsCancelCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel PREDICTION_ID",
		Short: "Cancel a running prediction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			prediction, err := client.Predictions().Cancel(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to cancel prediction: %w", err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Prediction %s is now %s\n", prediction.ID, prediction.Status)

			return nil
		},
	}
}

func newPredictionsWaitCommand() *cobra.Command {
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "wait PREDICTION_ID",
		Short: "Wait for a prediction to finish",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			prediction, err := client.Predictions().Wait(context.Background(), args[0], interval)
			if err != nil {
				return fmt.Errorf("waiting for prediction: %w", err)
			}

			return renderOutput(prediction, func() error {
				renderPredictionTable(prediction)

				return nil
			})
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", 0, "poll interval (default 2s)")

	return cmd
}

func renderPredictionTable(prediction *replicate.Prediction) {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Field", "Value")
	table.Append("ID", prediction.ID)
	table.Append("Model", stringOrDefault(prediction.Model))
	table.Append("Version", stringOrDefault(truncate(prediction.Version, 20)))
	table.Append("Status", string(prediction.Status))
	table.Append("Created", formatTimeValue(prediction.CreatedAt))
	table.Append("Started", formatTime(prediction.StartedAt))
	table.Append("Completed", formatTime(prediction.CompletedAt))

	if prediction.Error != "" {
		table.Append("Error", prediction.Error)
	}

	if prediction.Output != nil {
		table.Append("Output", truncate(compactJSON(prediction.Output), 60))
	}

	table.Render()
}

// parseInputs converts repeated key=value flags into an input map. Values
// that parse as JSON keep their parsed type; everything else stays a string.
func parseInputs(pairs []string) (map[string]interface{}, error) {
	if len(pairs) == 0 {
		return nil, nil
	}

	input := make(map[string]interface{}, len(pairs))

	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("%w: %s", ErrInputFormat, pair)
		}

		var parsed interface{}
		if err := json.Unmarshal([]byte(value), &parsed); err == nil {
			input[key] = parsed
		} else {
			input[key] = value
		}
	}

	return input, nil
}
