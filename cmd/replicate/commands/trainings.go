package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/fivetwenty-io/replicate-client/pkg/replicate"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewTrainingsCommand creates the trainings command group.
func NewTrainingsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trainings",
		Short: "Manage trainings",
		Long:  "Create, inspect, list, and cancel model trainings",
	}

	cmd.AddCommand(newTrainingsListCommand())
	cmd.AddCommand(newTrainingsGetCommand())
	cmd.AddCommand(newTrainingsCreateCommand())
	cmd.AddCommand(newTrainingsCancelCommand())

	return cmd
}

func newTrainingsListCommand() *cobra.Command {
	var (
		allPages bool
		cursor   string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List trainings",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			var trainings []replicate.Training

			if allPages {
				trainings, err = client.Trainings().All(ctx).All()
			} else {
				var page *replicate.TrainingList

				page, err = client.Trainings().List(ctx, &replicate.ListOptions{Cursor: cursor})
				if err == nil {
					trainings = page.Results

					defer printNextCursorHint(page.Next)
				}
			}

			if err != nil {
				return fmt.Errorf("failed to list trainings: %w", err)
			}

			return renderOutput(trainings, func() error {
				if len(trainings) == 0 {
					_, _ = os.Stdout.WriteString("No trainings found\n")

					return nil
				}

				table := tablewriter.NewWriter(os.Stdout)
				table.Header("ID", "Model", "Status", "Created")

				for _, training := range trainings {
					table.Append(training.ID, stringOrDefault(training.Model), string(training.Status), formatTimeValue(training.CreatedAt))
				}

				table.Render()

				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&allPages, "all", false, "fetch all pages")
	cmd.Flags().StringVar(&cursor, "cursor", "", "pagination cursor from a previous page")

	return cmd
}

func newTrainingsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get TRAINING_ID",
		Short: "Show a training",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			training, err := client.Trainings().Get(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get training: %w", err)
			}

			return renderOutput(training, func() error {
				renderTrainingTable(training)

				return nil
			})
		},
	}
}

func newTrainingsCreateCommand() *cobra.Command {
	var (
		version     string
		destination string
		inputs      []string
		webhook     string
	)

	cmd := &cobra.Command{
		Use:   "create OWNER/NAME",
		Short: "Start a training",
		Long: `Start a training of a model version.

The version defaults to the model's latest version when --version is not
given. The trained version is pushed to the --destination model.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref := replicate.ParseModelRef(args[0])
			if ref.IsZero() {
				return ErrModelRefFormat
			}

			dest := replicate.ParseModelRef(destination)
			if dest.IsZero() {
				return ErrDestinationFormat
			}

			input, err := parseInputs(inputs)
			if err != nil {
				return err
			}

			client, err := createClient()
			if err != nil {
				return err
			}

			request := &replicate.TrainingCreateRequest{
				Destination: dest.String(),
				Input:       input,
				Webhook:     webhook,
			}

			var source replicate.VersionSource
			if version != "" {
				source = replicate.VersionID(version)
			}

			training, err := client.Trainings().Create(context.Background(), ref, source, request)
			if err != nil {
				return fmt.Errorf("failed to create training: %w", err)
			}

			return renderOutput(training, func() error {
				renderTrainingTable(training)

				return nil
			})
		},
	}

	cmd.Flags().StringVar(&version, "version", "", "model version id (defaults to the latest version)")
	cmd.Flags().StringVar(&destination, "destination", "", "destination model as owner/name (required)")
	cmd.Flags().StringArrayVarP(&inputs, "input", "i", nil, "training input (key=value, repeatable; values are parsed as JSON when possible)")
	cmd.Flags().StringVar(&webhook, "webhook", "", "webhook URL for lifecycle events")
	_ = cmd.MarkFlagRequired("destination")

	return cmd
}

func newTrainingsCancelCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel TRAINING_ID",
		Short: "Cancel a running training",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			training, err := client.Trainings().Cancel(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to cancel training: %w", err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Training %s is now %s\n", training.ID, training.Status)

			return nil
		},
	}
}

func renderTrainingTable(training *replicate.Training) {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Field", "Value")
	table.Append("ID", training.ID)
	table.Append("Model", stringOrDefault(training.Model))
	table.Append("Version", stringOrDefault(truncate(training.Version, 20)))
	table.Append("Status", string(training.Status))
	table.Append("Created", formatTimeValue(training.CreatedAt))
	table.Append("Started", formatTime(training.StartedAt))
	table.Append("Completed", formatTime(training.CompletedAt))

	if training.Error != "" {
		table.Append("Error", training.Error)
	}

	if training.Output != nil && training.Output.Version != "" {
		table.Append("Trained Version", training.Output.Version)
	}

	table.Render()
}
