package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/fivetwenty-io/replicate-client/pkg/replicate"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewDeploymentsCommand creates the deployments command group.
func NewDeploymentsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deployments",
		Short: "Manage deployments",
		Long:  "List, inspect, create, update, and delete deployments, and run predictions against them",
	}

	cmd.AddCommand(newDeploymentsListCommand())
	cmd.AddCommand(newDeploymentsGetCommand())
	cmd.AddCommand(newDeploymentsCreateCommand())
	cmd.AddCommand(newDeploymentsUpdateCommand())
	cmd.AddCommand(newDeploymentsDeleteCommand())
	cmd.AddCommand(newDeploymentsPredictCommand())

	return cmd
}

func newDeploymentsListCommand() *cobra.Command {
	var allPages bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List deployments",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			var deployments []replicate.Deployment

			if allPages {
				deployments, err = client.Deployments().All(ctx).All()
			} else {
				var page *replicate.DeploymentList

				page, err = client.Deployments().List(ctx, nil)
				if err == nil {
					deployments = page.Results

					defer printNextCursorHint(page.Next)
				}
			}

			if err != nil {
				return fmt.Errorf("failed to list deployments: %w", err)
			}

			return renderOutput(deployments, func() error {
				if len(deployments) == 0 {
					_, _ = os.Stdout.WriteString("No deployments found\n")

					return nil
				}

				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Deployment", "Model", "Version", "Hardware")

				for _, deployment := range deployments {
					model, version, hardware := NotAvailable, NotAvailable, NotAvailable
					if release := deployment.CurrentRelease; release != nil {
						model = release.Model
						version = truncate(release.Version, 20)

						if release.Configuration != nil {
							hardware = release.Configuration.Hardware
						}
					}

					table.Append(deployment.Owner+"/"+deployment.Name, model, version, hardware)
				}

				table.Render()

				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&allPages, "all", false, "fetch all pages")

	return cmd
}

func newDeploymentsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get OWNER/NAME",
		Short: "Show a deployment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref := replicate.ParseDeploymentRef(args[0])
			if ref.IsZero() {
				return ErrModelRefFormat
			}

			client, err := createClient()
			if err != nil {
				return err
			}

			deployment, err := client.Deployments().Get(context.Background(), ref.Owner, ref.Name)
			if err != nil {
				return fmt.Errorf("failed to get deployment: %w", err)
			}

			return renderOutput(deployment, func() error {
				renderDeploymentTable(deployment)

				return nil
			})
		},
	}
}

func renderDeploymentTable(deployment *replicate.Deployment) {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Field", "Value")
	table.Append("Deployment", deployment.Owner+"/"+deployment.Name)

	if release := deployment.CurrentRelease; release != nil {
		table.Append("Release", fmt.Sprintf("%d", release.Number))
		table.Append("Model", release.Model)
		table.Append("Version", release.Version)
		table.Append("Released", formatTimeValue(release.CreatedAt))

		if release.Configuration != nil {
			table.Append("Hardware", release.Configuration.Hardware)
			table.Append("Min Instances", fmt.Sprintf("%d", release.Configuration.MinInstances))
			table.Append("Max Instances", fmt.Sprintf("%d", release.Configuration.MaxInstances))
		}
	}

	table.Render()
}

func newDeploymentsCreateCommand() *cobra.Command {
	var request replicate.DeploymentCreateRequest

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a deployment",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			deployment, err := client.Deployments().Create(context.Background(), &request)
			if err != nil {
				return fmt.Errorf("failed to create deployment: %w", err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Created deployment %s/%s\n", deployment.Owner, deployment.Name)

			return nil
		},
	}

	cmd.Flags().StringVar(&request.Name, "name", "", "deployment name (required)")
	cmd.Flags().StringVar(&request.Model, "model", "", "model as owner/name (required)")
	cmd.Flags().StringVar(&request.Version, "version", "", "model version id (required)")
	cmd.Flags().StringVar(&request.Hardware, "hardware", "", "hardware SKU (required)")
	cmd.Flags().IntVar(&request.MinInstances, "min-instances", 0, "minimum number of instances")
	cmd.Flags().IntVar(&request.MaxInstances, "max-instances", 1, "maximum number of instances")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("model")
	_ = cmd.MarkFlagRequired("version")
	_ = cmd.MarkFlagRequired("hardware")

	return cmd
}

func newDeploymentsUpdateCommand() *cobra.Command {
	var (
		version      string
		hardware     string
		minInstances int
		maxInstances int
	)

	cmd := &cobra.Command{
		Use:   "update OWNER/NAME",
		Short: "Update a deployment",
		Long:  "Update a deployment's configuration. Only the given flags are changed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref := replicate.ParseDeploymentRef(args[0])
			if ref.IsZero() {
				return ErrModelRefFormat
			}

			request := &replicate.DeploymentUpdateRequest{}
			if cmd.Flags().Changed("version") {
				request.Version = &version
			}

			if cmd.Flags().Changed("hardware") {
				request.Hardware = &hardware
			}

			if cmd.Flags().Changed("min-instances") {
				request.MinInstances = &minInstances
			}

			if cmd.Flags().Changed("max-instances") {
				request.MaxInstances = &maxInstances
			}

			client, err := createClient()
			if err != nil {
				return err
			}

			deployment, err := client.Deployments().Update(context.Background(), ref, request)
			if err != nil {
				return fmt.Errorf("failed to update deployment: %w", err)
			}

			return renderOutput(deployment, func() error {
				renderDeploymentTable(deployment)

				return nil
			})
		},
	}

	cmd.Flags().StringVar(&version, "version", "", "model version id")
	cmd.Flags().StringVar(&hardware, "hardware", "", "hardware SKU")
	cmd.Flags().IntVar(&minInstances, "min-instances", 0, "minimum number of instances")
	cmd.Flags().IntVar(&maxInstances, "max-instances", 0, "maximum number of instances")

	return cmd
}

func newDeploymentsDeleteCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete OWNER/NAME",
		Short: "Delete a deployment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref := replicate.ParseDeploymentRef(args[0])
			if ref.IsZero() {
				return ErrModelRefFormat
			}

			if !force {
				_, _ = fmt.Fprintf(os.Stdout, "Really delete deployment '%s'? (y/N): ", ref)

				var response string

				_, _ = fmt.Scanln(&response)
				if response != "y" && response != "Y" {
					_, _ = os.Stdout.WriteString("Cancelled\n")

					return nil
				}
			}

			client, err := createClient()
			if err != nil {
				return err
			}

			err = client.Deployments().Delete(context.Background(), ref)
			if err != nil {
				return fmt.Errorf("failed to delete deployment: %w", err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Deleted deployment %s\n", ref)

			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip confirmation prompt")

	return cmd
}

func newDeploymentsPredictCommand() *cobra.Command {
	var (
		inputs  []string
		webhook string
		wait    bool
	)

	cmd := &cobra.Command{
		Use:   "predict OWNER/NAME",
		Short: "Create a prediction against a deployment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref := replicate.ParseDeploymentRef(args[0])
			if ref.IsZero() {
				return ErrModelRefFormat
			}

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

			prediction, err := client.Deployments().CreatePrediction(ctx, ref, request)
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

	cmd.Flags().StringArrayVarP(&inputs, "input", "i", nil, "prediction input (key=value, repeatable; values are parsed as JSON when possible)")
	cmd.Flags().StringVar(&webhook, "webhook", "", "webhook URL for lifecycle events")
	cmd.Flags().BoolVar(&wait, "wait", false, "poll until the prediction reaches a terminal state")

	return cmd
}
