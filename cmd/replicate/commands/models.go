package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/fivetwenty-io/replicate-client/pkg/replicate"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewModelsCommand creates the models command group.
func NewModelsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "models",
		Short: "Manage models",
		Long:  "List, inspect, create, and delete models and their versions",
	}

	cmd.AddCommand(newModelsListCommand())
	cmd.AddCommand(newModelsGetCommand())
	cmd.AddCommand(newModelsCreateCommand())
	cmd.AddCommand(newModelsDeleteCommand())
	cmd.AddCommand(newModelsVersionsCommand())

	return cmd
}

func newModelsListCommand() *cobra.Command {
	var (
		allPages bool
		cursor   string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List public models",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			var models []replicate.Model

			if allPages {
				models, err = client.Models().All(ctx).All()
			} else {
				var page *replicate.ModelList

				page, err = client.Models().List(ctx, &replicate.ListOptions{Cursor: cursor})
				if err == nil {
					models = page.Results

					defer printNextCursorHint(page.Next)
				}
			}

			if err != nil {
				return fmt.Errorf("failed to list models: %w", err)
			}

			return renderOutput(models, func() error {
				renderModelsTable(models)

				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&allPages, "all", false, "fetch all pages")
	cmd.Flags().StringVar(&cursor, "cursor", "", "pagination cursor from a previous page")

	return cmd
}

func renderModelsTable(models []replicate.Model) {
	if len(models) == 0 {
		_, _ = os.Stdout.WriteString("No models found\n")

		return
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Model", "Visibility", "Runs", "Latest Version")

	for _, model := range models {
		latest := NotAvailable
		if model.LatestVersion != nil {
			latest = truncate(model.LatestVersion.ID, 20)
		}

		table.Append(model.Owner+"/"+model.Name, model.Visibility, fmt.Sprintf("%d", model.RunCount), latest)
	}

	table.Render()
}

// printNextCursorHint tells the user how to fetch the following page.
func printNextCursorHint(next *string) {
	if next == nil {
		return
	}

	if cursor, ok := replicate.CursorFromURL(*next); ok {
		_, _ = fmt.Fprintf(os.Stderr, "More results available. Use --cursor %s\n", cursor)
	}
}

func newModelsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get OWNER/NAME",
		Short: "Show a model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref := replicate.ParseModelRef(args[0])
			if ref.IsZero() {
				return ErrModelRefFormat
			}

			client, err := createClient()
			if err != nil {
				return err
			}

			model, err := client.Models().Get(context.Background(), ref.Owner, ref.Name)
			if err != nil {
				return fmt.Errorf("failed to get model: %w", err)
			}

			return renderOutput(model, func() error {
				renderModelTable(model)

				return nil
			})
		},
	}
}

func renderModelTable(model *replicate.Model) {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Field", "Value")
	table.Append("Model", model.Owner+"/"+model.Name)
	table.Append("Visibility", model.Visibility)
	table.Append("Description", stringOrDefault(truncate(model.Description, 60)))
	table.Append("Runs", fmt.Sprintf("%d", model.RunCount))
	table.Append("URL", stringOrDefault(model.URL))

	if model.LatestVersion != nil {
		table.Append("Latest Version", model.LatestVersion.ID)
		table.Append("Version Created", formatTimeValue(model.LatestVersion.CreatedAt))
	} else {
		table.Append("Latest Version", NotAvailable)
	}

	table.Render()
}

func newModelsCreateCommand() *cobra.Command {
	var request replicate.ModelCreateRequest

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a model",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			model, err := client.Models().Create(context.Background(), &request)
			if err != nil {
				return fmt.Errorf("failed to create model: %w", err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Created model %s/%s\n", model.Owner, model.Name)

			return nil
		},
	}

	cmd.Flags().StringVar(&request.Owner, "owner", "", "owner of the new model (required)")
	cmd.Flags().StringVar(&request.Name, "name", "", "model name (required)")
	cmd.Flags().StringVar(&request.Visibility, "visibility", "private", "visibility (public or private)")
	cmd.Flags().StringVar(&request.Hardware, "hardware", "", "hardware SKU (required, see 'replicate hardware')")
	cmd.Flags().StringVar(&request.Description, "description", "", "model description")
	_ = cmd.MarkFlagRequired("owner")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("hardware")

	return cmd
}

func newModelsDeleteCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete OWNER/NAME",
		Short: "Delete a model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref := replicate.ParseModelRef(args[0])
			if ref.IsZero() {
				return ErrModelRefFormat
			}

			if !force {
				_, _ = fmt.Fprintf(os.Stdout, "Really delete model '%s'? (y/N): ", ref)

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

			err = client.Models().Delete(context.Background(), ref.Owner, ref.Name)
			if err != nil {
				return fmt.Errorf("failed to delete model: %w", err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Deleted model %s\n", ref)

			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip confirmation prompt")

	return cmd
}

func newModelsVersionsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "versions",
		Short: "Manage model versions",
	}

	cmd.AddCommand(newVersionsListCommand())
	cmd.AddCommand(newVersionsGetCommand())

	return cmd
}

func newVersionsListCommand() *cobra.Command {
	var allPages bool

	cmd := &cobra.Command{
		Use:   "list OWNER/NAME",
		Short: "List versions of a model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref := replicate.ParseModelRef(args[0])
			if ref.IsZero() {
				return ErrModelRefFormat
			}

			client, err := createClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			var versions []replicate.ModelVersion

			if allPages {
				versions, err = client.Versions().All(ctx, ref).All()
			} else {
				var page *replicate.ModelVersionList

				page, err = client.Versions().List(ctx, ref, nil)
				if err == nil {
					versions = page.Results

					defer printNextCursorHint(page.Next)
				}
			}

			if err != nil {
				return fmt.Errorf("failed to list versions: %w", err)
			}

			return renderOutput(versions, func() error {
				if len(versions) == 0 {
					_, _ = os.Stdout.WriteString("No versions found\n")

					return nil
				}

				table := tablewriter.NewWriter(os.Stdout)
				table.Header("ID", "Created", "Cog Version")

				for _, version := range versions {
					table.Append(version.ID, formatTimeValue(version.CreatedAt), stringOrDefault(version.CogVersion))
				}

				table.Render()

				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&allPages, "all", false, "fetch all pages")

	return cmd
}

func newVersionsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get OWNER/NAME VERSION_ID",
		Short: "Show a model version",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref := replicate.ParseModelRef(args[0])
			if ref.IsZero() {
				return ErrModelRefFormat
			}

			client, err := createClient()
			if err != nil {
				return err
			}

			version, err := client.Versions().Get(context.Background(), ref, args[1])
			if err != nil {
				return fmt.Errorf("failed to get version: %w", err)
			}

			return renderOutput(version, func() error {
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Field", "Value")
				table.Append("ID", version.ID)
				table.Append("Created", formatTimeValue(version.CreatedAt))
				table.Append("Cog Version", stringOrDefault(version.CogVersion))
				table.Render()

				return nil
			})
		},
	}
}
