package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewHardwareCommand creates the hardware command.
func NewHardwareCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "hardware",
		Short: "List available hardware",
		Long:  "List the hardware SKUs available for running models and deployments",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			hardware, err := client.Hardware().List(context.Background())
			if err != nil {
				return fmt.Errorf("failed to list hardware: %w", err)
			}

			return renderOutput(hardware, func() error {
				if len(hardware) == 0 {
					_, _ = os.Stdout.WriteString("No hardware available\n")

					return nil
				}

				table := tablewriter.NewWriter(os.Stdout)
				table.Header("SKU", "Name")

				for _, hw := range hardware {
					table.Append(hw.SKU, hw.Name)
				}

				table.Render()

				return nil
			})
		},
	}
}
