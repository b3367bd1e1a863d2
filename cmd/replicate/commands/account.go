package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewAccountCommand creates the account command.
func NewAccountCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "account",
		Short: "Show the authenticated account",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			account, err := client.Account().Get(context.Background())
			if err != nil {
				return fmt.Errorf("failed to get account: %w", err)
			}

			return renderOutput(account, func() error {
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Field", "Value")
				table.Append("Type", account.Type)
				table.Append("Username", account.Username)
				table.Append("Name", stringOrDefault(account.Name))
				table.Append("GitHub", stringOrDefault(account.GithubURL))
				table.Render()

				return nil
			})
		},
	}
}
