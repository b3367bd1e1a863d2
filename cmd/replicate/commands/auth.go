package commands

import (
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/fivetwenty-io/replicate-client/internal/constants"
	"github.com/fivetwenty-io/replicate-client/pkg/replicate"
	"github.com/fivetwenty-io/replicate-client/pkg/replicateclient"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

// NewAuthCommand creates the auth command group.
func NewAuthCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage authentication",
		Long:  "Store, inspect, and remove the API token used by the CLI",
	}

	cmd.AddCommand(newAuthLoginCommand())
	cmd.AddCommand(newAuthTokenCommand())
	cmd.AddCommand(newAuthLogoutCommand())

	return cmd
}

func newAuthLoginCommand() *cobra.Command {
	var token string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to Replicate",
		Long:  "Store an API token in the config file after verifying it against the API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if token == "" {
				fmt.Print("API token: ")

				byteToken, err := term.ReadPassword(int(syscall.Stdin))
				if err != nil {
					return fmt.Errorf("failed to read token: %w", err)
				}

				token = strings.TrimSpace(string(byteToken))

				fmt.Println()
			}

			if token == "" {
				return replicate.ErrTokenRequired
			}

			account, err := verifyToken(token)
			if err != nil {
				return fmt.Errorf("token verification failed: %w", err)
			}

			config := loadConfig()
			config.Token = token

			err = saveConfigStruct(config)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(os.Stdout, "Logged in as %s\n", account.Username)

			return nil
		},
	}

	cmd.Flags().StringVar(&token, "token", "", "API token (prompted when omitted)")

	return cmd
}

func newAuthTokenCommand() *cobra.Command {
	var reveal bool

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Show the configured API token",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()
			if config.Token == "" {
				return ErrNotLoggedIn
			}

			if reveal {
				_, _ = fmt.Fprintln(os.Stdout, config.Token)

				return nil
			}

			_, _ = fmt.Fprintln(os.Stdout, maskToken(config.Token))

			return nil
		},
	}

	cmd.Flags().BoolVar(&reveal, "reveal", false, "print the full token instead of a masked form")

	return cmd
}

func newAuthLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored API token",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()
			config.Token = ""

			err := saveConfigStruct(config)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintln(os.Stdout, "Logged out")

			return nil
		},
	}
}

// verifyToken checks a token against the API before it is persisted. The
// check uses a short timeout so a bad endpoint fails fast at the prompt.
func verifyToken(token string) (*replicate.Account, error) {
	client, err := replicateclient.New(&replicate.Config{
		APIToken:    token,
		BaseURL:     viper.GetString("base_url"),
		HTTPTimeout: constants.ShortHTTPTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return client.Account().Get(context.Background())
}

// maskToken keeps the first and last four characters visible.
func maskToken(token string) string {
	const visible = 4

	if len(token) <= visible*2 {
		return Masked
	}

	return token[:visible] + Masked + token[len(token)-visible:]
}
