package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"courier/internal/commands"
)

//nolint:gochecknoglobals // Cobra CLI pattern for subcommand
var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Manage the stored bearer token",
	Long:  `Store, clear or inspect the bearer token attached to calls made with --token.`,
}

//nolint:gochecknoglobals // Cobra CLI pattern for subcommand
var tokenSetCmd = &cobra.Command{
	Use:   "set [TOKEN]",
	Short: "Store a bearer token",
	Long: `Store a bearer token. Without an argument the token is read from COURIER_TOKEN,
an interactive prompt, or standard input.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tokenCommand, err := newTokenCommand()
		if err != nil {
			return err
		}
		var token string
		if len(args) == 1 {
			token = args[0]
		}
		if err := tokenCommand.Set(cmd.Context(), token); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Token stored.")
		return nil
	},
}

//nolint:gochecknoglobals // Cobra CLI pattern for subcommand
var tokenClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the stored bearer token",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		tokenCommand, err := newTokenCommand()
		if err != nil {
			return err
		}
		if err := tokenCommand.Clear(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Token cleared.")
		return nil
	},
}

//nolint:gochecknoglobals // Cobra CLI pattern for subcommand
var tokenShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show whether a bearer token is stored",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		tokenCommand, err := newTokenCommand()
		if err != nil {
			return err
		}

		status := tokenCommand.Show(cmd.Context())
		if !status.Present {
			fmt.Fprintln(cmd.OutOrStdout(), "No token stored. Use 'courier token set' to store one.")
			return nil
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Token: %s\n", status.Masked)
		fmt.Fprintf(cmd.OutOrStdout(), "  updated: %s\n", status.UpdatedAt.Format(time.RFC3339))
		fmt.Fprintf(cmd.OutOrStdout(), "  file: %s\n", status.Path)
		return nil
	},
}

//nolint:gochecknoinits // Cobra CLI pattern for command registration
func init() {
	tokenCmd.AddCommand(tokenSetCmd, tokenClearCmd, tokenShowCmd)
	rootCmd.AddCommand(tokenCmd)
}

func newTokenCommand() (*commands.TokenCommand, error) {
	a, err := GetApp()
	if err != nil {
		return nil, err
	}
	return commands.NewTokenCommand(a.Credentials, a.SecretReader, a.Logger), nil
}
