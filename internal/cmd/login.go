package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mfigueredo/boardctl/internal/cmd/cmdutil"
	"github.com/mfigueredo/boardctl/internal/config"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate against the board API",
	Long: `Log in to the board API and store the issued bearer token.

The token is written to the config directory with owner-only permissions
and used by every subsequent command.

Examples:
  # Prompt for email and password
  boardctl login

  # Non-interactive (password read from stdin)
  echo "$PASSWORD" | boardctl login --email dev@example.com`,
	RunE: runLogin,
}

var loginEmail string

func init() {
	rootCmd.AddCommand(loginCmd)
	loginCmd.Flags().StringVarP(&loginEmail, "email", "e", "", "account email")
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Discard the stored credentials",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.ClearToken(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}

func runLogin(cmd *cobra.Command, args []string) error {
	cfg := config.Get()
	reader := bufio.NewReader(cmd.InOrStdin())

	email := strings.TrimSpace(loginEmail)
	if email == "" {
		fmt.Fprint(cmd.OutOrStdout(), "Email: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("reading email: %w", err)
		}
		email = strings.TrimSpace(line)
	}

	fmt.Fprint(cmd.OutOrStdout(), "Password: ")
	line, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("reading password: %w", err)
	}
	password := strings.TrimRight(line, "\r\n")

	logger := cmdutil.NewLogger(cfg)
	defer logger.Close()

	client, err := cmdutil.NewClient(cfg, logger, false)
	if err != nil {
		return err
	}

	token, err := client.Login(cmd.Context(), email, password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	if err := config.SaveToken(token); err != nil {
		return fmt.Errorf("storing credentials: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s.\n", email)
	return nil
}
