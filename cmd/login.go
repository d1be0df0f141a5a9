package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bnema/barcamp-grid/internal/adapters/credentials"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newLoginCmd(app *app) *cobra.Command {
	var username, passwordFile string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to the Matrix homeserver and store the access token",
		Long:  "login performs a password login against matrix.homeserver and keeps the access token in pass, or in ~/.config/barcamp/secrets when pass is not available.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			homeserver := app.cfg.GetString(keyHomeserver)
			if homeserver == "" {
				return fmt.Errorf("%s is required (flag --homeserver)", keyHomeserver)
			}
			if username == "" {
				username = app.cfg.GetString(keyUserID)
			}
			if username == "" {
				return errors.New("--user is required")
			}

			password, err := readLoginPassword(cmd, passwordFile)
			if err != nil {
				return err
			}

			logger, err := app.openLogger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			client, err := app.matrixClient(homeserver, logger)
			if err != nil {
				return err
			}
			vault, err := app.vault()
			if err != nil {
				return err
			}

			var creds credentials.Credentials
			err = runWithSpinner(cmd.Context(), cmd.ErrOrStderr(), "Logging in...", func(ctx context.Context) error {
				result, err := client.Login(ctx, username, password)
				if err != nil {
					return err
				}
				creds = credentials.Credentials{
					HomeserverURL: homeserver,
					UserID:        result.UserID,
					AccessToken:   result.AccessToken,
					DeviceID:      result.DeviceID,
				}
				return vault.Save(ctx, creds)
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if _, err := fmt.Fprintf(out, "Logged in as %s (device %s)\n", creds.UserID, creds.DeviceID); err != nil {
				return err
			}
			if app.cfg.GetString(keyUserID) != creds.UserID {
				_, err = fmt.Fprintf(out, "Set %s = %q in the [matrix] section of ~/%s/%s.%s\n", "user_id", creds.UserID, configDir, configName, configType)
			}
			return err
		},
	}

	cmd.Flags().String("homeserver", "", "Homeserver URL, e.g. https://matrix.example.org")
	_ = app.cfg.BindPFlag(keyHomeserver, cmd.Flags().Lookup("homeserver"))
	cmd.Flags().StringVar(&username, "user", "", "Matrix user id or localpart (default: matrix.user_id)")
	cmd.Flags().StringVar(&passwordFile, "password-file", "", "Read the password from this file instead of prompting (- reads stdin)")

	cmd.AddCommand(newLoginForgetCmd(app))

	return cmd
}

func newLoginForgetCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "forget",
		Short: "Delete the stored access token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			homeserver, userID, err := app.matrixIdentity()
			if err != nil {
				return err
			}
			vault, err := app.vault()
			if err != nil {
				return err
			}

			if err := vault.Forget(cmd.Context(), homeserver, userID); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Forgot access token of %s\n", userID)
			return err
		},
	}
}

// readLoginPassword reads the password from passwordFile, from stdin for "-",
// or from an echo-free terminal prompt.
func readLoginPassword(cmd *cobra.Command, passwordFile string) (string, error) {
	var data []byte
	var err error

	switch passwordFile {
	case "":
		fd := int(os.Stdin.Fd())
		if !term.IsTerminal(fd) {
			return "", errors.New("no terminal available for the password prompt (use --password-file)")
		}
		fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
		data, err = term.ReadPassword(fd)
		fmt.Fprintln(cmd.ErrOrStderr())
	case "-":
		data, err = io.ReadAll(cmd.InOrStdin())
	default:
		data, err = os.ReadFile(passwordFile)
	}
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}

	password := strings.TrimRight(string(data), "\r\n")
	if password == "" {
		return "", errors.New("password is empty")
	}
	return password, nil
}
