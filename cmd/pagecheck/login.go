package main

import (
	"errors"
	"fmt"

	"github.com/grez-lucas/pagekit/internal/driver"
	"github.com/grez-lucas/pagekit/internal/page"
	"github.com/grez-lucas/pagekit/internal/redact"
	"github.com/spf13/cobra"
)

// ErrLoginRejected means the application showed its error banner.
var ErrLoginRejected = errors.New("login rejected")

func (a *app) loginCmd() *cobra.Command {
	var baseURL, username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and print the welcome or error message",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if baseURL == "" {
				baseURL = a.cfg.BaseURL
			}
			if username == "" {
				username = a.cfg.Username
			}
			if password == "" {
				password = a.cfg.Password
			}
			if baseURL == "" {
				return fmt.Errorf("%w: --base-url or PAGEKIT_BASE_URL is required", driver.ErrInvalidConfiguration)
			}

			a.logger.Info().
				Str("base_url", baseURL).
				Str("username", username).
				Str("password", redact.Value("password", password)).
				Msg("logging in")

			return a.withSession(func(session driver.Session) error {
				login, err := page.NewLoginPage(session, a.cfg.PageOptions(a.logger)...)
				if err != nil {
					return err
				}
				if err := login.GoTo(baseURL); err != nil {
					return fmt.Errorf("open login page: %w", err)
				}
				if err := login.Login(username, password); err != nil {
					return fmt.Errorf("submit login form: %w", err)
				}

				outcome, err := login.AwaitOutcome()
				if err != nil {
					return err
				}
				if !outcome.Succeeded {
					fmt.Fprintf(cmd.OutOrStdout(), "✗ %s\n", outcome.Message)
					return fmt.Errorf("%w: %s", ErrLoginRejected, outcome.Message)
				}

				fmt.Fprintf(cmd.OutOrStdout(), "✓ %s\n", outcome.Message)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&baseURL, "base-url", "", "Application base URL; the form is at <base-url>/login (default: PAGEKIT_BASE_URL)")
	cmd.Flags().StringVar(&username, "username", "", "Username (default: PAGEKIT_USERNAME)")
	cmd.Flags().StringVar(&password, "password", "", "Password (default: PAGEKIT_PASSWORD)")

	return cmd
}
