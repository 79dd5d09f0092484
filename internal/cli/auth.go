package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Sandeep010-hub/promptcraft-fusion/pkg/client"
	"github.com/spf13/cobra"
)

type credentials struct {
	username string
	password string
}

func (c *credentials) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&c.username, "username", "u", "", "username")
	cmd.Flags().StringVarP(&c.password, "password", "p", "", "password (read from stdin when omitted)")
	_ = cmd.MarkFlagRequired("username")
}

// resolve reads the password from stdin when the flag was not given.
func (c *credentials) resolve(in io.Reader) error {
	if c.password != "" {
		return nil
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to read password: %w", err)
	}
	c.password = strings.TrimRight(line, "\r\n")
	if c.password == "" {
		return errors.New("password is required")
	}
	return nil
}

func newRegisterCmd(a *app) *cobra.Command {
	var creds credentials
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := creds.resolve(cmd.InOrStdin()); err != nil {
				return err
			}
			res, err := a.client().Register(cmd.Context(), creds.username, creds.password)
			if err != nil {
				notify(cmd, "Registration failed", describe(err))
				return err
			}
			return a.startSession(cmd, res, "Account created")
		},
	}
	creds.bind(cmd)
	return cmd
}

func newLoginCmd(a *app) *cobra.Command {
	var creds credentials
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := creds.resolve(cmd.InOrStdin()); err != nil {
				return err
			}
			res, err := a.client().Login(cmd.Context(), creds.username, creds.password)
			if err != nil {
				notify(cmd, "Sign in failed", describe(err))
				return err
			}
			return a.startSession(cmd, res, "Signed in")
		},
	}
	creds.bind(cmd)
	return cmd
}

func (a *app) startSession(cmd *cobra.Command, res *client.AuthResult, title string) error {
	store, err := a.sessionStore()
	if err != nil {
		return err
	}
	if err := store.Save(client.NewSession(res)); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	notify(cmd, title, "Welcome, "+res.Username+".")
	return nil
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Revoke the session and forget it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.sessionStore()
			if err != nil {
				return err
			}

			token, err := a.token()
			if err == nil {
				err = a.client().Logout(cmd.Context(), token)
				if err != nil && !errors.Is(err, client.ErrSessionExpired) {
					notify(cmd, "Sign out failed", describe(err))
					return err
				}
			}

			if err := store.Clear(); err != nil {
				return fmt.Errorf("failed to remove session: %w", err)
			}
			notify(cmd, "Signed out", "")
			return nil
		},
	}
}

func newWhoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := a.requireToken(cmd, "see your account")
			if err != nil {
				return err
			}
			u, err := a.client().CurrentUser(cmd.Context(), token)
			if err != nil {
				notify(cmd, "Failed to load account", describe(err))
				return err
			}
			if a.structured() {
				return outputTo(cmd.OutOrStdout(), a.outputFormat, u)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (id %d)\n", u.Username, u.ID)
			return nil
		},
	}
}

// describe turns a request error into the description line of a notice.
func describe(err error) string {
	var apiErr *client.APIError
	switch {
	case errors.As(err, &apiErr) && apiErr.Message != "":
		return apiErr.Message + "."
	case errors.Is(err, client.ErrSessionExpired):
		return "Your session has expired. Please sign in again."
	default:
		return "Please try again."
	}
}
