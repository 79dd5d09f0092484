// Package cli holds the promptvault command tree: the server lifecycle
// commands and the client views built on pkg/client.
package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Sandeep010-hub/promptcraft-fusion/pkg/client"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const defaultServerURL = "http://localhost:8080"

// app carries the flag values and collaborators shared by every command.
type app struct {
	v *viper.Viper

	serverURL    string
	sessionPath  string
	outputFormat string
	timeout      time.Duration

	// store overrides the file session store when set.
	store client.SessionStore
}

// Execute runs the command tree with ctx, which is cancelled on SIGINT or
// SIGTERM by main.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

func NewRootCmd() *cobra.Command {
	return newRootCmd(&app{})
}

func newRootCmd(a *app) *cobra.Command {
	a.v = viper.New()
	a.v.SetEnvPrefix("PROMPTVAULT")
	a.v.AutomaticEnv()

	rootCmd := &cobra.Command{
		Use:   "promptvault",
		Short: "Prompt generator and personal prompt vault",
		Long: `promptvault rewrites rough prompt ideas into model-specific prompts
and keeps them in a personal vault with optional output files.

Run "promptvault serve" to start the API server. Every other command talks
to a running server:
  - login, register, logout, whoami manage the session
  - generate rewrites a prompt, optionally saving it
  - vault, show, create, star, use, upload work with saved prompts`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.serverURL = a.v.GetString("server")
			a.sessionPath = a.v.GetString("session")
			a.timeout = a.v.GetDuration("timeout")
			return setOutputFormat(a, a.v.GetString("output"))
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.String("server", defaultServerURL, "API server URL (env PROMPTVAULT_SERVER)")
	flags.String("session", "", "session file (default: ~/.promptvault/session.json)")
	flags.StringP("output", "o", outputText, "output format: text, yaml or json")
	flags.Duration("timeout", 2*time.Minute, "request timeout")
	for _, name := range []string{"server", "session", "output", "timeout"} {
		_ = a.v.BindPFlag(name, flags.Lookup(name))
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newServeCmd(),
		newMigrateCmd(),
		newRegisterCmd(a),
		newLoginCmd(a),
		newLogoutCmd(a),
		newWhoamiCmd(a),
		newGenerateCmd(a),
		newVaultCmd(a),
		newShowCmd(a),
		newCreateCmd(a),
		newStarCmd(a),
		newUseCmd(a),
		newUploadCmd(a),
	)

	return rootCmd
}

func (a *app) client() *client.Client {
	return client.NewClient(a.serverURL, a.timeout)
}

func (a *app) sessionStore() (client.SessionStore, error) {
	if a.store != nil {
		return a.store, nil
	}
	path := a.sessionPath
	if path == "" {
		var err error
		path, err = client.DefaultSessionPath()
		if err != nil {
			return nil, fmt.Errorf("failed to locate session file: %w", err)
		}
	}
	return &client.FileSessionStore{Path: path}, nil
}

// token loads the stored session and returns its bearer token.
func (a *app) token() (string, error) {
	store, err := a.sessionStore()
	if err != nil {
		return "", err
	}
	s, err := store.Load()
	if err != nil {
		return "", err
	}
	return s.Token()
}

// requireToken is token with the "Authentication required" notice printed on
// failure.
func (a *app) requireToken(cmd *cobra.Command, action string) (string, error) {
	token, err := a.token()
	if err != nil {
		if errors.Is(err, client.ErrNoSession) {
			notify(cmd, "Authentication required", "Please sign in to "+action+".")
		}
		return "", err
	}
	return token, nil
}
