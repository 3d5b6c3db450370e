// Package cli implements the okauth command tree.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/simp-lee/odnoklassniki"
	"github.com/simp-lee/odnoklassniki/internal/config"
)

// Exit codes returned by Execute.
const (
	ExitCodeSuccess   = 0
	ExitCodeError     = 1
	ExitCodeAPI       = 2
	ExitCodeTransport = 3
)

// globalFlags holds the persistent flag values shared by every command.
type globalFlags struct {
	configPath     string
	verbose        bool
	clientID       string
	applicationKey string
	clientSecret   string
	accessToken    string
	redirectURI    string
	scope          []string
	jq             string
}

// app is the state resolved before a command runs.
type app struct {
	flags  globalFlags
	cfg    *config.Config
	logger *slog.Logger
	lookup func(string) (string, bool)
}

// client builds an API client from the resolved configuration.
func (a *app) client() *odnoklassniki.Client {
	return a.cfg.NewClient(odnoklassniki.WithLogger(a.logger))
}

// NewRootCmd creates the root cobra command. Configuration is read from
// the file named by --config, then OK_* variables, then flags.
func NewRootCmd() *cobra.Command {
	return newRootCmd(os.LookupEnv)
}

func newRootCmd(lookup func(string) (string, bool)) *cobra.Command {
	a := &app{lookup: lookup}

	cmd := &cobra.Command{
		Use:           "okauth",
		Short:         "Log in to Odnoklassniki and call its API",
		Long:          "okauth builds Odnoklassniki login URLs, exchanges authorization codes and issues signed API calls.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&a.flags.configPath, "config", "", "config file (default $HOME/.config/okauth/config.yaml)")
	pf.BoolVarP(&a.flags.verbose, "verbose", "v", false, "log HTTP requests to stderr")
	pf.StringVar(&a.flags.clientID, "client-id", "", "application ID")
	pf.StringVar(&a.flags.applicationKey, "application-key", "", "public application key")
	pf.StringVar(&a.flags.clientSecret, "client-secret", "", "application secret key")
	pf.StringVar(&a.flags.accessToken, "access-token", "", "access token for signed calls")
	pf.StringVar(&a.flags.redirectURI, "redirect-uri", "", "redirect URI registered for the application")
	pf.StringSliceVar(&a.flags.scope, "scope", nil, "permissions to request, comma-separated")
	pf.StringVar(&a.flags.jq, "jq", "", "filter JSON output through a jq expression")

	cmd.AddCommand(
		newLoginURLCmd(a),
		newExchangeCmd(a),
		newUserCmd(a),
		newCallCmd(a),
		newServeCmd(a),
	)

	return cmd
}

// print writes a command result, applying --jq when set.
func (a *app) print(cmd *cobra.Command, v any) error {
	return printResult(cmd.Context(), cmd.OutOrStdout(), v, a.flags.jq)
}

// setup loads configuration and builds the logger.
func (a *app) setup(cmd *cobra.Command) error {
	path, required := a.flags.configPath, true
	if path == "" {
		path, required = config.DefaultPath(), false
	}
	cfg, err := config.Load(path, required)
	if err != nil {
		return err
	}
	cfg.ApplyEnv(a.lookup)

	flags := cmd.Flags()
	override := func(name string, dst *string, v string) {
		if flags.Changed(name) {
			*dst = v
		}
	}
	override("client-id", &cfg.ClientID, a.flags.clientID)
	override("application-key", &cfg.ApplicationKey, a.flags.applicationKey)
	override("client-secret", &cfg.ClientSecret, a.flags.clientSecret)
	override("access-token", &cfg.AccessToken, a.flags.accessToken)
	override("redirect-uri", &cfg.RedirectURI, a.flags.redirectURI)
	if flags.Changed("scope") {
		cfg.Scope = a.flags.scope
	}
	a.cfg = cfg

	level := slog.LevelInfo
	if a.flags.verbose {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	return nil
}

// Execute runs the root command and exits with a code derived from the error.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := NewRootCmd()
	if err := cmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps an error to a process exit code.
func exitCode(err error) int {
	switch {
	case err == nil:
		return ExitCodeSuccess
	case errors.Is(err, odnoklassniki.ErrAPI):
		return ExitCodeAPI
	case errors.Is(err, odnoklassniki.ErrTransport):
		return ExitCodeTransport
	default:
		return ExitCodeError
	}
}
