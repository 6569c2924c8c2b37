package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	sidekiq "github.com/rootlyhq/sidekiq-client-cli"
	"github.com/rootlyhq/sidekiq-client-cli/internal/cli"
	"github.com/rootlyhq/sidekiq-client-cli/internal/config"
)

func newRootCmd(stdout, stderr io.Writer, pushedAll *bool) *cobra.Command {
	settings := cli.NewSettings()
	retry := &retryFlag{r: &settings.Retry}
	var verbose bool

	cmd := &cobra.Command{
		Use:   "sidekiq-client [flags] push <task>...",
		Short: "Push jobs onto Sidekiq queues",
		Long: `Push one Sidekiq job per task string.

A task string names a worker class and its arguments:

  HardWorker              no arguments
  HardWorker[bob,5]       arguments "bob" and "5"
  Mailer[a\,b,c]          arguments "a,b" and "c"

Queue and retry default to the values in the config file, then to
Sidekiq's defaults (queue "default", retry true).`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("missing command. Available commands: %s", commandList())
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			settings.Command = cli.Command(args[0])
			settings.CommandArgs = args[1:]
			// Validated here as well as in Runner.Run so bad input fails
			// before .env is read.
			if err := settings.Validate(); err != nil {
				return err
			}
			if cmd.Flags().Changed("queue") && strings.TrimSpace(settings.Queue) == "" {
				return cli.ErrEmptyQueue
			}

			env, err := config.LoadEnv(".env")
			if err != nil {
				return err
			}

			logger := newLogger(stderr, env.LogLevel, verbose)
			if retry.raw != "" && !settings.Retry.IsSet() {
				logger.Warn("ignoring unrecognized retry value", "retry", retry.raw)
			}

			runner := &cli.Runner{
				Env:    env,
				Out:    stdout,
				Logger: logger,
			}
			ok, err := runner.Run(cmd.Context(), settings)
			if err != nil {
				return err
			}
			*pushedAll = ok
			return nil
		},
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	flags := cmd.Flags()
	flags.StringVarP(&settings.ConfigPath, "config-path", "c", config.DefaultPath, "Sidekiq client config file path")
	flags.StringVarP(&settings.Queue, "queue", "q", "", "Queue to place job on")
	flags.VarP(retry, "retry", "r", "Retry option for job: true, false or a retry count")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	return cmd
}

func commandList() string {
	names := make([]string, 0, len(cli.Commands()))
	for _, c := range cli.Commands() {
		names = append(names, string(c))
	}
	return strings.Join(names, ",")
}

// retryFlag binds -r/--retry to a sidekiq.Retry. Values ParseRetry does not
// recognize leave the retry unset so the default applies.
type retryFlag struct {
	r   *sidekiq.Retry
	raw string
}

func (f *retryFlag) String() string {
	if f.r == nil {
		return ""
	}
	return f.r.String()
}

func (f *retryFlag) Set(s string) error {
	f.raw = s
	*f.r = sidekiq.ParseRetry(s)
	return nil
}

func (f *retryFlag) Type() string {
	return "retry"
}

// newLogger logs text to a terminal and JSON otherwise. verbose forces
// debug level.
func newLogger(w io.Writer, level string, verbose bool) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	if verbose {
		lvl = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: lvl}
	if f, ok := w.(*os.File); ok && !term.IsTerminal(int(f.Fd())) {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
