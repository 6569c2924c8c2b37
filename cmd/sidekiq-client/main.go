// Binary sidekiq-client pushes jobs onto Sidekiq queues from the command line.
//
// Usage:
//
//	sidekiq-client [flags] push <task>...
//
// A task is a worker class with optional arguments, e.g. HardWorker[bob,5].
// Commas inside an argument are escaped with a backslash.
//
// Flags:
//
//	-c, --config-path <path>   Sidekiq config file (default config/initializers/sidekiq.rb)
//	-q, --queue <name>         Queue to place jobs on
//	-r, --retry <value>        Retry option: true, false or a retry count
//	-v, --verbose              Debug logging
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the CLI and returns the process exit code: 0 when every job
// was pushed, 1 otherwise.
func run(args []string, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// cobra falls back to os.Args on a nil slice.
	if args == nil {
		args = []string{}
	}

	pushedAll := true
	cmd := newRootCmd(stdout, stderr, &pushedAll)
	cmd.SetArgs(args)

	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "sidekiq-client: %v\n", err)
		return 1
	}
	if !pushedAll {
		return 1
	}
	return 0
}
