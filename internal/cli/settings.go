// Package cli implements the sidekiq-client commands.
package cli

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	sidekiq "github.com/rootlyhq/sidekiq-client-cli"
	"github.com/rootlyhq/sidekiq-client-cli/internal/config"
)

var (
	// ErrInvalidCommand is returned for a command outside Commands.
	ErrInvalidCommand = errors.New("invalid command")

	// ErrNoTasks is returned when push is given no task strings.
	ErrNoTasks = errors.New("no worker classes to push")

	// ErrEmptyQueue is returned when --queue is given an empty name.
	ErrEmptyQueue = errors.New("queue name must not be empty")
)

// Command names a client command.
type Command string

// CommandPush pushes one job per task string.
const CommandPush Command = "push"

// Commands lists the available commands in sorted order.
func Commands() []Command {
	cmds := make([]Command, 0, len(handlers))
	for c := range handlers {
		cmds = append(cmds, c)
	}
	sort.Slice(cmds, func(i, j int) bool { return cmds[i] < cmds[j] })
	return cmds
}

// Settings is one invocation of the client.
type Settings struct {
	ConfigPath  string
	Queue       string
	Retry       sidekiq.Retry
	Command     Command
	CommandArgs []string
}

// NewSettings returns Settings with the default config path.
func NewSettings() *Settings {
	return &Settings{ConfigPath: config.DefaultPath}
}

// Validate checks the command and its arguments. It runs before any config
// is loaded or job pushed.
func (s *Settings) Validate() error {
	if _, ok := handlers[s.Command]; !ok {
		names := make([]string, 0, len(handlers))
		for _, c := range Commands() {
			names = append(names, string(c))
		}
		return fmt.Errorf("%w '%s'. Available commands: %s", ErrInvalidCommand, s.Command, strings.Join(names, ","))
	}
	if s.Command == CommandPush && len(s.CommandArgs) == 0 {
		return ErrNoTasks
	}
	return nil
}

// resolve fills Queue and Retry from d where they are unset. An empty Queue
// is unset; the CLI rejects an explicit empty --queue before this runs. A
// Retry of false counts as set.
func (s *Settings) resolve(d config.Defaults) {
	if s.Queue == "" {
		s.Queue = d.Queue
	}
	s.Retry = s.Retry.Or(d.Retry)
}
