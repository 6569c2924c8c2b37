package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/redis/go-redis/v9"

	sidekiq "github.com/rootlyhq/sidekiq-client-cli"
	"github.com/rootlyhq/sidekiq-client-cli/internal/config"
	"github.com/rootlyhq/sidekiq-client-cli/internal/taskstring"
)

// Pusher submits a job and returns its JID. *sidekiq.Client implements it.
type Pusher interface {
	Push(ctx context.Context, job *sidekiq.Job) (string, error)
}

// DialFunc opens a Pusher for a Redis URL and namespace. The returned close
// function releases the connection.
type DialFunc func(url, namespace string, logger sidekiq.Logger) (Pusher, func() error, error)

// handler runs a validated command and reports whether every item succeeded.
type handler func(r *Runner, ctx context.Context, s *Settings, p Pusher) bool

var handlers = map[Command]handler{
	CommandPush: (*Runner).push,
}

// Runner executes Settings against a Sidekiq Redis.
type Runner struct {
	Env    config.Env
	Out    io.Writer
	Logger sidekiq.Logger
	Dial   DialFunc
}

// Run validates s, loads its config file, resolves defaults, and runs the
// command. The bool is true only if every job was pushed. A non-nil error
// means nothing was pushed.
func (r *Runner) Run(ctx context.Context, s *Settings) (bool, error) {
	logger := r.logger()

	if err := s.Validate(); err != nil {
		return false, err
	}

	file, err := config.Load(s.ConfigPath, logger)
	if err != nil {
		return false, err
	}

	s.resolve(file.Defaults())
	logger.Debug("resolved settings", "queue", s.Queue, "retry", s.Retry.String(), "tasks", len(s.CommandArgs))

	dial := r.Dial
	if dial == nil {
		dial = DialRedis
	}
	url, namespace := config.Connection(r.Env, file)
	pusher, closeFn, err := dial(url, namespace, logger)
	if err != nil {
		return false, fmt.Errorf("connecting to redis: %w", err)
	}
	defer func() {
		if err := closeFn(); err != nil {
			logger.Error("closing redis connection", "error", err)
		}
	}()

	return handlers[s.Command](r, ctx, s, pusher), nil
}

// push pushes one job per task string, in order. A failed push is reported
// and the remaining items are still pushed.
func (r *Runner) push(ctx context.Context, s *Settings, p Pusher) bool {
	printer := NewPrinter(r.Out)
	logger := r.logger()

	ok := true
	for _, arg := range s.CommandArgs {
		class, args := taskstring.Parse(arg)

		jobArgs := make([]interface{}, len(args))
		for i, a := range args {
			jobArgs[i] = a
		}

		jid, err := p.Push(ctx, &sidekiq.Job{
			Class: class,
			Queue: s.Queue,
			Args:  jobArgs,
			Retry: s.Retry,
		})
		if err != nil {
			logger.Debug("push failed", "task", arg, "error", err)
			printer.Failed(err)
			ok = false
			continue
		}
		printer.Posted(arg, s.Queue, jid, s.Retry)
	}
	return ok
}

func (r *Runner) logger() sidekiq.Logger {
	if r.Logger == nil {
		return sidekiq.NoopLogger()
	}
	return r.Logger
}

// DialRedis connects a sidekiq.Client to the Redis at url.
func DialRedis(url, namespace string, logger sidekiq.Logger) (Pusher, func() error, error) {
	opts, err := config.RedisOptions(url)
	if err != nil {
		return nil, nil, err
	}
	rdb := redis.NewClient(opts)
	client := sidekiq.NewClient(rdb,
		sidekiq.WithNamespace(namespace),
		sidekiq.WithLogger(logger),
	)
	return client, rdb.Close, nil
}
