package sidekiq

// Option configures a Client.
type Option func(*Client)

// WithNamespace sets the Redis key namespace prefix.
// This is compatible with the sidekiq-namespace Ruby gem.
//
//	client := sidekiq.NewClient(rdb, sidekiq.WithNamespace("myapp"))
//	// Jobs land in "myapp:queue:default" and "myapp:queues".
func WithNamespace(ns string) Option {
	return func(c *Client) {
		c.namespace = ns
	}
}

// WithLogger sets a custom logger for the client.
// A *slog.Logger satisfies Logger as is.
func WithLogger(l Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// Logger is the interface for pluggable logging.
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// NoopLogger returns a Logger that discards everything.
func NoopLogger() Logger {
	return noopLogger{}
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...interface{}) {}
func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}
