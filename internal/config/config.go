// Package config loads client configuration: default worker options and
// Redis connection settings.
//
// Settings come from an optional config file and from the environment. A
// config file is either YAML or a Rails Sidekiq initializer. Initializers are
// scanned for literal option assignments and are never executed.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	sidekiq "github.com/rootlyhq/sidekiq-client-cli"
)

// DefaultPath is where a Rails app keeps its Sidekiq initializer.
const DefaultPath = "config/initializers/sidekiq.rb"

var (
	// ErrUnsupportedFormat is returned for config files with an unknown extension.
	ErrUnsupportedFormat = errors.New("config: unsupported config file format")

	// ErrInvalidConfig is returned when a config file holds invalid values.
	ErrInvalidConfig = errors.New("config: invalid config")
)

// File holds the overrides read from a config file. Empty fields and an unset
// Retry mean the file did not set them.
type File struct {
	Path      string
	RedisURL  string
	Namespace string
	Queue     string
	Retry     sidekiq.Retry
}

// Defaults are the worker options applied when a push does not set its own.
type Defaults struct {
	Queue string
	Retry sidekiq.Retry
}

// BuiltinDefaults returns Sidekiq's own defaults: the "default" queue with
// retries enabled.
func BuiltinDefaults() Defaults {
	return Defaults{
		Queue: sidekiq.DefaultQueue,
		Retry: sidekiq.RetryEnabled(true),
	}
}

// Defaults returns the builtin defaults with the file's overrides applied.
// A nil File yields the builtin defaults.
func (f *File) Defaults() Defaults {
	d := BuiltinDefaults()
	if f == nil {
		return d
	}
	if f.Queue != "" {
		d.Queue = f.Queue
	}
	d.Retry = f.Retry.Or(d.Retry)
	return d
}

// Load reads the config file at path. A missing file is not an error and
// yields an empty File. The format is picked by extension: .yml and .yaml
// are YAML, .rb is a Sidekiq initializer.
func Load(path string, logger sidekiq.Logger) (*File, error) {
	if logger == nil {
		logger = sidekiq.NoopLogger()
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		logger.Debug("no config file", "path", path)
		return &File{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var f *File
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yml", ".yaml":
		f, err = parseYAML(data)
	case ".rb":
		f, err = scanInitializer(string(data), os.LookupEnv, logger)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, path)
	}
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	if err := f.validate(); err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}

	f.Path = path
	logger.Debug("loaded config file", "path", path, "queue", f.Queue, "retry", f.Retry.String())
	return f, nil
}

func (f *File) validate() error {
	if f.RedisURL != "" {
		if _, err := RedisOptions(f.RedisURL); err != nil {
			return fmt.Errorf("%w: redis url: %v", ErrInvalidConfig, err)
		}
	}
	if strings.ContainsAny(f.Queue, " \t\r\n") {
		return fmt.Errorf("%w: queue %q contains whitespace", ErrInvalidConfig, f.Queue)
	}
	return nil
}

// coerceRetry converts a decoded option value to a Retry. nil is unset.
func coerceRetry(v interface{}) (sidekiq.Retry, error) {
	switch t := v.(type) {
	case nil:
		return sidekiq.Retry{}, nil
	case bool:
		return sidekiq.RetryEnabled(t), nil
	case int:
		if t < 0 {
			return sidekiq.Retry{}, fmt.Errorf("%w: retry must be >= 0, got %d", ErrInvalidConfig, t)
		}
		return sidekiq.RetryCount(t), nil
	case string:
		r := sidekiq.ParseRetry(t)
		if !r.IsSet() {
			return sidekiq.Retry{}, fmt.Errorf("%w: retry %q is not a boolean or count", ErrInvalidConfig, t)
		}
		return r, nil
	default:
		return sidekiq.Retry{}, fmt.Errorf("%w: retry has unsupported type %T", ErrInvalidConfig, v)
	}
}
