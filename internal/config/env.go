package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

// Env holds settings read from the process environment.
type Env struct {
	RedisURL string `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`
	// RedisProvider names another variable holding the URL, e.g. REDISTOGO_URL.
	RedisProvider string `env:"REDIS_PROVIDER"`
	Namespace     string `env:"SIDEKIQ_NAMESPACE"`
	LogLevel      string `env:"SIDEKIQ_CLIENT_LOG_LEVEL" envDefault:"info"`
}

// LoadEnv loads the given dotenv files, skipping missing ones, then parses
// the environment. Variables already set win over dotenv values.
func LoadEnv(dotenvFiles ...string) (Env, error) {
	for _, name := range dotenvFiles {
		if _, err := os.Stat(name); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(name); err != nil {
			return Env{}, fmt.Errorf("loading %s: %w", name, err)
		}
	}

	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("parsing environment: %w", err)
	}
	if e.RedisProvider != "" {
		if url := os.Getenv(e.RedisProvider); url != "" {
			e.RedisURL = url
		}
	}
	return e, nil
}

// Connection resolves the Redis URL and namespace. Values set in the config
// file take precedence over the environment.
func Connection(e Env, f *File) (url, namespace string) {
	url, namespace = e.RedisURL, e.Namespace
	if f == nil {
		return url, namespace
	}
	if f.RedisURL != "" {
		url = f.RedisURL
	}
	if f.Namespace != "" {
		namespace = f.Namespace
	}
	return url, namespace
}

// RedisOptions parses a redis://, rediss:// or unix:// URL.
func RedisOptions(url string) (*redis.Options, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	return opts, nil
}
