package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// yamlFile is the layout of a YAML client config:
//
//	redis:
//	  url: redis://localhost:6379/0
//	  namespace: myapp
//	default_worker_options:
//	  queue: critical
//	  retry: 5
type yamlFile struct {
	Redis struct {
		URL       string `yaml:"url"`
		Namespace string `yaml:"namespace"`
	} `yaml:"redis"`
	DefaultWorkerOptions yamlOptions `yaml:"default_worker_options"`
	DefaultJobOptions    yamlOptions `yaml:"default_job_options"`
}

type yamlOptions struct {
	Queue string      `yaml:"queue"`
	Retry interface{} `yaml:"retry"`
}

// parseYAML decodes a YAML config. default_job_options is the Sidekiq 7 name
// and fills in anything default_worker_options leaves out.
func parseYAML(data []byte) (*File, error) {
	var y yamlFile
	if err := yaml.Unmarshal(data, &y); err != nil {
		return nil, fmt.Errorf("parsing config yaml: %w", err)
	}

	retry, err := coerceRetry(y.DefaultWorkerOptions.Retry)
	if err != nil {
		return nil, err
	}
	jobRetry, err := coerceRetry(y.DefaultJobOptions.Retry)
	if err != nil {
		return nil, err
	}

	f := &File{
		RedisURL:  y.Redis.URL,
		Namespace: y.Redis.Namespace,
		Queue:     y.DefaultWorkerOptions.Queue,
		Retry:     retry.Or(jobRetry),
	}
	if f.Queue == "" {
		f.Queue = y.DefaultJobOptions.Queue
	}
	return f, nil
}
