// Package testdata provides test fixtures for Sidekiq queues and client
// configuration files.
package testdata

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

// SidekiqFixtures reads and writes Sidekiq queue data in miniredis.
type SidekiqFixtures struct {
	mr        *miniredis.Miniredis
	namespace string
}

// NewFixtures creates a new SidekiqFixtures instance.
func NewFixtures(mr *miniredis.Miniredis, namespace string) *SidekiqFixtures {
	return &SidekiqFixtures{mr: mr, namespace: namespace}
}

func (f *SidekiqFixtures) key(parts ...string) string {
	key := strings.Join(parts, ":")
	if f.namespace == "" {
		return key
	}
	return f.namespace + ":" + key
}

// JobPayload is a Sidekiq job as stored on a queue.
type JobPayload struct {
	Class      string        `json:"class"`
	Args       []interface{} `json:"args"`
	JID        string        `json:"jid"`
	CreatedAt  float64       `json:"created_at"`
	EnqueuedAt float64       `json:"enqueued_at"`
	Queue      string        `json:"queue,omitempty"`
	Retry      interface{}   `json:"retry,omitempty"`
}

// AddQueue creates a queue holding jobs, first job oldest.
func (f *SidekiqFixtures) AddQueue(name string, jobs ...JobPayload) {
	f.mr.SAdd(f.key("queues"), name)

	queueKey := f.key("queue", name)
	for _, job := range jobs {
		if job.Queue == "" {
			job.Queue = name
		}
		data, _ := json.Marshal(job)
		f.mr.Lpush(queueKey, string(data))
	}
}

// AddRaw pushes an unparsed value onto a queue.
func (f *SidekiqFixtures) AddRaw(name, value string) {
	f.mr.SAdd(f.key("queues"), name)
	f.mr.Lpush(f.key("queue", name), value)
}

// QueuedJobs decodes every job on a queue in push order, oldest first.
// Values that are not valid JSON are skipped.
func (f *SidekiqFixtures) QueuedJobs(name string) []JobPayload {
	values, err := f.mr.List(f.key("queue", name))
	if err != nil {
		return nil
	}

	jobs := make([]JobPayload, 0, len(values))
	for i := len(values) - 1; i >= 0; i-- {
		var job JobPayload
		if err := json.Unmarshal([]byte(values[i]), &job); err != nil {
			continue
		}
		jobs = append(jobs, job)
	}
	return jobs
}

// KnownQueues returns the members of the queues set.
func (f *SidekiqFixtures) KnownQueues() []string {
	members, err := f.mr.Members(f.key("queues"))
	if err != nil {
		return nil
	}
	return members
}

// SampleJob creates a sample job payload.
func (f *SidekiqFixtures) SampleJob(jid, class string, args ...interface{}) JobPayload {
	now := float64(time.Now().Unix())
	if args == nil {
		args = []interface{}{}
	}
	return JobPayload{
		Class:      class,
		Args:       args,
		JID:        jid,
		CreatedAt:  now,
		EnqueuedAt: now,
		Retry:      true,
	}
}

// WriteConfig writes content to name inside a fresh temp directory and
// returns the file path.
func WriteConfig(t testing.TB, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

// SampleYAML is a complete YAML client config.
const SampleYAML = `redis:
  url: redis://localhost:6390/2
  namespace: myapp
default_worker_options:
  queue: critical
  retry: 5
`

// SampleInitializer is a typical Rails Sidekiq initializer.
const SampleInitializer = `# frozen_string_literal: true

Sidekiq.configure_client do |config|
  config.redis = { url: ENV.fetch('SIDEKIQ_TEST_REDIS_URL', 'redis://localhost:6391/0'), namespace: 'rails_app' }
end

Sidekiq.default_worker_options = { 'queue' => 'mailers', 'retry' => false, 'backtrace' => true }
`
