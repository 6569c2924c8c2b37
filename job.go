package sidekiq

import (
	"time"

	sjson "github.com/rootlyhq/sidekiq-client-cli/internal/json"
)

// JobRecord is an immutable view of a job as stored in Redis.
type JobRecord struct {
	item  map[string]interface{}
	value string
	queue string
}

// newJobRecord creates a new JobRecord from raw JSON data.
func newJobRecord(value string, queue string) (*JobRecord, error) {
	item, err := sjson.Parse(value)
	if err != nil {
		return nil, &JobParseError{Err: err}
	}
	return &JobRecord{
		item:  item,
		value: value,
		queue: queue,
	}, nil
}

// JID returns the unique job identifier.
func (j *JobRecord) JID() string {
	return sjson.GetString(j.item, "jid")
}

// Queue returns the queue name this job belongs to.
func (j *JobRecord) Queue() string {
	if j.queue != "" {
		return j.queue
	}
	return sjson.GetString(j.item, "queue")
}

// Class returns the worker class name.
func (j *JobRecord) Class() string {
	return sjson.GetString(j.item, "class")
}

// Args returns the job arguments.
func (j *JobRecord) Args() []interface{} {
	return sjson.GetSlice(j.item, "args")
}

// Retry returns the job's retry option, or an unset Retry if the payload
// carries none.
func (j *JobRecord) Retry() Retry {
	switch v := j.item["retry"].(type) {
	case bool:
		return RetryEnabled(v)
	case float64:
		return RetryCount(int(v))
	}
	return Retry{}
}

// CreatedAt returns when the job was created.
func (j *JobRecord) CreatedAt() time.Time {
	return sjson.GetTime(j.item, "created_at")
}

// EnqueuedAt returns when the job was enqueued.
func (j *JobRecord) EnqueuedAt() time.Time {
	return sjson.GetTime(j.item, "enqueued_at")
}

// Latency returns the time in seconds between when the job was enqueued and now.
func (j *JobRecord) Latency() float64 {
	enqueuedAt := j.EnqueuedAt()
	if enqueuedAt.IsZero() {
		return 0
	}
	return time.Since(enqueuedAt).Seconds()
}

// Get returns a raw value from the job's data by key.
func (j *JobRecord) Get(key string) interface{} {
	return j.item[key]
}

// Item returns the raw job data map.
func (j *JobRecord) Item() map[string]interface{} {
	return j.item
}

// Value returns the raw JSON string of the job.
func (j *JobRecord) Value() string {
	return j.value
}
