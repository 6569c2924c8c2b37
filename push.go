package sidekiq

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// Job describes a job to push. Queue defaults to "default" and nil Args to an
// empty list. An unset Retry is sent as true.
type Job struct {
	Class string
	Queue string
	Args  []interface{}
	Retry Retry
}

// payload is the JSON document Sidekiq workers read off the queue.
type payload struct {
	Class      string        `json:"class"`
	Args       []interface{} `json:"args"`
	JID        string        `json:"jid"`
	CreatedAt  float64       `json:"created_at"`
	EnqueuedAt float64       `json:"enqueued_at"`
	Queue      string        `json:"queue"`
	Retry      Retry         `json:"retry"`
}

// Push adds a job to its queue for immediate processing.
// Returns the job ID.
func (c *Client) Push(ctx context.Context, job *Job) (string, error) {
	if job == nil || job.Class == "" {
		return "", fmt.Errorf("%w: job class is required", ErrInvalidJob)
	}

	queue := job.Queue
	if queue == "" {
		queue = DefaultQueue
	}

	args := job.Args
	if args == nil {
		args = []interface{}{}
	}

	jid, err := generateJID()
	if err != nil {
		return "", err
	}

	now := unixFloat(time.Now())
	data, err := json.Marshal(payload{
		Class:      job.Class,
		Args:       args,
		JID:        jid,
		CreatedAt:  now,
		EnqueuedAt: now,
		Queue:      queue,
		Retry:      job.Retry,
	})
	if err != nil {
		return "", &JobParseError{JID: jid, Err: err}
	}

	pipe := c.rdb.Pipeline()
	pipe.SAdd(ctx, c.key(keyQueues), queue)
	pipe.LPush(ctx, c.queueKey(queue), string(data))
	if _, err := pipe.Exec(ctx); err != nil {
		c.logger.Error("push failed", "class", job.Class, "queue", queue, "error", err)
		return "", wrapRedisErr("push job", err)
	}

	c.logger.Debug("pushed job", "class", job.Class, "queue", queue, "jid", jid)
	return jid, nil
}

// generateJID generates a random 24-character hex job ID.
func generateJID() (string, error) {
	bytes := make([]byte, 12)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

func unixFloat(t time.Time) float64 {
	return float64(t.UnixNano()) / 1e9
}
