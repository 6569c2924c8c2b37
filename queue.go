package sidekiq

import (
	"context"
)

// Queue is a read-only view of a Sidekiq queue.
type Queue struct {
	client *Client
	name   string
}

// NewQueue creates a new Queue instance.
func NewQueue(client *Client, name string) *Queue {
	return &Queue{
		client: client,
		name:   name,
	}
}

// AllQueues returns all known queues.
func AllQueues(ctx context.Context, client *Client) ([]*Queue, error) {
	names, err := client.rdb.SMembers(ctx, client.key(keyQueues)).Result()
	if err != nil {
		return nil, wrapRedisErr("list queues", err)
	}

	queues := make([]*Queue, len(names))
	for i, name := range names {
		queues[i] = NewQueue(client, name)
	}
	return queues, nil
}

// Name returns the queue name.
func (q *Queue) Name() string {
	return q.name
}

// Size returns the number of jobs in the queue.
func (q *Queue) Size(ctx context.Context) (int64, error) {
	size, err := q.client.rdb.LLen(ctx, q.client.queueKey(q.name)).Result()
	if err != nil {
		return 0, wrapRedisErr("get queue size", err)
	}
	return size, nil
}

// Each iterates over all jobs in the queue, newest first.
// The callback function receives each job and should return true to continue
// or false to stop iteration.
func (q *Queue) Each(ctx context.Context, fn func(JobRecord) bool) error {
	const pageSize = 100
	offset := int64(0)

	for {
		jobs, err := q.client.rdb.LRange(ctx, q.client.queueKey(q.name), offset, offset+pageSize-1).Result()
		if err != nil {
			return wrapRedisErr("iterate queue", err)
		}

		if len(jobs) == 0 {
			break
		}

		for _, jobData := range jobs {
			job, err := newJobRecord(jobData, q.name)
			if err != nil {
				q.client.logger.Debug("skipping malformed job", "queue", q.name, "error", err)
				continue
			}
			if !fn(*job) {
				return nil
			}
		}

		if int64(len(jobs)) < pageSize {
			break
		}
		offset += pageSize
	}

	return nil
}

// FindJob finds a job by JID in the queue.
// Returns ErrJobNotFound if no job matches.
func (q *Queue) FindJob(ctx context.Context, jid string) (*JobRecord, error) {
	var found *JobRecord
	err := q.Each(ctx, func(job JobRecord) bool {
		if job.JID() == jid {
			found = &job
			return false
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, ErrJobNotFound
	}
	return found, nil
}
