package sidekiq

import "strings"

// DefaultQueue is the queue Sidekiq uses when none is given.
const DefaultQueue = "default"

// Redis key names used by Sidekiq.
const (
	keyQueues = "queues"
	keyQueue  = "queue"
)

// key builds a namespaced Redis key from the given parts.
func (c *Client) key(parts ...string) string {
	key := strings.Join(parts, ":")
	if c.namespace == "" {
		return key
	}
	return c.namespace + ":" + key
}

// queueKey returns the Redis key for a queue's job list.
func (c *Client) queueKey(name string) string {
	return c.key(keyQueue, name)
}
