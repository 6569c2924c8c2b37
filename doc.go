// Package sidekiq provides a Go client for pushing jobs onto Sidekiq queues.
//
// Jobs are written directly into Sidekiq's Redis data structures using the
// same wire format as Ruby's Sidekiq::Client.push, so any Sidekiq process
// watching the queue picks them up.
//
// # Quick Start
//
//	import (
//	    "context"
//	    "github.com/redis/go-redis/v9"
//	    sidekiq "github.com/rootlyhq/sidekiq-client-cli"
//	)
//
//	func main() {
//	    ctx := context.Background()
//	    rdb := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
//	    client := sidekiq.NewClient(rdb)
//
//	    jid, _ := client.Push(ctx, &sidekiq.Job{
//	        Class: "HardWorker",
//	        Args:  []interface{}{"bob", "5"},
//	        Retry: sidekiq.RetryCount(3),
//	    })
//	    fmt.Printf("Pushed %s\n", jid)
//	}
//
// # Retry
//
// Sidekiq's retry option is either a boolean or a maximum retry count. The
// Retry type models that plus an unset state, and ParseRetry coerces the
// textual forms accepted on the command line.
//
// # Reading Back
//
// Queue and JobRecord expose what was pushed, which is mostly useful for
// verifying pushes and in tests.
//
// # Compatibility
//
//   - Go 1.24+
//   - Sidekiq 6.x, 7.x
//   - Redis 6.x+
package sidekiq
