package sidekiq

import (
	"context"
	"errors"
	"testing"

	"github.com/rootlyhq/sidekiq-client-cli/internal/testdata"
)

func TestPush_Immediate(t *testing.T) {
	client, mr := setupTestClient(t)
	ctx := context.Background()

	jid, err := client.Push(ctx, &Job{
		Class: "HardWorker",
		Args:  []interface{}{"bob", "5"},
	})
	if err != nil {
		t.Fatalf("Push() error = %v", err)
	}
	if len(jid) != 24 {
		t.Errorf("JID length = %d, want 24", len(jid))
	}

	fixtures := testdata.NewFixtures(mr, "")
	jobs := fixtures.QueuedJobs("default")
	if len(jobs) != 1 {
		t.Fatalf("queued jobs = %d, want 1", len(jobs))
	}

	job := jobs[0]
	if job.Class != "HardWorker" {
		t.Errorf("class = %q, want %q", job.Class, "HardWorker")
	}
	if job.JID != jid {
		t.Errorf("jid = %q, want %q", job.JID, jid)
	}
	if job.Queue != "default" {
		t.Errorf("queue = %q, want default", job.Queue)
	}
	if job.Retry != true {
		t.Errorf("retry = %v, want true for unset retry", job.Retry)
	}
	if len(job.Args) != 2 || job.Args[0] != "bob" || job.Args[1] != "5" {
		t.Errorf("args = %v, want [bob 5]", job.Args)
	}
	if job.CreatedAt == 0 || job.EnqueuedAt == 0 {
		t.Error("created_at and enqueued_at should be set")
	}

	known := fixtures.KnownQueues()
	if len(known) != 1 || known[0] != "default" {
		t.Errorf("queues set = %v, want [default]", known)
	}
}

func TestPush_QueueAndRetry(t *testing.T) {
	tests := []struct {
		name  string
		retry Retry
		want  interface{}
	}{
		{"retry false", RetryEnabled(false), false},
		{"retry count", RetryCount(5), float64(5)},
		{"retry zero count", RetryCount(0), float64(0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, mr := setupTestClient(t)

			_, err := client.Push(context.Background(), &Job{
				Class: "HardWorker",
				Queue: "critical",
				Retry: tt.retry,
			})
			if err != nil {
				t.Fatalf("Push() error = %v", err)
			}

			jobs := testdata.NewFixtures(mr, "").QueuedJobs("critical")
			if len(jobs) != 1 {
				t.Fatalf("queued jobs = %d, want 1", len(jobs))
			}
			if jobs[0].Retry != tt.want {
				t.Errorf("retry = %#v, want %#v", jobs[0].Retry, tt.want)
			}
		})
	}
}

func TestPush_NilArgs(t *testing.T) {
	client, _ := setupTestClient(t)
	ctx := context.Background()

	jid, err := client.Push(ctx, &Job{Class: "Worker"})
	if err != nil {
		t.Fatalf("Push() error = %v", err)
	}

	job, err := NewQueue(client, "default").FindJob(ctx, jid)
	if err != nil {
		t.Fatalf("FindJob() error = %v", err)
	}

	args := job.Args()
	if args == nil {
		t.Error("Args() is nil, want empty slice")
	}
	if len(args) != 0 {
		t.Errorf("Args() length = %d, want 0", len(args))
	}
}

func TestPush_Namespace(t *testing.T) {
	client, mr := setupTestClient(t, WithNamespace("myapp"))

	if _, err := client.Push(context.Background(), &Job{Class: "Worker", Queue: "low"}); err != nil {
		t.Fatalf("Push() error = %v", err)
	}

	if got := testdata.NewFixtures(mr, "myapp").QueuedJobs("low"); len(got) != 1 {
		t.Errorf("namespaced queue has %d jobs, want 1", len(got))
	}
	if mr.Exists("queue:low") {
		t.Error("job was pushed to the unnamespaced key")
	}
}

func TestPush_InvalidJob(t *testing.T) {
	client, _ := setupTestClient(t)

	for _, job := range []*Job{nil, {Class: ""}} {
		_, err := client.Push(context.Background(), job)
		if !errors.Is(err, ErrInvalidJob) {
			t.Errorf("Push(%v) error = %v, want ErrInvalidJob", job, err)
		}
	}
}

func TestPush_RedisDown(t *testing.T) {
	client, mr := setupTestClient(t)
	mr.Close()

	_, err := client.Push(context.Background(), &Job{Class: "Worker"})
	if err == nil {
		t.Fatal("Push() error = nil, want error")
	}

	var redisErr *RedisError
	if !errors.As(err, &redisErr) {
		t.Fatalf("Push() error type = %T, want *RedisError", err)
	}
	if redisErr.Op != "push job" {
		t.Errorf("Op = %q, want %q", redisErr.Op, "push job")
	}
}

func TestPush_UniqueJIDs(t *testing.T) {
	client, _ := setupTestClient(t)
	ctx := context.Background()

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		jid, err := client.Push(ctx, &Job{Class: "Worker"})
		if err != nil {
			t.Fatalf("Push() error = %v", err)
		}
		if seen[jid] {
			t.Fatalf("duplicate JID %q", jid)
		}
		seen[jid] = true
	}
}
