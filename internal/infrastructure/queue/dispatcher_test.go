package queue

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/pathagar/bookshop-api/internal/core/ports"
)

type recordingActivityService struct {
	mu      sync.Mutex
	entries []ports.ActivityInput
}

func (s *recordingActivityService) Record(_ context.Context, in ports.ActivityInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, in)
	return nil
}

func (s *recordingActivityService) snapshot() []ports.ActivityInput {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ports.ActivityInput, len(s.entries))
	copy(out, s.entries)
	return out
}

func waitForEntries(t *testing.T, svc *recordingActivityService, want int) []ports.ActivityInput {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if entries := svc.snapshot(); len(entries) >= want {
			return entries
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d entries, got %d", want, len(svc.snapshot()))
	return nil
}

func TestDispatcher_DeliversEntries(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	svc := &recordingActivityService{}
	d := NewDispatcher(4, svc, zerolog.Nop())
	d.Start(ctx)

	d.Enqueue(ports.ActivityInput{Email: "reader@example.com", Action: "order_paid"})
	d.Enqueue(ports.ActivityInput{Email: "admin@example.com", Action: "role_elevated"})

	entries := waitForEntries(t, svc, 2)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
}

func TestDispatcher_PerPrincipalOrdering(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	svc := &recordingActivityService{}
	d := NewDispatcher(4, svc, zerolog.Nop())
	d.Start(ctx)

	const n = 20
	for i := 0; i < n; i++ {
		d.Enqueue(ports.ActivityInput{
			Email:   "reader@example.com",
			Action:  "order_paid",
			Subject: fmt.Sprintf("tx_%03d", i),
		})
	}

	entries := waitForEntries(t, svc, n)
	for i := 1; i < n; i++ {
		if entries[i].Subject <= entries[i-1].Subject {
			t.Fatalf("entries for one principal arrived out of order: %q then %q",
				entries[i-1].Subject, entries[i].Subject)
		}
	}
}

func TestDispatcher_ShardIsStablePerEmail(t *testing.T) {
	d := NewDispatcher(4, &recordingActivityService{}, zerolog.Nop())

	first := d.shardIndex("reader@example.com")
	for i := 0; i < 10; i++ {
		if got := d.shardIndex("reader@example.com"); got != first {
			t.Fatalf("shard index must be deterministic, got %d then %d", first, got)
		}
	}
	if first < 0 || first >= len(d.workers) {
		t.Fatalf("shard index out of range: %d", first)
	}
}

func TestDispatcher_DefaultWorkerCount(t *testing.T) {
	d := NewDispatcher(0, &recordingActivityService{}, zerolog.Nop())
	if len(d.workers) != defaultWorkers {
		t.Errorf("expected %d workers, got %d", defaultWorkers, len(d.workers))
	}
}
