package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type recordingProcessor struct {
	mu       sync.Mutex
	sessions []string
	done     chan struct{}
}

func (p *recordingProcessor) DeliverReminder(ctx context.Context, sessionID string) error {
	p.mu.Lock()
	p.sessions = append(p.sessions, sessionID)
	p.mu.Unlock()
	select {
	case p.done <- struct{}{}:
	default:
	}
	return nil
}

func TestDispatcher_DeliversEnqueued(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	proc := &recordingProcessor{done: make(chan struct{}, 1)}
	d := NewDispatcher(2, zerolog.Nop())
	d.Start(ctx, proc)

	d.Enqueue("CHAT-1-abc")

	select {
	case <-proc.done:
	case <-time.After(time.Second):
		t.Fatal("reminder never delivered")
	}

	proc.mu.Lock()
	defer proc.mu.Unlock()
	if len(proc.sessions) != 1 || proc.sessions[0] != "CHAT-1-abc" {
		t.Fatalf("delivered = %v", proc.sessions)
	}
}

func TestDispatcher_ShardIsDeterministic(t *testing.T) {
	d := NewDispatcher(4, zerolog.Nop())

	for _, id := range []string{"CHAT-1-abc", "CHAT-2-def", "CHAT-3-ghi"} {
		first := d.shardIndex(id)
		for i := 0; i < 10; i++ {
			if got := d.shardIndex(id); got != first {
				t.Fatalf("shard for %q changed: %d then %d", id, first, got)
			}
		}
		if first < 0 || first >= 4 {
			t.Fatalf("shard %d out of range", first)
		}
	}
}

func TestNewDispatcher_DefaultsWorkerCount(t *testing.T) {
	d := NewDispatcher(0, zerolog.Nop())
	if len(d.workers) != defaultWorkers {
		t.Fatalf("workers = %d, want %d", len(d.workers), defaultWorkers)
	}
}
