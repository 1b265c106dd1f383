package queue

import (
	"context"
	"hash/fnv"

	"github.com/rs/zerolog"
)

const (
	defaultWorkers = 4
	channelBuffer  = 128
)

// ReminderProcessor handles a due reminder for one chat session.
type ReminderProcessor interface {
	DeliverReminder(ctx context.Context, sessionID string) error
}

// Dispatcher routes due reminders to a fixed set of workers using consistent
// hashing on the session id, so deliveries for the same session never run
// concurrently with each other.
type Dispatcher struct {
	workers []chan string
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan string, numWorkers),
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan string, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context, proc ReminderProcessor) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch, proc)
	}
}

// Enqueue hands a due session to the worker responsible for it.
// The call is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(sessionID string) {
	d.workers[d.shardIndex(sessionID)] <- sessionID
}

// shardIndex maps a session id deterministically to a worker index.
func (d *Dispatcher) shardIndex(sessionID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(sessionID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan string, proc ReminderProcessor) {
	for {
		select {
		case <-ctx.Done():
			return
		case sessionID, ok := <-ch:
			if !ok {
				return
			}
			if err := proc.DeliverReminder(ctx, sessionID); err != nil {
				d.log.Error().Err(err).
					Str("session_id", sessionID).
					Int("worker_id", id).
					Msg("reminder delivery failed")
			}
		}
	}
}
