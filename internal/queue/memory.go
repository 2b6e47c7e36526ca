package queue

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// Message is one payload held by MemorySender.
type Message struct {
	Key        string
	Payload    string
	EnqueuedAt time.Time
}

// MemorySender keeps orders in process. It backs local development and
// tests; nothing ever drains it.
type MemorySender struct {
	mu           sync.Mutex
	backlog      []Message
	capacity     int
	shuttingDown atomic.Bool
	enqueued     atomic.Uint64
}

// NewMemorySender creates a MemorySender holding at most capacity
// messages. Non-positive capacity means unbounded.
func NewMemorySender(capacity int) *MemorySender {
	return &MemorySender{capacity: capacity}
}

// Backend implements Sender.
func (q *MemorySender) Backend() string { return "memory" }

// Send appends the payload to the backlog.
func (q *MemorySender) Send(ctx context.Context, key, payload string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if q.IsShuttingDown() {
		return ErrIntakeClosed
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.capacity > 0 && len(q.backlog) >= q.capacity {
		return ErrQueueFull
	}
	q.backlog = append(q.backlog, Message{Key: key, Payload: payload, EnqueuedAt: time.Now().UTC()})
	q.enqueued.Add(1)
	return nil
}

// Messages returns a copy of everything sent so far, oldest first.
func (q *MemorySender) Messages() []Message {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]Message, len(q.backlog))
	copy(out, q.backlog)
	return out
}

// Len returns the number of held messages.
func (q *MemorySender) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.backlog)
}

// Enqueued returns the total number of accepted sends.
func (q *MemorySender) Enqueued() uint64 { return q.enqueued.Load() }

// CloseIntake rejects future sends.
func (q *MemorySender) CloseIntake() { q.shuttingDown.Store(true) }

// IsShuttingDown reports if intake has been closed.
func (q *MemorySender) IsShuttingDown() bool { return q.shuttingDown.Load() }

// Close implements Sender by closing intake.
func (q *MemorySender) Close() error {
	q.CloseIntake()
	return nil
}
