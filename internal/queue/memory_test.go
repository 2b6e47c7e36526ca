package queue

import (
	"context"
	"testing"
)

func TestMemorySenderKeepsOrder(t *testing.T) {
	q := NewMemorySender(0)
	ctx := context.Background()
	for _, k := range []string{"1", "2", "3"} {
		if err := q.Send(ctx, k, "p"+k); err != nil {
			t.Fatalf("send %s: %v", k, err)
		}
	}
	msgs := q.Messages()
	if len(msgs) != 3 || q.Len() != 3 || q.Enqueued() != 3 {
		t.Fatalf("expected 3 messages, got %d", len(msgs))
	}
	if msgs[0].Key != "1" || msgs[2].Payload != "p3" {
		t.Fatalf("unexpected order: %+v", msgs)
	}
}

func TestMemorySenderShutdownIntake(t *testing.T) {
	q := NewMemorySender(0)
	q.CloseIntake()
	if !q.IsShuttingDown() {
		t.Fatalf("expected shutting down true")
	}
	if err := q.Send(context.Background(), "1", "x"); err != ErrIntakeClosed {
		t.Fatalf("expected ErrIntakeClosed, got %v", err)
	}
	if q.Len() != 0 {
		t.Fatalf("expected empty backlog")
	}
}

func TestMemorySenderCapacity(t *testing.T) {
	q := NewMemorySender(1)
	if err := q.Send(context.Background(), "1", "x"); err != nil {
		t.Fatalf("first send: %v", err)
	}
	if err := q.Send(context.Background(), "2", "y"); err != ErrQueueFull {
		t.Fatalf("expected ErrQueueFull, got %v", err)
	}
}

func TestMemorySenderCancelledContext(t *testing.T) {
	q := NewMemorySender(0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := q.Send(ctx, "1", "x"); err == nil {
		t.Fatalf("expected context error")
	}
}
