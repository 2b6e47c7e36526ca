package queue

import "errors"

var (
	// ErrSend wraps every failure to hand an order to the queue.
	ErrSend = errors.New("order enqueue failed")

	// ErrIntakeClosed is returned by MemorySender after CloseIntake.
	ErrIntakeClosed = errors.New("queue intake closed")

	// ErrQueueFull is returned by a bounded MemorySender at capacity.
	ErrQueueFull = errors.New("queue full")
)
