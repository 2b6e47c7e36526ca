// Package queue hands order messages to a message queue. Azure Storage
// Queues is the production backend; Kafka and an in-process backlog are
// available for other deployments and for tests.
package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/fairyhunter13/storefront-service/internal/model"
)

// Sender delivers one serialized order. Implementations send at most once
// per call and do not retry.
type Sender interface {
	Send(ctx context.Context, key, payload string) error
	Backend() string
	Close() error
}

// Submitter turns a product into an order message and sends it.
type Submitter struct {
	sender Sender
	log    *slog.Logger
}

// NewSubmitter wraps sender. A nil logger means slog.Default().
func NewSubmitter(sender Sender, logger *slog.Logger) *Submitter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Submitter{sender: sender, log: logger}
}

// Submit normalizes the price of p, sends exactly one message and returns
// what was sent. Send failures are wrapped with ErrSend.
func (s *Submitter) Submit(ctx context.Context, p model.Product) (model.OrderMessage, error) {
	msg, err := model.NewOrderMessage(p)
	if err != nil {
		return model.OrderMessage{}, err
	}
	body, err := json.Marshal(msg)
	if err != nil {
		return model.OrderMessage{}, fmt.Errorf("encode order %d: %w", msg.ID, err)
	}
	if err := s.sender.Send(ctx, strconv.FormatInt(msg.ID, 10), string(body)); err != nil {
		return model.OrderMessage{}, fmt.Errorf("%w: %s: %w", ErrSend, s.sender.Backend(), err)
	}
	s.log.InfoContext(ctx, "order_enqueued", "backend", s.sender.Backend(), "product_id", msg.ID, "price", msg.Price)
	return msg, nil
}
