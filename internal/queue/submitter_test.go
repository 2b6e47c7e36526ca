package queue

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/storefront-service/internal/model"
)

type failingSender struct{ err error }

func (f failingSender) Send(context.Context, string, string) error { return f.err }
func (f failingSender) Backend() string                            { return "failing" }
func (f failingSender) Close() error                               { return nil }

func TestSubmitSendsNormalizedOrder(t *testing.T) {
	mem := NewMemorySender(0)
	s := NewSubmitter(mem, nil)

	msg, err := s.Submit(context.Background(), model.Product{ID: 7, Name: "Blue Shirt", Price: "$12.00", ImageURL: "https://x/y.png"})
	require.NoError(t, err)
	assert.Equal(t, model.OrderMessage{ID: 7, Name: "Blue Shirt", Price: 1200}, msg)

	sent := mem.Messages()
	require.Len(t, sent, 1)
	assert.Equal(t, "7", sent[0].Key)
	assert.JSONEq(t, `{"id":7,"name":"Blue Shirt","price":1200}`, sent[0].Payload)
}

func TestSubmitWrapsSendFailure(t *testing.T) {
	cause := errors.New("connection refused")
	s := NewSubmitter(failingSender{err: cause}, nil)

	_, err := s.Submit(context.Background(), model.Product{ID: 1, Price: "1"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSend)
	assert.ErrorIs(t, err, cause)
}

func TestSubmitPriceOverflowSendsNothing(t *testing.T) {
	mem := NewMemorySender(0)
	s := NewSubmitter(mem, nil)

	_, err := s.Submit(context.Background(), model.Product{ID: 1, Price: "99999999999999999999999"})
	assert.ErrorIs(t, err, model.ErrPriceOverflow)
	assert.Zero(t, mem.Len())
}

func TestSubmitFullMemoryQueue(t *testing.T) {
	mem := NewMemorySender(1)
	s := NewSubmitter(mem, nil)
	_, err := s.Submit(context.Background(), model.Product{ID: 1, Price: "1"})
	require.NoError(t, err)
	_, err = s.Submit(context.Background(), model.Product{ID: 2, Price: "2"})
	assert.ErrorIs(t, err, ErrSend)
	assert.ErrorIs(t, err, ErrQueueFull)
	assert.Equal(t, uint64(1), mem.Enqueued())
}
