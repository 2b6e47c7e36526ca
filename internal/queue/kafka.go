package queue

import (
	"context"
	"fmt"

	"github.com/IBM/sarama"
)

// NewKafkaProducer builds a synchronous producer that waits for all
// in-sync replicas and never retries.
func NewKafkaProducer(brokers []string) (sarama.SyncProducer, error) {
	cfg := sarama.NewConfig()
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Return.Successes = true
	cfg.Producer.Retry.Max = 0
	p, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return p, nil
}

// KafkaSender publishes orders to one topic keyed by product id.
type KafkaSender struct {
	producer sarama.SyncProducer
	topic    string
}

// NewKafkaSender wraps producer for topic.
func NewKafkaSender(producer sarama.SyncProducer, topic string) *KafkaSender {
	return &KafkaSender{producer: producer, topic: topic}
}

// Backend implements Sender.
func (k *KafkaSender) Backend() string { return "kafka" }

// Send publishes one record. sarama's SyncProducer does not take a
// context, so only an already cancelled ctx is honoured.
func (k *KafkaSender) Send(ctx context.Context, key, payload string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := &sarama.ProducerMessage{
		Topic: k.topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.StringEncoder(payload),
	}
	if _, _, err := k.producer.SendMessage(msg); err != nil {
		return fmt.Errorf("publish to %s: %w", k.topic, err)
	}
	return nil
}

// Close flushes and closes the producer.
func (k *KafkaSender) Close() error { return k.producer.Close() }
