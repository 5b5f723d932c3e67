package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"sparta-mortgage/domain"
)

// messageWriter is the subset of *kafkago.Writer the publisher needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// KafkaLeadPublisher writes one JSON message per lead, keyed by lead id.
type KafkaLeadPublisher struct {
	writer messageWriter
	topic  string
}

func NewKafkaLeadPublisher(brokers []string, topic string) *KafkaLeadPublisher {
	return &KafkaLeadPublisher{
		writer: &kafkago.Writer{
			Addr:         kafkago.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafkago.LeastBytes{},
			BatchTimeout: 10 * time.Millisecond,
			RequiredAcks: kafkago.RequireAll,
			MaxAttempts:  3,
			WriteTimeout: 2 * time.Second,
		},
		topic: topic,
	}
}

func (p *KafkaLeadPublisher) Publish(ctx context.Context, lead domain.Lead) error {
	payload, err := json.Marshal(lead)
	if err != nil {
		return fmt.Errorf("encoding lead %s: %w", lead.ID, err)
	}

	msg := kafkago.Message{
		Key:   []byte(lead.ID),
		Value: payload,
		Headers: []kafkago.Header{
			{Key: "event_type", Value: []byte("lead.submitted")},
			{Key: "preferred_contact", Value: []byte(lead.Submission.PreferredContact)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka publish to %s: %w", p.topic, err)
	}
	return nil
}

func (p *KafkaLeadPublisher) Close() error {
	return p.writer.Close()
}

// NopLeadPublisher drops leads; used when no broker is configured.
type NopLeadPublisher struct{}

func (NopLeadPublisher) Publish(context.Context, domain.Lead) error { return nil }
func (NopLeadPublisher) Close() error                              { return nil }
