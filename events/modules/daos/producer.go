package dao

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl/plain"
)

// Publisher sends governance events.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// NewEvent fills in the envelope fields shared by every event.
func NewEvent(eventType, daoID, actor string, proposalID *int, payload interface{}) Event {
	return Event{
		EventType:     eventType,
		EventID:       uuid.New().String(),
		EventTime:     time.Now().UTC(),
		SchemaVersion: SchemaVersion,
		DAOID:         daoID,
		ProposalID:    proposalID,
		Actor:         actor,
		Payload:       payload,
	}
}

// Producer handles sending governance events to Kafka
type Producer struct {
	Writer *kafka.Writer
}

// NewProducer initializes a new Kafka writer for governance events. SASL/PLAIN
// over TLS is used when credentials are given.
func NewProducer(brokers []string, topic, username, password string) *Producer {
	w := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    topic,
		Balancer: &kafka.Hash{},
	}
	if username != "" && password != "" {
		w.Transport = &kafka.Transport{
			SASL: plain.Mechanism{Username: username, Password: password},
			TLS:  &tls.Config{MinVersion: tls.VersionTLS12},
		}
	}
	return &Producer{Writer: w}
}

// Publish writes the event keyed by DAO id so one DAO's events stay ordered.
func (p *Producer) Publish(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.Writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.DAOID),
		Value: payload,
	})
}

// Close cleans up the Kafka writer
func (p *Producer) Close() error {
	return p.Writer.Close()
}

// Noop discards events. It is used when no brokers are configured.
type Noop struct{}

// Publish does nothing.
func (Noop) Publish(context.Context, Event) error { return nil }

// Close does nothing.
func (Noop) Close() error { return nil }
