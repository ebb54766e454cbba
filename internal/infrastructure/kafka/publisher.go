package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/tradercheck/tradercheck/internal/domain/event"
	"github.com/tradercheck/tradercheck/internal/domain/port"
	"github.com/tradercheck/tradercheck/pkg/events"
	pkgkafka "github.com/tradercheck/tradercheck/pkg/kafka"
)

// EventTypeHeader carries the event type on every message.
const EventTypeHeader = "event_type"

type producer interface {
	Publish(ctx context.Context, topic string, messages ...pkgkafka.Message) error
}

// Publisher implements port.EventPublisher using Kafka.
type Publisher struct {
	producer producer
	logger   *slog.Logger
	topic    string
}

var _ port.EventPublisher = (*Publisher)(nil)

// NewPublisher creates a new Kafka event publisher.
func NewPublisher(producer producer, topic string, logger *slog.Logger) *Publisher {
	return &Publisher{
		producer: producer,
		topic:    topic,
		logger:   logger,
	}
}

// Publish sends domain events to Kafka, keyed by aggregate id so that the
// events of one record stay ordered.
func (p *Publisher) Publish(ctx context.Context, domainEvents ...events.DomainEvent) error {
	messages := make([]pkgkafka.Message, 0, len(domainEvents))
	for _, evt := range domainEvents {
		eventType := evt.EventType()

		payload, err := json.Marshal(evt)
		if err != nil {
			return fmt.Errorf("failed to marshal event %s: %w", eventType, err)
		}

		p.logger.DebugContext(ctx, "publishing event",
			slog.String("event_type", eventType),
			slog.String("topic", p.topic),
			slog.Int("payload_size", len(payload)),
		)

		messages = append(messages, pkgkafka.Message{
			Key:   []byte(evt.AggregateID().String()),
			Value: payload,
			Headers: map[string]string{
				EventTypeHeader: eventType,
			},
		})
	}

	if len(messages) == 0 {
		return nil
	}

	if err := p.producer.Publish(ctx, p.topic, messages...); err != nil {
		return fmt.Errorf("failed to publish events to topic %s: %w", p.topic, err)
	}
	return nil
}

// LogPublisher implements port.EventPublisher by logging events. It is
// used when no Kafka broker is configured.
type LogPublisher struct {
	logger *slog.Logger
}

var _ port.EventPublisher = (*LogPublisher)(nil)

// NewLogPublisher creates a LogPublisher.
func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

// Publish logs each event at debug level.
func (p *LogPublisher) Publish(ctx context.Context, domainEvents ...events.DomainEvent) error {
	for _, evt := range domainEvents {
		p.logger.DebugContext(ctx, "domain event",
			slog.String("event_type", evt.EventType()),
			slog.String("aggregate_id", evt.AggregateID().String()),
		)
	}
	return nil
}

// DecodeSearchPerformed extracts a search event from a consumed message.
// Messages of other types report ok=false.
func DecodeSearchPerformed(msg pkgkafka.Message) (evt event.SearchPerformed, ok bool, err error) {
	if msg.Headers[EventTypeHeader] != event.EventTypeSearchPerformed {
		return event.SearchPerformed{}, false, nil
	}
	if err := json.Unmarshal(msg.Value, &evt); err != nil {
		return event.SearchPerformed{}, false, fmt.Errorf("decode %s: %w", event.EventTypeSearchPerformed, err)
	}
	return evt, true, nil
}
