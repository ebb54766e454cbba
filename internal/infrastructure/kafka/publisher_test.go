package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradercheck/tradercheck/internal/domain/event"
	pkgkafka "github.com/tradercheck/tradercheck/pkg/kafka"
	"github.com/tradercheck/tradercheck/pkg/observability"
)

type fakeProducer struct {
	topic    string
	messages []pkgkafka.Message
	err      error
}

func (f *fakeProducer) Publish(_ context.Context, topic string, messages ...pkgkafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.topic = topic
	f.messages = append(f.messages, messages...)
	return nil
}

func TestPublisher_Publish(t *testing.T) {
	fp := &fakeProducer{}
	p := NewPublisher(fp, "tradercheck.events", observability.DiscardLogger())

	recordID := uuid.New()
	evt := event.NewRecordStatusChanged(recordID, "pending", "verified", time.Now())
	require.NoError(t, p.Publish(context.Background(), evt))

	assert.Equal(t, "tradercheck.events", fp.topic)
	require.Len(t, fp.messages, 1)
	msg := fp.messages[0]
	assert.Equal(t, recordID.String(), string(msg.Key))
	assert.Equal(t, event.EventTypeRecordStatusChanged, msg.Headers[EventTypeHeader])

	var payload map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &payload))
	assert.Equal(t, "verified", payload["to_status"])
	assert.Equal(t, event.EventTypeRecordStatusChanged, payload["event_type"])
}

func TestPublisher_NoEventsIsNoop(t *testing.T) {
	fp := &fakeProducer{err: errors.New("must not be called")}
	p := NewPublisher(fp, "t", observability.DiscardLogger())
	assert.NoError(t, p.Publish(context.Background()))
}

func TestPublisher_WrapsProducerError(t *testing.T) {
	fp := &fakeProducer{err: errors.New("leader not available")}
	p := NewPublisher(fp, "t", observability.DiscardLogger())

	err := p.Publish(context.Background(), event.NewRecordDeleted(uuid.New(), time.Now()))
	assert.ErrorContains(t, err, "leader not available")
}

func TestSearchEventRoundTrip(t *testing.T) {
	fp := &fakeProducer{}
	p := NewPublisher(fp, "t", observability.DiscardLogger())

	categoryID := uuid.New()
	sent := event.NewSearchPerformed(uuid.New(), uuid.New(), &categoryID, "basic", "email", true, 20, "high", time.Now().UTC())
	require.NoError(t, p.Publish(context.Background(), sent, event.NewRecordDeleted(uuid.New(), time.Now())))
	require.Len(t, fp.messages, 2)

	got, ok, err := DecodeSearchPerformed(fp.messages[0])
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, sent.SearchLogID, got.SearchLogID)
	assert.Equal(t, sent.BrokerID, got.BrokerID)
	assert.Equal(t, &categoryID, got.CategoryID)
	assert.Equal(t, 20, got.Score)
	assert.Equal(t, "high", got.RiskLevel)
	assert.NotContains(t, string(fp.messages[0].Value), "search_value")

	_, ok, err = DecodeSearchPerformed(fp.messages[1])
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLogPublisher(t *testing.T) {
	p := NewLogPublisher(observability.DiscardLogger())
	assert.NoError(t, p.Publish(context.Background(), event.NewRecordDeleted(uuid.New(), time.Now())))
}
