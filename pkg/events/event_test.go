package events

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleEvent struct {
	BaseEvent
	Score int `json:"score"`
}

func TestNewBaseEvent(t *testing.T) {
	aggregateID := uuid.New()
	at := time.Date(2024, 6, 15, 10, 30, 0, 0, time.FixedZone("EST", -5*3600))

	event := NewBaseEvent("record.reported", aggregateID, "AbuseRecord", at)

	assert.NotEqual(t, uuid.Nil, event.EventID())
	assert.Equal(t, "record.reported", event.EventType())
	assert.Equal(t, aggregateID, event.AggregateID())
	assert.Equal(t, "AbuseRecord", event.AggregateType())
	assert.Equal(t, time.UTC, event.OccurredAt().Location())
	assert.True(t, event.OccurredAt().Equal(at))
}

func TestBaseEvent_FlattensIntoPayload(t *testing.T) {
	var _ DomainEvent = sampleEvent{}

	evt := sampleEvent{
		BaseEvent: NewBaseEvent("record.reported", uuid.New(), "AbuseRecord", time.Now()),
		Score:     20,
	}

	raw, err := json.Marshal(evt)
	require.NoError(t, err)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(raw, &payload))
	assert.Equal(t, "record.reported", payload["event_type"])
	assert.Equal(t, evt.AggregateID().String(), payload["aggregate_id"])
	assert.EqualValues(t, 20, payload["score"])
}

func TestEventCollector(t *testing.T) {
	collector := &EventCollector{}
	id := uuid.New()

	collector.Record(NewBaseEvent("first", id, "AbuseRecord", time.Now()))
	collector.Record(NewBaseEvent("second", id, "AbuseRecord", time.Now()))

	require.Len(t, collector.Events(), 2)
	assert.Len(t, collector.Events(), 2, "Events must not clear")

	cleared := collector.ClearEvents()
	require.Len(t, cleared, 2)
	assert.Equal(t, "first", cleared[0].EventType())
	assert.Equal(t, "second", cleared[1].EventType())
	assert.Empty(t, collector.Events())
	assert.Nil(t, collector.ClearEvents())
}
