package event

import (
	"time"

	"github.com/google/uuid"

	"github.com/tradercheck/tradercheck/pkg/events"
)

const (
	EventTypeRecordReported      = "record.reported"
	EventTypeRecordStatusChanged = "record.status_changed"
	EventTypeRecordScoreChanged  = "record.score_changed"
	EventTypeRecordDeleted       = "record.deleted"
	EventTypeSearchPerformed     = "search.performed"

	aggregateRecord = "AbuseRecord"
	aggregateBroker = "Broker"
)

// RecordReported is published when a broker files a new report.
type RecordReported struct {
	events.BaseEvent
	RecordID         uuid.UUID `json:"record_id"`
	CategoryID       uuid.UUID `json:"category_id"`
	AllegationTypeID uuid.UUID `json:"allegation_type_id"`
	ReportedBy       uuid.UUID `json:"reported_by"`
	Score            int       `json:"score"`
	RiskLevel        string    `json:"risk_level"`
}

func NewRecordReported(recordID, categoryID, allegationTypeID, reportedBy uuid.UUID, score int, riskLevel string, at time.Time) RecordReported {
	return RecordReported{
		BaseEvent:        events.NewBaseEvent(EventTypeRecordReported, recordID, aggregateRecord, at),
		RecordID:         recordID,
		CategoryID:       categoryID,
		AllegationTypeID: allegationTypeID,
		ReportedBy:       reportedBy,
		Score:            score,
		RiskLevel:        riskLevel,
	}
}

// RecordStatusChanged is published when an admin reviews a record.
type RecordStatusChanged struct {
	events.BaseEvent
	RecordID   uuid.UUID `json:"record_id"`
	FromStatus string    `json:"from_status"`
	ToStatus   string    `json:"to_status"`
}

func NewRecordStatusChanged(recordID uuid.UUID, from, to string, at time.Time) RecordStatusChanged {
	return RecordStatusChanged{
		BaseEvent:  events.NewBaseEvent(EventTypeRecordStatusChanged, recordID, aggregateRecord, at),
		RecordID:   recordID,
		FromStatus: from,
		ToStatus:   to,
	}
}

// RecordScoreChanged is published when a revision changes a record's score.
// The risk levels are recomputed from the scores at emission time.
type RecordScoreChanged struct {
	events.BaseEvent
	RecordID     uuid.UUID `json:"record_id"`
	OldScore     int       `json:"old_score"`
	NewScore     int       `json:"new_score"`
	OldRiskLevel string    `json:"old_risk_level"`
	NewRiskLevel string    `json:"new_risk_level"`
}

func NewRecordScoreChanged(recordID uuid.UUID, oldScore, newScore int, oldLevel, newLevel string, at time.Time) RecordScoreChanged {
	return RecordScoreChanged{
		BaseEvent:    events.NewBaseEvent(EventTypeRecordScoreChanged, recordID, aggregateRecord, at),
		RecordID:     recordID,
		OldScore:     oldScore,
		NewScore:     newScore,
		OldRiskLevel: oldLevel,
		NewRiskLevel: newLevel,
	}
}

// RecordDeleted is published when an admin removes a record.
type RecordDeleted struct {
	events.BaseEvent
	RecordID uuid.UUID `json:"record_id"`
}

func NewRecordDeleted(recordID uuid.UUID, at time.Time) RecordDeleted {
	return RecordDeleted{
		BaseEvent: events.NewBaseEvent(EventTypeRecordDeleted, recordID, aggregateRecord, at),
		RecordID:  recordID,
	}
}

// SearchPerformed mirrors a search log entry for downstream audit
// consumers. It never carries the searched value.
type SearchPerformed struct {
	events.BaseEvent
	SearchLogID uuid.UUID  `json:"search_log_id"`
	BrokerID    uuid.UUID  `json:"broker_id"`
	CategoryID  *uuid.UUID `json:"category_id,omitempty"`
	Mode        string     `json:"mode"`
	Field       string     `json:"field,omitempty"`
	Found       bool       `json:"found"`
	Score       int        `json:"score"`
	RiskLevel   string     `json:"risk_level"`
}

func NewSearchPerformed(logID, brokerID uuid.UUID, categoryID *uuid.UUID, mode, field string, found bool, score int, riskLevel string, at time.Time) SearchPerformed {
	return SearchPerformed{
		BaseEvent:   events.NewBaseEvent(EventTypeSearchPerformed, brokerID, aggregateBroker, at),
		SearchLogID: logID,
		BrokerID:    brokerID,
		CategoryID:  categoryID,
		Mode:        mode,
		Field:       field,
		Found:       found,
		Score:       score,
		RiskLevel:   riskLevel,
	}
}
