package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/tradercheck/tradercheck/internal/domain/valueobject"
)

// SearchLog is an immutable audit entry for one search. It only has
// accessors; nothing mutates it after construction.
type SearchLog struct {
	timestamp   time.Time
	searchValue string
	brokerName  string
	field       valueobject.SearchField
	mode        valueobject.SearchMode
	matchMode   valueobject.MatchMode
	riskLevel   valueobject.RiskLevel
	score       int
	found       bool
	id          uuid.UUID
	brokerID    uuid.UUID
	categoryID  uuid.UUID
}

// SearchLogParams carries the fields of a new log entry.
type SearchLogParams struct {
	BrokerID    uuid.UUID
	BrokerName  string
	CategoryID  uuid.UUID
	Field       valueobject.SearchField
	Mode        valueobject.SearchMode
	MatchMode   valueobject.MatchMode
	SearchValue string
	Found       bool
	Score       int
	RiskLevel   valueobject.RiskLevel
	Timestamp   time.Time
}

// NewSearchLog creates a log entry. A zero timestamp is stamped with now.
func NewSearchLog(p SearchLogParams) *SearchLog {
	ts := p.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	return &SearchLog{
		id:          uuid.New(),
		brokerID:    p.BrokerID,
		brokerName:  p.BrokerName,
		categoryID:  p.CategoryID,
		field:       p.Field,
		mode:        p.Mode,
		matchMode:   p.MatchMode,
		searchValue: p.SearchValue,
		found:       p.Found,
		score:       p.Score,
		riskLevel:   p.RiskLevel,
		timestamp:   ts.UTC(),
	}
}

// ReconstructSearchLog rebuilds a log entry from persisted data.
func ReconstructSearchLog(id uuid.UUID, p SearchLogParams) *SearchLog {
	l := NewSearchLog(p)
	l.id = id
	return l
}

func (l *SearchLog) ID() uuid.UUID                    { return l.id }
func (l *SearchLog) BrokerID() uuid.UUID              { return l.brokerID }
func (l *SearchLog) BrokerName() string               { return l.brokerName }
func (l *SearchLog) CategoryID() uuid.UUID            { return l.categoryID }
func (l *SearchLog) Field() valueobject.SearchField   { return l.field }
func (l *SearchLog) Mode() valueobject.SearchMode     { return l.mode }
func (l *SearchLog) MatchMode() valueobject.MatchMode { return l.matchMode }
func (l *SearchLog) SearchValue() string              { return l.searchValue }
func (l *SearchLog) Found() bool                      { return l.found }
func (l *SearchLog) Score() int                       { return l.score }
func (l *SearchLog) RiskLevel() valueobject.RiskLevel { return l.riskLevel }
func (l *SearchLog) Timestamp() time.Time             { return l.timestamp }
