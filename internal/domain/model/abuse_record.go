package model

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tradercheck/tradercheck/internal/domain/event"
	"github.com/tradercheck/tradercheck/internal/domain/valueobject"
	"github.com/tradercheck/tradercheck/pkg/events"
)

const maxValueLength = 256

// MaxScore is the largest score a record can hold. Scores travel as int32
// over gRPC and are stored in an INTEGER column.
const MaxScore = math.MaxInt32

// ValidateScore rejects scores outside 0..MaxScore.
func ValidateScore(score int) error {
	if score < 0 || score > MaxScore {
		return fmt.Errorf("%w: got %d, want 0..%d", ErrInvalidScore, score, MaxScore)
	}
	return nil
}

// AbuseRecord is the aggregate root for one reported incident. Its risk
// level is never stored: RiskLevel always classifies the current score.
type AbuseRecord struct {
	createdAt        time.Time
	updatedAt        time.Time
	subject          Subject
	value            string
	description      string
	subCategory      string
	status           valueobject.RecordStatus
	collector        events.EventCollector
	score            int
	version          int
	id               uuid.UUID
	categoryID       uuid.UUID
	allegationTypeID uuid.UUID
	reportedBy       uuid.UUID
}

// ReportParams carries the fields of a new report.
type ReportParams struct {
	CategoryID       uuid.UUID
	AllegationTypeID uuid.UUID
	ReportedBy       uuid.UUID
	Value            string
	Score            int
	Description      string
	SubCategory      string
	Subject          Subject
}

// NewAbuseRecord validates a report and creates a pending record.
func NewAbuseRecord(p ReportParams) (*AbuseRecord, error) {
	if p.CategoryID == uuid.Nil {
		return nil, fmt.Errorf("%w: category ID is required", ErrValidation)
	}
	if p.AllegationTypeID == uuid.Nil {
		return nil, fmt.Errorf("%w: allegation type ID is required", ErrValidation)
	}
	if p.ReportedBy == uuid.Nil {
		return nil, fmt.Errorf("%w: reporter is required", ErrValidation)
	}
	value := strings.TrimSpace(p.Value)
	if value == "" {
		return nil, fmt.Errorf("%w: value is required", ErrValidation)
	}
	if len(value) > maxValueLength {
		return nil, fmt.Errorf("%w: value exceeds %d characters", ErrValidation, maxValueLength)
	}
	if err := ValidateScore(p.Score); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	r := &AbuseRecord{
		id:               uuid.New(),
		categoryID:       p.CategoryID,
		allegationTypeID: p.AllegationTypeID,
		reportedBy:       p.ReportedBy,
		value:            value,
		score:            p.Score,
		status:           valueobject.RecordStatusPending,
		description:      strings.TrimSpace(p.Description),
		subCategory:      strings.TrimSpace(p.SubCategory),
		subject:          p.Subject.normalized(),
		version:          1,
		createdAt:        now,
		updatedAt:        now,
	}

	r.collector.Record(event.NewRecordReported(
		r.id, r.categoryID, r.allegationTypeID, r.reportedBy,
		r.score, r.RiskLevel().String(), now,
	))

	return r, nil
}

// Revision lists the admin-editable fields. Nil fields are left unchanged.
type Revision struct {
	Score       *int
	Description *string
	SubCategory *string
	Subject     *Subject
}

// Revise applies an admin edit. It reports whether anything changed; a
// changed record has its version bumped exactly once.
func (r *AbuseRecord) Revise(rev Revision) (bool, error) {
	if rev.Score != nil {
		if err := ValidateScore(*rev.Score); err != nil {
			return false, err
		}
	}

	changed := false
	now := time.Now().UTC()

	if rev.Score != nil && *rev.Score != r.score {
		oldScore, oldLevel := r.score, r.RiskLevel()
		r.score = *rev.Score
		r.collector.Record(event.NewRecordScoreChanged(
			r.id, oldScore, r.score, oldLevel.String(), r.RiskLevel().String(), now,
		))
		changed = true
	}
	if rev.Description != nil {
		if d := strings.TrimSpace(*rev.Description); d != r.description {
			r.description = d
			changed = true
		}
	}
	if rev.SubCategory != nil {
		if sc := strings.TrimSpace(*rev.SubCategory); sc != r.subCategory {
			r.subCategory = sc
			changed = true
		}
	}
	if rev.Subject != nil {
		if subj := rev.Subject.normalized(); !subj.equal(r.subject) {
			r.subject = subj
			changed = true
		}
	}

	if changed {
		r.updatedAt = now
		r.version++
	}
	return changed, nil
}

// Review moves the record to status. Setting the current status is a no-op.
func (r *AbuseRecord) Review(status valueobject.RecordStatus) (bool, error) {
	if status.IsZero() {
		return false, ErrInvalidStatus
	}
	if status.Equal(r.status) {
		return false, nil
	}

	now := time.Now().UTC()
	from := r.status
	r.status = status
	r.updatedAt = now
	r.version++
	r.collector.Record(event.NewRecordStatusChanged(r.id, from.String(), status.String(), now))
	return true, nil
}

// ReconstructAbuseRecord rebuilds a record from persisted data (no validation, no events).
func ReconstructAbuseRecord(
	id, categoryID, allegationTypeID, reportedBy uuid.UUID,
	value string,
	score int,
	status valueobject.RecordStatus,
	description, subCategory string,
	subject Subject,
	version int,
	createdAt, updatedAt time.Time,
) *AbuseRecord {
	return &AbuseRecord{
		id:               id,
		categoryID:       categoryID,
		allegationTypeID: allegationTypeID,
		reportedBy:       reportedBy,
		value:            value,
		score:            score,
		status:           status,
		description:      description,
		subCategory:      subCategory,
		subject:          subject,
		version:          version,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
	}
}

// Clone returns an independent copy without pending events.
func (r *AbuseRecord) Clone() *AbuseRecord {
	return ReconstructAbuseRecord(
		r.id, r.categoryID, r.allegationTypeID, r.reportedBy,
		r.value, r.score, r.status, r.description, r.subCategory,
		r.subject.Clone(), r.version, r.createdAt, r.updatedAt,
	)
}

func (r *AbuseRecord) ID() uuid.UUID                    { return r.id }
func (r *AbuseRecord) CategoryID() uuid.UUID            { return r.categoryID }
func (r *AbuseRecord) AllegationTypeID() uuid.UUID      { return r.allegationTypeID }
func (r *AbuseRecord) ReportedBy() uuid.UUID            { return r.reportedBy }
func (r *AbuseRecord) Value() string                    { return r.value }
func (r *AbuseRecord) Score() int                       { return r.score }
func (r *AbuseRecord) RiskLevel() valueobject.RiskLevel { return valueobject.ClassifyScore(r.score) }
func (r *AbuseRecord) Status() valueobject.RecordStatus { return r.status }
func (r *AbuseRecord) Description() string              { return r.description }
func (r *AbuseRecord) SubCategory() string              { return r.subCategory }
func (r *AbuseRecord) Version() int                     { return r.version }
func (r *AbuseRecord) CreatedAt() time.Time             { return r.createdAt }
func (r *AbuseRecord) UpdatedAt() time.Time             { return r.updatedAt }

// Subject returns a copy of the personal data. Admin views only.
func (r *AbuseRecord) Subject() Subject { return r.subject.Clone() }

// DomainEvents returns all accumulated domain events and clears them.
func (r *AbuseRecord) DomainEvents() []events.DomainEvent {
	return r.collector.ClearEvents()
}
