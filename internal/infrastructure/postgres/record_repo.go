package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tradercheck/tradercheck/internal/domain/model"
	"github.com/tradercheck/tradercheck/internal/domain/port"
	"github.com/tradercheck/tradercheck/internal/domain/valueobject"
	pgutil "github.com/tradercheck/tradercheck/pkg/postgres"
)

// Compile-time interface check.
var _ port.RecordRepository = (*RecordRepo)(nil)

const recordColumns = `id, category_id, allegation_type_id, reported_by, value, score, status,
	description, sub_category, subject, version, created_at, updated_at`

// RecordRepo implements RecordRepository using PostgreSQL.
type RecordRepo struct {
	db pgutil.Querier
}

// NewRecordRepo creates a new RecordRepo.
func NewRecordRepo(db pgutil.Querier) *RecordRepo {
	return &RecordRepo{db: db}
}

// subjectDoc is the JSONB shape of a record subject.
type subjectDoc struct {
	Name           string   `json:"name,omitempty"`
	Emails         []string `json:"emails,omitempty"`
	Contact        string   `json:"contact,omitempty"`
	Address        string   `json:"address,omitempty"`
	City           string   `json:"city,omitempty"`
	Country        string   `json:"country,omitempty"`
	IPs            []string `json:"ips,omitempty"`
	DocumentType   string   `json:"document_type,omitempty"`
	DocumentNumber string   `json:"document_number,omitempty"`
}

func toSubjectDoc(s model.Subject) subjectDoc {
	return subjectDoc(s)
}

// Save inserts a version 1 record, or updates a stored record whose
// version is exactly one behind.
func (r *RecordRepo) Save(ctx context.Context, record *model.AbuseRecord) error {
	subject, err := json.Marshal(toSubjectDoc(record.Subject()))
	if err != nil {
		return fmt.Errorf("marshal record subject: %w", err)
	}

	if record.Version() <= 1 {
		tag, err := r.db.Exec(ctx, `
			INSERT INTO abuse_records (`+recordColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
			ON CONFLICT (id) DO NOTHING
		`, record.ID(), record.CategoryID(), record.AllegationTypeID(), record.ReportedBy(),
			record.Value(), record.Score(), record.Status().String(),
			record.Description(), record.SubCategory(), subject,
			record.Version(), record.CreatedAt(), record.UpdatedAt())
		if err != nil {
			if pgutil.IsForeignKeyViolation(err) {
				return fmt.Errorf("record %s references a missing entity: %w", record.ID(), model.ErrValidation)
			}
			return fmt.Errorf("insert abuse record: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("record %s already exists: %w", record.ID(), model.ErrVersionConflict)
		}
		return nil
	}

	tag, err := r.db.Exec(ctx, `
		UPDATE abuse_records SET
			score = $2, status = $3, description = $4, sub_category = $5,
			subject = $6, version = $7, updated_at = $8
		WHERE id = $1 AND version = $7 - 1
	`, record.ID(), record.Score(), record.Status().String(),
		record.Description(), record.SubCategory(), subject,
		record.Version(), record.UpdatedAt())
	if err != nil {
		return fmt.Errorf("update abuse record: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	var exists bool
	if err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM abuse_records WHERE id = $1)`, record.ID(),
	).Scan(&exists); err != nil {
		return fmt.Errorf("check abuse record: %w", err)
	}
	if !exists {
		return fmt.Errorf("record %s: %w", record.ID(), model.ErrNotFound)
	}
	return fmt.Errorf("record %s at version %d: %w", record.ID(), record.Version(), model.ErrVersionConflict)
}

// FindByID retrieves a record by id.
func (r *RecordRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.AbuseRecord, error) {
	row := r.db.QueryRow(ctx, `SELECT `+recordColumns+` FROM abuse_records WHERE id = $1`, id)
	record, err := scanRecord(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("record %s: %w", id, model.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return record, nil
}

// List returns matching records, newest first.
func (r *RecordRepo) List(ctx context.Context, filter port.RecordFilter) ([]*model.AbuseRecord, error) {
	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if !filter.Status.IsZero() {
		conds = append(conds, "status = "+arg(filter.Status.String()))
	}
	if !filter.RiskLevel.IsZero() {
		conds = append(conds, riskLevelCondition(filter.RiskLevel, arg))
	}
	if filter.CategoryID != uuid.Nil {
		conds = append(conds, "category_id = "+arg(filter.CategoryID))
	}
	if filter.ReportedBy != uuid.Nil {
		conds = append(conds, "reported_by = "+arg(filter.ReportedBy))
	}

	query := `SELECT ` + recordColumns + ` FROM abuse_records`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC, id"
	if filter.Limit > 0 {
		query += " LIMIT " + arg(filter.Limit)
	}
	if filter.Offset > 0 {
		query += " OFFSET " + arg(filter.Offset)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query abuse records: %w", err)
	}
	defer rows.Close()

	records := make([]*model.AbuseRecord, 0)
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate abuse records: %w", err)
	}
	return records, nil
}

// riskLevelCondition translates a band into a score range so that the
// stored rows never need a risk column.
func riskLevelCondition(level valueobject.RiskLevel, arg func(any) string) string {
	switch level {
	case valueobject.RiskLevelLow:
		return "score <= " + arg(valueobject.LowRiskCeiling)
	case valueobject.RiskLevelMedium:
		return "score > " + arg(valueobject.LowRiskCeiling) + " AND score <= " + arg(valueobject.MediumRiskCeiling)
	default:
		return "score > " + arg(valueobject.MediumRiskCeiling)
	}
}

// Delete removes a record.
func (r *RecordRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM abuse_records WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete abuse record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("record %s: %w", id, model.ErrNotFound)
	}
	return nil
}

// CountByReporter counts the records filed by a broker.
func (r *RecordRepo) CountByReporter(ctx context.Context, brokerID uuid.UUID) (int, error) {
	return r.count(ctx, "reported_by", brokerID)
}

// CountByCategory counts the records under a category.
func (r *RecordRepo) CountByCategory(ctx context.Context, categoryID uuid.UUID) (int, error) {
	return r.count(ctx, "category_id", categoryID)
}

// CountByAllegationType counts the records carrying an allegation type.
func (r *RecordRepo) CountByAllegationType(ctx context.Context, allegationTypeID uuid.UUID) (int, error) {
	return r.count(ctx, "allegation_type_id", allegationTypeID)
}

func (r *RecordRepo) count(ctx context.Context, column string, id uuid.UUID) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM abuse_records WHERE `+column+` = $1`, id).Scan(&n); err != nil {
		return 0, fmt.Errorf("count abuse records by %s: %w", column, err)
	}
	return n, nil
}

// scanRecord reads one AbuseRecord from a row.
func scanRecord(row pgx.Row) (*model.AbuseRecord, error) {
	var (
		id               uuid.UUID
		categoryID       uuid.UUID
		allegationTypeID uuid.UUID
		reportedBy       uuid.UUID
		value            string
		score            int
		statusStr        string
		description      string
		subCategory      string
		subjectJSON      []byte
		version          int
		createdAt        time.Time
		updatedAt        time.Time
	)

	if err := row.Scan(
		&id, &categoryID, &allegationTypeID, &reportedBy, &value, &score, &statusStr,
		&description, &subCategory, &subjectJSON, &version, &createdAt, &updatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan abuse record: %w", err)
	}

	status, err := valueobject.RecordStatusFromString(statusStr)
	if err != nil {
		return nil, fmt.Errorf("record %s: %w", id, err)
	}

	var doc subjectDoc
	if len(subjectJSON) > 0 {
		if err := json.Unmarshal(subjectJSON, &doc); err != nil {
			return nil, fmt.Errorf("unmarshal subject of record %s: %w", id, err)
		}
	}

	return model.ReconstructAbuseRecord(
		id, categoryID, allegationTypeID, reportedBy,
		value, score, status, description, subCategory,
		model.Subject(doc), version, createdAt.UTC(), updatedAt.UTC(),
	), nil
}
