package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tradercheck/tradercheck/internal/domain/model"
	"github.com/tradercheck/tradercheck/internal/domain/port"
	"github.com/tradercheck/tradercheck/internal/domain/valueobject"
	pgutil "github.com/tradercheck/tradercheck/pkg/postgres"
)

var (
	_ port.CategoryRepository       = (*CategoryRepo)(nil)
	_ port.AllegationTypeRepository = (*AllegationTypeRepo)(nil)
	_ port.BrokerRepository         = (*BrokerRepo)(nil)
)

// translateWriteErr maps constraint violations onto domain errors.
func translateWriteErr(err error, what string) error {
	switch {
	case pgutil.IsUniqueViolation(err):
		return fmt.Errorf("%s: %w", what, model.ErrDuplicate)
	case pgutil.IsForeignKeyViolation(err):
		return fmt.Errorf("%s: %w", what, model.ErrReferenced)
	default:
		return fmt.Errorf("%s: %w", what, err)
	}
}

func deleteByID(ctx context.Context, db pgutil.Querier, table, label string, id uuid.UUID) error {
	tag, err := db.Exec(ctx, `DELETE FROM `+table+` WHERE id = $1`, id)
	if err != nil {
		return translateWriteErr(err, fmt.Sprintf("delete %s %s", label, id))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s %s: %w", label, id, model.ErrNotFound)
	}
	return nil
}

// CategoryRepo implements CategoryRepository using PostgreSQL.
type CategoryRepo struct {
	db pgutil.Querier
}

// NewCategoryRepo creates a new CategoryRepo.
func NewCategoryRepo(db pgutil.Querier) *CategoryRepo {
	return &CategoryRepo{db: db}
}

func (r *CategoryRepo) Save(ctx context.Context, category *model.Category) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO categories (id, name, description, input_type)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			input_type = EXCLUDED.input_type
	`, category.ID(), category.Name(), category.Description(), category.InputType())
	if err != nil {
		return translateWriteErr(err, fmt.Sprintf("save category %q", category.Name()))
	}
	return nil
}

func (r *CategoryRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	var name, description, inputType string
	err := r.db.QueryRow(ctx, `SELECT name, description, input_type FROM categories WHERE id = $1`, id).
		Scan(&name, &description, &inputType)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("category %s: %w", id, model.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query category: %w", err)
	}
	return model.ReconstructCategory(id, name, description, inputType), nil
}

func (r *CategoryRepo) List(ctx context.Context) ([]*model.Category, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, description, input_type FROM categories ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	out := make([]*model.Category, 0)
	for rows.Next() {
		var (
			id                           uuid.UUID
			name, description, inputType string
		)
		if err := rows.Scan(&id, &name, &description, &inputType); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, model.ReconstructCategory(id, name, description, inputType))
	}
	return out, rows.Err()
}

// Delete relies on ON DELETE RESTRICT to refuse referenced categories.
func (r *CategoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.db, "categories", "category", id)
}

// AllegationTypeRepo implements AllegationTypeRepository using PostgreSQL.
type AllegationTypeRepo struct {
	db pgutil.Querier
}

// NewAllegationTypeRepo creates a new AllegationTypeRepo.
func NewAllegationTypeRepo(db pgutil.Querier) *AllegationTypeRepo {
	return &AllegationTypeRepo{db: db}
}

func (r *AllegationTypeRepo) Save(ctx context.Context, allegationType *model.AllegationType) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO allegation_types (id, name, severity)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			severity = EXCLUDED.severity
	`, allegationType.ID(), allegationType.Name(), allegationType.Severity().String())
	if err != nil {
		return translateWriteErr(err, fmt.Sprintf("save allegation type %q", allegationType.Name()))
	}
	return nil
}

func (r *AllegationTypeRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.AllegationType, error) {
	var name, severity string
	err := r.db.QueryRow(ctx, `SELECT name, severity FROM allegation_types WHERE id = $1`, id).Scan(&name, &severity)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("allegation type %s: %w", id, model.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query allegation type: %w", err)
	}
	return reconstructAllegationType(id, name, severity)
}

func (r *AllegationTypeRepo) List(ctx context.Context) ([]*model.AllegationType, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, severity FROM allegation_types ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("query allegation types: %w", err)
	}
	defer rows.Close()

	out := make([]*model.AllegationType, 0)
	for rows.Next() {
		var (
			id             uuid.UUID
			name, severity string
		)
		if err := rows.Scan(&id, &name, &severity); err != nil {
			return nil, fmt.Errorf("scan allegation type: %w", err)
		}
		at, err := reconstructAllegationType(id, name, severity)
		if err != nil {
			return nil, err
		}
		out = append(out, at)
	}
	return out, rows.Err()
}

func (r *AllegationTypeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.db, "allegation_types", "allegation type", id)
}

func reconstructAllegationType(id uuid.UUID, name, severity string) (*model.AllegationType, error) {
	sev, err := valueobject.SeverityFromString(severity)
	if err != nil {
		return nil, fmt.Errorf("allegation type %s: %w", id, err)
	}
	return model.ReconstructAllegationType(id, name, sev), nil
}

// BrokerRepo implements BrokerRepository using PostgreSQL.
type BrokerRepo struct {
	db pgutil.Querier
}

// NewBrokerRepo creates a new BrokerRepo.
func NewBrokerRepo(db pgutil.Querier) *BrokerRepo {
	return &BrokerRepo{db: db}
}

func (r *BrokerRepo) Save(ctx context.Context, broker *model.Broker) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO brokers (id, name, email, company, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			email = EXCLUDED.email,
			company = EXCLUDED.company,
			status = EXCLUDED.status
	`, broker.ID(), broker.Name(), broker.Email(), broker.Company(), broker.Status().String(), broker.CreatedAt())
	if err != nil {
		return translateWriteErr(err, fmt.Sprintf("save broker %q", broker.Email()))
	}
	return nil
}

const brokerColumns = `id, name, email, company, status, created_at`

func (r *BrokerRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Broker, error) {
	broker, err := scanBroker(r.db.QueryRow(ctx, `SELECT `+brokerColumns+` FROM brokers WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("broker %s: %w", id, model.ErrNotFound)
	}
	return broker, err
}

func (r *BrokerRepo) List(ctx context.Context) ([]*model.Broker, error) {
	rows, err := r.db.Query(ctx, `SELECT `+brokerColumns+` FROM brokers ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("query brokers: %w", err)
	}
	defer rows.Close()

	out := make([]*model.Broker, 0)
	for rows.Next() {
		broker, err := scanBroker(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, broker)
	}
	return out, rows.Err()
}

func (r *BrokerRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.db, "brokers", "broker", id)
}

func scanBroker(row pgx.Row) (*model.Broker, error) {
	var (
		id                           uuid.UUID
		name, email, company, status string
		createdAt                    time.Time
	)
	if err := row.Scan(&id, &name, &email, &company, &status, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan broker: %w", err)
	}
	st, err := valueobject.BrokerStatusFromString(status)
	if err != nil {
		return nil, fmt.Errorf("broker %s: %w", id, err)
	}
	return model.ReconstructBroker(id, name, email, company, st, createdAt.UTC()), nil
}
