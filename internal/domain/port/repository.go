package port

import (
	"context"

	"github.com/google/uuid"

	"github.com/tradercheck/tradercheck/internal/domain/model"
	"github.com/tradercheck/tradercheck/internal/domain/valueobject"
)

//go:generate mockgen -destination=mocks/mocks.go -package=mocks github.com/tradercheck/tradercheck/internal/domain/port RecordRepository,BrokerRepository,SearchLogRepository,EventPublisher,RateLimiter

// RecordFilter narrows a record listing. Zero fields do not filter.
type RecordFilter struct {
	Status     valueobject.RecordStatus
	RiskLevel  valueobject.RiskLevel
	CategoryID uuid.UUID
	ReportedBy uuid.UUID
	Limit      int
	Offset     int
}

// RecordRepository defines the persistence port for abuse records.
type RecordRepository interface {
	// Save inserts a new record or updates an existing one. An update only
	// succeeds when the stored version is exactly record.Version()-1;
	// otherwise it fails with model.ErrVersionConflict.
	Save(ctx context.Context, record *model.AbuseRecord) error

	// FindByID returns model.ErrNotFound when no record has the id.
	FindByID(ctx context.Context, id uuid.UUID) (*model.AbuseRecord, error)

	// List returns matching records, newest first.
	List(ctx context.Context, filter RecordFilter) ([]*model.AbuseRecord, error)

	// Delete removes a record. Returns model.ErrNotFound when absent.
	Delete(ctx context.Context, id uuid.UUID) error

	// CountByReporter counts the records a broker has filed.
	CountByReporter(ctx context.Context, brokerID uuid.UUID) (int, error)

	// CountByCategory counts the records filed under a category.
	CountByCategory(ctx context.Context, categoryID uuid.UUID) (int, error)

	// CountByAllegationType counts the records carrying an allegation type.
	CountByAllegationType(ctx context.Context, allegationTypeID uuid.UUID) (int, error)
}

// CategoryRepository defines the persistence port for categories.
type CategoryRepository interface {
	Save(ctx context.Context, category *model.Category) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Category, error)
	List(ctx context.Context) ([]*model.Category, error)
	// Delete returns model.ErrReferenced when records still point at the category.
	Delete(ctx context.Context, id uuid.UUID) error
}

// AllegationTypeRepository defines the persistence port for allegation types.
type AllegationTypeRepository interface {
	Save(ctx context.Context, allegationType *model.AllegationType) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.AllegationType, error)
	List(ctx context.Context) ([]*model.AllegationType, error)
	// Delete returns model.ErrReferenced when records still carry the type.
	Delete(ctx context.Context, id uuid.UUID) error
}

// BrokerRepository defines the persistence port for broker accounts.
type BrokerRepository interface {
	// Save inserts or updates a broker. Emails are unique; a clash returns
	// model.ErrDuplicate.
	Save(ctx context.Context, broker *model.Broker) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Broker, error)
	List(ctx context.Context) ([]*model.Broker, error)
	// Delete returns model.ErrReferenced when the broker has filed records.
	Delete(ctx context.Context, id uuid.UUID) error
}

// SearchLogRepository defines the append-only audit port for searches.
type SearchLogRepository interface {
	// Append stores a new entry. Entries are never updated or removed.
	Append(ctx context.Context, entry *model.SearchLog) error

	// List returns the most recent entries, newest first.
	List(ctx context.Context, limit int) ([]*model.SearchLog, error)

	// Count returns the number of entries.
	Count(ctx context.Context) (int, error)
}

// Repositories bundles one implementation of every store port.
type Repositories struct {
	Records         RecordRepository
	Categories      CategoryRepository
	AllegationTypes AllegationTypeRepository
	Brokers         BrokerRepository
	SearchLogs      SearchLogRepository
}
