package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/tradercheck/tradercheck/internal/domain/event"
	"github.com/tradercheck/tradercheck/internal/domain/port"
	"github.com/tradercheck/tradercheck/internal/metrics"
)

// DeleteRecord is the admin use case for removing a record outright.
type DeleteRecord struct {
	records   port.RecordRepository
	publisher port.EventPublisher
	metrics   *metrics.Metrics
	logger    *slog.Logger
}

// NewDeleteRecord creates a new DeleteRecord use case.
func NewDeleteRecord(records port.RecordRepository, publisher port.EventPublisher, m *metrics.Metrics, logger *slog.Logger) *DeleteRecord {
	return &DeleteRecord{records: records, publisher: publisher, metrics: m, logger: orDiscard(logger)}
}

// Execute deletes the record and publishes RecordDeleted.
func (uc *DeleteRecord) Execute(ctx context.Context, id uuid.UUID) error {
	if err := uc.records.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}
	publishBestEffort(ctx, uc.publisher, uc.logger, uc.metrics, event.NewRecordDeleted(id, time.Now().UTC()))
	uc.logger.InfoContext(ctx, "record deleted", slog.String("record_id", id.String()))
	return nil
}
