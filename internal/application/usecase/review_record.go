package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tradercheck/tradercheck/internal/application/dto"
	"github.com/tradercheck/tradercheck/internal/domain/model"
	"github.com/tradercheck/tradercheck/internal/domain/port"
	"github.com/tradercheck/tradercheck/internal/domain/valueobject"
	"github.com/tradercheck/tradercheck/internal/metrics"
)

// ReviewRecord is the admin use case for verifying or clearing a record.
type ReviewRecord struct {
	repos     port.Repositories
	publisher port.EventPublisher
	metrics   *metrics.Metrics
	logger    *slog.Logger
}

// NewReviewRecord creates a new ReviewRecord use case.
func NewReviewRecord(repos port.Repositories, publisher port.EventPublisher, m *metrics.Metrics, logger *slog.Logger) *ReviewRecord {
	return &ReviewRecord{repos: repos, publisher: publisher, metrics: m, logger: orDiscard(logger)}
}

// Execute moves the record to the requested status. ExpectedVersion is
// checked only when set.
func (uc *ReviewRecord) Execute(ctx context.Context, req dto.ReviewRecordRequest) (dto.RecordResponse, error) {
	status, err := valueobject.RecordStatusFromString(req.Status)
	if err != nil {
		return dto.RecordResponse{}, fmt.Errorf("%w: %v", model.ErrInvalidStatus, err)
	}

	record, err := uc.repos.Records.FindByID(ctx, req.RecordID)
	if err != nil {
		return dto.RecordResponse{}, fmt.Errorf("failed to find record: %w", err)
	}
	if req.ExpectedVersion > 0 && record.Version() != req.ExpectedVersion {
		return dto.RecordResponse{}, fmt.Errorf("record %s is at version %d, not %d: %w",
			record.ID(), record.Version(), req.ExpectedVersion, model.ErrVersionConflict)
	}

	changed, err := record.Review(status)
	if err != nil {
		return dto.RecordResponse{}, fmt.Errorf("failed to review record: %w", err)
	}
	if changed {
		if err := uc.repos.Records.Save(ctx, record); err != nil {
			return dto.RecordResponse{}, fmt.Errorf("failed to save record: %w", err)
		}
		publishBestEffort(ctx, uc.publisher, uc.logger, uc.metrics, record.DomainEvents()...)
		uc.logger.InfoContext(ctx, "record reviewed",
			slog.String("record_id", record.ID().String()),
			slog.String("status", status.String()),
		)
	}

	labels, err := loadLabels(ctx, uc.repos)
	if err != nil {
		return dto.RecordResponse{}, err
	}
	return dto.FromRecord(record, labels), nil
}
