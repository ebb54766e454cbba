package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tradercheck/tradercheck/internal/application/dto"
	"github.com/tradercheck/tradercheck/internal/domain/model"
	"github.com/tradercheck/tradercheck/internal/domain/port"
	"github.com/tradercheck/tradercheck/internal/metrics"
)

// UpdateRecord is the admin use case for editing a record.
type UpdateRecord struct {
	repos     port.Repositories
	publisher port.EventPublisher
	metrics   *metrics.Metrics
	logger    *slog.Logger
}

// NewUpdateRecord creates a new UpdateRecord use case.
func NewUpdateRecord(repos port.Repositories, publisher port.EventPublisher, m *metrics.Metrics, logger *slog.Logger) *UpdateRecord {
	return &UpdateRecord{repos: repos, publisher: publisher, metrics: m, logger: orDiscard(logger)}
}

// Execute applies the edit when ExpectedVersion matches the stored record.
// An edit that changes nothing returns the record without saving.
func (uc *UpdateRecord) Execute(ctx context.Context, req dto.UpdateRecordRequest) (dto.RecordResponse, error) {
	if req.ExpectedVersion < 1 {
		return dto.RecordResponse{}, fmt.Errorf("%w: version is required", model.ErrValidation)
	}

	record, err := uc.repos.Records.FindByID(ctx, req.RecordID)
	if err != nil {
		return dto.RecordResponse{}, fmt.Errorf("failed to find record: %w", err)
	}
	if record.Version() != req.ExpectedVersion {
		return dto.RecordResponse{}, fmt.Errorf("record %s is at version %d, not %d: %w",
			record.ID(), record.Version(), req.ExpectedVersion, model.ErrVersionConflict)
	}

	rev := model.Revision{
		Score:       req.Score,
		Description: req.Description,
		SubCategory: req.SubCategory,
	}
	if req.Subject != nil {
		subject := req.Subject.ToModel()
		rev.Subject = &subject
	}

	changed, err := record.Revise(rev)
	if err != nil {
		return dto.RecordResponse{}, fmt.Errorf("failed to revise record: %w", err)
	}
	if changed {
		if err := uc.repos.Records.Save(ctx, record); err != nil {
			return dto.RecordResponse{}, fmt.Errorf("failed to save record: %w", err)
		}
		publishBestEffort(ctx, uc.publisher, uc.logger, uc.metrics, record.DomainEvents()...)
	}

	labels, err := loadLabels(ctx, uc.repos)
	if err != nil {
		return dto.RecordResponse{}, err
	}
	return dto.FromRecord(record, labels), nil
}
