package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/tradercheck/tradercheck/internal/application/dto"
	"github.com/tradercheck/tradercheck/internal/domain/port"
)

// GetRecord is the admin use case for reading one full record.
type GetRecord struct {
	repos port.Repositories
}

// NewGetRecord creates a new GetRecord use case.
func NewGetRecord(repos port.Repositories) *GetRecord {
	return &GetRecord{repos: repos}
}

// Execute retrieves a record by ID.
func (uc *GetRecord) Execute(ctx context.Context, id uuid.UUID) (dto.RecordResponse, error) {
	record, err := uc.repos.Records.FindByID(ctx, id)
	if err != nil {
		return dto.RecordResponse{}, fmt.Errorf("failed to find record: %w", err)
	}
	labels, err := loadLabels(ctx, uc.repos)
	if err != nil {
		return dto.RecordResponse{}, err
	}
	return dto.FromRecord(record, labels), nil
}
