package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/tradercheck/tradercheck/internal/application/dto"
	"github.com/tradercheck/tradercheck/internal/domain/model"
	"github.com/tradercheck/tradercheck/internal/domain/port"
	"github.com/tradercheck/tradercheck/internal/domain/valueobject"
)

// ListRecords is the admin use case for browsing records.
type ListRecords struct {
	repos port.Repositories
}

// NewListRecords creates a new ListRecords use case.
func NewListRecords(repos port.Repositories) *ListRecords {
	return &ListRecords{repos: repos}
}

// Execute returns the filtered records, newest first.
func (uc *ListRecords) Execute(ctx context.Context, req dto.ListRecordsRequest) ([]dto.RecordResponse, error) {
	filter := port.RecordFilter{
		CategoryID: req.CategoryID,
		ReportedBy: req.ReportedBy,
		Limit:      clampLimit(req.Limit),
		Offset:     max(req.Offset, 0),
	}
	if strings.TrimSpace(req.Status) != "" {
		status, err := valueobject.RecordStatusFromString(req.Status)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", model.ErrInvalidStatus, err)
		}
		filter.Status = status
	}
	if strings.TrimSpace(req.RiskLevel) != "" {
		level, err := valueobject.RiskLevelFromString(req.RiskLevel)
		if err != nil {
			return nil, invalid(err)
		}
		filter.RiskLevel = level
	}

	records, err := uc.repos.Records.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	labels, err := loadLabels(ctx, uc.repos)
	if err != nil {
		return nil, err
	}

	out := make([]dto.RecordResponse, 0, len(records))
	for _, r := range records {
		out = append(out, dto.FromRecord(r, labels))
	}
	return out, nil
}
