package usecase

import (
	"context"
	"fmt"

	"github.com/tradercheck/tradercheck/internal/application/dto"
	"github.com/tradercheck/tradercheck/internal/domain/port"
)

// ListSearchLogs is the admin use case for the search audit trail.
type ListSearchLogs struct {
	repos port.Repositories
}

// NewListSearchLogs creates a new ListSearchLogs use case.
func NewListSearchLogs(repos port.Repositories) *ListSearchLogs {
	return &ListSearchLogs{repos: repos}
}

// Execute returns the newest entries. The limit defaults to 50 and is
// capped at 500.
func (uc *ListSearchLogs) Execute(ctx context.Context, req dto.ListSearchLogsRequest) ([]dto.SearchLogResponse, error) {
	logs, err := uc.repos.SearchLogs.List(ctx, clampLimit(req.Limit))
	if err != nil {
		return nil, fmt.Errorf("failed to list search logs: %w", err)
	}
	categories, err := uc.repos.Categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	labels := dto.NewLabels(categories, nil, nil)

	out := make([]dto.SearchLogResponse, 0, len(logs))
	for _, l := range logs {
		out = append(out, dto.FromSearchLog(l, labels))
	}
	return out, nil
}
