package usecase

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tradercheck/tradercheck/internal/application/dto"
	"github.com/tradercheck/tradercheck/internal/domain/port"
	"github.com/tradercheck/tradercheck/internal/domain/valueobject"
)

const dashboardRecent = 5

// GetDashboard is the admin use case for the overview page.
type GetDashboard struct {
	repos port.Repositories
}

// NewGetDashboard creates a new GetDashboard use case.
func NewGetDashboard(repos port.Repositories) *GetDashboard {
	return &GetDashboard{repos: repos}
}

// Execute computes the record, broker and search totals.
func (uc *GetDashboard) Execute(ctx context.Context) (dto.DashboardResponse, error) {
	records, err := uc.repos.Records.List(ctx, port.RecordFilter{})
	if err != nil {
		return dto.DashboardResponse{}, fmt.Errorf("failed to list records: %w", err)
	}
	brokers, err := uc.repos.Brokers.List(ctx)
	if err != nil {
		return dto.DashboardResponse{}, fmt.Errorf("failed to list brokers: %w", err)
	}
	searches, err := uc.repos.SearchLogs.Count(ctx)
	if err != nil {
		return dto.DashboardResponse{}, fmt.Errorf("failed to count searches: %w", err)
	}
	recentLogs, err := uc.repos.SearchLogs.List(ctx, dashboardRecent)
	if err != nil {
		return dto.DashboardResponse{}, fmt.Errorf("failed to list searches: %w", err)
	}
	labels, err := loadLabels(ctx, uc.repos)
	if err != nil {
		return dto.DashboardResponse{}, err
	}

	resp := dto.DashboardResponse{
		TotalRecords:  len(records),
		TotalBrokers:  len(brokers),
		TotalSearches: searches,
	}

	total := decimal.Zero
	for _, r := range records {
		total = total.Add(decimal.NewFromInt(int64(r.Score())))

		switch r.Status() {
		case valueobject.RecordStatusPending:
			resp.PendingRecords++
		case valueobject.RecordStatusVerified:
			resp.VerifiedRecords++
		case valueobject.RecordStatusCleared:
			resp.ClearedRecords++
		}
		switch r.RiskLevel() {
		case valueobject.RiskLevelHigh:
			resp.HighRisk++
		case valueobject.RiskLevelMedium:
			resp.MediumRisk++
		default:
			resp.LowRisk++
		}
	}

	average := decimal.Zero
	if len(records) > 0 {
		average = total.Div(decimal.NewFromInt(int64(len(records))))
	}
	resp.AverageScore = average.StringFixed(2)

	for _, b := range brokers {
		if b.Status().IsActive() {
			resp.ActiveBrokers++
		}
	}

	resp.RecentRecords = make([]dto.RecordResponse, 0, dashboardRecent)
	for _, r := range records[:min(dashboardRecent, len(records))] {
		resp.RecentRecords = append(resp.RecentRecords, dto.FromRecord(r, labels))
	}
	resp.RecentSearches = make([]dto.SearchLogResponse, 0, len(recentLogs))
	for _, l := range recentLogs {
		resp.RecentSearches = append(resp.RecentSearches, dto.FromSearchLog(l, labels))
	}

	return resp, nil
}
