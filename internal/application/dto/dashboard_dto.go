package dto

import (
	"github.com/tradercheck/tradercheck/internal/domain/service"
)

// DashboardResponse summarizes the record set for admins.
type DashboardResponse struct {
	RecentRecords   []RecordResponse    `json:"recent_records"`
	RecentSearches  []SearchLogResponse `json:"recent_searches"`
	AverageScore    string              `json:"average_score"`
	TotalRecords    int                 `json:"total_records"`
	PendingRecords  int                 `json:"pending_records"`
	VerifiedRecords int                 `json:"verified_records"`
	ClearedRecords  int                 `json:"cleared_records"`
	HighRisk        int                 `json:"high_risk"`
	MediumRisk      int                 `json:"medium_risk"`
	LowRisk         int                 `json:"low_risk"`
	TotalBrokers    int                 `json:"total_brokers"`
	ActiveBrokers   int                 `json:"active_brokers"`
	TotalSearches   int                 `json:"total_searches"`
}

// EntityProfileResponse is the aggregate risk of one reported value.
type EntityProfileResponse struct {
	Value       string `json:"value"`
	RiskLevel   string `json:"risk_level"`
	TotalScore  int    `json:"total_score"`
	MaxScore    int    `json:"max_score"`
	RecordCount int    `json:"record_count"`
}

// FromEntityRisk maps a risk engine aggregate to its DTO.
func FromEntityRisk(e service.EntityRisk) EntityProfileResponse {
	return EntityProfileResponse{
		Value:       e.Value,
		TotalScore:  e.TotalScore,
		MaxScore:    e.MaxScore,
		RecordCount: e.RecordCount,
		RiskLevel:   e.RiskLevel.String(),
	}
}
