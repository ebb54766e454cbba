package usecase

import (
	"context"
	"fmt"

	"github.com/tradercheck/tradercheck/internal/application/dto"
	"github.com/tradercheck/tradercheck/internal/domain/port"
	"github.com/tradercheck/tradercheck/internal/domain/service"
)

// GetEntityProfiles is the admin use case rolling records up per value.
type GetEntityProfiles struct {
	records port.RecordRepository
	engine  *service.RiskEngine
}

// NewGetEntityProfiles creates a new GetEntityProfiles use case.
func NewGetEntityProfiles(records port.RecordRepository, engine *service.RiskEngine) *GetEntityProfiles {
	return &GetEntityProfiles{records: records, engine: engine}
}

// Execute aggregates every record, riskiest entity first.
func (uc *GetEntityProfiles) Execute(ctx context.Context) ([]dto.EntityProfileResponse, error) {
	records, err := uc.records.List(ctx, port.RecordFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}

	profiles := uc.engine.Aggregate(records)
	out := make([]dto.EntityProfileResponse, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, dto.FromEntityRisk(p))
	}
	return out, nil
}
