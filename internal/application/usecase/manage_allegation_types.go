package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/tradercheck/tradercheck/internal/application/dto"
	"github.com/tradercheck/tradercheck/internal/domain/model"
	"github.com/tradercheck/tradercheck/internal/domain/port"
	"github.com/tradercheck/tradercheck/internal/domain/service"
	"github.com/tradercheck/tradercheck/internal/domain/valueobject"
)

// ManageAllegationTypes is the admin use case for allegation types.
type ManageAllegationTypes struct {
	allegationTypes port.AllegationTypeRepository
	records         port.RecordRepository
	engine          *service.RiskEngine
}

// NewManageAllegationTypes creates a new ManageAllegationTypes use case.
func NewManageAllegationTypes(
	allegationTypes port.AllegationTypeRepository,
	records port.RecordRepository,
	engine *service.RiskEngine,
) *ManageAllegationTypes {
	return &ManageAllegationTypes{allegationTypes: allegationTypes, records: records, engine: engine}
}

// Create adds an allegation type.
func (uc *ManageAllegationTypes) Create(ctx context.Context, req dto.AllegationTypeRequest) (dto.AllegationTypeResponse, error) {
	severity, err := valueobject.SeverityFromString(req.Severity)
	if err != nil {
		return dto.AllegationTypeResponse{}, invalid(err)
	}
	allegationType, err := model.NewAllegationType(req.Name, severity)
	if err != nil {
		return dto.AllegationTypeResponse{}, fmt.Errorf("failed to create allegation type: %w", err)
	}
	if err := uc.allegationTypes.Save(ctx, allegationType); err != nil {
		return dto.AllegationTypeResponse{}, fmt.Errorf("failed to save allegation type: %w", err)
	}
	return uc.toResponse(ctx, allegationType)
}

// Update replaces the fields of an existing allegation type. Records
// already filed keep their score.
func (uc *ManageAllegationTypes) Update(ctx context.Context, req dto.AllegationTypeRequest) (dto.AllegationTypeResponse, error) {
	severity, err := valueobject.SeverityFromString(req.Severity)
	if err != nil {
		return dto.AllegationTypeResponse{}, invalid(err)
	}
	allegationType, err := uc.allegationTypes.FindByID(ctx, req.ID)
	if err != nil {
		return dto.AllegationTypeResponse{}, fmt.Errorf("failed to find allegation type: %w", err)
	}
	if err := allegationType.Update(req.Name, severity); err != nil {
		return dto.AllegationTypeResponse{}, fmt.Errorf("failed to update allegation type: %w", err)
	}
	if err := uc.allegationTypes.Save(ctx, allegationType); err != nil {
		return dto.AllegationTypeResponse{}, fmt.Errorf("failed to save allegation type: %w", err)
	}
	return uc.toResponse(ctx, allegationType)
}

// Delete removes an allegation type no record carries.
func (uc *ManageAllegationTypes) Delete(ctx context.Context, id uuid.UUID) error {
	if err := uc.allegationTypes.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete allegation type: %w", err)
	}
	return nil
}

// List returns every allegation type.
func (uc *ManageAllegationTypes) List(ctx context.Context) ([]dto.AllegationTypeResponse, error) {
	allegationTypes, err := uc.allegationTypes.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list allegation types: %w", err)
	}
	out := make([]dto.AllegationTypeResponse, 0, len(allegationTypes))
	for _, a := range allegationTypes {
		resp, err := uc.toResponse(ctx, a)
		if err != nil {
			return nil, err
		}
		out = append(out, resp)
	}
	return out, nil
}

func (uc *ManageAllegationTypes) toResponse(ctx context.Context, a *model.AllegationType) (dto.AllegationTypeResponse, error) {
	score, err := uc.engine.ScoreFor(a.Severity())
	if err != nil {
		return dto.AllegationTypeResponse{}, err
	}
	n, err := uc.records.CountByAllegationType(ctx, a.ID())
	if err != nil {
		return dto.AllegationTypeResponse{}, fmt.Errorf("failed to count records: %w", err)
	}
	return dto.FromAllegationType(a, score, n), nil
}
