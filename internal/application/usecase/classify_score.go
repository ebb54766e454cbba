package usecase

import (
	"github.com/tradercheck/tradercheck/internal/application/dto"
	"github.com/tradercheck/tradercheck/internal/domain/service"
)

// ClassifyScore is the use case exposing the risk bands.
type ClassifyScore struct {
	engine *service.RiskEngine
}

// NewClassifyScore creates a new ClassifyScore use case.
func NewClassifyScore(engine *service.RiskEngine) *ClassifyScore {
	return &ClassifyScore{engine: engine}
}

// Execute classifies any integer score.
func (uc *ClassifyScore) Execute(score int) dto.ClassifyResponse {
	return dto.ClassifyResponse{
		Score:     score,
		RiskLevel: uc.engine.Classify(score).String(),
	}
}
