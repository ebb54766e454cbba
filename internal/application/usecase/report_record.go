package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"

	"github.com/tradercheck/tradercheck/internal/application/dto"
	"github.com/tradercheck/tradercheck/internal/domain/model"
	"github.com/tradercheck/tradercheck/internal/domain/port"
	"github.com/tradercheck/tradercheck/internal/domain/service"
	"github.com/tradercheck/tradercheck/internal/metrics"
)

// ReportRecord is the use case for a broker filing a new abuse record.
type ReportRecord struct {
	repos     port.Repositories
	publisher port.EventPublisher
	engine    *service.RiskEngine
	metrics   *metrics.Metrics
	logger    *slog.Logger
}

// NewReportRecord creates a new ReportRecord use case.
func NewReportRecord(
	repos port.Repositories,
	publisher port.EventPublisher,
	engine *service.RiskEngine,
	m *metrics.Metrics,
	logger *slog.Logger,
) *ReportRecord {
	return &ReportRecord{
		repos:     repos,
		publisher: publisher,
		engine:    engine,
		metrics:   m,
		logger:    orDiscard(logger),
	}
}

// Execute validates the references, scores the report from its allegation
// severity, persists it as pending and publishes RecordReported.
func (uc *ReportRecord) Execute(ctx context.Context, req dto.ReportRecordRequest) (dto.BrokerRecordResponse, error) {
	ctx, span := tracer.Start(ctx, "ReportRecord")
	defer span.End()

	if _, err := activeBroker(ctx, uc.repos.Brokers, req.BrokerID); err != nil {
		return dto.BrokerRecordResponse{}, err
	}

	category, err := uc.repos.Categories.FindByID(ctx, req.CategoryID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return dto.BrokerRecordResponse{}, fmt.Errorf("%w: unknown category %s", model.ErrValidation, req.CategoryID)
		}
		return dto.BrokerRecordResponse{}, fmt.Errorf("failed to find category: %w", err)
	}

	allegationType, err := uc.repos.AllegationTypes.FindByID(ctx, req.AllegationTypeID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return dto.BrokerRecordResponse{}, fmt.Errorf("%w: unknown allegation type %s", model.ErrValidation, req.AllegationTypeID)
		}
		return dto.BrokerRecordResponse{}, fmt.Errorf("failed to find allegation type: %w", err)
	}

	score, err := uc.engine.ScoreFor(allegationType.Severity())
	if err != nil {
		return dto.BrokerRecordResponse{}, fmt.Errorf("failed to score report: %w", err)
	}

	record, err := model.NewAbuseRecord(model.ReportParams{
		CategoryID:       category.ID(),
		AllegationTypeID: allegationType.ID(),
		ReportedBy:       req.BrokerID,
		Value:            req.Value,
		Score:            score,
		Description:      req.Description,
		SubCategory:      req.SubCategory,
		Subject:          req.Subject.ToModel(),
	})
	if err != nil {
		return dto.BrokerRecordResponse{}, fmt.Errorf("failed to create record: %w", err)
	}

	if err := uc.repos.Records.Save(ctx, record); err != nil {
		return dto.BrokerRecordResponse{}, fmt.Errorf("failed to save record: %w", err)
	}

	span.SetAttributes(
		attribute.String("record.id", record.ID().String()),
		attribute.String("record.risk_level", record.RiskLevel().String()),
	)
	uc.metrics.IncrementReport(allegationType.Severity().String())
	publishBestEffort(ctx, uc.publisher, uc.logger, uc.metrics, record.DomainEvents()...)

	uc.logger.InfoContext(ctx, "record reported",
		slog.String("record_id", record.ID().String()),
		slog.String("broker_id", req.BrokerID.String()),
		slog.Int("score", record.Score()),
	)

	labels := dto.NewLabels([]*model.Category{category}, []*model.AllegationType{allegationType}, nil)
	return dto.FromRecordForBroker(record, labels), nil
}
