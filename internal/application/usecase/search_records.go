package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/tradercheck/tradercheck/internal/application/dto"
	"github.com/tradercheck/tradercheck/internal/domain/event"
	"github.com/tradercheck/tradercheck/internal/domain/model"
	"github.com/tradercheck/tradercheck/internal/domain/port"
	"github.com/tradercheck/tradercheck/internal/domain/service"
	"github.com/tradercheck/tradercheck/internal/domain/valueobject"
	"github.com/tradercheck/tradercheck/internal/metrics"
)

// DefaultSideEffectTimeout bounds the search log append and the event
// publish that follow a resolved search.
const DefaultSideEffectTimeout = 2 * time.Second

// SearchRecords is the use case for a broker looking up a trader. The
// broker only ever learns found, score and risk level.
type SearchRecords struct {
	records   port.RecordRepository
	brokers   port.BrokerRepository
	logs      port.SearchLogRepository
	limiter   port.RateLimiter
	publisher port.EventPublisher
	resolver  *service.Resolver
	metrics   *metrics.Metrics
	logger    *slog.Logger
	now       func() time.Time

	sideEffectTimeout time.Duration
}

// NewSearchRecords creates a new SearchRecords use case. A nil limiter
// disables rate limiting; a nil publisher disables search events.
func NewSearchRecords(
	records port.RecordRepository,
	brokers port.BrokerRepository,
	logs port.SearchLogRepository,
	limiter port.RateLimiter,
	publisher port.EventPublisher,
	resolver *service.Resolver,
	m *metrics.Metrics,
	logger *slog.Logger,
) *SearchRecords {
	return &SearchRecords{
		records:   records,
		brokers:   brokers,
		logs:      logs,
		limiter:   limiter,
		publisher: publisher,
		resolver:  resolver,
		metrics:   m,
		logger:    orDiscard(logger),
		now:       time.Now,

		sideEffectTimeout: DefaultSideEffectTimeout,
	}
}

// WithSideEffectTimeout overrides DefaultSideEffectTimeout.
func (uc *SearchRecords) WithSideEffectTimeout(d time.Duration) *SearchRecords {
	uc.sideEffectTimeout = d
	return uc
}

// Execute resolves one query. Non-empty searches append a SearchLog and
// publish SearchPerformed; neither failure fails the search. Both run on a
// context detached from ctx's cancellation and share one sideEffectTimeout.
func (uc *SearchRecords) Execute(ctx context.Context, req dto.SearchRequest) (dto.SearchResponse, error) {
	ctx, span := tracer.Start(ctx, "SearchRecords")
	defer span.End()

	started := uc.now()

	mode, err := valueobject.SearchModeFromString(req.Mode)
	if err != nil {
		return dto.SearchResponse{}, invalid(err)
	}
	field, err := valueobject.SearchFieldFromString(req.Field)
	if err != nil {
		return dto.SearchResponse{}, invalid(err)
	}
	if !mode.Allows(field) {
		return dto.SearchResponse{}, fmt.Errorf("%w: field %q in %s mode", model.ErrFieldNotAllowed, field.String(), mode.String())
	}
	matchMode, err := valueobject.MatchModeFromString(req.MatchMode)
	if err != nil {
		return dto.SearchResponse{}, invalid(err)
	}

	broker, err := activeBroker(ctx, uc.brokers, req.BrokerID)
	if err != nil {
		return dto.SearchResponse{}, err
	}

	if strings.TrimSpace(req.Value) == "" {
		return dto.FromSearchResult(service.NotFound()), nil
	}

	if uc.limiter != nil {
		allowed, err := uc.limiter.Allow(ctx, "search:"+broker.ID().String())
		if err != nil {
			return dto.SearchResponse{}, fmt.Errorf("failed to check rate limit: %w", err)
		}
		if !allowed {
			uc.metrics.IncrementRateLimited()
			return dto.SearchResponse{}, fmt.Errorf("broker %s: %w", broker.ID(), model.ErrRateLimited)
		}
	}

	query := service.Query{
		CategoryID: req.CategoryID,
		Field:      field,
		Value:      req.Value,
		MatchMode:  matchMode,
	}
	candidates, err := uc.records.List(ctx, port.RecordFilter{CategoryID: req.CategoryID})
	if err != nil {
		return dto.SearchResponse{}, fmt.Errorf("failed to list records: %w", err)
	}
	result := uc.resolver.Resolve(candidates, query)

	entry := model.NewSearchLog(model.SearchLogParams{
		BrokerID:    broker.ID(),
		BrokerName:  broker.Name(),
		CategoryID:  req.CategoryID,
		Field:       field,
		Mode:        mode,
		MatchMode:   service.EffectiveMatchMode(query),
		SearchValue: req.Value,
		Found:       result.Found,
		Score:       result.Score,
		RiskLevel:   result.RiskLevel,
		Timestamp:   started,
	})
	sideCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), uc.sideEffectTimeout)
	defer cancel()

	if err := uc.logs.Append(sideCtx, entry); err != nil {
		uc.metrics.IncrementSideEffectFailure("search_log")
		uc.logger.WarnContext(ctx, "failed to append search log",
			slog.String("broker_id", broker.ID().String()),
			slog.Any("error", err),
		)
	}

	var categoryID *uuid.UUID
	if req.CategoryID != uuid.Nil {
		id := req.CategoryID
		categoryID = &id
	}
	publishBestEffort(sideCtx, uc.publisher, uc.logger, uc.metrics, event.NewSearchPerformed(
		entry.ID(), broker.ID(), categoryID, mode.String(), field.String(),
		result.Found, result.Score, result.RiskLevel.String(), entry.Timestamp(),
	))

	span.SetAttributes(
		attribute.String("search.mode", mode.String()),
		attribute.Bool("search.found", result.Found),
	)
	uc.metrics.IncrementSearch(mode.String(), result.Found)
	uc.metrics.ObserveSearchLatency(uc.now().Sub(started))

	return dto.FromSearchResult(result), nil
}
