// Package usecase holds the application operations. Each use case owns
// its dependencies and exposes Execute (or a small set of CRUD methods).
package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"

	"github.com/tradercheck/tradercheck/internal/application/dto"
	"github.com/tradercheck/tradercheck/internal/domain/model"
	"github.com/tradercheck/tradercheck/internal/domain/port"
	"github.com/tradercheck/tradercheck/internal/metrics"
	"github.com/tradercheck/tradercheck/pkg/events"
)

var tracer = otel.Tracer("github.com/tradercheck/tradercheck/internal/application/usecase")

const (
	defaultListLimit = 50
	maxListLimit     = 500
)

// clampLimit applies the default and the ceiling to a listing limit.
func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return defaultListLimit
	case limit > maxListLimit:
		return maxListLimit
	default:
		return limit
	}
}

func invalid(err error) error {
	return fmt.Errorf("%w: %v", model.ErrValidation, err)
}

// loadLabels reads every reference entity so that admin views can show
// names. Missing targets render as dto.UnknownLabel.
func loadLabels(ctx context.Context, repos port.Repositories) (dto.Labels, error) {
	categories, err := repos.Categories.List(ctx)
	if err != nil {
		return dto.Labels{}, fmt.Errorf("failed to list categories: %w", err)
	}
	allegationTypes, err := repos.AllegationTypes.List(ctx)
	if err != nil {
		return dto.Labels{}, fmt.Errorf("failed to list allegation types: %w", err)
	}
	brokers, err := repos.Brokers.List(ctx)
	if err != nil {
		return dto.Labels{}, fmt.Errorf("failed to list brokers: %w", err)
	}
	return dto.NewLabels(categories, allegationTypes, brokers), nil
}

// activeBroker loads the caller and rejects inactive accounts.
func activeBroker(ctx context.Context, brokers port.BrokerRepository, id uuid.UUID) (*model.Broker, error) {
	broker, err := brokers.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find broker: %w", err)
	}
	if !broker.Status().IsActive() {
		return nil, fmt.Errorf("broker %s: %w", id, model.ErrBrokerInactive)
	}
	return broker, nil
}

// publishBestEffort publishes evts and only logs a failure. A nil
// publisher drops the events.
func publishBestEffort(ctx context.Context, publisher port.EventPublisher, logger *slog.Logger, m *metrics.Metrics, evts ...events.DomainEvent) {
	if publisher == nil || len(evts) == 0 {
		return
	}
	if err := publisher.Publish(ctx, evts...); err != nil {
		m.IncrementSideEffectFailure("publish")
		logger.WarnContext(ctx, "failed to publish events",
			slog.Int("count", len(evts)),
			slog.String("event_type", evts[0].EventType()),
			slog.Any("error", err),
		)
	}
}

func orDiscard(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return logger
}
