package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/tradercheck/tradercheck/internal/application/dto"
	"github.com/tradercheck/tradercheck/internal/domain/model"
	"github.com/tradercheck/tradercheck/internal/domain/port"
	"github.com/tradercheck/tradercheck/internal/domain/valueobject"
)

// ManageBrokers is the admin use case for broker accounts.
type ManageBrokers struct {
	brokers port.BrokerRepository
	records port.RecordRepository
	logger  *slog.Logger
}

// NewManageBrokers creates a new ManageBrokers use case.
func NewManageBrokers(brokers port.BrokerRepository, records port.RecordRepository, logger *slog.Logger) *ManageBrokers {
	return &ManageBrokers{brokers: brokers, records: records, logger: orDiscard(logger)}
}

// Create registers an active broker.
func (uc *ManageBrokers) Create(ctx context.Context, req dto.BrokerRequest) (dto.BrokerResponse, error) {
	broker, err := model.NewBroker(req.Name, req.Email, req.Company)
	if err != nil {
		return dto.BrokerResponse{}, fmt.Errorf("failed to create broker: %w", err)
	}
	if err := uc.brokers.Save(ctx, broker); err != nil {
		return dto.BrokerResponse{}, fmt.Errorf("failed to save broker: %w", err)
	}
	uc.logger.InfoContext(ctx, "broker created", slog.String("broker_id", broker.ID().String()))
	return dto.FromBroker(broker, 0), nil
}

// Update replaces the fields of an existing broker. An empty status keeps
// the current one.
func (uc *ManageBrokers) Update(ctx context.Context, req dto.BrokerRequest) (dto.BrokerResponse, error) {
	broker, err := uc.brokers.FindByID(ctx, req.ID)
	if err != nil {
		return dto.BrokerResponse{}, fmt.Errorf("failed to find broker: %w", err)
	}

	status := broker.Status()
	if req.Status != "" {
		if status, err = valueobject.BrokerStatusFromString(req.Status); err != nil {
			return dto.BrokerResponse{}, invalid(err)
		}
	}
	if err := broker.Update(req.Name, req.Email, req.Company, status); err != nil {
		return dto.BrokerResponse{}, fmt.Errorf("failed to update broker: %w", err)
	}
	if err := uc.brokers.Save(ctx, broker); err != nil {
		return dto.BrokerResponse{}, fmt.Errorf("failed to save broker: %w", err)
	}
	return uc.withComplaints(ctx, broker)
}

// Delete removes a broker that has filed no records.
func (uc *ManageBrokers) Delete(ctx context.Context, id uuid.UUID) error {
	if err := uc.brokers.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete broker: %w", err)
	}
	return nil
}

// List returns every broker with the number of complaints it submitted.
func (uc *ManageBrokers) List(ctx context.Context) ([]dto.BrokerResponse, error) {
	brokers, err := uc.brokers.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list brokers: %w", err)
	}
	out := make([]dto.BrokerResponse, 0, len(brokers))
	for _, b := range brokers {
		resp, err := uc.withComplaints(ctx, b)
		if err != nil {
			return nil, err
		}
		out = append(out, resp)
	}
	return out, nil
}

func (uc *ManageBrokers) withComplaints(ctx context.Context, b *model.Broker) (dto.BrokerResponse, error) {
	n, err := uc.records.CountByReporter(ctx, b.ID())
	if err != nil {
		return dto.BrokerResponse{}, fmt.Errorf("failed to count complaints: %w", err)
	}
	return dto.FromBroker(b, n), nil
}
