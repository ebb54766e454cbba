package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/tradercheck/tradercheck/internal/application/dto"
	"github.com/tradercheck/tradercheck/internal/domain/port"
	"github.com/tradercheck/tradercheck/internal/domain/valueobject"
)

// ListBrokerRecords is the use case for a broker viewing their own
// complaints.
type ListBrokerRecords struct {
	repos port.Repositories
}

// NewListBrokerRecords creates a new ListBrokerRecords use case.
func NewListBrokerRecords(repos port.Repositories) *ListBrokerRecords {
	return &ListBrokerRecords{repos: repos}
}

// Execute returns every record the broker filed, newest first, with
// status counts. Inactive brokers may still see their history.
func (uc *ListBrokerRecords) Execute(ctx context.Context, brokerID uuid.UUID) (dto.MyRecordsResponse, error) {
	if _, err := uc.repos.Brokers.FindByID(ctx, brokerID); err != nil {
		return dto.MyRecordsResponse{}, fmt.Errorf("failed to find broker: %w", err)
	}

	records, err := uc.repos.Records.List(ctx, port.RecordFilter{ReportedBy: brokerID})
	if err != nil {
		return dto.MyRecordsResponse{}, fmt.Errorf("failed to list records: %w", err)
	}
	labels, err := loadLabels(ctx, uc.repos)
	if err != nil {
		return dto.MyRecordsResponse{}, err
	}

	resp := dto.MyRecordsResponse{
		Records: make([]dto.BrokerRecordResponse, 0, len(records)),
		Total:   len(records),
	}
	for _, r := range records {
		switch r.Status() {
		case valueobject.RecordStatusPending:
			resp.Pending++
		case valueobject.RecordStatusVerified:
			resp.Verified++
		}
		resp.Records = append(resp.Records, dto.FromRecordForBroker(r, labels))
	}
	return resp, nil
}
