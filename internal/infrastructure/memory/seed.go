package memory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tradercheck/tradercheck/internal/domain/model"
	"github.com/tradercheck/tradercheck/internal/domain/port"
	"github.com/tradercheck/tradercheck/internal/domain/valueobject"
)

// Well-known ids of the demo data, so that dev tokens can be minted for the
// seeded brokers.
var (
	SeedBrokerJohnID  = uuid.MustParse("7d1c6a1e-0b7a-4d55-9a34-0f1f6f000001")
	SeedBrokerSarahID = uuid.MustParse("7d1c6a1e-0b7a-4d55-9a34-0f1f6f000002")
	SeedBrokerMikeID  = uuid.MustParse("7d1c6a1e-0b7a-4d55-9a34-0f1f6f000003")

	SeedCategoryFinancialFraudID     = uuid.MustParse("7d1c6a1e-0b7a-4d55-9a34-0f1f6f000011")
	SeedCategoryCyberCrimeID         = uuid.MustParse("7d1c6a1e-0b7a-4d55-9a34-0f1f6f000012")
	SeedCategoryMarketManipulationID = uuid.MustParse("7d1c6a1e-0b7a-4d55-9a34-0f1f6f000013")

	SeedAllegationFraudID           = uuid.MustParse("7d1c6a1e-0b7a-4d55-9a34-0f1f6f000021")
	SeedAllegationNonPaymentID      = uuid.MustParse("7d1c6a1e-0b7a-4d55-9a34-0f1f6f000022")
	SeedAllegationFakeIdentityID    = uuid.MustParse("7d1c6a1e-0b7a-4d55-9a34-0f1f6f000023")
	SeedAllegationChargebackFraudID = uuid.MustParse("7d1c6a1e-0b7a-4d55-9a34-0f1f6f000024")

	SeedRecordFakeBrokerID = uuid.MustParse("7d1c6a1e-0b7a-4d55-9a34-0f1f6f000031")
	SeedRecordPhishingID   = uuid.MustParse("7d1c6a1e-0b7a-4d55-9a34-0f1f6f000032")
)

func day(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return t
}

// Seed writes the demo brokers, reference data and records through the
// given repositories. It works against any store implementation and can be
// rerun: reference data is upserted and existing records are left alone.
func Seed(ctx context.Context, repos port.Repositories) error {
	brokers := []*model.Broker{
		model.ReconstructBroker(SeedBrokerJohnID, "John Smith", "john@broker1.com", "Alpha Trading",
			valueobject.BrokerStatusActive, day("2024-01-15")),
		model.ReconstructBroker(SeedBrokerSarahID, "Sarah Johnson", "sarah@broker2.com", "Beta Investments",
			valueobject.BrokerStatusActive, day("2024-02-20")),
		model.ReconstructBroker(SeedBrokerMikeID, "Mike Wilson", "mike@broker3.com", "Gamma Securities",
			valueobject.BrokerStatusInactive, day("2024-03-10")),
	}
	for _, b := range brokers {
		if err := repos.Brokers.Save(ctx, b); err != nil {
			return fmt.Errorf("seed broker %s: %w", b.Name(), err)
		}
	}

	categories := []*model.Category{
		model.ReconstructCategory(SeedCategoryFinancialFraudID, "Financial Fraud", "Money related fraud", "text"),
		model.ReconstructCategory(SeedCategoryCyberCrimeID, "Cyber Crime", "Online abuse activity", "text"),
		model.ReconstructCategory(SeedCategoryMarketManipulationID, "Market Manipulation", "Trading manipulation", "text"),
	}
	for _, c := range categories {
		if err := repos.Categories.Save(ctx, c); err != nil {
			return fmt.Errorf("seed category %s: %w", c.Name(), err)
		}
	}

	allegations := []*model.AllegationType{
		model.ReconstructAllegationType(SeedAllegationFraudID, "Fraud", valueobject.SeverityHigh),
		model.ReconstructAllegationType(SeedAllegationNonPaymentID, "Non-Payment", valueobject.SeverityMedium),
		model.ReconstructAllegationType(SeedAllegationFakeIdentityID, "Fake Identity", valueobject.SeverityHigh),
		model.ReconstructAllegationType(SeedAllegationChargebackFraudID, "Chargeback Fraud", valueobject.SeverityHigh),
	}
	for _, a := range allegations {
		if err := repos.AllegationTypes.Save(ctx, a); err != nil {
			return fmt.Errorf("seed allegation type %s: %w", a.Name(), err)
		}
	}

	records := []*model.AbuseRecord{
		model.ReconstructAbuseRecord(
			SeedRecordFakeBrokerID, SeedCategoryFinancialFraudID, SeedAllegationFraudID, SeedBrokerJohnID,
			"john.fakebroker.com", 20, valueobject.RecordStatusVerified,
			"Fraudulent trading platform", "Fake Broker",
			model.Subject{
				Name:           "John Doe",
				Emails:         []string{"john@fakebroker.com", "support@fakebroker.com"},
				Contact:        "+1-555-123456",
				Address:        "123 Wall Street",
				City:           "New York",
				Country:        "USA",
				IPs:            []string{"192.168.1.1", "172.16.0.2"},
				DocumentType:   "Passport",
				DocumentNumber: "P12345678",
			},
			1, day("2024-06-15"), day("2024-06-15"),
		),
		model.ReconstructAbuseRecord(
			SeedRecordPhishingID, SeedCategoryCyberCrimeID, SeedAllegationFakeIdentityID, SeedBrokerSarahID,
			"phishing@email.com", 15, valueobject.RecordStatusPending,
			"Using fake identity for phishing", "Phishing",
			model.Subject{
				Name:           "Michael Trader",
				Emails:         []string{"michael@scam.com"},
				Contact:        "+44-7700-900123",
				Address:        "45 Oxford Street",
				City:           "London",
				Country:        "UK",
				IPs:            []string{"10.0.0.1"},
				DocumentType:   "Driving License",
				DocumentNumber: "DL-987654",
			},
			1, day("2024-07-20"), day("2024-07-20"),
		),
	}
	for _, r := range records {
		// Seeding twice must not trip the optimistic version check.
		if _, err := repos.Records.FindByID(ctx, r.ID()); err == nil {
			continue
		} else if !errors.Is(err, model.ErrNotFound) {
			return fmt.Errorf("seed record %s: %w", r.ID(), err)
		}
		if err := repos.Records.Save(ctx, r); err != nil {
			return fmt.Errorf("seed record %s: %w", r.ID(), err)
		}
	}
	return nil
}
