package service_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradercheck/tradercheck/internal/domain/model"
	"github.com/tradercheck/tradercheck/internal/domain/service"
	"github.com/tradercheck/tradercheck/internal/domain/valueobject"
)

func record(value string, score int, createdAt time.Time) *model.AbuseRecord {
	return recordIn(uuid.New(), value, score, createdAt, model.Subject{})
}

func recordIn(categoryID uuid.UUID, value string, score int, createdAt time.Time, subject model.Subject) *model.AbuseRecord {
	return model.ReconstructAbuseRecord(
		uuid.New(), categoryID, uuid.New(), uuid.New(),
		value, score, valueobject.RecordStatusVerified,
		"", "", subject, 1, createdAt, createdAt,
	)
}

func newEngine(t *testing.T) *service.RiskEngine {
	t.Helper()
	engine, err := service.NewRiskEngine(service.DefaultSeverityScores)
	require.NoError(t, err)
	return engine
}

func TestRiskEngine_Classify(t *testing.T) {
	engine := newEngine(t)

	assert.Equal(t, valueobject.RiskLevelLow, engine.Classify(5))
	assert.Equal(t, valueobject.RiskLevelMedium, engine.Classify(6))
	assert.Equal(t, valueobject.RiskLevelMedium, engine.Classify(15))
	assert.Equal(t, valueobject.RiskLevelHigh, engine.Classify(16))
}

func TestRiskEngine_ScoreOf(t *testing.T) {
	engine := newEngine(t)
	r := record("ABCDE1234F", 7, time.Now())

	assert.Equal(t, 7, engine.ScoreOf(r))
	assert.Equal(t, engine.Classify(engine.ScoreOf(r)), r.RiskLevel())
}

func TestRiskEngine_ScoreFor(t *testing.T) {
	engine, err := service.NewRiskEngine(service.SeverityScores{Low: 1, Medium: 8, High: 30})
	require.NoError(t, err)

	tests := []struct {
		severity valueobject.Severity
		want     int
	}{
		{valueobject.SeverityLow, 1},
		{valueobject.SeverityMedium, 8},
		{valueobject.SeverityHigh, 30},
	}
	for _, tt := range tests {
		t.Run(tt.severity.String(), func(t *testing.T) {
			got, err := engine.ScoreFor(tt.severity)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err = engine.ScoreFor(valueobject.Severity{})
	assert.ErrorIs(t, err, model.ErrValidation)
}

func TestNewRiskEngine_RejectsNegativeWeights(t *testing.T) {
	_, err := service.NewRiskEngine(service.SeverityScores{Low: -1, Medium: 10, High: 20})
	assert.ErrorContains(t, err, "severity low")
}

func TestNewRiskEngine_RejectsOversizedWeights(t *testing.T) {
	_, err := service.NewRiskEngine(service.SeverityScores{Low: 5, Medium: 10, High: model.MaxScore + 1})
	assert.ErrorIs(t, err, model.ErrInvalidScore)
	assert.ErrorContains(t, err, "severity high")
}

func TestRiskEngine_Aggregate(t *testing.T) {
	engine := newEngine(t)
	now := time.Now()

	records := []*model.AbuseRecord{
		record("john@fakebroker.com", 5, now),
		record("JOHN@fakebroker.com ", 4, now),
		record("phishing@email.com", 15, now),
		record("ABCDE1234F", 2, now),
	}

	got := engine.Aggregate(records)
	want := []service.EntityRisk{
		{Value: "phishing@email.com", TotalScore: 15, MaxScore: 15, RecordCount: 1, RiskLevel: valueobject.RiskLevelMedium},
		{Value: "john@fakebroker.com", TotalScore: 9, MaxScore: 5, RecordCount: 2, RiskLevel: valueobject.RiskLevelMedium},
		{Value: "abcde1234f", TotalScore: 2, MaxScore: 2, RecordCount: 1, RiskLevel: valueobject.RiskLevelLow},
	}

	if diff := cmp.Diff(want, got, cmp.Comparer(func(a, b valueobject.RiskLevel) bool { return a.Equal(b) })); diff != "" {
		t.Errorf("Aggregate() mismatch (-want +got):\n%s", diff)
	}
}

func TestRiskEngine_AggregateEmpty(t *testing.T) {
	assert.Empty(t, newEngine(t).Aggregate(nil))
}
