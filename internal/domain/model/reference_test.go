package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradercheck/tradercheck/internal/domain/model"
	"github.com/tradercheck/tradercheck/internal/domain/valueobject"
)

func TestNewCategory(t *testing.T) {
	c, err := model.NewCategory(" Financial Fraud ", "Money related fraud", "")
	require.NoError(t, err)
	assert.Equal(t, "Financial Fraud", c.Name())
	assert.Equal(t, "text", c.InputType())

	_, err = model.NewCategory("", "x", "text")
	assert.ErrorIs(t, err, model.ErrValidation)
}

func TestNewAllegationType(t *testing.T) {
	a, err := model.NewAllegationType("Fraud", valueobject.SeverityHigh)
	require.NoError(t, err)
	assert.Equal(t, valueobject.SeverityHigh, a.Severity())

	_, err = model.NewAllegationType("Fraud", valueobject.Severity{})
	assert.ErrorIs(t, err, model.ErrValidation)

	require.NoError(t, a.Update("Non-Payment", valueobject.SeverityMedium))
	assert.Equal(t, "Non-Payment", a.Name())
}

func TestNewBroker(t *testing.T) {
	b, err := model.NewBroker("John Smith", "John@Broker1.com", "Alpha Trading")
	require.NoError(t, err)
	assert.Equal(t, "john@broker1.com", b.Email())
	assert.True(t, b.Status().IsActive())
	assert.False(t, b.CreatedAt().IsZero())

	_, err = model.NewBroker("John Smith", "not-an-email", "Alpha Trading")
	assert.ErrorIs(t, err, model.ErrValidation)

	require.NoError(t, b.Update("John Smith", "john@broker1.com", "Alpha", valueobject.BrokerStatusInactive))
	assert.False(t, b.Status().IsActive())
}

func TestNewSearchLog(t *testing.T) {
	l := model.NewSearchLog(model.SearchLogParams{
		SearchValue: "XYZ",
		Mode:        valueobject.SearchModeBasic,
		RiskLevel:   valueobject.RiskLevelLow,
	})
	assert.False(t, l.Timestamp().IsZero())
	assert.Equal(t, "XYZ", l.SearchValue())
	assert.False(t, l.Found())
}
