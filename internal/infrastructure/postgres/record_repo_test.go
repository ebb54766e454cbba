package postgres

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tradercheck/tradercheck/internal/domain/valueobject"
)

func TestRiskLevelCondition(t *testing.T) {
	tests := []struct {
		level    valueobject.RiskLevel
		wantSQL  string
		wantArgs []any
	}{
		{valueobject.RiskLevelLow, "score <= $1", []any{5}},
		{valueobject.RiskLevelMedium, "score > $1 AND score <= $2", []any{5, 15}},
		{valueobject.RiskLevelHigh, "score > $1", []any{15}},
	}

	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			var args []any
			arg := func(v any) string {
				args = append(args, v)
				return fmt.Sprintf("$%d", len(args))
			}
			assert.Equal(t, tt.wantSQL, riskLevelCondition(tt.level, arg))
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestNewRepositories(t *testing.T) {
	repos := NewRepositories(nil)
	assert.NotNil(t, repos.Records)
	assert.NotNil(t, repos.Categories)
	assert.NotNil(t, repos.AllegationTypes)
	assert.NotNil(t, repos.Brokers)
	assert.NotNil(t, repos.SearchLogs)
}
