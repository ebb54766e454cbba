package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/tradercheck/tradercheck/internal/domain/model"
	"github.com/tradercheck/tradercheck/internal/domain/valueobject"
)

// SeverityScores maps an allegation severity to the score a new report
// starts with.
type SeverityScores struct {
	Low    int
	Medium int
	High   int
}

// DefaultSeverityScores puts each severity in the middle or top of its band.
var DefaultSeverityScores = SeverityScores{Low: 5, Medium: 10, High: 20}

// Validate rejects weights a record could not hold.
func (s SeverityScores) Validate() error {
	var errs []error
	for name, v := range map[string]int{"low": s.Low, "medium": s.Medium, "high": s.High} {
		if err := model.ValidateScore(v); err != nil {
			errs = append(errs, fmt.Errorf("severity %s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

// EntityRisk is the aggregate risk of every record sharing one value.
type EntityRisk struct {
	Value       string
	TotalScore  int
	MaxScore    int
	RecordCount int
	RiskLevel   valueobject.RiskLevel
}

// RiskEngine is a domain service that turns scores into risk levels and
// rolls records up per entity. All methods are pure.
type RiskEngine struct {
	scores SeverityScores
}

// NewRiskEngine creates a RiskEngine with the given severity weights.
func NewRiskEngine(scores SeverityScores) (*RiskEngine, error) {
	if err := scores.Validate(); err != nil {
		return nil, fmt.Errorf("invalid severity scores: %w", err)
	}
	return &RiskEngine{scores: scores}, nil
}

// Classify maps a score to its risk level.
func (e *RiskEngine) Classify(score int) valueobject.RiskLevel {
	return valueobject.ClassifyScore(score)
}

// ScoreOf returns the score a record was authored with.
func (e *RiskEngine) ScoreOf(record *model.AbuseRecord) int {
	return record.Score()
}

// ScoreFor returns the configured starting score for a severity.
func (e *RiskEngine) ScoreFor(severity valueobject.Severity) (int, error) {
	switch severity {
	case valueobject.SeverityLow:
		return e.scores.Low, nil
	case valueobject.SeverityMedium:
		return e.scores.Medium, nil
	case valueobject.SeverityHigh:
		return e.scores.High, nil
	default:
		return 0, fmt.Errorf("%w: unknown severity %q", model.ErrValidation, severity.String())
	}
}

// Aggregate groups records by case-insensitive value and classifies the
// summed score of each group. Results are ordered by total score, highest
// first, then by value.
func (e *RiskEngine) Aggregate(records []*model.AbuseRecord) []EntityRisk {
	groups := make(map[string]*EntityRisk)
	for _, r := range records {
		key := normalize(r.Value())
		g, ok := groups[key]
		if !ok {
			g = &EntityRisk{Value: key}
			groups[key] = g
		}
		g.TotalScore += r.Score()
		g.RecordCount++
		if r.Score() > g.MaxScore {
			g.MaxScore = r.Score()
		}
	}

	out := make([]EntityRisk, 0, len(groups))
	for _, g := range groups {
		g.RiskLevel = e.Classify(g.TotalScore)
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalScore != out[j].TotalScore {
			return out[i].TotalScore > out[j].TotalScore
		}
		return out[i].Value < out[j].Value
	})
	return out
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
