package valueobject

import (
	"fmt"
	"strings"
)

// Band ceilings, inclusive. Anything above MediumRiskCeiling is high.
const (
	LowRiskCeiling    = 5
	MediumRiskCeiling = 15
)

// RiskLevel is the coarse bucket shown to brokers in place of record details.
type RiskLevel struct {
	value string
}

var (
	RiskLevelLow    = RiskLevel{value: "low"}
	RiskLevelMedium = RiskLevel{value: "medium"}
	RiskLevelHigh   = RiskLevel{value: "high"}
)

// RiskLevelFromString reconstructs a RiskLevel from its string representation.
func RiskLevelFromString(s string) (RiskLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return RiskLevelLow, nil
	case "medium":
		return RiskLevelMedium, nil
	case "high":
		return RiskLevelHigh, nil
	default:
		return RiskLevel{}, fmt.Errorf("invalid risk level: %q", s)
	}
}

// ClassifyScore maps a score to its band. It is total over int: negative
// scores, which records never carry, fall into the low band.
func ClassifyScore(score int) RiskLevel {
	switch {
	case score <= LowRiskCeiling:
		return RiskLevelLow
	case score <= MediumRiskCeiling:
		return RiskLevelMedium
	default:
		return RiskLevelHigh
	}
}

// String returns the string representation.
func (r RiskLevel) String() string {
	return r.value
}

// Rank orders levels: low=1, medium=2, high=3, unset=0.
func (r RiskLevel) Rank() int {
	switch r {
	case RiskLevelLow:
		return 1
	case RiskLevelMedium:
		return 2
	case RiskLevelHigh:
		return 3
	default:
		return 0
	}
}

// IsZero returns true if the RiskLevel has not been set.
func (r RiskLevel) IsZero() bool {
	return r.value == ""
}

// Equal checks equality with another RiskLevel.
func (r RiskLevel) Equal(other RiskLevel) bool {
	return r.value == other.value
}
