package valueobject

import (
	"fmt"
	"strings"
)

// Severity is carried by an allegation type and drives the score a new
// report starts with.
type Severity struct {
	value string
}

var (
	SeverityLow    = Severity{value: "low"}
	SeverityMedium = Severity{value: "medium"}
	SeverityHigh   = Severity{value: "high"}
)

// SeverityFromString reconstructs a Severity from its string representation.
func SeverityFromString(s string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return SeverityLow, nil
	case "medium":
		return SeverityMedium, nil
	case "high":
		return SeverityHigh, nil
	default:
		return Severity{}, fmt.Errorf("invalid severity: %q", s)
	}
}

func (s Severity) String() string { return s.value }

func (s Severity) IsZero() bool { return s.value == "" }

func (s Severity) Equal(other Severity) bool { return s.value == other.value }
