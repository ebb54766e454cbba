package valueobject

import (
	"fmt"
	"strings"
)

// RecordStatus is the review state of an abuse record.
type RecordStatus struct {
	value string
}

var (
	RecordStatusPending  = RecordStatus{value: "pending"}
	RecordStatusVerified = RecordStatus{value: "verified"}
	RecordStatusCleared  = RecordStatus{value: "cleared"}
)

// RecordStatusFromString reconstructs a RecordStatus from its string representation.
func RecordStatusFromString(s string) (RecordStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pending":
		return RecordStatusPending, nil
	case "verified":
		return RecordStatusVerified, nil
	case "cleared":
		return RecordStatusCleared, nil
	default:
		return RecordStatus{}, fmt.Errorf("invalid record status: %q", s)
	}
}

func (s RecordStatus) String() string { return s.value }

func (s RecordStatus) IsZero() bool { return s.value == "" }

func (s RecordStatus) Equal(other RecordStatus) bool { return s.value == other.value }
