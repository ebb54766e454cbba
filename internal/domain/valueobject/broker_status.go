package valueobject

import (
	"fmt"
	"strings"
)

// BrokerStatus controls whether a broker account may report and search.
type BrokerStatus struct {
	value string
}

var (
	BrokerStatusActive   = BrokerStatus{value: "active"}
	BrokerStatusInactive = BrokerStatus{value: "inactive"}
)

// BrokerStatusFromString reconstructs a BrokerStatus from its string representation.
func BrokerStatusFromString(s string) (BrokerStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "active":
		return BrokerStatusActive, nil
	case "inactive":
		return BrokerStatusInactive, nil
	default:
		return BrokerStatus{}, fmt.Errorf("invalid broker status: %q", s)
	}
}

func (s BrokerStatus) String() string { return s.value }

func (s BrokerStatus) IsActive() bool { return s == BrokerStatusActive }

func (s BrokerStatus) IsZero() bool { return s.value == "" }

func (s BrokerStatus) Equal(other BrokerStatus) bool { return s.value == other.value }
