package valueobject

import (
	"fmt"
	"strings"
)

// MatchMode selects how a query value is compared with record values.
// The zero MatchMode means "pick the default for the query".
type MatchMode struct {
	value string
}

var (
	MatchModeExact    = MatchMode{value: "exact"}
	MatchModeContains = MatchMode{value: "contains"}
)

// MatchModeFromString parses a match mode. An empty string yields the zero value.
func MatchModeFromString(s string) (MatchMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return MatchMode{}, nil
	case "exact":
		return MatchModeExact, nil
	case "contains":
		return MatchModeContains, nil
	default:
		return MatchMode{}, fmt.Errorf("invalid match mode: %q", s)
	}
}

func (m MatchMode) String() string { return m.value }

func (m MatchMode) IsZero() bool { return m.value == "" }

// SearchMode is the search page a query came from. Each mode exposes a
// fixed set of fields.
type SearchMode struct {
	value string
}

var (
	SearchModeBasic      = SearchMode{value: "basic"}
	SearchModeAdvanced   = SearchMode{value: "advanced"}
	SearchModeAdditional = SearchMode{value: "additional"}
)

// SearchModeFromString parses a search mode. An empty string means basic.
func SearchModeFromString(s string) (SearchMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "basic":
		return SearchModeBasic, nil
	case "advanced":
		return SearchModeAdvanced, nil
	case "additional":
		return SearchModeAdditional, nil
	default:
		return SearchMode{}, fmt.Errorf("invalid search mode: %q", s)
	}
}

func (m SearchMode) String() string { return m.value }

// Allows reports whether field may be queried in this mode. The unset
// field, which targets the record value only, is allowed everywhere.
func (m SearchMode) Allows(field SearchField) bool {
	if field.IsZero() || field == SearchFieldValue {
		return true
	}
	switch m {
	case SearchModeBasic:
		return field == SearchFieldName || field == SearchFieldEmail
	case SearchModeAdvanced:
		return field == SearchFieldName || field == SearchFieldEmail ||
			field == SearchFieldContact || field == SearchFieldAddress
	case SearchModeAdditional:
		return field == SearchFieldIP || field == SearchFieldDocument
	default:
		return false
	}
}

// SearchField names the subject attribute a query targets in addition to
// the record value.
type SearchField struct {
	value string
}

var (
	SearchFieldValue    = SearchField{value: "value"}
	SearchFieldName     = SearchField{value: "name"}
	SearchFieldEmail    = SearchField{value: "email"}
	SearchFieldContact  = SearchField{value: "contact"}
	SearchFieldAddress  = SearchField{value: "address"}
	SearchFieldIP       = SearchField{value: "ip"}
	SearchFieldDocument = SearchField{value: "document"}
)

// SearchFieldFromString parses a field. An empty string yields the zero value.
func SearchFieldFromString(s string) (SearchField, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return SearchField{}, nil
	case "value":
		return SearchFieldValue, nil
	case "name":
		return SearchFieldName, nil
	case "email":
		return SearchFieldEmail, nil
	case "contact", "phone":
		return SearchFieldContact, nil
	case "address":
		return SearchFieldAddress, nil
	case "ip":
		return SearchFieldIP, nil
	case "document":
		return SearchFieldDocument, nil
	default:
		return SearchField{}, fmt.Errorf("invalid search field: %q", s)
	}
}

func (f SearchField) String() string { return f.value }

func (f SearchField) IsZero() bool { return f.value == "" }
