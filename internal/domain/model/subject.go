package model

import (
	"slices"
	"strings"
)

// Subject is the personal data of the reported trader. It is only ever
// returned by admin-facing accessors.
type Subject struct {
	Name           string
	Emails         []string
	Contact        string
	Address        string
	City           string
	Country        string
	IPs            []string
	DocumentType   string
	DocumentNumber string
}

// normalized trims every attribute and drops blank list entries.
func (s Subject) normalized() Subject {
	return Subject{
		Name:           strings.TrimSpace(s.Name),
		Emails:         compact(s.Emails),
		Contact:        strings.TrimSpace(s.Contact),
		Address:        strings.TrimSpace(s.Address),
		City:           strings.TrimSpace(s.City),
		Country:        strings.TrimSpace(s.Country),
		IPs:            compact(s.IPs),
		DocumentType:   strings.TrimSpace(s.DocumentType),
		DocumentNumber: strings.TrimSpace(s.DocumentNumber),
	}
}

// Clone returns a deep copy.
func (s Subject) Clone() Subject {
	c := s
	c.Emails = append([]string(nil), s.Emails...)
	c.IPs = append([]string(nil), s.IPs...)
	return c
}

func (s Subject) equal(o Subject) bool {
	return s.Name == o.Name && s.Contact == o.Contact && s.Address == o.Address &&
		s.City == o.City && s.Country == o.Country &&
		s.DocumentType == o.DocumentType && s.DocumentNumber == o.DocumentNumber &&
		slices.Equal(s.Emails, o.Emails) && slices.Equal(s.IPs, o.IPs)
}

func compact(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
