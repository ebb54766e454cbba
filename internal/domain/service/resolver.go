package service

import (
	"strings"

	"github.com/google/uuid"

	"github.com/tradercheck/tradercheck/internal/domain/model"
	"github.com/tradercheck/tradercheck/internal/domain/valueobject"
)

// Query is one lookup against the record set. A nil CategoryID searches
// every category; a zero MatchMode picks the default for the query.
type Query struct {
	CategoryID uuid.UUID
	Field      valueobject.SearchField
	Value      string
	MatchMode  valueobject.MatchMode
}

// SearchResult is everything a broker learns from a search. It must never
// grow fields that expose the matched record.
type SearchResult struct {
	Found     bool
	Score     int
	RiskLevel valueobject.RiskLevel
}

// NotFound is the result of a search with no match.
func NotFound() SearchResult {
	return SearchResult{Found: false, Score: 0, RiskLevel: valueobject.RiskLevelLow}
}

// Resolver is a domain service matching queries against records.
type Resolver struct{}

// NewResolver creates a new Resolver instance.
func NewResolver() *Resolver {
	return &Resolver{}
}

// EffectiveMatchMode returns the explicit mode, or exact for categorized
// lookups and contains for free-text ones.
func EffectiveMatchMode(q Query) valueobject.MatchMode {
	if !q.MatchMode.IsZero() {
		return q.MatchMode
	}
	if q.CategoryID != uuid.Nil {
		return valueobject.MatchModeExact
	}
	return valueobject.MatchModeContains
}

// Resolve returns the best match for q. Among several matches the highest
// score wins, then the most recently created record, then the lowest id.
func (r *Resolver) Resolve(records []*model.AbuseRecord, q Query) SearchResult {
	best := r.BestMatch(records, q)
	if best == nil {
		return NotFound()
	}
	return SearchResult{
		Found:     true,
		Score:     best.Score(),
		RiskLevel: best.RiskLevel(),
	}
}

// BestMatch returns the record Resolve would summarize, or nil. Admin
// tooling only; broker-facing code must go through Resolve.
func (r *Resolver) BestMatch(records []*model.AbuseRecord, q Query) *model.AbuseRecord {
	needle := normalize(q.Value)
	if needle == "" {
		return nil
	}
	mode := EffectiveMatchMode(q)

	var best *model.AbuseRecord
	for _, rec := range records {
		if !matches(rec, q, needle, mode) {
			continue
		}
		if best == nil || outranks(rec, best) {
			best = rec
		}
	}
	return best
}

// Matches reports whether a single record satisfies q.
func (r *Resolver) Matches(rec *model.AbuseRecord, q Query) bool {
	needle := normalize(q.Value)
	if needle == "" {
		return false
	}
	return matches(rec, q, needle, EffectiveMatchMode(q))
}

func matches(rec *model.AbuseRecord, q Query, needle string, mode valueobject.MatchMode) bool {
	if q.CategoryID != uuid.Nil && rec.CategoryID() != q.CategoryID {
		return false
	}
	for _, candidate := range candidates(rec, q.Field) {
		if compare(normalize(candidate), needle, mode) {
			return true
		}
	}
	return false
}

func compare(candidate, needle string, mode valueobject.MatchMode) bool {
	if candidate == "" {
		return false
	}
	if mode == valueobject.MatchModeExact {
		return candidate == needle
	}
	return strings.Contains(candidate, needle)
}

// candidates lists the strings a query may match: always the record value,
// plus the subject attribute the field selects.
func candidates(rec *model.AbuseRecord, field valueobject.SearchField) []string {
	out := []string{rec.Value()}
	if field.IsZero() || field == valueobject.SearchFieldValue {
		return out
	}

	subject := rec.Subject()
	switch field {
	case valueobject.SearchFieldName:
		out = append(out, subject.Name)
	case valueobject.SearchFieldEmail:
		out = append(out, subject.Emails...)
	case valueobject.SearchFieldContact:
		out = append(out, subject.Contact)
	case valueobject.SearchFieldAddress:
		out = append(out, subject.Address)
	case valueobject.SearchFieldIP:
		out = append(out, subject.IPs...)
	case valueobject.SearchFieldDocument:
		out = append(out, subject.DocumentNumber)
	}
	return out
}

func outranks(a, b *model.AbuseRecord) bool {
	if a.Score() != b.Score() {
		return a.Score() > b.Score()
	}
	if !a.CreatedAt().Equal(b.CreatedAt()) {
		return a.CreatedAt().After(b.CreatedAt())
	}
	return a.ID().String() < b.ID().String()
}
