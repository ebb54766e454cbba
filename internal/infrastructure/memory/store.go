// Package memory holds mutex-guarded implementations of the store ports.
// A Store is created per process or per test and injected; there is no
// package-level state.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/tradercheck/tradercheck/internal/domain/model"
	"github.com/tradercheck/tradercheck/internal/domain/port"
)

// Store keeps every entity in maps behind one lock so that reference checks
// and deletes are atomic with respect to each other.
type Store struct {
	mu              sync.RWMutex
	records         map[uuid.UUID]*model.AbuseRecord
	categories      map[uuid.UUID]*model.Category
	allegationTypes map[uuid.UUID]*model.AllegationType
	brokers         map[uuid.UUID]*model.Broker
	searchLogs      []*model.SearchLog
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		records:         make(map[uuid.UUID]*model.AbuseRecord),
		categories:      make(map[uuid.UUID]*model.Category),
		allegationTypes: make(map[uuid.UUID]*model.AllegationType),
		brokers:         make(map[uuid.UUID]*model.Broker),
	}
}

// Repositories exposes the store through the port interfaces.
func (s *Store) Repositories() port.Repositories {
	return port.Repositories{
		Records:         s.Records(),
		Categories:      s.Categories(),
		AllegationTypes: s.AllegationTypes(),
		Brokers:         s.Brokers(),
		SearchLogs:      s.SearchLogs(),
	}
}

// Records returns the record repository view.
func (s *Store) Records() *RecordRepository { return &RecordRepository{s: s} }

// Categories returns the category repository view.
func (s *Store) Categories() *CategoryRepository { return &CategoryRepository{s: s} }

// AllegationTypes returns the allegation type repository view.
func (s *Store) AllegationTypes() *AllegationTypeRepository {
	return &AllegationTypeRepository{s: s}
}

// Brokers returns the broker repository view.
func (s *Store) Brokers() *BrokerRepository { return &BrokerRepository{s: s} }

// SearchLogs returns the search log repository view.
func (s *Store) SearchLogs() *SearchLogRepository { return &SearchLogRepository{s: s} }

// countLocked counts records satisfying pred. Callers hold s.mu.
func (s *Store) countLocked(pred func(*model.AbuseRecord) bool) int {
	n := 0
	for _, r := range s.records {
		if pred(r) {
			n++
		}
	}
	return n
}

// RecordRepository implements port.RecordRepository.
type RecordRepository struct {
	s *Store
}

var _ port.RecordRepository = (*RecordRepository)(nil)

// Save inserts a new record or applies an optimistic update.
func (r *RecordRepository) Save(_ context.Context, record *model.AbuseRecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.records[record.ID()]
	switch {
	case !ok && record.Version() > 1:
		return fmt.Errorf("record %s: %w", record.ID(), model.ErrNotFound)
	case ok && stored.Version() != record.Version()-1:
		return fmt.Errorf("record %s: stored version %d, saving version %d: %w",
			record.ID(), stored.Version(), record.Version(), model.ErrVersionConflict)
	}
	if err := r.s.checkReferences(record); err != nil {
		return err
	}
	r.s.records[record.ID()] = record.Clone()
	return nil
}

// checkReferences mirrors the foreign keys of the abuse_records table.
// Callers hold s.mu.
func (s *Store) checkReferences(record *model.AbuseRecord) error {
	if _, ok := s.categories[record.CategoryID()]; !ok {
		return fmt.Errorf("record %s references missing category %s: %w",
			record.ID(), record.CategoryID(), model.ErrValidation)
	}
	if _, ok := s.allegationTypes[record.AllegationTypeID()]; !ok {
		return fmt.Errorf("record %s references missing allegation type %s: %w",
			record.ID(), record.AllegationTypeID(), model.ErrValidation)
	}
	if _, ok := s.brokers[record.ReportedBy()]; !ok {
		return fmt.Errorf("record %s references missing broker %s: %w",
			record.ID(), record.ReportedBy(), model.ErrValidation)
	}
	return nil
}

// FindByID returns a copy of the record.
func (r *RecordRepository) FindByID(_ context.Context, id uuid.UUID) (*model.AbuseRecord, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	stored, ok := r.s.records[id]
	if !ok {
		return nil, fmt.Errorf("record %s: %w", id, model.ErrNotFound)
	}
	return stored.Clone(), nil
}

// List returns copies of the matching records, newest first.
func (r *RecordRepository) List(_ context.Context, filter port.RecordFilter) ([]*model.AbuseRecord, error) {
	r.s.mu.RLock()
	out := make([]*model.AbuseRecord, 0, len(r.s.records))
	for _, rec := range r.s.records {
		if matchesFilter(rec, filter) {
			out = append(out, rec.Clone())
		}
	}
	r.s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt().Equal(out[j].CreatedAt()) {
			return out[i].CreatedAt().After(out[j].CreatedAt())
		}
		return out[i].ID().String() < out[j].ID().String()
	})

	if filter.Offset > 0 {
		if filter.Offset >= len(out) {
			return []*model.AbuseRecord{}, nil
		}
		out = out[filter.Offset:]
	}
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func matchesFilter(rec *model.AbuseRecord, f port.RecordFilter) bool {
	switch {
	case !f.Status.IsZero() && !rec.Status().Equal(f.Status):
		return false
	case !f.RiskLevel.IsZero() && !rec.RiskLevel().Equal(f.RiskLevel):
		return false
	case f.CategoryID != uuid.Nil && rec.CategoryID() != f.CategoryID:
		return false
	case f.ReportedBy != uuid.Nil && rec.ReportedBy() != f.ReportedBy:
		return false
	}
	return true
}

// Delete removes a record.
func (r *RecordRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.records[id]; !ok {
		return fmt.Errorf("record %s: %w", id, model.ErrNotFound)
	}
	delete(r.s.records, id)
	return nil
}

// CountByReporter counts the records filed by a broker.
func (r *RecordRepository) CountByReporter(_ context.Context, brokerID uuid.UUID) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.countLocked(func(rec *model.AbuseRecord) bool { return rec.ReportedBy() == brokerID }), nil
}

// CountByCategory counts the records under a category.
func (r *RecordRepository) CountByCategory(_ context.Context, categoryID uuid.UUID) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.countLocked(func(rec *model.AbuseRecord) bool { return rec.CategoryID() == categoryID }), nil
}

// CountByAllegationType counts the records carrying an allegation type.
func (r *RecordRepository) CountByAllegationType(_ context.Context, allegationTypeID uuid.UUID) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.countLocked(func(rec *model.AbuseRecord) bool { return rec.AllegationTypeID() == allegationTypeID }), nil
}

// CategoryRepository implements port.CategoryRepository.
type CategoryRepository struct {
	s *Store
}

var _ port.CategoryRepository = (*CategoryRepository)(nil)

func cloneCategory(c *model.Category) *model.Category {
	return model.ReconstructCategory(c.ID(), c.Name(), c.Description(), c.InputType())
}

// Save inserts or replaces a category. Names are unique case-insensitively.
func (r *CategoryRepository) Save(_ context.Context, category *model.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for id, existing := range r.s.categories {
		if id != category.ID() && strings.EqualFold(existing.Name(), category.Name()) {
			return fmt.Errorf("category %q: %w", category.Name(), model.ErrDuplicate)
		}
	}
	r.s.categories[category.ID()] = cloneCategory(category)
	return nil
}

// FindByID returns a copy of the category.
func (r *CategoryRepository) FindByID(_ context.Context, id uuid.UUID) (*model.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.categories[id]
	if !ok {
		return nil, fmt.Errorf("category %s: %w", id, model.ErrNotFound)
	}
	return cloneCategory(c), nil
}

// List returns every category ordered by name.
func (r *CategoryRepository) List(_ context.Context) ([]*model.Category, error) {
	r.s.mu.RLock()
	out := make([]*model.Category, 0, len(r.s.categories))
	for _, c := range r.s.categories {
		out = append(out, cloneCategory(c))
	}
	r.s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out, nil
}

// Delete removes an unreferenced category.
func (r *CategoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.categories[id]; !ok {
		return fmt.Errorf("category %s: %w", id, model.ErrNotFound)
	}
	if n := r.s.countLocked(func(rec *model.AbuseRecord) bool { return rec.CategoryID() == id }); n > 0 {
		return fmt.Errorf("category %s is used by %d records: %w", id, n, model.ErrReferenced)
	}
	delete(r.s.categories, id)
	return nil
}

// AllegationTypeRepository implements port.AllegationTypeRepository.
type AllegationTypeRepository struct {
	s *Store
}

var _ port.AllegationTypeRepository = (*AllegationTypeRepository)(nil)

func cloneAllegationType(a *model.AllegationType) *model.AllegationType {
	return model.ReconstructAllegationType(a.ID(), a.Name(), a.Severity())
}

// Save inserts or replaces an allegation type.
func (r *AllegationTypeRepository) Save(_ context.Context, allegationType *model.AllegationType) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for id, existing := range r.s.allegationTypes {
		if id != allegationType.ID() && strings.EqualFold(existing.Name(), allegationType.Name()) {
			return fmt.Errorf("allegation type %q: %w", allegationType.Name(), model.ErrDuplicate)
		}
	}
	r.s.allegationTypes[allegationType.ID()] = cloneAllegationType(allegationType)
	return nil
}

// FindByID returns a copy of the allegation type.
func (r *AllegationTypeRepository) FindByID(_ context.Context, id uuid.UUID) (*model.AllegationType, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	a, ok := r.s.allegationTypes[id]
	if !ok {
		return nil, fmt.Errorf("allegation type %s: %w", id, model.ErrNotFound)
	}
	return cloneAllegationType(a), nil
}

// List returns every allegation type ordered by name.
func (r *AllegationTypeRepository) List(_ context.Context) ([]*model.AllegationType, error) {
	r.s.mu.RLock()
	out := make([]*model.AllegationType, 0, len(r.s.allegationTypes))
	for _, a := range r.s.allegationTypes {
		out = append(out, cloneAllegationType(a))
	}
	r.s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out, nil
}

// Delete removes an unreferenced allegation type.
func (r *AllegationTypeRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.allegationTypes[id]; !ok {
		return fmt.Errorf("allegation type %s: %w", id, model.ErrNotFound)
	}
	if n := r.s.countLocked(func(rec *model.AbuseRecord) bool { return rec.AllegationTypeID() == id }); n > 0 {
		return fmt.Errorf("allegation type %s is used by %d records: %w", id, n, model.ErrReferenced)
	}
	delete(r.s.allegationTypes, id)
	return nil
}

// BrokerRepository implements port.BrokerRepository.
type BrokerRepository struct {
	s *Store
}

var _ port.BrokerRepository = (*BrokerRepository)(nil)

func cloneBroker(b *model.Broker) *model.Broker {
	return model.ReconstructBroker(b.ID(), b.Name(), b.Email(), b.Company(), b.Status(), b.CreatedAt())
}

// Save inserts or replaces a broker. Emails are unique.
func (r *BrokerRepository) Save(_ context.Context, broker *model.Broker) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for id, existing := range r.s.brokers {
		if id != broker.ID() && existing.Email() == broker.Email() {
			return fmt.Errorf("broker email %q: %w", broker.Email(), model.ErrDuplicate)
		}
	}
	r.s.brokers[broker.ID()] = cloneBroker(broker)
	return nil
}

// FindByID returns a copy of the broker.
func (r *BrokerRepository) FindByID(_ context.Context, id uuid.UUID) (*model.Broker, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	b, ok := r.s.brokers[id]
	if !ok {
		return nil, fmt.Errorf("broker %s: %w", id, model.ErrNotFound)
	}
	return cloneBroker(b), nil
}

// List returns every broker, oldest account first.
func (r *BrokerRepository) List(_ context.Context) ([]*model.Broker, error) {
	r.s.mu.RLock()
	out := make([]*model.Broker, 0, len(r.s.brokers))
	for _, b := range r.s.brokers {
		out = append(out, cloneBroker(b))
	}
	r.s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt().Equal(out[j].CreatedAt()) {
			return out[i].CreatedAt().Before(out[j].CreatedAt())
		}
		return out[i].ID().String() < out[j].ID().String()
	})
	return out, nil
}

// Delete removes a broker that has filed no records.
func (r *BrokerRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.brokers[id]; !ok {
		return fmt.Errorf("broker %s: %w", id, model.ErrNotFound)
	}
	if n := r.s.countLocked(func(rec *model.AbuseRecord) bool { return rec.ReportedBy() == id }); n > 0 {
		return fmt.Errorf("broker %s filed %d records: %w", id, n, model.ErrReferenced)
	}
	delete(r.s.brokers, id)
	return nil
}

// SearchLogRepository implements port.SearchLogRepository. Entries are
// immutable so they are shared without copying.
type SearchLogRepository struct {
	s *Store
}

var _ port.SearchLogRepository = (*SearchLogRepository)(nil)

// Append adds an entry to the log.
func (r *SearchLogRepository) Append(_ context.Context, entry *model.SearchLog) error {
	if entry == nil {
		return fmt.Errorf("%w: nil search log entry", model.ErrValidation)
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.searchLogs = append(r.s.searchLogs, entry)
	return nil
}

// List returns up to limit entries, newest first. A non-positive limit
// returns everything.
func (r *SearchLogRepository) List(_ context.Context, limit int) ([]*model.SearchLog, error) {
	r.s.mu.RLock()
	out := make([]*model.SearchLog, len(r.s.searchLogs))
	copy(out, r.s.searchLogs)
	r.s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp().After(out[j].Timestamp()) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Count returns the number of entries.
func (r *SearchLogRepository) Count(_ context.Context) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.s.searchLogs), nil
}
