package model

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/tradercheck/tradercheck/internal/domain/valueobject"
)

// AllegationType classifies a report and carries the severity its initial
// score is derived from.
type AllegationType struct {
	id       uuid.UUID
	name     string
	severity valueobject.Severity
}

// NewAllegationType validates and creates an AllegationType.
func NewAllegationType(name string, severity valueobject.Severity) (*AllegationType, error) {
	a := &AllegationType{id: uuid.New()}
	if err := a.Update(name, severity); err != nil {
		return nil, err
	}
	return a, nil
}

// Update replaces the editable fields. Existing records keep their score.
func (a *AllegationType) Update(name string, severity valueobject.Severity) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: allegation type name is required", ErrValidation)
	}
	if severity.IsZero() {
		return fmt.Errorf("%w: severity is required", ErrValidation)
	}
	a.name = name
	a.severity = severity
	return nil
}

// ReconstructAllegationType rebuilds an AllegationType from persisted data.
func ReconstructAllegationType(id uuid.UUID, name string, severity valueobject.Severity) *AllegationType {
	return &AllegationType{id: id, name: name, severity: severity}
}

func (a *AllegationType) ID() uuid.UUID                  { return a.id }
func (a *AllegationType) Name() string                   { return a.name }
func (a *AllegationType) Severity() valueobject.Severity { return a.severity }
