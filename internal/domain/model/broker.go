package model

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tradercheck/tradercheck/internal/domain/valueobject"
)

// Broker is a reporting account. The number of complaints a broker has
// submitted is not part of the entity; it is counted from the records.
type Broker struct {
	createdAt time.Time
	name      string
	email     string
	company   string
	status    valueobject.BrokerStatus
	id        uuid.UUID
}

// NewBroker validates and creates an active Broker.
func NewBroker(name, email, company string) (*Broker, error) {
	b := &Broker{id: uuid.New(), createdAt: time.Now().UTC()}
	if err := b.Update(name, email, company, valueobject.BrokerStatusActive); err != nil {
		return nil, err
	}
	return b, nil
}

// Update replaces the editable fields.
func (b *Broker) Update(name, email, company string, status valueobject.BrokerStatus) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: broker name is required", ErrValidation)
	}
	addr, err := mail.ParseAddress(strings.TrimSpace(email))
	if err != nil {
		return fmt.Errorf("%w: invalid broker email %q", ErrValidation, email)
	}
	if status.IsZero() {
		return fmt.Errorf("%w: broker status is required", ErrValidation)
	}
	b.name = name
	b.email = strings.ToLower(addr.Address)
	b.company = strings.TrimSpace(company)
	b.status = status
	return nil
}

// ReconstructBroker rebuilds a Broker from persisted data.
func ReconstructBroker(id uuid.UUID, name, email, company string, status valueobject.BrokerStatus, createdAt time.Time) *Broker {
	return &Broker{id: id, name: name, email: email, company: company, status: status, createdAt: createdAt}
}

func (b *Broker) ID() uuid.UUID                    { return b.id }
func (b *Broker) Name() string                     { return b.name }
func (b *Broker) Email() string                    { return b.email }
func (b *Broker) Company() string                  { return b.company }
func (b *Broker) Status() valueobject.BrokerStatus { return b.status }
func (b *Broker) CreatedAt() time.Time             { return b.createdAt }
