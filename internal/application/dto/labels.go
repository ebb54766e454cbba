package dto

import (
	"github.com/google/uuid"

	"github.com/tradercheck/tradercheck/internal/domain/model"
)

// UnknownLabel is shown for references whose target no longer exists.
const UnknownLabel = "Unknown"

// Labels resolves reference ids to display names for admin views.
type Labels struct {
	categories      map[uuid.UUID]string
	allegationTypes map[uuid.UUID]string
	brokers         map[uuid.UUID]string
}

// NewLabels indexes the reference entities by id.
func NewLabels(categories []*model.Category, allegationTypes []*model.AllegationType, brokers []*model.Broker) Labels {
	l := Labels{
		categories:      make(map[uuid.UUID]string, len(categories)),
		allegationTypes: make(map[uuid.UUID]string, len(allegationTypes)),
		brokers:         make(map[uuid.UUID]string, len(brokers)),
	}
	for _, c := range categories {
		l.categories[c.ID()] = c.Name()
	}
	for _, a := range allegationTypes {
		l.allegationTypes[a.ID()] = a.Name()
	}
	for _, b := range brokers {
		l.brokers[b.ID()] = b.Name()
	}
	return l
}

func (l Labels) Category(id uuid.UUID) string       { return lookup(l.categories, id) }
func (l Labels) AllegationType(id uuid.UUID) string { return lookup(l.allegationTypes, id) }
func (l Labels) Broker(id uuid.UUID) string         { return lookup(l.brokers, id) }

func lookup(m map[uuid.UUID]string, id uuid.UUID) string {
	if name, ok := m[id]; ok {
		return name
	}
	return UnknownLabel
}
