package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/tradercheck/tradercheck/internal/domain/model"
)

// CategoryRequest creates or, with an ID, updates a category.
type CategoryRequest struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	InputType   string    `json:"input_type"`
	ID          uuid.UUID `json:"-"`
}

// CategoryResponse is a category with its record count.
type CategoryResponse struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	InputType   string    `json:"input_type"`
	ID          uuid.UUID `json:"id"`
	RecordCount int       `json:"record_count"`
}

// FromCategory maps a category to its DTO.
func FromCategory(c *model.Category, recordCount int) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID(),
		Name:        c.Name(),
		Description: c.Description(),
		InputType:   c.InputType(),
		RecordCount: recordCount,
	}
}

// AllegationTypeRequest creates or, with an ID, updates an allegation type.
type AllegationTypeRequest struct {
	Name     string    `json:"name"`
	Severity string    `json:"severity"`
	ID       uuid.UUID `json:"-"`
}

// AllegationTypeResponse is an allegation type with the score a new report
// of that type starts with.
type AllegationTypeResponse struct {
	Name         string    `json:"name"`
	Severity     string    `json:"severity"`
	ID           uuid.UUID `json:"id"`
	DefaultScore int       `json:"default_score"`
	RecordCount  int       `json:"record_count"`
}

// FromAllegationType maps an allegation type to its DTO.
func FromAllegationType(a *model.AllegationType, defaultScore, recordCount int) AllegationTypeResponse {
	return AllegationTypeResponse{
		ID:           a.ID(),
		Name:         a.Name(),
		Severity:     a.Severity().String(),
		DefaultScore: defaultScore,
		RecordCount:  recordCount,
	}
}

// BrokerRequest creates or, with an ID, updates a broker account. Status
// is ignored on create.
type BrokerRequest struct {
	Name    string    `json:"name"`
	Email   string    `json:"email"`
	Company string    `json:"company"`
	Status  string    `json:"status"`
	ID      uuid.UUID `json:"-"`
}

// BrokerResponse is a broker with its derived complaint count.
type BrokerResponse struct {
	CreatedAt           time.Time `json:"created_at"`
	Name                string    `json:"name"`
	Email               string    `json:"email"`
	Company             string    `json:"company"`
	Status              string    `json:"status"`
	ID                  uuid.UUID `json:"id"`
	ComplaintsSubmitted int       `json:"complaints_submitted"`
}

// FromBroker maps a broker to its DTO.
func FromBroker(b *model.Broker, complaints int) BrokerResponse {
	return BrokerResponse{
		ID:                  b.ID(),
		Name:                b.Name(),
		Email:               b.Email(),
		Company:             b.Company(),
		Status:              b.Status().String(),
		CreatedAt:           b.CreatedAt(),
		ComplaintsSubmitted: complaints,
	}
}
