package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/tradercheck/tradercheck/internal/domain/model"
)

// SubjectDTO is the personal data block of a record. It only appears in
// report requests and admin responses.
type SubjectDTO struct {
	Emails         []string `json:"emails,omitempty"`
	IPs            []string `json:"ips,omitempty"`
	Name           string   `json:"name,omitempty"`
	Contact        string   `json:"contact,omitempty"`
	Address        string   `json:"address,omitempty"`
	City           string   `json:"city,omitempty"`
	Country        string   `json:"country,omitempty"`
	DocumentType   string   `json:"document_type,omitempty"`
	DocumentNumber string   `json:"document_number,omitempty"`
}

// ToModel converts the DTO to the domain value.
func (s SubjectDTO) ToModel() model.Subject {
	return model.Subject{
		Name:           s.Name,
		Emails:         s.Emails,
		Contact:        s.Contact,
		Address:        s.Address,
		City:           s.City,
		Country:        s.Country,
		IPs:            s.IPs,
		DocumentType:   s.DocumentType,
		DocumentNumber: s.DocumentNumber,
	}
}

// SubjectFromModel maps the domain value to its DTO.
func SubjectFromModel(s model.Subject) SubjectDTO {
	return SubjectDTO{
		Name:           s.Name,
		Emails:         s.Emails,
		Contact:        s.Contact,
		Address:        s.Address,
		City:           s.City,
		Country:        s.Country,
		IPs:            s.IPs,
		DocumentType:   s.DocumentType,
		DocumentNumber: s.DocumentNumber,
	}
}

// ReportRecordRequest is the input DTO for the ReportRecord use case.
// BrokerID comes from the caller's token, never from the body.
type ReportRecordRequest struct {
	Subject          SubjectDTO `json:"subject"`
	Value            string     `json:"value"`
	Description      string     `json:"description"`
	SubCategory      string     `json:"sub_category"`
	BrokerID         uuid.UUID  `json:"-"`
	CategoryID       uuid.UUID  `json:"category_id"`
	AllegationTypeID uuid.UUID  `json:"allegation_type_id"`
}

// BrokerRecordResponse is a record as its reporter sees it: status and
// risk only, no subject data.
type BrokerRecordResponse struct {
	CreatedAt      time.Time `json:"created_at"`
	Value          string    `json:"value"`
	Category       string    `json:"category"`
	AllegationType string    `json:"allegation_type"`
	Status         string    `json:"status"`
	RiskLevel      string    `json:"risk_level"`
	ID             uuid.UUID `json:"id"`
	Score          int       `json:"score"`
}

// MyRecordsResponse lists a broker's own complaints.
type MyRecordsResponse struct {
	Records  []BrokerRecordResponse `json:"records"`
	Total    int                    `json:"total"`
	Pending  int                    `json:"pending"`
	Verified int                    `json:"verified"`
}

// RecordResponse is the full admin view of a record.
type RecordResponse struct {
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
	Subject          SubjectDTO `json:"subject"`
	Value            string     `json:"value"`
	Category         string     `json:"category"`
	AllegationType   string     `json:"allegation_type"`
	ReporterName     string     `json:"reporter_name"`
	Status           string     `json:"status"`
	RiskLevel        string     `json:"risk_level"`
	Description      string     `json:"description"`
	SubCategory      string     `json:"sub_category"`
	ID               uuid.UUID  `json:"id"`
	CategoryID       uuid.UUID  `json:"category_id"`
	AllegationTypeID uuid.UUID  `json:"allegation_type_id"`
	ReportedBy       uuid.UUID  `json:"reported_by"`
	Score            int        `json:"score"`
	Version          int        `json:"version"`
}

// ListRecordsRequest filters the admin record listing. Empty strings and
// nil ids do not filter.
type ListRecordsRequest struct {
	Status     string    `json:"status"`
	RiskLevel  string    `json:"risk_level"`
	CategoryID uuid.UUID `json:"category_id"`
	ReportedBy uuid.UUID `json:"reported_by"`
	Limit      int       `json:"limit"`
	Offset     int       `json:"offset"`
}

// UpdateRecordRequest is an admin edit. ExpectedVersion must match the
// stored version; nil fields are left unchanged.
type UpdateRecordRequest struct {
	Score           *int        `json:"score,omitempty"`
	Description     *string     `json:"description,omitempty"`
	SubCategory     *string     `json:"sub_category,omitempty"`
	Subject         *SubjectDTO `json:"subject,omitempty"`
	RecordID        uuid.UUID   `json:"-"`
	ExpectedVersion int         `json:"version"`
}

// ReviewRecordRequest moves a record to a new status.
type ReviewRecordRequest struct {
	Status          string    `json:"status"`
	RecordID        uuid.UUID `json:"-"`
	ExpectedVersion int       `json:"version,omitempty"`
}

// FromRecord maps a record to the admin DTO.
func FromRecord(r *model.AbuseRecord, labels Labels) RecordResponse {
	return RecordResponse{
		ID:               r.ID(),
		CategoryID:       r.CategoryID(),
		Category:         labels.Category(r.CategoryID()),
		AllegationTypeID: r.AllegationTypeID(),
		AllegationType:   labels.AllegationType(r.AllegationTypeID()),
		ReportedBy:       r.ReportedBy(),
		ReporterName:     labels.Broker(r.ReportedBy()),
		Value:            r.Value(),
		Score:            r.Score(),
		RiskLevel:        r.RiskLevel().String(),
		Status:           r.Status().String(),
		Description:      r.Description(),
		SubCategory:      r.SubCategory(),
		Subject:          SubjectFromModel(r.Subject()),
		Version:          r.Version(),
		CreatedAt:        r.CreatedAt(),
		UpdatedAt:        r.UpdatedAt(),
	}
}

// FromRecordForBroker maps a record to the reporter's DTO.
func FromRecordForBroker(r *model.AbuseRecord, labels Labels) BrokerRecordResponse {
	return BrokerRecordResponse{
		ID:             r.ID(),
		Value:          r.Value(),
		Category:       labels.Category(r.CategoryID()),
		AllegationType: labels.AllegationType(r.AllegationTypeID()),
		Status:         r.Status().String(),
		Score:          r.Score(),
		RiskLevel:      r.RiskLevel().String(),
		CreatedAt:      r.CreatedAt(),
	}
}
