package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/tradercheck/tradercheck/internal/domain/model"
	"github.com/tradercheck/tradercheck/internal/domain/service"
)

// SearchRequest is the input DTO for the SearchRecords use case. Mode,
// Field and MatchMode are optional.
type SearchRequest struct {
	Value      string    `json:"value"`
	Field      string    `json:"field"`
	Mode       string    `json:"mode"`
	MatchMode  string    `json:"match_mode"`
	BrokerID   uuid.UUID `json:"-"`
	CategoryID uuid.UUID `json:"category_id"`
}

// SearchResponse is the only thing a broker learns from a search.
type SearchResponse struct {
	RiskLevel string `json:"risk_level"`
	Score     int    `json:"score"`
	Found     bool   `json:"found"`
}

// FromSearchResult maps a resolver result to the response DTO.
func FromSearchResult(r service.SearchResult) SearchResponse {
	return SearchResponse{
		Found:     r.Found,
		Score:     r.Score,
		RiskLevel: r.RiskLevel.String(),
	}
}

// ClassifyResponse is the output of the ClassifyScore use case.
type ClassifyResponse struct {
	RiskLevel string `json:"risk_level"`
	Score     int    `json:"score"`
}

// SearchLogResponse is one audit entry in the admin log view.
type SearchLogResponse struct {
	Timestamp   time.Time `json:"timestamp"`
	BrokerName  string    `json:"broker_name"`
	Category    string    `json:"category"`
	Field       string    `json:"field"`
	Mode        string    `json:"mode"`
	MatchMode   string    `json:"match_mode"`
	SearchValue string    `json:"search_value"`
	RiskLevel   string    `json:"risk_level"`
	ID          uuid.UUID `json:"id"`
	BrokerID    uuid.UUID `json:"broker_id"`
	CategoryID  uuid.UUID `json:"category_id"`
	ResultScore int       `json:"result_score"`
	Found       bool      `json:"found"`
}

// ListSearchLogsRequest bounds the log listing.
type ListSearchLogsRequest struct {
	Limit int `json:"limit"`
}

// FromSearchLog maps a log entry to the admin DTO. Uncategorized searches
// show an empty category.
func FromSearchLog(l *model.SearchLog, labels Labels) SearchLogResponse {
	category := ""
	if l.CategoryID() != uuid.Nil {
		category = labels.Category(l.CategoryID())
	}
	return SearchLogResponse{
		ID:          l.ID(),
		BrokerID:    l.BrokerID(),
		BrokerName:  l.BrokerName(),
		CategoryID:  l.CategoryID(),
		Category:    category,
		Field:       l.Field().String(),
		Mode:        l.Mode().String(),
		MatchMode:   l.MatchMode().String(),
		SearchValue: l.SearchValue(),
		Found:       l.Found(),
		ResultScore: l.Score(),
		RiskLevel:   l.RiskLevel().String(),
		Timestamp:   l.Timestamp(),
	}
}
