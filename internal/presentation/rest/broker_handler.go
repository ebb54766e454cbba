package rest

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tradercheck/tradercheck/internal/application/dto"
	"github.com/tradercheck/tradercheck/internal/application/usecase"
	"github.com/tradercheck/tradercheck/internal/domain/model"
	"github.com/tradercheck/tradercheck/pkg/auth"
)

// BrokerHandler serves the endpoints a broker calls on their own behalf.
type BrokerHandler struct {
	uc     *usecase.Set
	logger *slog.Logger
}

// NewBrokerHandler creates a BrokerHandler.
func NewBrokerHandler(uc *usecase.Set, logger *slog.Logger) *BrokerHandler {
	return &BrokerHandler{uc: uc, logger: logger}
}

// Register mounts the broker endpoints. The caller has already required
// the broker role.
func (h *BrokerHandler) Register(r chi.Router) {
	r.Post("/search", h.HandleSearch)
	r.Post("/records", h.HandleReport)
	r.Get("/records/mine", h.HandleMyRecords)
}

// HandleSearch handles POST /api/v1/search.
func (h *BrokerHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.ClaimsFromContext(r.Context())

	var req dto.SearchRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	req.BrokerID = claims.UserID

	resp, err := h.uc.SearchRecords.Execute(r.Context(), req)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// HandleReport handles POST /api/v1/records.
func (h *BrokerHandler) HandleReport(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.ClaimsFromContext(r.Context())

	var req dto.ReportRecordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	req.BrokerID = claims.UserID

	resp, err := h.uc.ReportRecord.Execute(r.Context(), req)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// HandleMyRecords handles GET /api/v1/records/mine.
func (h *BrokerHandler) HandleMyRecords(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.ClaimsFromContext(r.Context())

	resp, err := h.uc.ListBrokerRecords.Execute(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// HandleClassify handles GET /api/v1/risk/classify?score=N for any role.
func (h *BrokerHandler) HandleClassify(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("score")
	score, err := strconv.Atoi(raw)
	if err != nil {
		writeError(w, r, h.logger, fmt.Errorf("%w: score must be an integer, got %q", model.ErrValidation, raw))
		return
	}
	writeJSON(w, http.StatusOK, h.uc.ClassifyScore.Execute(score))
}
