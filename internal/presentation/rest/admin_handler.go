package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/tradercheck/tradercheck/internal/application/dto"
	"github.com/tradercheck/tradercheck/internal/application/usecase"
)

// AdminHandler serves the record review, reference data and reporting
// endpoints. Every route requires the admin role.
type AdminHandler struct {
	uc     *usecase.Set
	logger *slog.Logger
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(uc *usecase.Set, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{uc: uc, logger: logger}
}

// Register mounts the admin endpoints.
func (h *AdminHandler) Register(r chi.Router) {
	r.Route("/records", func(r chi.Router) {
		r.Get("/", h.HandleListRecords)
		r.Get("/{id}", h.HandleGetRecord)
		r.Patch("/{id}", h.HandleUpdateRecord)
		r.Post("/{id}/review", h.HandleReviewRecord)
		r.Delete("/{id}", h.HandleDeleteRecord)
	})

	r.Route("/categories", func(r chi.Router) {
		r.Get("/", h.HandleListCategories)
		r.Post("/", h.HandleCreateCategory)
		r.Put("/{id}", h.HandleUpdateCategory)
		r.Delete("/{id}", h.deleteHandler(h.uc.Categories.Delete))
	})

	r.Route("/allegation-types", func(r chi.Router) {
		r.Get("/", h.HandleListAllegationTypes)
		r.Post("/", h.HandleCreateAllegationType)
		r.Put("/{id}", h.HandleUpdateAllegationType)
		r.Delete("/{id}", h.deleteHandler(h.uc.AllegationTypes.Delete))
	})

	r.Route("/brokers", func(r chi.Router) {
		r.Get("/", h.HandleListBrokers)
		r.Post("/", h.HandleCreateBroker)
		r.Put("/{id}", h.HandleUpdateBroker)
		r.Delete("/{id}", h.deleteHandler(h.uc.Brokers.Delete))
	})

	r.Get("/search-logs", h.HandleSearchLogs)
	r.Get("/dashboard", h.HandleDashboard)
	r.Get("/profiles", h.HandleProfiles)
}

// HandleListRecords handles GET /admin/records with optional status,
// risk_level, category_id, reported_by, limit and offset filters.
func (h *AdminHandler) HandleListRecords(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := dto.ListRecordsRequest{
		Status:    q.Get("status"),
		RiskLevel: q.Get("risk_level"),
	}

	var err error
	if req.CategoryID, err = queryUUID(r, "category_id"); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	if req.ReportedBy, err = queryUUID(r, "reported_by"); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	if req.Limit, err = queryInt(r, "limit"); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	if req.Offset, err = queryInt(r, "offset"); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	resp, err := h.uc.ListRecords.Execute(r.Context(), req)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *AdminHandler) HandleGetRecord(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	resp, err := h.uc.GetRecord.Execute(r.Context(), id)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *AdminHandler) HandleUpdateRecord(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	var req dto.UpdateRecordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	req.RecordID = id

	resp, err := h.uc.UpdateRecord.Execute(r.Context(), req)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *AdminHandler) HandleReviewRecord(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	var req dto.ReviewRecordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	req.RecordID = id

	resp, err := h.uc.ReviewRecord.Execute(r.Context(), req)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	h.logger.InfoContext(r.Context(), "record reviewed", "record_id", id, "status", resp.Status)
	writeJSON(w, http.StatusOK, resp)
}

func (h *AdminHandler) HandleDeleteRecord(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	if err := h.uc.DeleteRecord.Execute(r.Context(), id); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	h.logger.InfoContext(r.Context(), "record deleted", "record_id", id)
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandler) HandleListCategories(w http.ResponseWriter, r *http.Request) {
	resp, err := h.uc.Categories.List(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *AdminHandler) HandleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var req dto.CategoryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	resp, err := h.uc.Categories.Create(r.Context(), req)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (h *AdminHandler) HandleUpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	var req dto.CategoryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	req.ID = id

	resp, err := h.uc.Categories.Update(r.Context(), req)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *AdminHandler) HandleListAllegationTypes(w http.ResponseWriter, r *http.Request) {
	resp, err := h.uc.AllegationTypes.List(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *AdminHandler) HandleCreateAllegationType(w http.ResponseWriter, r *http.Request) {
	var req dto.AllegationTypeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	resp, err := h.uc.AllegationTypes.Create(r.Context(), req)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (h *AdminHandler) HandleUpdateAllegationType(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	var req dto.AllegationTypeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	req.ID = id

	resp, err := h.uc.AllegationTypes.Update(r.Context(), req)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *AdminHandler) HandleListBrokers(w http.ResponseWriter, r *http.Request) {
	resp, err := h.uc.Brokers.List(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *AdminHandler) HandleCreateBroker(w http.ResponseWriter, r *http.Request) {
	var req dto.BrokerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	resp, err := h.uc.Brokers.Create(r.Context(), req)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (h *AdminHandler) HandleUpdateBroker(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	var req dto.BrokerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	req.ID = id

	resp, err := h.uc.Brokers.Update(r.Context(), req)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// HandleSearchLogs handles GET /admin/search-logs?limit=N.
func (h *AdminHandler) HandleSearchLogs(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	resp, err := h.uc.ListSearchLogs.Execute(r.Context(), dto.ListSearchLogsRequest{Limit: limit})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *AdminHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	resp, err := h.uc.Dashboard.Execute(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *AdminHandler) HandleProfiles(w http.ResponseWriter, r *http.Request) {
	resp, err := h.uc.Profiles.Execute(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *AdminHandler) deleteHandler(del func(ctx context.Context, id uuid.UUID) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			writeError(w, r, h.logger, err)
			return
		}
		if err := del(r.Context(), id); err != nil {
			writeError(w, r, h.logger, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
