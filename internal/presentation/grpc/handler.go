package grpc

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/tradercheck/tradercheck/internal/application/dto"
	"github.com/tradercheck/tradercheck/internal/application/usecase"
	"github.com/tradercheck/tradercheck/internal/domain/model"
	"github.com/tradercheck/tradercheck/pkg/auth"
)

// requireRole checks that the caller has at least one of the given roles.
func requireRole(ctx context.Context, roles ...string) (*auth.Claims, error) {
	claims, ok := auth.ClaimsFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "authentication required")
	}
	for _, role := range roles {
		if claims.HasRole(role) {
			return claims, nil
		}
	}
	return nil, status.Error(codes.PermissionDenied, "insufficient permissions")
}

// Compile-time assertion that Handler implements TraderCheckServiceServer.
var _ TraderCheckServiceServer = (*Handler)(nil)

// Handler implements the gRPC TraderCheckServiceServer interface.
type Handler struct {
	UnimplementedTraderCheckServiceServer
	search   *usecase.SearchRecords
	classify *usecase.ClassifyScore
	logger   *slog.Logger
}

// NewHandler creates a new gRPC handler.
func NewHandler(search *usecase.SearchRecords, classify *usecase.ClassifyScore, logger *slog.Logger) *Handler {
	return &Handler{
		search:   search,
		classify: classify,
		logger:   logger,
	}
}

// Search resolves a query for the calling broker.
func (h *Handler) Search(ctx context.Context, req *SearchRequest) (*SearchResponse, error) {
	claims, err := requireRole(ctx, auth.RoleBroker)
	if err != nil {
		return nil, err
	}

	in := dto.SearchRequest{
		Value:     req.Value,
		Field:     req.Field,
		Mode:      req.Mode,
		MatchMode: req.MatchMode,
		BrokerID:  claims.UserID,
	}
	if req.CategoryID != "" {
		id, err := uuid.Parse(req.CategoryID)
		if err != nil {
			return nil, status.Errorf(codes.InvalidArgument, "invalid category_id: %v", err)
		}
		in.CategoryID = id
	}

	resp, err := h.search.Execute(ctx, in)
	if err != nil {
		return nil, h.toStatus(ctx, "Search", err)
	}

	return &SearchResponse{
		Found:     resp.Found,
		Score:     int32(resp.Score),
		RiskLevel: resp.RiskLevel,
	}, nil
}

// Classify maps a score onto its risk band.
func (h *Handler) Classify(ctx context.Context, req *ClassifyRequest) (*ClassifyResponse, error) {
	if _, err := requireRole(ctx, auth.RoleBroker, auth.RoleAdmin); err != nil {
		return nil, err
	}

	resp := h.classify.Execute(int(req.Score))
	return &ClassifyResponse{
		Score:     int32(resp.Score),
		RiskLevel: resp.RiskLevel,
	}, nil
}

// toStatus maps domain errors onto gRPC codes. Unknown errors are logged
// and surfaced as Internal.
func (h *Handler) toStatus(ctx context.Context, method string, err error) error {
	switch {
	case errors.Is(err, model.ErrValidation),
		errors.Is(err, model.ErrInvalidScore),
		errors.Is(err, model.ErrInvalidStatus),
		errors.Is(err, model.ErrFieldNotAllowed):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, model.ErrBrokerInactive):
		return status.Error(codes.PermissionDenied, err.Error())
	case errors.Is(err, model.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, model.ErrReferenced),
		errors.Is(err, model.ErrVersionConflict),
		errors.Is(err, model.ErrDuplicate):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, model.ErrRateLimited):
		return status.Error(codes.ResourceExhausted, err.Error())
	default:
		h.logger.ErrorContext(ctx, "grpc call failed", "method", method, "error", err)
		return status.Error(codes.Internal, "internal error")
	}
}
