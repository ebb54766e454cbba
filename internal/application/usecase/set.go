package usecase

import (
	"log/slog"

	"github.com/tradercheck/tradercheck/internal/domain/port"
	"github.com/tradercheck/tradercheck/internal/domain/service"
	"github.com/tradercheck/tradercheck/internal/metrics"
)

// Dependencies are the adapters every use case draws from.
type Dependencies struct {
	Repos     port.Repositories
	Publisher port.EventPublisher
	Limiter   port.RateLimiter
	Engine    *service.RiskEngine
	Metrics   *metrics.Metrics
	Logger    *slog.Logger
}

// Set holds one instance of every use case, shared by the transports.
type Set struct {
	ReportRecord      *ReportRecord
	SearchRecords     *SearchRecords
	ListBrokerRecords *ListBrokerRecords
	ClassifyScore     *ClassifyScore

	GetRecord      *GetRecord
	ListRecords    *ListRecords
	UpdateRecord   *UpdateRecord
	ReviewRecord   *ReviewRecord
	DeleteRecord   *DeleteRecord
	ListSearchLogs *ListSearchLogs
	Dashboard      *GetDashboard
	Profiles       *GetEntityProfiles

	Categories      *ManageCategories
	AllegationTypes *ManageAllegationTypes
	Brokers         *ManageBrokers
}

// NewSet builds every use case over d.
func NewSet(d Dependencies) *Set {
	r := d.Repos
	return &Set{
		ReportRecord:      NewReportRecord(r, d.Publisher, d.Engine, d.Metrics, d.Logger),
		SearchRecords:     NewSearchRecords(r.Records, r.Brokers, r.SearchLogs, d.Limiter, d.Publisher, service.NewResolver(), d.Metrics, d.Logger),
		ListBrokerRecords: NewListBrokerRecords(r),
		ClassifyScore:     NewClassifyScore(d.Engine),

		GetRecord:      NewGetRecord(r),
		ListRecords:    NewListRecords(r),
		UpdateRecord:   NewUpdateRecord(r, d.Publisher, d.Metrics, d.Logger),
		ReviewRecord:   NewReviewRecord(r, d.Publisher, d.Metrics, d.Logger),
		DeleteRecord:   NewDeleteRecord(r.Records, d.Publisher, d.Metrics, d.Logger),
		ListSearchLogs: NewListSearchLogs(r),
		Dashboard:      NewGetDashboard(r),
		Profiles:       NewGetEntityProfiles(r.Records, d.Engine),

		Categories:      NewManageCategories(r.Categories, r.Records),
		AllegationTypes: NewManageAllegationTypes(r.AllegationTypes, r.Records, d.Engine),
		Brokers:         NewManageBrokers(r.Brokers, r.Records, d.Logger),
	}
}
