package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the lookup and reporting flows.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	// Search outcomes by mode and result
	Searches *prometheus.CounterVec

	// Search latency including the audit write
	SearchLatency prometheus.Histogram

	// Reports filed by allegation severity
	Reports *prometheus.CounterVec

	// Searches refused by the per-broker limiter
	RateLimited prometheus.Counter

	// Best-effort side effects that failed, by kind: "search_log", "publish"
	SideEffectFailures *prometheus.CounterVec
}

// New registers the metrics on reg. A nil reg uses the default registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		Searches: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "tradercheck_searches_total",
			Help: "Total searches by mode and whether a record matched",
		}, []string{"mode", "found"}),

		SearchLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "tradercheck_search_duration_seconds",
			Help:    "Duration of a search including the audit log write",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),

		Reports: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "tradercheck_reports_total",
			Help: "Total abuse records reported by allegation severity",
		}, []string{"severity"}),

		RateLimited: factory.NewCounter(prometheus.CounterOpts{
			Name: "tradercheck_search_rate_limited_total",
			Help: "Total searches rejected by the per-broker rate limit",
		}),

		SideEffectFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "tradercheck_side_effect_failures_total",
			Help: "Best-effort side effects that failed without failing the request",
		}, []string{"kind"}),
	}
}

// IncrementSearch records one resolved search.
func (m *Metrics) IncrementSearch(mode string, found bool) {
	if m != nil {
		result := "false"
		if found {
			result = "true"
		}
		m.Searches.WithLabelValues(mode, result).Inc()
	}
}

// ObserveSearchLatency records the duration of a search.
func (m *Metrics) ObserveSearchLatency(d time.Duration) {
	if m != nil {
		m.SearchLatency.Observe(d.Seconds())
	}
}

// IncrementReport records a filed report.
func (m *Metrics) IncrementReport(severity string) {
	if m != nil {
		m.Reports.WithLabelValues(severity).Inc()
	}
}

// IncrementRateLimited records a refused search.
func (m *Metrics) IncrementRateLimited() {
	if m != nil {
		m.RateLimited.Inc()
	}
}

// IncrementSideEffectFailure records a swallowed failure.
func (m *Metrics) IncrementSideEffectFailure(kind string) {
	if m != nil {
		m.SideEffectFailures.WithLabelValues(kind).Inc()
	}
}
