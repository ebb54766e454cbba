package rest

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/tradercheck/tradercheck/internal/application/usecase"
	"github.com/tradercheck/tradercheck/pkg/auth"
)

// RouterConfig carries everything the HTTP surface depends on.
type RouterConfig struct {
	UseCases *usecase.Set
	JWT      *auth.JWTService
	Logger   *slog.Logger

	// Metrics serves /metrics. Nil leaves the route unmounted.
	Metrics http.Handler

	// Readiness checks reported by /readyz, keyed by dependency name.
	Readiness map[string]ReadinessCheck

	// RequestTimeout bounds each API request. Zero means
	// DefaultRequestTimeout. Keep it plus the search side-effect timeout
	// below the server's WriteTimeout.
	RequestTimeout time.Duration
}

// DefaultRequestTimeout is the API request bound used when RouterConfig
// leaves RequestTimeout unset.
const DefaultRequestTimeout = 5 * time.Second

// NewRouter builds the chi router: probes and metrics at the root, the
// authenticated API under /api/v1.
func NewRouter(cfg RouterConfig) http.Handler {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = DefaultRequestTimeout
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(TracingMiddleware)
	r.Use(LoggingMiddleware(cfg.Logger))
	r.Use(middleware.Recoverer)

	NewHealthHandler(cfg.Readiness).Register(r)
	if cfg.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", cfg.Metrics)
	}

	broker := NewBrokerHandler(cfg.UseCases, cfg.Logger)
	admin := NewAdminHandler(cfg.UseCases, cfg.Logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Timeout(cfg.RequestTimeout))
		r.Use(auth.HTTPMiddleware(cfg.JWT))

		r.With(auth.RequireRoleHTTP(auth.RoleBroker, auth.RoleAdmin)).
			Get("/risk/classify", broker.HandleClassify)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireRoleHTTP(auth.RoleBroker))
			broker.Register(r)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(auth.RequireRoleHTTP(auth.RoleAdmin))
			admin.Register(r)
		})
	})

	return r
}
