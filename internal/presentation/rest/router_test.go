package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/suite"

	"github.com/tradercheck/tradercheck/internal/application/dto"
	"github.com/tradercheck/tradercheck/internal/application/usecase"
	"github.com/tradercheck/tradercheck/internal/domain/service"
	"github.com/tradercheck/tradercheck/internal/infrastructure/memory"
	"github.com/tradercheck/tradercheck/internal/infrastructure/ratelimit"
	"github.com/tradercheck/tradercheck/internal/metrics"
	"github.com/tradercheck/tradercheck/pkg/auth"
	"github.com/tradercheck/tradercheck/pkg/observability"
)

const searchBudget = 5

type RouterSuite struct {
	suite.Suite
	handler    http.Handler
	jwt        *auth.JWTService
	dbReady    error
	adminToken string
	johnToken  string
	mikeToken  string
	sarahToken string
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterSuite))
}

func (s *RouterSuite) SetupTest() {
	ctx := context.Background()
	repos := memory.NewStore().Repositories()
	s.Require().NoError(memory.Seed(ctx, repos))

	engine, err := service.NewRiskEngine(service.DefaultSeverityScores)
	s.Require().NoError(err)

	reg := prometheus.NewRegistry()
	logger := observability.DiscardLogger()
	uc := usecase.NewSet(usecase.Dependencies{
		Repos:   repos,
		Limiter: ratelimit.NewMemoryLimiter(searchBudget, time.Minute),
		Engine:  engine,
		Metrics: metrics.New(reg),
		Logger:  logger,
	})

	s.jwt, err = auth.NewJWTService(auth.JWTConfig{Secret: "test-secret", Issuer: "tradercheck"})
	s.Require().NoError(err)

	s.dbReady = nil
	s.handler = NewRouter(RouterConfig{
		UseCases: uc,
		JWT:      s.jwt,
		Logger:   logger,
		Metrics:  promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		Readiness: map[string]ReadinessCheck{
			"store": func(context.Context) error { return s.dbReady },
		},
	})

	s.adminToken = s.token(uuid.New(), auth.RoleAdmin)
	s.johnToken = s.token(memory.SeedBrokerJohnID, auth.RoleBroker)
	s.sarahToken = s.token(memory.SeedBrokerSarahID, auth.RoleBroker)
	s.mikeToken = s.token(memory.SeedBrokerMikeID, auth.RoleBroker)
}

func (s *RouterSuite) token(userID uuid.UUID, role string) string {
	tok, err := s.jwt.GenerateToken(userID, "test", []string{role})
	s.Require().NoError(err)
	return tok
}

func (s *RouterSuite) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func (s *RouterSuite) decode(rec *httptest.ResponseRecorder, v any) {
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func (s *RouterSuite) TestProbes() {
	s.Equal(http.StatusOK, s.do(http.MethodGet, "/healthz", "", nil).Code)
	s.Equal(http.StatusOK, s.do(http.MethodGet, "/readyz", "", nil).Code)

	s.dbReady = errors.New("connection refused")
	rec := s.do(http.MethodGet, "/readyz", "", nil)
	s.Equal(http.StatusServiceUnavailable, rec.Code)

	var resp ReadinessResponse
	s.decode(rec, &resp)
	s.Equal("connection refused", resp.Checks["store"])
}

func (s *RouterSuite) TestMetricsExposed() {
	s.do(http.MethodPost, "/api/v1/search", s.johnToken, dto.SearchRequest{Value: "nobody"})

	rec := s.do(http.MethodGet, "/metrics", "", nil)
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "tradercheck_searches_total")
}

func (s *RouterSuite) TestAuthRequired() {
	s.Equal(http.StatusUnauthorized, s.do(http.MethodPost, "/api/v1/search", "", dto.SearchRequest{Value: "x"}).Code)
	s.Equal(http.StatusUnauthorized, s.do(http.MethodGet, "/api/v1/admin/dashboard", "garbage", nil).Code)
	s.Equal(http.StatusForbidden, s.do(http.MethodGet, "/api/v1/admin/dashboard", s.johnToken, nil).Code)
	s.Equal(http.StatusForbidden, s.do(http.MethodPost, "/api/v1/search", s.adminToken, dto.SearchRequest{Value: "x"}).Code)
}

func (s *RouterSuite) TestSearch() {
	rec := s.do(http.MethodPost, "/api/v1/search", s.johnToken, dto.SearchRequest{
		Value: "JOHN@FAKEBROKER.COM",
		Field: "email",
	})
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	var resp map[string]any
	s.decode(rec, &resp)
	s.Equal(map[string]any{"found": true, "score": float64(20), "risk_level": "high"}, resp,
		"a search reveals nothing beyond found, score and risk level")

	rec = s.do(http.MethodPost, "/api/v1/search", s.johnToken, dto.SearchRequest{Value: "XYZ"})
	s.Require().Equal(http.StatusOK, rec.Code)
	var miss dto.SearchResponse
	s.decode(rec, &miss)
	s.False(miss.Found)
	s.Equal("low", miss.RiskLevel)
}

func (s *RouterSuite) TestSearchRejections() {
	tests := []struct {
		name   string
		token  string
		body   any
		status int
	}{
		{"field not allowed in mode", s.johnToken, dto.SearchRequest{Value: "10.0.0.1", Field: "ip"}, http.StatusBadRequest},
		{"unknown mode", s.johnToken, dto.SearchRequest{Value: "x", Mode: "deep"}, http.StatusBadRequest},
		{"unknown body field", s.johnToken, map[string]string{"query": "x"}, http.StatusBadRequest},
		{"inactive broker", s.mikeToken, dto.SearchRequest{Value: "x"}, http.StatusForbidden},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			rec := s.do(http.MethodPost, "/api/v1/search", tt.token, tt.body)
			s.Equal(tt.status, rec.Code, rec.Body.String())
		})
	}
}

func (s *RouterSuite) TestSearchRateLimited() {
	for i := range searchBudget {
		rec := s.do(http.MethodPost, "/api/v1/search", s.sarahToken, dto.SearchRequest{Value: fmt.Sprintf("query-%d", i)})
		s.Require().Equal(http.StatusOK, rec.Code)
	}
	rec := s.do(http.MethodPost, "/api/v1/search", s.sarahToken, dto.SearchRequest{Value: "one more"})
	s.Equal(http.StatusTooManyRequests, rec.Code)

	s.Equal(http.StatusOK, s.do(http.MethodPost, "/api/v1/search", s.johnToken, dto.SearchRequest{Value: "x"}).Code,
		"budgets are per broker")
}

func (s *RouterSuite) TestReportAndListMine() {
	rec := s.do(http.MethodPost, "/api/v1/records", s.johnToken, dto.ReportRecordRequest{
		CategoryID:       memory.SeedCategoryFinancialFraudID,
		AllegationTypeID: memory.SeedAllegationNonPaymentID,
		Value:            "unpaid@trader.example",
	})
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())

	var created dto.BrokerRecordResponse
	s.decode(rec, &created)
	s.Equal("pending", created.Status)
	s.Equal(10, created.Score)
	s.Equal("medium", created.RiskLevel)

	rec = s.do(http.MethodGet, "/api/v1/records/mine", s.johnToken, nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	var mine dto.MyRecordsResponse
	s.decode(rec, &mine)
	s.Equal(2, mine.Total)
	s.Equal(1, mine.Pending)
	s.Equal(1, mine.Verified)
	s.NotContains(rec.Body.String(), "subject")

	rec = s.do(http.MethodPost, "/api/v1/records", s.johnToken, dto.ReportRecordRequest{
		CategoryID:       uuid.New(),
		AllegationTypeID: memory.SeedAllegationNonPaymentID,
		Value:            "x",
	})
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *RouterSuite) TestClassify() {
	rec := s.do(http.MethodGet, "/api/v1/risk/classify?score=12", s.johnToken, nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	var resp dto.ClassifyResponse
	s.decode(rec, &resp)
	s.Equal("medium", resp.RiskLevel)

	s.Equal(http.StatusOK, s.do(http.MethodGet, "/api/v1/risk/classify?score=16", s.adminToken, nil).Code)
	s.Equal(http.StatusBadRequest, s.do(http.MethodGet, "/api/v1/risk/classify?score=abc", s.johnToken, nil).Code)
}

func (s *RouterSuite) TestAdminRecords() {
	rec := s.do(http.MethodGet, "/api/v1/admin/records?risk_level=high", s.adminToken, nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	var high []dto.RecordResponse
	s.decode(rec, &high)
	s.Require().Len(high, 1)
	s.Equal("john.fakebroker.com", high[0].Value)
	s.Equal("Financial Fraud", high[0].Category)
	s.Equal("John Smith", high[0].ReporterName)

	s.Equal(http.StatusBadRequest, s.do(http.MethodGet, "/api/v1/admin/records?status=lost", s.adminToken, nil).Code)
	s.Equal(http.StatusBadRequest, s.do(http.MethodGet, "/api/v1/admin/records?limit=ten", s.adminToken, nil).Code)
	s.Equal(http.StatusNotFound, s.do(http.MethodGet, "/api/v1/admin/records/"+uuid.NewString(), s.adminToken, nil).Code)
	s.Equal(http.StatusBadRequest, s.do(http.MethodGet, "/api/v1/admin/records/not-a-uuid", s.adminToken, nil).Code)
}

func (s *RouterSuite) TestAdminUpdateAndReview() {
	path := "/api/v1/admin/records/" + memory.SeedRecordPhishingID.String()
	score := 3

	rec := s.do(http.MethodPatch, path, s.adminToken, dto.UpdateRecordRequest{Score: &score, ExpectedVersion: 1})
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var updated dto.RecordResponse
	s.decode(rec, &updated)
	s.Equal("low", updated.RiskLevel)
	s.Equal(2, updated.Version)

	rec = s.do(http.MethodPatch, path, s.adminToken, dto.UpdateRecordRequest{Score: &score, ExpectedVersion: 1})
	s.Equal(http.StatusConflict, rec.Code, "stale version")

	rec = s.do(http.MethodPost, path+"/review", s.adminToken, dto.ReviewRecordRequest{Status: "cleared"})
	s.Require().Equal(http.StatusOK, rec.Code)
	var reviewed dto.RecordResponse
	s.decode(rec, &reviewed)
	s.Equal("cleared", reviewed.Status)

	s.Equal(http.StatusBadRequest, s.do(http.MethodPost, path+"/review", s.adminToken, dto.ReviewRecordRequest{Status: "gone"}).Code)

	s.Equal(http.StatusNoContent, s.do(http.MethodDelete, path, s.adminToken, nil).Code)
	s.Equal(http.StatusNotFound, s.do(http.MethodDelete, path, s.adminToken, nil).Code)
}

func (s *RouterSuite) TestAdminReferenceData() {
	rec := s.do(http.MethodPost, "/api/v1/admin/categories", s.adminToken, dto.CategoryRequest{Name: "Identity Theft"})
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	var created dto.CategoryResponse
	s.decode(rec, &created)

	s.Equal(http.StatusConflict, s.do(http.MethodPost, "/api/v1/admin/categories", s.adminToken, dto.CategoryRequest{Name: "identity theft"}).Code)

	rec = s.do(http.MethodPut, "/api/v1/admin/categories/"+created.ID.String(), s.adminToken, dto.CategoryRequest{Name: "ID Theft"})
	s.Require().Equal(http.StatusOK, rec.Code)

	s.Equal(http.StatusConflict, s.do(http.MethodDelete, "/api/v1/admin/categories/"+memory.SeedCategoryFinancialFraudID.String(), s.adminToken, nil).Code)
	s.Equal(http.StatusNoContent, s.do(http.MethodDelete, "/api/v1/admin/categories/"+created.ID.String(), s.adminToken, nil).Code)

	rec = s.do(http.MethodPost, "/api/v1/admin/allegation-types", s.adminToken, dto.AllegationTypeRequest{Name: "Spoofing", Severity: "low"})
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	var at dto.AllegationTypeResponse
	s.decode(rec, &at)
	s.Equal(5, at.DefaultScore)
	s.Equal(http.StatusConflict, s.do(http.MethodDelete, "/api/v1/admin/allegation-types/"+memory.SeedAllegationFraudID.String(), s.adminToken, nil).Code)

	rec = s.do(http.MethodGet, "/api/v1/admin/brokers", s.adminToken, nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	var brokers []dto.BrokerResponse
	s.decode(rec, &brokers)
	s.Require().Len(brokers, 3)
	s.Equal(1, brokers[0].ComplaintsSubmitted)

	rec = s.do(http.MethodPut, "/api/v1/admin/brokers/"+memory.SeedBrokerMikeID.String(), s.adminToken, dto.BrokerRequest{
		Name: "Mike Wilson", Email: "mike@broker3.com", Company: "Gamma Securities", Status: "active",
	})
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	s.Equal(http.StatusOK, s.do(http.MethodPost, "/api/v1/search", s.mikeToken, dto.SearchRequest{Value: "x"}).Code,
		"reactivated broker may search")
	s.Equal(http.StatusConflict, s.do(http.MethodDelete, "/api/v1/admin/brokers/"+memory.SeedBrokerJohnID.String(), s.adminToken, nil).Code)
}

func (s *RouterSuite) TestAdminReporting() {
	s.do(http.MethodPost, "/api/v1/search", s.johnToken, dto.SearchRequest{Value: "phishing@email.com"})

	rec := s.do(http.MethodGet, "/api/v1/admin/dashboard", s.adminToken, nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	var dash dto.DashboardResponse
	s.decode(rec, &dash)
	s.Equal("17.50", dash.AverageScore)
	s.Equal(1, dash.TotalSearches)

	rec = s.do(http.MethodGet, "/api/v1/admin/search-logs?limit=10", s.adminToken, nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	var logs []dto.SearchLogResponse
	s.decode(rec, &logs)
	s.Require().Len(logs, 1)
	s.Equal("phishing@email.com", logs[0].SearchValue)
	s.True(logs[0].Found)
	s.Equal("John Smith", logs[0].BrokerName)

	rec = s.do(http.MethodGet, "/api/v1/admin/profiles", s.adminToken, nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	var profiles []dto.EntityProfileResponse
	s.decode(rec, &profiles)
	s.Len(profiles, 2)
}

func (s *RouterSuite) TestReportIsLoggedOnce() {
	ctx := context.Background()
	repos := memory.NewStore().Repositories()
	s.Require().NoError(memory.Seed(ctx, repos))
	engine, err := service.NewRiskEngine(service.DefaultSeverityScores)
	s.Require().NoError(err)

	var logs bytes.Buffer
	logger := observability.NewLogger(observability.LogConfig{Level: "info", Format: "json", Output: &logs})
	handler := NewRouter(RouterConfig{
		UseCases: usecase.NewSet(usecase.Dependencies{
			Repos:   repos,
			Engine:  engine,
			Metrics: metrics.New(prometheus.NewRegistry()),
			Logger:  logger,
		}),
		JWT:    s.jwt,
		Logger: logger,
	})

	var body bytes.Buffer
	s.Require().NoError(json.NewEncoder(&body).Encode(dto.ReportRecordRequest{
		CategoryID:       memory.SeedCategoryFinancialFraudID,
		AllegationTypeID: memory.SeedAllegationNonPaymentID,
		Value:            "logged@trader.example",
	}))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/records", &body)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.johnToken)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	s.Equal(1, bytes.Count(logs.Bytes(), []byte(`"msg":"record reported"`)))
}
