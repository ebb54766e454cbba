package grpc

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/tradercheck/tradercheck/internal/application/usecase"
	"github.com/tradercheck/tradercheck/internal/domain/service"
	"github.com/tradercheck/tradercheck/internal/infrastructure/memory"
	"github.com/tradercheck/tradercheck/pkg/auth"
	"github.com/tradercheck/tradercheck/pkg/observability"
)

type testEnv struct {
	client TraderCheckServiceClient
	health healthpb.HealthClient
	jwt    *auth.JWTService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	repos := memory.NewStore().Repositories()
	require.NoError(t, memory.Seed(ctx, repos))
	engine, err := service.NewRiskEngine(service.DefaultSeverityScores)
	require.NoError(t, err)
	uc := usecase.NewSet(usecase.Dependencies{Repos: repos, Engine: engine})

	jwt, err := auth.NewJWTService(auth.JWTConfig{Secret: "test-secret", Issuer: "tradercheck"})
	require.NoError(t, err)

	logger := observability.DiscardLogger()
	srv, err := NewServer(NewHandler(uc.SearchRecords, uc.ClassifyScore, logger), ServerConfig{
		JWT:    jwt,
		Logger: logger,
	})
	require.NoError(t, err)

	lis := bufconn.Listen(1 << 20)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpclib.NewClient("passthrough:///bufnet",
		grpclib.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpclib.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return &testEnv{
		client: NewTraderCheckServiceClient(conn),
		health: healthpb.NewHealthClient(conn),
		jwt:    jwt,
	}
}

func (e *testEnv) as(t *testing.T, userID uuid.UUID, role string) context.Context {
	t.Helper()
	tok, err := e.jwt.GenerateToken(userID, "test", []string{role})
	require.NoError(t, err)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer "+tok)
}

func TestHealthSkipsAuth(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.health.Check(context.Background(), &healthpb.HealthCheckRequest{Service: ServiceName})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus())
}

func TestSearch(t *testing.T) {
	env := newTestEnv(t)
	ctx := env.as(t, memory.SeedBrokerJohnID, auth.RoleBroker)

	resp, err := env.client.Search(ctx, &SearchRequest{Value: "JOHN@FAKEBROKER.COM", Field: "email"})
	require.NoError(t, err)
	assert.Equal(t, &SearchResponse{Found: true, Score: 20, RiskLevel: "high"}, resp)

	resp, err = env.client.Search(ctx, &SearchRequest{Value: "XYZ"})
	require.NoError(t, err)
	assert.False(t, resp.Found)
}

func TestSearchErrors(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name string
		ctx  context.Context
		req  *SearchRequest
		code codes.Code
	}{
		{"no token", context.Background(), &SearchRequest{Value: "x"}, codes.Unauthenticated},
		{"admin cannot search", env.as(t, uuid.New(), auth.RoleAdmin), &SearchRequest{Value: "x"}, codes.PermissionDenied},
		{"inactive broker", env.as(t, memory.SeedBrokerMikeID, auth.RoleBroker), &SearchRequest{Value: "x"}, codes.PermissionDenied},
		{"field not allowed", env.as(t, memory.SeedBrokerJohnID, auth.RoleBroker), &SearchRequest{Value: "x", Field: "document"}, codes.InvalidArgument},
		{"bad category", env.as(t, memory.SeedBrokerJohnID, auth.RoleBroker), &SearchRequest{Value: "x", CategoryID: "nope"}, codes.InvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.client.Search(tt.ctx, tt.req)
			assert.Equal(t, tt.code, status.Code(err), err)
		})
	}
}

func TestClassify(t *testing.T) {
	env := newTestEnv(t)

	for _, tc := range []struct {
		score int32
		want  string
	}{{0, "low"}, {5, "low"}, {6, "medium"}, {15, "medium"}, {16, "high"}} {
		resp, err := env.client.Classify(env.as(t, uuid.New(), auth.RoleAdmin), &ClassifyRequest{Score: tc.score})
		require.NoError(t, err)
		assert.Equal(t, tc.want, resp.RiskLevel, "score %d", tc.score)
		assert.Equal(t, tc.score, resp.Score)
	}
}
