package usecase_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradercheck/tradercheck/internal/application/dto"
	"github.com/tradercheck/tradercheck/internal/application/usecase"
	"github.com/tradercheck/tradercheck/internal/domain/model"
	"github.com/tradercheck/tradercheck/internal/infrastructure/memory"
)

func TestManageCategories(t *testing.T) {
	repos := seededRepos(t)
	uc := usecase.NewManageCategories(repos.Categories, repos.Records)
	ctx := context.Background()

	created, err := uc.Create(ctx, dto.CategoryRequest{Name: "Ponzi Schemes", Description: "Pyramid payouts"})
	require.NoError(t, err)
	assert.Equal(t, "text", created.InputType)

	updated, err := uc.Update(ctx, dto.CategoryRequest{ID: created.ID, Name: "Ponzi", InputType: "URL"})
	require.NoError(t, err)
	assert.Equal(t, "Ponzi", updated.Name)
	assert.Equal(t, "url", updated.InputType)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 4)
	counts := map[string]int{}
	for _, c := range list {
		counts[c.Name] = c.RecordCount
	}
	assert.Equal(t, 1, counts["Financial Fraud"])
	assert.Equal(t, 0, counts["Ponzi"])

	_, err = uc.Create(ctx, dto.CategoryRequest{Name: " "})
	assert.ErrorIs(t, err, model.ErrValidation)
	_, err = uc.Create(ctx, dto.CategoryRequest{Name: "cyber crime"})
	assert.ErrorIs(t, err, model.ErrDuplicate)

	assert.ErrorIs(t, uc.Delete(ctx, memory.SeedCategoryCyberCrimeID), model.ErrReferenced)
	assert.NoError(t, uc.Delete(ctx, created.ID))
	assert.ErrorIs(t, uc.Delete(ctx, created.ID), model.ErrNotFound)
}

func TestManageAllegationTypes(t *testing.T) {
	repos := seededRepos(t)
	uc := usecase.NewManageAllegationTypes(repos.AllegationTypes, repos.Records, defaultEngine(t))
	ctx := context.Background()

	created, err := uc.Create(ctx, dto.AllegationTypeRequest{Name: "Late Payment", Severity: "low"})
	require.NoError(t, err)
	assert.Equal(t, "low", created.Severity)
	assert.Equal(t, 5, created.DefaultScore)

	updated, err := uc.Update(ctx, dto.AllegationTypeRequest{ID: created.ID, Name: "Late Payment", Severity: "MEDIUM"})
	require.NoError(t, err)
	assert.Equal(t, "medium", updated.Severity)
	assert.Equal(t, 10, updated.DefaultScore)

	_, err = uc.Create(ctx, dto.AllegationTypeRequest{Name: "Spam", Severity: "critical"})
	assert.ErrorIs(t, err, model.ErrValidation)
	_, err = uc.Update(ctx, dto.AllegationTypeRequest{ID: uuid.New(), Name: "x", Severity: "low"})
	assert.ErrorIs(t, err, model.ErrNotFound)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 5)

	assert.ErrorIs(t, uc.Delete(ctx, memory.SeedAllegationFakeIdentityID), model.ErrReferenced)
	assert.NoError(t, uc.Delete(ctx, created.ID))
}

func TestManageBrokers(t *testing.T) {
	repos := seededRepos(t)
	uc := usecase.NewManageBrokers(repos.Brokers, repos.Records, nil)
	ctx := context.Background()

	created, err := uc.Create(ctx, dto.BrokerRequest{Name: "Dana Delta", Email: "Dana@Delta.example", Company: "Delta FX", Status: "inactive"})
	require.NoError(t, err)
	assert.Equal(t, "active", created.Status, "new brokers start active")
	assert.Equal(t, "dana@delta.example", created.Email)
	assert.Zero(t, created.ComplaintsSubmitted)

	updated, err := uc.Update(ctx, dto.BrokerRequest{ID: created.ID, Name: "Dana Delta", Email: "dana@delta.example", Status: "inactive"})
	require.NoError(t, err)
	assert.Equal(t, "inactive", updated.Status)

	kept, err := uc.Update(ctx, dto.BrokerRequest{ID: created.ID, Name: "Dana D.", Email: "dana@delta.example"})
	require.NoError(t, err)
	assert.Equal(t, "inactive", kept.Status, "empty status keeps the current one")

	_, err = uc.Create(ctx, dto.BrokerRequest{Name: "Copy", Email: "sarah@broker2.com"})
	assert.ErrorIs(t, err, model.ErrDuplicate)
	_, err = uc.Create(ctx, dto.BrokerRequest{Name: "Bad", Email: "not-an-email"})
	assert.ErrorIs(t, err, model.ErrValidation)
	_, err = uc.Update(ctx, dto.BrokerRequest{ID: created.ID, Name: "Dana", Email: "dana@delta.example", Status: "suspended"})
	assert.ErrorIs(t, err, model.ErrValidation)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 4)
	complaints := map[uuid.UUID]int{}
	for _, b := range list {
		complaints[b.ID] = b.ComplaintsSubmitted
	}
	assert.Equal(t, 1, complaints[memory.SeedBrokerJohnID])
	assert.Equal(t, 1, complaints[memory.SeedBrokerSarahID])
	assert.Equal(t, 0, complaints[memory.SeedBrokerMikeID])

	assert.ErrorIs(t, uc.Delete(ctx, memory.SeedBrokerSarahID), model.ErrReferenced)
	assert.NoError(t, uc.Delete(ctx, created.ID))
}

func TestManageBrokers_ComplaintsFollowRecords(t *testing.T) {
	repos := seededRepos(t)
	ctx := context.Background()
	report := usecase.NewReportRecord(repos, nil, defaultEngine(t), nil, nil)
	brokers := usecase.NewManageBrokers(repos.Brokers, repos.Records, nil)

	req := validReport()
	req.BrokerID = memory.SeedBrokerSarahID
	resp, err := report.Execute(ctx, req)
	require.NoError(t, err)

	count := func() int {
		list, err := brokers.List(ctx)
		require.NoError(t, err)
		for _, b := range list {
			if b.ID == memory.SeedBrokerSarahID {
				return b.ComplaintsSubmitted
			}
		}
		t.Fatal("seeded broker missing")
		return 0
	}
	assert.Equal(t, 2, count())

	require.NoError(t, usecase.NewDeleteRecord(repos.Records, nil, nil, nil).Execute(ctx, resp.ID))
	assert.Equal(t, 1, count())
}
