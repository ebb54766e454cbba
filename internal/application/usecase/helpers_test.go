package usecase_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tradercheck/tradercheck/internal/domain/port"
	"github.com/tradercheck/tradercheck/internal/domain/service"
	"github.com/tradercheck/tradercheck/internal/infrastructure/memory"
	"github.com/tradercheck/tradercheck/pkg/events"
)

func seededRepos(t *testing.T) port.Repositories {
	t.Helper()
	repos := memory.NewStore().Repositories()
	require.NoError(t, memory.Seed(context.Background(), repos))
	return repos
}

func defaultEngine(t *testing.T) *service.RiskEngine {
	t.Helper()
	engine, err := service.NewRiskEngine(service.DefaultSeverityScores)
	require.NoError(t, err)
	return engine
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.DomainEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, evts ...events.DomainEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, evts...)
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.EventType())
	}
	return out
}
