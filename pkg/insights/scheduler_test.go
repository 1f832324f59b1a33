package insights

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/advisorhub/mira/pkg/agents"
	"github.com/advisorhub/mira/pkg/events"
	"github.com/advisorhub/mira/pkg/models"
	"github.com/advisorhub/mira/pkg/store/memory"
	"github.com/advisorhub/mira/pkg/tools"
)

type capturePublisher struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (p *capturePublisher) Publish(_ context.Context, event events.Event) error {
	if p.err != nil {
		return p.err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)

	return nil
}

type staticContexts struct {
	contexts []models.MiraContext
	err      error
}

func (s *staticContexts) ActiveContexts(_ context.Context) ([]models.MiraContext, error) {
	return s.contexts, s.err
}

func newTestScheduler(t *testing.T, contexts ContextSource, publisher *capturePublisher) *Scheduler {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	st := memory.NewStore()

	registry := tools.NewRegistry(logger, tools.DefaultRetryConfig(), nil)
	tools.RegisterCustomerTools(registry, st)
	tools.RegisterTodoTools(registry, st)

	router := agents.NewRouter(logger)
	router.Register(agents.NewCustomerAgent(logger, registry))
	router.Register(agents.NewTodoAgent(logger, registry))

	return NewScheduler(logger, router, publisher, contexts, "")
}

func TestSweepPublishesSuggestionBatches(t *testing.T) {
	publisher := &capturePublisher{}
	scheduler := newTestScheduler(t, &staticContexts{contexts: []models.MiraContext{
		{Module: models.ModuleCustomer, AdvisorID: "advisor-1", PageData: map[string]any{"leadName": "Kim Tan"}},
	}}, publisher)

	require.NoError(t, scheduler.Sweep(context.Background()))

	require.Len(t, publisher.events, 1)
	insight, ok := publisher.events[0].(events.InsightGenerated)
	require.True(t, ok)

	assert.Equal(t, "customer", insight.Module)
	assert.Equal(t, "advisor-1", insight.AdvisorID)
	require.Len(t, insight.Suggestions, 3)
	assert.Equal(t, "create_lead", insight.Suggestions[0].Intent)
	assert.Contains(t, insight.Suggestions[0].PromptText, "Kim Tan")
}

func TestSweepSkipsEmptySuggestionSets(t *testing.T) {
	publisher := &capturePublisher{}
	scheduler := newTestScheduler(t, &staticContexts{contexts: []models.MiraContext{
		// The todo agent has no proactive suggestions.
		{Module: models.ModuleTodo, AdvisorID: "advisor-1"},
	}}, publisher)

	require.NoError(t, scheduler.Sweep(context.Background()))
	assert.Empty(t, publisher.events)
}

func TestSweepSkipsUnroutableModules(t *testing.T) {
	publisher := &capturePublisher{}
	scheduler := newTestScheduler(t, &staticContexts{contexts: []models.MiraContext{
		{Module: models.ModuleVisualizer, AdvisorID: "advisor-1"},
		{Module: models.ModuleCustomer, AdvisorID: "advisor-2"},
	}}, publisher)

	require.NoError(t, scheduler.Sweep(context.Background()))

	require.Len(t, publisher.events, 1)
	insight := publisher.events[0].(events.InsightGenerated)
	assert.Equal(t, "advisor-2", insight.AdvisorID)
}

func TestSweepPropagatesContextSourceError(t *testing.T) {
	publisher := &capturePublisher{}
	scheduler := newTestScheduler(t, &staticContexts{err: assert.AnError}, publisher)

	assert.Error(t, scheduler.Sweep(context.Background()))
}
