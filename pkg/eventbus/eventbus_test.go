package eventbus

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/advisorhub/mira/pkg/channels/gochannel"
	"github.com/advisorhub/mira/pkg/events"
)

func newTestBus(t *testing.T) EventBus {
	t.Helper()

	pub, sub, err := gochannel.CreateTestChannel(watermill.NewStdLogger(false, false))
	require.NoError(t, err)

	return NewWatermillEventBus(pub, sub)
}

func TestPublishSubscribeActionExecuted(t *testing.T) {
	bus := newTestBus(t)
	defer bus.Close()

	ctx := context.Background()

	var (
		mu       sync.Mutex
		received []events.Event
	)

	err := bus.Subscribe(ctx, events.ActionTopic, func(_ context.Context, event events.Event) error {
		mu.Lock()
		defer mu.Unlock()
		received = append(received, event)

		return nil
	})
	require.NoError(t, err)

	published := events.ActionExecuted{
		BaseEvent:  events.NewBaseEvent(events.ActionExecutedEvent, "advisor-1"),
		EntryID:    "exec_1",
		ActionID:   "create_lead_abc",
		ActionName: "Create New Lead",
		HandlerKey: "lead.create",
		Success:    true,
	}

	require.NoError(t, bus.Publish(ctx, published))

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()

		return len(received) == 1
	}, 2*time.Second, 10*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()

	executed, ok := received[0].(*events.ActionExecuted)
	require.True(t, ok)
	assert.Equal(t, "exec_1", executed.EntryID)
	assert.Equal(t, "lead.create", executed.HandlerKey)
	assert.Equal(t, "advisor-1", executed.AdvisorID)
	assert.True(t, executed.Success)
}

func TestTopicRouting(t *testing.T) {
	assert.Equal(t, events.ActionTopic, events.TopicFor(events.ActionExecutedEvent))
	assert.Equal(t, events.ActionTopic, events.TopicFor(events.ToolFailedEvent))
	assert.Equal(t, events.InsightTopic, events.TopicFor(events.InsightGeneratedEvent))
	assert.Equal(t, events.BehaviorTopic, events.TopicFor(events.NavigationRecordedEvent))
}

func TestSubscribeNacksUnknownEventType(t *testing.T) {
	bus := newTestBus(t)
	defer bus.Close()

	ctx := context.Background()

	var (
		mu    sync.Mutex
		count int
	)

	err := bus.Subscribe(ctx, events.InsightTopic, func(_ context.Context, _ events.Event) error {
		mu.Lock()
		defer mu.Unlock()
		count++

		return nil
	})
	require.NoError(t, err)

	insight := events.InsightGenerated{
		BaseEvent: events.NewBaseEvent(events.InsightGeneratedEvent, "advisor-1"),
		Module:    "customer",
	}
	require.NoError(t, bus.Publish(ctx, insight))

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()

		return count == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestGenerateID(t *testing.T) {
	bus := newTestBus(t)
	defer bus.Close()

	a := bus.GenerateID()
	b := bus.GenerateID()

	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}
