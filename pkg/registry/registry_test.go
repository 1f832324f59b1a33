package registry

import (
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/advisorhub/mira/pkg/models"
)

func newTestRegistry(config Config) *Registry {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	return NewRegistry(logger, config)
}

func sampleAction(id string, category models.Category, tags ...string) *models.Action {
	return &models.Action{
		ID:         id,
		Name:       "Action " + id,
		Category:   category,
		HandlerKey: "handler." + id,
		Tags:       tags,
	}
}

func TestRegisterAndGet(t *testing.T) {
	t.Parallel()

	registry := newTestRegistry(DefaultConfig())

	require.NoError(t, registry.Register(sampleAction("create_lead", models.CategoryCustomer, "lead")))

	action, err := registry.Get("create_lead")
	require.NoError(t, err)
	assert.Equal(t, "handler.create_lead", action.HandlerKey)

	_, err = registry.Get("missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not registered")
}

func TestRegisterRejectsIncompleteActions(t *testing.T) {
	t.Parallel()

	registry := newTestRegistry(DefaultConfig())

	assert.Error(t, registry.Register(nil))
	assert.Error(t, registry.Register(&models.Action{Name: "no id", HandlerKey: "x"}))
	assert.Error(t, registry.Register(&models.Action{ID: "no-handler", Name: "n"}))
}

func TestReRegisterReplacesDefinition(t *testing.T) {
	t.Parallel()

	registry := newTestRegistry(DefaultConfig())

	require.NoError(t, registry.Register(sampleAction("create_task", models.CategoryTodo)))

	replacement := sampleAction("create_task", models.CategoryTodo)
	replacement.Name = "Create Task v2"
	require.NoError(t, registry.Register(replacement))

	action, err := registry.Get("create_task")
	require.NoError(t, err)
	assert.Equal(t, "Create Task v2", action.Name)
	assert.Len(t, registry.All(), 1)
}

func TestUnregister(t *testing.T) {
	t.Parallel()

	registry := newTestRegistry(DefaultConfig())

	require.NoError(t, registry.Register(sampleAction("create_lead", models.CategoryCustomer)))
	registry.RecordUsage("create_lead")

	require.NoError(t, registry.Unregister("create_lead"))
	assert.Error(t, registry.Unregister("create_lead"))
	assert.Zero(t, registry.UsageCount("create_lead"))
}

func TestDerivedViewsAndCacheInvalidation(t *testing.T) {
	t.Parallel()

	registry := newTestRegistry(DefaultConfig())

	require.NoError(t, registry.Register(sampleAction("create_lead", models.CategoryCustomer, "lead", "create")))
	require.NoError(t, registry.Register(sampleAction("view_customer", models.CategoryCustomer, "view")))
	require.NoError(t, registry.Register(sampleAction("create_task", models.CategoryTodo, "create")))

	assert.Len(t, registry.ByCategory(models.CategoryCustomer), 2)
	assert.Len(t, registry.ByTag("create"), 2)

	// A mutation bumps the registry version; cached views must never serve
	// the old result.
	require.NoError(t, registry.Register(sampleAction("update_customer", models.CategoryCustomer)))
	assert.Len(t, registry.ByCategory(models.CategoryCustomer), 3)

	require.NoError(t, registry.Unregister("create_lead"))
	assert.Len(t, registry.ByCategory(models.CategoryCustomer), 2)
	assert.Len(t, registry.ByTag("create"), 1)
}

func TestCacheZeroTTLNeverExpires(t *testing.T) {
	t.Parallel()

	registry := newTestRegistry(Config{EnableCaching: true, CacheTTL: 0, TrackUsage: true})

	require.NoError(t, registry.Register(sampleAction("create_lead", models.CategoryCustomer)))
	require.Len(t, registry.ByCategory(models.CategoryCustomer), 1)

	// Age every entry far beyond any plausible TTL and plant a sentinel so a
	// cache hit is observable.
	registry.mu.Lock()
	for key, entry := range registry.cache {
		entry.storedAt = time.Now().Add(-24 * time.Hour)
		entry.actions = []*models.Action{sampleAction("sentinel", models.CategoryCustomer)}
		registry.cache[key] = entry
	}
	registry.mu.Unlock()

	served := registry.ByCategory(models.CategoryCustomer)
	require.Len(t, served, 1)
	assert.Equal(t, "sentinel", served[0].ID, "zero TTL entries must keep serving until the version changes")

	// A mutation still invalidates through the version counter.
	require.NoError(t, registry.Register(sampleAction("view_customer", models.CategoryCustomer)))
	assert.Len(t, registry.ByCategory(models.CategoryCustomer), 2)
}

func TestCacheEntriesExpireAfterConfiguredTTL(t *testing.T) {
	t.Parallel()

	registry := newTestRegistry(Config{EnableCaching: true, CacheTTL: time.Minute, TrackUsage: true})

	require.NoError(t, registry.Register(sampleAction("create_lead", models.CategoryCustomer)))
	require.Len(t, registry.ByCategory(models.CategoryCustomer), 1)

	registry.mu.Lock()
	for key, entry := range registry.cache {
		entry.storedAt = time.Now().Add(-2 * time.Minute)
		entry.actions = []*models.Action{sampleAction("sentinel", models.CategoryCustomer)}
		registry.cache[key] = entry
	}
	registry.mu.Unlock()

	served := registry.ByCategory(models.CategoryCustomer)
	require.Len(t, served, 1)
	assert.Equal(t, "create_lead", served[0].ID, "stale entries must be recomputed")
}

func TestCachingDisabledStillServesViews(t *testing.T) {
	t.Parallel()

	registry := newTestRegistry(Config{EnableCaching: false, CacheTTL: time.Minute, TrackUsage: true})

	require.NoError(t, registry.Register(sampleAction("create_lead", models.CategoryCustomer, "lead")))
	assert.Len(t, registry.ByCategory(models.CategoryCustomer), 1)
	assert.Len(t, registry.ByTag("lead"), 1)
	assert.Zero(t, registry.Stats().CacheEntries)
}

func TestByShortcut(t *testing.T) {
	t.Parallel()

	registry := newTestRegistry(DefaultConfig())

	action := sampleAction("create_lead", models.CategoryCustomer)
	action.KeyboardShortcut = "ctrl+shift+l"
	require.NoError(t, registry.Register(action))

	found, ok := registry.ByShortcut("ctrl+shift+l")
	require.True(t, ok)
	assert.Equal(t, "create_lead", found.ID)

	_, ok = registry.ByShortcut("ctrl+shift+x")
	assert.False(t, ok)
}

func TestSearch(t *testing.T) {
	t.Parallel()

	registry := newTestRegistry(DefaultConfig())

	lead := sampleAction("create_lead", models.CategoryCustomer, "lead")
	lead.Name = "Create New Lead"
	lead.Description = "Create a new customer lead"
	require.NoError(t, registry.Register(lead))

	task := sampleAction("create_task", models.CategoryTodo, "todo")
	task.Name = "Create New Task"
	require.NoError(t, registry.Register(task))

	assert.Len(t, registry.Search("create new"), 2)
	assert.Len(t, registry.Search("LEAD"), 1)
	assert.Len(t, registry.Search("todo"), 1)
	assert.Empty(t, registry.Search("broadcast"))
}

func TestUsageTrackingAndMostUsed(t *testing.T) {
	t.Parallel()

	registry := newTestRegistry(DefaultConfig())

	require.NoError(t, registry.Register(sampleAction("create_lead", models.CategoryCustomer)))
	require.NoError(t, registry.Register(sampleAction("create_task", models.CategoryTodo)))
	require.NoError(t, registry.Register(sampleAction("view_customer", models.CategoryCustomer)))

	for i := 0; i < 3; i++ {
		registry.RecordUsage("create_task")
	}

	registry.RecordUsage("create_lead")
	registry.RecordUsage("unknown-action")

	assert.Equal(t, 3, registry.UsageCount("create_task"))
	assert.Zero(t, registry.UsageCount("unknown-action"))

	ranked := registry.MostUsed(2)
	require.Len(t, ranked, 2)
	assert.Equal(t, "create_task", ranked[0].ID)
	assert.Equal(t, "create_lead", ranked[1].ID)
}

func TestUsageTrackingDisabled(t *testing.T) {
	t.Parallel()

	registry := newTestRegistry(Config{EnableCaching: true, CacheTTL: time.Minute, TrackUsage: false})

	require.NoError(t, registry.Register(sampleAction("create_lead", models.CategoryCustomer)))
	registry.RecordUsage("create_lead")

	assert.Zero(t, registry.UsageCount("create_lead"))
	assert.Empty(t, registry.MostUsed(5))
}

func TestStats(t *testing.T) {
	t.Parallel()

	registry := newTestRegistry(DefaultConfig())

	require.NoError(t, registry.Register(sampleAction("create_lead", models.CategoryCustomer)))
	require.NoError(t, registry.Register(sampleAction("view_customer", models.CategoryCustomer)))
	require.NoError(t, registry.Register(sampleAction("create_task", models.CategoryTodo)))
	registry.RecordUsage("create_lead")
	registry.RecordUsage("create_task")

	stats := registry.Stats()
	assert.Equal(t, 3, stats.TotalActions)
	assert.Equal(t, 2, stats.ByCategory[models.CategoryCustomer])
	assert.Equal(t, 1, stats.ByCategory[models.CategoryTodo])
	assert.Equal(t, 2, stats.TotalUsage)
	assert.Equal(t, uint64(3), stats.Version)
}
