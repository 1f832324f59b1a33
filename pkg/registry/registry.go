// Package registry indexes registered actions by id, category, tag, and
// keyboard shortcut, and tracks usage counters for ranking.
package registry

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/advisorhub/mira/pkg/models"
)

// Config controls registry caching and usage tracking.
type Config struct {
	EnableCaching bool
	CacheTTL      time.Duration
	TrackUsage    bool
}

// DefaultConfig mirrors the production defaults.
func DefaultConfig() Config {
	return Config{
		EnableCaching: true,
		CacheTTL:      5 * time.Minute,
		TrackUsage:    true,
	}
}

type cacheEntry struct {
	version  uint64
	storedAt time.Time
	actions  []*models.Action
}

// Registry is the authoritative action index. Derived views (category, tag,
// shortcut lookups) are cached against a version counter that every mutation
// bumps, so a stale entry can never be served after a register/unregister.
type Registry struct {
	mu      sync.RWMutex
	actions map[string]*models.Action
	usage   map[string]int
	cache   map[string]cacheEntry
	version uint64
	config  Config
	logger  *slog.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(logger *slog.Logger, config Config) *Registry {
	return &Registry{
		actions: make(map[string]*models.Action),
		usage:   make(map[string]int),
		cache:   make(map[string]cacheEntry),
		config:  config,
		logger:  logger.With("module", "action-registry"),
	}
}

// Register adds an action. Re-registering an id replaces the previous
// definition and resets nothing else.
func (r *Registry) Register(action *models.Action) error {
	if action == nil || action.ID == "" {
		return fmt.Errorf("action must have an id")
	}

	if action.HandlerKey == "" {
		return fmt.Errorf("action '%s' must declare a handler key", action.ID)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.actions[action.ID] = action
	r.version++

	r.logger.Debug("Registered action", "action_id", action.ID, "category", action.Category)

	return nil
}

// Unregister removes an action by id.
func (r *Registry) Unregister(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.actions[id]; !ok {
		return fmt.Errorf("action '%s' not registered", id)
	}

	delete(r.actions, id)
	delete(r.usage, id)
	r.version++

	return nil
}

// Get returns the action with the given id. Lookups are pure reads and do
// not tick usage counters; usage is recorded via RecordUsage when an
// execution succeeds.
func (r *Registry) Get(id string) (*models.Action, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	action, ok := r.actions[id]
	if !ok {
		return nil, fmt.Errorf("action '%s' not registered", id)
	}

	return action, nil
}

// All returns every registered action, sorted by id for stable output.
func (r *Registry) All() []*models.Action {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*models.Action, 0, len(r.actions))
	for _, a := range r.actions {
		out = append(out, a)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out
}

// ByCategory returns actions in the given category.
func (r *Registry) ByCategory(category models.Category) []*models.Action {
	return r.cached("category:"+string(category), func(a *models.Action) bool {
		return a.Category == category
	})
}

// ByTag returns actions carrying the given tag.
func (r *Registry) ByTag(tag string) []*models.Action {
	return r.cached("tag:"+tag, func(a *models.Action) bool {
		return a.HasTag(tag)
	})
}

// ByShortcut returns the action bound to a normalized shortcut string.
func (r *Registry) ByShortcut(shortcut string) (*models.Action, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.actions {
		if a.KeyboardShortcut == shortcut {
			return a, true
		}
	}

	return nil, false
}

// Search matches the query against action names, descriptions, and tags,
// case-insensitively.
func (r *Registry) Search(query string) []*models.Action {
	lower := strings.ToLower(query)

	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*models.Action

	for _, a := range r.actions {
		if strings.Contains(strings.ToLower(a.Name), lower) ||
			strings.Contains(strings.ToLower(a.Description), lower) ||
			tagMatches(a.Tags, lower) {
			out = append(out, a)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out
}

// RecordUsage increments the usage counter for an action id. No-op when
// tracking is disabled.
func (r *Registry) RecordUsage(id string) {
	if !r.config.TrackUsage {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.actions[id]; ok {
		r.usage[id]++
	}
}

// UsageCount returns the recorded usage for an action id.
func (r *Registry) UsageCount(id string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.usage[id]
}

// MostUsed returns up to limit actions ordered by descending usage count.
func (r *Registry) MostUsed(limit int) []*models.Action {
	r.mu.RLock()
	defer r.mu.RUnlock()

	type counted struct {
		action *models.Action
		count  int
	}

	ranked := make([]counted, 0, len(r.usage))

	for id, count := range r.usage {
		if a, ok := r.actions[id]; ok {
			ranked = append(ranked, counted{action: a, count: count})
		}
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}

		return ranked[i].action.ID < ranked[j].action.ID
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}

	out := make([]*models.Action, len(ranked))
	for i, c := range ranked {
		out[i] = c.action
	}

	return out
}

// Stats summarizes the registry for admin surfaces.
type Stats struct {
	TotalActions int                     `json:"totalActions"`
	ByCategory   map[models.Category]int `json:"byCategory"`
	TotalUsage   int                     `json:"totalUsage"`
	CacheEntries int                     `json:"cacheEntries"`
	Version      uint64                  `json:"version"`
}

// Stats returns a snapshot of registry counters.
func (r *Registry) Stats() Stats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s := Stats{
		TotalActions: len(r.actions),
		ByCategory:   make(map[models.Category]int),
		CacheEntries: len(r.cache),
		Version:      r.version,
	}

	for _, a := range r.actions {
		s.ByCategory[a.Category]++
	}

	for _, count := range r.usage {
		s.TotalUsage += count
	}

	return s
}

// cached serves a derived view from the cache when its version matches the
// current registry version and its TTL has not elapsed; otherwise it
// recomputes and stores the view. A zero TTL means entries never expire and
// only version bumps invalidate them.
func (r *Registry) cached(key string, match func(*models.Action) bool) []*models.Action {
	if r.config.EnableCaching {
		r.mu.RLock()
		entry, ok := r.cache[key]
		version := r.version
		r.mu.RUnlock()

		fresh := r.config.CacheTTL == 0 || time.Since(entry.storedAt) < r.config.CacheTTL
		if ok && entry.version == version && fresh {
			return entry.actions
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*models.Action

	for _, a := range r.actions {
		if match(a) {
			out = append(out, a)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	if r.config.EnableCaching {
		r.cache[key] = cacheEntry{version: r.version, storedAt: time.Now(), actions: out}
	}

	return out
}

func tagMatches(tags []string, lower string) bool {
	for _, t := range tags {
		if strings.Contains(strings.ToLower(t), lower) {
			return true
		}
	}

	return false
}
