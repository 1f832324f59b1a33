package insights

import (
	"context"
	"sync"
	"time"

	"github.com/advisorhub/mira/pkg/models"
)

const defaultContextTTL = 30 * time.Minute

type trackedContext struct {
	mctx   models.MiraContext
	seenAt time.Time
}

// ContextTracker remembers recently observed advisor contexts so the sweep
// only evaluates suggestions against live sessions. A context expires when
// the advisor has not been seen within the TTL.
type ContextTracker struct {
	mu   sync.Mutex
	seen map[string]trackedContext
	ttl  time.Duration
	now  func() time.Time
}

// NewContextTracker creates a tracker. ttl <= 0 falls back to the default.
func NewContextTracker(ttl time.Duration) *ContextTracker {
	if ttl <= 0 {
		ttl = defaultContextTTL
	}

	return &ContextTracker{
		seen: make(map[string]trackedContext),
		ttl:  ttl,
		now:  time.Now,
	}
}

// Observe records one advisor context. The latest observation per advisor
// and module wins.
func (t *ContextTracker) Observe(mctx models.MiraContext) {
	if mctx.Module == "" {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.seen[mctx.AdvisorID+"|"+string(mctx.Module)] = trackedContext{mctx: mctx, seenAt: t.now()}
}

// ActiveContexts returns every unexpired context and prunes the rest.
func (t *ContextTracker) ActiveContexts(_ context.Context) ([]models.MiraContext, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	cutoff := t.now().Add(-t.ttl)
	out := make([]models.MiraContext, 0, len(t.seen))

	for key, tracked := range t.seen {
		if tracked.seenAt.Before(cutoff) {
			delete(t.seen, key)
			continue
		}

		out = append(out, tracked.mctx)
	}

	return out, nil
}
