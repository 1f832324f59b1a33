package agents

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/advisorhub/mira/pkg/models"
)

// Router holds every registered skill agent and resolves chat requests
// to the agent that should handle them.
type Router struct {
	mu       sync.RWMutex
	byID     map[string]Agent
	byModule map[models.Module]Agent
	logger   *slog.Logger
}

// NewRouter returns an empty router.
func NewRouter(logger *slog.Logger) *Router {
	return &Router{
		byID:     make(map[string]Agent),
		byModule: make(map[models.Module]Agent),
		logger:   logger.With("module", "agents"),
	}
}

// Register adds an agent under both its id and its module. Later
// registrations for the same module win.
func (r *Router) Register(agent Agent) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byID[agent.ID()] = agent
	r.byModule[agent.Module()] = agent
	r.logger.Debug("agent registered", "agent", agent.ID(), "skill", agent.Module())
}

// ByID looks an agent up by its identifier.
func (r *Router) ByID(agentID string) (Agent, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	agent, ok := r.byID[agentID]
	return agent, ok
}

// ByModule looks an agent up by the skill module it serves.
func (r *Router) ByModule(module models.Module) (Agent, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	agent, ok := r.byModule[module]
	return agent, ok
}

// Resolve picks the agent for a request: an explicit agent id wins,
// otherwise the context module decides.
func (r *Router) Resolve(agentID string, module models.Module) (Agent, error) {
	if agentID != "" {
		if agent, ok := r.ByID(agentID); ok {
			return agent, nil
		}
		return nil, fmt.Errorf("no agent registered with id %q", agentID)
	}

	if agent, ok := r.ByModule(module); ok {
		return agent, nil
	}
	return nil, fmt.Errorf("no agent registered for module %q", module)
}

// All returns every registered agent sorted by id.
func (r *Router) All() []Agent {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Agent, 0, len(r.byID))
	for _, agent := range r.byID {
		out = append(out, agent)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}
