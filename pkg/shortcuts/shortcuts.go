// Package shortcuts binds normalized keyboard shortcut strings to
// registered actions or ad-hoc handlers and dispatches key events to
// them.
package shortcuts

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/advisorhub/mira/pkg/executor"
	"github.com/advisorhub/mira/pkg/models"
)

// Common shortcut strings shared with the frontend.
const (
	ShortcutCommandPalette = "ctrl+k"
	ShortcutMiraChat       = "ctrl+m"
	ShortcutUndo           = "ctrl+z"
	ShortcutClose          = "escape"
)

// KeyEvent is a keyboard event as reported by the client.
type KeyEvent struct {
	Key      string `json:"key"`
	Ctrl     bool   `json:"ctrl"`
	Meta     bool   `json:"meta"`
	Shift    bool   `json:"shift"`
	Alt      bool   `json:"alt"`
	Editable bool   `json:"editable"` // focus is inside an input or editable element
}

// Handler runs for a global shortcut not tied to an action.
type Handler func(ctx context.Context, actx models.ActionContext) error

// Binding is one shortcut-to-action association.
type Binding struct {
	Shortcut    string
	Action      *models.Action
	Enabled     bool
	Description string
}

// Manager resolves key events to bindings. Action-bound shortcuts run
// through the executor without skipping confirmation, so a gated action
// stays gated when triggered from the keyboard.
type Manager struct {
	mu       sync.RWMutex
	bindings map[string]*Binding
	globals  map[string]Handler
	enabled  bool
	exec     *executor.Executor
	logger   *slog.Logger
}

// NewManager creates a shortcut manager dispatching through exec.
func NewManager(logger *slog.Logger, exec *executor.Executor) *Manager {
	return &Manager{
		bindings: make(map[string]*Binding),
		globals:  make(map[string]Handler),
		enabled:  true,
		exec:     exec,
		logger:   logger.With("module", "shortcuts"),
	}
}

// Normalize canonicalizes a shortcut string: lowercase, modifiers
// ordered ctrl, shift, alt, then the key, joined by "+".
func Normalize(shortcut string) string {
	parts := strings.Split(strings.ToLower(shortcut), "+")
	for i, part := range parts {
		parts[i] = strings.TrimSpace(part)
	}

	order := func(part string) int {
		switch part {
		case "ctrl":
			return 0
		case "shift":
			return 1
		case "alt":
			return 2
		default:
			return 3
		}
	}

	sort.SliceStable(parts, func(i, j int) bool { return order(parts[i]) < order(parts[j]) })

	return strings.Join(parts, "+")
}

// eventShortcut renders a key event in the canonical form. Meta is
// treated as ctrl so macOS clients share bindings.
func eventShortcut(event KeyEvent) string {
	var parts []string

	if event.Ctrl || event.Meta {
		parts = append(parts, "ctrl")
	}
	if event.Shift {
		parts = append(parts, "shift")
	}
	if event.Alt {
		parts = append(parts, "alt")
	}

	key := strings.ToLower(event.Key)
	switch key {
	case "control", "shift", "alt", "meta", "":
	default:
		parts = append(parts, key)
	}

	return strings.Join(parts, "+")
}

// RegisterAction binds an action under its declared shortcut.
func (m *Manager) RegisterAction(action *models.Action) bool {
	if action == nil || action.KeyboardShortcut == "" {
		m.logger.Warn("Action has no shortcut defined", "action_id", actionID(action))
		return false
	}

	normalized := Normalize(action.KeyboardShortcut)

	m.mu.Lock()
	defer m.mu.Unlock()

	m.bindings[normalized] = &Binding{
		Shortcut:    normalized,
		Action:      action,
		Enabled:     true,
		Description: action.Description,
	}

	m.logger.Debug("Registered shortcut", "shortcut", normalized, "action", action.Name)

	return true
}

// RegisterGlobal binds a handler not tied to an action. Global bindings
// win over action bindings on the same shortcut.
func (m *Manager) RegisterGlobal(shortcut string, handler Handler) {
	normalized := Normalize(shortcut)

	m.mu.Lock()
	defer m.mu.Unlock()

	m.globals[normalized] = handler
}

// Unregister removes a binding. It reports whether anything was bound.
func (m *Manager) Unregister(shortcut string) bool {
	normalized := Normalize(shortcut)

	m.mu.Lock()
	defer m.mu.Unlock()

	_, hadBinding := m.bindings[normalized]
	_, hadGlobal := m.globals[normalized]

	delete(m.bindings, normalized)
	delete(m.globals, normalized)

	return hadBinding || hadGlobal
}

// SetBindingEnabled toggles one binding without removing it.
func (m *Manager) SetBindingEnabled(shortcut string, enabled bool) {
	normalized := Normalize(shortcut)

	m.mu.Lock()
	defer m.mu.Unlock()

	if binding, ok := m.bindings[normalized]; ok {
		binding.Enabled = enabled
	}
}

// SetEnabled toggles the whole manager.
func (m *Manager) SetEnabled(enabled bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.enabled = enabled
}

// Bindings returns every action binding sorted by shortcut.
func (m *Manager) Bindings() []Binding {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Binding, 0, len(m.bindings))
	for _, binding := range m.bindings {
		out = append(out, *binding)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Shortcut < out[j].Shortcut })

	return out
}

// ShortcutFor returns the shortcut bound to an action id.
func (m *Manager) ShortcutFor(actionID string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for shortcut, binding := range m.bindings {
		if binding.Action != nil && binding.Action.ID == actionID {
			return shortcut, true
		}
	}

	return "", false
}

// Available reports whether a shortcut is free to bind.
func (m *Manager) Available(shortcut string) bool {
	normalized := Normalize(shortcut)

	m.mu.RLock()
	defer m.mu.RUnlock()

	_, hasBinding := m.bindings[normalized]
	_, hasGlobal := m.globals[normalized]

	return !hasBinding && !hasGlobal
}

// Trigger dispatches a key event. Events from editable targets are
// dropped except for close semantics; global handlers run before action
// bindings; action bindings execute with the confirmation gate intact.
// It reports whether anything handled the event.
func (m *Manager) Trigger(ctx context.Context, event KeyEvent, actx models.ActionContext) (*models.ActionResult, bool) {
	m.mu.RLock()
	enabled := m.enabled
	m.mu.RUnlock()

	if !enabled {
		return nil, false
	}

	shortcut := eventShortcut(event)

	if event.Editable && shortcut != ShortcutClose {
		return nil, false
	}

	m.mu.RLock()
	global := m.globals[shortcut]
	binding := m.bindings[shortcut]
	m.mu.RUnlock()

	if global != nil {
		if err := global(ctx, actx); err != nil {
			m.logger.Error("Global shortcut handler failed", "shortcut", shortcut, "error", err)
		}

		return nil, true
	}

	if binding == nil || !binding.Enabled {
		return nil, false
	}

	m.logger.Debug("Executing shortcut action", "shortcut", shortcut, "action", binding.Action.Name)

	result := m.exec.Execute(ctx, models.ActionRequest{
		Action:     binding.Action,
		Parameters: map[string]any{},
		Context:    actx,
		// Shortcuts never bypass confirmation for gated actions.
		SkipConfirmation: false,
	})

	if !result.Success {
		m.logger.Error("Shortcut action failed", "action", binding.Action.Name, "error", result.Error)
	}

	return result, true
}

func actionID(action *models.Action) string {
	if action == nil {
		return ""
	}

	return action.ID
}
