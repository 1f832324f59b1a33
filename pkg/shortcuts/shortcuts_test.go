package shortcuts

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/advisorhub/mira/pkg/executor"
	"github.com/advisorhub/mira/pkg/models"
)

func testAction(id, shortcut, handlerKey string, requiresConfirmation bool) *models.Action {
	return &models.Action{
		ID:                   id,
		Name:                 id,
		Description:          "test action " + id,
		Category:             models.CategoryCustomer,
		Priority:             models.PriorityMedium,
		RequiredPermission:   models.PermissionRead,
		RequiresConfirmation: requiresConfirmation,
		HandlerKey:           handlerKey,
		KeyboardShortcut:     shortcut,
	}
}

func testContext() models.ActionContext {
	return models.ActionContext{
		UserID:      "advisor-1",
		Permissions: []models.PermissionLevel{models.PermissionRead, models.PermissionWrite},
	}
}

func newTestManager(t *testing.T) (*Manager, *executor.Executor) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	exec := executor.NewExecutor(logger, executor.Options{})

	return NewManager(logger, exec), exec
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "mixed case reordered", input: "Shift+Ctrl+L", expected: "ctrl+shift+l"},
		{name: "already canonical", input: "ctrl+shift+l", expected: "ctrl+shift+l"},
		{name: "alt before shift", input: "ALT+SHIFT+X", expected: "shift+alt+x"},
		{name: "spaces trimmed", input: "ctrl + k", expected: "ctrl+k"},
		{name: "bare key", input: "Escape", expected: "escape"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestRegisterActionNormalizesShortcut(t *testing.T) {
	manager, exec := newTestManager(t)
	exec.RegisterHandler("lead.create", func(_ context.Context, _ map[string]any, _ models.ActionContext) (*models.ActionResult, error) {
		return &models.ActionResult{Success: true}, nil
	})

	action := testAction("create_lead_1", "Shift+Ctrl+L", "lead.create", false)
	require.True(t, manager.RegisterAction(action))

	shortcut, ok := manager.ShortcutFor("create_lead_1")
	require.True(t, ok)
	assert.Equal(t, "ctrl+shift+l", shortcut)

	// The same mixed-case string resolves to the registered binding.
	result, handled := manager.Trigger(context.Background(), KeyEvent{Key: "L", Ctrl: true, Shift: true}, testContext())
	require.True(t, handled)
	require.NotNil(t, result)
	assert.True(t, result.Success)
}

func TestRegisterActionWithoutShortcut(t *testing.T) {
	manager, _ := newTestManager(t)

	assert.False(t, manager.RegisterAction(testAction("a1", "", "noop", false)))
	assert.False(t, manager.RegisterAction(nil))
}

func TestTriggerIgnoredInEditableFocus(t *testing.T) {
	manager, exec := newTestManager(t)
	exec.RegisterHandler("lead.create", func(_ context.Context, _ map[string]any, _ models.ActionContext) (*models.ActionResult, error) {
		return &models.ActionResult{Success: true}, nil
	})
	manager.RegisterAction(testAction("create_lead_1", "ctrl+shift+l", "lead.create", false))

	var closed bool
	manager.RegisterGlobal(ShortcutClose, func(_ context.Context, _ models.ActionContext) error {
		closed = true
		return nil
	})

	_, handled := manager.Trigger(context.Background(), KeyEvent{Key: "l", Ctrl: true, Shift: true, Editable: true}, testContext())
	assert.False(t, handled, "action shortcuts are suppressed while typing")

	_, handled = manager.Trigger(context.Background(), KeyEvent{Key: "Escape", Editable: true}, testContext())
	assert.True(t, handled, "close still works while typing")
	assert.True(t, closed)
}

func TestTriggerKeepsConfirmationGate(t *testing.T) {
	manager, exec := newTestManager(t)

	var handlerCalls int
	exec.RegisterHandler("proposal.submit", func(_ context.Context, _ map[string]any, _ models.ActionContext) (*models.ActionResult, error) {
		handlerCalls++
		return &models.ActionResult{Success: true}, nil
	})
	manager.RegisterAction(testAction("submit_proposal_1", "ctrl+shift+p", "proposal.submit", true))

	result, handled := manager.Trigger(context.Background(), KeyEvent{Key: "p", Ctrl: true, Shift: true}, testContext())
	require.True(t, handled)
	require.NotNil(t, result)

	assert.False(t, result.Success)
	assert.Equal(t, 0, handlerCalls, "confirmation gate blocks the handler")
	assert.Equal(t, true, result.Metadata["requiresConfirmation"])
}

func TestGlobalShortcutWinsOverBinding(t *testing.T) {
	manager, exec := newTestManager(t)

	var handlerCalls int
	exec.RegisterHandler("lead.create", func(_ context.Context, _ map[string]any, _ models.ActionContext) (*models.ActionResult, error) {
		handlerCalls++
		return &models.ActionResult{Success: true}, nil
	})
	manager.RegisterAction(testAction("create_lead_1", "ctrl+k", "lead.create", false))

	var paletteOpened bool
	manager.RegisterGlobal(ShortcutCommandPalette, func(_ context.Context, _ models.ActionContext) error {
		paletteOpened = true
		return nil
	})

	result, handled := manager.Trigger(context.Background(), KeyEvent{Key: "k", Ctrl: true}, testContext())
	require.True(t, handled)
	assert.Nil(t, result)
	assert.True(t, paletteOpened)
	assert.Equal(t, 0, handlerCalls)
}

func TestDisabledBindingAndManager(t *testing.T) {
	manager, exec := newTestManager(t)
	exec.RegisterHandler("lead.create", func(_ context.Context, _ map[string]any, _ models.ActionContext) (*models.ActionResult, error) {
		return &models.ActionResult{Success: true}, nil
	})
	manager.RegisterAction(testAction("create_lead_1", "ctrl+shift+l", "lead.create", false))

	manager.SetBindingEnabled("ctrl+shift+l", false)
	_, handled := manager.Trigger(context.Background(), KeyEvent{Key: "l", Ctrl: true, Shift: true}, testContext())
	assert.False(t, handled)

	manager.SetBindingEnabled("ctrl+shift+l", true)
	manager.SetEnabled(false)
	_, handled = manager.Trigger(context.Background(), KeyEvent{Key: "l", Ctrl: true, Shift: true}, testContext())
	assert.False(t, handled)
}

func TestMetaKeyActsAsCtrl(t *testing.T) {
	manager, exec := newTestManager(t)
	exec.RegisterHandler("lead.create", func(_ context.Context, _ map[string]any, _ models.ActionContext) (*models.ActionResult, error) {
		return &models.ActionResult{Success: true}, nil
	})
	manager.RegisterAction(testAction("create_lead_1", "ctrl+shift+l", "lead.create", false))

	_, handled := manager.Trigger(context.Background(), KeyEvent{Key: "l", Meta: true, Shift: true}, testContext())
	assert.True(t, handled)
}

func TestUnregisterAndAvailable(t *testing.T) {
	manager, _ := newTestManager(t)
	manager.RegisterAction(testAction("create_lead_1", "ctrl+shift+l", "lead.create", false))

	assert.False(t, manager.Available("Shift+Ctrl+L"))
	assert.True(t, manager.Unregister("SHIFT+ctrl+l"))
	assert.True(t, manager.Available("ctrl+shift+l"))
	assert.False(t, manager.Unregister("ctrl+shift+l"))
}
