// Package web provides HTTP handlers and REST API endpoints for the
// action orchestration service.
package web

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"

	"github.com/advisorhub/mira/pkg/agents"
	"github.com/advisorhub/mira/pkg/behavior"
	"github.com/advisorhub/mira/pkg/eventbus"
	"github.com/advisorhub/mira/pkg/events"
	"github.com/advisorhub/mira/pkg/executor"
	"github.com/advisorhub/mira/pkg/models"
	"github.com/advisorhub/mira/pkg/registry"
	"github.com/advisorhub/mira/pkg/shortcuts"
	"github.com/advisorhub/mira/pkg/store"
	"github.com/advisorhub/mira/pkg/suggestions"
)

// ContextObserver is notified of every chat context. The insight sweep uses
// it to track which advisor sessions are live.
type ContextObserver interface {
	Observe(mctx models.MiraContext)
}

type APIHandlers struct {
	exec        *executor.Executor
	actions     *registry.Registry
	router      *agents.Router
	suggestions *suggestions.Engine
	shortcuts   *shortcuts.Manager
	recorder    *behavior.Recorder
	observer    ContextObserver
	publisher   eventbus.EventPublisher
	store       store.Store
	validator   *validator.Validate
	logger      *slog.Logger
}

// NewAPIHandlers wires the handler set. recorder may be nil when the
// service runs without Redis; suggestion requests then need an inline
// behavioral context. observer and publisher may be nil.
func NewAPIHandlers(
	logger *slog.Logger,
	exec *executor.Executor,
	actions *registry.Registry,
	router *agents.Router,
	engine *suggestions.Engine,
	manager *shortcuts.Manager,
	recorder *behavior.Recorder,
	observer ContextObserver,
	publisher eventbus.EventPublisher,
	st store.Store,
	validator *validator.Validate,
) *APIHandlers {
	return &APIHandlers{
		exec:        exec,
		actions:     actions,
		router:      router,
		suggestions: engine,
		shortcuts:   manager,
		recorder:    recorder,
		observer:    observer,
		publisher:   publisher,
		store:       st,
		validator:   validator,
		logger:      logger.With("module", "web"),
	}
}

// ExecuteAction resolves a registered action and runs it through the
// executor pipeline. Pipeline failures still return 200 with a failed
// result body; only transport-level problems map to error statuses.
func (h *APIHandlers) ExecuteAction(c fiber.Ctx) error {
	var req ExecuteActionRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(c, "Invalid request body: "+err.Error())
	}

	if err := h.validator.Struct(&req); err != nil {
		return badRequest(c, err.Error())
	}

	action, err := h.actions.Get(req.ActionID)
	if err != nil {
		return notFound(c, "Action not found: "+req.ActionID)
	}

	result := h.exec.Execute(c.Context(), models.ActionRequest{
		Action:           action,
		Parameters:       req.Parameters,
		Context:          req.Context,
		SkipConfirmation: req.SkipConfirmation,
		ValidateOnly:     req.ValidateOnly,
	})

	return c.JSON(result)
}

// UndoLastAction rolls back the newest history entry.
func (h *APIHandlers) UndoLastAction(c fiber.Ctx) error {
	return c.JSON(h.exec.UndoLast(c.Context()))
}

// GetHistory returns recent executions, newest first.
func (h *APIHandlers) GetHistory(c fiber.Ctx) error {
	limit, err := queryInt(c, "limit", 0)
	if err != nil {
		return badRequest(c, "Invalid limit: "+err.Error())
	}

	return c.JSON(fiber.Map{"history": h.exec.History(limit)})
}

// ListActions returns registered actions, optionally filtered by
// category or tag.
func (h *APIHandlers) ListActions(c fiber.Ctx) error {
	var actions []*models.Action

	switch {
	case c.Query("category") != "":
		actions = h.actions.ByCategory(models.Category(c.Query("category")))
	case c.Query("tag") != "":
		actions = h.actions.ByTag(c.Query("tag"))
	default:
		actions = h.actions.All()
	}

	return c.JSON(fiber.Map{"actions": actions, "count": len(actions)})
}

// SearchActions matches actions by name, description, or tag.
func (h *APIHandlers) SearchActions(c fiber.Ctx) error {
	query := c.Query("q")
	if query == "" {
		return badRequest(c, "Query parameter q is required")
	}

	actions := h.actions.Search(query)

	return c.JSON(fiber.Map{"actions": actions, "count": len(actions)})
}

// GetMostUsedActions returns actions ordered by usage count.
func (h *APIHandlers) GetMostUsedActions(c fiber.Ctx) error {
	limit, err := queryInt(c, "limit", 5)
	if err != nil {
		return badRequest(c, "Invalid limit: "+err.Error())
	}

	return c.JSON(fiber.Map{"actions": h.actions.MostUsed(limit)})
}

// GetAction returns one registered action by id.
func (h *APIHandlers) GetAction(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Action ID is required")
	}

	action, err := h.actions.Get(id)
	if err != nil {
		return notFound(c, "Action not found: "+id)
	}

	return c.JSON(action)
}

// Chat dispatches a routed intent to the owning skill agent.
func (h *APIHandlers) Chat(c fiber.Ctx) error {
	var req ChatRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(c, "Invalid request body: "+err.Error())
	}

	if err := h.validator.Struct(&req); err != nil {
		return badRequest(c, err.Error())
	}

	agent, err := h.router.Resolve(req.AgentID, req.Context.Module)
	if err != nil {
		return notFound(c, err.Error())
	}

	if h.observer != nil {
		h.observer.Observe(req.Context)
	}

	response, err := agent.Execute(c.Context(), req.Intent, req.Context, req.Message)
	if err != nil {
		return internalError(c, err)
	}

	return c.JSON(response)
}

// GetSuggestions returns ranked suggestions for a session or an inline
// behavioral context.
func (h *APIHandlers) GetSuggestions(c fiber.Ctx) error {
	var req SuggestionsRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(c, "Invalid request body: "+err.Error())
	}

	var bctx models.BehavioralContext

	switch {
	case req.Behavioral != nil:
		bctx = *req.Behavioral
	case req.SessionID != "" && h.recorder != nil:
		snapshot, err := h.recorder.Snapshot(c.Context(), req.SessionID)
		if err != nil {
			return internalError(c, err)
		}

		bctx = snapshot
	default:
		return badRequest(c, "Either behavioral context or session_id is required")
	}

	suggested := h.suggestions.Suggest(c.Context(), bctx, req.Limit)

	return c.JSON(fiber.Map{"suggestions": suggested})
}

// GetQuickActions returns the always-available suggestions for a module.
func (h *APIHandlers) GetQuickActions(c fiber.Ctx) error {
	module := c.Query("module")
	if module == "" {
		return badRequest(c, "Query parameter module is required")
	}

	return c.JSON(fiber.Map{"suggestions": h.suggestions.QuickActions(models.Module(module))})
}

// GetAgentSuggestions returns a module agent's proactive suggestions.
func (h *APIHandlers) GetAgentSuggestions(c fiber.Ctx) error {
	module := models.Module(c.Query("module"))

	agent, err := h.router.Resolve(c.Query("agent_id"), module)
	if err != nil {
		return notFound(c, err.Error())
	}

	mctx := models.MiraContext{
		Module:    module,
		Page:      c.Query("page"),
		AdvisorID: c.Query("advisor_id"),
	}

	return c.JSON(fiber.Map{"suggestions": agent.Suggestions(c.Context(), mctx)})
}

// ListShortcuts returns every shortcut binding.
func (h *APIHandlers) ListShortcuts(c fiber.Ctx) error {
	bindings := h.shortcuts.Bindings()

	out := make([]ShortcutBindingResponse, 0, len(bindings))
	for _, binding := range bindings {
		out = append(out, TransformBindingResponse(binding))
	}

	return c.JSON(fiber.Map{"shortcuts": out})
}

// TriggerShortcut dispatches a keyboard event through the shortcut
// manager.
func (h *APIHandlers) TriggerShortcut(c fiber.Ctx) error {
	var req KeyEventRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(c, "Invalid request body: "+err.Error())
	}

	result, handled := h.shortcuts.Trigger(c.Context(), req.Event, req.Context)

	return c.JSON(fiber.Map{"handled": handled, "result": result})
}

// RecordNavigation appends a page transition to the session stream.
func (h *APIHandlers) RecordNavigation(c fiber.Ctx) error {
	if h.recorder == nil {
		return badRequest(c, "Behavior tracking is not enabled")
	}

	var req NavigationRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(c, "Invalid request body: "+err.Error())
	}

	if err := h.validator.Struct(&req); err != nil {
		return badRequest(c, err.Error())
	}

	if err := h.recorder.RecordNavigation(c.Context(), req.SessionID, req.Event); err != nil {
		return internalError(c, err)
	}

	if req.PageData != nil {
		if err := h.recorder.SetPageData(c.Context(), req.SessionID, req.PageData); err != nil {
			return internalError(c, err)
		}
	}

	if h.publisher != nil {
		event := events.NavigationRecorded{
			BaseEvent: events.NewBaseEvent(events.NavigationRecordedEvent, ""),
			SessionID: req.SessionID,
			FromPage:  req.Event.FromPage,
			ToPage:    req.Event.ToPage,
			Module:    req.Event.Module,
			Trigger:   req.Event.Trigger,
		}
		if err := h.publisher.Publish(c.Context(), event); err != nil {
			h.logger.Error("Failed to publish navigation event",
				"session_id", req.SessionID, "error", err)
		}
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// HealthCheck reports storage and registry health.
func (h *APIHandlers) HealthCheck(c fiber.Ctx) error {
	storeErr := h.store.HealthCheck(c.Context())
	stats := h.actions.Stats()

	status := "healthy"
	message := "Mira API is healthy"
	httpStatus := http.StatusOK

	if storeErr != nil {
		status = "unhealthy"
		message = "Mira API is unhealthy"
		httpStatus = http.StatusInternalServerError
	}

	return c.Status(httpStatus).JSON(fiber.Map{
		"status":  status,
		"message": message,
		"checkers": fiber.Map{
			"store": fiber.Map{
				"healthy": storeErr == nil,
			},
			"registry": fiber.Map{
				"healthy":       true,
				"total_actions": stats.TotalActions,
			},
		},
	})
}

func queryInt(c fiber.Ctx, name string, fallback int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, nil
	}

	return strconv.Atoi(raw)
}
