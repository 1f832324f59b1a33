package agents

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/advisorhub/mira/pkg/models"
	"github.com/advisorhub/mira/pkg/tools"
)

// Intents handled by the todo agent.
const (
	IntentListTasks    = "list_tasks"
	IntentCreateTask   = "create_task"
	IntentMarkComplete = "mark_complete"
	IntentViewCalendar = "view_calendar"
)

// TodoAgent keeps advisors organized across tasks and calendar events.
type TodoAgent struct {
	tools  *tools.Registry
	logger *slog.Logger
	now    func() time.Time
}

func NewTodoAgent(logger *slog.Logger, registry *tools.Registry) *TodoAgent {
	return &TodoAgent{
		tools:  registry,
		logger: logger.With("module", "agents.todo"),
		now:    time.Now,
	}
}

func (a *TodoAgent) ID() string            { return "ToDoAgent" }
func (a *TodoAgent) Module() models.Module { return models.ModuleTodo }

func (a *TodoAgent) Execute(ctx context.Context, intent string, mctx models.MiraContext, _ string) (*models.MiraResponse, error) {
	switch intent {
	case IntentListTasks:
		return a.listTasks(ctx, mctx), nil
	case IntentCreateTask:
		return a.createTask(ctx, mctx), nil
	case IntentMarkComplete:
		return a.markComplete(ctx, mctx), nil
	case IntentViewCalendar:
		return a.viewCalendar(ctx, mctx), nil
	default:
		return BuildResponse(a.ID(), intent, mctx,
			"Opening To-Do workspace.",
			[]models.UIAction{NavigateAction(mctx.Module, "/todo", nil)},
		), nil
	}
}

func (a *TodoAgent) listTasks(ctx context.Context, mctx models.MiraContext) *models.MiraResponse {
	filters := map[string]any{
		"status":  mctx.PageString("status", "pending"),
		"overdue": mctx.PageBool("overdue"),
	}

	invokeTool(ctx, a.tools, "todo__tasks.list", filters, mctx)

	actions := []models.UIAction{NavigateAction(mctx.Module, "/todo", filters)}
	reply := "Listing your pending items with overdue filter applied so you can triage quickly."

	return BuildResponse(a.ID(), IntentListTasks, mctx, reply, actions, WithSubtopic("tasks"))
}

func (a *TodoAgent) createTask(ctx context.Context, mctx models.MiraContext) *models.MiraResponse {
	payload := map[string]any{
		"title":   mctx.PageString("title", "Follow up with client"),
		"dueDate": mctx.PageString("dueDate", a.now().UTC().Format(time.RFC3339)),
	}
	if customerID := mctx.PageString("customerId", ""); customerID != "" {
		payload["customerId"] = customerID
	}

	invokeTool(ctx, a.tools, "todo__tasks.create", payload, mctx)

	actions := CRUDFlow(OpCreate, mctx.Module, FlowOptions{
		Page:        "/todo",
		Payload:     payload,
		Description: "Prefill the new task modal",
	})

	reply := "I'll open the To-Do modal with your task details prefilled for quick confirmation."

	return BuildResponse(a.ID(), IntentCreateTask, mctx, reply, actions, WithSubtopic("tasks"))
}

func (a *TodoAgent) markComplete(ctx context.Context, mctx models.MiraContext) *models.MiraResponse {
	taskID := mctx.PageString("taskId", "T-1")

	invokeTool(ctx, a.tools, "todo__tasks.markComplete", map[string]any{"id": taskID}, mctx)

	actions := CRUDFlow(OpUpdate, mctx.Module, FlowOptions{
		Page:        "/todo",
		Payload:     map[string]any{"id": taskID, "status": "completed"},
		Endpoint:    "/api/todo/tasks/" + taskID,
		Description: "Confirm completion",
	})

	reply := fmt.Sprintf("Marking task %s as done and refreshing your list.", taskID)

	return BuildResponse(a.ID(), IntentMarkComplete, mctx, reply, actions, WithSubtopic("tasks"))
}

func (a *TodoAgent) viewCalendar(ctx context.Context, mctx models.MiraContext) *models.MiraResponse {
	startDate := mctx.PageString("startDate", a.now().UTC().Format(time.RFC3339))
	endDate := mctx.PageString("endDate", a.now().UTC().Add(7*24*time.Hour).Format(time.RFC3339))

	invokeTool(ctx, a.tools, "todo__calendar.getEvents", map[string]any{
		"startDate": startDate,
		"endDate":   endDate,
	}, mctx)

	actions := []models.UIAction{
		NavigateAction(mctx.Module, "/todo/calendar", map[string]any{"startDate": startDate, "endDate": endDate}),
	}
	reply := "Switching to calendar view and highlighting events for the selected range."

	return BuildResponse(a.ID(), IntentViewCalendar, mctx, reply, actions, WithSubtopic("calendar"))
}

func (a *TodoAgent) Suggestions(ctx context.Context, mctx models.MiraContext) []models.SuggestedIntent {
	return nil
}
