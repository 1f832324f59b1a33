package tools

import (
	"context"

	"github.com/advisorhub/mira/pkg/models"
	"github.com/advisorhub/mira/pkg/store"
)

// RegisterTodoTools adds the task and calendar tools.
func RegisterTodoTools(registry *Registry, st store.TaskStore) {
	registry.Register(&Tool{
		Name:        "todo__tasks.list",
		Description: "List tasks with filters",
		Module:      models.ModuleTodo,
		Schema: objectSchema(nil, map[string]any{
			"status":  stringProp("Filter by task status"),
			"overdue": boolProp("Only overdue tasks"),
		}),
		Handler: func(ctx context.Context, args map[string]any, _ ToolContext) (any, error) {
			return st.ListTasks(ctx, store.TaskFilters{
				Status:  store.TaskStatus(argString(args, "status")),
				Overdue: argBool(args, "overdue"),
			})
		},
	})

	registry.Register(&Tool{
		Name:         "todo__tasks.create",
		Description:  "Create a new task",
		Module:       models.ModuleTodo,
		RequiresAuth: true,
		Schema: objectSchema([]string{"title"}, map[string]any{
			"title":      stringProp("Task title"),
			"dueDate":    stringProp("Due date, RFC 3339"),
			"customerId": stringProp("Related customer id"),
		}),
		Handler: func(ctx context.Context, args map[string]any, _ ToolContext) (any, error) {
			due, err := argTime(args, "dueDate")
			if err != nil {
				return nil, err
			}

			return st.CreateTask(ctx, store.CreateTaskInput{
				Title:      argString(args, "title"),
				DueDate:    due,
				CustomerID: argString(args, "customerId"),
			})
		},
	})

	registry.Register(&Tool{
		Name:         "todo__tasks.update",
		Description:  "Update an existing task",
		Module:       models.ModuleTodo,
		RequiresAuth: true,
		Schema: objectSchema([]string{"id"}, map[string]any{
			"id":      stringProp("Task id"),
			"title":   stringProp("New title"),
			"dueDate": stringProp("New due date, RFC 3339"),
			"status":  stringProp("New status"),
		}),
		Handler: func(ctx context.Context, args map[string]any, _ ToolContext) (any, error) {
			due, err := argTime(args, "dueDate")
			if err != nil {
				return nil, err
			}

			return st.UpdateTask(ctx, argString(args, "id"), store.UpdateTaskInput{
				Title:   argString(args, "title"),
				DueDate: due,
				Status:  store.TaskStatus(argString(args, "status")),
			})
		},
	})

	registry.Register(&Tool{
		Name:         "todo__tasks.markComplete",
		Description:  "Mark task as completed",
		Module:       models.ModuleTodo,
		RequiresAuth: true,
		Schema: objectSchema([]string{"id"}, map[string]any{
			"id": stringProp("Task id"),
		}),
		Handler: func(ctx context.Context, args map[string]any, _ ToolContext) (any, error) {
			return st.UpdateTask(ctx, argString(args, "id"), store.UpdateTaskInput{
				Status: store.TaskCompleted,
			})
		},
	})

	registry.Register(&Tool{
		Name:        "todo__calendar.getEvents",
		Description: "Get calendar events for a range",
		Module:      models.ModuleTodo,
		Schema: objectSchema([]string{"startDate", "endDate"}, map[string]any{
			"startDate": stringProp("Range start, RFC 3339"),
			"endDate":   stringProp("Range end, RFC 3339"),
		}),
		Handler: func(ctx context.Context, args map[string]any, _ ToolContext) (any, error) {
			start, err := argTime(args, "startDate")
			if err != nil {
				return nil, err
			}

			end, err := argTime(args, "endDate")
			if err != nil {
				return nil, err
			}

			if start == nil || end == nil {
				return nil, errMissingRange
			}

			return st.CalendarEvents(ctx, *start, *end)
		},
	})
}
