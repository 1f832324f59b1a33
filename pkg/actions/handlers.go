// Package actions binds the executor's handler keys to store-backed
// implementations. Handlers for undoable actions return an inverse command
// that reverts the effect.
package actions

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/advisorhub/mira/pkg/executor"
	"github.com/advisorhub/mira/pkg/models"
	"github.com/advisorhub/mira/pkg/store"
)

// Register binds every handler key the action catalog references.
func Register(exec *executor.Executor, st store.Store, logger *slog.Logger) {
	h := &handlers{store: st, logger: logger.With("module", "action-handlers")}

	exec.RegisterHandler("navigate", h.navigate)
	exec.RegisterHandler("lead.create", h.createLead)
	exec.RegisterHandler("customer.view", h.viewCustomer)
	exec.RegisterHandler("customer.update", h.updateCustomer)
	exec.RegisterHandler("proposal.create", h.createProposal)
	exec.RegisterHandler("proposal.submit", h.submitProposal)
	exec.RegisterHandler("analytics.filter", h.applyAnalyticsFilter)
	exec.RegisterHandler("analytics.export", h.exportAnalytics)
	exec.RegisterHandler("task.create", h.createTask)
	exec.RegisterHandler("task.complete", h.completeTask)
	exec.RegisterHandler("broadcast.create", h.createBroadcast)
}

type handlers struct {
	store  store.Store
	logger *slog.Logger
}

// navigate carries no backend effect; the frontend applies the returned
// target.
func (h *handlers) navigate(_ context.Context, params map[string]any, _ models.ActionContext) (*models.ActionResult, error) {
	return &models.ActionResult{
		Success: true,
		Data: map[string]any{
			"page":   paramString(params, "page"),
			"params": params,
		},
	}, nil
}

func (h *handlers) createLead(ctx context.Context, params map[string]any, _ models.ActionContext) (*models.ActionResult, error) {
	lead, err := h.store.CreateLead(ctx, store.CreateLeadInput{
		Name:          paramString(params, "name"),
		ContactNumber: paramString(params, "contact_number"),
		Email:         paramString(params, "email"),
		LeadSource:    paramString(params, "lead_source"),
	})
	if err != nil {
		return nil, fmt.Errorf("create lead: %w", err)
	}

	return &models.ActionResult{
		Success:  true,
		Data:     lead,
		Undoable: true,
		Undo: &models.InverseCommand{
			Description: "Delete lead " + lead.ID,
			Snapshot:    map[string]any{"leadId": lead.ID},
			Apply: func(ctx context.Context) (*models.ActionResult, error) {
				if err := h.store.DeleteLead(ctx, lead.ID); err != nil {
					return nil, fmt.Errorf("delete lead %s: %w", lead.ID, err)
				}

				return &models.ActionResult{Success: true}, nil
			},
		},
	}, nil
}

func (h *handlers) viewCustomer(ctx context.Context, params map[string]any, _ models.ActionContext) (*models.ActionResult, error) {
	id := paramString(params, "customerId")

	customer, err := h.store.GetCustomer(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get customer %s: %w", id, err)
	}

	return &models.ActionResult{
		Success: true,
		Data: map[string]any{
			"page":     "/customer/detail/" + customer.ID,
			"customer": customer,
		},
	}, nil
}

// updateCustomer snapshots the lead before mutating so the inverse command
// can restore the previous status and owner.
func (h *handlers) updateCustomer(ctx context.Context, params map[string]any, _ models.ActionContext) (*models.ActionResult, error) {
	id := paramString(params, "customerId")

	fields, _ := params["fields"].(map[string]any)

	previous, err := h.findLead(ctx, id)
	if err != nil {
		return nil, err
	}

	input := store.UpdateLeadInput{
		Status: store.LeadStatus(paramString(fields, "status")),
		Owner:  paramString(fields, "owner"),
	}

	lead, err := h.store.UpdateLead(ctx, id, input)
	if err != nil {
		return nil, fmt.Errorf("update lead %s: %w", id, err)
	}

	return &models.ActionResult{
		Success:  true,
		Data:     lead,
		Undoable: true,
		Undo: &models.InverseCommand{
			Description: "Restore previous details of lead " + id,
			Snapshot:    map[string]any{"status": string(previous.Status), "owner": previous.Owner},
			Apply: func(ctx context.Context) (*models.ActionResult, error) {
				_, err := h.store.UpdateLead(ctx, id, store.UpdateLeadInput{
					Status: previous.Status,
					Owner:  previous.Owner,
				})
				if err != nil {
					return nil, fmt.Errorf("restore lead %s: %w", id, err)
				}

				return &models.ActionResult{Success: true}, nil
			},
		},
	}, nil
}

func (h *handlers) createProposal(ctx context.Context, params map[string]any, _ models.ActionContext) (*models.ActionResult, error) {
	productID := paramString(params, "productId")
	if productID == "" {
		productID = paramString(params, "productType")
	}

	proposal, err := h.store.CreateProposal(ctx, store.CreateProposalInput{
		CustomerID: paramString(params, "customerId"),
		ProductID:  productID,
		Premium:    paramFloat(params, "coverageAmount"),
	})
	if err != nil {
		return nil, fmt.Errorf("create proposal: %w", err)
	}

	return &models.ActionResult{
		Success:  true,
		Data:     proposal,
		Undoable: true,
		Undo: &models.InverseCommand{
			Description: "Delete proposal " + proposal.ID,
			Snapshot:    map[string]any{"proposalId": proposal.ID},
			Apply: func(ctx context.Context) (*models.ActionResult, error) {
				if err := h.store.DeleteProposal(ctx, proposal.ID); err != nil {
					return nil, fmt.Errorf("delete proposal %s: %w", proposal.ID, err)
				}

				return &models.ActionResult{Success: true}, nil
			},
		},
	}, nil
}

func (h *handlers) submitProposal(ctx context.Context, params map[string]any, _ models.ActionContext) (*models.ActionResult, error) {
	id := paramString(params, "proposalId")

	proposal, err := h.store.UpdateProposalStatus(ctx, id, store.ProposalSubmitted)
	if err != nil {
		return nil, fmt.Errorf("submit proposal %s: %w", id, err)
	}

	return &models.ActionResult{Success: true, Data: proposal}, nil
}

// applyAnalyticsFilter echoes the filter set back; the dashboard applies it
// client-side.
func (h *handlers) applyAnalyticsFilter(_ context.Context, params map[string]any, _ models.ActionContext) (*models.ActionResult, error) {
	return &models.ActionResult{
		Success: true,
		Data:    map[string]any{"filters": params, "filtersApplied": true},
	}, nil
}

func (h *handlers) exportAnalytics(ctx context.Context, params map[string]any, actx models.ActionContext) (*models.ActionResult, error) {
	format := paramString(params, "format")
	if format == "" {
		format = "csv"
	}

	performance, err := h.store.Performance(ctx, actx.UserID, "YTD")
	if err != nil {
		return nil, fmt.Errorf("load performance for export: %w", err)
	}

	return &models.ActionResult{
		Success: true,
		Data: map[string]any{
			"format":      format,
			"performance": performance,
			"generatedAt": time.Now().UTC().Format(time.RFC3339),
		},
	}, nil
}

func (h *handlers) createTask(ctx context.Context, params map[string]any, _ models.ActionContext) (*models.ActionResult, error) {
	dueDate, err := paramTime(params, "dueDate")
	if err != nil {
		return nil, err
	}

	task, err := h.store.CreateTask(ctx, store.CreateTaskInput{
		Title:      paramString(params, "title"),
		DueDate:    dueDate,
		CustomerID: paramString(params, "relatedCustomerId"),
	})
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	return &models.ActionResult{
		Success:  true,
		Data:     task,
		Undoable: true,
		Undo: &models.InverseCommand{
			Description: "Delete task " + task.ID,
			Snapshot:    map[string]any{"taskId": task.ID},
			Apply: func(ctx context.Context) (*models.ActionResult, error) {
				if err := h.store.DeleteTask(ctx, task.ID); err != nil {
					return nil, fmt.Errorf("delete task %s: %w", task.ID, err)
				}

				return &models.ActionResult{Success: true}, nil
			},
		},
	}, nil
}

func (h *handlers) completeTask(ctx context.Context, params map[string]any, _ models.ActionContext) (*models.ActionResult, error) {
	id := paramString(params, "taskId")

	task, err := h.store.UpdateTask(ctx, id, store.UpdateTaskInput{Status: store.TaskCompleted})
	if err != nil {
		return nil, fmt.Errorf("complete task %s: %w", id, err)
	}

	return &models.ActionResult{
		Success:  true,
		Data:     task,
		Undoable: true,
		Undo: &models.InverseCommand{
			Description: "Reopen task " + id,
			Snapshot:    map[string]any{"taskId": id},
			Apply: func(ctx context.Context) (*models.ActionResult, error) {
				_, err := h.store.UpdateTask(ctx, id, store.UpdateTaskInput{Status: store.TaskPending})
				if err != nil {
					return nil, fmt.Errorf("reopen task %s: %w", id, err)
				}

				return &models.ActionResult{Success: true}, nil
			},
		},
	}, nil
}

func (h *handlers) createBroadcast(ctx context.Context, params map[string]any, _ models.ActionContext) (*models.ActionResult, error) {
	scheduledAt, err := paramTime(params, "scheduledTime")
	if err != nil {
		return nil, err
	}

	audience := "all"
	if filter, ok := params["audienceFilter"].(map[string]any); ok {
		if segment := paramString(filter, "segment"); segment != "" {
			audience = segment
		}
	}

	broadcast, err := h.store.CreateBroadcast(ctx, store.CreateBroadcastInput{
		Title:       paramString(params, "title"),
		Audience:    audience,
		ScheduledAt: scheduledAt,
	})
	if err != nil {
		return nil, fmt.Errorf("create broadcast: %w", err)
	}

	return &models.ActionResult{
		Success:  true,
		Data:     broadcast,
		Undoable: true,
		Undo: &models.InverseCommand{
			Description: "Delete broadcast " + broadcast.ID,
			Snapshot:    map[string]any{"broadcastId": broadcast.ID},
			Apply: func(ctx context.Context) (*models.ActionResult, error) {
				if err := h.store.DeleteBroadcast(ctx, broadcast.ID); err != nil {
					return nil, fmt.Errorf("delete broadcast %s: %w", broadcast.ID, err)
				}

				return &models.ActionResult{Success: true}, nil
			},
		},
	}, nil
}

// findLead scans the lead list for an id. The store has no point lookup for
// leads, so updates pay a list scan to capture the undo snapshot.
func (h *handlers) findLead(ctx context.Context, id string) (*store.Lead, error) {
	leads, err := h.store.ListLeads(ctx, store.LeadFilters{})
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}

	for i := range leads {
		if leads[i].ID == id {
			return &leads[i], nil
		}
	}

	return nil, fmt.Errorf("lead %s: %w", id, store.ErrNotFound)
}

func paramString(params map[string]any, key string) string {
	value, _ := params[key].(string)

	return value
}

func paramFloat(params map[string]any, key string) float64 {
	switch value := params[key].(type) {
	case float64:
		return value
	case int:
		return float64(value)
	default:
		return 0
	}
}

func paramTime(params map[string]any, key string) (*time.Time, error) {
	switch value := params[key].(type) {
	case time.Time:
		return &value, nil
	case string:
		if value == "" {
			return nil, nil
		}

		parsed, err := time.Parse(time.RFC3339, value)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", key, err)
		}

		return &parsed, nil
	default:
		return nil, nil
	}
}
