package executor_test

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/advisorhub/mira/pkg/executor"
	"github.com/advisorhub/mira/pkg/models"
	"github.com/advisorhub/mira/pkg/store"
	"github.com/advisorhub/mira/pkg/store/memory"
	"github.com/advisorhub/mira/pkg/tools"
)

// Exercises the confirmation gate and the tool retry policy together: a
// confirmed write that hits transient storage failures must still land
// exactly once.
func TestConfirmedWriteRetriesTransientFailures(t *testing.T) {
	t.Parallel()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	st := memory.NewStore()

	toolRegistry := tools.NewRegistry(logger, tools.RetryConfig{
		MaxAttempts:  3,
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
		Multiplier:   2,
	}, nil)

	attempts := 0
	toolRegistry.Register(&tools.Tool{
		Name:   "customer__leads.flaky_create",
		Module: models.ModuleCustomer,
		Handler: func(ctx context.Context, args map[string]any, _ tools.ToolContext) (any, error) {
			attempts++
			if attempts < 3 {
				return nil, fmt.Errorf("dial: %w", store.ErrConnection)
			}

			name, _ := args["name"].(string)
			number, _ := args["contact_number"].(string)

			return st.CreateLead(ctx, store.CreateLeadInput{Name: name, ContactNumber: number})
		},
	})

	exec := executor.NewExecutor(logger, executor.Options{})
	exec.RegisterHandler("lead.create", func(ctx context.Context, params map[string]any, actx models.ActionContext) (*models.ActionResult, error) {
		result := toolRegistry.Execute(ctx, "customer__leads.flaky_create", params, tools.ToolContext{AdvisorID: actx.UserID})
		if !result.Success {
			return nil, errors.New(result.Error.Message)
		}

		return &models.ActionResult{Success: true, Data: result.Data}, nil
	})

	action := &models.Action{
		ID:                   "create_lead",
		Name:                 "Create Lead",
		Category:             models.CategoryCustomer,
		HandlerKey:           "lead.create",
		RequiredPermission:   models.PermissionWrite,
		RequiresConfirmation: true,
	}

	req := models.ActionRequest{
		Action: action,
		Parameters: map[string]any{
			"name":           "Jess Wong",
			"contact_number": "98765432",
		},
		Context: models.ActionContext{
			UserID:      "advisor-1",
			Session:     models.SessionInfo{SessionID: "session-1"},
			Permissions: []models.PermissionLevel{models.PermissionWrite},
		},
	}

	// Gated run: no tool call, no retries, no history.
	gated := exec.Execute(context.Background(), req)
	require.False(t, gated.Success)
	assert.Equal(t, true, gated.Metadata["requiresConfirmation"])
	assert.Zero(t, attempts)
	assert.Empty(t, exec.History(0))

	// Confirmed run: two transient failures, success on the third attempt.
	req.SkipConfirmation = true
	confirmed := exec.Execute(context.Background(), req)
	require.True(t, confirmed.Success, confirmed.Error)
	assert.Equal(t, 3, attempts)
	assert.Len(t, exec.History(0), 1)

	leads, err := st.SearchLeads(context.Background(), "Jess Wong")
	require.NoError(t, err)
	assert.Len(t, leads, 1, "retried write must land exactly once")
}
