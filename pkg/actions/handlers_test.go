package actions

import (
	"context"
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
)

func newTestExecutor(t *testing.T) (*executor.Executor, *memory.Store) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	st := memory.NewStore()

	exec := executor.NewExecutor(logger, executor.Options{})
	Register(exec, st, logger)

	return exec, st
}

func writeContext() models.ActionContext {
	return models.ActionContext{
		UserID:      "advisor-1",
		Session:     models.SessionInfo{SessionID: "session-1"},
		Permissions: []models.PermissionLevel{models.PermissionRead, models.PermissionWrite},
	}
}

func action(id, handlerKey string, undoable bool) *models.Action {
	return &models.Action{
		ID:                 id,
		Name:               id,
		Category:           models.CategorySystem,
		RequiredPermission: models.PermissionWrite,
		Undoable:           undoable,
		HandlerKey:         handlerKey,
	}
}

func TestCreateLeadThenUndo(t *testing.T) {
	exec, st := newTestExecutor(t)
	ctx := context.Background()

	result := exec.Execute(ctx, models.ActionRequest{
		Action: action("create_lead", "lead.create", true),
		Parameters: map[string]any{
			"name":           "Jess Wong",
			"contact_number": "98765432",
			"lead_source":    "Referral",
		},
		Context: writeContext(),
	})

	require.True(t, result.Success, result.Error)
	require.True(t, result.Undoable)

	lead, ok := result.Data.(*store.Lead)
	require.True(t, ok)
	assert.Equal(t, store.LeadNew, lead.Status)

	matches, err := st.SearchLeads(ctx, "Jess Wong")
	require.NoError(t, err)
	require.Len(t, matches, 1)

	undo := exec.UndoLast(ctx)
	require.True(t, undo.Success, undo.Error)

	matches, err = st.SearchLeads(ctx, "Jess Wong")
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestUpdateCustomerUndoRestoresSnapshot(t *testing.T) {
	exec, st := newTestExecutor(t)
	ctx := context.Background()

	result := exec.Execute(ctx, models.ActionRequest{
		Action: action("update_customer", "customer.update", true),
		Parameters: map[string]any{
			"customerId": "L-1001",
			"fields":     map[string]any{"status": "qualified"},
		},
		Context: writeContext(),
	})
	require.True(t, result.Success, result.Error)

	lead, ok := result.Data.(*store.Lead)
	require.True(t, ok)
	assert.Equal(t, store.LeadQualified, lead.Status)

	undo := exec.UndoLast(ctx)
	require.True(t, undo.Success, undo.Error)

	leads, err := st.ListLeads(ctx, store.LeadFilters{Status: store.LeadNew})
	require.NoError(t, err)

	found := false

	for _, l := range leads {
		if l.ID == "L-1001" {
			found = true
		}
	}

	assert.True(t, found, "undo should restore the lead to its previous status")
}

func TestCompleteTaskThenUndoReopens(t *testing.T) {
	exec, st := newTestExecutor(t)
	ctx := context.Background()

	result := exec.Execute(ctx, models.ActionRequest{
		Action:     action("complete_task", "task.complete", true),
		Parameters: map[string]any{"taskId": "T-1"},
		Context:    writeContext(),
	})
	require.True(t, result.Success, result.Error)

	task, ok := result.Data.(*store.Task)
	require.True(t, ok)
	assert.Equal(t, store.TaskCompleted, task.Status)

	undo := exec.UndoLast(ctx)
	require.True(t, undo.Success, undo.Error)

	pending, err := st.ListTasks(ctx, store.TaskFilters{Status: store.TaskPending})
	require.NoError(t, err)

	ids := make([]string, 0, len(pending))
	for _, item := range pending {
		ids = append(ids, item.ID)
	}

	assert.Contains(t, ids, "T-1")
}

func TestCreateTaskParsesDueDate(t *testing.T) {
	exec, _ := newTestExecutor(t)

	due := time.Now().Add(48 * time.Hour).UTC().Truncate(time.Second)

	result := exec.Execute(context.Background(), models.ActionRequest{
		Action: action("create_task", "task.create", true),
		Parameters: map[string]any{
			"title":   "Send quote to Kim",
			"dueDate": due.Format(time.RFC3339),
		},
		Context: writeContext(),
	})
	require.True(t, result.Success, result.Error)

	task, ok := result.Data.(*store.Task)
	require.True(t, ok)
	require.NotNil(t, task.DueDate)
	assert.True(t, task.DueDate.Equal(due))
}

func TestCreateTaskAcceptsTimeValueDueDate(t *testing.T) {
	exec, _ := newTestExecutor(t)

	due := time.Now().Add(72 * time.Hour).UTC().Truncate(time.Second)

	result := exec.Execute(context.Background(), models.ActionRequest{
		Action: action("create_task", "task.create", true),
		Parameters: map[string]any{
			"title":   "Prepare review deck",
			"dueDate": due,
		},
		Context: writeContext(),
	})
	require.True(t, result.Success, result.Error)

	task, ok := result.Data.(*store.Task)
	require.True(t, ok)
	require.NotNil(t, task.DueDate, "time-valued dueDate must be carried onto the task")
	assert.True(t, task.DueDate.Equal(due))
}

func TestCreateTaskRejectsMalformedDueDate(t *testing.T) {
	exec, _ := newTestExecutor(t)

	result := exec.Execute(context.Background(), models.ActionRequest{
		Action: action("create_task", "task.create", true),
		Parameters: map[string]any{
			"title":   "Send quote",
			"dueDate": "tomorrow",
		},
		Context: writeContext(),
	})

	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "parse dueDate")
}

func TestCreateBroadcastReadsAudienceFilter(t *testing.T) {
	exec, _ := newTestExecutor(t)

	result := exec.Execute(context.Background(), models.ActionRequest{
		Action: action("create_broadcast", "broadcast.create", true),
		Parameters: map[string]any{
			"title":          "Nurture touch",
			"message":        "Checking in",
			"audienceFilter": map[string]any{"segment": "warm leads"},
		},
		Context: writeContext(),
	})
	require.True(t, result.Success, result.Error)

	broadcast, ok := result.Data.(*store.Broadcast)
	require.True(t, ok)
	assert.Equal(t, "warm leads", broadcast.Audience)
}

func TestViewCustomerUnknownIDFails(t *testing.T) {
	exec, _ := newTestExecutor(t)

	result := exec.Execute(context.Background(), models.ActionRequest{
		Action:     action("view_customer", "customer.view", false),
		Parameters: map[string]any{"customerId": "C-9999"},
		Context:    writeContext(),
	})

	assert.False(t, result.Success)
}

func TestSubmitProposal(t *testing.T) {
	exec, st := newTestExecutor(t)
	ctx := context.Background()

	result := exec.Execute(ctx, models.ActionRequest{
		Action:     action("submit_proposal", "proposal.submit", false),
		Parameters: map[string]any{"proposalId": "P-3001"},
		Context:    writeContext(),
	})
	require.True(t, result.Success, result.Error)

	proposal, err := st.GetProposal(ctx, "P-3001")
	require.NoError(t, err)
	assert.Equal(t, store.ProposalSubmitted, proposal.Status)
}
