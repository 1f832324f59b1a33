//go:build integration

package postgres_test

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/advisorhub/mira/pkg/store"
	"github.com/advisorhub/mira/pkg/store/postgres"
)

func setupTestStore(t *testing.T) *postgres.Store {
	t.Helper()

	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "mira",
				"POSTGRES_PASSWORD": "mira",
				"POSTGRES_DB":       "mira",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	databaseURL := fmt.Sprintf("postgres://mira:mira@%s:%s/mira?sslmode=disable", host, port.Port())

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	st, err := postgres.NewStore(ctx, logger, databaseURL)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	return st
}

func TestPostgresLeadLifecycle(t *testing.T) {
	st := setupTestStore(t)
	ctx := context.Background()

	created, err := st.CreateLead(ctx, store.CreateLeadInput{
		Name:          "Kim Tan",
		ContactNumber: "91234567",
		LeadSource:    "Event",
	})
	require.NoError(t, err)
	assert.Equal(t, store.LeadNew, created.Status)

	found, err := st.SearchLeads(ctx, "kim")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, created.ID, found[0].ID)

	updated, err := st.UpdateLead(ctx, created.ID, store.UpdateLeadInput{
		Status: store.LeadQualified,
		Owner:  "advisor-1",
	})
	require.NoError(t, err)
	assert.Equal(t, store.LeadQualified, updated.Status)
	assert.Equal(t, "advisor-1", updated.Owner)

	qualified, err := st.ListLeads(ctx, store.LeadFilters{Status: store.LeadQualified})
	require.NoError(t, err)
	require.Len(t, qualified, 1)

	require.NoError(t, st.DeleteLead(ctx, created.ID))
	assert.ErrorIs(t, st.DeleteLead(ctx, created.ID), store.ErrNotFound)
}

func TestPostgresUpdateMissingLead(t *testing.T) {
	st := setupTestStore(t)

	_, err := st.UpdateLead(context.Background(), "L-0000", store.UpdateLeadInput{Status: store.LeadWon})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestPostgresProposalForeignKeyTranslation(t *testing.T) {
	st := setupTestStore(t)

	// No customers seeded, so the FK violation must surface as the typed
	// sentinel the tool layer categorizes on.
	_, err := st.CreateProposal(context.Background(), store.CreateProposalInput{
		CustomerID: "C-9999",
		ProductID:  "PR-1001",
		Premium:    2500,
	})
	assert.ErrorIs(t, err, store.ErrForeignKey)
}

func TestPostgresTaskLifecycle(t *testing.T) {
	st := setupTestStore(t)
	ctx := context.Background()

	past := time.Now().Add(-time.Hour)
	created, err := st.CreateTask(ctx, store.CreateTaskInput{Title: "Call Kim", DueDate: &past})
	require.NoError(t, err)
	assert.Equal(t, store.TaskPending, created.Status)

	overdue, err := st.ListTasks(ctx, store.TaskFilters{Overdue: true})
	require.NoError(t, err)
	require.Len(t, overdue, 1)
	assert.Equal(t, created.ID, overdue[0].ID)

	completed, err := st.UpdateTask(ctx, created.ID, store.UpdateTaskInput{Status: store.TaskCompleted})
	require.NoError(t, err)
	assert.Equal(t, store.TaskCompleted, completed.Status)

	overdue, err = st.ListTasks(ctx, store.TaskFilters{Overdue: true})
	require.NoError(t, err)
	assert.Empty(t, overdue)

	require.NoError(t, st.DeleteTask(ctx, created.ID))
}

func TestPostgresBroadcastLifecycle(t *testing.T) {
	st := setupTestStore(t)
	ctx := context.Background()

	when := time.Now().Add(48 * time.Hour)
	created, err := st.CreateBroadcast(ctx, store.CreateBroadcastInput{
		Title:       "Renewal reminders",
		Audience:    "Existing clients",
		ScheduledAt: &when,
	})
	require.NoError(t, err)
	assert.Equal(t, store.BroadcastScheduled, created.Status)

	fetched, err := st.GetBroadcast(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renewal reminders", fetched.Title)

	require.NoError(t, st.DeleteBroadcast(ctx, created.ID))
	assert.ErrorIs(t, st.DeleteBroadcast(ctx, created.ID), store.ErrNotFound)
}

func TestPostgresHealthCheck(t *testing.T) {
	st := setupTestStore(t)
	assert.NoError(t, st.HealthCheck(context.Background()))
}
