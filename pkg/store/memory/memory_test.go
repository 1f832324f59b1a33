package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/advisorhub/mira/pkg/store"
)

func TestLeadLifecycle(t *testing.T) {
	t.Parallel()

	st := NewStore()
	ctx := context.Background()

	created, err := st.CreateLead(ctx, store.CreateLeadInput{
		Name:          "Jess Wong",
		ContactNumber: "98765432",
		LeadSource:    "Referral",
	})
	require.NoError(t, err)
	assert.Equal(t, store.LeadNew, created.Status)

	updated, err := st.UpdateLead(ctx, created.ID, store.UpdateLeadInput{Status: store.LeadQualified})
	require.NoError(t, err)
	assert.Equal(t, store.LeadQualified, updated.Status)

	qualified, err := st.ListLeads(ctx, store.LeadFilters{Status: store.LeadQualified})
	require.NoError(t, err)

	ids := make([]string, 0, len(qualified))
	for _, lead := range qualified {
		ids = append(ids, lead.ID)
	}

	assert.Contains(t, ids, created.ID)

	require.NoError(t, st.DeleteLead(ctx, created.ID))
	assert.ErrorIs(t, st.DeleteLead(ctx, created.ID), store.ErrNotFound)

	_, err = st.UpdateLead(ctx, created.ID, store.UpdateLeadInput{Status: store.LeadWon})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSearchLeadsMatchesNameContactAndEmail(t *testing.T) {
	t.Parallel()

	st := NewStore()
	ctx := context.Background()

	byName, err := st.SearchLeads(ctx, "kim")
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "Kim Tan", byName[0].Name)

	byNumber, err := st.SearchLeads(ctx, "92345678")
	require.NoError(t, err)
	require.Len(t, byNumber, 1)
	assert.Equal(t, "Amanda Lim", byNumber[0].Name)

	_, err = st.CreateLead(ctx, store.CreateLeadInput{
		Name:          "Priya Nair",
		ContactNumber: "94567890",
		Email:         "priya@example.com",
	})
	require.NoError(t, err)

	byEmail, err := st.SearchLeads(ctx, "priya@example.com")
	require.NoError(t, err)
	require.Len(t, byEmail, 1)
	assert.Equal(t, "Priya Nair", byEmail[0].Name)

	none, err := st.SearchLeads(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestGetCustomer(t *testing.T) {
	t.Parallel()

	st := NewStore()
	ctx := context.Background()

	customer, err := st.GetCustomer(ctx, "C-2001")
	require.NoError(t, err)
	assert.Equal(t, "Kim Tan", customer.Name)

	_, err = st.GetCustomer(ctx, "C-9999")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestProposalLifecycle(t *testing.T) {
	t.Parallel()

	st := NewStore()
	ctx := context.Background()

	created, err := st.CreateProposal(ctx, store.CreateProposalInput{
		CustomerID: "C-2001",
		ProductID:  "PR-1001",
		Premium:    3200,
	})
	require.NoError(t, err)
	assert.Equal(t, store.ProposalDraft, created.Status)

	submitted, err := st.UpdateProposalStatus(ctx, created.ID, store.ProposalSubmitted)
	require.NoError(t, err)
	assert.Equal(t, store.ProposalSubmitted, submitted.Status)

	byCustomer, err := st.ListProposals(ctx, store.ProposalFilters{CustomerID: "C-2001"})
	require.NoError(t, err)
	require.NotEmpty(t, byCustomer)

	for _, proposal := range byCustomer {
		assert.Equal(t, "C-2001", proposal.CustomerID)
	}

	require.NoError(t, st.DeleteProposal(ctx, created.ID))

	_, err = st.GetProposal(ctx, created.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSearchProducts(t *testing.T) {
	t.Parallel()

	st := NewStore()
	ctx := context.Background()

	protection, err := st.SearchProducts(ctx, "", "Protection")
	require.NoError(t, err)
	require.Len(t, protection, 1)
	assert.Equal(t, "LifeShield Prime", protection[0].Name)

	byKeyword, err := st.SearchProducts(ctx, "edu", "")
	require.NoError(t, err)
	require.Len(t, byKeyword, 1)
	assert.Equal(t, "EduGrow Plus", byKeyword[0].Name)

	detail, err := st.GetProduct(ctx, "PR-1001")
	require.NoError(t, err)
	assert.NotEmpty(t, detail.Riders)
}

func TestTaskFilters(t *testing.T) {
	t.Parallel()

	st := NewStore()
	ctx := context.Background()

	past := time.Now().Add(-24 * time.Hour)
	created, err := st.CreateTask(ctx, store.CreateTaskInput{Title: "Chase documents", DueDate: &past})
	require.NoError(t, err)
	assert.Equal(t, store.TaskPending, created.Status)

	overdue, err := st.ListTasks(ctx, store.TaskFilters{Overdue: true})
	require.NoError(t, err)

	ids := make([]string, 0, len(overdue))
	for _, task := range overdue {
		ids = append(ids, task.ID)
	}

	assert.Contains(t, ids, created.ID)

	completed, err := st.UpdateTask(ctx, created.ID, store.UpdateTaskInput{Status: store.TaskCompleted})
	require.NoError(t, err)
	assert.Equal(t, store.TaskCompleted, completed.Status)

	stillOverdue, err := st.ListTasks(ctx, store.TaskFilters{Overdue: true})
	require.NoError(t, err)

	for _, task := range stillOverdue {
		assert.NotEqual(t, created.ID, task.ID, "completed tasks are no longer overdue")
	}

	require.NoError(t, st.DeleteTask(ctx, created.ID))
	assert.ErrorIs(t, st.DeleteTask(ctx, created.ID), store.ErrNotFound)
}

func TestBroadcastLifecycle(t *testing.T) {
	t.Parallel()

	st := NewStore()
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

func TestAnalyticsAggregates(t *testing.T) {
	t.Parallel()

	st := NewStore()
	ctx := context.Background()

	performance, err := st.Performance(ctx, "advisor-1", "YTD")
	require.NoError(t, err)
	assert.NotZero(t, performance.Premium)

	trend, err := st.MonthlyTrend(ctx, "advisor-1")
	require.NoError(t, err)
	assert.NotEmpty(t, trend.Months)

	team, err := st.TeamStats(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, team.Leaderboard)

	funnel, err := st.Funnel(ctx, "30D")
	require.NoError(t, err)
	assert.NotEmpty(t, funnel.Stages)
}

func TestHealthCheckAndClose(t *testing.T) {
	t.Parallel()

	st := NewStore()
	assert.NoError(t, st.HealthCheck(context.Background()))
	assert.NoError(t, st.Close())
}
