package agents

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/advisorhub/mira/pkg/models"
	"github.com/advisorhub/mira/pkg/store/memory"
	"github.com/advisorhub/mira/pkg/tools"
)

func newTestRouter(t *testing.T) (*Router, *tools.Registry) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	st := memory.NewStore()

	registry := tools.NewRegistry(logger, tools.DefaultRetryConfig(), nil)
	tools.RegisterCustomerTools(registry, st)
	tools.RegisterNewBusinessTools(registry, st)
	tools.RegisterProductTools(registry, st)
	tools.RegisterAnalyticsTools(registry, st)
	tools.RegisterTodoTools(registry, st)
	tools.RegisterBroadcastTools(registry, st)
	tools.RegisterVisualizerTools(registry, st)

	router := NewRouter(logger)
	router.Register(NewCustomerAgent(logger, registry))
	router.Register(NewNewBusinessAgent(logger, registry))
	router.Register(NewProductAgent(logger, registry))
	router.Register(NewAnalyticsAgent(logger, registry))
	router.Register(NewTodoAgent(logger, registry))
	router.Register(NewBroadcastAgent(logger, registry))
	router.Register(NewVisualizerAgent(logger, registry))

	return router, registry
}

func TestRouterResolve(t *testing.T) {
	router, _ := newTestRouter(t)

	agent, err := router.Resolve("CustomerAgent", models.ModuleAnalytics)
	require.NoError(t, err)
	assert.Equal(t, "CustomerAgent", agent.ID(), "explicit agent id wins over module")

	agent, err = router.Resolve("", models.ModuleTodo)
	require.NoError(t, err)
	assert.Equal(t, "ToDoAgent", agent.ID())

	_, err = router.Resolve("", models.Module("claims"))
	assert.Error(t, err)

	_, err = router.Resolve("GhostAgent", models.ModuleCustomer)
	assert.Error(t, err)
}

func TestRouterAllSortedByID(t *testing.T) {
	router, _ := newTestRouter(t)

	all := router.All()
	require.Len(t, all, 7)

	for i := 1; i < len(all); i++ {
		assert.Less(t, all[i-1].ID(), all[i].ID())
	}
}

func TestCustomerAgentCreateLeadFlow(t *testing.T) {
	router, _ := newTestRouter(t)

	agent, err := router.Resolve("", models.ModuleCustomer)
	require.NoError(t, err)

	mctx := models.MiraContext{
		Module:    models.ModuleCustomer,
		Page:      "/customer",
		AdvisorID: "advisor-1",
		PageData: map[string]any{
			"leadName":      "Amanda Lim",
			"contactNumber": "92345678",
			"leadSource":    "Referral",
		},
	}

	response, err := agent.Execute(context.Background(), IntentCreateLead, mctx, "Create a lead for Amanda Lim")
	require.NoError(t, err)

	assert.Contains(t, response.AssistantReply, "Customer 360")
	assert.Equal(t, "customer", response.Metadata.Topic)
	assert.Equal(t, "lead_management", response.Metadata.Subtopic)
	assert.Equal(t, IntentCreateLead, response.Metadata.Intent)
	assert.Equal(t, "CustomerAgent", response.Metadata.Agent)

	require.Len(t, response.UIActions, 3)
	assert.Equal(t, models.UINavigate, response.UIActions[0].Action)
	assert.Equal(t, "/customer", response.UIActions[0].Page)
	assert.Equal(t, models.UIPrefill, response.UIActions[1].Action)
	assert.Equal(t, "Amanda Lim", response.UIActions[1].Payload["name"])
	assert.Equal(t, models.UIExecute, response.UIActions[2].Action)
	require.NotNil(t, response.UIActions[2].APICall)
	assert.Equal(t, "POST", response.UIActions[2].APICall.Method)
}

func TestCustomerAgentUnknownIntentFallsBack(t *testing.T) {
	router, _ := newTestRouter(t)

	agent, err := router.Resolve("", models.ModuleCustomer)
	require.NoError(t, err)

	mctx := models.MiraContext{Module: models.ModuleCustomer}

	response, err := agent.Execute(context.Background(), "book_holiday", mctx, "book me a holiday")
	require.NoError(t, err)

	assert.Equal(t, "Let me check the customer workspace for you.", response.AssistantReply)
	require.Len(t, response.UIActions, 1)
	assert.Equal(t, models.UINavigate, response.UIActions[0].Action)
	assert.Equal(t, "/customer", response.UIActions[0].Page)
}

func TestCustomerAgentSearchLeadExtractsQuery(t *testing.T) {
	router, _ := newTestRouter(t)

	agent, err := router.Resolve("", models.ModuleCustomer)
	require.NoError(t, err)

	mctx := models.MiraContext{Module: models.ModuleCustomer}

	response, err := agent.Execute(context.Background(), IntentSearchLead, mctx, "find Kim Tan")
	require.NoError(t, err)

	assert.Contains(t, response.AssistantReply, `"Kim Tan"`)
	require.Len(t, response.UIActions, 2)
	assert.Equal(t, map[string]any{"search": "Kim Tan"}, response.UIActions[0].Params)
}

func TestNewBusinessAgentSubmitForUnderwriting(t *testing.T) {
	router, _ := newTestRouter(t)

	agent, err := router.Resolve("", models.ModuleNewBusiness)
	require.NoError(t, err)

	mctx := models.MiraContext{
		Module:    models.ModuleNewBusiness,
		AdvisorID: "advisor-1",
		PageData:  map[string]any{"proposalId": "P-3001"},
	}

	response, err := agent.Execute(context.Background(), IntentSubmitForUW, mctx, "submit for underwriting")
	require.NoError(t, err)

	assert.Equal(t, "underwriting", response.Metadata.Subtopic)

	last := response.UIActions[len(response.UIActions)-1]
	require.NotNil(t, last.APICall)
	assert.Equal(t, "/api/new-business/proposals/P-3001/submit", last.APICall.Endpoint)
	assert.True(t, last.ConfirmRequired)
}

func TestAgentSuggestionsUseContext(t *testing.T) {
	router, _ := newTestRouter(t)

	agent, err := router.Resolve("", models.ModuleCustomer)
	require.NoError(t, err)

	mctx := models.MiraContext{
		Module:   models.ModuleCustomer,
		PageData: map[string]any{"leadName": "Kim Tan"},
	}

	suggestions := agent.Suggestions(context.Background(), mctx)
	require.Len(t, suggestions, 3)

	assert.Equal(t, IntentCreateLead, suggestions[0].Intent)
	assert.Contains(t, suggestions[0].PromptText, "Kim Tan")
	assert.Equal(t, models.ModuleCustomer, suggestions[0].Module)
	assert.InDelta(t, 0.86, suggestions[0].Confidence, 0.001)
}

func TestBuildResponseDefaults(t *testing.T) {
	mctx := models.MiraContext{Module: models.ModuleAnalytics, Page: "/analytics"}

	response := BuildResponse("AnalyticsAgent", "view_ytd_progress", mctx, "hello", nil)

	assert.NotNil(t, response.UIActions)
	assert.Empty(t, response.UIActions)
	assert.InDelta(t, 0.75, response.Metadata.Confidence, 0.001)
	assert.Equal(t, models.ModuleAnalytics, response.Trace.Module)
	assert.Equal(t, "/analytics", response.Trace.Page)
	assert.False(t, response.Trace.GeneratedAt.IsZero())
}
