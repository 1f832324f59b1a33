package agents

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/advisorhub/mira/pkg/models"
)

func TestNavigateActionDropsEmptyParams(t *testing.T) {
	action := NavigateAction(models.ModuleCustomer, "/customer", map[string]any{
		"search": "Kim",
		"status": "",
		"source": nil,
	})

	assert.Equal(t, models.UINavigate, action.Action)
	assert.Equal(t, "customer", action.Module)
	assert.Equal(t, map[string]any{"search": "Kim"}, action.Params)

	empty := NavigateAction(models.ModuleCustomer, "/customer", map[string]any{"status": ""})
	assert.Nil(t, empty.Params)
}

func TestExecuteActionGetBecomesSubmitAction(t *testing.T) {
	get := ExecuteAction("GET", "/api/customer/leads", nil, false, "")
	assert.Equal(t, models.UISubmitAction, get.Action)

	post := ExecuteAction("POST", "/api/customer/leads", map[string]any{"name": "Kim"}, true, "")
	assert.Equal(t, models.UIExecute, post.Action)
	require.NotNil(t, post.APICall)
	assert.Equal(t, "POST", post.APICall.Method)
	assert.True(t, post.ConfirmRequired)
}

func TestCRUDFlowRead(t *testing.T) {
	actions := CRUDFlow(OpRead, models.ModuleCustomer, FlowOptions{
		Filters: map[string]any{"status": "new"},
	})

	require.Len(t, actions, 1)
	assert.Equal(t, models.UINavigate, actions[0].Action)
	assert.Equal(t, "/customer", actions[0].Page)
	assert.Equal(t, map[string]any{"status": "new"}, actions[0].Params)
}

func TestCRUDFlowDeleteAlwaysConfirms(t *testing.T) {
	actions := CRUDFlow(OpDelete, models.ModuleTodo, FlowOptions{
		Payload: map[string]any{"id": "T-1"},
	})

	require.Len(t, actions, 1)
	assert.Equal(t, models.UIExecute, actions[0].Action)
	assert.True(t, actions[0].ConfirmRequired)
	assert.Equal(t, "Confirm deletion", actions[0].Description)
	require.NotNil(t, actions[0].APICall)
	assert.Equal(t, "DELETE", actions[0].APICall.Method)
	assert.Equal(t, "/api/todo/delete", actions[0].APICall.Endpoint)
}

func TestCRUDFlowCreate(t *testing.T) {
	payload := map[string]any{"name": "Amanda Lim", "contact_number": "92345678"}
	actions := CRUDFlow(OpCreate, models.ModuleCustomer, FlowOptions{
		Page:    "/customer",
		Payload: payload,
	})

	require.Len(t, actions, 3)
	assert.Equal(t, models.UINavigate, actions[0].Action)
	assert.Equal(t, models.UIPrefill, actions[1].Action)
	assert.False(t, actions[1].ConfirmRequired)
	assert.Equal(t, models.UIExecute, actions[2].Action)
	assert.False(t, actions[2].ConfirmRequired)
	require.NotNil(t, actions[2].APICall)
	assert.Equal(t, "POST", actions[2].APICall.Method)
	assert.Equal(t, "/api/customer/create", actions[2].APICall.Endpoint)
	assert.Equal(t, payload, actions[2].APICall.Payload)
}

func TestCRUDFlowUpdateConfirmsByDefault(t *testing.T) {
	actions := CRUDFlow(OpUpdate, models.ModuleCustomer, FlowOptions{
		Payload:  map[string]any{"status": "qualified"},
		Endpoint: "/api/customer/leads/L-1001",
	})

	require.Len(t, actions, 3)
	assert.True(t, actions[1].ConfirmRequired, "update prefill asks for confirmation")
	assert.True(t, actions[2].ConfirmRequired)
	assert.Equal(t, "PATCH", actions[2].APICall.Method)
	assert.Equal(t, "/api/customer/leads/L-1001", actions[2].APICall.Endpoint)
}

func TestCRUDFlowCreateWithoutPayloadSkipsPrefill(t *testing.T) {
	actions := CRUDFlow(OpCreate, models.ModuleBroadcast, FlowOptions{})

	require.Len(t, actions, 2)
	assert.Equal(t, models.UINavigate, actions[0].Action)
	assert.Equal(t, "/broadcast", actions[0].Page)
	assert.Equal(t, models.UIExecute, actions[1].Action)
}

func TestDefaultPageReplacesUnderscores(t *testing.T) {
	actions := CRUDFlow(OpRead, models.ModuleNewBusiness, FlowOptions{})

	require.Len(t, actions, 1)
	assert.Equal(t, "/new-business", actions[0].Page)
}
