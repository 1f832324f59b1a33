package agents

import (
	"fmt"
	"strings"

	"github.com/advisorhub/mira/pkg/models"
)

// CRUDOperation selects the shape of a generated UI action flow.
type CRUDOperation string

const (
	OpCreate CRUDOperation = "create"
	OpRead   CRUDOperation = "read"
	OpUpdate CRUDOperation = "update"
	OpDelete CRUDOperation = "delete"
)

// FlowOptions tunes the generated flow. Zero values fall back to
// per-operation defaults.
type FlowOptions struct {
	Page            string
	Filters         map[string]any
	Payload         map[string]any
	Endpoint        string
	ConfirmRequired *bool
	Description     string
}

func defaultPage(module models.Module) string {
	return "/" + strings.ReplaceAll(string(module), "_", "-")
}

// NavigateAction builds a navigation directive. Nil-valued params are
// dropped so the frontend only sees meaningful filters.
func NavigateAction(module models.Module, page string, params map[string]any) models.UIAction {
	sanitized := make(map[string]any, len(params))
	for key, value := range params {
		if value == nil {
			continue
		}
		if s, ok := value.(string); ok && s == "" {
			continue
		}
		sanitized[key] = value
	}
	if len(sanitized) == 0 {
		sanitized = nil
	}

	return models.UIAction{
		Action: models.UINavigate,
		Module: string(module),
		Page:   page,
		Params: sanitized,
	}
}

// PrefillAction builds a form prefill directive.
func PrefillAction(payload map[string]any, confirmRequired bool, description string) models.UIAction {
	return models.UIAction{
		Action:          models.UIPrefill,
		Payload:         payload,
		ConfirmRequired: confirmRequired,
		Description:     description,
	}
}

// ExecuteAction builds a backend call directive. GET calls surface as
// submit_action so the frontend renders them as a fetch rather than a
// mutation.
func ExecuteAction(method, endpoint string, payload map[string]any, confirmRequired bool, description string) models.UIAction {
	actionType := models.UIExecute
	if method == "GET" {
		actionType = models.UISubmitAction
	}

	return models.UIAction{
		Action:          actionType,
		ConfirmRequired: confirmRequired,
		Description:     description,
		APICall: &models.APICall{
			Method:   method,
			Endpoint: endpoint,
			Payload:  payload,
		},
	}
}

// CRUDFlow expands an operation into the ordered action sequence the
// frontend walks through. Reads navigate only; deletes always confirm;
// creates and updates navigate, optionally prefill, then execute, with
// updates confirming by default.
func CRUDFlow(operation CRUDOperation, module models.Module, opts FlowOptions) []models.UIAction {
	page := opts.Page
	if page == "" {
		page = defaultPage(module)
	}
	endpoint := opts.Endpoint
	if endpoint == "" {
		endpoint = fmt.Sprintf("/api/%s/%s", module, operation)
	}

	switch operation {
	case OpRead:
		return []models.UIAction{NavigateAction(module, page, opts.Filters)}
	case OpDelete:
		description := opts.Description
		if description == "" {
			description = "Confirm deletion"
		}
		return []models.UIAction{ExecuteAction("DELETE", endpoint, opts.Payload, true, description)}
	}

	actions := []models.UIAction{NavigateAction(module, page, opts.Filters)}

	if len(opts.Payload) > 0 {
		actions = append(actions, PrefillAction(opts.Payload, operation == OpUpdate, opts.Description))
	}

	method := "POST"
	if operation == OpUpdate {
		method = "PATCH"
	}
	confirm := operation == OpUpdate
	if opts.ConfirmRequired != nil {
		confirm = *opts.ConfirmRequired
	}

	return append(actions, ExecuteAction(method, endpoint, opts.Payload, confirm, opts.Description))
}
