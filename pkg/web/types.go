// Package web provides HTTP request and response types for the Mira API.
package web

import (
	"github.com/advisorhub/mira/pkg/models"
	"github.com/advisorhub/mira/pkg/shortcuts"
)

// ExecuteActionRequest is the request body for running a registered
// action.
type ExecuteActionRequest struct {
	ActionID         string               `json:"action_id"                   validate:"required"`
	Parameters       map[string]any       `json:"parameters,omitempty"`
	Context          models.ActionContext `json:"context"`
	SkipConfirmation bool                 `json:"skip_confirmation,omitempty"`
	ValidateOnly     bool                 `json:"validate_only,omitempty"`
}

// ChatRequest is the request body for dispatching a routed intent to a
// skill agent.
type ChatRequest struct {
	Message string             `json:"message"            validate:"required"`
	Intent  string             `json:"intent"             validate:"required"`
	AgentID string             `json:"agent_id,omitempty"`
	Context models.MiraContext `json:"context"`
}

// SuggestionsRequest asks for ranked suggestions. Either a session id
// (resolved through the behavior recorder) or an inline behavioral
// context must be provided.
type SuggestionsRequest struct {
	SessionID  string                     `json:"session_id,omitempty"`
	Behavioral *models.BehavioralContext  `json:"behavioral,omitempty"`
	Limit      int                        `json:"limit,omitempty"`
}

// KeyEventRequest is the request body for dispatching a keyboard event.
type KeyEventRequest struct {
	Event   shortcuts.KeyEvent   `json:"event"`
	Context models.ActionContext `json:"context"`
}

// NavigationRequest records one page transition for a session.
type NavigationRequest struct {
	SessionID string                 `json:"session_id" validate:"required"`
	Event     models.NavigationEvent `json:"event"`
	PageData  map[string]any         `json:"page_data,omitempty"`
}

// ShortcutBindingResponse is the filtered view of one shortcut binding.
type ShortcutBindingResponse struct {
	Shortcut    string `json:"shortcut"`
	ActionID    string `json:"action_id"`
	ActionName  string `json:"action_name"`
	Description string `json:"description,omitempty"`
	Enabled     bool   `json:"enabled"`
}

// TransformBindingResponse flattens a binding for the API.
func TransformBindingResponse(binding shortcuts.Binding) ShortcutBindingResponse {
	response := ShortcutBindingResponse{
		Shortcut: binding.Shortcut,
		Enabled:  binding.Enabled,
	}

	if binding.Action != nil {
		response.ActionID = binding.Action.ID
		response.ActionName = binding.Action.Name
		response.Description = binding.Description
	}

	return response
}
