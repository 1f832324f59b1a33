package models

import (
	"strings"
	"time"
)

// Module identifies one of the CRM's skill domains.
type Module string

const (
	ModuleCustomer    Module = "customer"
	ModuleNewBusiness Module = "new_business"
	ModuleProduct     Module = "product"
	ModuleAnalytics   Module = "analytics"
	ModuleTodo        Module = "todo"
	ModuleBroadcast   Module = "broadcast"
	ModuleVisualizer  Module = "visualizer"
)

// Modules lists every skill domain in registration order.
func Modules() []Module {
	return []Module{
		ModuleCustomer,
		ModuleNewBusiness,
		ModuleProduct,
		ModuleAnalytics,
		ModuleTodo,
		ModuleBroadcast,
		ModuleVisualizer,
	}
}

// UIActionType tags the variant of a UIAction.
type UIActionType string

const (
	UINavigate     UIActionType = "navigate"
	UIPrefill      UIActionType = "frontend_prefill"
	UIExecute      UIActionType = "execute"
	UISubmitAction UIActionType = "submit_action"
)

// APICall describes the backend call an execute action performs.
type APICall struct {
	Method   string         `json:"method"`
	Endpoint string         `json:"endpoint"`
	Payload  map[string]any `json:"payload,omitempty"`
}

// UIAction is one directive the frontend applies in order. Which fields are
// populated depends on Action: navigate carries module/page/params, prefill
// carries payload, execute carries api_call plus the confirmation flag.
type UIAction struct {
	Action          UIActionType   `json:"action"`
	Module          string         `json:"module,omitempty"`
	Page            string         `json:"page,omitempty"`
	Params          map[string]any `json:"params,omitempty"`
	Payload         map[string]any `json:"payload,omitempty"`
	ConfirmRequired bool           `json:"confirm_required,omitempty"`
	APICall         *APICall       `json:"api_call,omitempty"`
	ActionID        string         `json:"action_id,omitempty"`
	Description     string         `json:"description,omitempty"`
}

// ResponseMetadata classifies how the reply was routed.
type ResponseMetadata struct {
	Topic      string  `json:"topic"`
	Subtopic   string  `json:"subtopic,omitempty"`
	Intent     string  `json:"intent"`
	Confidence float64 `json:"confidence"`
	Agent      string  `json:"agent"`
}

// ResponseTrace carries debugging breadcrumbs for one reply.
type ResponseTrace struct {
	GeneratedAt time.Time `json:"generated_at"`
	Module      Module    `json:"module,omitempty"`
	Page        string    `json:"page,omitempty"`
}

// MiraResponse is the envelope every skill agent returns.
type MiraResponse struct {
	AssistantReply string           `json:"assistant_reply"`
	UIActions      []UIAction       `json:"ui_actions"`
	Metadata       ResponseMetadata `json:"metadata"`
	Trace          ResponseTrace    `json:"trace"`
}

// MiraContext is the request-scoped situation an agent responds to.
type MiraContext struct {
	Module     Module             `json:"module"`
	Page       string             `json:"page,omitempty"`
	PageData   map[string]any     `json:"pageData,omitempty"`
	AdvisorID  string             `json:"advisorId,omitempty"`
	Behavioral *BehavioralContext `json:"behavioral,omitempty"`
}

// PageString reads a string value out of PageData, falling back when the
// key is missing or blank.
func (c MiraContext) PageString(key, fallback string) string {
	if value, ok := c.PageData[key].(string); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

// PageStringSlice reads a string slice out of PageData.
func (c MiraContext) PageStringSlice(key string, fallback []string) []string {
	switch value := c.PageData[key].(type) {
	case []string:
		if len(value) > 0 {
			return value
		}
	case []any:
		out := make([]string, 0, len(value))
		for _, item := range value {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return fallback
}

// PageFloat reads a numeric value out of PageData.
func (c MiraContext) PageFloat(key string, fallback float64) float64 {
	switch value := c.PageData[key].(type) {
	case float64:
		return value
	case float32:
		return float64(value)
	case int:
		return float64(value)
	case int64:
		return float64(value)
	}
	return fallback
}

// PageBool reads a boolean value out of PageData.
func (c MiraContext) PageBool(key string) bool {
	value, _ := c.PageData[key].(bool)
	return value
}
