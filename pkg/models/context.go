package models

import "time"

// SessionInfo identifies the UI session an action originates from.
type SessionInfo struct {
	SessionID string    `json:"sessionId" validate:"required"`
	StartTime time.Time `json:"startTime"`
}

// ActionContext is an immutable snapshot of the caller's environment, built
// per request and passed through execution untouched.
type ActionContext struct {
	UserID        string            `json:"userId" validate:"required"`
	CurrentPage   string            `json:"currentPage,omitempty"`
	CurrentModule string            `json:"currentModule,omitempty"`
	PageData      map[string]any    `json:"pageData,omitempty"`
	Session       SessionInfo       `json:"session"`
	Permissions   []PermissionLevel `json:"permissions,omitempty"`
}

// HasPermission reports whether the context grants the given level.
func (c ActionContext) HasPermission(level PermissionLevel) bool {
	for _, p := range c.Permissions {
		if p == level {
			return true
		}
	}

	return false
}

// ActionRequest bundles everything the executor needs for one execution.
type ActionRequest struct {
	Action           *Action        `json:"action"`
	Parameters       map[string]any `json:"parameters,omitempty"`
	Context          ActionContext  `json:"context"`
	SkipConfirmation bool           `json:"skipConfirmation,omitempty"`
	ValidateOnly     bool           `json:"validateOnly,omitempty"`
}
