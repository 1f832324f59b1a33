package models

import (
	"context"
	"time"
)

// InverseCommand is the recorded inverse of a successful execution. It pairs
// the closure that reverts the effect with inspectable metadata describing
// what the revert will do.
type InverseCommand struct {
	Description string         `json:"description"`
	Snapshot    map[string]any `json:"snapshot,omitempty"`
	Apply       func(ctx context.Context) (*ActionResult, error) `json:"-"`
}

// ActionResult is the uniform outcome of an execution attempt. The executor
// always returns one; it never panics across its boundary.
type ActionResult struct {
	Success       bool            `json:"success"`
	Data          any             `json:"data,omitempty"`
	Error         string          `json:"error,omitempty"`
	Warnings      []string        `json:"warnings,omitempty"`
	ExecutionTime time.Duration   `json:"executionTime"`
	Undoable      bool            `json:"undoable,omitempty"`
	Undo          *InverseCommand `json:"undo,omitempty"`
	Metadata      map[string]any  `json:"metadata,omitempty"`
}

// HistoryEntry records one successful execution in the bounded history ring.
type HistoryEntry struct {
	ID         string         `json:"id"`
	Action     *Action        `json:"action"`
	Parameters map[string]any `json:"parameters,omitempty"`
	Context    ActionContext  `json:"context"`
	Result     *ActionResult  `json:"result"`
	Timestamp  time.Time      `json:"timestamp"`
	Undone     bool           `json:"undone"`
}
