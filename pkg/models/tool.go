package models

// ToolError classifies a tool failure. Retryable errors are transient
// (connection loss, timeouts); everything else is permanent and fails closed.
type ToolError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Details   any    `json:"details,omitempty"`
	Retryable bool   `json:"retryable"`
}

// ToolResult is the uniform envelope every tool invocation returns.
type ToolResult struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ToolError `json:"error,omitempty"`
}

// OkResult wraps data in a successful tool result.
func OkResult(data any) ToolResult {
	return ToolResult{Success: true, Data: data}
}

// FailResult wraps a tool error in a failed tool result.
func FailResult(terr ToolError) ToolResult {
	return ToolResult{Success: false, Error: &terr}
}
