// Package tools provides the server-side tool registry: named,
// schema-validated functions agents invoke, wrapped with error
// categorization and bounded retry.
package tools

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	"github.com/advisorhub/mira/pkg/models"
)

// Tool registry error codes.
const (
	CodeToolNotFound    = "tool_not_found"
	CodeValidationError = "validation_error"
	CodeAuthRequired    = "auth_required"
	CodeToolFailure     = "tool_failure"
)

// Handler performs the tool's work with already-validated arguments.
type Handler func(ctx context.Context, args map[string]any, tc ToolContext) (any, error)

// Tool is a named server-side function. Names are namespaced
// "<module>__<resource>.<verb>" for module-owned tools.
type Tool struct {
	Name         string
	Description  string
	Module       models.Module
	Schema       map[string]any
	RequiresAuth bool
	Handler      Handler
}

// ToolContext carries caller identity into tool handlers.
type ToolContext struct {
	AdvisorID string
	TenantID  string
	Metadata  map[string]any
}

// FailureSink observes categorized tool failures for audit logging.
type FailureSink interface {
	ToolFailed(ctx context.Context, toolName string, args map[string]any, terr models.ToolError, advisorID string)
}

// Registry holds registered tools and executes them behind argument
// validation, retry, and error categorization. Every invocation returns a
// ToolResult; the registry never panics across its boundary.
type Registry struct {
	mu      sync.RWMutex
	tools   map[string]*Tool
	retry   RetryConfig
	failure FailureSink
	logger  *slog.Logger
}

// NewRegistry creates an empty tool registry. failure may be nil.
func NewRegistry(logger *slog.Logger, retry RetryConfig, failure FailureSink) *Registry {
	return &Registry{
		tools:   make(map[string]*Tool),
		retry:   retry,
		failure: failure,
		logger:  logger.With("module", "tool-registry"),
	}
}

// Register adds a tool. Re-registering a name overwrites the previous tool.
func (r *Registry) Register(tool *Tool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tools[tool.Name]; exists {
		r.logger.Warn("Tool already registered, overwriting", "tool", tool.Name)
	}

	r.tools[tool.Name] = tool

	r.logger.Debug("Registered tool", "tool", tool.Name, "tool_module", tool.Module)
}

// Get returns a registered tool by name.
func (r *Registry) Get(name string) (*Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tool, ok := r.tools[name]

	return tool, ok
}

// All returns every registered tool sorted by name.
func (r *Registry) All() []*Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Tool, 0, len(r.tools))
	for _, t := range r.tools {
		out = append(out, t)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	return out
}

// ByModule returns the tools owned by a module.
func (r *Registry) ByModule(module models.Module) []*Tool {
	var out []*Tool

	for _, t := range r.All() {
		if t.Module == module {
			out = append(out, t)
		}
	}

	return out
}

// Execute runs a tool by name: schema validation first, then the handler
// behind retry for transient failures. Unknown tools, invalid arguments, and
// handler failures all come back as failed results, never as errors.
func (r *Registry) Execute(ctx context.Context, name string, args map[string]any, tc ToolContext) models.ToolResult {
	tool, ok := r.Get(name)
	if !ok {
		return models.FailResult(models.ToolError{
			Code:    CodeToolNotFound,
			Message: fmt.Sprintf("Tool %q not found in registry", name),
			Details: map[string]any{"availableTools": r.toolNames()},
		})
	}

	if args == nil {
		args = map[string]any{}
	}

	if tool.Schema != nil {
		if terr := r.validateArgs(tool, args); terr != nil {
			return models.FailResult(*terr)
		}
	}

	if tool.RequiresAuth && tc.AdvisorID == "" {
		return models.FailResult(models.ToolError{
			Code:    CodeAuthRequired,
			Message: fmt.Sprintf("Tool %q requires authentication", name),
		})
	}

	data, err := WithRetry(ctx, r.retry, r.logger, func() (any, error) {
		return r.invoke(ctx, tool, args, tc)
	})
	if err != nil {
		terr := CategorizeError(err)

		r.logger.Error("Tool execution failed",
			"tool", name, "code", terr.Code, "error", terr.Message)

		if r.failure != nil {
			r.failure.ToolFailed(ctx, name, args, terr, tc.AdvisorID)
		}

		return models.FailResult(terr)
	}

	return models.OkResult(data)
}

func (r *Registry) invoke(ctx context.Context, tool *Tool, args map[string]any, tc ToolContext) (data any, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("Tool handler panicked", "tool", tool.Name, "panic", rec)

			err = fmt.Errorf("tool %q panicked: %v", tool.Name, rec)
		}
	}()

	return tool.Handler(ctx, args, tc)
}

func (r *Registry) validateArgs(tool *Tool, args map[string]any) *models.ToolError {
	result, err := gojsonschema.Validate(
		gojsonschema.NewGoLoader(tool.Schema),
		gojsonschema.NewGoLoader(args),
	)
	if err != nil {
		return &models.ToolError{
			Code:    CodeValidationError,
			Message: fmt.Sprintf("schema validation failed: %s", err.Error()),
		}
	}

	if !result.Valid() {
		issues := make([]string, 0, len(result.Errors()))
		for _, issue := range result.Errors() {
			issues = append(issues, issue.String())
		}

		return &models.ToolError{
			Code:    CodeValidationError,
			Message: "Invalid parameters",
			Details: issues,
		}
	}

	return nil
}

func (r *Registry) toolNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}
