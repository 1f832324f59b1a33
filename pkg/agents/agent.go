package agents

import (
	"context"

	"github.com/advisorhub/mira/pkg/models"
	"github.com/advisorhub/mira/pkg/tools"
)

// Agent handles the intents of one skill module. Execute must always
// return a response, falling back to a module navigation when the
// intent is unrecognized.
type Agent interface {
	ID() string
	Module() models.Module
	Execute(ctx context.Context, intent string, mctx models.MiraContext, userMessage string) (*models.MiraResponse, error)
	Suggestions(ctx context.Context, mctx models.MiraContext) []models.SuggestedIntent
}

// invokeTool runs a registered tool on behalf of an agent. Tool failures
// are reported through the result, not an error, so agents can still
// respond with navigation when a backend call degrades.
func invokeTool(ctx context.Context, registry *tools.Registry, name string, args map[string]any, mctx models.MiraContext) models.ToolResult {
	return registry.Execute(ctx, name, args, tools.ToolContext{AdvisorID: mctx.AdvisorID})
}
