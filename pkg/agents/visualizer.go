package agents

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/advisorhub/mira/pkg/models"
	"github.com/advisorhub/mira/pkg/tools"
)

// Intents handled by the visualizer agent.
const (
	IntentGeneratePlan     = "generate_plan"
	IntentViewScenarios    = "view_scenarios"
	IntentCompareScenarios = "compare_scenarios"
)

// VisualizerAgent drives plan generation and scenario comparison in the
// financial visualizer.
type VisualizerAgent struct {
	tools  *tools.Registry
	logger *slog.Logger
}

func NewVisualizerAgent(logger *slog.Logger, registry *tools.Registry) *VisualizerAgent {
	return &VisualizerAgent{
		tools:  registry,
		logger: logger.With("module", "agents.visualizer"),
	}
}

func (a *VisualizerAgent) ID() string            { return "VisualizerAgent" }
func (a *VisualizerAgent) Module() models.Module { return models.ModuleVisualizer }

func (a *VisualizerAgent) Execute(ctx context.Context, intent string, mctx models.MiraContext, _ string) (*models.MiraResponse, error) {
	switch intent {
	case IntentGeneratePlan:
		return a.generatePlan(ctx, mctx), nil
	case IntentViewScenarios:
		return a.viewScenarios(ctx, mctx), nil
	case IntentCompareScenarios:
		return a.compareScenarios(ctx, mctx), nil
	default:
		return BuildResponse(a.ID(), intent, mctx,
			"Opening Financial Visualizer.",
			[]models.UIAction{NavigateAction(mctx.Module, "/visualizer", nil)},
		), nil
	}
}

func (a *VisualizerAgent) generatePlan(ctx context.Context, mctx models.MiraContext) *models.MiraResponse {
	customerID := mctx.PageString("customerId", "C-2001")

	plan := invokeTool(ctx, a.tools, "visualizer__plans.generate", map[string]any{"customerId": customerID}, mctx)

	actions := []models.UIAction{
		NavigateAction(mctx.Module, "/visualizer", map[string]any{"customerId": customerID}),
		PrefillAction(map[string]any{"plan": plan.Data}, false, ""),
	}

	reply := fmt.Sprintf("Generating a tailored plan for %s and loading the chart with projections.", customerID)

	return BuildResponse(a.ID(), IntentGeneratePlan, mctx, reply, actions, WithSubtopic("plan"))
}

func (a *VisualizerAgent) viewScenarios(ctx context.Context, mctx models.MiraContext) *models.MiraResponse {
	customerID := mctx.PageString("customerId", "C-2001")

	invokeTool(ctx, a.tools, "visualizer__scenarios.get", map[string]any{"customerId": customerID}, mctx)

	actions := []models.UIAction{
		NavigateAction(mctx.Module, "/visualizer/scenarios", map[string]any{"customerId": customerID}),
	}
	reply := "Listing the saved scenarios so you can toggle between growth assumptions."

	return BuildResponse(a.ID(), IntentViewScenarios, mctx, reply, actions, WithSubtopic("scenario"))
}

func (a *VisualizerAgent) compareScenarios(ctx context.Context, mctx models.MiraContext) *models.MiraResponse {
	scenarioIDs := mctx.PageStringSlice("scenarioIds", []string{"C-2001-S1", "C-2001-S2"})

	invokeTool(ctx, a.tools, "visualizer__scenarios.compare", map[string]any{"scenarioIds": scenarioIDs}, mctx)

	actions := []models.UIAction{
		NavigateAction(mctx.Module, "/visualizer/compare", map[string]any{"scenarioIds": strings.Join(scenarioIDs, ",")}),
	}
	reply := "Comparing the selected scenarios and surfacing the key differences in projected value."

	return BuildResponse(a.ID(), IntentCompareScenarios, mctx, reply, actions, WithSubtopic("comparison"))
}

func (a *VisualizerAgent) Suggestions(ctx context.Context, mctx models.MiraContext) []models.SuggestedIntent {
	return nil
}
