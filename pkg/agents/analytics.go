package agents

import (
	"context"
	"log/slog"

	"github.com/advisorhub/mira/pkg/models"
	"github.com/advisorhub/mira/pkg/tools"
)

// Intents handled by the analytics agent.
const (
	IntentViewYTDProgress  = "view_ytd_progress"
	IntentViewMonthlyTrend = "view_monthly_trend"
	IntentCompareToTeam    = "compare_to_team"
	IntentViewStageCounts  = "view_stage_counts"
	IntentIdentifyDropOff  = "identify_drop_off"
)

// AnalyticsAgent interprets performance dashboards and points advisors
// at the relevant charts.
type AnalyticsAgent struct {
	tools  *tools.Registry
	logger *slog.Logger
}

func NewAnalyticsAgent(logger *slog.Logger, registry *tools.Registry) *AnalyticsAgent {
	return &AnalyticsAgent{
		tools:  registry,
		logger: logger.With("module", "agents.analytics"),
	}
}

func (a *AnalyticsAgent) ID() string            { return "AnalyticsAgent" }
func (a *AnalyticsAgent) Module() models.Module { return models.ModuleAnalytics }

func (a *AnalyticsAgent) Execute(ctx context.Context, intent string, mctx models.MiraContext, _ string) (*models.MiraResponse, error) {
	switch intent {
	case IntentViewYTDProgress:
		return a.ytdProgress(ctx, mctx), nil
	case IntentViewMonthlyTrend:
		return a.monthlyTrend(ctx, mctx), nil
	case IntentCompareToTeam:
		return a.teamComparison(ctx, mctx), nil
	case IntentViewStageCounts:
		return a.stageCounts(ctx, mctx), nil
	case IntentIdentifyDropOff:
		return a.dropOff(ctx, mctx), nil
	default:
		return BuildResponse(a.ID(), intent, mctx,
			"Opening analytics overview.",
			[]models.UIAction{NavigateAction(mctx.Module, "/analytics", nil)},
		), nil
	}
}

func (a *AnalyticsAgent) advisorID(mctx models.MiraContext) string {
	if mctx.AdvisorID != "" {
		return mctx.AdvisorID
	}
	return "advisor-1"
}

func (a *AnalyticsAgent) ytdProgress(ctx context.Context, mctx models.MiraContext) *models.MiraResponse {
	invokeTool(ctx, a.tools, "analytics__performance.get", map[string]any{
		"advisorId": a.advisorID(mctx),
		"period":    "YTD",
	}, mctx)

	actions := []models.UIAction{NavigateAction(mctx.Module, "/analytics", map[string]any{"range": "YTD"})}
	reply := "Showing your YTD premium, proposals, and conversion. Use the range toggle to switch periods."

	return BuildResponse(a.ID(), IntentViewYTDProgress, mctx, reply, actions, WithSubtopic("performance"))
}

func (a *AnalyticsAgent) monthlyTrend(ctx context.Context, mctx models.MiraContext) *models.MiraResponse {
	invokeTool(ctx, a.tools, "analytics__trend.getMonthly", map[string]any{"advisorId": a.advisorID(mctx)}, mctx)

	actions := []models.UIAction{NavigateAction(mctx.Module, "/analytics/monthly", nil)}
	reply := "Highlighting month-over-month premium trend. I'll annotate the peaks and dips for you."

	return BuildResponse(a.ID(), IntentViewMonthlyTrend, mctx, reply, actions, WithSubtopic("trend"))
}

func (a *AnalyticsAgent) teamComparison(ctx context.Context, mctx models.MiraContext) *models.MiraResponse {
	invokeTool(ctx, a.tools, "analytics__team.getStats", map[string]any{}, mctx)

	actions := []models.UIAction{NavigateAction(mctx.Module, "/analytics/team-comparison", nil)}
	reply := "Comparing your metrics with the team average and identifying the top performers."

	return BuildResponse(a.ID(), IntentCompareToTeam, mctx, reply, actions, WithSubtopic("team"))
}

func (a *AnalyticsAgent) stageCounts(ctx context.Context, mctx models.MiraContext) *models.MiraResponse {
	invokeTool(ctx, a.tools, "analytics__funnel.get", map[string]any{"period": "30D"}, mctx)

	actions := []models.UIAction{NavigateAction(mctx.Module, "/analytics/funnel", nil)}
	reply := "Opening funnel view to show counts across each stage. I'll flag any bottlenecks."

	return BuildResponse(a.ID(), IntentViewStageCounts, mctx, reply, actions, WithSubtopic("funnel"))
}

func (a *AnalyticsAgent) dropOff(ctx context.Context, mctx models.MiraContext) *models.MiraResponse {
	invokeTool(ctx, a.tools, "analytics__funnel.get", map[string]any{"period": "90D"}, mctx)

	actions := []models.UIAction{NavigateAction(mctx.Module, "/analytics/funnel", map[string]any{"highlight": "dropoff"})}
	reply := "Analyzing the conversion funnel to highlight where prospects drop off most. I'll suggest follow-up actions."

	return BuildResponse(a.ID(), IntentIdentifyDropOff, mctx, reply, actions, WithSubtopic("funnel"))
}

func (a *AnalyticsAgent) Suggestions(ctx context.Context, mctx models.MiraContext) []models.SuggestedIntent {
	return nil
}
