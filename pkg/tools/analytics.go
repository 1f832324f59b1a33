package tools

import (
	"context"

	"github.com/advisorhub/mira/pkg/models"
	"github.com/advisorhub/mira/pkg/store"
)

// RegisterAnalyticsTools adds the advisor performance tools.
func RegisterAnalyticsTools(registry *Registry, st store.AnalyticsStore) {
	registry.Register(&Tool{
		Name:        "analytics__performance.get",
		Description: "Fetch advisor YTD performance",
		Module:      models.ModuleAnalytics,
		Schema: objectSchema([]string{"advisorId", "period"}, map[string]any{
			"advisorId": stringProp("Advisor id"),
			"period":    stringProp("Reporting period, e.g. ytd"),
		}),
		Handler: func(ctx context.Context, args map[string]any, _ ToolContext) (any, error) {
			return st.Performance(ctx, argString(args, "advisorId"), argString(args, "period"))
		},
	})

	registry.Register(&Tool{
		Name:        "analytics__funnel.get",
		Description: "Retrieve funnel breakdown",
		Module:      models.ModuleAnalytics,
		Schema: objectSchema(nil, map[string]any{
			"period": stringProp("Reporting period"),
		}),
		Handler: func(ctx context.Context, args map[string]any, _ ToolContext) (any, error) {
			return st.Funnel(ctx, argString(args, "period"))
		},
	})

	registry.Register(&Tool{
		Name:        "analytics__team.getStats",
		Description: "Get team comparison stats",
		Module:      models.ModuleAnalytics,
		Schema:      objectSchema(nil, map[string]any{}),
		Handler: func(ctx context.Context, args map[string]any, _ ToolContext) (any, error) {
			return st.TeamStats(ctx)
		},
	})

	registry.Register(&Tool{
		Name:        "analytics__trend.getMonthly",
		Description: "Fetch advisor monthly trend data",
		Module:      models.ModuleAnalytics,
		Schema: objectSchema([]string{"advisorId"}, map[string]any{
			"advisorId": stringProp("Advisor id"),
		}),
		Handler: func(ctx context.Context, args map[string]any, _ ToolContext) (any, error) {
			return st.MonthlyTrend(ctx, argString(args, "advisorId"))
		},
	})
}
