package tools

import (
	"context"

	"github.com/advisorhub/mira/pkg/models"
	"github.com/advisorhub/mira/pkg/store"
)

// FinancialPlan is a generated planning summary with projections.
type FinancialPlan struct {
	CustomerID  string           `json:"customerId"`
	Summary     string           `json:"summary"`
	Projections []PlanProjection `json:"projections"`
}

// PlanProjection is one projected value point.
type PlanProjection struct {
	Year  int     `json:"year"`
	Value float64 `json:"value"`
}

// ScenarioComparison lays out metric rows across scenario ids.
type ScenarioComparison struct {
	Scenarios []string               `json:"scenarios"`
	Table     []ScenarioMetricRow    `json:"table"`
}

// ScenarioMetricRow is one metric across the compared scenarios.
type ScenarioMetricRow struct {
	Metric string             `json:"metric"`
	Values map[string]float64 `json:"values"`
}

// RegisterVisualizerTools adds the planning and scenario tools.
func RegisterVisualizerTools(registry *Registry, st store.ScenarioStore) {
	registry.Register(&Tool{
		Name:        "visualizer__plans.generate",
		Description: "Generate financial plan summary for a customer",
		Module:      models.ModuleVisualizer,
		Schema: objectSchema([]string{"customerId"}, map[string]any{
			"customerId": stringProp("Customer id"),
		}),
		Handler: func(ctx context.Context, args map[string]any, _ ToolContext) (any, error) {
			return FinancialPlan{
				CustomerID: argString(args, "customerId"),
				Summary:    "Baseline retirement plan with balanced growth.",
				Projections: []PlanProjection{
					{Year: 2025, Value: 150000},
					{Year: 2030, Value: 320000},
					{Year: 2040, Value: 620000},
				},
			}, nil
		},
	})

	registry.Register(&Tool{
		Name:        "visualizer__scenarios.get",
		Description: "Fetch saved scenarios for a customer",
		Module:      models.ModuleVisualizer,
		Schema: objectSchema([]string{"customerId"}, map[string]any{
			"customerId": stringProp("Customer id"),
		}),
		Handler: func(ctx context.Context, args map[string]any, _ ToolContext) (any, error) {
			return st.Scenarios(ctx, argString(args, "customerId"))
		},
	})

	registry.Register(&Tool{
		Name:        "visualizer__scenarios.compare",
		Description: "Compare multiple scenarios",
		Module:      models.ModuleVisualizer,
		Schema: objectSchema([]string{"scenarioIds"}, map[string]any{
			"scenarioIds": stringArrayProp("Scenario ids to compare"),
		}),
		Handler: func(ctx context.Context, args map[string]any, _ ToolContext) (any, error) {
			ids := argStringSlice(args, "scenarioIds")

			projected := make(map[string]float64, len(ids))
			totals := make(map[string]float64, len(ids))

			for i, id := range ids {
				projected[id] = 500000 + float64(i)*60000
				totals[id] = 180000 + float64(i)*20000
			}

			return ScenarioComparison{
				Scenarios: ids,
				Table: []ScenarioMetricRow{
					{Metric: "Projected Value @ 65", Values: projected},
					{Metric: "Total Premium Paid", Values: totals},
				},
			}, nil
		},
	})
}
