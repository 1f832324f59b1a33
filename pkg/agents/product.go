package agents

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/advisorhub/mira/pkg/models"
	"github.com/advisorhub/mira/pkg/tools"
)

// Intents handled by the product agent. Product comparison shares its
// intent name with the new business agent since both workspaces offer it.
const (
	IntentListByCategory    = "list_by_category"
	IntentSearchByKeyword   = "search_by_keyword"
	IntentViewProductDetail = "view_product_detail"
)

// ProductAgent helps advisors browse the product catalog and compare
// plans.
type ProductAgent struct {
	tools  *tools.Registry
	logger *slog.Logger
}

func NewProductAgent(logger *slog.Logger, registry *tools.Registry) *ProductAgent {
	return &ProductAgent{
		tools:  registry,
		logger: logger.With("module", "agents.product"),
	}
}

func (a *ProductAgent) ID() string            { return "ProductAgent" }
func (a *ProductAgent) Module() models.Module { return models.ModuleProduct }

func (a *ProductAgent) Execute(ctx context.Context, intent string, mctx models.MiraContext, userMessage string) (*models.MiraResponse, error) {
	switch intent {
	case IntentListByCategory:
		return a.listByCategory(ctx, mctx), nil
	case IntentSearchByKeyword:
		return a.search(ctx, mctx, userMessage), nil
	case IntentViewProductDetail:
		return a.viewDetail(ctx, mctx), nil
	case IntentCompareProducts:
		return a.compare(ctx, mctx), nil
	default:
		return BuildResponse(a.ID(), intent, mctx,
			"I'll open the product workspace for you.",
			[]models.UIAction{NavigateAction(mctx.Module, "/product", nil)},
		), nil
	}
}

func (a *ProductAgent) listByCategory(ctx context.Context, mctx models.MiraContext) *models.MiraResponse {
	category := mctx.PageString("category", "Protection")

	invokeTool(ctx, a.tools, "product__products.search", map[string]any{"keyword": "", "category": category}, mctx)

	actions := []models.UIAction{
		NavigateAction(mctx.Module, "/product", map[string]any{"category": category}),
		PrefillAction(map[string]any{"category": category}, false, ""),
	}

	reply := fmt.Sprintf("Showing %s products with filters applied in the catalog.", category)

	return BuildResponse(a.ID(), IntentListByCategory, mctx, reply, actions, WithSubtopic("catalog"))
}

func (a *ProductAgent) search(ctx context.Context, mctx models.MiraContext, userMessage string) *models.MiraResponse {
	keyword := mctx.PageString("keyword", userMessage)

	invokeTool(ctx, a.tools, "product__products.search", map[string]any{"keyword": keyword}, mctx)

	actions := []models.UIAction{
		NavigateAction(mctx.Module, "/product", map[string]any{"search": keyword}),
		PrefillAction(map[string]any{"search": keyword}, false, ""),
	}

	reply := fmt.Sprintf("Searching for %q and highlighting the closest matches.", keyword)

	return BuildResponse(a.ID(), IntentSearchByKeyword, mctx, reply, actions, WithSubtopic("catalog"))
}

func (a *ProductAgent) viewDetail(ctx context.Context, mctx models.MiraContext) *models.MiraResponse {
	productID := mctx.PageString("productId", "PR-1001")

	invokeTool(ctx, a.tools, "product__products.getDetails", map[string]any{"id": productID}, mctx)

	actions := []models.UIAction{NavigateAction(mctx.Module, "/product/detail/"+productID, nil)}
	reply := fmt.Sprintf("Opening the detail page for %s with coverage, riders, and suitability summary.", productID)

	return BuildResponse(a.ID(), IntentViewProductDetail, mctx, reply, actions, WithSubtopic("details"))
}

func (a *ProductAgent) compare(ctx context.Context, mctx models.MiraContext) *models.MiraResponse {
	ids := mctx.PageStringSlice("productIds", []string{"PR-1001", "PR-1002"})

	invokeTool(ctx, a.tools, "product__products.compare", map[string]any{"ids": ids}, mctx)

	actions := []models.UIAction{
		NavigateAction(mctx.Module, "/product/compare", map[string]any{"ids": strings.Join(ids, ",")}),
	}

	reply := fmt.Sprintf("Stacking %d products side-by-side. Use the comparison tray to adjust rows.", len(ids))

	return BuildResponse(a.ID(), IntentCompareProducts, mctx, reply, actions, WithSubtopic("comparison"))
}

func (a *ProductAgent) Suggestions(ctx context.Context, mctx models.MiraContext) []models.SuggestedIntent {
	category := mctx.PageString("category", "protection")
	keyword := mctx.PageString("keyword", "income protection")
	focusProduct := mctx.PageString("productId", "PR-1001")

	return []models.SuggestedIntent{
		{
			Intent:      IntentListByCategory,
			Title:       fmt.Sprintf("Browse %s plans", category),
			Description: "Filter the catalog so I only see relevant products.",
			PromptText:  fmt.Sprintf("Show me %s products in the catalog and highlight any best sellers.", category),
			Module:      a.Module(),
			Confidence:  0.78,
		},
		{
			Intent:      IntentSearchByKeyword,
			Title:       fmt.Sprintf("Search for %q", keyword),
			Description: "Find matching products and surface key notes.",
			PromptText:  fmt.Sprintf("Search the product catalog for %q and summarize the top 3 matches.", keyword),
			Module:      a.Module(),
			Confidence:  0.73,
		},
		{
			Intent:      IntentViewProductDetail,
			Title:       fmt.Sprintf("Open %s details", focusProduct),
			Description: "Jump directly into riders and suitability.",
			PromptText:  fmt.Sprintf("Open the product detail page for %s including availability notes.", focusProduct),
			Module:      a.Module(),
			Confidence:  0.69,
		},
	}
}
