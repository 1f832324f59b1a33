package tools

import (
	"context"
	"fmt"

	"github.com/advisorhub/mira/pkg/models"
	"github.com/advisorhub/mira/pkg/store"
)

// ComparisonMatrix lays out metric rows across the compared product ids.
type ComparisonMatrix struct {
	IDs     []string         `json:"ids"`
	Metrics []ComparisonRow  `json:"metrics"`
}

// ComparisonRow is one metric across the compared ids.
type ComparisonRow struct {
	Metric string            `json:"metric"`
	Values map[string]string `json:"values"`
}

// RegisterProductTools adds the product shelf tools.
func RegisterProductTools(registry *Registry, st store.ProductStore) {
	registry.Register(&Tool{
		Name:        "product__products.search",
		Description: "Search products by keyword and category",
		Module:      models.ModuleProduct,
		Schema: objectSchema([]string{"keyword"}, map[string]any{
			"keyword":  stringProp("Search keyword"),
			"category": stringProp("Optional category filter"),
		}),
		Handler: func(ctx context.Context, args map[string]any, _ ToolContext) (any, error) {
			return st.SearchProducts(ctx, argString(args, "keyword"), argString(args, "category"))
		},
	})

	registry.Register(&Tool{
		Name:        "product__products.getDetails",
		Description: "Get product detail by id",
		Module:      models.ModuleProduct,
		Schema: objectSchema([]string{"id"}, map[string]any{
			"id": stringProp("Product id"),
		}),
		Handler: func(ctx context.Context, args map[string]any, _ ToolContext) (any, error) {
			return st.GetProduct(ctx, argString(args, "id"))
		},
	})

	registry.Register(&Tool{
		Name:        "product__products.compare",
		Description: "Compare multiple products",
		Module:      models.ModuleProduct,
		Schema: objectSchema([]string{"ids"}, map[string]any{
			"ids": stringArrayProp("Product ids to compare"),
		}),
		Handler: func(ctx context.Context, args map[string]any, _ ToolContext) (any, error) {
			ids := argStringSlice(args, "ids")

			premiums := make(map[string]string, len(ids))
			coverages := make(map[string]string, len(ids))

			for _, id := range ids {
				product, err := st.GetProduct(ctx, id)
				if err != nil {
					return nil, err
				}

				premiums[id] = fmt.Sprintf("$%.0f", product.Premium)
				coverages[id] = fmt.Sprintf("$%.0f", product.Coverage)
			}

			return ComparisonMatrix{
				IDs: ids,
				Metrics: []ComparisonRow{
					{Metric: "Premium", Values: premiums},
					{Metric: "Coverage", Values: coverages},
				},
			}, nil
		},
	})

	registry.Register(&Tool{
		Name:        "product__products.listCategories",
		Description: "List product categories",
		Module:      models.ModuleProduct,
		Schema:      objectSchema(nil, map[string]any{}),
		Handler: func(ctx context.Context, args map[string]any, _ ToolContext) (any, error) {
			return st.ListProductCategories(ctx)
		},
	})
}
