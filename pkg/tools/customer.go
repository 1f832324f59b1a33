package tools

import (
	"context"

	"github.com/advisorhub/mira/pkg/models"
	"github.com/advisorhub/mira/pkg/store"
)

// RegisterCustomerTools adds the lead and customer tools backed by the store.
func RegisterCustomerTools(registry *Registry, st store.LeadStore) {
	registry.Register(&Tool{
		Name:        "customer__leads.list",
		Description: "List leads filtered by status or source",
		Module:      models.ModuleCustomer,
		Schema: objectSchema(nil, map[string]any{
			"status":      stringProp("Filter by lead status"),
			"lead_source": stringProp("Filter by lead source"),
		}),
		Handler: func(ctx context.Context, args map[string]any, _ ToolContext) (any, error) {
			return st.ListLeads(ctx, store.LeadFilters{
				Status:     store.LeadStatus(argString(args, "status")),
				LeadSource: argString(args, "lead_source"),
			})
		},
	})

	registry.Register(&Tool{
		Name:         "customer__leads.create",
		Description:  "Create a new lead record",
		Module:       models.ModuleCustomer,
		RequiresAuth: true,
		Schema: objectSchema([]string{"name", "contact_number"}, map[string]any{
			"name":           stringProp("Lead's full name"),
			"contact_number": stringProp("Primary contact number"),
			"email":          stringProp("Email address"),
			"lead_source":    stringProp("Source of the lead"),
		}),
		Handler: func(ctx context.Context, args map[string]any, _ ToolContext) (any, error) {
			return st.CreateLead(ctx, store.CreateLeadInput{
				Name:          argString(args, "name"),
				ContactNumber: argString(args, "contact_number"),
				Email:         argString(args, "email"),
				LeadSource:    argString(args, "lead_source"),
			})
		},
	})

	registry.Register(&Tool{
		Name:         "customer__leads.update",
		Description:  "Update an existing lead by id",
		Module:       models.ModuleCustomer,
		RequiresAuth: true,
		Schema: objectSchema([]string{"id"}, map[string]any{
			"id":     stringProp("Lead id"),
			"status": stringProp("New lead status"),
			"owner":  stringProp("New owner"),
		}),
		Handler: func(ctx context.Context, args map[string]any, _ ToolContext) (any, error) {
			return st.UpdateLead(ctx, argString(args, "id"), store.UpdateLeadInput{
				Status: store.LeadStatus(argString(args, "status")),
				Owner:  argString(args, "owner"),
			})
		},
	})

	registry.Register(&Tool{
		Name:        "customer__leads.search",
		Description: "Search leads by keyword",
		Module:      models.ModuleCustomer,
		Schema: objectSchema([]string{"query"}, map[string]any{
			"query": stringProp("Search keyword"),
		}),
		Handler: func(ctx context.Context, args map[string]any, _ ToolContext) (any, error) {
			return st.SearchLeads(ctx, argString(args, "query"))
		},
	})

	registry.Register(&Tool{
		Name:        "customer__customers.get",
		Description: "Fetch customer summary",
		Module:      models.ModuleCustomer,
		Schema: objectSchema([]string{"id"}, map[string]any{
			"id": stringProp("Customer id"),
		}),
		Handler: func(ctx context.Context, args map[string]any, _ ToolContext) (any, error) {
			return st.GetCustomer(ctx, argString(args, "id"))
		},
	})
}
