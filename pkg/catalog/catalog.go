// Package catalog holds the static action templates advisors can run and
// instantiates concrete actions from them.
package catalog

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/advisorhub/mira/pkg/models"
)

// Variant is a named preset of parameter values for a template.
type Variant struct {
	Name       string         `json:"name"`
	Parameters map[string]any `json:"parameters"`
}

// Template is a reusable action definition. Instantiate stamps it into a
// concrete Action with a unique id; the HandlerKey stays stable so the
// executor can dispatch any instance.
type Template struct {
	ID       string
	Action   models.Action
	Variants []Variant
}

// Catalog is the in-process template store, rebuilt at startup.
type Catalog struct {
	templates []Template
	byID      map[string]Template
}

// New builds a catalog from the default template set.
func New() *Catalog {
	return FromTemplates(defaultTemplates())
}

// FromTemplates builds a catalog from an explicit template list.
func FromTemplates(templates []Template) *Catalog {
	byID := make(map[string]Template, len(templates))
	for _, t := range templates {
		byID[t.ID] = t
	}

	return &Catalog{templates: templates, byID: byID}
}

// Templates returns all templates in declaration order.
func (c *Catalog) Templates() []Template {
	out := make([]Template, len(c.templates))
	copy(out, c.templates)

	return out
}

// Get returns the template with the given id.
func (c *Catalog) Get(id string) (Template, bool) {
	t, ok := c.byID[id]

	return t, ok
}

// ByCategory returns templates whose action belongs to the category.
func (c *Catalog) ByCategory(category models.Category) []Template {
	var out []Template

	for _, t := range c.templates {
		if t.Action.Category == category {
			out = append(out, t)
		}
	}

	return out
}

// Instantiate creates a concrete action from a template. The instance id is
// the template id plus a unique suffix; overrides (may be nil) runs on the
// copy before it is returned.
func (c *Catalog) Instantiate(id string, overrides func(*models.Action)) (*models.Action, error) {
	t, ok := c.byID[id]
	if !ok {
		return nil, fmt.Errorf("action template %q not found", id)
	}

	action := t.Action
	action.ID = fmt.Sprintf("%s_%s", t.ID, strings.ReplaceAll(uuid.NewString(), "-", "")[:12])

	// Copy slices so instances never alias template state.
	action.Parameters = append([]models.ActionParameter(nil), t.Action.Parameters...)
	action.Validation = append([]models.ValidationRule(nil), t.Action.Validation...)
	action.Tags = append([]string(nil), t.Action.Tags...)

	if t.Action.Metadata != nil {
		action.Metadata = make(map[string]any, len(t.Action.Metadata))
		for k, v := range t.Action.Metadata {
			action.Metadata[k] = v
		}
	}

	if overrides != nil {
		overrides(&action)
	}

	return &action, nil
}

func defaultTemplates() []Template {
	return []Template{
		{
			ID: "create_lead",
			Action: models.Action{
				ID:                 "create_lead",
				Name:               "Create New Lead",
				Description:        "Create a new customer lead in the system",
				Category:           models.CategoryCustomer,
				Priority:           models.PriorityHigh,
				RequiredPermission: models.PermissionWrite,
				Undoable:           true,
				HandlerKey:         "lead.create",
				KeyboardShortcut:   "ctrl+shift+l",
				Icon:               "user-plus",
				Parameters: []models.ActionParameter{
					{Name: "name", Type: models.ParameterString, Required: true, Description: "Lead's full name"},
					{Name: "contact_number", Type: models.ParameterString, Required: true, Description: "Primary contact number"},
					{Name: "email", Type: models.ParameterString, Description: "Email address"},
					{
						Name:        "lead_source",
						Type:        models.ParameterString,
						Default:     "Referral",
						Description: "Source of the lead",
						Constraints: &models.ParameterConstraints{
							Enum: []any{"Referral", "Social Media", "Walk-in", "Cold Call", "Website", "Event", "Other"},
						},
					},
				},
				Tags: []string{"customer", "lead", "create"},
			},
			Variants: []Variant{
				{Name: "Referral Lead", Parameters: map[string]any{"lead_source": "Referral"}},
				{Name: "Social Media Lead", Parameters: map[string]any{"lead_source": "Social Media"}},
			},
		},
		{
			ID: "view_customer",
			Action: models.Action{
				ID:                 "view_customer",
				Name:               "View Customer Details",
				Description:        "Navigate to customer detail page",
				Category:           models.CategoryCustomer,
				Priority:           models.PriorityMedium,
				RequiredPermission: models.PermissionRead,
				HandlerKey:         "customer.view",
				KeyboardShortcut:   "ctrl+shift+c",
				Icon:               "user",
				Parameters: []models.ActionParameter{
					{Name: "customerId", Type: models.ParameterString, Required: true, Description: "Customer ID to view"},
				},
				Tags: []string{"customer", "view", "navigate"},
			},
		},
		{
			ID: "update_customer",
			Action: models.Action{
				ID:                   "update_customer",
				Name:                 "Update Customer Information",
				Description:          "Update existing customer details",
				Category:             models.CategoryCustomer,
				Priority:             models.PriorityMedium,
				RequiredPermission:   models.PermissionWrite,
				RequiresConfirmation: true,
				Undoable:             true,
				HandlerKey:           "customer.update",
				Icon:                 "edit",
				Parameters: []models.ActionParameter{
					{Name: "customerId", Type: models.ParameterString, Required: true, Description: "Customer ID to update"},
					{Name: "fields", Type: models.ParameterObject, Required: true, Description: "Fields to update"},
				},
				Tags: []string{"customer", "update", "edit"},
			},
		},
		{
			ID: "create_proposal",
			Action: models.Action{
				ID:                 "create_proposal",
				Name:               "Create New Proposal",
				Description:        "Create a new insurance proposal for a customer",
				Category:           models.CategoryProposal,
				Priority:           models.PriorityHigh,
				RequiredPermission: models.PermissionWrite,
				Undoable:           true,
				HandlerKey:         "proposal.create",
				KeyboardShortcut:   "ctrl+shift+p",
				Icon:               "file-text",
				Parameters: []models.ActionParameter{
					{Name: "customerId", Type: models.ParameterString, Required: true, Description: "Customer ID for the proposal"},
					{
						Name:        "productType",
						Type:        models.ParameterString,
						Description: "Type of insurance product",
						Constraints: &models.ParameterConstraints{Enum: []any{"Life", "Health", "Investment", "General"}},
					},
					{
						Name:        "coverageAmount",
						Type:        models.ParameterNumber,
						Description: "Proposed coverage amount",
						Constraints: &models.ParameterConstraints{Min: float64Ptr(0)},
					},
				},
				Tags: []string{"proposal", "create", "new-business"},
			},
		},
		{
			ID: "navigate_to_proposal_form",
			Action: models.Action{
				ID:                 "navigate_to_proposal_form",
				Name:               "Go to Proposal Form",
				Description:        "Navigate to the proposal creation form",
				Category:           models.CategoryNavigation,
				Priority:           models.PriorityMedium,
				RequiredPermission: models.PermissionWrite,
				HandlerKey:         "navigate",
				Icon:               "arrow-right",
				Parameters: []models.ActionParameter{
					{Name: "customerId", Type: models.ParameterString, Description: "Pre-fill with customer ID"},
				},
				Tags: []string{"proposal", "navigate", "form"},
			},
		},
		{
			ID: "submit_proposal",
			Action: models.Action{
				ID:                   "submit_proposal",
				Name:                 "Submit Proposal",
				Description:          "Submit the current proposal for review",
				Category:             models.CategoryProposal,
				Priority:             models.PriorityHigh,
				RequiredPermission:   models.PermissionWrite,
				RequiresConfirmation: true,
				HandlerKey:           "proposal.submit",
				Icon:                 "send",
				Parameters: []models.ActionParameter{
					{Name: "proposalId", Type: models.ParameterString, Required: true, Description: "Proposal ID to submit"},
					{Name: "notes", Type: models.ParameterString, Description: "Additional notes"},
				},
				Tags: []string{"proposal", "submit"},
			},
		},
		{
			ID: "apply_analytics_filter",
			Action: models.Action{
				ID:                 "apply_analytics_filter",
				Name:               "Apply Analytics Filter",
				Description:        "Apply filters to analytics dashboard",
				Category:           models.CategoryAnalytics,
				Priority:           models.PriorityMedium,
				RequiredPermission: models.PermissionRead,
				Undoable:           true,
				HandlerKey:         "analytics.filter",
				Icon:               "filter",
				Parameters: []models.ActionParameter{
					{Name: "dateRange", Type: models.ParameterObject, Description: "Date range filter"},
					{Name: "productType", Type: models.ParameterString, Description: "Filter by product type"},
					{Name: "status", Type: models.ParameterString, Description: "Filter by status"},
				},
				Tags: []string{"analytics", "filter"},
			},
			Variants: []Variant{
				{Name: "This Month", Parameters: map[string]any{"dateRange": map[string]any{"preset": "this_month"}}},
				{Name: "Last 30 Days", Parameters: map[string]any{"dateRange": map[string]any{"preset": "last_30_days"}}},
			},
		},
		{
			ID: "export_analytics_report",
			Action: models.Action{
				ID:                 "export_analytics_report",
				Name:               "Export Analytics Report",
				Description:        "Export current analytics data to file",
				Category:           models.CategoryData,
				Priority:           models.PriorityMedium,
				RequiredPermission: models.PermissionRead,
				HandlerKey:         "analytics.export",
				KeyboardShortcut:   "ctrl+shift+e",
				Icon:               "download",
				Parameters: []models.ActionParameter{
					{
						Name:        "format",
						Type:        models.ParameterString,
						Default:     "csv",
						Description: "Export format",
						Constraints: &models.ParameterConstraints{Enum: []any{"csv", "excel", "pdf"}},
					},
					{Name: "includeSummary", Type: models.ParameterBoolean, Default: true, Description: "Include summary section"},
				},
				Tags: []string{"analytics", "export", "download"},
			},
		},
		{
			ID: "create_task",
			Action: models.Action{
				ID:                 "create_task",
				Name:               "Create New Task",
				Description:        "Create a new task or reminder",
				Category:           models.CategoryTodo,
				Priority:           models.PriorityMedium,
				RequiredPermission: models.PermissionWrite,
				Undoable:           true,
				HandlerKey:         "task.create",
				KeyboardShortcut:   "ctrl+shift+t",
				Icon:               "check-square",
				Parameters: []models.ActionParameter{
					{Name: "title", Type: models.ParameterString, Required: true, Description: "Task title"},
					{Name: "description", Type: models.ParameterString, Description: "Task description"},
					{Name: "dueDate", Type: models.ParameterDate, Description: "Due date"},
					{
						Name:        "priority",
						Type:        models.ParameterString,
						Default:     "medium",
						Description: "Task priority",
						Constraints: &models.ParameterConstraints{Enum: []any{"low", "medium", "high", "urgent"}},
					},
					{Name: "relatedCustomerId", Type: models.ParameterString, Description: "Link to customer"},
				},
				Tags: []string{"todo", "task", "create"},
			},
			Variants: []Variant{
				{Name: "Follow-up Call", Parameters: map[string]any{"title": "Follow-up call with customer", "priority": "high"}},
				{Name: "Send Proposal", Parameters: map[string]any{"title": "Send proposal to customer", "priority": "high"}},
			},
		},
		{
			ID: "complete_task",
			Action: models.Action{
				ID:                 "complete_task",
				Name:               "Mark Task Complete",
				Description:        "Mark a task as completed",
				Category:           models.CategoryTodo,
				Priority:           models.PriorityLow,
				RequiredPermission: models.PermissionWrite,
				Undoable:           true,
				HandlerKey:         "task.complete",
				Icon:               "check",
				Parameters: []models.ActionParameter{
					{Name: "taskId", Type: models.ParameterString, Required: true, Description: "Task ID to complete"},
					{Name: "notes", Type: models.ParameterString, Description: "Completion notes"},
				},
				Tags: []string{"todo", "complete"},
			},
		},
		{
			ID: "create_broadcast",
			Action: models.Action{
				ID:                   "create_broadcast",
				Name:                 "Create Broadcast Campaign",
				Description:          "Create a new broadcast message campaign",
				Category:             models.CategoryBroadcast,
				Priority:             models.PriorityMedium,
				RequiredPermission:   models.PermissionWrite,
				RequiresConfirmation: true,
				Undoable:             true,
				HandlerKey:           "broadcast.create",
				Icon:                 "megaphone",
				Parameters: []models.ActionParameter{
					{Name: "title", Type: models.ParameterString, Required: true, Description: "Campaign title"},
					{Name: "message", Type: models.ParameterString, Required: true, Description: "Message content"},
					{Name: "audienceFilter", Type: models.ParameterObject, Description: "Target audience filters"},
					{Name: "scheduledTime", Type: models.ParameterDate, Description: "When to send (immediate if not set)"},
				},
				Tags: []string{"broadcast", "campaign", "communication"},
			},
		},
		{
			ID: "navigate_to_page",
			Action: models.Action{
				ID:                 "navigate_to_page",
				Name:               "Navigate to Page",
				Description:        "Navigate to a specific page in the application",
				Category:           models.CategoryNavigation,
				Priority:           models.PriorityLow,
				RequiredPermission: models.PermissionRead,
				HandlerKey:         "navigate",
				Icon:               "arrow-right",
				Parameters: []models.ActionParameter{
					{
						Name:        "page",
						Type:        models.ParameterString,
						Required:    true,
						Description: "Page to navigate to",
						Constraints: &models.ParameterConstraints{
							Enum: []any{
								"/dashboard", "/customers", "/new-business", "/analytics",
								"/smart-plan", "/news", "/broadcast", "/quick-quote",
							},
						},
					},
					{Name: "params", Type: models.ParameterObject, Description: "URL parameters"},
				},
				Tags: []string{"navigate", "go-to"},
			},
		},
	}
}

func float64Ptr(v float64) *float64 {
	return &v
}
