package agents

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"

	"github.com/advisorhub/mira/pkg/models"
	"github.com/advisorhub/mira/pkg/tools"
)

// Intents handled by the customer agent.
const (
	IntentCreateLead       = "create_lead"
	IntentListLeads        = "list_leads"
	IntentSearchLead       = "search_lead"
	IntentViewLeadDetail   = "view_lead_detail"
	IntentUpdateLeadStatus = "update_lead_status"
)

var searchTermPattern = regexp.MustCompile(`(?i)(?:find|search)\s+(.+)$`)

// CustomerAgent manages leads and customer records on the Customer 360
// workspace.
type CustomerAgent struct {
	tools  *tools.Registry
	logger *slog.Logger
}

func NewCustomerAgent(logger *slog.Logger, registry *tools.Registry) *CustomerAgent {
	return &CustomerAgent{
		tools:  registry,
		logger: logger.With("module", "agents.customer"),
	}
}

func (a *CustomerAgent) ID() string            { return "CustomerAgent" }
func (a *CustomerAgent) Module() models.Module { return models.ModuleCustomer }

func (a *CustomerAgent) Execute(ctx context.Context, intent string, mctx models.MiraContext, userMessage string) (*models.MiraResponse, error) {
	switch intent {
	case IntentCreateLead:
		return a.createLead(ctx, mctx, userMessage), nil
	case IntentListLeads:
		return a.listLeads(ctx, mctx), nil
	case IntentSearchLead:
		return a.searchLead(ctx, mctx, userMessage), nil
	case IntentViewLeadDetail:
		return a.viewLeadDetail(ctx, mctx), nil
	case IntentUpdateLeadStatus:
		return a.updateLeadStatus(ctx, mctx), nil
	default:
		return BuildResponse(a.ID(), intent, mctx,
			"Let me check the customer workspace for you.",
			[]models.UIAction{NavigateAction(mctx.Module, "/customer", nil)},
		), nil
	}
}

func (a *CustomerAgent) createLead(ctx context.Context, mctx models.MiraContext, userMessage string) *models.MiraResponse {
	payload := map[string]any{
		"name":           mctx.PageString("leadName", "New Prospect"),
		"contact_number": mctx.PageString("contactNumber", "00000000"),
		"lead_source":    mctx.PageString("leadSource", "Manual Entry"),
	}

	invokeTool(ctx, a.tools, "customer__leads.create", payload, mctx)

	actions := CRUDFlow(OpCreate, mctx.Module, FlowOptions{
		Page:        "/customer",
		Payload:     payload,
		Description: "Prepare new lead form with captured details",
	})

	reply := fmt.Sprintf(
		"I'll open the lead form on Customer 360 and prefill the name, contact, and source from your message (%q). Once you confirm, I'll submit the record.",
		truncate(userMessage, 80),
	)

	return BuildResponse(a.ID(), IntentCreateLead, mctx, reply, actions, WithSubtopic("lead_management"))
}

func (a *CustomerAgent) listLeads(ctx context.Context, mctx models.MiraContext) *models.MiraResponse {
	filters := map[string]any{}
	if status := mctx.PageString("status", ""); status != "" {
		filters["status"] = status
	}
	if source := mctx.PageString("lead_source", ""); source != "" {
		filters["lead_source"] = source
	}

	invokeTool(ctx, a.tools, "customer__leads.list", filters, mctx)

	actions := CRUDFlow(OpRead, mctx.Module, FlowOptions{
		Page:    "/customer",
		Filters: filters,
	})

	reply := "I'll surface the lead list with the filters you care about. Use the chips on the left to refine by status or source."

	return BuildResponse(a.ID(), IntentListLeads, mctx, reply, actions, WithSubtopic("lead_management"))
}

func (a *CustomerAgent) searchLead(ctx context.Context, mctx models.MiraContext, userMessage string) *models.MiraResponse {
	query := mctx.PageString("searchTerm", "")
	if query == "" {
		if match := searchTermPattern.FindStringSubmatch(userMessage); match != nil {
			query = match[1]
		}
	}

	invokeTool(ctx, a.tools, "customer__leads.search", map[string]any{"query": query}, mctx)

	actions := []models.UIAction{
		NavigateAction(mctx.Module, "/customer", map[string]any{"search": query}),
		PrefillAction(map[string]any{"search": query}, false, ""),
	}

	label := query
	if label == "" {
		label = "your criteria"
	}
	reply := fmt.Sprintf("Searching leads for %q and showing results in Customer 360.", label)

	return BuildResponse(a.ID(), IntentSearchLead, mctx, reply, actions, WithSubtopic("lead_management"))
}

func (a *CustomerAgent) viewLeadDetail(ctx context.Context, mctx models.MiraContext) *models.MiraResponse {
	leadID := mctx.PageString("leadId", "L-1001")

	invokeTool(ctx, a.tools, "customer__customers.get", map[string]any{"id": leadID}, mctx)

	actions := []models.UIAction{NavigateAction(mctx.Module, "/customer/detail/"+leadID, nil)}
	reply := fmt.Sprintf("Opening the lead record %s so you can review notes, tasks, and history.", leadID)

	return BuildResponse(a.ID(), IntentViewLeadDetail, mctx, reply, actions, WithSubtopic("lead_detail"))
}

func (a *CustomerAgent) updateLeadStatus(ctx context.Context, mctx models.MiraContext) *models.MiraResponse {
	leadID := mctx.PageString("leadId", "L-1001")
	status := mctx.PageString("status", "qualified")

	invokeTool(ctx, a.tools, "customer__leads.update", map[string]any{"id": leadID, "status": status}, mctx)

	actions := CRUDFlow(OpUpdate, mctx.Module, FlowOptions{
		Page:        "/customer/detail/" + leadID,
		Payload:     map[string]any{"status": status},
		Endpoint:    "/api/customer/leads/" + leadID,
		Description: "Confirm status change before submitting",
	})

	reply := fmt.Sprintf("Updating lead %s to status %q. I'll show you the summary first before submitting.", leadID, status)

	return BuildResponse(a.ID(), IntentUpdateLeadStatus, mctx, reply, actions, WithSubtopic("lead_management"))
}

func (a *CustomerAgent) Suggestions(ctx context.Context, mctx models.MiraContext) []models.SuggestedIntent {
	leadName := mctx.PageString("leadName", "a new prospect")
	warmFilter := mctx.PageString("status", "warm")
	overdueStatus := mctx.PageString("followUpStatus", "overdue")

	return []models.SuggestedIntent{
		{
			Intent:      IntentCreateLead,
			Title:       "Capture a new lead",
			Description: fmt.Sprintf("Prefill Customer 360 with %s.", leadName),
			PromptText:  fmt.Sprintf("Create a new lead for %s and fill any missing phone or source details you can infer.", leadName),
			Module:      a.Module(),
			Confidence:  0.86,
		},
		{
			Intent:      IntentListLeads,
			Title:       fmt.Sprintf("Review %s leads", warmFilter),
			Description: "Surface the filtered list so I can triage quickly.",
			PromptText:  fmt.Sprintf("Show me my %s leads in Customer 360 and highlight ones without recent activity.", warmFilter),
			Module:      a.Module(),
			Confidence:  0.74,
		},
		{
			Intent:      IntentUpdateLeadStatus,
			Title:       fmt.Sprintf("Nudge %s follow-ups", overdueStatus),
			Description: "Open the detail view so I can update statuses.",
			PromptText:  fmt.Sprintf("Open the lead detail for my %s follow-ups and prepare the status dropdown so I can update them.", overdueStatus),
			Module:      a.Module(),
			Confidence:  0.71,
		},
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
