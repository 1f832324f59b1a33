package agents

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/advisorhub/mira/pkg/models"
	"github.com/advisorhub/mira/pkg/tools"
)

// Intents handled by the new business agent.
const (
	IntentStartNewProposal = "start_new_proposal"
	IntentCreateProposal   = "create_proposal"
	IntentViewProposals    = "view_proposals"
	IntentNavigateToStage  = "navigate_to_stage"
	IntentGenerateQuote    = "generate_quote"
	IntentCompareProducts  = "compare_products"
	IntentSubmitForUW      = "submit_for_uw"
	IntentSubmitForUWLong  = "submit_for_underwriting"
)

var proposalSearchPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)search\s+([^']+)`),
	regexp.MustCompile(`(?i)find\s+([^']+)`),
	regexp.MustCompile(`(?i)show\s+([^']+)`),
}

// NewBusinessAgent guides advisors through proposal creation, quoting,
// and underwriting submission.
type NewBusinessAgent struct {
	tools  *tools.Registry
	logger *slog.Logger
}

func NewNewBusinessAgent(logger *slog.Logger, registry *tools.Registry) *NewBusinessAgent {
	return &NewBusinessAgent{
		tools:  registry,
		logger: logger.With("module", "agents.new_business"),
	}
}

func (a *NewBusinessAgent) ID() string            { return "NewBusinessAgent" }
func (a *NewBusinessAgent) Module() models.Module { return models.ModuleNewBusiness }

func (a *NewBusinessAgent) Execute(ctx context.Context, intent string, mctx models.MiraContext, userMessage string) (*models.MiraResponse, error) {
	switch intent {
	case IntentStartNewProposal, IntentCreateProposal:
		return a.startProposal(ctx, mctx, userMessage), nil
	case IntentViewProposals, IntentNavigateToStage:
		return a.viewProposals(mctx, userMessage), nil
	case IntentGenerateQuote:
		return a.generateQuote(ctx, mctx), nil
	case IntentCompareProducts:
		return a.compareProducts(mctx), nil
	case IntentSubmitForUW, IntentSubmitForUWLong:
		return a.submitForUnderwriting(ctx, mctx), nil
	default:
		return BuildResponse(a.ID(), intent, mctx,
			"I'll open the New Business workspace so you can continue.",
			[]models.UIAction{NavigateAction(mctx.Module, "/new-business", nil)},
		), nil
	}
}

func (a *NewBusinessAgent) viewProposals(mctx models.MiraContext, userMessage string) *models.MiraResponse {
	var searchTerm string
	for _, pattern := range proposalSearchPatterns {
		if match := pattern.FindStringSubmatch(userMessage); match != nil {
			searchTerm = strings.TrimSpace(match[1])
			break
		}
	}

	params := map[string]any{}
	if searchTerm != "" {
		params["search"] = searchTerm
	}
	actions := []models.UIAction{NavigateAction(mctx.Module, "/new-business", params)}

	reply := "I'll show you the New Business page with all your proposals."
	if searchTerm != "" {
		reply = fmt.Sprintf("Opening New Business page and searching for proposals related to %q.", searchTerm)
	}

	return BuildResponse(a.ID(), IntentViewProposals, mctx, reply, actions, WithSubtopic("proposal_creation"))
}

func (a *NewBusinessAgent) startProposal(ctx context.Context, mctx models.MiraContext, userMessage string) *models.MiraResponse {
	payload := map[string]any{
		"customerId": mctx.PageString("customerId", "C-2001"),
		"productId":  mctx.PageString("productId", "PR-1001"),
		"premium":    mctx.PageFloat("premium", 1800),
	}

	invokeTool(ctx, a.tools, "new_business__proposals.create", payload, mctx)

	actions := CRUDFlow(OpCreate, mctx.Module, FlowOptions{
		Page:        "/new-business",
		Payload:     payload,
		Description: "Open proposal builder with customer + product prefilled",
	})

	reply := fmt.Sprintf(
		"Starting a new proposal for %s. I'll prefill the selected product and premium from your last message %q.",
		payload["customerId"], truncate(userMessage, 60),
	)

	return BuildResponse(a.ID(), IntentStartNewProposal, mctx, reply, actions, WithSubtopic("proposal"))
}

func (a *NewBusinessAgent) generateQuote(ctx context.Context, mctx models.MiraContext) *models.MiraResponse {
	productID := mctx.PageString("productId", "PR-1001")
	customerID := mctx.PageString("customerId", "C-2001")

	quote := invokeTool(ctx, a.tools, "new_business__quotes.generate", map[string]any{
		"productId":  productID,
		"customerId": customerID,
	}, mctx)

	actions := []models.UIAction{
		ExecuteAction("POST", "/api/new-business/quotes", map[string]any{"productId": productID, "customerId": customerID}, true, ""),
		PrefillAction(map[string]any{"quote": quote.Data}, false, ""),
	}

	reply := fmt.Sprintf("Generated a quick quote for product %s. I'll show the premium and coverage breakdown now.", productID)

	return BuildResponse(a.ID(), IntentGenerateQuote, mctx, reply, actions, WithSubtopic("proposal"))
}

func (a *NewBusinessAgent) compareProducts(mctx models.MiraContext) *models.MiraResponse {
	productIDs := mctx.PageStringSlice("productIds", []string{"PR-1001", "PR-1002"})

	actions := []models.UIAction{
		NavigateAction(mctx.Module, "/new-business/compare", map[string]any{"ids": strings.Join(productIDs, ",")}),
	}

	reply := fmt.Sprintf("Opening comparison view for %d product options so you can contrast premiums and coverage.", len(productIDs))

	return BuildResponse(a.ID(), IntentCompareProducts, mctx, reply, actions, WithSubtopic("product_selection"))
}

func (a *NewBusinessAgent) submitForUnderwriting(ctx context.Context, mctx models.MiraContext) *models.MiraResponse {
	proposalID := mctx.PageString("proposalId", "P-3001")

	invokeTool(ctx, a.tools, "new_business__underwriting.submit", map[string]any{"proposalId": proposalID}, mctx)

	confirm := true
	actions := CRUDFlow(OpUpdate, mctx.Module, FlowOptions{
		Page:            "/new-business/status/" + proposalID,
		Endpoint:        fmt.Sprintf("/api/new-business/proposals/%s/submit", proposalID),
		Payload:         map[string]any{"proposalId": proposalID},
		Description:     "Confirm underwriting submission",
		ConfirmRequired: &confirm,
	})

	reply := fmt.Sprintf("Submitting proposal %s to underwriting. I'll show you the confirmation modal before sending.", proposalID)

	return BuildResponse(a.ID(), IntentSubmitForUW, mctx, reply, actions, WithSubtopic("underwriting"))
}

func (a *NewBusinessAgent) Suggestions(ctx context.Context, mctx models.MiraContext) []models.SuggestedIntent {
	customerName := mctx.PageString("customerName", "my latest lead")
	productChoice := mctx.PageString("productName", "the recommended plan")

	return []models.SuggestedIntent{
		{
			Intent:      IntentStartNewProposal,
			Title:       "Start proposal draft",
			Description: fmt.Sprintf("Use %s's info to prefill the form.", customerName),
			PromptText:  fmt.Sprintf("Start a new proposal for %s and reuse any product selection already on this page.", customerName),
			Module:      a.Module(),
			Confidence:  0.84,
		},
		{
			Intent:      IntentGenerateQuote,
			Title:       fmt.Sprintf("Quote %s", productChoice),
			Description: "Get quick premium guidance before presenting.",
			PromptText:  fmt.Sprintf("Generate a quote for %s using the customer I'm viewing.", productChoice),
			Module:      a.Module(),
			Confidence:  0.76,
		},
		{
			Intent:      IntentSubmitForUW,
			Title:       "Check underwriting queue",
			Description: "See which proposals are ready to submit.",
			PromptText:  "Show me proposals that are ready for underwriting submission and prepare the submit flow.",
			Module:      a.Module(),
			Confidence:  0.71,
		},
	}
}
