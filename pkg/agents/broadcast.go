package agents

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/advisorhub/mira/pkg/models"
	"github.com/advisorhub/mira/pkg/tools"
)

// Intents handled by the broadcast agent.
const (
	IntentListCampaigns     = "list_campaigns"
	IntentCreateBroadcast   = "create_broadcast"
	IntentViewCampaignStats = "view_campaign_stats"
)

// BroadcastAgent assists with campaign review, drafting, and delivery
// stats.
type BroadcastAgent struct {
	tools  *tools.Registry
	logger *slog.Logger
}

func NewBroadcastAgent(logger *slog.Logger, registry *tools.Registry) *BroadcastAgent {
	return &BroadcastAgent{
		tools:  registry,
		logger: logger.With("module", "agents.broadcast"),
	}
}

func (a *BroadcastAgent) ID() string            { return "BroadcastAgent" }
func (a *BroadcastAgent) Module() models.Module { return models.ModuleBroadcast }

func (a *BroadcastAgent) Execute(ctx context.Context, intent string, mctx models.MiraContext, _ string) (*models.MiraResponse, error) {
	switch intent {
	case IntentListCampaigns:
		return a.listCampaigns(ctx, mctx), nil
	case IntentCreateBroadcast:
		return a.createBroadcast(ctx, mctx), nil
	case IntentViewCampaignStats:
		return a.viewStats(ctx, mctx), nil
	default:
		return BuildResponse(a.ID(), intent, mctx,
			"Opening Broadcast workspace.",
			[]models.UIAction{NavigateAction(mctx.Module, "/broadcast", nil)},
		), nil
	}
}

func (a *BroadcastAgent) listCampaigns(ctx context.Context, mctx models.MiraContext) *models.MiraResponse {
	params := map[string]any{}
	if status := mctx.PageString("status", ""); status != "" {
		params["status"] = status
	}

	invokeTool(ctx, a.tools, "broadcast__broadcasts.list", params, mctx)

	actions := []models.UIAction{NavigateAction(mctx.Module, "/broadcast", params)}
	reply := "Showing campaign list with the filters you specified."

	return BuildResponse(a.ID(), IntentListCampaigns, mctx, reply, actions, WithSubtopic("campaigns"))
}

func (a *BroadcastAgent) createBroadcast(ctx context.Context, mctx models.MiraContext) *models.MiraResponse {
	payload := map[string]any{
		"title":    mctx.PageString("title", "Nurture Series"),
		"audience": mctx.PageString("audience", "Warm leads"),
	}

	invokeTool(ctx, a.tools, "broadcast__broadcasts.create", payload, mctx)

	actions := CRUDFlow(OpCreate, mctx.Module, FlowOptions{
		Page:        "/broadcast/new",
		Payload:     payload,
		Description: "Prefill the broadcast composer",
	})

	reply := "Drafting a new broadcast and prefilling the title + audience you mentioned."

	return BuildResponse(a.ID(), IntentCreateBroadcast, mctx, reply, actions, WithSubtopic("campaigns"))
}

func (a *BroadcastAgent) viewStats(ctx context.Context, mctx models.MiraContext) *models.MiraResponse {
	campaignID := mctx.PageString("campaignId", "B-1")

	invokeTool(ctx, a.tools, "broadcast__broadcasts.getStats", map[string]any{"id": campaignID}, mctx)

	actions := []models.UIAction{
		NavigateAction(mctx.Module, fmt.Sprintf("/broadcast/detail/%s/stats", campaignID), nil),
		PrefillAction(map[string]any{"campaignId": campaignID}, false, ""),
	}

	reply := fmt.Sprintf("Opening stats for campaign %s with delivery, open, and click metrics.", campaignID)

	return BuildResponse(a.ID(), IntentViewCampaignStats, mctx, reply, actions, WithSubtopic("analytics"))
}

func (a *BroadcastAgent) Suggestions(ctx context.Context, mctx models.MiraContext) []models.SuggestedIntent {
	audience := mctx.PageString("audience", "warm leads")
	draftName := mctx.PageString("title", "Nurture touch")
	campaignID := mctx.PageString("campaignId", "B-1")

	return []models.SuggestedIntent{
		{
			Intent:      IntentCreateBroadcast,
			Title:       fmt.Sprintf("Draft %s", draftName),
			Description: "Spin up a new campaign with the current filters.",
			PromptText:  fmt.Sprintf("Create a broadcast titled %q targeting %s.", draftName, audience),
			Module:      a.Module(),
			Confidence:  0.8,
		},
		{
			Intent:      IntentListCampaigns,
			Title:       fmt.Sprintf("Review %s campaigns", audience),
			Description: "Pull up the latest sends for this audience.",
			PromptText:  fmt.Sprintf("Show my recent broadcasts targeting %s.", audience),
			Module:      a.Module(),
			Confidence:  0.72,
		},
		{
			Intent:      IntentViewCampaignStats,
			Title:       fmt.Sprintf("Check stats for %s", campaignID),
			Description: "See opens, clicks, and bounce notes.",
			PromptText:  fmt.Sprintf("Open the analytics for campaign %s and summarize open/click rate.", campaignID),
			Module:      a.Module(),
			Confidence:  0.69,
		},
	}
}
