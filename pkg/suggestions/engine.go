// Package suggestions ranks context-aware action suggestions from three
// sources: detected behavioral patterns, the current page and module, and
// recognizable multi-page workflows.
package suggestions

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/advisorhub/mira/pkg/catalog"
	"github.com/advisorhub/mira/pkg/models"
)

// DefaultLimit caps how many suggestions are surfaced at once.
const DefaultLimit = 3

// PatternSource reports the behavioral patterns currently matching a
// session.
type PatternSource interface {
	MatchPatterns(ctx context.Context, bctx models.BehavioralContext) ([]models.PatternMatch, error)
}

// Engine generates ranked suggestions. Pattern matching is optional;
// with a nil source the engine works from page context alone.
type Engine struct {
	catalog  *catalog.Catalog
	patterns PatternSource
	logger   *slog.Logger
	now      func() time.Time
}

// NewEngine builds a suggestion engine over the action catalog.
func NewEngine(logger *slog.Logger, cat *catalog.Catalog, patterns PatternSource) *Engine {
	return &Engine{
		catalog:  cat,
		patterns: patterns,
		logger:   logger.With("module", "suggestions"),
		now:      time.Now,
	}
}

// Suggest collects suggestions from every source and returns the top
// entries ranked by confidence times relevance, descending. Ties keep
// source order: patterns first, then context, then workflows.
func (e *Engine) Suggest(ctx context.Context, bctx models.BehavioralContext, limit int) []models.Suggestion {
	if limit <= 0 {
		limit = DefaultLimit
	}

	var suggestions []models.Suggestion
	suggestions = append(suggestions, e.patternSuggestions(ctx, bctx)...)
	suggestions = append(suggestions, e.contextSuggestions(bctx)...)
	suggestions = append(suggestions, e.workflowSuggestions(bctx)...)

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Score() > suggestions[j].Score()
	})

	if len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}

	return suggestions
}

func (e *Engine) patternSuggestions(ctx context.Context, bctx models.BehavioralContext) []models.Suggestion {
	if e.patterns == nil {
		return nil
	}

	matches, err := e.patterns.MatchPatterns(ctx, bctx)
	if err != nil {
		e.logger.Error("Pattern matching failed", "error", err)
		return nil
	}

	var suggestions []models.Suggestion

	for _, match := range matches {
		for _, action := range e.actionsForPattern(match.PatternType, bctx) {
			suggestions = append(suggestions, models.Suggestion{
				Action:     action,
				Confidence: match.AdjustedConfidence,
				Reason:     "Detected pattern: " + match.PatternName,
				Trigger:    triggerForPattern(match.PatternType),
				// Pattern-derived suggestions rank slightly below direct
				// context signals of equal confidence.
				RelevanceScore: match.AdjustedConfidence * 0.9,
				TriggerPattern: match.PatternType,
			})
		}
	}

	return suggestions
}

func (e *Engine) actionsForPattern(patternType string, bctx models.BehavioralContext) []*models.Action {
	switch patternType {
	case "proposal_creation":
		return e.instantiate(
			templateRef{id: "navigate_to_proposal_form"},
			templateRef{id: "create_proposal"},
		)
	case "form_struggle", "form_abandonment":
		return e.instantiate(templateRef{
			id:          "create_task",
			name:        "Save Progress",
			description: "Save your current progress and return later",
		})
	case "search_behavior", "search_frustration":
		if bctx.CurrentModule == string(models.ModuleCustomer) {
			return e.instantiate(templateRef{
				id:          "create_lead",
				name:        "Create New Lead",
				description: "Can't find the customer? Create a new lead instead",
			})
		}
		return nil
	case "analytics_exploration", "analytics_insight_discovery":
		return e.instantiate(
			templateRef{id: "export_analytics_report"},
			templateRef{
				id:          "apply_analytics_filter",
				name:        "Apply Common Filter",
				description: "Filter to this month's data",
			},
		)
	case "task_completion":
		return e.instantiate(templateRef{id: "create_task"})
	case "navigation_confusion":
		_, label := navigationTarget(bctx)
		return e.instantiate(templateRef{
			id:          "navigate_to_page",
			name:        "Go to " + label,
			description: "Navigate to a common destination",
		})
	default:
		return nil
	}
}

type templateRef struct {
	id          string
	name        string
	description string
}

func (e *Engine) instantiate(refs ...templateRef) []*models.Action {
	actions := make([]*models.Action, 0, len(refs))

	for _, ref := range refs {
		action, err := e.catalog.Instantiate(ref.id, func(a *models.Action) {
			if ref.name != "" {
				a.Name = ref.name
			}
			if ref.description != "" {
				a.Description = ref.description
			}
		})
		if err != nil {
			e.logger.Warn("Suggestion template missing", "template", ref.id, "error", err)
			continue
		}

		actions = append(actions, action)
	}

	return actions
}

func (e *Engine) contextSuggestions(bctx models.BehavioralContext) []models.Suggestion {
	var suggestions []models.Suggestion

	page := bctx.CurrentPage

	switch bctx.CurrentModule {
	case string(models.ModuleCustomer):
		if strings.Contains(page, "/customer") && !strings.Contains(page, "/detail") {
			suggestions = e.appendSuggestion(suggestions, templateRef{id: "create_lead"}, models.Suggestion{
				Confidence:     0.7,
				Reason:         "Common action on customer list page",
				Trigger:        models.TriggerImmediate,
				RelevanceScore: 0.75,
			})
		} else if strings.Contains(page, "/detail") {
			if customerID, ok := bctx.PageData["customerId"].(string); ok && customerID != "" {
				suggestions = e.appendSuggestion(suggestions,
					templateRef{id: "create_proposal", name: "Create Proposal for this Customer"},
					models.Suggestion{
						Confidence:          0.8,
						Reason:              "Natural next step after viewing customer",
						Trigger:             models.TriggerAfterDelay,
						Delay:               5 * time.Second,
						RelevanceScore:      0.85,
						SuggestedParameters: map[string]any{"customerId": customerID},
					})

				suggestions = e.appendSuggestion(suggestions,
					templateRef{id: "create_task", name: "Create Follow-up Task"},
					models.Suggestion{
						Confidence:          0.7,
						Reason:              "Common action after customer review",
						Trigger:             models.TriggerAfterDelay,
						Delay:               10 * time.Second,
						RelevanceScore:      0.7,
						SuggestedParameters: map[string]any{"relatedCustomerId": customerID},
					})
			}
		}

	case string(models.ModuleAnalytics):
		suggestions = e.appendSuggestion(suggestions, templateRef{id: "export_analytics_report"}, models.Suggestion{
			Confidence:     0.75,
			Reason:         "Users often export analytics data",
			Trigger:        models.TriggerOnIdle,
			RelevanceScore: 0.7,
		})

		if applied, _ := bctx.PageData["filtersApplied"].(bool); !applied {
			suggestions = e.appendSuggestion(suggestions, templateRef{id: "apply_analytics_filter"}, models.Suggestion{
				Confidence:     0.6,
				Reason:         "No filters applied yet",
				Trigger:        models.TriggerImmediate,
				RelevanceScore: 0.65,
			})
		}

	case string(models.ModuleNewBusiness):
		suggestions = e.appendSuggestion(suggestions, templateRef{id: "submit_proposal"}, models.Suggestion{
			Confidence:     0.7,
			Reason:         "Complete the proposal workflow",
			Trigger:        models.TriggerAfterDelay,
			Delay:          30 * time.Second,
			RelevanceScore: 0.75,
		})

	case string(models.ModuleTodo):
		suggestions = e.appendSuggestion(suggestions, templateRef{id: "create_task"}, models.Suggestion{
			Confidence:     0.75,
			Reason:         "Common action on todo page",
			Trigger:        models.TriggerImmediate,
			RelevanceScore: 0.8,
		})

	case string(models.ModuleBroadcast):
		suggestions = e.appendSuggestion(suggestions, templateRef{id: "create_broadcast"}, models.Suggestion{
			Confidence:     0.8,
			Reason:         "Primary action for broadcast page",
			Trigger:        models.TriggerImmediate,
			RelevanceScore: 0.85,
		})
	}

	return suggestions
}

func (e *Engine) workflowSuggestions(bctx models.BehavioralContext) []models.Suggestion {
	var suggestions []models.Suggestion

	visitedCustomers := false
	for _, event := range bctx.NavigationHistory {
		if strings.Contains(event.ToPage, "/customer") {
			visitedCustomers = true
			break
		}
	}

	if visitedCustomers && strings.Contains(bctx.CurrentPage, "/new-business") {
		suggestions = e.appendSuggestion(suggestions, templateRef{id: "create_proposal"}, models.Suggestion{
			Confidence:     0.85,
			Reason:         "Following customer-to-proposal workflow",
			Trigger:        models.TriggerImmediate,
			RelevanceScore: 0.9,
		})
	}

	onAnalytics := bctx.CurrentModule == string(models.ModuleAnalytics)
	if onAnalytics && bctx.TimeOnCurrentPage(e.now()) > time.Minute {
		suggestions = e.appendSuggestion(suggestions, templateRef{id: "export_analytics_report"}, models.Suggestion{
			Confidence:     0.75,
			Reason:         "Spent time analyzing, likely ready to export",
			Trigger:        models.TriggerOnIdle,
			RelevanceScore: 0.8,
		})
	}

	return suggestions
}

// QuickActions returns the always-available suggestions for a module.
func (e *Engine) QuickActions(module models.Module) []models.Suggestion {
	suggestions := e.appendSuggestion(nil, templateRef{id: "create_task"}, models.Suggestion{
		Confidence:     1.0,
		Reason:         "Quick access to task creation",
		Trigger:        models.TriggerImmediate,
		RelevanceScore: 0.6,
	})

	switch module {
	case models.ModuleCustomer:
		suggestions = e.appendSuggestion(suggestions, templateRef{id: "create_lead"}, models.Suggestion{
			Confidence:     1.0,
			Reason:         "Quick customer creation",
			Trigger:        models.TriggerImmediate,
			RelevanceScore: 0.9,
		})
	case models.ModuleAnalytics:
		suggestions = e.appendSuggestion(suggestions, templateRef{id: "export_analytics_report"}, models.Suggestion{
			Confidence:     1.0,
			Reason:         "Quick export",
			Trigger:        models.TriggerImmediate,
			RelevanceScore: 0.8,
		})
	}

	return suggestions
}

func (e *Engine) appendSuggestion(suggestions []models.Suggestion, ref templateRef, base models.Suggestion) []models.Suggestion {
	actions := e.instantiate(ref)
	if len(actions) == 0 {
		return suggestions
	}

	base.Action = actions[0]

	return append(suggestions, base)
}

func triggerForPattern(patternType string) models.SuggestionTrigger {
	switch {
	case strings.Contains(patternType, "struggle"),
		strings.Contains(patternType, "frustration"),
		strings.Contains(patternType, "confusion"),
		strings.Contains(patternType, "abandonment"):
		return models.TriggerImmediate
	case strings.Contains(patternType, "success"),
		strings.Contains(patternType, "completion"):
		return models.TriggerOnIdle
	case strings.Contains(patternType, "exploration"),
		strings.Contains(patternType, "discovery"):
		return models.TriggerAfterDelay
	default:
		return models.TriggerOnPattern
	}
}

func navigationTarget(bctx models.BehavioralContext) (page, label string) {
	if bctx.CurrentPage != "/dashboard" {
		return "/dashboard", "Dashboard"
	}

	return "/customers", "Customers"
}
