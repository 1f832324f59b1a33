// Package insights periodically sweeps the skill agents for proactive
// suggestions and fans them out on the insight topic.
package insights

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"

	"github.com/advisorhub/mira/pkg/agents"
	"github.com/advisorhub/mira/pkg/eventbus"
	"github.com/advisorhub/mira/pkg/events"
	"github.com/advisorhub/mira/pkg/models"
)

// DefaultSchedule runs the sweep every fifteen minutes.
const DefaultSchedule = "*/15 * * * *"

// ContextSource supplies the per-advisor context a sweep evaluates
// suggestions against.
type ContextSource interface {
	ActiveContexts(ctx context.Context) ([]models.MiraContext, error)
}

// Scheduler owns the cron loop. Each tick asks every agent for
// suggestions against every active advisor context and publishes
// non-empty batches as insight events.
type Scheduler struct {
	router    *agents.Router
	publisher eventbus.EventPublisher
	contexts  ContextSource
	cron      *cron.Cron
	schedule  string
	logger    *slog.Logger
}

// NewScheduler wires a sweep scheduler. schedule may be empty to use the
// default.
func NewScheduler(logger *slog.Logger, router *agents.Router, publisher eventbus.EventPublisher, contexts ContextSource, schedule string) *Scheduler {
	if schedule == "" {
		schedule = DefaultSchedule
	}

	return &Scheduler{
		router:    router,
		publisher: publisher,
		contexts:  contexts,
		cron:      cron.New(),
		schedule:  schedule,
		logger:    logger.With("module", "insights"),
	}
}

// Start registers the cron entry and begins ticking.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.schedule, func() {
		if err := s.Sweep(ctx); err != nil {
			s.logger.Error("Insight sweep failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("schedule insight sweep: %w", err)
	}

	s.cron.Start()
	s.logger.Info("Insight scheduler started", "schedule", s.schedule)

	return nil
}

// Stop halts the cron loop and waits for a running sweep to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info("Insight scheduler stopped")
}

// Sweep runs one pass over all active contexts. Failures on individual
// contexts are logged and skipped so one advisor cannot starve the rest.
func (s *Scheduler) Sweep(ctx context.Context) error {
	contexts, err := s.contexts.ActiveContexts(ctx)
	if err != nil {
		return fmt.Errorf("load active contexts: %w", err)
	}

	for _, mctx := range contexts {
		agent, ok := s.router.ByModule(mctx.Module)
		if !ok {
			s.logger.Warn("No agent for module, skipping", "skill", mctx.Module)
			continue
		}

		suggestions := agent.Suggestions(ctx, mctx)
		if len(suggestions) == 0 {
			continue
		}

		event := events.InsightGenerated{
			BaseEvent:   events.NewBaseEvent(events.InsightGeneratedEvent, mctx.AdvisorID),
			Module:      string(mctx.Module),
			Suggestions: summarize(suggestions),
		}

		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.Error("Failed to publish insight",
				"skill", mctx.Module, "advisor_id", mctx.AdvisorID, "error", err)
			continue
		}

		s.logger.Debug("Published insight batch",
			"skill", mctx.Module, "advisor_id", mctx.AdvisorID, "suggestions", len(suggestions))
	}

	return nil
}

func summarize(suggestions []models.SuggestedIntent) []events.InsightSummary {
	out := make([]events.InsightSummary, 0, len(suggestions))

	for _, s := range suggestions {
		out = append(out, events.InsightSummary{
			Intent:     s.Intent,
			Title:      s.Title,
			PromptText: s.PromptText,
			Confidence: s.Confidence,
		})
	}

	return out
}
