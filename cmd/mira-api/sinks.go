package main

import (
	"context"
	"log/slog"

	"github.com/advisorhub/mira/pkg/eventbus"
	"github.com/advisorhub/mira/pkg/events"
	"github.com/advisorhub/mira/pkg/models"
)

// eventAuditSink publishes executor lifecycle entries onto the action topic.
// Publish failures are logged, never propagated: audit must not fail an
// execution that already happened.
type eventAuditSink struct {
	publisher eventbus.EventPublisher
	logger    *slog.Logger
}

func newEventAuditSink(logger *slog.Logger, publisher eventbus.EventPublisher) *eventAuditSink {
	return &eventAuditSink{publisher: publisher, logger: logger.With("module", "audit")}
}

func (s *eventAuditSink) ActionExecuted(ctx context.Context, entry *models.HistoryEntry) {
	event := events.ActionExecuted{
		BaseEvent:       events.NewBaseEvent(events.ActionExecutedEvent, entry.Context.UserID),
		EntryID:         entry.ID,
		ActionID:        entry.Action.ID,
		ActionName:      entry.Action.Name,
		HandlerKey:      entry.Action.HandlerKey,
		Parameters:      entry.Parameters,
		Success:         entry.Result.Success,
		Undoable:        entry.Result.Undoable,
		ExecutionTimeMs: entry.Result.ExecutionTime.Milliseconds(),
	}

	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("Failed to publish execution audit event",
			"action_id", entry.Action.ID, "error", err)
	}
}

func (s *eventAuditSink) ActionUndone(ctx context.Context, entry *models.HistoryEntry) {
	event := events.ActionUndone{
		BaseEvent:  events.NewBaseEvent(events.ActionUndoneEvent, entry.Context.UserID),
		EntryID:    entry.ID,
		ActionID:   entry.Action.ID,
		ActionName: entry.Action.Name,
	}

	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("Failed to publish undo audit event",
			"action_id", entry.Action.ID, "error", err)
	}
}

// toolFailureSink publishes exhausted tool invocations onto the action topic.
type toolFailureSink struct {
	publisher eventbus.EventPublisher
	logger    *slog.Logger
}

func newToolFailureSink(logger *slog.Logger, publisher eventbus.EventPublisher) *toolFailureSink {
	return &toolFailureSink{publisher: publisher, logger: logger.With("module", "audit")}
}

func (s *toolFailureSink) ToolFailed(ctx context.Context, toolName string, args map[string]any, terr models.ToolError, advisorID string) {
	event := events.ToolFailed{
		BaseEvent: events.NewBaseEvent(events.ToolFailedEvent, advisorID),
		ToolName:  toolName,
		Code:      terr.Code,
		Message:   terr.Message,
		Retryable: terr.Retryable,
		Args:      args,
	}

	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("Failed to publish tool failure event",
			"tool", toolName, "error", err)
	}
}
