// Package events defines the event types published on the action
// lifecycle and insight topics.
package events

import (
	"time"

	"github.com/google/uuid"
)

type EventType string

// Kafka topics.
const ActionTopic = "mira.action.events"  // Action lifecycle: executed, undone, tool failures
const InsightTopic = "mira.insight.events" // Proactive insight fan-out
const BehaviorTopic = "mira.behavior.events" // Navigation and session telemetry

const EventMetadataKey = "key"
const EventTypeMetadataKey = "event_type"

const (
	// Action lifecycle events.
	ActionExecutedEvent EventType = "action.executed"
	ActionUndoneEvent   EventType = "action.undone"
	ToolFailedEvent     EventType = "tool.failed"

	// Proactive engine events.
	InsightGeneratedEvent EventType = "insight.generated"

	// Behavioral telemetry events.
	NavigationRecordedEvent EventType = "behavior.navigation"
)

type BaseEvent struct {
	ID        string         `json:"id"`
	Type      EventType      `json:"type"`
	Timestamp time.Time      `json:"timestamp"`
	AdvisorID string         `json:"advisor_id,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// NewBaseEvent stamps a fresh event envelope.
func NewBaseEvent(eventType EventType, advisorID string) BaseEvent {
	return BaseEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		AdvisorID: advisorID,
	}
}

// Event is anything the bus can route by type.
type Event interface {
	GetType() EventType
}

// ActionExecuted is published after an action runs to completion.
type ActionExecuted struct {
	BaseEvent

	EntryID         string         `json:"entry_id"`
	ActionID        string         `json:"action_id"`
	ActionName      string         `json:"action_name"`
	HandlerKey      string         `json:"handler_key"`
	Parameters      map[string]any `json:"parameters,omitempty"`
	Success         bool           `json:"success"`
	Undoable        bool           `json:"undoable"`
	ExecutionTimeMs int64          `json:"execution_time_ms"`
}

func (a ActionExecuted) GetType() EventType {
	return ActionExecutedEvent
}

// ActionUndone is published when a history entry is rolled back.
type ActionUndone struct {
	BaseEvent

	EntryID    string `json:"entry_id"`
	ActionID   string `json:"action_id"`
	ActionName string `json:"action_name"`
}

func (a ActionUndone) GetType() EventType {
	return ActionUndoneEvent
}

// ToolFailed is published when a tool invocation exhausts its retries.
type ToolFailed struct {
	BaseEvent

	ToolName  string         `json:"tool_name"`
	Code      string         `json:"code"`
	Message   string         `json:"message"`
	Retryable bool           `json:"retryable"`
	Args      map[string]any `json:"args,omitempty"`
}

func (t ToolFailed) GetType() EventType {
	return ToolFailedEvent
}

// InsightGenerated carries one proactive suggestion batch for a module.
type InsightGenerated struct {
	BaseEvent

	Module      string           `json:"module"`
	Suggestions []InsightSummary `json:"suggestions"`
}

// InsightSummary is the wire form of one suggested intent.
type InsightSummary struct {
	Intent     string  `json:"intent"`
	Title      string  `json:"title"`
	PromptText string  `json:"prompt_text"`
	Confidence float64 `json:"confidence"`
}

func (i InsightGenerated) GetType() EventType {
	return InsightGeneratedEvent
}

// NavigationRecorded mirrors one page transition into the event stream.
type NavigationRecorded struct {
	BaseEvent

	SessionID string `json:"session_id"`
	FromPage  string `json:"from_page"`
	ToPage    string `json:"to_page"`
	Module    string `json:"module"`
	Trigger   string `json:"trigger,omitempty"`
}

func (n NavigationRecorded) GetType() EventType {
	return NavigationRecordedEvent
}

// TopicFor maps an event type to the topic it is published on.
func TopicFor(eventType EventType) string {
	switch eventType {
	case InsightGeneratedEvent:
		return InsightTopic
	case NavigationRecordedEvent:
		return BehaviorTopic
	default:
		return ActionTopic
	}
}
