package models

import "time"

// SuggestionTrigger says when a suggestion should surface in the UI.
type SuggestionTrigger string

const (
	TriggerImmediate  SuggestionTrigger = "immediate"
	TriggerAfterDelay SuggestionTrigger = "after_delay"
	TriggerOnIdle     SuggestionTrigger = "on_idle"
	TriggerOnPattern  SuggestionTrigger = "on_pattern"
)

// Suggestion is a proposed action with scoring metadata. Final ranking is
// Confidence multiplied by RelevanceScore, descending.
type Suggestion struct {
	Action              *Action           `json:"action"`
	Confidence          float64           `json:"confidence"`
	Reason              string            `json:"reason"`
	SuggestedParameters map[string]any    `json:"suggestedParameters,omitempty"`
	Trigger             SuggestionTrigger `json:"trigger"`
	Delay               time.Duration     `json:"delay,omitempty"`
	RelevanceScore      float64           `json:"relevanceScore"`
	TriggerPattern      string            `json:"triggerPattern,omitempty"`
}

// Score is the sort key for suggestion ranking.
func (s Suggestion) Score() float64 {
	return s.Confidence * s.RelevanceScore
}

// SuggestedIntent is an agent-proposed next step, phrased as a prompt the
// user can send back to the assistant.
type SuggestedIntent struct {
	Intent      string  `json:"intent"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	PromptText  string  `json:"promptText"`
	Module      Module  `json:"module"`
	Confidence  float64 `json:"confidence"`
}
