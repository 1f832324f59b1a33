package models

import "time"

// NavigationEvent is one page transition in a session.
type NavigationEvent struct {
	Timestamp time.Time     `json:"timestamp"`
	FromPage  string        `json:"fromPage,omitempty"`
	ToPage    string        `json:"toPage"`
	Module    string        `json:"module,omitempty"`
	Trigger   string        `json:"trigger,omitempty"`
	TimeSpent time.Duration `json:"timeSpent,omitempty"`
}

// BehavioralContext is the reconstructed picture of what the user has been
// doing this session. Suggestion generators read it, never mutate it.
type BehavioralContext struct {
	CurrentPage          string            `json:"currentPage"`
	CurrentModule        string            `json:"currentModule,omitempty"`
	PageData             map[string]any    `json:"pageData,omitempty"`
	NavigationHistory    []NavigationEvent `json:"navigationHistory,omitempty"`
	SessionID            string            `json:"sessionId"`
	SessionStartTime     time.Time         `json:"sessionStartTime"`
	CurrentPageStartTime time.Time         `json:"currentPageStartTime"`
}

// TimeOnCurrentPage returns how long the user has been on the current page.
func (b BehavioralContext) TimeOnCurrentPage(now time.Time) time.Duration {
	if b.CurrentPageStartTime.IsZero() {
		return 0
	}

	return now.Sub(b.CurrentPageStartTime)
}

// PatternMatch is a detected behavioral pattern with its adjusted confidence
// (pattern sources discount raw confidence before reporting).
type PatternMatch struct {
	PatternType        string  `json:"patternType"`
	PatternName        string  `json:"patternName"`
	AdjustedConfidence float64 `json:"adjustedConfidence"`
}
