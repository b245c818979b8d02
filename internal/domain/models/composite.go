package models

import "time"

// Action is the recommendation derived from valuation and trend scores.
type Action string

const (
	ActionAccumulate Action = "Accumulate"
	ActionTrim       Action = "Trim"
	ActionNeutral    Action = "Neutral"
	ActionWait       Action = "Wait"
)

// CompositeScore is the aggregate two-lens signal. ValuationScore is
// derived from indicator classifications; TrendScore is an external
// input. Action is a pure function of the two.
type CompositeScore struct {
	ValuationScore float64   `json:"valuation_score"`
	TrendScore     float64   `json:"trend_score"`
	Action         Action    `json:"action"`
	CalculatedAt   time.Time `json:"calculated_at"`
}

// Overview is a consolidated dashboard snapshot: every indicator that
// produced a reading, the composite built from them, and per-indicator
// errors for the ones that did not. Partial results are expected, not
// an error mode.
type Overview struct {
	Timestamp  time.Time             `json:"timestamp"`
	Indicators []ClassifiedIndicator `json:"indicators"`
	Composite  CompositeScore        `json:"composite"`
	Errors     map[string]string     `json:"errors,omitempty"`
}
