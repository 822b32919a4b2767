package models

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

type Insight struct {
	Summary       string   `json:"summary"`
	ActionItems   []string `json:"action_items"`
	PriorityLevel Priority `json:"priority_level"`
	KeyFindings   []string `json:"key_findings"`
	Error         string   `json:"error,omitempty"`
}
