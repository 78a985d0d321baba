package models

// Priority ranks a recommendation's urgency.
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// Recommendation is one improvement suggestion. The shape is identical
// whether it came from the LLM or from the static fallback table.
type Recommendation struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Priority    Priority `json:"priority"`
	Impact      string   `json:"impact"`
}

// Insights is the ordered set of recommendations attached to a result.
type Insights struct {
	Recommendations []Recommendation `json:"recommendations"`
}
