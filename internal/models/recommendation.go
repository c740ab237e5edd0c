package models

// Recommendation is the structured advisory payload produced for one
// event's analytics snapshot. The shape is guaranteed regardless of
// whether the AI path or the rule-based fallback produced it: no field
// is ever nil and confidence stays within [0, 100].
type Recommendation struct {
	ShouldCreateEvent bool     `json:"shouldCreateEvent"`
	Confidence        int      `json:"confidence"`
	Recommendations   []string `json:"recommendations"`
	Insights          []string `json:"insights"`
	NextSteps         []string `json:"nextSteps"`
}
