package model

import "time"

// Source records where a piece of validation evidence came from.
type Source struct {
	Type   string `json:"type"`
	Source string `json:"source"`
	URL    string `json:"url"`
	AIUsed string `json:"ai_used,omitempty"`
}

// ValidationReport is the analysis produced by the AI collaborator (or one
// of its fallback tiers). All four scores are in [1,100]; OverallScore is
// the rounded mean of the other three.
type ValidationReport struct {
	MarketAnalysis       string   `json:"market_analysis"`
	CompetitorAnalysis   []string `json:"competitor_analysis"`
	TechnicalFeasibility string   `json:"technical_feasibility"`
	Recommendations      []string `json:"recommendations"`
	DesirabilityScore    int      `json:"desirability_score"`
	ValidityScore        int      `json:"validity_score"`
	FeasibilityScore     int      `json:"feasibility_score"`
	OverallScore         int      `json:"overall_score"`
	Sources              []Source `json:"sources"`
}

// AIValidation is a persisted validation report. Append-only per idea; only
// the most recent row is surfaced on the idea detail view.
type AIValidation struct {
	ID        string    `json:"id"`
	IdeaID    string    `json:"idea_id"`
	CreatedAt time.Time `json:"created_at"`
	ValidationReport
}

// ClampScore bounds a score to the report's [1,100] range.
func ClampScore(n int) int {
	if n < 1 {
		return 1
	}
	if n > 100 {
		return 100
	}
	return n
}

// Complete reports whether the narrative fields and score ranges satisfy the
// report contract. Callers that receive an incomplete report from an upstream
// provider must fall back rather than persist it.
func (r ValidationReport) Complete() bool {
	if r.MarketAnalysis == "" || r.TechnicalFeasibility == "" {
		return false
	}
	for _, s := range []int{r.DesirabilityScore, r.ValidityScore, r.FeasibilityScore, r.OverallScore} {
		if s < 1 || s > 100 {
			return false
		}
	}
	return true
}
