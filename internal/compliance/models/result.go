// Package models defines the aggregate compliance verdict.
package models

import analysismodels "vendorgate/internal/analysis/models"

// Thresholds for the pass/fail gate.
const (
	PassingScore = 70.0
	MaxIssues    = 5
)

// Result is the outcome of one compliance scoring run. It is produced once by
// the aggregator and never mutated afterwards.
type Result struct {
	Passed          bool                        `json:"passed"`
	Issues          []string                    `json:"issues"`
	Score           float64                     `json:"score"`
	Recommendations []string                    `json:"recommendations,omitempty"`
	Assessments     []analysismodels.Assessment `json:"assessments,omitempty"`
}

// Findings returns the per-document findings in submission order.
func (r Result) Findings() []analysismodels.Finding {
	findings := make([]analysismodels.Finding, 0, len(r.Assessments))
	for _, a := range r.Assessments {
		findings = append(findings, a.Finding)
	}
	return findings
}
