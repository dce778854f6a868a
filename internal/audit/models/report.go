// Package models defines the audit report produced after each scoring run.
package models

import (
	"time"

	compliancemodels "vendorgate/internal/compliance/models"
)

// Status mirrors the compliance verdict on the stored report.
type Status string

const (
	StatusPassed Status = "passed"
	StatusFailed Status = "failed"
)

// Summary is the narrative portion generated by the model.
type Summary struct {
	ExecutiveSummary string   `json:"executiveSummary"`
	KeyFindings      []string `json:"keyFindings"`
	RiskAssessment   string   `json:"riskAssessment"`
	RequiredActions  []string `json:"requiredActions"`
	Timeline         string   `json:"timeline"`
}

// DegradedSummary is the fixed fallback used when the model's report output
// cannot be obtained or parsed.
func DegradedSummary() Summary {
	return Summary{
		ExecutiveSummary: "Audit completed with manual review recommended.",
		KeyFindings:      []string{"Unable to parse AI response"},
		RiskAssessment:   "Manual review required",
		RequiredActions:  []string{"Contact support for manual audit review"},
		Timeline:         "Immediate",
	}
}

// Report is one completed scoring run's record: the verdict, the narrative
// summary, and the actions a failed applicant must take. Identity is the
// signup session while the run is staged and the durable user ID once the
// account is activated.
type Report struct {
	Identity        string                  `json:"identity"`
	Timestamp       time.Time               `json:"timestamp"`
	Status          Status                  `json:"status"`
	Result          compliancemodels.Result `json:"result"`
	Summary         Summary                 `json:"summary"`
	SummaryDegraded bool                    `json:"summary_degraded,omitempty"`
	Recommendations []string                `json:"recommendations,omitempty"`
	RequiredActions []string                `json:"required_actions,omitempty"`
}
