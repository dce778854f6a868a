// Package models defines the per-document compliance assessment produced by
// the external model.
package models

import "vendorgate/internal/document/models"

// RiskLevel is the ordinal risk classification the model assigns a document.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// Elevated reports whether the risk level feeds its findings into the
// aggregate issue list.
func (r RiskLevel) Elevated() bool {
	return r == RiskHigh || r == RiskCritical
}

// Valid reports whether the value is one of the four known levels.
func (r RiskLevel) Valid() bool {
	switch r {
	case RiskLow, RiskMedium, RiskHigh, RiskCritical:
		return true
	}
	return false
}

// Finding is the structured result of analyzing one document.
type Finding struct {
	RiskLevel       RiskLevel `json:"riskLevel"`
	Score           float64   `json:"score"`
	Findings        []string  `json:"findings"`
	Strengths       []string  `json:"strengths"`
	Weaknesses      []string  `json:"weaknesses"`
	Recommendations []string  `json:"recommendations"`
}

// Confidence distinguishes a genuine model assessment from the stand-in
// default substituted after a model or parse failure.
type Confidence string

const (
	Confident Confidence = "confident"
	Degraded  Confidence = "degraded"
)

// Assessment pairs a document with its finding and the confidence tag.
// DegradedReason is set only when Confidence is Degraded.
type Assessment struct {
	Document       models.Document `json:"document"`
	Finding        Finding         `json:"finding"`
	Confidence     Confidence      `json:"confidence"`
	DegradedReason string          `json:"degraded_reason,omitempty"`
}

// DegradedFinding is the fixed fallback used whenever the model call fails or
// its output cannot be parsed. The pipeline continues with this in place of a
// real assessment rather than aborting.
func DegradedFinding() Finding {
	return Finding{
		RiskLevel:       RiskMedium,
		Score:           50,
		Findings:        []string{"Unable to parse AI response - manual review recommended"},
		Strengths:       []string{},
		Weaknesses:      []string{},
		Recommendations: []string{"Please contact support for manual review"},
	}
}
