// Package prompt builds the instruction text sent to the generative model.
// Both prompts demand a bare JSON object; the parsers still tolerate fenced
// output because the model does not reliably comply.
package prompt

import (
	"fmt"
	"strings"

	"vendorgate/internal/analysis/models"
	docmodels "vendorgate/internal/document/models"
)

// Compliance builds the per-document analysis prompt.
func Compliance(documentContent string, category docmodels.Category) string {
	return fmt.Sprintf(`You are a compliance and risk assessment expert. Analyze the following %s document and provide a detailed compliance assessment.

Document Content:
%s

Please analyze this document and return a JSON response with the following structure (and ONLY JSON, no other text):
{
  "riskLevel": "low" | "medium" | "high" | "critical",
  "score": number between 0-100,
  "findings": ["finding1", "finding2", ...],
  "strengths": ["strength1", "strength2", ...],
  "weaknesses": ["weakness1", "weakness2", ...],
  "recommendations": ["recommendation1", "recommendation2", ...]
}

Focus on:
- Regulatory compliance
- Security practices
- Risk management
- Industry standards
- Best practices adherence

Respond ONLY with the JSON object, no markdown formatting or code blocks.`, category, documentContent)
}

// AuditSummary builds the narrative report prompt from all per-document
// findings.
func AuditSummary(companyName string, findings []models.Finding) string {
	var sections strings.Builder
	for i, f := range findings {
		fmt.Fprintf(&sections, `
Section %d:
- Risk Level: %s
- Score: %.0f/100
- Key Findings: %s
- Strengths: %s
- Weaknesses: %s
`, i+1, f.RiskLevel, f.Score,
			strings.Join(f.Findings, ", "),
			strings.Join(f.Strengths, ", "),
			strings.Join(f.Weaknesses, ", "))
	}

	return fmt.Sprintf(`You are a senior compliance auditor. Generate a comprehensive audit report summary for %q based on the following findings:

%s

Please generate a JSON response with the following structure (and ONLY JSON, no other text):
{
  "executiveSummary": "A 2-3 sentence summary of the overall compliance status",
  "keyFindings": ["finding1", "finding2", "finding3", ...],
  "riskAssessment": "A paragraph describing the overall risk assessment",
  "requiredActions": ["action1", "action2", "action3", ...],
  "timeline": "A suggested timeline for addressing issues"
}

Respond ONLY with the JSON object, no markdown formatting or code blocks.`, companyName, sections.String())
}
