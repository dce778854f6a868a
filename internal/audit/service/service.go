// Package service generates the narrative audit report for a completed
// scoring run and persists it.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"vendorgate/internal/analysis/jsonblock"
	analysismodels "vendorgate/internal/analysis/models"
	"vendorgate/internal/analysis/prompt"
	"vendorgate/internal/audit/models"
	compliancemodels "vendorgate/internal/compliance/models"
	id "vendorgate/pkg/domain"
	pstrings "vendorgate/pkg/platform/strings"
	"vendorgate/pkg/requestcontext"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks

// ModelClient is the external generative model collaborator.
type ModelClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ReportStore is the durable audit report keyspace.
type ReportStore interface {
	Save(ctx context.Context, report models.Report) error
	Latest(ctx context.Context, identity string) (models.Report, error)
}

// StagedStore holds reports for not-yet-activated signup sessions.
type StagedStore interface {
	Save(ctx context.Context, sessionID id.SessionID, report models.Report, ttl time.Duration) error
	Get(ctx context.Context, sessionID id.SessionID) (models.Report, error)
	Delete(ctx context.Context, sessionID id.SessionID) error
}

// Service builds and persists audit reports.
type Service struct {
	model      ModelClient
	reports    ReportStore
	staged     StagedStore
	logger     *slog.Logger
	stagingTTL time.Duration
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// New constructs an audit Service.
func New(model ModelClient, reports ReportStore, staged StagedStore, stagingTTL time.Duration, opts ...Option) (*Service, error) {
	if model == nil {
		return nil, fmt.Errorf("model client is required")
	}
	if reports == nil {
		return nil, fmt.Errorf("report store is required")
	}
	if staged == nil {
		return nil, fmt.Errorf("staged report store is required")
	}
	s := &Service{
		model:      model,
		reports:    reports,
		staged:     staged,
		logger:     slog.Default(),
		stagingTTL: stagingTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Generate builds the report for one scoring run and stages it under the
// signup session. The narrative summary comes from one further model call;
// when that call fails or returns unparseable output the fixed degraded
// summary stands in, mirroring the analyzer's failure policy.
func (s *Service) Generate(ctx context.Context, sessionID id.SessionID, companyName string, result compliancemodels.Result) (models.Report, error) {
	report := models.Report{
		Identity:        sessionID.String(),
		Timestamp:       requestcontext.Now(ctx),
		Status:          models.StatusFailed,
		Result:          result,
		Recommendations: result.Recommendations,
	}
	if result.Passed {
		report.Status = models.StatusPassed
	} else {
		report.RequiredActions = RequiredActions(result)
	}

	report.Summary, report.SummaryDegraded = s.summarize(ctx, companyName, result.Findings())
	if !result.Passed && !report.SummaryDegraded && len(report.Summary.RequiredActions) > 0 {
		report.RequiredActions = report.Summary.RequiredActions
	}

	if err := s.staged.Save(ctx, sessionID, report, s.stagingTTL); err != nil {
		return models.Report{}, fmt.Errorf("stage audit report: %w", err)
	}
	return report, nil
}

// Promote re-keys the session's staged report to the durable user identity
// and persists it permanently.
func (s *Service) Promote(ctx context.Context, sessionID id.SessionID, userID id.UserID) error {
	report, err := s.staged.Get(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("load staged report: %w", err)
	}

	report.Identity = userID.String()
	if err := s.reports.Save(ctx, report); err != nil {
		return fmt.Errorf("persist audit report: %w", err)
	}
	return s.staged.Delete(ctx, sessionID)
}

// Staged returns the current staged report for a signup session.
func (s *Service) Staged(ctx context.Context, sessionID id.SessionID) (models.Report, error) {
	return s.staged.Get(ctx, sessionID)
}

// Latest returns the newest durable report for a user.
func (s *Service) Latest(ctx context.Context, userID id.UserID) (models.Report, error) {
	return s.reports.Latest(ctx, userID.String())
}

func (s *Service) summarize(ctx context.Context, companyName string, findings []analysismodels.Finding) (models.Summary, bool) {
	if companyName == "" {
		companyName = "Organization"
	}
	if len(findings) == 0 {
		return models.DegradedSummary(), true
	}

	raw, err := s.model.Generate(ctx, prompt.AuditSummary(companyName, findings))
	if err != nil {
		s.logger.WarnContext(ctx, "report summary model call failed, substituting degraded summary",
			"error", err,
		)
		return models.DegradedSummary(), true
	}

	summary, err := ParseSummary(raw)
	if err != nil {
		s.logger.WarnContext(ctx, "unparseable report summary, substituting degraded summary",
			"error", err,
		)
		return models.DegradedSummary(), true
	}
	return summary, false
}

// RequiredActions derives remediation actions from the aggregate issues of a
// failed run. Several stale documents map to the same action, so the list is
// deduplicated.
func RequiredActions(result compliancemodels.Result) []string {
	actions := make([]string, 0, len(result.Issues))
	for _, issue := range result.Issues {
		switch {
		case strings.Contains(issue, "Missing required documents"):
			actions = append(actions, "Submit all required compliance documents")
		case strings.Contains(issue, "over 1 year old"):
			actions = append(actions, "Update outdated compliance documents")
		default:
			actions = append(actions, "Address compliance issues identified in the report")
		}
	}
	return pstrings.DedupeAndTrim(actions)
}

// rawSummary tolerates partial model output; fields are defaulted below.
type rawSummary struct {
	ExecutiveSummary string   `json:"executiveSummary"`
	KeyFindings      []string `json:"keyFindings"`
	RiskAssessment   string   `json:"riskAssessment"`
	RequiredActions  []string `json:"requiredActions"`
	Timeline         string   `json:"timeline"`
}

// ParseSummary parses the model's narrative JSON, stripping an optional code
// fence. Missing fields get fixed defaults; only malformed JSON is an error.
func ParseSummary(responseText string) (models.Summary, error) {
	payload := jsonblock.Extract(responseText)

	var raw rawSummary
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		return models.Summary{}, fmt.Errorf("parse summary: %w", err)
	}

	summary := models.Summary{
		ExecutiveSummary: raw.ExecutiveSummary,
		KeyFindings:      raw.KeyFindings,
		RiskAssessment:   raw.RiskAssessment,
		RequiredActions:  raw.RequiredActions,
		Timeline:         raw.Timeline,
	}
	if summary.ExecutiveSummary == "" {
		summary.ExecutiveSummary = "Audit completed."
	}
	if summary.KeyFindings == nil {
		summary.KeyFindings = []string{}
	}
	if summary.RiskAssessment == "" {
		summary.RiskAssessment = "Risk assessment pending."
	}
	if summary.RequiredActions == nil {
		summary.RequiredActions = []string{}
	}
	if summary.Timeline == "" {
		summary.Timeline = "Timeline to be determined."
	}
	return summary, nil
}
