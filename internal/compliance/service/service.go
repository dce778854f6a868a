// Package service implements the compliance scoring run: load the staged
// document set, analyze each document sequentially, and fold the rule-based
// and model scores into a single pass/fail verdict.
package service

import (
	"context"
	"fmt"
	"log/slog"

	analysismodels "vendorgate/internal/analysis/models"
	"vendorgate/internal/compliance/models"
	docmodels "vendorgate/internal/document/models"
	"vendorgate/internal/platform/metrics"
	id "vendorgate/pkg/domain"
	"vendorgate/pkg/requestcontext"
)

// Documents supplies the staged document set and its contents.
type Documents interface {
	ListTemporary(ctx context.Context, sessionID id.SessionID) ([]docmodels.Document, error)
	ReadContent(ctx context.Context, doc docmodels.Document) ([]byte, error)
}

// Analyzer produces one assessment per document.
type Analyzer interface {
	Analyze(ctx context.Context, doc docmodels.Document, content []byte) analysismodels.Assessment
}

// fallbackRecommendations is returned on a fail when no model recommendations
// exist at all.
var fallbackRecommendations = []string{
	"Ensure all required documents are provided",
	"Update any outdated documents",
	"Provide more recent compliance certificates",
}

// Service runs compliance checks over a session's staged documents.
type Service struct {
	documents Documents
	analyzer  Analyzer
	logger    *slog.Logger
	metrics   *metrics.Metrics
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithMetrics sets the metrics sink.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// New constructs a compliance Service.
func New(documents Documents, analyzer Analyzer, opts ...Option) (*Service, error) {
	if documents == nil {
		return nil, fmt.Errorf("document source is required")
	}
	if analyzer == nil {
		return nil, fmt.Errorf("analyzer is required")
	}
	s := &Service{
		documents: documents,
		analyzer:  analyzer,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Run loads the session's staged documents, analyzes each one in submission
// order, and aggregates the verdict. Documents whose bytes cannot be read are
// assessed from an empty body; the analyzer degrades them rather than
// aborting the run.
func (s *Service) Run(ctx context.Context, sessionID id.SessionID) (models.Result, error) {
	docs, err := s.documents.ListTemporary(ctx, sessionID)
	if err != nil {
		return models.Result{}, fmt.Errorf("load staged documents: %w", err)
	}

	assessments := make([]analysismodels.Assessment, 0, len(docs))
	for _, doc := range docs {
		content, err := s.documents.ReadContent(ctx, doc)
		if err != nil {
			s.logger.WarnContext(ctx, "unreadable staged document",
				"session_id", sessionID.String(),
				"document", doc.Name,
				"error", err,
			)
			content = nil
		}
		assessments = append(assessments, s.analyzer.Analyze(ctx, doc, content))
	}

	result := Aggregate(ctx, docs, assessments)
	if s.metrics != nil {
		s.metrics.ObserveComplianceRun(result.Passed)
	}
	s.logger.InfoContext(ctx, "compliance run complete",
		"session_id", sessionID.String(),
		"score", result.Score,
		"issues", len(result.Issues),
		"passed", result.Passed,
	)
	return result, nil
}

// Aggregate folds rule-based checks and per-document model scores into the
// final verdict.
//
// The rule component starts at 100, loses 30 once if any required category is
// missing, and loses 10 per document older than a year. Each model score is
// then folded in as score = (score + aiScore) / 2, in submission order. The
// sequential pairwise average weighs later documents more heavily than
// earlier ones; it is kept bit-for-bit compatible with the original scoring
// run and pinned by a regression test.
func Aggregate(ctx context.Context, docs []docmodels.Document, assessments []analysismodels.Assessment) models.Result {
	now := requestcontext.Now(ctx)

	var issues []string
	score := 100.0

	if !docmodels.CoversRequired(docs) {
		issues = append(issues, "Missing required documents")
		score -= 30
	}

	for _, doc := range docs {
		if doc.Stale(now) {
			issues = append(issues, fmt.Sprintf("Document %s is over 1 year old", doc.Name))
			score -= 10
		}
	}

	for _, assessment := range assessments {
		score = (score + assessment.Finding.Score) / 2
		if assessment.Finding.RiskLevel.Elevated() {
			issues = append(issues, assessment.Finding.Findings...)
		}
	}

	passed := score >= models.PassingScore && len(issues) < models.MaxIssues

	var recommendations []string
	if !passed {
		recommendations = collectRecommendations(assessments)
	}

	return models.Result{
		Passed:          passed,
		Issues:          issues,
		Score:           score,
		Recommendations: recommendations,
		Assessments:     assessments,
	}
}

// collectRecommendations takes the first five model recommendations. The
// fixed fallback list applies only when no document was analyzed at all.
func collectRecommendations(assessments []analysismodels.Assessment) []string {
	if len(assessments) == 0 {
		return fallbackRecommendations
	}
	var recommendations []string
	for _, a := range assessments {
		recommendations = append(recommendations, a.Finding.Recommendations...)
	}
	if len(recommendations) > 5 {
		recommendations = recommendations[:5]
	}
	return recommendations
}
