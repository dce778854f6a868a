// Package service implements the per-document analyzer: text extraction, the
// model call, and parsing of the model's JSON verdict into a Finding.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"vendorgate/internal/analysis/jsonblock"
	"vendorgate/internal/analysis/models"
	"vendorgate/internal/analysis/prompt"
	docmodels "vendorgate/internal/document/models"
	"vendorgate/internal/platform/metrics"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks

// ModelClient is the external generative model collaborator.
type ModelClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Analyzer produces one Assessment per document. Model and parse failures are
// swallowed into a Degraded assessment; the pipeline never aborts on them.
type Analyzer struct {
	model   ModelClient
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Analyzer) { a.logger = logger }
}

// WithMetrics sets the metrics sink.
func WithMetrics(m *metrics.Metrics) Option {
	return func(a *Analyzer) { a.metrics = m }
}

// New constructs an Analyzer.
func New(model ModelClient, opts ...Option) (*Analyzer, error) {
	if model == nil {
		return nil, fmt.Errorf("model client is required")
	}
	a := &Analyzer{
		model:  model,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Analyze extracts text from the document content, asks the model for a
// compliance verdict, and parses it. Any failure along the way yields the
// fixed degraded finding tagged with the reason.
func (a *Analyzer) Analyze(ctx context.Context, doc docmodels.Document, content []byte) models.Assessment {
	text := ExtractText(doc, content)

	start := time.Now()
	raw, err := a.model.Generate(ctx, prompt.Compliance(text, doc.Category))
	if a.metrics != nil {
		a.metrics.ModelCallDuration.Observe(time.Since(start).Seconds())
	}
	if err != nil {
		a.logger.WarnContext(ctx, "model call failed, substituting degraded finding",
			"document", doc.Name,
			"error", err,
		)
		return a.degraded(doc, fmt.Sprintf("model call failed: %v", err))
	}

	finding, err := ParseFinding(raw)
	if err != nil {
		a.logger.WarnContext(ctx, "unparseable model response, substituting degraded finding",
			"document", doc.Name,
			"error", err,
		)
		return a.degraded(doc, fmt.Sprintf("unparseable model response: %v", err))
	}

	return models.Assessment{
		Document:   doc,
		Finding:    finding,
		Confidence: models.Confident,
	}
}

func (a *Analyzer) degraded(doc docmodels.Document, reason string) models.Assessment {
	if a.metrics != nil {
		a.metrics.DegradedFindings.Inc()
	}
	return models.Assessment{
		Document:       doc,
		Finding:        models.DegradedFinding(),
		Confidence:     models.Degraded,
		DegradedReason: reason,
	}
}

// ExtractText converts document bytes to the text handed to the model. Plain
// text and JSON pass through; PDF and Word content is not extracted yet and a
// bracketed placeholder stands in, so the model only ever sees the filename
// for binary formats.
func ExtractText(doc docmodels.Document, content []byte) string {
	switch {
	case doc.ContentType == "text/plain" || doc.ContentType == "application/json" ||
		strings.HasPrefix(doc.ContentType, "text/"):
		return string(content)
	case doc.ContentType == "application/pdf":
		// TODO: real PDF extraction (pdfcpu or a text-extraction sidecar).
		return fmt.Sprintf("[PDF Document: %s - Please extract text using a PDF library]", doc.Name)
	case strings.Contains(doc.ContentType, "word"):
		return fmt.Sprintf("[Word Document: %s - Please extract text using a Word extraction library]", doc.Name)
	default:
		return fmt.Sprintf("[Document: %s]", doc.Name)
	}
}

// rawFinding tolerates partial or mistyped model output; every field is
// re-validated with a default before it becomes a Finding.
type rawFinding struct {
	RiskLevel       string          `json:"riskLevel"`
	Score           json.RawMessage `json:"score"`
	Findings        []string        `json:"findings"`
	Strengths       []string        `json:"strengths"`
	Weaknesses      []string        `json:"weaknesses"`
	Recommendations []string        `json:"recommendations"`
}

// ParseFinding parses the model's JSON verdict, stripping an optional code
// fence first. Missing or mistyped fields are defaulted (riskLevel medium,
// score 50, empty slices); only malformed JSON is an error.
func ParseFinding(responseText string) (models.Finding, error) {
	payload := jsonblock.Extract(responseText)

	var raw rawFinding
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		return models.Finding{}, fmt.Errorf("parse finding: %w", err)
	}

	finding := models.Finding{
		RiskLevel:       models.RiskLevel(raw.RiskLevel),
		Score:           50,
		Findings:        orEmpty(raw.Findings),
		Strengths:       orEmpty(raw.Strengths),
		Weaknesses:      orEmpty(raw.Weaknesses),
		Recommendations: orEmpty(raw.Recommendations),
	}
	if !finding.RiskLevel.Valid() {
		finding.RiskLevel = models.RiskMedium
	}

	var score float64
	if raw.Score != nil && json.Unmarshal(raw.Score, &score) == nil {
		finding.Score = score
	}

	return finding, nil
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
