package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	SignupsStarted    prometheus.Counter
	AccountsActivated prometheus.Counter
	ComplianceRuns    *prometheus.CounterVec
	DegradedFindings  prometheus.Counter
	DocumentsStaged   prometheus.Counter
	DocumentsPromoted prometheus.Counter
	ModelCallDuration prometheus.Histogram
	RequestLatency    *prometheus.HistogramVec
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		SignupsStarted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "vendorgate_signups_started_total",
			Help: "Total number of pending signup sessions created",
		}),
		AccountsActivated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "vendorgate_accounts_activated_total",
			Help: "Total number of durable accounts created after compliance passed",
		}),
		ComplianceRuns: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "vendorgate_compliance_runs_total",
			Help: "Compliance scoring runs by outcome",
		}, []string{"outcome"}),
		DegradedFindings: promauto.NewCounter(prometheus.CounterOpts{
			Name: "vendorgate_degraded_findings_total",
			Help: "Findings substituted with the fallback after a model or parse failure",
		}),
		DocumentsStaged: promauto.NewCounter(prometheus.CounterOpts{
			Name: "vendorgate_documents_staged_total",
			Help: "Documents written to temporary staging storage",
		}),
		DocumentsPromoted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "vendorgate_documents_promoted_total",
			Help: "Documents promoted to permanent storage after a pass",
		}),
		ModelCallDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "vendorgate_model_call_duration_seconds",
			Help:    "Latency of external generative model calls",
			Buckets: []float64{0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		}),
		RequestLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "vendorgate_http_request_duration_seconds",
			Help:    "HTTP request latency by route",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
	}
}

// ObserveComplianceRun records one scoring run outcome ("passed" or "failed").
func (m *Metrics) ObserveComplianceRun(passed bool) {
	outcome := "failed"
	if passed {
		outcome = "passed"
	}
	m.ComplianceRuns.WithLabelValues(outcome).Inc()
}
