package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/trogers1052/bond-crm-service/internal/models"
)

// Analysis outcomes
const (
	StatusSuccess = "success"
	StatusCached  = "cached"
	StatusFailed  = "failed"
)

// Metrics holds the service's Prometheus collectors
type Metrics struct {
	registry *prometheus.Registry

	analyses   *prometheus.CounterVec
	candidates prometheus.Counter
	overrides  *prometheus.CounterVec
	extraction prometheus.Histogram
}

// New registers all collectors on a fresh registry
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		analyses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bondcrm",
			Name:      "transcript_analyses_total",
			Help:      "Transcript analyses by outcome.",
		}, []string{"status"}),
		candidates: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "bondcrm",
			Name:      "candidates_validated_total",
			Help:      "Trade candidates checked by the direction validator.",
		}),
		overrides: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bondcrm",
			Name:      "direction_overrides_total",
			Help:      "Directions overridden by the validator.",
		}, []string{"from", "to", "rule"}),
		extraction: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "bondcrm",
			Name:      "extraction_duration_seconds",
			Help:      "Latency of the transcript extraction model call.",
			Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 30, 60},
		}),
	}

	m.registry.MustRegister(
		m.analyses,
		m.candidates,
		m.overrides,
		m.extraction,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveAnalysis counts one analysis outcome
func (m *Metrics) ObserveAnalysis(status string) {
	m.analyses.WithLabelValues(status).Inc()
}

// ObserveExtraction records the latency of one model call
func (m *Metrics) ObserveExtraction(d time.Duration) {
	m.extraction.Observe(d.Seconds())
}

// ObserveValidation counts validated candidates and their overrides
func (m *Metrics) ObserveValidation(result models.ValidationResult) {
	m.candidates.Add(float64(len(result.Activities)))
	for _, c := range result.Corrections {
		from := c.OriginalDirection
		if from == "" {
			from = "NONE"
		}
		m.overrides.WithLabelValues(from, c.CorrectedDirection, c.Rule).Inc()
	}
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
