package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector holds the service's prometheus instruments. One instance per
// process, shared by the handlers and the AI explainer.
type Collector struct {
	assessmentsTotal    *prometheus.CounterVec
	assessmentDuration  prometheus.Histogram
	collectorErrors     *prometheus.CounterVec
	enhancementsTotal   *prometheus.CounterVec
	scansPersistedTotal prometheus.Counter
}

func NewCollector() *Collector {
	return &Collector{
		assessmentsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "domainintel_assessments_total",
			Help: "Completed risk assessments by resulting risk level",
		}, []string{"risk_level"}),

		assessmentDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "domainintel_assessment_duration_seconds",
			Help:    "End-to-end duration of one analysis, collection included",
			Buckets: prometheus.DefBuckets,
		}),

		collectorErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "domainintel_collector_errors_total",
			Help: "Provider fetch failures by provider name",
		}, []string{"provider"}),

		enhancementsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "domainintel_ai_enhancements_total",
			Help: "AI explanation attempts by outcome (accepted, rejected, error, disabled)",
		}, []string{"outcome"}),

		scansPersistedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "domainintel_scans_persisted_total",
			Help: "Scan history rows written",
		}),
	}
}

func (c *Collector) RecordAssessment(riskLevel string, duration time.Duration) {
	c.assessmentsTotal.WithLabelValues(riskLevel).Inc()
	c.assessmentDuration.Observe(duration.Seconds())
}

func (c *Collector) RecordCollectorError(provider string) {
	c.collectorErrors.WithLabelValues(provider).Inc()
}

// RecordEnhancement satisfies the AI explainer's observer.
func (c *Collector) RecordEnhancement(outcome string) {
	c.enhancementsTotal.WithLabelValues(outcome).Inc()
}

func (c *Collector) RecordScanPersisted() {
	c.scansPersistedTotal.Inc()
}
