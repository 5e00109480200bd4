package server

import (
	"time"

	schemadiff "github.com/perangel/schema-diff"
	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "schema_diff"

// Comparison outcomes
const (
	outcomeIdentical = "identical"
	outcomeDifferent = "different"
	outcomeError     = "error"
)

type metrics struct {
	comparisons *prometheus.CounterVec
	duration    prometheus.Histogram
	differences *prometheus.GaugeVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		comparisons: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "comparisons_total",
			Help:      "Comparisons run, by outcome.",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "comparison_duration_seconds",
			Help:      "Wall time of comparisons, including extraction.",
			Buckets:   prometheus.DefBuckets,
		}),
		differences: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "differences",
			Help:      "Differences found by the last successful comparison.",
		}, []string{"category", "kind"}),
	}
	reg.MustRegister(m.comparisons, m.duration, m.differences)
	return m
}

func (m *metrics) observe(report *schemadiff.Report, err error, elapsed time.Duration) {
	m.duration.Observe(elapsed.Seconds())
	if err != nil {
		m.comparisons.WithLabelValues(outcomeError).Inc()
		return
	}

	outcome := outcomeIdentical
	if report.Stats.HasDifferences() {
		outcome = outcomeDifferent
	}
	m.comparisons.WithLabelValues(outcome).Inc()

	for _, c := range report.Stats.Categories() {
		m.differences.WithLabelValues(c.Category, "only_in_a").Set(float64(c.OnlyInA))
		m.differences.WithLabelValues(c.Category, "only_in_b").Set(float64(c.OnlyInB))
		m.differences.WithLabelValues(c.Category, "changed").Set(float64(c.Changed))
	}
}
