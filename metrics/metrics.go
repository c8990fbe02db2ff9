// Package metrics records index build and query measurements as Prometheus
// collectors.
package metrics

import (
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/0x5844/motif/index"
)

// Metrics holds the collectors and implements index.Observer.
type Metrics struct {
	PassDuration       *prometheus.GaugeVec
	DomainSize         *prometheus.GaugeVec
	FeatureCardinality *prometheus.GaugeVec
	QueriesTotal       prometheus.Counter
	QueryLatency       prometheus.Histogram
	QueryMatches       prometheus.Histogram

	registry *prometheus.Registry
}

var _ index.Observer = (*Metrics)(nil)

// New creates the collectors and registers them on a private registry.
func New() *Metrics {
	m := &Metrics{
		PassDuration: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "motif_build_pass_duration_seconds",
				Help: "Wall time of each index build pass.",
			},
			[]string{"pass"},
		),
		DomainSize: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "motif_domain_size",
				Help: "Number of entities per domain.",
			},
			[]string{"domain"},
		),
		FeatureCardinality: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "motif_feature_cardinality",
				Help: "Number of entities for which each feature holds.",
			},
			[]string{"feature"},
		),
		QueriesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "motif_queries_total",
				Help: "Total queries evaluated.",
			},
		),
		QueryLatency: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "motif_query_latency_seconds",
				Help:    "Query evaluation latency in seconds.",
				Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
			},
		),
		QueryMatches: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "motif_query_matches",
				Help:    "Number of positions matched per query.",
				Buckets: prometheus.ExponentialBuckets(1, 10, 8),
			},
		),
		registry: prometheus.NewRegistry(),
	}

	m.registry.MustRegister(
		m.PassDuration,
		m.DomainSize,
		m.FeatureCardinality,
		m.QueriesTotal,
		m.QueryLatency,
		m.QueryMatches,
	)
	return m
}

// Registry returns the registry holding the collectors.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// PassCompleted implements index.Observer.
func (m *Metrics) PassCompleted(pass int, elapsed time.Duration) {
	m.PassDuration.WithLabelValues(strconv.Itoa(pass)).Set(elapsed.Seconds())
}

// DomainSized implements index.Observer.
func (m *Metrics) DomainSized(d index.Domain, size uint64) {
	m.DomainSize.WithLabelValues(d.String()).Set(float64(size))
}

// FeatureBuilt implements index.Observer.
func (m *Metrics) FeatureBuilt(f index.FeatureDef, cardinality uint64) {
	m.FeatureCardinality.WithLabelValues(f.Name).Set(float64(cardinality))
}

// QueryCompleted implements index.Observer.
func (m *Metrics) QueryCompleted(matches uint64, elapsed time.Duration) {
	m.QueriesTotal.Inc()
	m.QueryLatency.Observe(elapsed.Seconds())
	m.QueryMatches.Observe(float64(matches))
}

// WriteTextfile writes the current values in the Prometheus text format, for
// pickup by the node exporter's textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return errors.Wrapf(err, "metrics: write %s", path)
	}
	return nil
}
