// Package metrics exposes organize counters for prometheus.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "member_organizer"

// Result labels of the files counter.
const (
	ResultChanged   = "changed"
	ResultUnchanged = "unchanged"
	ResultSkipped   = "skipped"
	ResultFailed    = "failed"
)

// Metrics holds the collectors of one process.
type Metrics struct {
	registry *prometheus.Registry
	files    *prometheus.CounterVec
	runs     prometheus.Counter
	duration prometheus.Histogram
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		files: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "files_total",
			Help:      "Files processed, by result.",
		}, []string{"result"}),
		runs: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Batch and watch organize runs.",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "file_duration_seconds",
			Help:      "Time spent organizing one file.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12),
		}),
	}
	m.registry.MustRegister(m.files, m.runs, m.duration)
	return m
}

// ObserveFile records the outcome of one file.
func (m *Metrics) ObserveFile(result string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.files.WithLabelValues(result).Inc()
	m.duration.Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveRun() {
	if m == nil {
		return
	}
	m.runs.Inc()
}

// Handler serves the registry in the prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Files exposes the files counter for tests and summaries.
func (m *Metrics) Files() *prometheus.CounterVec {
	return m.files
}

func (m *Metrics) Runs() prometheus.Counter {
	return m.runs
}
