// Package metrics exposes the service's Prometheus collectors.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "qclab"

// Metrics groups the collectors registered on one registry.
type Metrics struct {
	registry        *prometheus.Registry
	recordsCreated  *prometheus.CounterVec
	recordsStored   prometheus.Gauge
	analysisResults *prometheus.CounterVec
}

// New registers the collectors, plus Go runtime and process collectors, on a
// fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		recordsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_created_total",
			Help:      "QC records created, by status.",
		}, []string{"status"}),
		recordsStored: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "records_stored",
			Help:      "Records currently held in memory.",
		}),
		analysisResults: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analysis_requests_total",
			Help:      "Settled record analyses, by outcome.",
		}, []string{"outcome"}),
	}

	reg.MustRegister(
		m.recordsCreated,
		m.recordsStored,
		m.analysisResults,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// RecordCreated counts a new record and updates the stored gauge.
func (m *Metrics) RecordCreated(status string, stored int) {
	if m == nil {
		return
	}
	m.recordsCreated.WithLabelValues(status).Inc()
	m.recordsStored.Set(float64(stored))
}

// SetStored sets the stored gauge.
func (m *Metrics) SetStored(stored int) {
	if m == nil {
		return
	}
	m.recordsStored.Set(float64(stored))
}

// AnalysisSettled counts a finished analysis.
func (m *Metrics) AnalysisSettled(outcome string) {
	if m == nil {
		return
	}
	m.analysisResults.WithLabelValues(outcome).Inc()
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
