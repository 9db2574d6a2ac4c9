// Package metrics exposes Prometheus instrumentation for ingestion and
// report delivery.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds every collector on its own registry
type Metrics struct {
	registry *prometheus.Registry

	FeedbackIngested *prometheus.CounterVec
	FeedbackRejected *prometheus.CounterVec
	ReportsDelivered *prometheus.CounterVec
	DeliveryDuration *prometheus.HistogramVec
	FeedbackRecords  prometheus.Gauge
}

// New registers the collectors on a fresh registry
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		FeedbackIngested: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "signal_feedback_ingested_total",
			Help: "Feedback records classified and stored",
		}, []string{"source", "theme", "sentiment"}),
		FeedbackRejected: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "signal_feedback_rejected_total",
			Help: "Feedback submissions rejected at ingestion",
		}, []string{"reason"}),
		ReportsDelivered: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "signal_reports_delivered_total",
			Help: "Summary report deliveries by channel and outcome",
		}, []string{"channel", "status"}),
		DeliveryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "signal_report_delivery_duration_seconds",
			Help:    "Time spent delivering a summary report to one channel",
			Buckets: prometheus.DefBuckets,
		}, []string{"channel"}),
		FeedbackRecords: factory.NewGauge(prometheus.GaugeOpts{
			Name: "signal_feedback_records",
			Help: "Records in the master collection",
		}),
	}
}

// Registry returns the registry the collectors live on
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
