package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	sectorScore *prometheus.GaugeVec
	analyses    *prometheus.CounterVec
	errorsTotal *prometheus.CounterVec
	latency     *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		sectorScore: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "sectorpulse_sector_score",
				Help: "Last computed composite score per sector",
			},
			[]string{"sector"},
		),
		analyses: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sectorpulse_analyses_total",
				Help: "Total analysis records produced",
			},
			[]string{"sector", "degraded"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sectorpulse_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "sectorpulse_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordSectorScore records the last composite score for a sector.
func (r *Recorder) RecordSectorScore(sector string, score float64) {
	r.sectorScore.WithLabelValues(sector).Set(score)
}

// RecordAnalysis records one produced analysis record.
func (r *Recorder) RecordAnalysis(sector string, degraded bool) {
	label := "false"
	if degraded {
		label = "true"
	}
	r.analyses.WithLabelValues(sector, label).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
