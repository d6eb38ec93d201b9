package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	listingsScored   *prometheus.CounterVec
	reportsGenerated prometheus.Counter
	errorsTotal      *prometheus.CounterVec
	lastScore        *prometheus.GaugeVec
	latency          *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		listingsScored: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "propsight_listings_scored_total",
				Help: "Total number of scored listings sent to backend",
			},
			[]string{"backend", "market"},
		),
		reportsGenerated: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "propsight_reports_generated_total",
				Help: "Total number of cost segregation reports generated",
			},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "propsight_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		lastScore: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "propsight_last_score",
				Help: "Last investment score recorded for a market",
			},
			[]string{"market"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "propsight_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordListingScored records a scored listing delivered to a backend.
func (r *Recorder) RecordListingScored(backend, market string) {
	r.listingsScored.WithLabelValues(backend, market).Inc()
}

// RecordReportGenerated records a generated cost segregation report.
func (r *Recorder) RecordReportGenerated() {
	r.reportsGenerated.Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordLastScore records the last investment score for a market.
func (r *Recorder) RecordLastScore(market string, score float64) {
	r.lastScore.WithLabelValues(market).Set(score)
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
