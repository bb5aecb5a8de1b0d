package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fleet_http_requests_total",
			Help: "HTTP requests served, by route and status code.",
		},
		[]string{"route", "method", "status"},
	)

	ReportDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fleet_report_duration_seconds",
			Help:    "Time spent assembling vehicle reports.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"format"}, // json or xlsx
	)

	ReportSamples = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "fleet_report_samples_total",
			Help: "Status samples summarized into reports.",
		},
	)

	UnorderedSequences = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "fleet_report_unordered_sequences_total",
			Help: "Per-vehicle sample sequences that arrived out of timestamp order.",
		},
	)
)

func init() {
	prometheus.MustRegister(HTTPRequestsTotal, ReportDuration, ReportSamples, UnorderedSequences)
}
