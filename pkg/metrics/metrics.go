// Package metrics holds the Prometheus collectors exposed on the metrics
// endpoint.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// DefaultBuckets provides a common set of histogram buckets in seconds
// reused across the application for latency metrics.
var DefaultBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10} //nolint: gochecknoglobals

//nolint: gochecknoglobals
var (
	// EmailsIngested counts successfully ingested emails by scan verdict
	// ("malicious" or "benign").
	EmailsIngested = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "spamoverflow",
		Name:      "emails_ingested_total",
		Help:      "Emails ingested and persisted, partitioned by scan verdict.",
	}, []string{"verdict"})

	// ScansFailed counts scan engine invocations that produced no usable
	// verdict.
	ScansFailed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "spamoverflow",
		Name:      "scans_failed_total",
		Help:      "Scan engine invocations that failed to produce a verdict.",
	})

	// ScanDuration observes the wall-clock duration of one scan engine
	// round trip.
	ScanDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "spamoverflow",
		Name:      "scan_duration_seconds",
		Help:      "Duration of scan engine subprocess round trips.",
		Buckets:   DefaultBuckets,
	})
)
