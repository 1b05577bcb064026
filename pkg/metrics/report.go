package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency of the report HTTP handlers
	ReportLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "report_request_latency_seconds",
		Help:    "Latency of sales report handlers",
		Buckets: prometheus.DefBuckets,
	})

	// Reports served, by report name
	ReportsServed = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "report_requests_total",
		Help: "Total number of sales reports served",
	}, []string{"report"})

	// Order lines rejected by enrichment as malformed
	SkippedOrderLines = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "report_skipped_order_lines_total",
		Help: "Order lines skipped because of malformed price, quantity or discount",
	})

	// Cache hits on rendered reports
	ReportCacheHits = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "report_cache_hits_total",
		Help: "Report payloads served from the Redis cache",
	})
)

func Init() {
	prometheus.MustRegister(
		ReportLatency,
		ReportsServed,
		SkippedOrderLines,
		ReportCacheHits,
	)
}
