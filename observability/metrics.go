// Package observability provides Prometheus metrics for monitoring published responses.
package observability

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// TransformBuckets defines histogram buckets suited for XSLT processor runs,
// ranging from 10ms to the default 5s timeout and a little past it.
var TransformBuckets = []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10}

var (
	// ResponsesTotal counts written responses by format, encoding and status code.
	ResponsesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "publish_responses_total",
			Help: "Total responses",
		},
		[]string{"format", "encoding", "status"},
	)

	// ResponseBytesTotal counts rendered payload bytes, before compression, by format and encoding.
	ResponseBytesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "publish_response_bytes_total",
			Help: "Rendered bytes",
		},
		[]string{"format", "encoding"},
	)

	// TransformDuration records how long XSLT transformations take in seconds.
	TransformDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "publish_transform_duration_seconds",
			Help:    "Transform duration",
			Buckets: TransformBuckets,
		},
	)

	// TransformErrorsTotal counts failed XSLT transformations.
	TransformErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "publish_transform_errors_total",
			Help: "Transform errors",
		},
	)
)

func init() {
	prometheus.MustRegister(
		ResponsesTotal,
		ResponseBytesTotal,
		TransformDuration,
		TransformErrorsTotal,
	)
}

// ObserveResponse records a written response.
func ObserveResponse(format, encoding string, status, size int) {
	ResponsesTotal.WithLabelValues(format, encoding, strconv.Itoa(status)).Inc()
	ResponseBytesTotal.WithLabelValues(format, encoding).Add(float64(size))
}

// Handler serves the default registry in the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.Handler()
}
