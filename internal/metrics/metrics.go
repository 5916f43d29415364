package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "civicapi_requests_total",
		Help: "Total number of /representatives requests",
	})
	RequestDurationMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "civicapi_request_duration_ms",
		Help:    "Request duration in milliseconds",
		Buckets: []float64{5, 10, 20, 50, 100, 200, 500, 1000, 2000, 5000},
	})
	UpstreamRequestsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "civicapi_upstream_requests_total",
		Help: "Total civic information API requests",
	})
	UpstreamFailTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "civicapi_upstream_fail_total",
		Help: "Total civic information API failures",
	})
	UpstreamDurationMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "civicapi_upstream_duration_ms",
		Help:    "Civic information API call duration in milliseconds",
		Buckets: []float64{5, 10, 20, 50, 100, 200, 500, 1000, 2000, 5000},
	})
	RepsClassifiedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "civicapi_reps_classified_total",
		Help: "Officials placed into each jurisdiction bucket",
	}, []string{"bucket"})
	InvalidPayloadTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "civicapi_invalid_payload_total",
		Help: "Upstream payloads rejected by the classifier",
	})
	RateLimitRejectedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "civicapi_ratelimit_rejected_total",
		Help: "Requests rejected by the rate limiter",
	})
	LogWriteFailTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "civicapi_log_write_fail_total",
		Help: "Request log writes that failed, by sink",
	}, []string{"sink"})
)

func init() {
	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(RequestDurationMs)
	prometheus.MustRegister(UpstreamRequestsTotal)
	prometheus.MustRegister(UpstreamFailTotal)
	prometheus.MustRegister(UpstreamDurationMs)
	prometheus.MustRegister(RepsClassifiedTotal)
	prometheus.MustRegister(InvalidPayloadTotal)
	prometheus.MustRegister(RateLimitRejectedTotal)
	prometheus.MustRegister(LogWriteFailTotal)
}

// 文档注释：返回 Prometheus 指标监听器，在主入口挂载到 /metrics
func Handler() http.Handler { return promhttp.Handler() }
