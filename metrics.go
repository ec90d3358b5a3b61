package endpoints

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// MetricsConfig configures the Metrics middleware.
type MetricsConfig struct {
	Namespace  string                // metric namespace, e.g. the service name
	Registerer prometheus.Registerer // default: prometheus.DefaultRegisterer
}

// Metrics returns middleware that records request counts and latencies per
// method, route pattern, and status. Collectors are registered once when
// the middleware is built; building two Metrics middlewares against the
// same registerer panics on the duplicate registration.
func Metrics(cfg ...MetricsConfig) Middleware {
	c := MetricsConfig{Registerer: prometheus.DefaultRegisterer}
	if len(cfg) > 0 {
		if cfg[0].Namespace != "" {
			c.Namespace = cfg[0].Namespace
		}
		if cfg[0].Registerer != nil {
			c.Registerer = cfg[0].Registerer
		}
	}

	labels := []string{"method", "pattern", "status"}

	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: c.Namespace,
		Name:      "http_requests_total",
		Help:      "Total HTTP requests by method, route pattern, and status.",
	}, labels)

	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: c.Namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by method, route pattern, and status.",
		Buckets:   prometheus.DefBuckets,
	}, labels)

	c.Registerer.MustRegister(requests, duration)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &responseRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			pattern := r.Pattern
			if pattern == "" {
				pattern = r.URL.Path
			}
			status := strconv.Itoa(rec.status)

			requests.WithLabelValues(r.Method, pattern, status).Inc()
			duration.WithLabelValues(r.Method, pattern, status).Observe(time.Since(start).Seconds())
		})
	}
}
