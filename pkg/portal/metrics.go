package portal

import (
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	portalRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "chamcong",
		Subsystem: "portal",
		Name:      "requests_total",
		Help:      "Total number of portal API requests broken down by endpoint and result.",
	}, []string{"endpoint", "result"})

	portalLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "chamcong",
		Subsystem: "portal",
		Name:      "latency_seconds",
		Help:      "Latency distribution for portal API requests.",
		Buckets: []float64{
			0.005, 0.01, 0.02, 0.05,
			0.1, 0.2, 0.5,
			1, 2, 5, 10, 30,
		},
	}, []string{"endpoint", "result"})
)

type instrumentedTransport struct {
	next http.RoundTripper
}

func (t *instrumentedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := t.next.RoundTrip(req)

	result := "error"
	if err == nil {
		switch {
		case resp.StatusCode >= 500:
			result = "5xx"
		case resp.StatusCode >= 400:
			result = "4xx"
		case resp.StatusCode >= 300:
			result = "3xx"
		default:
			result = "2xx"
		}
	}
	endpoint := endpointLabel(req.Method, req.URL.Path)
	portalRequests.WithLabelValues(endpoint, result).Inc()
	portalLatency.WithLabelValues(endpoint, result).Observe(time.Since(start).Seconds())
	return resp, err
}

// endpointLabel keeps label cardinality bounded: numeric path segments
// collapse to :id.
func endpointLabel(method, path string) string {
	parts := strings.Split(path, "/")
	for i, p := range parts {
		if p != "" && isDigits(p) {
			parts[i] = ":id"
		}
	}
	return method + " " + strings.Join(parts, "/")
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
