package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// requestMetrics tracks request processing.
//
// Metrics:
//   - prismflow_gateway_requests_total{endpoint,status}
//   - prismflow_gateway_request_duration_seconds{endpoint}
//   - prismflow_gateway_tokens_total{model,type}
type requestMetrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	tokensTotal     *prometheus.CounterVec
}

func newRequestMetrics(cfg Config, registry *prometheus.Registry) *requestMetrics {
	rm := &requestMetrics{
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "requests_total",
				Help:      "Total number of chat requests processed",
			},
			[]string{"endpoint", "status"},
		),

		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "request_duration_seconds",
				Help:      "Duration of chat requests in seconds",
				Buckets:   cfg.RequestDurationBuckets,
			},
			[]string{"endpoint"},
		),

		tokensTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "tokens_total",
				Help:      "Total provider-reported tokens by direction",
			},
			[]string{"model", "type"},
		),
	}

	registry.MustRegister(rm.requestsTotal, rm.requestDuration, rm.tokensTotal)
	return rm
}

// RecordRequest records one completed request.
func (c *Collector) RecordRequest(endpoint, status string, duration time.Duration) {
	if !c.config.Enabled {
		return
	}
	c.request.requestsTotal.WithLabelValues(endpoint, status).Inc()
	c.request.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

// RecordTokens records provider-reported token usage.
func (c *Collector) RecordTokens(model string, tokensIn, tokensOut int) {
	if !c.config.Enabled {
		return
	}
	if tokensIn > 0 {
		c.request.tokensTotal.WithLabelValues(model, "prompt").Add(float64(tokensIn))
	}
	if tokensOut > 0 {
		c.request.tokensTotal.WithLabelValues(model, "completion").Add(float64(tokensOut))
	}
}
