package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Config controls metric collection.
type Config struct {
	// Enabled turns collection on. A disabled collector records nothing.
	Enabled bool

	// Namespace and Subsystem prefix every metric name.
	Namespace string
	Subsystem string

	// RequestDurationBuckets overrides the latency histogram buckets.
	RequestDurationBuckets []float64
}

// Collector owns the Prometheus registry and all gateway metrics.
type Collector struct {
	config   Config
	registry *prometheus.Registry

	request  *requestMetrics
	security *securityMetrics
	stream   *streamMetrics
	cost     *costMetrics
}

// NewCollector creates a collector registered against its own registry.
// If registry is nil a fresh one is used.
func NewCollector(cfg Config, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	if cfg.Namespace == "" {
		cfg.Namespace = "prismflow"
	}
	if cfg.Subsystem == "" {
		cfg.Subsystem = "gateway"
	}
	if len(cfg.RequestDurationBuckets) == 0 {
		// LLM completions mostly land between 100ms and 30s.
		cfg.RequestDurationBuckets = []float64{0.1, 0.25, 0.5, 1.0, 2.0, 5.0, 10.0, 30.0}
	}

	c := &Collector{
		config:   cfg,
		registry: registry,
	}
	c.request = newRequestMetrics(cfg, registry)
	c.security = newSecurityMetrics(cfg, registry)
	c.stream = newStreamMetrics(cfg, registry)
	c.cost = newCostMetrics(cfg, registry)
	return c
}

// Registry returns the Prometheus registry backing this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}
