package metrics

import "github.com/prometheus/client_golang/prometheus"

// costMetrics tracks estimated spend.
//
// Metrics:
//   - prismflow_gateway_estimated_cost_usd_total{model}
type costMetrics struct {
	estimatedCost *prometheus.CounterVec
}

func newCostMetrics(cfg Config, registry *prometheus.Registry) *costMetrics {
	cm := &costMetrics{
		estimatedCost: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "estimated_cost_usd_total",
				Help:      "Accumulated estimated cost in USD by model",
			},
			[]string{"model"},
		),
	}

	registry.MustRegister(cm.estimatedCost)
	return cm
}

// RecordCost accumulates the estimated cost of one request.
func (c *Collector) RecordCost(model string, costUSD float64) {
	if !c.config.Enabled || costUSD <= 0 {
		return
	}
	c.cost.estimatedCost.WithLabelValues(model).Add(costUSD)
}
