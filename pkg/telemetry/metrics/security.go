package metrics

import "github.com/prometheus/client_golang/prometheus"

// securityMetrics tracks the input screening stage.
//
// Metrics:
//   - prismflow_gateway_injection_rejections_total
//   - prismflow_gateway_strict_json_outcomes_total{outcome}
type securityMetrics struct {
	injectionRejections prometheus.Counter
	strictJSONOutcomes  *prometheus.CounterVec
}

func newSecurityMetrics(cfg Config, registry *prometheus.Registry) *securityMetrics {
	sm := &securityMetrics{
		injectionRejections: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "injection_rejections_total",
				Help:      "Requests rejected by the prompt-injection screen",
			},
		),

		strictJSONOutcomes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "strict_json_outcomes_total",
				Help:      "Strict-JSON validation outcomes (valid, repaired, invalid)",
			},
			[]string{"outcome"},
		),
	}

	registry.MustRegister(sm.injectionRejections, sm.strictJSONOutcomes)
	return sm
}

// RecordInjectionRejection counts a request rejected by the injection
// screen.
func (c *Collector) RecordInjectionRejection() {
	if !c.config.Enabled {
		return
	}
	c.security.injectionRejections.Inc()
}

// RecordStrictJSONOutcome counts a strict-JSON verdict. Outcome is one
// of "valid", "repaired", or "invalid".
func (c *Collector) RecordStrictJSONOutcome(outcome string) {
	if !c.config.Enabled {
		return
	}
	c.security.strictJSONOutcomes.WithLabelValues(outcome).Inc()
}
