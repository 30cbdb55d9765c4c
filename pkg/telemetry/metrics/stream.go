package metrics

import "github.com/prometheus/client_golang/prometheus"

// streamMetrics tracks the streaming endpoint.
//
// Metrics:
//   - prismflow_gateway_stream_chunks_total
//   - prismflow_gateway_stream_malformed_lines_total
type streamMetrics struct {
	chunksTotal         prometheus.Counter
	malformedLinesTotal prometheus.Counter
}

func newStreamMetrics(cfg Config, registry *prometheus.Registry) *streamMetrics {
	sm := &streamMetrics{
		chunksTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "stream_chunks_total",
				Help:      "Delta chunks delivered to streaming clients",
			},
		),

		malformedLinesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "stream_malformed_lines_total",
				Help:      "Malformed SSE lines skipped while consuming upstream streams",
			},
		),
	}

	registry.MustRegister(sm.chunksTotal, sm.malformedLinesTotal)
	return sm
}

// RecordStreamChunk counts one delta delivered to a client.
func (c *Collector) RecordStreamChunk() {
	if !c.config.Enabled {
		return
	}
	c.stream.chunksTotal.Inc()
}

// RecordMalformedStreamLine counts a skipped upstream SSE line.
func (c *Collector) RecordMalformedStreamLine() {
	if !c.config.Enabled {
		return
	}
	c.stream.malformedLinesTotal.Inc()
}
