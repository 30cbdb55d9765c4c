// Package metrics exposes the gateway's Prometheus metrics.
//
// A single Collector owns the registry and groups metrics by concern:
//
//   - Request metrics: request counts, duration histogram, token counts
//   - Security metrics: sanitizer activity and injection rejections
//   - Stream metrics: delivered chunks and malformed upstream lines
//   - Cost metrics: accumulated estimated spend per model
//
// All metrics share the prismflow_gateway prefix. The Collector's
// Handler serves the standard Prometheus exposition format for
// scraping at /metrics.
package metrics
