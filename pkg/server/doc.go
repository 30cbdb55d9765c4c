// Package server assembles the gateway's HTTP surface: the chat and
// streaming endpoints, health probes, version info, and the metrics
// scrape handler, wrapped in the shared middleware chain.
//
// Routes:
//
//	POST /v1/chat          buffered chat completion
//	POST /v1/chat/stream   SSE streaming chat completion
//	GET  /health           liveness probe
//	GET  /health/ready     readiness probe
//	GET  /version          build information
//	GET  /metrics          Prometheus scrape endpoint (configurable path)
//
// Start blocks until the context is cancelled, a shutdown signal
// arrives, or the listener fails, then drains in-flight requests within
// the configured shutdown timeout.
package server
