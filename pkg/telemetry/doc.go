// Package telemetry provides observability for the gateway.
//
// Sub-packages:
//
//   - metrics: Prometheus collectors for request, security, stream, and
//     cost signals, plus the scrape handler
//   - health: liveness and readiness probes with per-component checks
//
// Logging is plain log/slog configured at startup; there is no logging
// sub-package.
package telemetry
