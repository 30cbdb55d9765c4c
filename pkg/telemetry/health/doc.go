// Package health provides the gateway's liveness and readiness probes.
//
// The Checker runs named component checks (upstream configuration,
// vector store connectivity) concurrently with a per-check timeout and
// aggregates them into a readiness verdict. Liveness is a fast
// process-is-running check with no component involvement.
//
// Endpoints:
//
//   - /health: liveness probe, always 200 while the process runs
//   - /health/ready: readiness probe, 503 when any check fails
package health
