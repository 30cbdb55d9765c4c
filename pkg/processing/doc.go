// Package processing provides token and cost accounting for gateway traffic.
//
// Sub-packages:
//
//   - tokens: local token estimation for prompts and accumulated stream
//     output, used when the upstream has not reported usage
//   - costs: per-model pricing, request cost estimation, and an
//     in-memory usage tracker with periodic rollups
package processing
