// Package handlers implements the gateway's HTTP endpoints.
//
// ChatHandler serves POST /v1/chat (buffered) and POST /v1/chat/stream
// (SSE). Both run the same pipeline in front of the upstream call:
//
//  1. Parse and validate the request body
//  2. Sanitize message content in place
//  3. Screen every message for prompt-injection patterns
//  4. Estimate prompt tokens for logging and metrics
//  5. Build the upstream completion request
//  6. Call the upstream (buffered or streaming)
//  7. Account usage and estimated cost
//  8. For strict-JSON requests, repair and validate the output
//
// Failures at any stage are converted by proxy.MapError into the
// uniform error envelope. On the streaming endpoint, failures after the
// first byte are delivered as an SSE "error" event instead, since the
// HTTP status is already committed.
package handlers
