// Package proxy implements the HTTP surface of the gateway: request
// parsing and validation, response shaping, Server-Sent Events framing,
// and the mapping from pipeline errors to the uniform error envelope.
//
// # Architecture
//
//   - Handlers: request processing (chat, streaming chat, health)
//   - Middleware: cross-cutting concerns (request ID, logging, CORS,
//     recovery, rate limiting)
//   - Types: request/response data structures
//
// The buffered endpoint (POST /v1/chat) returns a single ChatResponse
// with usage accounting. The streaming endpoint (POST /v1/chat/stream)
// emits SSE frames:
//
//	event: chunk
//	data: {"delta":"Hello","request_id":"..."}
//
//	event: done
//	data: {"request_id":"..."}
//
// # Error mapping
//
// MapError converts typed pipeline errors to a status code and an
// ErrorResponse. Client-side faults map to 4xx, upstream faults to the
// upstream's status or 502, and everything else to 500. The mapper never
// leaks credentials or raw upstream bodies above a bounded excerpt.
package proxy
