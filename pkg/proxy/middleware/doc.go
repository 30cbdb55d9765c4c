// Package middleware provides HTTP middleware for cross-cutting concerns.
//
// Middleware functions are chained in a specific order:
//
//	handler = RequestID(Recovery(Logging(CORS(RateLimit(handler)))))
//
// Order (innermost to outermost):
//  1. RateLimit: enforce the gateway-wide request ceiling
//  2. CORS: add Cross-Origin Resource Sharing headers
//  3. Logging: log request/response details
//  4. Recovery: recover from panics
//  5. RequestID: assign and propagate the request ID
//
// RequestID sits outermost so the log lines and the recovery envelope
// both see the ID in context.
//
// # Request ID
//
// RequestIDMiddleware assigns a UUID v4 to each request at ingress:
//
//	X-Request-ID: 550e8400-e29b-41d4-a716-446655440000
//
// The request ID is added to the context, included in the response
// headers, attached to all logs for the request, and echoed in the
// response body (request_id) and error envelopes.
//
// # Logging
//
// LoggingMiddleware uses structured logging (log/slog) to record request
// details:
//
//	{
//	  "time": "2026-02-11T10:30:00Z",
//	  "level": "INFO",
//	  "msg": "request completed",
//	  "method": "POST",
//	  "path": "/v1/chat",
//	  "status": 200,
//	  "latency_ms": 1250,
//	  "request_id": "550e8400-e29b-41d4-a716-446655440000"
//	}
//
// # Recovery
//
// RecoveryMiddleware catches panics in handlers and converts them to the
// gateway's uniform error envelope with status 500. The panic stack
// trace is logged but never exposed to clients.
//
// # Context values
//
// Middleware stores the request ID and start time in the request
// context; handlers retrieve them with GetRequestID and GetStartTime.
package middleware
