// Package types defines the request and response bodies of the gateway's
// chat API.
//
// ChatRequest is the body of POST /v1/chat and /v1/chat/stream; it
// carries the conversation, generation parameters, and the strict-JSON
// options. ChatResponse is the buffered reply with usage accounting.
// ErrorResponse is the uniform error envelope returned for every failure,
// always carrying the request ID assigned at ingress.
//
// Field names use snake_case in JSON. Validation normalizes defaults in
// place (model, temperature) and reports the first violation as a
// *RequestError with the offending field.
package types
