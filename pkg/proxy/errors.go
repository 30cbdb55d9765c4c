package proxy

import (
	"context"
	"errors"
	"net/http"

	"github.com/prismflow/gateway/pkg/proxy/types"
	"github.com/prismflow/gateway/pkg/upstream"
)

// upstreamBodyExcerpt bounds how much of an upstream error body is
// surfaced in error details.
const upstreamBodyExcerpt = 512

// MapError converts a pipeline error to an HTTP status code and the
// uniform error envelope. Every envelope carries the request ID; no
// branch echoes credentials or unbounded upstream bodies.
func MapError(err error, requestID string) (int, *types.ErrorResponse) {
	var reqErr *types.RequestError
	if errors.As(err, &reqErr) {
		return http.StatusBadRequest,
			types.NewErrorResponse(reqErr.Message, requestID).
				WithDetail("field", reqErr.Field)
	}

	var schemaErr *SchemaError
	if errors.As(err, &schemaErr) {
		return http.StatusUnprocessableEntity,
			types.NewErrorResponse(schemaErr.Error(), requestID)
	}

	var injErr *InjectionError
	if errors.As(err, &injErr) {
		return http.StatusBadRequest,
			types.NewErrorResponse("Request rejected: potential prompt injection detected.", requestID).
				WithDetail("message_index", injErr.MessageIndex)
	}

	var configErr *upstream.ConfigError
	if errors.As(err, &configErr) {
		// Misconfiguration is the operator's fault, not the caller's.
		// The field name is logged server-side, never echoed here.
		return http.StatusInternalServerError,
			types.NewErrorResponse("Gateway is not configured for upstream calls.", requestID)
	}

	var upstreamErr *upstream.UpstreamError
	if errors.As(err, &upstreamErr) {
		status := upstreamErr.StatusCode
		if status < 400 {
			status = http.StatusBadGateway
		}
		body := upstreamErr.Body
		if len(body) > upstreamBodyExcerpt {
			body = body[:upstreamBodyExcerpt]
		}
		return status,
			types.NewErrorResponse("Upstream provider returned an error.", requestID).
				WithDetail("upstream_status", upstreamErr.StatusCode).
				WithDetail("upstream_body", body)
	}

	var parseErr *upstream.ParseError
	if errors.As(err, &parseErr) {
		return http.StatusBadGateway,
			types.NewErrorResponse("Upstream provider returned an unreadable response.", requestID)
	}

	var streamErr *upstream.StreamError
	if errors.As(err, &streamErr) {
		return http.StatusBadGateway,
			types.NewErrorResponse("Upstream stream failed.", requestID)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout,
			types.NewErrorResponse("Upstream request timed out.", requestID)
	}

	return http.StatusInternalServerError,
		types.NewErrorResponse("An internal error occurred. Please try again later.", requestID)
}
