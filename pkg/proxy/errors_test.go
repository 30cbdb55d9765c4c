package proxy

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/prismflow/gateway/pkg/proxy/types"
	"github.com/prismflow/gateway/pkg/upstream"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{
			name:       "validation error",
			err:        &types.RequestError{Field: "temperature", Message: "temperature must be between 0 and 2"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "schema error",
			err:        &SchemaError{Cause: errors.New(`unknown shape type "decimal"`)},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "injection",
			err:        &InjectionError{MessageIndex: 1},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing upstream credential",
			err:        &upstream.ConfigError{Field: "api_key", Message: "api key is not configured"},
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:       "upstream 429 passes through",
			err:        &upstream.UpstreamError{StatusCode: 429, Body: "slow down"},
			wantStatus: http.StatusTooManyRequests,
		},
		{
			name:       "upstream 500 passes through",
			err:        &upstream.UpstreamError{StatusCode: 500, Body: "boom"},
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:       "upstream error without status",
			err:        &upstream.UpstreamError{Cause: errors.New("connection refused")},
			wantStatus: http.StatusBadGateway,
		},
		{
			name:       "unparseable upstream response",
			err:        &upstream.ParseError{RawResponse: "<html>", Cause: errors.New("no choices")},
			wantStatus: http.StatusBadGateway,
		},
		{
			name:       "stream failure",
			err:        &upstream.StreamError{Message: "connection reset"},
			wantStatus: http.StatusBadGateway,
		},
		{
			name:       "timeout",
			err:        fmt.Errorf("calling upstream: %w", context.DeadlineExceeded),
			wantStatus: http.StatusGatewayTimeout,
		},
		{
			name:       "unknown error",
			err:        errors.New("something odd"),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, errResp := MapError(tt.err, "req-7")
			if status != tt.wantStatus {
				t.Errorf("status = %d, want %d", status, tt.wantStatus)
			}
			if errResp.RequestID != "req-7" {
				t.Errorf("RequestID = %q, want req-7", errResp.RequestID)
			}
			if errResp.Error == "" {
				t.Error("error message empty")
			}
		})
	}
}

func TestMapError_WrappedErrors(t *testing.T) {
	wrapped := fmt.Errorf("handling request: %w", &upstream.UpstreamError{StatusCode: 503, Body: "overloaded"})
	status, _ := MapError(wrapped, "req-8")
	if status != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", status)
	}
}

func TestMapError_BoundsUpstreamBody(t *testing.T) {
	long := strings.Repeat("x", 4096)
	_, errResp := MapError(&upstream.UpstreamError{StatusCode: 500, Body: long}, "req-9")

	body, _ := errResp.Details["upstream_body"].(string)
	if len(body) != upstreamBodyExcerpt {
		t.Errorf("upstream_body length = %d, want %d", len(body), upstreamBodyExcerpt)
	}
}

func TestMapError_InternalErrorsAreOpaque(t *testing.T) {
	internal := errors.New("dial tcp 10.0.0.5:5432: connection refused")
	_, errResp := MapError(internal, "req-10")
	if strings.Contains(errResp.Error, "10.0.0.5") {
		t.Errorf("internal details leaked: %q", errResp.Error)
	}
}
