package upstream

import "fmt"

// UpstreamError reports a failed upstream call, either at the transport
// layer or as a non-success HTTP status from the provider.
type UpstreamError struct {
	// StatusCode is the provider's HTTP status, or 0 when the call failed
	// before a status was received.
	StatusCode int

	// Body is the provider's error response body, if any.
	Body string

	// Cause is the underlying transport error, if any.
	Cause error
}

// Error implements the error interface.
func (e *UpstreamError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("upstream error (status %d): %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("upstream error: %v", e.Cause)
}

// Unwrap returns the underlying error for error chain support.
func (e *UpstreamError) Unwrap() error {
	return e.Cause
}

// ConfigError reports invalid or missing client configuration. It is
// raised before any network I/O is attempted.
type ConfigError struct {
	// Field is the configuration field at fault.
	Field string

	// Message describes the problem.
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("upstream configuration error for field %q: %s", e.Field, e.Message)
}

// ParseError reports a provider response that could not be decoded.
type ParseError struct {
	// RawResponse is the body that failed to parse.
	RawResponse string

	// Cause is the underlying decode error.
	Cause error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("upstream response parse error: %v", e.Cause)
}

// Unwrap returns the underlying error for error chain support.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// StreamError reports a failure while consuming an upstream stream.
type StreamError struct {
	// Message describes the failure.
	Message string

	// Cause is the underlying error.
	Cause error
}

// Error implements the error interface.
func (e *StreamError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("upstream stream error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("upstream stream error: %s", e.Message)
}

// Unwrap returns the underlying error for error chain support.
func (e *StreamError) Unwrap() error {
	return e.Cause
}
