package types

// ErrorResponse is the uniform error envelope returned for every failed
// request, on both the buffered and streaming endpoints.
type ErrorResponse struct {
	// Error is a human-readable description of the failure. It never
	// echoes upstream credentials or raw client input.
	Error string `json:"error"`

	// RequestID correlates the error with gateway logs.
	RequestID string `json:"request_id,omitempty"`

	// Details carries machine-readable context such as the offending
	// field or the upstream status code.
	Details map[string]interface{} `json:"details,omitempty"`
}

// NewErrorResponse builds an envelope with no details.
func NewErrorResponse(message, requestID string) *ErrorResponse {
	return &ErrorResponse{Error: message, RequestID: requestID}
}

// WithDetail returns the envelope with one detail entry added.
func (e *ErrorResponse) WithDetail(key string, value interface{}) *ErrorResponse {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}
