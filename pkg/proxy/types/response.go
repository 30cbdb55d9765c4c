package types

// PromptVersion identifies the prompt-handling contract of this gateway
// build and is echoed in every buffered response.
const PromptVersion = "v1.0.0"

// Usage reports token consumption and its estimated cost for one request.
type Usage struct {
	TokensIn         int     `json:"tokens_in"`
	TokensOut        int     `json:"tokens_out"`
	EstimatedCostUSD float64 `json:"estimated_cost_usd"`
}

// ChatResponse is the buffered reply of POST /v1/chat.
type ChatResponse struct {
	// ID is the upstream completion ID.
	ID string `json:"id"`

	// RequestID is the gateway-assigned request identifier, identical
	// to the X-Request-ID response header.
	RequestID string `json:"request_id"`

	// Content is the completion text. When strict-JSON repair ran
	// successfully this is the repaired text.
	Content string `json:"content"`

	// Model is the model that served the completion.
	Model string `json:"model"`

	// PromptVersion is the gateway prompt contract version.
	PromptVersion string `json:"prompt_version"`

	// Usage is the provider-reported token usage with estimated cost.
	Usage Usage `json:"usage"`

	// LatencyMS is the wall time of the upstream call in milliseconds.
	LatencyMS float64 `json:"latency_ms"`

	// FinishReason is "stop", "length", or "content_filter".
	FinishReason string `json:"finish_reason"`

	// OutputValid reports the strict-JSON verdict. Absent unless the
	// request set strict_json.
	OutputValid *bool `json:"output_valid,omitempty"`
}

// StreamChunkEvent is the payload of an SSE "chunk" event.
type StreamChunkEvent struct {
	Delta     string `json:"delta"`
	RequestID string `json:"request_id"`
}

// StreamDoneEvent is the payload of the terminal SSE "done" event.
type StreamDoneEvent struct {
	RequestID string `json:"request_id"`
}
