package upstream

import "time"

// Role constants for conversation messages. The gateway accepts exactly
// these three roles; anything else is rejected at the HTTP boundary.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Normalized finish reasons reported to clients.
const (
	FinishReasonStop          = "stop"
	FinishReasonLength        = "length"
	FinishReasonContentFilter = "content_filter"
)

// Message is a single message in a conversation.
type Message struct {
	// Role identifies the message sender (system, user, assistant).
	Role string `json:"role"`

	// Content is the message text.
	Content string `json:"content"`
}

// CompletionRequest is the gateway-internal form of a completion request,
// produced by the proxy layer after validation and sanitization.
type CompletionRequest struct {
	// Model is the upstream model identifier.
	Model string

	// Messages is the conversation in order. Order is preserved on the wire.
	Messages []Message

	// Temperature controls sampling randomness (0 to 2).
	Temperature float64

	// MaxTokens caps the completion length when > 0.
	MaxTokens int

	// ResponseFormat, when non-nil, is the structured-output directive
	// attached to the upstream payload (strict-JSON mode).
	ResponseFormat map[string]interface{}
}

// TokenUsage is the provider-reported token accounting for one exchange.
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
}

// Completion is the parsed result of a buffered upstream call.
type Completion struct {
	// ID is the upstream-assigned completion identifier.
	ID string

	// Content is the assistant message text.
	Content string

	// FinishReason is the normalized reason generation stopped.
	FinishReason string

	// Usage carries the provider-reported token counts.
	Usage TokenUsage
}

// StreamChunk is one event delivered on a streaming completion channel.
// Exactly one of Delta or Err is meaningful; the channel is closed after
// the terminal sentinel or an error.
type StreamChunk struct {
	// Delta is the incremental content fragment.
	Delta string

	// Err reports a stream failure. The channel is closed after an Err chunk.
	Err error
}

// Config is the transport configuration shared by both operating modes.
type Config struct {
	// BaseURL is the provider API root, e.g. "https://api.openai.com/v1".
	BaseURL string

	// APIKey is the bearer credential. Its absence is a ConfigError raised
	// before any request is attempted.
	APIKey string

	// Timeout bounds each outbound call, including streaming connections.
	Timeout time.Duration

	// MaxIdleConns and MaxIdleConnsPerHost tune the pooled transport.
	MaxIdleConns        int
	MaxIdleConnsPerHost int

	// OnMalformedLine, when set, is invoked for every streaming line that
	// fails to parse as JSON. The line is skipped either way; the hook
	// exists so callers can count anomalies.
	OnMalformedLine func(line string)
}
