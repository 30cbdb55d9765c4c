package upstream

// Wire types for the provider's chat-completions endpoint. The builder
// must honor this contract bit-exactly; field names and shapes follow the
// OpenAI API.

// chatPayload is the JSON request body for POST {base_url}/chat/completions.
type chatPayload struct {
	Model          string                 `json:"model"`
	Messages       []wireMessage          `json:"messages"`
	Temperature    float64                `json:"temperature"`
	MaxTokens      int                    `json:"max_tokens,omitempty"`
	ResponseFormat map[string]interface{} `json:"response_format,omitempty"`
	Stream         bool                   `json:"stream,omitempty"`
}

// wireMessage is a (role, content) pair on the wire.
type wireMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatResponse is the non-streaming response body.
type chatResponse struct {
	ID      string       `json:"id"`
	Model   string       `json:"model"`
	Choices []chatChoice `json:"choices"`
	Usage   wireUsage    `json:"usage"`
}

type chatChoice struct {
	Index        int         `json:"index"`
	Message      wireMessage `json:"message"`
	FinishReason string      `json:"finish_reason"`
}

type wireUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// streamResponse is one JSON frame of the streaming response.
type streamResponse struct {
	ID      string         `json:"id"`
	Choices []streamChoice `json:"choices"`
}

type streamChoice struct {
	Delta        streamDelta `json:"delta"`
	FinishReason string      `json:"finish_reason,omitempty"`
}

type streamDelta struct {
	Role    string `json:"role,omitempty"`
	Content string `json:"content,omitempty"`
}

// buildPayload assembles the upstream request body from a validated
// CompletionRequest. Message order is preserved; max_tokens is attached
// only when set; the structured-output directive and streaming flag are
// attached only when requested. The builder performs no I/O and cannot
// fail on a validated request.
func buildPayload(req *CompletionRequest, stream bool) *chatPayload {
	payload := &chatPayload{
		Model:       req.Model,
		Messages:    make([]wireMessage, len(req.Messages)),
		Temperature: req.Temperature,
		Stream:      stream,
	}

	for i, msg := range req.Messages {
		payload.Messages[i] = wireMessage{Role: msg.Role, Content: msg.Content}
	}

	if req.MaxTokens > 0 {
		payload.MaxTokens = req.MaxTokens
	}

	if req.ResponseFormat != nil {
		payload.ResponseFormat = req.ResponseFormat
	}

	return payload
}

// normalizeFinishReason maps provider finish reasons onto the gateway's
// normalized values, passing unknown values through unchanged.
func normalizeFinishReason(reason string) string {
	switch reason {
	case "stop", "":
		return FinishReasonStop
	case "length":
		return FinishReasonLength
	case "content_filter":
		return FinishReasonContentFilter
	default:
		return reason
	}
}

// parseCompletion converts a decoded wire response into a Completion.
func parseCompletion(resp *chatResponse) (*Completion, error) {
	if len(resp.Choices) == 0 {
		return nil, &ParseError{Cause: errNoChoices}
	}

	choice := resp.Choices[0]

	return &Completion{
		ID:           resp.ID,
		Content:      choice.Message.Content,
		FinishReason: normalizeFinishReason(choice.FinishReason),
		Usage: TokenUsage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
		},
	}, nil
}
