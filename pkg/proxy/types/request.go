package types

import "fmt"

// DefaultModel is used when a request does not name a model.
const DefaultModel = "gpt-4o-mini"

// DefaultTemperature is applied when a request omits temperature.
const DefaultTemperature = 0.7

// Message roles accepted from clients.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single turn in the conversation.
type Message struct {
	// Role is "system", "user", or "assistant".
	Role string `json:"role"`

	// Content is the message text.
	Content string `json:"content"`
}

// ChatRequest is the body of POST /v1/chat and POST /v1/chat/stream.
type ChatRequest struct {
	// Messages is the conversation history, oldest first. At least one
	// message is required.
	Messages []Message `json:"messages"`

	// Model selects the upstream model. Defaults to DefaultModel.
	Model string `json:"model"`

	// Temperature controls sampling randomness, 0 to 2 inclusive.
	// Defaults to DefaultTemperature when omitted.
	Temperature *float64 `json:"temperature,omitempty"`

	// MaxTokens caps the completion length. Optional; must be positive
	// when present.
	MaxTokens *int `json:"max_tokens,omitempty"`

	// StrictJSON requests JSON-mode output and post-hoc validation of
	// the completion.
	StrictJSON bool `json:"strict_json"`

	// JSONSchema optionally describes the required output shape when
	// StrictJSON is set. Values are type names ("string", "integer",
	// "float", "boolean") or nested mappings for sub-objects.
	JSONSchema map[string]interface{} `json:"json_schema,omitempty"`
}

// Validate normalizes defaults in place and returns a *RequestError for
// the first violation found.
func (r *ChatRequest) Validate() error {
	if r.Model == "" {
		r.Model = DefaultModel
	}
	if r.Temperature == nil {
		t := DefaultTemperature
		r.Temperature = &t
	}

	if len(r.Messages) == 0 {
		return &RequestError{
			Field:   "messages",
			Message: "messages must contain at least one message",
		}
	}
	for i, msg := range r.Messages {
		switch msg.Role {
		case RoleSystem, RoleUser, RoleAssistant:
		default:
			return &RequestError{
				Field:   fmt.Sprintf("messages[%d].role", i),
				Message: "role must be one of system, user, assistant",
			}
		}
		if msg.Content == "" {
			return &RequestError{
				Field:   fmt.Sprintf("messages[%d].content", i),
				Message: "message content must not be empty",
			}
		}
	}

	if *r.Temperature < 0 || *r.Temperature > 2 {
		return &RequestError{
			Field:   "temperature",
			Message: "temperature must be between 0 and 2",
		}
	}
	if r.MaxTokens != nil && *r.MaxTokens < 1 {
		return &RequestError{
			Field:   "max_tokens",
			Message: "max_tokens must be greater than 0",
		}
	}
	if r.JSONSchema != nil && !r.StrictJSON {
		return &RequestError{
			Field:   "json_schema",
			Message: "json_schema requires strict_json to be true",
		}
	}
	return nil
}

// RequestError reports a malformed or invalid request field.
type RequestError struct {
	Field   string
	Message string
}

func (e *RequestError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}
