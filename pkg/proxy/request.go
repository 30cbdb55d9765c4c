package proxy

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/prismflow/gateway/pkg/jsonout"
	"github.com/prismflow/gateway/pkg/proxy/types"
)

// MaxRequestBodySize is the maximum allowed request body size (10MB).
const MaxRequestBodySize = 10 * 1024 * 1024

// ParseChatRequest reads and validates a chat request body, returning
// the normalized request and, when strict-JSON mode declares a schema,
// the parsed output shape.
//
// Failures return *types.RequestError for malformed bodies and field
// violations, and *SchemaError for an undecipherable json_schema.
func ParseChatRequest(r *http.Request) (*types.ChatRequest, jsonout.Shape, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, MaxRequestBodySize+1))
	if err != nil {
		return nil, nil, fmt.Errorf("reading request body: %w", err)
	}
	if len(body) > MaxRequestBodySize {
		return nil, nil, &types.RequestError{
			Field:   "body",
			Message: fmt.Sprintf("request body exceeds maximum size of %d bytes", MaxRequestBodySize),
		}
	}

	var req types.ChatRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, nil, &types.RequestError{
			Field:   "body",
			Message: fmt.Sprintf("invalid JSON: %v", err),
		}
	}

	if err := req.Validate(); err != nil {
		return nil, nil, err
	}

	shape, err := jsonout.ParseShape(req.JSONSchema)
	if err != nil {
		return nil, nil, &SchemaError{Cause: err}
	}

	return &req, shape, nil
}

// SchemaError reports a json_schema the gateway cannot interpret. It
// maps to 422 because the body is well-formed JSON but semantically
// unprocessable.
type SchemaError struct {
	Cause error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("unprocessable json_schema: %v", e.Cause)
}

func (e *SchemaError) Unwrap() error { return e.Cause }

// InjectionError reports that a message failed the prompt-injection
// screen. MessageIndex identifies the offending message.
type InjectionError struct {
	MessageIndex int
}

func (e *InjectionError) Error() string {
	return fmt.Sprintf("potential prompt injection detected in messages[%d]", e.MessageIndex)
}
