package proxy

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prismflow/gateway/pkg/proxy/types"
)

func postChat(body string) *http.Request {
	return httptest.NewRequest(http.MethodPost, "/v1/chat", strings.NewReader(body))
}

func TestParseChatRequest(t *testing.T) {
	t.Run("valid request with defaults", func(t *testing.T) {
		req, shape, err := ParseChatRequest(postChat(`{"messages":[{"role":"user","content":"hi"}]}`))
		if err != nil {
			t.Fatalf("ParseChatRequest() error = %v", err)
		}
		if req.Model != types.DefaultModel {
			t.Errorf("Model = %q, want default %q", req.Model, types.DefaultModel)
		}
		if req.Temperature == nil || *req.Temperature != types.DefaultTemperature {
			t.Errorf("Temperature = %v, want default", req.Temperature)
		}
		if shape != nil {
			t.Errorf("shape = %v, want nil without json_schema", shape)
		}
	})

	t.Run("strict json with schema", func(t *testing.T) {
		body := `{
			"messages":[{"role":"user","content":"hi"}],
			"strict_json": true,
			"json_schema": {"answer":"string","confidence":"float"}
		}`
		req, shape, err := ParseChatRequest(postChat(body))
		if err != nil {
			t.Fatalf("ParseChatRequest() error = %v", err)
		}
		if !req.StrictJSON {
			t.Error("StrictJSON not set")
		}
		if len(shape) != 2 {
			t.Errorf("shape has %d fields, want 2", len(shape))
		}
	})

	t.Run("malformed JSON", func(t *testing.T) {
		_, _, err := ParseChatRequest(postChat(`{"messages":`))
		var reqErr *types.RequestError
		if !errors.As(err, &reqErr) {
			t.Fatalf("error = %v, want *types.RequestError", err)
		}
		if reqErr.Field != "body" {
			t.Errorf("Field = %q, want body", reqErr.Field)
		}
	})

	t.Run("validation failure propagates", func(t *testing.T) {
		_, _, err := ParseChatRequest(postChat(`{"messages":[]}`))
		var reqErr *types.RequestError
		if !errors.As(err, &reqErr) {
			t.Fatalf("error = %v, want *types.RequestError", err)
		}
		if reqErr.Field != "messages" {
			t.Errorf("Field = %q, want messages", reqErr.Field)
		}
	})

	t.Run("bad schema is a SchemaError", func(t *testing.T) {
		body := `{
			"messages":[{"role":"user","content":"hi"}],
			"strict_json": true,
			"json_schema": {"answer":"decimal"}
		}`
		_, _, err := ParseChatRequest(postChat(body))
		var schemaErr *SchemaError
		if !errors.As(err, &schemaErr) {
			t.Fatalf("error = %v, want *SchemaError", err)
		}
	})

	t.Run("oversized body rejected", func(t *testing.T) {
		huge := `{"messages":[{"role":"user","content":"` + strings.Repeat("a", MaxRequestBodySize) + `"}]}`
		_, _, err := ParseChatRequest(postChat(huge))
		var reqErr *types.RequestError
		if !errors.As(err, &reqErr) {
			t.Fatalf("error = %v, want *types.RequestError", err)
		}
		if !strings.Contains(reqErr.Message, "maximum size") {
			t.Errorf("Message = %q, want size limit message", reqErr.Message)
		}
	})
}
