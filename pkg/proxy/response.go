package proxy

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/prismflow/gateway/pkg/proxy/types"
	"github.com/prismflow/gateway/pkg/upstream"
)

// NewChatResponse shapes an upstream completion into the gateway's
// buffered response body.
func NewChatResponse(completion *upstream.Completion, requestID, model string, cost float64, latency time.Duration) *types.ChatResponse {
	return &types.ChatResponse{
		ID:            completion.ID,
		RequestID:     requestID,
		Content:       completion.Content,
		Model:         model,
		PromptVersion: types.PromptVersion,
		Usage: types.Usage{
			TokensIn:         completion.Usage.PromptTokens,
			TokensOut:        completion.Usage.CompletionTokens,
			EstimatedCostUSD: cost,
		},
		LatencyMS:    float64(latency.Microseconds()) / 1000,
		FinishReason: completion.FinishReason,
	}
}

// WriteJSONResponse writes data as a JSON body with the given status.
func WriteJSONResponse(w http.ResponseWriter, statusCode int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		return fmt.Errorf("encoding JSON response: %w", err)
	}
	return nil
}

// WriteErrorResponse writes the uniform error envelope with its status.
func WriteErrorResponse(w http.ResponseWriter, statusCode int, errResp *types.ErrorResponse) error {
	return WriteJSONResponse(w, statusCode, errResp)
}

// SetSSEHeaders sets the headers for a Server-Sent Events response.
func SetSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
}

// WriteSSEChunk emits one delta as a "chunk" event:
//
//	event: chunk
//	data: {"delta":"Hello","request_id":"..."}
//
// followed by a blank line, then flushes so the client sees the delta
// immediately.
func WriteSSEChunk(w http.ResponseWriter, delta, requestID string) error {
	payload, err := json.Marshal(types.StreamChunkEvent{Delta: delta, RequestID: requestID})
	if err != nil {
		return fmt.Errorf("marshaling SSE chunk: %w", err)
	}
	return writeSSEEvent(w, "chunk", payload)
}

// WriteSSEDone emits the terminal "done" event and flushes.
func WriteSSEDone(w http.ResponseWriter, requestID string) error {
	payload, err := json.Marshal(types.StreamDoneEvent{RequestID: requestID})
	if err != nil {
		return fmt.Errorf("marshaling SSE done event: %w", err)
	}
	return writeSSEEvent(w, "done", payload)
}

// WriteSSEError emits an "error" event for failures after the stream has
// started, when the HTTP status is already committed.
func WriteSSEError(w http.ResponseWriter, errResp *types.ErrorResponse) error {
	payload, err := json.Marshal(errResp)
	if err != nil {
		return fmt.Errorf("marshaling SSE error event: %w", err)
	}
	return writeSSEEvent(w, "error", payload)
}

func writeSSEEvent(w http.ResponseWriter, event string, payload []byte) error {
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, payload); err != nil {
		return fmt.Errorf("writing SSE %s event: %w", event, err)
	}
	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}
	return nil
}
