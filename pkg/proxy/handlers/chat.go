package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prismflow/gateway/pkg/jsonout"
	"github.com/prismflow/gateway/pkg/processing/costs"
	"github.com/prismflow/gateway/pkg/processing/tokens"
	"github.com/prismflow/gateway/pkg/proxy"
	"github.com/prismflow/gateway/pkg/proxy/middleware"
	"github.com/prismflow/gateway/pkg/proxy/types"
	"github.com/prismflow/gateway/pkg/security"
	"github.com/prismflow/gateway/pkg/telemetry/metrics"
	"github.com/prismflow/gateway/pkg/upstream"
)

// Endpoint labels used in logs and metrics.
const (
	endpointChat   = "/v1/chat"
	endpointStream = "/v1/chat/stream"
)

// ChatHandler serves the buffered and streaming chat endpoints.
type ChatHandler struct {
	Upstream Completer
	Costs    *costs.Estimator
	Tracker  *costs.Tracker
	Tokens   *tokens.Estimator
	Metrics  *metrics.Collector
}

// NewChatHandler wires a handler from its pipeline dependencies.
// Metrics may be nil when collection is disabled.
func NewChatHandler(up Completer, estimator *costs.Estimator, tracker *costs.Tracker, tok *tokens.Estimator, collector *metrics.Collector) *ChatHandler {
	return &ChatHandler{
		Upstream: up,
		Costs:    estimator,
		Tracker:  tracker,
		Tokens:   tok,
		Metrics:  collector,
	}
}

// ServeHTTP handles POST /v1/chat.
func (h *ChatHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.handleChat(w, r)
}

// StreamHandler adapts the streaming endpoint to http.Handler.
type StreamHandler struct {
	Chat *ChatHandler
}

// ServeHTTP handles POST /v1/chat/stream.
func (h *StreamHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.Chat.handleStream(w, r)
}

// prepare runs the shared front of the pipeline: parse, sanitize,
// injection screen, and upstream request construction.
func (h *ChatHandler) prepare(w http.ResponseWriter, r *http.Request, endpoint string) (*types.ChatRequest, jsonout.Shape, *upstream.CompletionRequest, bool) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	chatReq, shape, err := proxy.ParseChatRequest(r)
	if err != nil {
		slog.WarnContext(ctx, "rejecting chat request",
			"request_id", requestID,
			"endpoint", endpoint,
			"error", err,
		)
		h.respondError(w, r, endpoint, err)
		return nil, nil, nil, false
	}

	for i := range chatReq.Messages {
		chatReq.Messages[i].Content = security.Sanitize(chatReq.Messages[i].Content)
	}

	for i, msg := range chatReq.Messages {
		if security.DetectInjection(msg.Content) {
			slog.WarnContext(ctx, "prompt injection detected",
				"request_id", requestID,
				"endpoint", endpoint,
				"message_index", i,
			)
			if h.Metrics != nil {
				h.Metrics.RecordInjectionRejection()
			}
			h.respondError(w, r, endpoint, &proxy.InjectionError{MessageIndex: i})
			return nil, nil, nil, false
		}
	}

	if h.Tokens != nil {
		est := make([]tokens.Message, len(chatReq.Messages))
		for i, msg := range chatReq.Messages {
			est[i] = tokens.Message{Role: msg.Role, Content: msg.Content}
		}
		slog.DebugContext(ctx, "estimated prompt tokens",
			"request_id", requestID,
			"model", chatReq.Model,
			"estimated_tokens", h.Tokens.EstimateMessages(est),
		)
	}

	return chatReq, shape, buildUpstreamRequest(chatReq), true
}

func (h *ChatHandler) handleChat(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)
	start := time.Now()

	chatReq, shape, upReq, ok := h.prepare(w, r, endpointChat)
	if !ok {
		return
	}

	slog.InfoContext(ctx, "processing chat request",
		"request_id", requestID,
		"model", chatReq.Model,
		"messages", len(chatReq.Messages),
		"strict_json", chatReq.StrictJSON,
	)

	upstreamStart := time.Now()
	completion, err := h.Upstream.Complete(ctx, upReq)
	upstreamLatency := time.Since(upstreamStart)

	if err != nil {
		slog.ErrorContext(ctx, "upstream request failed",
			"request_id", requestID,
			"model", chatReq.Model,
			"error", err,
			"upstream_latency_ms", upstreamLatency.Milliseconds(),
		)
		h.respondError(w, r, endpointChat, err)
		return
	}

	cost := h.accountUsage(chatReq.Model, completion.Usage)

	resp := proxy.NewChatResponse(completion, requestID, chatReq.Model, cost, upstreamLatency)

	if chatReq.StrictJSON {
		result := jsonout.Validate(completion.Content, shape)
		resp.Content = result.Text
		resp.OutputValid = &result.Valid

		outcome := "invalid"
		switch {
		case result.Valid && result.Repaired:
			outcome = "repaired"
		case result.Valid:
			outcome = "valid"
		}
		if h.Metrics != nil {
			h.Metrics.RecordStrictJSONOutcome(outcome)
		}
		if !result.Valid {
			slog.WarnContext(ctx, "strict JSON validation failed",
				"request_id", requestID,
				"model", chatReq.Model,
			)
		}
	}

	slog.InfoContext(ctx, "chat request completed",
		"request_id", requestID,
		"model", chatReq.Model,
		"finish_reason", completion.FinishReason,
		"tokens_in", completion.Usage.PromptTokens,
		"tokens_out", completion.Usage.CompletionTokens,
		"estimated_cost_usd", cost,
		"upstream_latency_ms", upstreamLatency.Milliseconds(),
		"total_latency_ms", time.Since(start).Milliseconds(),
	)

	if h.Metrics != nil {
		h.Metrics.RecordRequest(endpointChat, "200", time.Since(start))
	}
	if err := proxy.WriteJSONResponse(w, http.StatusOK, resp); err != nil {
		slog.ErrorContext(ctx, "failed to write response",
			"request_id", requestID,
			"error", err,
		)
	}
}

func (h *ChatHandler) handleStream(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)
	start := time.Now()

	chatReq, _, upReq, ok := h.prepare(w, r, endpointStream)
	if !ok {
		return
	}

	slog.InfoContext(ctx, "processing streaming chat request",
		"request_id", requestID,
		"model", chatReq.Model,
		"messages", len(chatReq.Messages),
	)

	promptEstimate := 0
	if h.Tokens != nil {
		est := make([]tokens.Message, len(chatReq.Messages))
		for i, msg := range chatReq.Messages {
			est[i] = tokens.Message{Role: msg.Role, Content: msg.Content}
		}
		promptEstimate = h.Tokens.EstimateMessages(est)
	}

	chunks, err := h.Upstream.Stream(ctx, upReq)
	if err != nil {
		slog.ErrorContext(ctx, "upstream stream failed to start",
			"request_id", requestID,
			"model", chatReq.Model,
			"error", err,
		)
		h.respondError(w, r, endpointStream, err)
		return
	}

	proxy.SetSSEHeaders(w)
	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}

	var completionText strings.Builder
	chunksSent := 0
	streamFailed := false

	for chunk := range chunks {
		if chunk.Err != nil {
			slog.ErrorContext(ctx, "error in upstream stream",
				"request_id", requestID,
				"chunks_sent", chunksSent,
				"error", chunk.Err,
			)
			_, errResp := proxy.MapError(chunk.Err, requestID)
			if err := proxy.WriteSSEError(w, errResp); err != nil {
				slog.ErrorContext(ctx, "failed to write SSE error", "error", err)
			}
			streamFailed = true
			break
		}

		if err := proxy.WriteSSEChunk(w, chunk.Delta, requestID); err != nil {
			slog.WarnContext(ctx, "client write failed mid-stream",
				"request_id", requestID,
				"chunks_sent", chunksSent,
				"error", err,
			)
			streamFailed = true
			break
		}
		completionText.WriteString(chunk.Delta)
		chunksSent++
		if h.Metrics != nil {
			h.Metrics.RecordStreamChunk()
		}
	}

	if !streamFailed {
		if err := proxy.WriteSSEDone(w, requestID); err != nil {
			slog.ErrorContext(ctx, "failed to write SSE done event",
				"request_id", requestID,
				"error", err,
			)
		}
	}

	// The stream carries no usage frames, so both directions are
	// estimated locally.
	outEstimate := 0
	if h.Tokens != nil {
		outEstimate = h.Tokens.EstimateText(completionText.String())
	}
	cost := h.accountUsage(chatReq.Model, upstream.TokenUsage{
		PromptTokens:     promptEstimate,
		CompletionTokens: outEstimate,
	})

	status := "200"
	if streamFailed {
		status = "stream_error"
	}
	if h.Metrics != nil {
		h.Metrics.RecordRequest(endpointStream, status, time.Since(start))
	}

	slog.InfoContext(ctx, "streaming chat request completed",
		"request_id", requestID,
		"model", chatReq.Model,
		"chunks_sent", chunksSent,
		"estimated_tokens_in", promptEstimate,
		"estimated_tokens_out", outEstimate,
		"estimated_cost_usd", cost,
		"stream_failed", streamFailed,
		"total_latency_ms", time.Since(start).Milliseconds(),
	)
}

// accountUsage estimates cost and records usage in the tracker and
// metrics. Returns the estimated cost.
func (h *ChatHandler) accountUsage(model string, usage upstream.TokenUsage) float64 {
	var cost float64
	if h.Costs != nil {
		cost = h.Costs.EstimateCost(model, usage.PromptTokens, usage.CompletionTokens)
	}
	if h.Tracker != nil {
		h.Tracker.Record(model, usage.PromptTokens, usage.CompletionTokens, cost)
	}
	if h.Metrics != nil {
		h.Metrics.RecordTokens(model, usage.PromptTokens, usage.CompletionTokens)
		h.Metrics.RecordCost(model, cost)
	}
	return cost
}

// respondError maps err and writes the error envelope, recording the
// outcome in metrics.
func (h *ChatHandler) respondError(w http.ResponseWriter, r *http.Request, endpoint string, err error) {
	requestID := middleware.GetRequestID(r.Context())
	status, errResp := proxy.MapError(err, requestID)

	if h.Metrics != nil {
		var elapsed time.Duration
		if start := middleware.GetStartTime(r.Context()); !start.IsZero() {
			elapsed = time.Since(start)
		}
		h.Metrics.RecordRequest(endpoint, strconv.Itoa(status), elapsed)
	}
	if werr := proxy.WriteErrorResponse(w, status, errResp); werr != nil {
		slog.ErrorContext(r.Context(), "failed to write error response",
			"request_id", requestID,
			"error", werr,
		)
	}
}

// buildUpstreamRequest converts a validated chat request to the
// upstream wire form. Strict-JSON mode requests provider JSON output;
// the declared shape rides along for providers that accept one.
func buildUpstreamRequest(req *types.ChatRequest) *upstream.CompletionRequest {
	upReq := &upstream.CompletionRequest{
		Model:       req.Model,
		Messages:    make([]upstream.Message, len(req.Messages)),
		Temperature: *req.Temperature,
	}
	for i, msg := range req.Messages {
		upReq.Messages[i] = upstream.Message{Role: msg.Role, Content: msg.Content}
	}
	if req.MaxTokens != nil {
		upReq.MaxTokens = *req.MaxTokens
	}
	if req.StrictJSON {
		format := map[string]interface{}{"type": "json_object"}
		if req.JSONSchema != nil {
			format["schema"] = req.JSONSchema
		}
		upReq.ResponseFormat = format
	}
	return upReq
}
