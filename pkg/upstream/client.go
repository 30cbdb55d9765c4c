package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

var errNoChoices = errors.New("no choices in response")

// completionsPath is the provider endpoint appended to the base URL.
const completionsPath = "/chat/completions"

// Client performs outbound calls to the upstream provider. It is safe for
// concurrent use; all configuration is fixed at construction.
type Client struct {
	config Config
	client *http.Client
}

// NewClient creates a client with a pooled HTTP transport.
func NewClient(config Config) *Client {
	if config.Timeout <= 0 {
		config.Timeout = 60 * time.Second
	}
	if config.MaxIdleConns == 0 {
		config.MaxIdleConns = 100
	}
	if config.MaxIdleConnsPerHost == 0 {
		config.MaxIdleConnsPerHost = 10
	}

	transport := &http.Transport{
		MaxIdleConns:        config.MaxIdleConns,
		MaxIdleConnsPerHost: config.MaxIdleConnsPerHost,
		IdleConnTimeout:     90 * time.Second,
		ForceAttemptHTTP2:   true,
	}

	return &Client{
		config: config,
		client: &http.Client{
			Transport: transport,
			Timeout:   config.Timeout,
		},
	}
}

// Complete performs a buffered completion call: one request, full response.
// No retries are attempted; a transient failure surfaces immediately as an
// *UpstreamError. A missing credential is raised as a *ConfigError before
// the network is touched.
func (c *Client) Complete(ctx context.Context, req *CompletionRequest) (*Completion, error) {
	resp, err := c.do(ctx, req, false)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ParseError{Cause: fmt.Errorf("failed to read response: %w", err)}
	}

	var decoded chatResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, &ParseError{
			RawResponse: string(body),
			Cause:       fmt.Errorf("failed to unmarshal response: %w", err),
		}
	}

	return parseCompletion(&decoded)
}

// Stream performs a streaming completion call. It returns a channel of
// chunks in upstream arrival order; the channel is closed after the [DONE]
// sentinel, on error, or when ctx is cancelled. The stream is finite and
// not restartable.
func (c *Client) Stream(ctx context.Context, req *CompletionRequest) (<-chan StreamChunk, error) {
	resp, err := c.do(ctx, req, true)
	if err != nil {
		return nil, err
	}

	chunks := make(chan StreamChunk)
	go c.consume(ctx, resp.Body, chunks)
	return chunks, nil
}

// do issues the HTTP request shared by both modes and maps transport and
// application failures to typed errors.
func (c *Client) do(ctx context.Context, req *CompletionRequest, stream bool) (*http.Response, error) {
	if c.config.APIKey == "" {
		return nil, &ConfigError{Field: "api_key", Message: "upstream credential is not configured"}
	}

	payload := buildPayload(req, stream)
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := c.config.BaseURL + completionsPath
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	if stream {
		httpReq.Header.Set("Accept", "text/event-stream")
	}

	slog.DebugContext(ctx, "sending upstream request",
		"url", url,
		"model", req.Model,
		"stream", stream,
	)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, &UpstreamError{Cause: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		errorBody, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, &UpstreamError{
			StatusCode: resp.StatusCode,
			Body:       string(errorBody),
		}
	}

	return resp, nil
}
