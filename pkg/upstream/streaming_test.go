package upstream

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// sseServer serves the given lines as an SSE response, one flush per line.
func sseServer(t *testing.T, lines []string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Accept"); got != "text/event-stream" {
			t.Errorf("expected Accept: text/event-stream, got %q", got)
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")

		flusher, ok := w.(http.Flusher)
		if !ok {
			t.Fatal("response writer does not support flushing")
		}

		for _, line := range lines {
			fmt.Fprintf(w, "%s\n\n", line)
			flusher.Flush()
		}
	}))
}

func collectChunks(t *testing.T, chunks <-chan StreamChunk) []StreamChunk {
	t.Helper()
	var got []StreamChunk
	for chunk := range chunks {
		got = append(got, chunk)
	}
	return got
}

func TestClient_Stream_OrderedDelivery(t *testing.T) {
	server := sseServer(t, []string{
		`data: {"id":"chatcmpl-1","choices":[{"delta":{"role":"assistant","content":""}}]}`,
		`data: {"id":"chatcmpl-1","choices":[{"delta":{"content":"Hel"}}]}`,
		`data: {"id":"chatcmpl-1","choices":[{"delta":{"content":"lo"}}]}`,
		`data: {"id":"chatcmpl-1","choices":[{"delta":{},"finish_reason":"stop"}]}`,
		`data: [DONE]`,
	})
	defer server.Close()

	client := newTestClient(server.URL)
	chunks, err := client.Stream(context.Background(), &CompletionRequest{
		Model:    "gpt-4o-mini",
		Messages: []Message{{Role: RoleUser, Content: "Say hello"}},
	})
	if err != nil {
		t.Fatalf("Stream failed: %v", err)
	}

	got := collectChunks(t, chunks)

	// Empty role frame and finish frame are not content chunks.
	if len(got) != 2 {
		t.Fatalf("expected exactly 2 chunks, got %d: %+v", len(got), got)
	}
	if got[0].Delta != "Hel" || got[1].Delta != "lo" {
		t.Errorf("chunks out of order: %+v", got)
	}
	for i, chunk := range got {
		if chunk.Err != nil {
			t.Errorf("chunk %d carries unexpected error: %v", i, chunk.Err)
		}
	}
}

func TestClient_Stream_StopsAtSentinel(t *testing.T) {
	// Content after [DONE] must never be emitted.
	server := sseServer(t, []string{
		`data: {"id":"chatcmpl-1","choices":[{"delta":{"content":"before"}}]}`,
		`data: [DONE]`,
		`data: {"id":"chatcmpl-1","choices":[{"delta":{"content":"after"}}]}`,
	})
	defer server.Close()

	client := newTestClient(server.URL)
	chunks, err := client.Stream(context.Background(), &CompletionRequest{
		Model:    "gpt-4o-mini",
		Messages: []Message{{Role: RoleUser, Content: "hi"}},
	})
	if err != nil {
		t.Fatalf("Stream failed: %v", err)
	}

	got := collectChunks(t, chunks)
	if len(got) != 1 || got[0].Delta != "before" {
		t.Errorf("expected single chunk %q, got %+v", "before", got)
	}
}

func TestClient_Stream_SkipsMalformedLines(t *testing.T) {
	var skipped []string
	server := sseServer(t, []string{
		`data: {"id":"chatcmpl-1","choices":[{"delta":{"content":"one"}}]}`,
		`data: {broken json`,
		`data: {"id":"chatcmpl-1","choices":[{"delta":{"content":"two"}}]}`,
		`data: [DONE]`,
	})
	defer server.Close()

	client := NewClient(Config{
		BaseURL: server.URL,
		APIKey:  "test-api-key",
		Timeout: 5 * time.Second,
		OnMalformedLine: func(line string) {
			skipped = append(skipped, line)
		},
	})

	chunks, err := client.Stream(context.Background(), &CompletionRequest{
		Model:    "gpt-4o-mini",
		Messages: []Message{{Role: RoleUser, Content: "hi"}},
	})
	if err != nil {
		t.Fatalf("Stream failed: %v", err)
	}

	got := collectChunks(t, chunks)
	if len(got) != 2 || got[0].Delta != "one" || got[1].Delta != "two" {
		t.Errorf("malformed line terminated stream: %+v", got)
	}
	if len(skipped) != 1 {
		t.Errorf("expected 1 malformed line observed, got %d", len(skipped))
	}
}

func TestClient_Stream_MissingCredential(t *testing.T) {
	client := NewClient(Config{BaseURL: "http://127.0.0.1:0", Timeout: time.Second})
	_, err := client.Stream(context.Background(), &CompletionRequest{
		Model:    "gpt-4o-mini",
		Messages: []Message{{Role: RoleUser, Content: "hi"}},
	})
	if err == nil {
		t.Fatal("expected ConfigError for missing credential")
	}
}

func TestClient_Stream_ContextCancellation(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		flusher := w.(http.Flusher)
		fmt.Fprintf(w, "data: {\"id\":\"chatcmpl-1\",\"choices\":[{\"delta\":{\"content\":\"first\"}}]}\n\n")
		flusher.Flush()
		// Hold the connection open until the test finishes.
		<-release
	}))
	defer server.Close()
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	client := newTestClient(server.URL)
	chunks, err := client.Stream(ctx, &CompletionRequest{
		Model:    "gpt-4o-mini",
		Messages: []Message{{Role: RoleUser, Content: "hi"}},
	})
	if err != nil {
		t.Fatalf("Stream failed: %v", err)
	}

	first := <-chunks
	if first.Delta != "first" {
		t.Fatalf("expected first chunk, got %+v", first)
	}

	cancel()

	// The channel must close promptly after cancellation.
	deadline := time.After(3 * time.Second)
	for {
		select {
		case _, ok := <-chunks:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("stream channel did not close after context cancellation")
		}
	}
}
