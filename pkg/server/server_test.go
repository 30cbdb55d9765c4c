package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prismflow/gateway/pkg/config"
	"github.com/prismflow/gateway/pkg/processing/costs"
	"github.com/prismflow/gateway/pkg/processing/tokens"
	"github.com/prismflow/gateway/pkg/proxy/handlers"
	"github.com/prismflow/gateway/pkg/telemetry/health"
	"github.com/prismflow/gateway/pkg/telemetry/metrics"
	"github.com/prismflow/gateway/pkg/upstream"
)

type stubCompleter struct{}

func (s *stubCompleter) Complete(ctx context.Context, req *upstream.CompletionRequest) (*upstream.Completion, error) {
	return &upstream.Completion{
		ID:           "chatcmpl-test",
		Content:      "hello from upstream",
		FinishReason: upstream.FinishReasonStop,
		Usage:        upstream.TokenUsage{PromptTokens: 5, CompletionTokens: 4},
	}, nil
}

func (s *stubCompleter) Stream(ctx context.Context, req *upstream.CompletionRequest) (<-chan upstream.StreamChunk, error) {
	ch := make(chan upstream.StreamChunk, 2)
	ch <- upstream.StreamChunk{Delta: "hello"}
	close(ch)
	return ch, nil
}

func newTestServer(t *testing.T) *Server {
	t.Helper()

	var cfg config.Config
	config.ApplyDefaults(&cfg)

	collector := metrics.NewCollector(metrics.Config{
		Enabled:   true,
		Namespace: "prismflow",
		Subsystem: "gateway",
	}, nil)

	chat := handlers.NewChatHandler(
		&stubCompleter{},
		costs.NewEstimator(nil),
		costs.NewTracker(),
		tokens.NewEstimator("gpt-4o-mini"),
		collector,
	)

	checker := health.New(0)
	checker.RegisterCheck("upstream", func(ctx context.Context) error { return nil })

	return NewServer(&cfg, Deps{
		Chat:    chat,
		Stream:  &handlers.StreamHandler{Chat: chat},
		Health:  checker,
		Metrics: collector,
		Build:   BuildInfo{Version: "test"},
	})
}

func TestServer_Routes(t *testing.T) {
	handler := newTestServer(t).Handler()

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
	}{
		{
			name:       "chat",
			method:     http.MethodPost,
			path:       "/v1/chat",
			body:       `{"messages": [{"role": "user", "content": "hi"}]}`,
			wantStatus: http.StatusOK,
		},
		{
			name:       "chat wrong method",
			method:     http.MethodGet,
			path:       "/v1/chat",
			wantStatus: http.StatusMethodNotAllowed,
		},
		{
			name:       "liveness",
			method:     http.MethodGet,
			path:       "/health",
			wantStatus: http.StatusOK,
		},
		{
			name:       "readiness",
			method:     http.MethodGet,
			path:       "/health/ready",
			wantStatus: http.StatusOK,
		},
		{
			name:       "version",
			method:     http.MethodGet,
			path:       "/version",
			wantStatus: http.StatusOK,
		},
		{
			name:       "metrics",
			method:     http.MethodGet,
			path:       "/metrics",
			wantStatus: http.StatusOK,
		},
		{
			name:       "unknown path",
			method:     http.MethodGet,
			path:       "/nope",
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body *strings.Reader
			if tt.body != "" {
				body = strings.NewReader(tt.body)
			} else {
				body = strings.NewReader("")
			}
			req := httptest.NewRequest(tt.method, tt.path, body)
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d; body %s", w.Code, tt.wantStatus, w.Body.String())
			}
		})
	}
}

func TestServer_RequestIDOnResponses(t *testing.T) {
	handler := newTestServer(t).Handler()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Header().Get("X-Request-ID") == "" {
		t.Error("X-Request-ID header missing")
	}
}

func TestServer_StreamRoute(t *testing.T) {
	handler := newTestServer(t).Handler()

	req := httptest.NewRequest(http.MethodPost, "/v1/chat/stream",
		strings.NewReader(`{"messages": [{"role": "user", "content": "hi"}]}`))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("content type = %q", ct)
	}
	if !strings.Contains(w.Body.String(), "event: done") {
		t.Errorf("missing done event in %q", w.Body.String())
	}
}

func TestServer_RateLimitApplied(t *testing.T) {
	var cfg config.Config
	config.ApplyDefaults(&cfg)
	cfg.Server.RateLimitPerMinute = 2

	base := newTestServer(t)
	srv := NewServer(&cfg, base.deps)
	handler := srv.Handler()

	var last int
	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
		last = w.Code
	}
	if last != http.StatusTooManyRequests {
		t.Errorf("status after burst = %d, want 429", last)
	}
}
