package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prismflow/gateway/pkg/proxy/types"
)

func TestRateLimiter_Allow(t *testing.T) {
	limiter := NewRateLimiter(3)

	for i := 0; i < 3; i++ {
		if !limiter.Allow() {
			t.Fatalf("request %d denied under capacity", i+1)
		}
	}
	if limiter.Allow() {
		t.Error("request over capacity allowed")
	}
}

func TestNewRateLimiter_Disabled(t *testing.T) {
	if NewRateLimiter(0) != nil {
		t.Error("zero rate should disable limiting")
	}
	if NewRateLimiter(-5) != nil {
		t.Error("negative rate should disable limiting")
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	t.Run("rejects over ceiling with 429", func(t *testing.T) {
		wrapped := RateLimitMiddleware(NewRateLimiter(1))(okHandler())

		w := httptest.NewRecorder()
		wrapped.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/v1/chat", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("first request status = %d, want 200", w.Code)
		}

		w = httptest.NewRecorder()
		wrapped.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/v1/chat", nil))
		if w.Code != http.StatusTooManyRequests {
			t.Fatalf("second request status = %d, want 429", w.Code)
		}

		var errResp types.ErrorResponse
		if err := json.NewDecoder(w.Body).Decode(&errResp); err != nil {
			t.Fatalf("decoding error envelope: %v", err)
		}
		if errResp.Error == "" {
			t.Error("error message missing from 429 envelope")
		}
		if got := w.Header().Get("Retry-After"); got == "" {
			t.Error("Retry-After header missing")
		}
	})

	t.Run("nil limiter passes everything", func(t *testing.T) {
		wrapped := RateLimitMiddleware(nil)(okHandler())

		for i := 0; i < 10; i++ {
			w := httptest.NewRecorder()
			wrapped.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/v1/chat", nil))
			if w.Code != http.StatusOK {
				t.Fatalf("request %d status = %d, want 200", i+1, w.Code)
			}
		}
	})
}
