package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
)

func TestRequestIDMiddleware(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetRequestID(r.Context()) == "" {
			t.Error("request ID missing from handler context")
		}
		w.WriteHeader(http.StatusOK)
	})

	wrapped := RequestIDMiddleware(handler)

	t.Run("assigns a UUID when not provided", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/chat", nil)
		w := httptest.NewRecorder()

		wrapped.ServeHTTP(w, req)

		requestID := w.Header().Get(RequestIDHeader)
		if requestID == "" {
			t.Fatal("X-Request-ID missing from response")
		}
		if _, err := uuid.Parse(requestID); err != nil {
			t.Errorf("X-Request-ID %q is not a UUID: %v", requestID, err)
		}
	})

	t.Run("honors a client-provided ID", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/chat", nil)
		req.Header.Set(RequestIDHeader, "client-id-12345")
		w := httptest.NewRecorder()

		wrapped.ServeHTTP(w, req)

		if got := w.Header().Get(RequestIDHeader); got != "client-id-12345" {
			t.Errorf("X-Request-ID = %q, want client-id-12345", got)
		}
	})

	t.Run("assigns distinct IDs per request", func(t *testing.T) {
		ids := make(map[string]bool)
		for i := 0; i < 5; i++ {
			w := httptest.NewRecorder()
			wrapped.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/v1/chat", nil))
			ids[w.Header().Get(RequestIDHeader)] = true
		}
		if len(ids) != 5 {
			t.Errorf("got %d distinct IDs across 5 requests", len(ids))
		}
	})
}

func TestGetRequestID_Absent(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	if got := GetRequestID(req.Context()); got != "" {
		t.Errorf("GetRequestID on bare context = %q, want empty", got)
	}
}
