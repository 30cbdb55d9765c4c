package middleware

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/prismflow/gateway/pkg/proxy/types"
)

// RateLimiter is a token bucket enforcing a gateway-wide request
// ceiling. The bucket holds one minute's worth of tokens and refills
// continuously at the configured per-minute rate.
type RateLimiter struct {
	mu         sync.Mutex
	capacity   float64
	tokens     float64
	refillRate float64 // tokens per second
	lastRefill time.Time
}

// NewRateLimiter creates a limiter allowing requestsPerMinute requests.
// A non-positive rate disables limiting.
func NewRateLimiter(requestsPerMinute int) *RateLimiter {
	if requestsPerMinute <= 0 {
		return nil
	}
	capacity := float64(requestsPerMinute)
	return &RateLimiter{
		capacity:   capacity,
		tokens:     capacity,
		refillRate: capacity / 60,
		lastRefill: time.Now(),
	}
}

// Allow consumes one token, reporting whether the request may proceed.
func (l *RateLimiter) Allow() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	l.tokens += now.Sub(l.lastRefill).Seconds() * l.refillRate
	if l.tokens > l.capacity {
		l.tokens = l.capacity
	}
	l.lastRefill = now

	if l.tokens < 1 {
		return false
	}
	l.tokens--
	return true
}

// RateLimitMiddleware rejects requests over the gateway's ceiling with
// 429 and the uniform error envelope. A nil limiter passes everything
// through.
func RateLimitMiddleware(limiter *RateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if limiter == nil || limiter.Allow() {
				next.ServeHTTP(w, r)
				return
			}

			errResp := types.NewErrorResponse(
				"Rate limit exceeded. Retry shortly.",
				GetRequestID(r.Context()),
			)

			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusTooManyRequests)
			_ = json.NewEncoder(w).Encode(errResp)
		})
	}
}
