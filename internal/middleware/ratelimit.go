package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

// RateLimiter throttles callers to a fixed number of requests per window,
// keyed by client address. It is meant for the credential endpoints, where
// every request carries a password guess.
type RateLimiter struct {
	limit  int
	window time.Duration

	mu        sync.Mutex
	buckets   map[string]*bucket
	lastSweep time.Time
}

type bucket struct {
	count   int
	resetAt time.Time
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	if limit <= 0 || window <= 0 {
		return &RateLimiter{}
	}

	return &RateLimiter{
		limit:     limit,
		window:    window,
		buckets:   make(map[string]*bucket),
		lastSweep: time.Now(),
	}
}

func (r *RateLimiter) Middleware(next http.Handler) http.Handler {
	if r == nil || r.limit == 0 {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if retryAfter, throttled := r.take(clientKey(req)); throttled {
			w.Header().Set("Retry-After", strconv.Itoa(retrySeconds(retryAfter)))
			http.Error(w, "too many requests, slow down", http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, req)
	})
}

// take records one request against key. When the key is over its limit it
// returns how long the caller should wait before retrying.
func (r *RateLimiter) take(key string) (time.Duration, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	r.sweep(now)

	b, ok := r.buckets[key]
	if !ok || !now.Before(b.resetAt) {
		r.buckets[key] = &bucket{count: 1, resetAt: now.Add(r.window)}
		return 0, false
	}

	if b.count >= r.limit {
		return b.resetAt.Sub(now), true
	}

	b.count++
	return 0, false
}

// sweep drops buckets whose window has passed. It runs at most once per
// window so a one-off caller does not pin a map entry forever.
func (r *RateLimiter) sweep(now time.Time) {
	if now.Sub(r.lastSweep) < r.window {
		return
	}
	r.lastSweep = now

	for key, b := range r.buckets {
		if !now.Before(b.resetAt) {
			delete(r.buckets, key)
		}
	}
}

func retrySeconds(d time.Duration) int {
	secs := int(d / time.Second)
	if secs < 1 {
		return 1
	}
	return secs
}

func clientKey(r *http.Request) string {
	if r == nil {
		return "unknown"
	}

	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}

	host := r.RemoteAddr
	if idx := strings.LastIndex(host, ":"); idx > 0 {
		return host[:idx]
	}
	return host
}
