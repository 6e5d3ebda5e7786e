package api

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

// RateLimiter caps requests per client IP over a fixed window. Coarse, but
// enough to keep a misbehaving driver from spinning the game.
type RateLimiter struct {
	mu     sync.Mutex
	seen   map[string]*visit
	limit  int
	window time.Duration
	lastGC time.Time
}

type visit struct {
	count   int
	resetAt time.Time
}

// NewRateLimiter allows limit requests per window per IP.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		seen:   make(map[string]*visit),
		limit:  limit,
		window: window,
		lastGC: time.Now(),
	}
}

// Allow consumes one request slot for ip, reporting whether it was available.
// A zero return comes with the seconds until the window reopens.
func (rl *RateLimiter) Allow(ip string) (bool, int) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	rl.sweep(now)

	v := rl.seen[ip]
	if v == nil || now.After(v.resetAt) {
		rl.seen[ip] = &visit{count: 1, resetAt: now.Add(rl.window)}
		return true, 0
	}
	if v.count < rl.limit {
		v.count++
		return true, 0
	}
	return false, int(v.resetAt.Sub(now).Seconds()) + 1
}

// sweep drops expired entries. Runs at most once per window; callers hold mu.
func (rl *RateLimiter) sweep(now time.Time) {
	if now.Sub(rl.lastGC) < rl.window {
		return
	}
	rl.lastGC = now
	for ip, v := range rl.seen {
		if now.After(v.resetAt) {
			delete(rl.seen, ip)
		}
	}
}

// RateLimitMiddleware rejects over-limit requests with 429 and a Retry-After
// hint.
func RateLimitMiddleware(rl *RateLimiter, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ok, retry := rl.Allow(clientIP(r))
		if !ok {
			w.Header().Set("Retry-After", strconv.Itoa(retry))
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}
		next(w, r)
	}
}

// clientIP prefers the first X-Forwarded-For hop, falling back to the
// connection's remote address.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if idx := strings.IndexByte(xff, ','); idx >= 0 {
			return strings.TrimSpace(xff[:idx])
		}
		return strings.TrimSpace(xff)
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
