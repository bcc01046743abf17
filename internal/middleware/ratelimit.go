// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
)

// KeyFunc picks the bucket a request is counted against.
type KeyFunc func(r *http.Request) string

// ByClientIP counts requests per client address.
func ByClientIP(r *http.Request) string {
	return clientIP(r)
}

// ByFormSession counts requests per form session and client address, so
// every open form gets its own budget. Outside a {sid} route it behaves
// like ByClientIP.
func ByFormSession(r *http.Request) string {
	sid := chi.URLParam(r, "sid")
	if sid == "" {
		return clientIP(r)
	}
	return "form:" + sid + "|" + clientIP(r)
}

// hits are the admitted request times of one key, oldest first.
type hits []time.Time

// since drops the times at or before cutoff.
func (h hits) since(cutoff time.Time) hits {
	i := 0
	for i < len(h) && !h[i].After(cutoff) {
		i++
	}
	return append(h[:0], h[i:]...)
}

// verdict is the outcome of one admission check.
type verdict struct {
	ok        bool
	remaining int
	retryIn   time.Duration
}

// RateLimiter admits at most limit requests per key in any span of period.
type RateLimiter struct {
	limit  int
	period time.Duration
	now    func() time.Time

	mu   sync.Mutex
	keys map[string]hits

	stopCh chan struct{}
	once   sync.Once
}

// NewRateLimiter creates a sliding-window limiter and starts a goroutine
// that forgets idle keys.
func NewRateLimiter(limit int, period time.Duration) *RateLimiter {
	rl := &RateLimiter{
		limit:  max(limit, 1),
		period: period,
		now:    time.Now,
		keys:   make(map[string]hits),
		stopCh: make(chan struct{}),
	}

	go func() {
		ticker := time.NewTicker(max(period, time.Minute))
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if n := rl.sweep(); n > 0 {
					slog.Debug("rate limiter keys active", "keys", n)
				}
			case <-rl.stopCh:
				return
			}
		}
	}()

	return rl
}

// Stop terminates the background sweeper.
func (rl *RateLimiter) Stop() {
	rl.once.Do(func() { close(rl.stopCh) })
}

// take records a request for key if the window has room.
func (rl *RateLimiter) take(key string) verdict {
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	h := rl.keys[key].since(now.Add(-rl.period))
	if len(h) >= rl.limit {
		rl.keys[key] = h
		return verdict{retryIn: h[0].Add(rl.period).Sub(now)}
	}
	h = append(h, now)
	rl.keys[key] = h
	return verdict{ok: true, remaining: rl.limit - len(h)}
}

// sweep forgets keys without hits in the current window and returns how
// many keys are left.
func (rl *RateLimiter) sweep() int {
	cutoff := rl.now().Add(-rl.period)

	rl.mu.Lock()
	defer rl.mu.Unlock()

	for k, h := range rl.keys {
		if h = h.since(cutoff); len(h) == 0 {
			delete(rl.keys, k)
		} else {
			rl.keys[k] = h
		}
	}
	return len(rl.keys)
}

// Middleware limits requests per the bucket key returns. Every response
// carries X-RateLimit-Limit and X-RateLimit-Remaining; a rejected one also
// carries Retry-After, counted from the oldest request in the window.
func (rl *RateLimiter) Middleware(key KeyFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			k := key(r)
			v := rl.take(k)

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(rl.limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(v.remaining))
			if !v.ok {
				secs := int(math.Ceil(v.retryIn.Seconds()))
				w.Header().Set("Retry-After", strconv.Itoa(max(secs, 1)))
				slog.Warn("rate limit exceeded", "key", k, "path", r.URL.Path, "retry_in", v.retryIn)
				writeError(w, http.StatusTooManyRequests, "too many requests, try again later")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP returns the leftmost X-Forwarded-For address, then X-Real-IP,
// then the host part of RemoteAddr.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		return xri
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
