// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
)

// clock is a manually advanced time source.
type clock struct{ t time.Time }

func (c *clock) now() time.Time          { return c.t }
func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestLimiter(t *testing.T, limit int, period time.Duration) (*RateLimiter, *clock) {
	t.Helper()
	c := &clock{t: time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)}
	rl := NewRateLimiter(limit, period)
	rl.now = c.now
	t.Cleanup(rl.Stop)
	return rl, c
}

func TestRateLimiterSlidingWindow(t *testing.T) {
	rl, c := newTestLimiter(t, 3, time.Minute)

	// Hits at 0s, 20s and 40s fill the window.
	for i := 0; i < 3; i++ {
		if v := rl.take("k"); !v.ok || v.remaining != 2-i {
			t.Fatalf("hit %d = %+v", i+1, v)
		}
		c.advance(20 * time.Second)
	}

	// At 60s the first hit is exactly one period old and no longer counts.
	if v := rl.take("k"); !v.ok {
		t.Fatalf("hit at the window edge rejected: %+v", v)
	}

	c.advance(5 * time.Second)
	v := rl.take("k")
	if v.ok {
		t.Fatal("fifth hit admitted with a full window")
	}
	// Oldest counted hit is at 20s, so room opens at 80s; now is 65s.
	if v.retryIn != 15*time.Second {
		t.Errorf("retryIn = %v, want 15s", v.retryIn)
	}

	if v := rl.take("other"); !v.ok {
		t.Error("separate key shares the budget")
	}
}

func TestRateLimiterSweep(t *testing.T) {
	rl, c := newTestLimiter(t, 5, time.Minute)

	rl.take("idle")
	c.advance(45 * time.Second)
	rl.take("busy")
	c.advance(30 * time.Second)

	if n := rl.sweep(); n != 1 {
		t.Errorf("sweep left %d keys, want 1", n)
	}
	if _, ok := rl.keys["idle"]; ok {
		t.Error("idle key kept")
	}
	if got := len(rl.keys["busy"]); got != 1 {
		t.Errorf("busy key holds %d hits", got)
	}
}

func TestRateLimiterMiddlewareHeaders(t *testing.T) {
	rl, c := newTestLimiter(t, 2, time.Minute)
	h := rl.Middleware(ByClientIP)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	send := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/ai/summary", nil)
		req.RemoteAddr = "203.0.113.7:41000"
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		return rr
	}

	for _, wantRemaining := range []string{"1", "0"} {
		rr := send()
		if rr.Code != http.StatusOK {
			t.Fatalf("status = %d", rr.Code)
		}
		if rr.Header().Get("X-RateLimit-Limit") != "2" || rr.Header().Get("X-RateLimit-Remaining") != wantRemaining {
			t.Errorf("headers = %v", rr.Header())
		}
		c.advance(10 * time.Second)
	}

	rr := send()
	if rr.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", rr.Code)
	}
	// First hit at 0s, now 20s: 40s left.
	if got := rr.Header().Get("Retry-After"); got != "40" {
		t.Errorf("Retry-After = %q, want 40", got)
	}
	if rr.Body.String() != `{"error":"too many requests, try again later"}` {
		t.Errorf("body = %q", rr.Body.String())
	}

	c.advance(40 * time.Second)
	if rr := send(); rr.Code != http.StatusOK {
		t.Errorf("status after the window moved = %d", rr.Code)
	}
}

func TestRateLimiterRetryAfterRoundsUp(t *testing.T) {
	rl, c := newTestLimiter(t, 1, time.Second)
	rl.take("k")
	c.advance(999 * time.Millisecond)

	h := rl.Middleware(func(*http.Request) string { return "k" })(http.NotFoundHandler())
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if got := rr.Header().Get("Retry-After"); got != "1" {
		t.Errorf("Retry-After = %q, want 1", got)
	}
}

func TestByFormSessionGivesEachFormItsOwnBudget(t *testing.T) {
	rl, _ := newTestLimiter(t, 1, time.Minute)

	r := chi.NewRouter()
	r.With(rl.Middleware(ByFormSession)).Post("/forms/posts/{sid}/generate", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	send := func(sid, addr string) int {
		req := httptest.NewRequest(http.MethodPost, "/forms/posts/"+sid+"/generate", nil)
		req.RemoteAddr = addr
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		return rr.Code
	}

	tests := []struct {
		name string
		sid  string
		addr string
		want int
	}{
		{"first form", "f1", "198.51.100.1:5000", http.StatusOK},
		{"same form again", "f1", "198.51.100.1:5001", http.StatusTooManyRequests},
		{"second form, same client", "f2", "198.51.100.1:5000", http.StatusOK},
		{"first form, other client", "f1", "198.51.100.2:5000", http.StatusOK},
	}
	for _, tt := range tests {
		if got := send(tt.sid, tt.addr); got != tt.want {
			t.Errorf("%s: status = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestKeyFuncs(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/ai/summary", nil)
	req.RemoteAddr = "198.51.100.9:7000"

	if got := ByClientIP(req); got != "198.51.100.9" {
		t.Errorf("ByClientIP = %q", got)
	}
	if got := ByFormSession(req); got != "198.51.100.9" {
		t.Errorf("ByFormSession without sid = %q", got)
	}

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("sid", "abc")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	if got := ByFormSession(req); got != "form:abc|198.51.100.9" {
		t.Errorf("ByFormSession = %q", got)
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		xff, xri   string
		remoteAddr string
		want       string
	}{
		{"forwarded chain", "10.0.0.1, 172.16.0.1", "", "192.168.1.1:1234", "10.0.0.1"},
		{"forwarded single", " 10.0.0.3 ", "", "192.168.1.1:1234", "10.0.0.3"},
		{"real ip", "", "10.0.0.2", "192.168.1.1:1234", "10.0.0.2"},
		{"remote v4", "", "", "192.168.1.1:1234", "192.168.1.1"},
		{"remote v6", "", "", "[2001:db8::1]:8080", "2001:db8::1"},
		{"remote without port", "", "", "192.168.1.1", "192.168.1.1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.xff != "" {
				req.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.xri != "" {
				req.Header.Set("X-Real-IP", tt.xri)
			}
			if got := clientIP(req); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
