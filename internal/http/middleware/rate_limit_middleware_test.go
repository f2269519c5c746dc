package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type mockLimiter struct {
	allow bool
	retry time.Duration
	err   error
}

func (m mockLimiter) Allow(context.Context, string, int, time.Duration) (bool, time.Duration, error) {
	return m.allow, m.retry, m.err
}

type recordingLimiter struct {
	lastKey string
}

func (r *recordingLimiter) Allow(_ context.Context, key string, _ int, _ time.Duration) (bool, time.Duration, error) {
	r.lastKey = key
	return true, 0, nil
}

func serveThroughLimiterForTest(rl *RateLimiter, remoteAddr string) *httptest.ResponseRecorder {
	h := rl.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	req := httptest.NewRequest(http.MethodGet, "/api/v1/blogs", nil)
	req.RemoteAddr = remoteAddr
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestDistributedRateLimiterFailOpenOnBackendError(t *testing.T) {
	rl := NewDistributedRateLimiter(mockLimiter{err: errors.New("redis down")}, 10, time.Minute, FailOpen, "api")
	if rr := serveThroughLimiterForTest(rl, "10.0.0.1:1111"); rr.Code != http.StatusOK {
		t.Fatalf("expected fail-open to allow request, got %d", rr.Code)
	}
}

func TestDistributedRateLimiterFailClosedOnBackendError(t *testing.T) {
	rl := NewDistributedRateLimiter(mockLimiter{err: errors.New("redis down")}, 10, time.Minute, FailClosed, "auth")
	rr := serveThroughLimiterForTest(rl, "10.0.0.1:1111")
	if rr.Code != http.StatusTooManyRequests {
		t.Fatalf("expected fail-closed to reject request, got %d", rr.Code)
	}
	if got := rr.Header().Get("Retry-After"); got != "60" {
		t.Fatalf("expected window as retry-after, got %q", got)
	}
}

func TestRateLimiterDenyWritesEnvelope(t *testing.T) {
	rl := NewDistributedRateLimiter(mockLimiter{retry: 1500 * time.Millisecond}, 10, time.Minute, FailClosed, "api")
	rr := serveThroughLimiterForTest(rl, "10.0.0.1:1111")
	if rr.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rr.Code)
	}
	if got := rr.Header().Get("Retry-After"); got != "2" {
		t.Fatalf("expected rounded-up retry-after, got %q", got)
	}
	code, message := errorBodyForTest(t, rr)
	if code != "RATE_LIMITED" || message != "Too many requests" {
		t.Fatalf("unexpected error %s %q", code, message)
	}
}

func TestRateLimiterKeysByScopeAndClientIP(t *testing.T) {
	rec := &recordingLimiter{}
	rl := NewDistributedRateLimiter(rec, 10, time.Minute, FailOpen, "auth")
	serveThroughLimiterForTest(rl, "203.0.113.9:5555")
	if rec.lastKey != "auth:203.0.113.9" {
		t.Fatalf("unexpected limiter key %q", rec.lastKey)
	}
}

func TestLocalFixedWindowLimiter(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute, "api")
	for i := 0; i < 2; i++ {
		if rr := serveThroughLimiterForTest(rl, "192.0.2.1:1"); rr.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i+1, rr.Code)
		}
	}
	if rr := serveThroughLimiterForTest(rl, "192.0.2.1:1"); rr.Code != http.StatusTooManyRequests {
		t.Fatalf("expected third request throttled, got %d", rr.Code)
	}
	if rr := serveThroughLimiterForTest(rl, "192.0.2.2:1"); rr.Code != http.StatusOK {
		t.Fatalf("expected other client unaffected, got %d", rr.Code)
	}
}

func TestLocalFixedWindowLimiterWindowResets(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	l := NewLocalFixedWindowLimiter().(*localFixedWindowLimiter)
	l.now = func() time.Time { return now }
	ctx := context.Background()

	if ok, _, _ := l.Allow(ctx, "k", 1, time.Minute); !ok {
		t.Fatal("expected first request allowed")
	}
	ok, retry, _ := l.Allow(ctx, "k", 1, time.Minute)
	if ok || retry != time.Minute {
		t.Fatalf("expected deny with full window, got ok=%v retry=%v", ok, retry)
	}
	now = now.Add(time.Minute)
	if ok, _, _ := l.Allow(ctx, "k", 1, time.Minute); !ok {
		t.Fatal("expected allow after window elapsed")
	}
}

func TestRetryAfterHeader(t *testing.T) {
	cases := map[time.Duration]string{
		0:                       "1",
		-time.Second:            "1",
		time.Millisecond:        "1",
		time.Second:             "1",
		1001 * time.Millisecond: "2",
		90 * time.Second:        "90",
	}
	for in, want := range cases {
		if got := RetryAfterHeader(in); got != want {
			t.Fatalf("RetryAfterHeader(%v) = %q want %q", in, got, want)
		}
	}
}
