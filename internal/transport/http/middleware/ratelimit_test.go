package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRateLimiterBlocksAndRecovers(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	rl := newRateLimiter(2, ClientIPKey)
	rl.now = func() time.Time { return now }

	send := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil)
		req.RemoteAddr = "203.0.113.10:4444"
		rec := httptest.NewRecorder()
		if rl.enforce(rec, req) {
			rec.WriteHeader(http.StatusNoContent)
		}
		return rec
	}

	for i := 0; i < 2; i++ {
		if rec := send(); rec.Code != http.StatusNoContent {
			t.Fatalf("request %d: expected pass, got %d", i+1, rec.Code)
		}
	}

	blocked := send()
	if blocked.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", blocked.Code)
	}
	if blocked.Header().Get("Retry-After") != "30" {
		t.Fatalf("expected Retry-After 30, got %q", blocked.Header().Get("Retry-After"))
	}

	now = now.Add(31 * time.Second)
	if rec := send(); rec.Code != http.StatusNoContent {
		t.Fatalf("expected recovery after refill, got %d", rec.Code)
	}
}

func TestRateLimitSeparatesClients(t *testing.T) {
	limited := LoginRateLimit(1)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	for _, addr := range []string{"198.51.100.1:1000", "198.51.100.2:1000"} {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		limited.ServeHTTP(rec, req)
		if rec.Code != http.StatusNoContent {
			t.Fatalf("expected first request from %s to pass, got %d", addr, rec.Code)
		}
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil)
	req.RemoteAddr = "198.51.100.9:1000"
	req.Header.Set("X-Forwarded-For", "198.51.100.1, 10.0.0.1")
	rec := httptest.NewRecorder()
	limited.ServeHTTP(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected forwarded client to be throttled, got %d", rec.Code)
	}
}

func TestRateLimitDisabled(t *testing.T) {
	rl := newRateLimiter(0, nil)
	for i := 0; i < 5; i++ {
		if !rl.enforce(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil)) {
			t.Fatal("expected disabled limiter to pass")
		}
	}
}
