package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"kpidash/internal/transport/http/api"
)

type RateLimitKeyFunc func(r *http.Request) string

// idleLimiterTTL bounds how long an unused per-client limiter is kept.
const idleLimiterTTL = 10 * time.Minute

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type rateLimiter struct {
	mu        sync.Mutex
	perMinute int
	limit     rate.Limit
	burst     int
	keyFn     RateLimitKeyFunc
	clients   map[string]*clientLimiter
	now       func() time.Time
	lastSweep time.Time
}

// RateLimit allows perMinute requests per key with a token bucket whose burst
// equals perMinute. Keys default to the client IP.
func RateLimit(perMinute int, keyFn RateLimitKeyFunc) func(http.Handler) http.Handler {
	rl := newRateLimiter(perMinute, keyFn)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !rl.enforce(w, r) {
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// LoginRateLimit throttles credential checks per client IP.
func LoginRateLimit(perMinute int) func(http.Handler) http.Handler {
	return RateLimit(perMinute, ClientIPKey)
}

func newRateLimiter(perMinute int, keyFn RateLimitKeyFunc) *rateLimiter {
	if keyFn == nil {
		keyFn = ClientIPKey
	}
	return &rateLimiter{
		perMinute: perMinute,
		limit:     rate.Limit(float64(perMinute) / 60.0),
		burst:     max(perMinute, 1),
		keyFn:     keyFn,
		clients:   map[string]*clientLimiter{},
		now:       time.Now,
	}
}

func (rl *rateLimiter) limiterFor(key string) *rate.Limiter {
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	if now.Sub(rl.lastSweep) > idleLimiterTTL {
		for k, c := range rl.clients {
			if now.Sub(c.lastSeen) > idleLimiterTTL {
				delete(rl.clients, k)
			}
		}
		rl.lastSweep = now
	}

	c, ok := rl.clients[key]
	if !ok {
		c = &clientLimiter{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.clients[key] = c
	}
	c.lastSeen = now
	return c.limiter
}

func (rl *rateLimiter) enforce(w http.ResponseWriter, r *http.Request) bool {
	if rl.perMinute <= 0 {
		return true
	}

	key := rl.keyFn(r)
	if key == "" {
		key = ClientIPKey(r)
	}
	limiter := rl.limiterFor(key)
	reservation := limiter.ReserveN(rl.now(), 1)
	delay := reservation.DelayFrom(rl.now())

	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(rl.perMinute))
	if delay == 0 {
		return true
	}
	reservation.CancelAt(rl.now())

	retryAfter := max(int(delay.Seconds()), 1)
	w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
	slog.Warn("rate limit exceeded",
		"key", key,
		"path", r.URL.Path,
		"method", r.Method,
		"perMinute", rl.perMinute,
	)
	api.Fail(w, http.StatusTooManyRequests, "rate_limited", "too many requests", GetRequestID(r.Context()))
	return false
}

func ClientIPKey(r *http.Request) string {
	if fwd := strings.TrimSpace(r.Header.Get("X-Forwarded-For")); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if value := strings.TrimSpace(first); value != "" {
			return value
		}
	}
	host, _, err := net.SplitHostPort(strings.TrimSpace(r.RemoteAddr))
	if err == nil && host != "" {
		return host
	}
	return strings.TrimSpace(r.RemoteAddr)
}
