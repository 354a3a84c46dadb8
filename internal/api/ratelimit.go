package api

import (
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// RateLimiterConfig holds rate limiter configuration.
type RateLimiterConfig struct {
	RequestsPerMinute int
	BurstSize         int
}

// bucket tracks one client's token balance. Refill parameters live on
// the limiter; the bucket only carries state.
type bucket struct {
	mu     sync.Mutex
	tokens float64
	last   time.Time
}

// refillLocked advances the balance to now. Caller holds mu.
func (b *bucket) refillLocked(capacity, perSecond float64, now time.Time) {
	b.tokens += now.Sub(b.last).Seconds() * perSecond
	if b.tokens > capacity {
		b.tokens = capacity
	}
	b.last = now
}

// take consumes one token if available.
func (b *bucket) take(capacity, perSecond float64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.refillLocked(capacity, perSecond, time.Now())
	if b.tokens < 1.0 {
		return false
	}
	b.tokens--
	return true
}

// snapshot reports the whole tokens remaining and when the bucket will
// be full again, without consuming anything.
func (b *bucket) snapshot(capacity, perSecond float64) (remaining int, fullAt time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	b.refillLocked(capacity, perSecond, now)
	if b.tokens >= capacity {
		return int(b.tokens), now
	}
	wait := (capacity - b.tokens) / perSecond
	return int(b.tokens), now.Add(time.Duration(wait * float64(time.Second)))
}

// RateLimiter applies a per-client-IP token bucket to lookup traffic.
type RateLimiter struct {
	mu        sync.Mutex
	buckets   map[string]*bucket
	perMinute int
	capacity  float64
	perSecond float64
	staleTTL  time.Duration
}

// NewRateLimiter creates a rate limiter and starts its stale-bucket
// sweeper.
func NewRateLimiter(config RateLimiterConfig) *RateLimiter {
	rl := &RateLimiter{
		buckets:   make(map[string]*bucket),
		perMinute: config.RequestsPerMinute,
		capacity:  float64(config.BurstSize),
		perSecond: float64(config.RequestsPerMinute) / 60.0,
		staleTTL:  5 * time.Minute,
	}
	go rl.sweep()
	return rl
}

func (rl *RateLimiter) bucketFor(ip string) *bucket {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	b, ok := rl.buckets[ip]
	if !ok {
		b = &bucket{tokens: rl.capacity, last: time.Now()}
		rl.buckets[ip] = b
	}
	return b
}

// sweep drops buckets for clients that have gone quiet, so the map does
// not grow with every IP ever seen.
func (rl *RateLimiter) sweep() {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		cutoff := time.Now().Add(-rl.staleTTL)
		rl.mu.Lock()
		for ip, b := range rl.buckets {
			b.mu.Lock()
			stale := b.last.Before(cutoff)
			b.mu.Unlock()
			if stale {
				delete(rl.buckets, ip)
			}
		}
		rl.mu.Unlock()
	}
}

// Allow reports whether a request from the given IP may proceed.
func (rl *RateLimiter) Allow(ip string) bool {
	return rl.bucketFor(ip).take(rl.capacity, rl.perSecond)
}

// Middleware enforces the limit and attaches the standard X-RateLimit-*
// headers; over-limit requests get a 429 with Retry-After.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b := rl.bucketFor(getClientIP(r))
		remaining, fullAt := b.snapshot(rl.capacity, rl.perSecond)

		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", rl.perMinute))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", fullAt.Unix()))

		if !b.take(rl.capacity, rl.perSecond) {
			retryAfter := int(time.Until(fullAt).Seconds()) + 1
			w.Header().Set("Retry-After", fmt.Sprintf("%d", retryAfter))
			respondError(w, http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED",
				fmt.Sprintf("Rate limit exceeded. Try again in %d seconds.", retryAfter))
			return
		}

		next.ServeHTTP(w, r)
	})
}

// getClientIP resolves the client address for rate limiting, preferring
// proxy headers over RemoteAddr. Values that do not parse as an IP are
// ignored rather than trusted.
func getClientIP(r *http.Request) string {
	// Leftmost X-Forwarded-For entry is the original client.
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		if ip := strings.TrimSpace(first); net.ParseIP(ip) != nil {
			return ip
		}
	}

	if realIP := strings.TrimSpace(r.Header.Get("X-Real-IP")); net.ParseIP(realIP) != nil {
		return realIP
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	if net.ParseIP(host) != nil {
		return host
	}
	return "unknown"
}
