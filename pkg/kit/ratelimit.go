package kit

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

const evictThreshold = 1024

// IPRateLimiter is a sliding-window limiter keyed by client address.
// X-Forwarded-For is ignored unless TrustForwardedFor is enabled, since
// any client can set it.
type IPRateLimiter struct {
	mu           sync.Mutex
	limit        int
	window       time.Duration
	hits         map[string][]time.Time
	now          func() time.Time
	trustForward bool
}

func NewIPRateLimiter(limit int, window time.Duration) *IPRateLimiter {
	return &IPRateLimiter{
		limit:  limit,
		window: window,
		hits:   make(map[string][]time.Time),
		now:    time.Now,
	}
}

// TrustForwardedFor keys requests on the first X-Forwarded-For entry.
// Enable it only behind a proxy that overwrites the header.
func (l *IPRateLimiter) TrustForwardedFor(trust bool) *IPRateLimiter {
	l.trustForward = trust
	return l
}

func (l *IPRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if l.Allow(clientIP(r, l.trustForward)) {
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Set("Retry-After", retryAfter(l.window))
		WriteError(w, r, http.StatusTooManyRequests, "too many requests", map[string]any{
			"limit":          l.limit,
			"window_seconds": int(l.window.Seconds()),
		})
	})
}

// Allow records a hit for key and reports whether it is within the limit.
func (l *IPRateLimiter) Allow(key string) bool {
	now := l.now()
	cutoff := now.Add(-l.window)

	l.mu.Lock()
	defer l.mu.Unlock()

	ts := prune(l.hits[key], cutoff)
	if len(ts) >= l.limit {
		l.hits[key] = ts
		return false
	}

	l.hits[key] = append(ts, now)
	if len(l.hits) > evictThreshold {
		l.evictIdle(cutoff)
	}
	return true
}

// evictIdle drops keys whose every hit is outside the window.
// Called with mu held.
func (l *IPRateLimiter) evictIdle(cutoff time.Time) {
	for k, ts := range l.hits {
		if len(ts) == 0 || !ts[len(ts)-1].After(cutoff) {
			delete(l.hits, k)
		}
	}
}

func prune(ts []time.Time, cutoff time.Time) []time.Time {
	n := 0
	for _, t := range ts {
		if t.After(cutoff) {
			ts[n] = t
			n++
		}
	}
	return ts[:n]
}

func retryAfter(d time.Duration) string {
	secs := int(d.Seconds())
	if secs < 1 {
		secs = 1
	}
	return strconv.Itoa(secs)
}

func clientIP(r *http.Request, trustForward bool) string {
	if trustForward {
		if ip := firstForwardedFor(r.Header.Get("X-Forwarded-For")); ip != "" {
			return ip
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return host
	}

	return r.RemoteAddr
}

func firstForwardedFor(xff string) string {
	if xff == "" {
		return ""
	}

	first, _, _ := strings.Cut(xff, ",")
	return strings.TrimSpace(first)
}
