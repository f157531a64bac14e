package server

import (
	"crypto/subtle"
	"net"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/ActionEngine_Go/internal/logger"
)

func isPublic(path string) bool {
	for _, p := range PublicPaths {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// window is a fixed per-client counting window. It lives in the LRU until
// the LRU's TTL drops it, so the first request of a client opens the window.
type window struct {
	requests   int
	failedAuth int
}

// ClientLimiter counts requests and failed logins per client IP over a fixed
// window. Idle clients age out of the LRU.
type ClientLimiter struct {
	mu      sync.Mutex
	limit   int
	clients *expirable.LRU[string, *window]
}

// NewClientLimiter allows limit requests per client within each window
func NewClientLimiter(limit int, every time.Duration) *ClientLimiter {
	if limit <= 0 {
		limit = DefaultRateLimit
	}
	if every <= 0 {
		every = DefaultRateLimitWindow
	}
	return &ClientLimiter{
		limit:   limit,
		clients: expirable.NewLRU[string, *window](MaxTrackedClients, nil, every),
	}
}

func (l *ClientLimiter) get(ip string) *window {
	w, ok := l.clients.Get(ip)
	if !ok {
		w = &window{}
		l.clients.Add(ip, w)
	}
	return w
}

// Allow records a request and reports whether the client is under its limit
func (l *ClientLimiter) Allow(ip string) (bool, int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	w := l.get(ip)
	w.requests++
	return w.requests <= l.limit, w.requests
}

// RecordFailedAuth counts a failed login and returns the count in the window
func (l *ClientLimiter) RecordFailedAuth(ip string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	w := l.get(ip)
	w.failedAuth++
	return w.failedAuth
}

// AuthMiddleware requires the X-API-Key header on non-public paths. An empty
// apiKey disables the check.
func AuthMiddleware(apiKey string, trustedProxies []string, limiter *ClientLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if apiKey == "" || isPublic(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			provided := r.Header.Get(HeaderAPIKey)
			if subtle.ConstantTimeCompare([]byte(provided), []byte(apiKey)) != 1 {
				ip := clientIP(r, trustedProxies)
				log := logger.FromContext(r.Context())
				log.Warn(LogMsgAuthFailed, "path", r.URL.Path, "has_key", provided != "", "ip", ip)
				if n := limiter.RecordFailedAuth(ip); n >= FailedAuthAlertAt {
					log.Warn(LogMsgRepeatedAuthFail, "ip", ip, "count", n)
				}
				http.Error(w, ErrMsgUnauthorized, http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RateLimitMiddleware rejects clients above their request budget with 429
func RateLimitMiddleware(trustedProxies []string, limiter *ClientLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r, trustedProxies)
			if ok, n := limiter.Allow(ip); !ok {
				if n%RateLimitLogEvery == 0 {
					logger.FromContext(r.Context()).Warn(LogMsgRateLimited, "ip", ip, "count", n)
				}
				http.Error(w, ErrMsgTooManyRequests, http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequestSizeLimitMiddleware limits request body size
func RequestSizeLimitMiddleware(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

// SecurityHeadersMiddleware adds security headers to responses
func SecurityHeadersMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(HeaderContentType, HeaderValueNoSniff)
		w.Header().Set(HeaderFrameOptions, HeaderValueDeny)
		w.Header().Set(HeaderReferrerPolicy, HeaderValueReferrerStrictOrigin)
		next.ServeHTTP(w, r)
	})
}

// clientIP trusts X-Forwarded-For only when the direct peer is a trusted
// proxy, and then takes the rightmost hop
func clientIP(r *http.Request, trustedProxies []string) string {
	remote, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		remote = r.RemoteAddr
	}
	if !slices.Contains(trustedProxies, remote) {
		return remote
	}
	forwarded := r.Header.Get(HeaderForwardedFor)
	if forwarded == "" {
		return remote
	}
	hops := strings.Split(forwarded, ",")
	return strings.TrimSpace(hops[len(hops)-1])
}
