package middleware

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	authPathPrefix   = "/api/v1/auth"
	limiterIdleAfter = 10 * time.Minute
	limiterPruneSize = 1000
)

type clientBuckets struct {
	general  *rate.Limiter
	auth     *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps a pair of token buckets per client address. The auth
// bucket is stricter so credential guessing on signup and login stays slow.
// A non-positive rate disables that bucket.
type RateLimiter struct {
	generalRPM int
	authRPM    int

	mu      sync.Mutex
	clients map[string]*clientBuckets
	now     func() time.Time
}

func NewRateLimiter(generalRPM int, authRPM int) *RateLimiter {
	return &RateLimiter{
		generalRPM: generalRPM,
		authRPM:    authRPM,
		clients:    map[string]*clientBuckets{},
		now:        time.Now,
	}
}

func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			next.ServeHTTP(w, r)
			return
		}

		buckets := l.bucketsFor(clientIP(r))
		bucket := buckets.general
		if strings.HasPrefix(strings.ToLower(r.URL.Path), authPathPrefix) {
			bucket = buckets.auth
		}

		if bucket != nil {
			if wait, ok := l.take(bucket); !ok {
				w.Header().Set("Retry-After", strconv.Itoa(retryAfterSeconds(wait)))
				writeEnvelope(w, http.StatusTooManyRequests, "too many requests", "")
				return
			}
		}

		next.ServeHTTP(w, r)
	})
}

// take consumes one token, or reports how long until one is available.
func (l *RateLimiter) take(bucket *rate.Limiter) (time.Duration, bool) {
	now := l.now()
	reservation := bucket.ReserveN(now, 1)
	if !reservation.OK() {
		return time.Minute, false
	}
	if wait := reservation.DelayFrom(now); wait > 0 {
		reservation.CancelAt(now)
		return wait, false
	}
	return 0, true
}

func (l *RateLimiter) bucketsFor(ip string) *clientBuckets {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if b, ok := l.clients[ip]; ok {
		b.lastSeen = now
		return b
	}

	if len(l.clients) >= limiterPruneSize {
		cutoff := now.Add(-limiterIdleAfter)
		for key, b := range l.clients {
			if b.lastSeen.Before(cutoff) {
				delete(l.clients, key)
			}
		}
	}

	b := &clientBuckets{general: perMinute(l.generalRPM), auth: perMinute(l.authRPM), lastSeen: now}
	l.clients[ip] = b
	return b
}

func retryAfterSeconds(wait time.Duration) int {
	return max(1, int(wait.Round(time.Second)/time.Second))
}

func perMinute(rpm int) *rate.Limiter {
	if rpm <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Limit(float64(rpm)/60), rpm)
}

// clientIP prefers the first X-Forwarded-For hop, then X-Real-IP, then the
// socket peer.
func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}

	if realIP := strings.TrimSpace(r.Header.Get("X-Real-IP")); realIP != "" {
		return realIP
	}

	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil && host != "" {
		return host
	}
	if r.RemoteAddr == "" {
		return "unknown"
	}
	return r.RemoteAddr
}
