package http

import (
	"context"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/mind-engage/mindengage-marking/internal/metrics"
)

// RequestLogger writes one log entry per request.
func RequestLogger(log logrus.FieldLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			entry := log.WithFields(logrus.Fields{
				"request_id":  middleware.GetReqID(r.Context()),
				"method":      r.Method,
				"path":        r.URL.Path,
				"route":       metrics.RoutePattern(r),
				"status":      status,
				"bytes":       ww.BytesWritten(),
				"duration_ms": time.Since(start).Milliseconds(),
				"remote":      r.RemoteAddr,
			})
			if status >= http.StatusInternalServerError {
				entry.Warn("request")
				return
			}
			entry.Info("request")
		})
	}
}

// Deadline bounds the request context. Unlike middleware.Timeout it never
// writes a status itself; writeError turns an expired deadline into a 504.
func Deadline(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RateLimiter hands every client address its own token bucket. Once it
// tracks maxClients addresses, buckets idle for longer than idleAfter are
// dropped, or the least recently used one when none are idle.
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*clientBucket
	rate     rate.Limit
	burst    int
	log      logrus.FieldLogger

	maxClients int
	idleAfter  time.Duration
	now        func() time.Time
}

type clientBucket struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

func NewRateLimiter(perSecond float64, burst int, log logrus.FieldLogger) *RateLimiter {
	if burst <= 0 {
		burst = 1
	}
	return &RateLimiter{
		limiters:   make(map[string]*clientBucket),
		rate:       rate.Limit(perSecond),
		burst:      burst,
		log:        log,
		maxClients: 10000,
		idleAfter:  10 * time.Minute,
		now:        time.Now,
	}
}

func (rl *RateLimiter) limiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if b, ok := rl.limiters[key]; ok {
		b.lastSeen = now
		return b.lim
	}
	if len(rl.limiters) >= rl.maxClients {
		rl.evict(now)
	}
	b := &clientBucket{lim: rate.NewLimiter(rl.rate, rl.burst), lastSeen: now}
	rl.limiters[key] = b
	return b.lim
}

// evict must be called with mu held.
func (rl *RateLimiter) evict(now time.Time) {
	var (
		oldestKey string
		oldest    time.Time
		found     bool
	)
	for k, b := range rl.limiters {
		if now.Sub(b.lastSeen) > rl.idleAfter {
			delete(rl.limiters, k)
			continue
		}
		if !found || b.lastSeen.Before(oldest) {
			oldestKey, oldest, found = k, b.lastSeen, true
		}
	}
	if found && len(rl.limiters) >= rl.maxClients {
		delete(rl.limiters, oldestKey)
	}
}

func (rl *RateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := clientIP(r)
		if !rl.limiter(key).Allow() {
			rl.log.WithFields(logrus.Fields{"client": key, "path": r.URL.Path}).Debug("rate limited")
			w.Header().Set("Retry-After", "1")
			writeJSON(w, http.StatusTooManyRequests, errorBody{Error: "rate limit exceeded"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

// ReadyHandler reports 503 until the database answers a ping.
func ReadyHandler(db Pinger, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := db.Ping(ctx); err != nil {
			log.WithError(err).Warn("readiness check failed")
			writeJSON(w, http.StatusServiceUnavailable, errorBody{Error: "database unavailable"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
