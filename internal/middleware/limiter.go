package middleware

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"dikra-store/internal/auth"
	"dikra-store/internal/transport"
	"dikra-store/internal/utils"

	"golang.org/x/time/rate"
)

// Rate Limit Tiers
const (
	// Order submission (Strict)
	limitStrict = rate.Limit(0.5)
	burstStrict = 3

	// General (Default)
	limitGeneral = rate.Limit(10)
	burstGeneral = 20

	// Per client address, shared by every session behind it
	limitClient = rate.Limit(20)
	burstClient = 40

	// Requests without a session token, each of which starts a session
	limitNewSession = rate.Limit(1)
	burstNewSession = 10
)

const (
	cleanupInterval = time.Minute
	visitorIdleTTL  = 3 * time.Minute
)

// visitor holds the rate limiter and the last time it was seen.
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	now      func() time.Time
}

func NewRateLimiter() *RateLimiter {
	return &RateLimiter{
		visitors: make(map[string]*visitor),
		now:      time.Now,
	}
}

// Run evicts idle visitors every minute until ctx is cancelled.
func (l *RateLimiter) Run(ctx context.Context) error {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			l.cleanup()
		}
	}
}

// getVisitor retrieves or creates the limiter for key.
func (l *RateLimiter) getVisitor(key string, r rate.Limit, b int) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	v, exists := l.visitors[key]
	if !exists {
		limiter := rate.NewLimiter(r, b)
		l.visitors[key] = &visitor{limiter, l.now()}
		return limiter
	}

	v.lastSeen = l.now()
	return v.limiter
}

func (l *RateLimiter) cleanup() {
	l.mu.Lock()
	defer l.mu.Unlock()

	for key, v := range l.visitors {
		if l.now().Sub(v.lastSeen) > visitorIdleTTL {
			delete(l.visitors, key)
		}
	}
}

func (l *RateLimiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.visitors)
}

// ByIP limits by client address and must run before session resolution, so
// a client that drops its token cannot get a fresh quota or mint sessions
// without bound.
func (l *RateLimiter) ByIP(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := transport.RemoteIP(r)

		if !l.getVisitor("ip:"+ip+":client", limitClient, burstClient).Allow() {
			tooManyRequests(w)
			return
		}
		if auth.ExtractSessionToken(r) == "" &&
			!l.getVisitor("ip:"+ip+":new-session", limitNewSession, burstNewSession).Allow() {
			tooManyRequests(w)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Middleware rejects requests over the quota of their tier with 429.
func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		limit, burst, tier := resolveRateTier(r)

		// Prefer the session, fall back to the client address.
		var identity string
		if id, ok := transport.SessionIDFrom(r.Context()); ok {
			identity = "session:" + id
		} else {
			identity = "ip:" + transport.RemoteIP(r)
		}

		// Separate quotas per tier, e.g. "session:abc:strict".
		key := fmt.Sprintf("%s:%s", identity, tier)

		if !l.getVisitor(key, limit, burst).Allow() {
			tooManyRequests(w)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func tooManyRequests(w http.ResponseWriter) {
	utils.WriteJSONError(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
}

// resolveRateTier determines which rate limit policy applies to the request.
func resolveRateTier(r *http.Request) (rate.Limit, int, string) {
	if r.Method == http.MethodPost && r.URL.Path == "/checkout" {
		return limitStrict, burstStrict, "strict"
	}
	return limitGeneral, burstGeneral, "general"
}
