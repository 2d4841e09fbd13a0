package storefront

import (
	"context"
	"sync"
	"time"

	"dikra-store/internal/logger"

	"go.uber.org/zap"
)

const minSweepInterval = time.Minute

type Factory func(id string) *Session

func NewFactory(d Deps) Factory {
	return func(id string) *Session { return NewSession(id, d) }
}

type entry struct {
	session  *Session
	lastSeen time.Time
}

// Registry keeps the live sessions. Sessions idle for longer than the TTL are
// dropped by Sweep, except while they are submitting an order.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*entry
	factory  Factory
	ttl      time.Duration
	now      func() time.Time
}

func NewRegistry(factory Factory, ttl time.Duration) *Registry {
	return &Registry{
		sessions: make(map[string]*entry),
		factory:  factory,
		ttl:      ttl,
		now:      time.Now,
	}
}

// Get returns the session for id, creating it on first use.
func (r *Registry) Get(id string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.sessions[id]
	if !ok {
		e = &entry{session: r.factory(id)}
		r.sessions[id] = e
	}
	e.lastSeen = r.now()
	return e.session
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep evicts idle sessions and returns how many were removed.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, e := range r.sessions {
		if r.now().Sub(e.lastSeen) <= r.ttl || e.session.Busy() {
			continue
		}
		delete(r.sessions, id)
		removed++
	}
	return removed
}

// Run sweeps periodically until ctx is cancelled.
func (r *Registry) Run(ctx context.Context) error {
	interval := max(r.ttl/2, minSweepInterval)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n := r.Sweep(); n > 0 {
				logger.L().Info("evicted idle sessions", zap.Int("count", n))
			}
		}
	}
}
