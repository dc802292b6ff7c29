package service

import (
	"sync"
	"time"
)

// staleAfter is how long an idle client entry survives before being
// dropped during sweeps.
const staleAfter = 10 * time.Minute

// LoginLimiter throttles credential endpoints per client key (normally
// the remote IP) with a token bucket. Safe for concurrent use. Idle
// entries are swept lazily on access, so no background goroutine is
// needed.
type LoginLimiter struct {
	mu        sync.Mutex
	clients   map[string]*clientBucket
	perSecond float64
	burst     float64
	lastSweep time.Time
}

type clientBucket struct {
	tokens float64
	seen   time.Time
}

// NewLoginLimiter allows burst immediate attempts per key, refilling at
// perSecond tokens per second.
func NewLoginLimiter(perSecond, burst float64) *LoginLimiter {
	return &LoginLimiter{
		clients:   make(map[string]*clientBucket),
		perSecond: perSecond,
		burst:     burst,
		lastSweep: time.Now(),
	}
}

// Allow consumes one token for key and reports whether the attempt may
// proceed.
func (l *LoginLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	l.sweepLocked(now)

	c, ok := l.clients[key]
	if !ok {
		c = &clientBucket{tokens: l.burst, seen: now}
		l.clients[key] = c
	}

	c.tokens = min(c.tokens+now.Sub(c.seen).Seconds()*l.perSecond, l.burst)
	c.seen = now

	if c.tokens < 1 {
		return false
	}
	c.tokens--
	return true
}

// sweepLocked drops entries idle for longer than staleAfter, at most
// once per sweep interval. Callers must hold l.mu.
func (l *LoginLimiter) sweepLocked(now time.Time) {
	if now.Sub(l.lastSweep) < staleAfter {
		return
	}
	for key, c := range l.clients {
		if now.Sub(c.seen) > staleAfter {
			delete(l.clients, key)
		}
	}
	l.lastSweep = now
}
