// Package ratelimit provides per-key token buckets for request throttling.
package ratelimit

import (
	"sync"
	"time"
)

const (
	// SweepInterval is the minimum gap between idle-bucket sweeps.
	SweepInterval = time.Minute
	// IdleTTL drops buckets untouched for this long even if not yet full.
	IdleTTL = 10 * time.Minute
)

type bucket struct {
	tokens   float64
	capacity float64
	refill   float64
	last     time.Time
}

// full reports whether the bucket would be back at capacity by now, which
// makes it indistinguishable from a fresh one.
func (b *bucket) full(now time.Time) bool {
	return b.tokens+now.Sub(b.last).Seconds()*b.refill >= b.capacity
}

// Limiter keeps one bucket per key, created full on first use. Buckets that
// have refilled or sat idle for IdleTTL are swept, so the map only holds
// recently limited clients.
type Limiter struct {
	mu        sync.Mutex
	m         map[string]*bucket
	now       func() time.Time
	lastSweep time.Time
}

func New() *Limiter { return NewWithClock(time.Now) }

// NewWithClock creates a limiter that reads time from now.
func NewWithClock(now func() time.Time) *Limiter {
	return &Limiter{m: make(map[string]*bucket), now: now, lastSweep: now()}
}

// Allow reports whether one token can be taken from key's bucket. The bucket
// holds at most capacity tokens and refills at refillPerSec. A non-positive
// capacity disables limiting.
func (l *Limiter) Allow(key string, capacity, refillPerSec float64) bool {
	if capacity <= 0 {
		return true
	}
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastSweep) >= SweepInterval {
		l.sweep(now)
	}

	b, ok := l.m[key]
	if !ok {
		b = &bucket{tokens: capacity, last: now}
		l.m[key] = b
	}
	b.capacity, b.refill = capacity, refillPerSec
	if elapsed := now.Sub(b.last).Seconds(); elapsed > 0 {
		b.tokens += elapsed * refillPerSec
		if b.tokens > capacity {
			b.tokens = capacity
		}
		b.last = now
	}
	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

// Len returns the number of tracked keys.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.m)
}

func (l *Limiter) sweep(now time.Time) {
	for k, b := range l.m {
		if b.full(now) || now.Sub(b.last) >= IdleTTL {
			delete(l.m, k)
		}
	}
	l.lastSweep = now
}
