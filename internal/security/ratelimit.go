package security

import (
	"sync"
	"time"
)

// Limiter bounds request counts per client identifier. The in-memory
// implementation below is per-process; a shared store (e.g. a
// distributed counter) can be swapped in behind this interface for
// multi-instance deployments.
type Limiter interface {
	IsLimited(identifier string) bool
	Remaining(identifier string) int
	Cleanup()
}

const (
	rateLimitWindow = 15 * time.Minute
	rateLimitMax    = 100
)

type rateEntry struct {
	count     int
	resetTime time.Time
}

// MemoryLimiter is a fixed-window counter: 100 requests per 15 minutes
// per identifier. State is lost on restart and not shared across
// instances — acceptable for a single-instance deployment only.
type MemoryLimiter struct {
	mu      sync.Mutex
	entries map[string]*rateEntry
	now     func() time.Time
}

func NewMemoryLimiter() *MemoryLimiter {
	return &MemoryLimiter{entries: map[string]*rateEntry{}, now: time.Now}
}

// IsLimited counts the request and reports whether the caller has
// exceeded the window budget. The 100th in-window request passes, the
// 101st is rejected.
func (l *MemoryLimiter) IsLimited(identifier string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	e, ok := l.entries[identifier]
	if !ok || now.After(e.resetTime) {
		l.entries[identifier] = &rateEntry{count: 1, resetTime: now.Add(rateLimitWindow)}
		return false
	}
	e.count++
	return e.count > rateLimitMax
}

// Remaining reports how many requests the identifier has left in the
// current window.
func (l *MemoryLimiter) Remaining(identifier string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[identifier]
	if !ok || l.now().After(e.resetTime) {
		return rateLimitMax
	}
	if e.count >= rateLimitMax {
		return 0
	}
	return rateLimitMax - e.count
}

// Cleanup drops expired windows to bound memory. Run it periodically
// (the api binary runs it every 30 minutes).
func (l *MemoryLimiter) Cleanup() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	for k, e := range l.entries {
		if now.After(e.resetTime) {
			delete(l.entries, k)
		}
	}
}
