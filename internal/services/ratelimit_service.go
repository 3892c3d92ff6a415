package services

import (
	"sync"
	"time"

	"github.com/you/draftly/domain"
)

// Named rate-limit policies. The fixed-window algorithm permits bursts of
// up to 2x MaxRequests across a window boundary; that is accepted behavior
// for this limiter, not a bug.
var (
	LoginRateLimit    = domain.RateLimitPolicy{Window: 15 * time.Minute, MaxRequests: 5}
	RegisterRateLimit = domain.RateLimitPolicy{Window: 60 * time.Minute, MaxRequests: 3}
	APIRateLimit      = domain.RateLimitPolicy{Window: time.Minute, MaxRequests: 60}
)

const sweepInterval = 5 * time.Minute

type rateLimitWindow struct {
	count     int
	resetTime time.Time
}

// RateLimiterImpl implements domain.RateLimiter with a process-local map.
// This is a single-node reference implementation: a horizontally scaled
// deployment needs the counters in a shared store with atomic increment
// and expiry (e.g. Redis INCR + EXPIRE) instead of process memory.
type RateLimiterImpl struct {
	mu      sync.Mutex
	windows map[string]*rateLimitWindow
	stop    chan struct{}
}

// NewRateLimiter creates a new in-memory fixed-window rate limiter and
// starts its background sweeper.
func NewRateLimiter() *RateLimiterImpl {
	rl := &RateLimiterImpl{
		windows: make(map[string]*rateLimitWindow),
		stop:    make(chan struct{}),
	}
	go rl.sweepLoop()
	return rl
}

// Check implements domain.RateLimiter. The read-modify-write of the window
// entry happens under the lock so concurrent requests on the same key
// never lose an increment.
func (rl *RateLimiterImpl) Check(key string, policy domain.RateLimitPolicy) *domain.RateLimitResult {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	w, ok := rl.windows[key]
	if !ok || now.After(w.resetTime) {
		w = &rateLimitWindow{count: 1, resetTime: now.Add(policy.Window)}
		rl.windows[key] = w
		return &domain.RateLimitResult{
			Allowed:   true,
			Remaining: policy.MaxRequests - 1,
			ResetTime: w.resetTime,
		}
	}

	w.count++
	if w.count > policy.MaxRequests {
		// The window is deliberately not reset: the caller waits it out.
		return &domain.RateLimitResult{
			Allowed:   false,
			Remaining: 0,
			ResetTime: w.resetTime,
		}
	}

	return &domain.RateLimitResult{
		Allowed:   true,
		Remaining: policy.MaxRequests - w.count,
		ResetTime: w.resetTime,
	}
}

// Close stops the background sweeper
func (rl *RateLimiterImpl) Close() {
	close(rl.stop)
}

func (rl *RateLimiterImpl) sweepLoop() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.sweep(time.Now())
		case <-rl.stop:
			return
		}
	}
}

// sweep drops windows whose reset time has passed to bound memory
func (rl *RateLimiterImpl) sweep(now time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	for key, w := range rl.windows {
		if now.After(w.resetTime) {
			delete(rl.windows, key)
		}
	}
}
