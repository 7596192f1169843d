package infrastructure

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiter keeps one token bucket per identifier (an email address or IP)
// and evicts buckets that have been idle long enough to be full again.
type RateLimiter struct {
	limiters map[string]*limiterEntry
	mutex    sync.Mutex
	limit    rate.Limit
	burst    int
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter allows maxTries requests per window for each identifier.
func NewRateLimiter(window time.Duration, maxTries int) *RateLimiter {
	rl := &RateLimiter{
		limiters: make(map[string]*limiterEntry),
		limit:    rate.Every(window / time.Duration(maxTries)),
		burst:    maxTries,
	}

	// Start cleanup goroutine
	go rl.cleanupStaleEntries(window)
	return rl
}

func (rl *RateLimiter) Allow(identifier string) bool {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	entry, exists := rl.limiters[identifier]
	if !exists {
		entry = &limiterEntry{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.limiters[identifier] = entry
	}
	entry.lastSeen = time.Now()

	return entry.limiter.Allow()
}

func (rl *RateLimiter) cleanupStaleEntries(window time.Duration) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		rl.mutex.Lock()
		cutoff := time.Now().Add(-2 * window)
		for identifier, entry := range rl.limiters {
			if entry.lastSeen.Before(cutoff) {
				delete(rl.limiters, identifier)
			}
		}
		rl.mutex.Unlock()
	}
}
