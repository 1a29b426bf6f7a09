// Package service provides domain services for authgate.
package service

import (
	"sync"

	"golang.org/x/time/rate"
)

// RateLimiterRegistry manages token-bucket limiters keyed by subject
// (username for login throttling, client IP for request throttling).
type RateLimiterRegistry struct {
	mu       sync.RWMutex
	limiters map[string]*rate.Limiter
}

// NewRateLimiterRegistry creates a new RateLimiterRegistry.
func NewRateLimiterRegistry() *RateLimiterRegistry {
	return &RateLimiterRegistry{
		limiters: make(map[string]*rate.Limiter),
	}
}

// GetOrCreate retrieves an existing limiter or creates a new one with
// the given rate and burst.
func (r *RateLimiterRegistry) GetOrCreate(key string, limit rate.Limit, burst int) *rate.Limiter {
	r.mu.RLock()
	limiter, exists := r.limiters[key]
	r.mu.RUnlock()

	if exists {
		return limiter
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Double-check after acquiring write lock.
	if limiter, exists := r.limiters[key]; exists {
		return limiter
	}

	limiter = rate.NewLimiter(limit, burst)
	r.limiters[key] = limiter

	return limiter
}

// Delete removes the limiter for a specific key.
func (r *RateLimiterRegistry) Delete(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.limiters, key)
}

// Clear removes all limiters.
func (r *RateLimiterRegistry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.limiters = make(map[string]*rate.Limiter)
}

// Len returns the number of tracked limiters.
func (r *RateLimiterRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.limiters)
}
