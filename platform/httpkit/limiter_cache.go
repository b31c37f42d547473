package httpkit

import (
	"sync"

	"golang.org/x/time/rate"
)

// limiterCache stores per-key rate limiters. Entries are created lazily and
// kept for the process lifetime; the key space (client IPs) is small enough
// for a quote storefront that eviction is not worth the complexity.
type limiterCache struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

func newLimiterCache() *limiterCache {
	return &limiterCache{limiters: make(map[string]*rate.Limiter)}
}

func (c *limiterCache) get(key string, create func() *rate.Limiter) *rate.Limiter {
	c.mu.Lock()
	defer c.mu.Unlock()

	if l, ok := c.limiters[key]; ok {
		return l
	}
	l := create()
	c.limiters[key] = l
	return l
}
