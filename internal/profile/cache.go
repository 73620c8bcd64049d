package profile

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
)

const (
	defaultTTL      = 5 * time.Minute
	cleanupInterval = 10 * time.Minute
)

// CachedLookup memoizes another Lookup, including "not found" answers.
type CachedLookup struct {
	next  Lookup
	cache *cache.Cache
}

// NewCachedLookup wraps next. A zero ttl uses five minutes.
func NewCachedLookup(next Lookup, ttl time.Duration) *CachedLookup {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &CachedLookup{
		next:  next,
		cache: cache.New(ttl, cleanupInterval),
	}
}

func (c *CachedLookup) Get(ctx context.Context, name string) (*Profile, error) {
	if v, ok := c.cache.Get(name); ok {
		p, _ := v.(*Profile)
		return p, nil
	}

	p, err := c.next.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	c.cache.SetDefault(name, p)
	return p, nil
}
