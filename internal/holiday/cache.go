package holiday

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Cache resolves a (country, year) pair to a holiday Set through three
// tiers, short-circuiting on the first hit:
//
//  1. in-memory map, kept for the process lifetime
//  2. durable per-(country,year) file via DiskStore
//  3. upstream Provider
//
// A non-empty fetch is written back to both lower tiers. An empty fetch is
// memoized in memory only, so the run does not hammer the network but a
// transient outage never poisons the durable tier with an empty set.
// Concurrent cold-path callers for the same key are collapsed into a single
// provider fetch.
type Cache struct {
	provider Provider
	store    *DiskStore
	logger   *zap.Logger

	mu    sync.RWMutex
	mem   map[string]Set
	group singleflight.Group
}

// NewCache creates a Cache over the given provider and durable store
func NewCache(provider Provider, store *DiskStore, logger *zap.Logger) *Cache {
	return &Cache{
		provider: provider,
		store:    store,
		logger:   logger,
		mem:      make(map[string]Set),
	}
}

// Get returns the holiday set for (country, year). The country code is
// case-insensitive. Get never fails: every degradation path ends in a
// (possibly empty) Set.
func (c *Cache) Get(ctx context.Context, country string, year int) Set {
	country = strings.ToUpper(country)
	key := fmt.Sprintf("%s-%d", country, year)

	c.mu.RLock()
	if set, ok := c.mem[key]; ok {
		c.mu.RUnlock()
		return set
	}
	c.mu.RUnlock()

	v, _, _ := c.group.Do(key, func() (interface{}, error) {
		// Re-check under singleflight: a concurrent caller may have
		// populated the map while we waited for the lock.
		c.mu.RLock()
		if set, ok := c.mem[key]; ok {
			c.mu.RUnlock()
			return set, nil
		}
		c.mu.RUnlock()

		return c.load(ctx, country, year, key), nil
	})

	return v.(Set)
}

// load runs the cold path: disk tier, then provider, with write-back
func (c *Cache) load(ctx context.Context, country string, year int, key string) Set {
	if records, err := c.store.Read(country, year); err == nil {
		set := NewSet(records)
		c.put(key, set)
		c.logger.Debug("Holiday set loaded from disk cache",
			zap.String("country", country),
			zap.Int("year", year),
			zap.Int("records", len(records)))
		return set
	}

	records := c.provider.Fetch(ctx, country, year)
	set := NewSet(records)

	if len(records) > 0 {
		if err := c.store.Write(country, year, records); err != nil {
			c.logger.Warn("Failed to persist holiday cache",
				zap.String("country", country),
				zap.Int("year", year),
				zap.Error(err))
		}
	}

	c.put(key, set)
	c.logger.Info("Holiday set fetched from provider",
		zap.String("country", country),
		zap.Int("year", year),
		zap.Int("records", len(records)))
	return set
}

func (c *Cache) put(key string, set Set) {
	c.mu.Lock()
	c.mem[key] = set
	c.mu.Unlock()
}

// Lookup returns the record for a single ISO date, resolving the year's set
// first. Absence means no override for that date.
func (c *Cache) Lookup(ctx context.Context, country string, year int, date string) (Record, bool) {
	return c.Get(ctx, country, year).Lookup(date)
}
