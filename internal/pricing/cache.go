package pricing

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"tripbudget/internal/domain"
	"tripbudget/internal/utils"
)

// Cache memoizes quotes per run so the upstream is hit at most once per
// distinct place, and every row for the same place uses an identical
// price. Entries are write-once: the first resolved result (successful or
// exhausted-retry fallback) wins. Concurrent lookups for the same uncached
// key are collapsed into one upstream call.
//
// When a Redis client is supplied, successful quotes are also kept across
// runs; degraded fallbacks are never persisted.
type Cache struct {
	src Source

	group  singleflight.Group
	mu     sync.RWMutex
	quotes map[string]domain.PriceQuote

	rdb *redis.Client
	ttl time.Duration
}

func NewCache(src Source, rdb *redis.Client) *Cache {
	return &Cache{
		src:    src,
		quotes: make(map[string]domain.PriceQuote),
		rdb:    rdb,
		ttl:    24 * time.Hour,
	}
}

const redisKeyPrefix = "quote:"

// Lookup never fails; a place that cannot be priced resolves to the zero
// quote and is cached as such for the rest of the run.
func (c *Cache) Lookup(ctx context.Context, place string) domain.PriceQuote {
	key := utils.NormalizeSpace(place)
	if key == "" {
		return domain.PriceQuote{}
	}

	c.mu.RLock()
	q, ok := c.quotes[key]
	c.mu.RUnlock()
	if ok {
		return q
	}

	v, _, _ := c.group.Do(key, func() (any, error) {
		// Re-check under the flight: a concurrent caller may have
		// stored the key while we waited our turn.
		c.mu.RLock()
		q, ok := c.quotes[key]
		c.mu.RUnlock()
		if ok {
			return q, nil
		}

		if q, ok := c.fromRedis(ctx, key); ok {
			c.store(key, q)
			return q, nil
		}

		q, resolved := c.src.Lookup(ctx, key)
		c.store(key, q)
		if resolved {
			c.toRedis(ctx, key, q)
		}
		return q, nil
	})
	return v.(domain.PriceQuote)
}

func (c *Cache) store(key string, q domain.PriceQuote) {
	c.mu.Lock()
	if _, exists := c.quotes[key]; !exists {
		c.quotes[key] = q
	}
	c.mu.Unlock()
}

func (c *Cache) fromRedis(ctx context.Context, key string) (domain.PriceQuote, bool) {
	if c.rdb == nil {
		return domain.PriceQuote{}, false
	}
	raw, err := c.rdb.Get(ctx, redisKeyPrefix+key).Result()
	if err != nil {
		return domain.PriceQuote{}, false
	}
	var q domain.PriceQuote
	if err := json.Unmarshal([]byte(raw), &q); err != nil {
		return domain.PriceQuote{}, false
	}
	return q, true
}

func (c *Cache) toRedis(ctx context.Context, key string, q domain.PriceQuote) {
	if c.rdb == nil {
		return
	}
	raw, err := json.Marshal(q)
	if err != nil {
		return
	}
	// Best effort; a write failure only costs a future lookup.
	_ = c.rdb.Set(ctx, redisKeyPrefix+key, raw, c.ttl).Err()
}
