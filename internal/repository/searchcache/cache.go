// Package searchcache memoizes ranked search results in a key-value store.
// Entries are keyed by the normalized request and expire server-side, so
// eviction never blocks reads or writes.
package searchcache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/partscout/partscout/internal/db"
	"github.com/partscout/partscout/internal/domain/search"
	"github.com/partscout/partscout/internal/domain/store"
)

const cacheKeyPrefix = "partscout:search_cache:"

// kvStore is the consumer interface for the result cache (ISP).
type kvStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Cache stores ranked results with a TTL.
type Cache struct {
	store      kvStore
	ttl        time.Duration
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a result cache.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), passed explicitly.
func New(s kvStore, ttl time.Duration, cacheTotal *prometheus.CounterVec, logger *zap.Logger) *Cache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cache{store: s, ttl: ttl, cacheTotal: cacheTotal, logger: logger}
}

// Get returns the cached ranked list for an equivalent recent request.
// Any store or decode error is treated as a miss; the cache never fails a search.
func (c *Cache) Get(ctx context.Context, req search.Request) ([]store.Ranked, bool) {
	key := Key(req)

	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("failed to read search cache", zap.String("key", key), zap.Error(err))
		}
		c.inc("miss")
		return nil, false
	}

	var results []store.Ranked
	if err := json.Unmarshal(data, &results); err != nil {
		c.logger.Warn("failed to decode cached results", zap.String("key", key), zap.Error(err))
		c.inc("miss")
		return nil, false
	}

	c.inc("hit")
	return results, true
}

// Put stores a ranked list. Errors are logged and swallowed.
func (c *Cache) Put(ctx context.Context, req search.Request, results []store.Ranked) {
	data, err := json.Marshal(results)
	if err != nil {
		c.logger.Warn("failed to encode results for cache", zap.Error(err))
		return
	}
	if err := c.store.SetWithTTL(ctx, Key(req), data, c.ttl); err != nil {
		c.logger.Warn("failed to write search cache", zap.Error(err))
	}
}

// Key derives the cache key from the part signature, the origin rounded to a
// coarse grid (two decimals, roughly 0.7 mi), the distance budget, and the cap.
func Key(req search.Request) string {
	origin := req.Origin()
	raw := fmt.Sprintf("%s|%.2f|%.2f|%.1f|%d",
		req.Part().Signature(), origin.Lat, origin.Lng, req.MaxDistanceMiles(), req.ResultCap())
	h := sha256.Sum256([]byte(raw))
	return cacheKeyPrefix + hex.EncodeToString(h[:])
}

func (c *Cache) inc(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}
