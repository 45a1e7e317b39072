package cache

import (
	"fmt"
	"slices"
	"strconv"

	"fxconvert/internal/domain"
	"fxconvert/internal/metrics"

	"github.com/dgraph-io/ristretto"
)

const allReasonsKey = "reasons:all"

// RistrettoReasonCache keeps the reason catalogue in memory. Rates are never stored here.
type RistrettoReasonCache struct {
	cache *ristretto.Cache
}

func NewReasonCache(maxItems int64) (*RistrettoReasonCache, error) {
	if maxItems <= 0 {
		maxItems = 1024
	}
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters:        10 * (maxItems + 1),
		// every entry costs 1, so MaxCost counts entries rather than bytes
		MaxCost:            maxItems + 1,
		BufferItems:        64,
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, fmt.Errorf("create reason cache failed: %w", err)
	}
	return &RistrettoReasonCache{cache: c}, nil
}

func (c *RistrettoReasonCache) Get(id int64) (domain.Reason, bool) {
	if v, ok := c.cache.Get(toKey(id)); ok {
		reason, ok := v.(domain.Reason)
		return reason, ok
	}
	return domain.Reason{}, false
}

func (c *RistrettoReasonCache) All() ([]domain.Reason, bool) {
	if v, ok := c.cache.Get(allReasonsKey); ok {
		reasons, ok := v.([]domain.Reason)
		return slices.Clone(reasons), ok
	}
	return nil, false
}

// SetAll replaces the catalogue. Entries for ids no longer present are dropped.
func (c *RistrettoReasonCache) SetAll(reasons []domain.Reason) {
	if previous, ok := c.All(); ok {
		for _, r := range previous {
			c.cache.Del(toKey(r.ID))
		}
	}
	for _, r := range reasons {
		c.cache.Set(toKey(r.ID), r, 1)
	}
	c.cache.Set(allReasonsKey, slices.Clone(reasons), 1)
	c.cache.Wait()
	metrics.ReasonsCached.Set(float64(len(reasons)))
}

func (c *RistrettoReasonCache) Close() { c.cache.Close() }

func toKey(id int64) string { return "reason:" + strconv.FormatInt(id, 10) }
