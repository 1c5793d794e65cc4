package cache

import (
	"fmt"
	"strings"

	"arbscanner/internal/domain"

	"github.com/dgraph-io/ristretto"
)

// RistrettoResultCache keeps the most recent ArbitrageResult per asset for the read API.
type RistrettoResultCache struct {
	cache *ristretto.Cache
}

func NewResultCache(maxItems int64) (*RistrettoResultCache, error) {
	if maxItems <= 0 {
		maxItems = 1024
	}
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 10 * maxItems,
		MaxCost:     maxItems,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("create result cache failed: %w", err)
	}
	return &RistrettoResultCache{cache: c}, nil
}

func (c *RistrettoResultCache) GetLatest(asset string) (domain.ArbitrageResult, bool) {
	if v, ok := c.cache.Get(toKey(asset)); ok {
		res, ok := v.(domain.ArbitrageResult)
		return res, ok
	}
	return domain.ArbitrageResult{}, false
}

// SetLatest stores result unless a newer one for the same asset is already cached.
func (c *RistrettoResultCache) SetLatest(result domain.ArbitrageResult) {
	if cur, ok := c.GetLatest(result.Asset); ok && cur.Timestamp.After(result.Timestamp) {
		return
	}
	c.cache.Set(toKey(result.Asset), result, 1)
}

func (c *RistrettoResultCache) Close() { c.cache.Close() }

func toKey(asset string) string { return "latest:" + strings.ToUpper(asset) }
