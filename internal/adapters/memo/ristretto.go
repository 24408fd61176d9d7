// Package memo provides computation cache implementations: a bounded,
// admission-controlled cache for production use and an unbounded map for
// tests that must observe every insertion.
package memo

import (
	"github.com/dgraph-io/ristretto/v2"
	"github.com/zclconf/go-cty/cty"
	"go.trai.ch/zerr"

	"go.trai.ch/weft/internal/core/domain"
	"go.trai.ch/weft/internal/core/ports"
)

const (
	// defaultMaxCost bounds the value cache. Costs are counted per entry,
	// not per byte; computed values are shared, never copied, so the entry
	// count is the resource that needs bounding.
	defaultMaxCost = 1 << 16

	// fingerprint memos are tiny, so the hash cache gets a larger budget.
	hashMaxCost = 1 << 20

	bufferItems = 64
)

// Cache is a bounded computation cache backed by two ristretto caches, one
// for computed values keyed by fingerprint and one for memoised fingerprints
// keyed by (plug, context, epoch). Both sides tolerate eviction: an absent
// entry is recomputed, never resurrected wrongly.
type Cache struct {
	values *ristretto.Cache[string, cty.Value]
	hashes *ristretto.Cache[string, domain.Fingerprint]
}

var _ ports.ComputationCache = (*Cache)(nil)

// NewCache creates a bounded cache holding at most maxEntries computed
// values. maxEntries <= 0 selects the default bound.
func NewCache(maxEntries int64) (*Cache, error) {
	if maxEntries <= 0 {
		maxEntries = defaultMaxCost
	}
	values, err := ristretto.NewCache(&ristretto.Config[string, cty.Value]{
		NumCounters: maxEntries * 10,
		MaxCost:     maxEntries,
		BufferItems: bufferItems,
	})
	if err != nil {
		return nil, zerr.Wrap(err, "creating value cache")
	}
	hashes, err := ristretto.NewCache(&ristretto.Config[string, domain.Fingerprint]{
		NumCounters: hashMaxCost * 10,
		MaxCost:     hashMaxCost,
		BufferItems: bufferItems,
	})
	if err != nil {
		return nil, zerr.Wrap(err, "creating hash cache")
	}
	return &Cache{values: values, hashes: hashes}, nil
}

// Value returns the cached value for a fingerprint.
func (c *Cache) Value(fp domain.Fingerprint) (cty.Value, bool) {
	v, ok := c.values.Get(fp.String())
	if !ok {
		return cty.NilVal, false
	}
	return v, true
}

// SetValue stores a computed value under its fingerprint.
func (c *Cache) SetValue(fp domain.Fingerprint, v cty.Value) {
	c.values.Set(fp.String(), v, 1)
}

// Fingerprint returns the memoised fingerprint for a hash key.
func (c *Cache) Fingerprint(k domain.HashKey) (domain.Fingerprint, bool) {
	return c.hashes.Get(k.String())
}

// SetFingerprint memoises a computed fingerprint.
func (c *Cache) SetFingerprint(k domain.HashKey, fp domain.Fingerprint) {
	c.hashes.Set(k.String(), fp, 1)
}

// Wait blocks until buffered writes are applied. Writes are asynchronous;
// tests call Wait before asserting on cache contents.
func (c *Cache) Wait() {
	c.values.Wait()
	c.hashes.Wait()
}

// Close releases the cache's background goroutines.
func (c *Cache) Close() {
	c.values.Close()
	c.hashes.Close()
}
