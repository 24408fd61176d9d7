package memo

import (
	"sync"

	"github.com/zclconf/go-cty/cty"

	"go.trai.ch/weft/internal/core/domain"
	"go.trai.ch/weft/internal/core/ports"
)

// Unbounded is a computation cache that never evicts and applies writes
// synchronously. It exists for tests that assert on exact cache behaviour;
// production wiring uses the bounded Cache.
type Unbounded struct {
	mu     sync.Mutex
	values map[domain.Fingerprint]cty.Value
	hashes map[domain.HashKey]domain.Fingerprint
}

var _ ports.ComputationCache = (*Unbounded)(nil)

// NewUnbounded creates an empty unbounded cache.
func NewUnbounded() *Unbounded {
	return &Unbounded{
		values: make(map[domain.Fingerprint]cty.Value),
		hashes: make(map[domain.HashKey]domain.Fingerprint),
	}
}

func (c *Unbounded) Value(fp domain.Fingerprint) (cty.Value, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.values[fp]
	return v, ok
}

func (c *Unbounded) SetValue(fp domain.Fingerprint, v cty.Value) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[fp] = v
}

func (c *Unbounded) Fingerprint(k domain.HashKey) (domain.Fingerprint, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fp, ok := c.hashes[k]
	return fp, ok
}

func (c *Unbounded) SetFingerprint(k domain.HashKey, fp domain.Fingerprint) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hashes[k] = fp
}

// Len returns the number of cached values.
func (c *Unbounded) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.values)
}
