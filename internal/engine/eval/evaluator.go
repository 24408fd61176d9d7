// Package eval implements the pull-based evaluation engine. Values are
// never pushed through the graph; callers ask for the value of a plug in a
// context, and the engine hashes, probes the computation cache and only
// computes on a miss.
package eval

import (
	"github.com/zclconf/go-cty/cty"
	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"

	"go.trai.ch/weft/internal/core/domain"
	"go.trai.ch/weft/internal/core/ports"
)

// Engine evaluates plugs. It is stateless apart from the shared computation
// cache and may be used concurrently from any number of goroutines; two
// evaluations of the same fingerprint are collapsed into one compute.
type Engine struct {
	cache   ports.ComputationCache
	metrics ports.Metrics
	group   singleflight.Group
}

var _ domain.Evaluator = (*Engine)(nil)

// New creates an engine backed by the given cache.
func New(cache ports.ComputationCache, metrics ports.Metrics) *Engine {
	return &Engine{cache: cache, metrics: metrics}
}

// Value returns the value of a plug in a context.
//
// A connected plug yields its upstream value. A structured plug yields an
// object of its children. A computed output is fingerprinted first: a cache
// hit returns the shared cached value without running the node, a miss runs
// Kind.Compute and stores the result. Errors are never cached.
func (e *Engine) Value(p *domain.Plug, c *domain.Context) (cty.Value, error) {
	if in := p.Input(); in != nil {
		return e.Value(in, c)
	}
	if children := p.Children(); len(children) > 0 {
		attrs := make(map[string]cty.Value, len(children))
		for _, ch := range children {
			v, err := e.Value(ch, c)
			if err != nil {
				return cty.NilVal, err
			}
			attrs[ch.Name()] = v
		}
		return cty.ObjectVal(attrs), nil
	}
	if n := p.Node(); p.Direction() == domain.Out && n != nil && n.Kind() != nil {
		return e.computedValue(p, n, c)
	}
	v := p.EffectiveValue()
	if v == cty.NilVal {
		return cty.NilVal, zerr.With(domain.ErrNoValue, "plug", p.FullName())
	}
	return v, nil
}

func (e *Engine) computedValue(p *domain.Plug, n *domain.Node, c *domain.Context) (cty.Value, error) {
	fp, err := e.Fingerprint(p, c)
	if err != nil {
		return cty.NilVal, err
	}
	if v, ok := e.cache.Value(fp); ok {
		e.metrics.CacheHit()
		return v, nil
	}
	e.metrics.CacheMiss()

	v, err, _ := e.group.Do(fp.String(), func() (any, error) {
		if v, ok := e.cache.Value(fp); ok {
			return v, nil
		}
		e.metrics.Compute()
		v, err := n.Kind().Compute(e, n, p, c)
		if err != nil {
			return cty.NilVal, zerr.With(zerr.With(zerr.Wrap(err, "compute failed"),
				"plug", p.FullName()),
				"kind", n.Kind().Name(),
			)
		}
		if t := p.Type(); t != cty.NilType && !v.Type().Equals(t) {
			return cty.NilVal, zerr.With(zerr.With(zerr.With(domain.ErrTypeMismatch,
				"plug", p.FullName()),
				"want", t.FriendlyName()),
				"got", v.Type().FriendlyName(),
			)
		}
		e.cache.SetValue(fp, v)
		return v, nil
	})
	if err != nil {
		return cty.NilVal, err
	}
	return v.(cty.Value), nil
}

// Fingerprint returns the content hash of a plug in a context.
//
// A connected plug hashes as its upstream. An unconnected leaf input hashes
// its value alone, so two plugs holding equal values share cache entries. A
// structured plug combines child names and fingerprints. A computed output
// is memoised per (plug, context, dirty epoch) and digests the kind name,
// the output's name within the node and whatever the kind declares as
// inputs: every upstream its affects map names plus the full context, or
// exactly what HashOutput appends when the kind implements it.
func (e *Engine) Fingerprint(p *domain.Plug, c *domain.Context) (domain.Fingerprint, error) {
	if in := p.Input(); in != nil {
		return e.Fingerprint(in, c)
	}
	if children := p.Children(); len(children) > 0 {
		d := domain.NewDigest()
		d.WriteString("tree")
		for _, ch := range children {
			d.WriteString(ch.Name())
			fp, err := e.Fingerprint(ch, c)
			if err != nil {
				return domain.ZeroFingerprint, err
			}
			d.WriteFingerprint(fp)
		}
		return d.Sum(), nil
	}
	n := p.Node()
	if p.Direction() != domain.Out || n == nil || n.Kind() == nil {
		d := domain.NewDigest()
		d.WriteString("value")
		d.WriteValue(p.EffectiveValue())
		return d.Sum(), nil
	}

	key := domain.HashKey{PlugID: p.ID(), Context: c.Hash(), Epoch: p.DirtyEpoch()}
	if fp, ok := e.cache.Fingerprint(key); ok {
		return fp, nil
	}

	d := domain.NewDigest()
	d.WriteString("compute")
	d.WriteString(n.Kind().Name())
	d.WriteString(p.RelativeName())
	if h, ok := n.Kind().(domain.OutputHasher); ok {
		if err := h.HashOutput(e, n, p, c, d); err != nil {
			return domain.ZeroFingerprint, zerr.With(zerr.With(zerr.Wrap(err, "hash failed"),
				"plug", p.FullName()),
				"kind", n.Kind().Name(),
			)
		}
	} else if err := e.hashDeclaredInputs(n, p, c, d); err != nil {
		return domain.ZeroFingerprint, err
	}

	fp := d.Sum()
	e.cache.SetFingerprint(key, fp)
	return fp, nil
}

// hashDeclaredInputs appends the default dependency set for an output: the
// fingerprint of every node-level input whose affects set covers the output,
// plus the hash of the whole context.
func (e *Engine) hashDeclaredInputs(n *domain.Node, out *domain.Plug, c *domain.Context, d *domain.Digest) error {
	for _, in := range n.Plugs() {
		if in.Direction() != domain.In {
			continue
		}
		if !domain.AffectsContains(n.Kind().Affects(n, in), out) {
			continue
		}
		fp, err := e.Fingerprint(in, c)
		if err != nil {
			return err
		}
		d.WriteFingerprint(fp)
	}
	d.WriteFingerprint(c.Hash())
	return nil
}
