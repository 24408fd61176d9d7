package domain

import "github.com/zclconf/go-cty/cty"

// Evaluator is the capability a Kind uses to pull upstream values and
// fingerprints during hashing and computation. Pulls may use the caller's
// context or an overridden one; context override is how structural
// remapping (evaluating an input at a different address) is expressed.
type Evaluator interface {
	// Value returns the value of a plug in a context.
	Value(p *Plug, c *Context) (cty.Value, error)
	// Fingerprint returns the content hash of a plug in a context.
	Fingerprint(p *Plug, c *Context) (Fingerprint, error)
}

// Kind is the computation behaviour of a node. Implementations live in a
// registry rather than an inheritance tree; a node without a kind is a
// plain container.
type Kind interface {
	// Name identifies the kind in the registry and in fingerprints.
	Name() string
	// Setup adds the plugs the kind computes with to a fresh node.
	Setup(n *Node) error
	// Affects returns the output plugs whose values can change when the
	// given input plug changes. The dirty propagator follows these edges.
	Affects(n *Node, input *Plug) []*Plug
	// Compute produces the value of an output plug in a context. It may
	// recursively pull upstream values through e, with the same or an
	// overridden context.
	Compute(e Evaluator, n *Node, out *Plug, c *Context) (cty.Value, error)
}

// OutputHasher is an optional Kind capability. A kind that knows precisely
// what one of its outputs depends on can append exactly that to the digest
// instead of the default, which combines every declared upstream
// fingerprint with the full context hash. Correctness is the default;
// precision is the opt-in.
type OutputHasher interface {
	HashOutput(e Evaluator, n *Node, out *Plug, c *Context, d *Digest) error
}
