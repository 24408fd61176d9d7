package domain

import (
	"strings"
	"sync/atomic"

	"github.com/zclconf/go-cty/cty"
	"go.trai.ch/zerr"
)

// Direction tells whether a plug is an input or an output endpoint.
type Direction uint8

const (
	// In marks a plug that receives data, either from a literal value or
	// from an upstream connection.
	In Direction = iota + 1
	// Out marks a plug whose value is produced by its node.
	Out
)

// String returns "in" or "out".
func (d Direction) String() string {
	if d == In {
		return "in"
	}
	return "out"
}

// Flags carry per-plug markers that affect serialisation and reload
// reconciliation.
type Flags uint8

const (
	// FlagDynamic marks a plug that was authored locally rather than loaded
	// from a definition. The reference reconciler strips this flag from
	// freshly loaded plugs and uses it to tell local additions apart from
	// definition content.
	FlagDynamic Flags = 1 << iota
)

var plugIDs atomic.Uint64

// Plug is a typed graph endpoint owned by exactly one node (or by a parent
// plug, for structured plugs). An input plug optionally holds a non-owning
// reference to exactly one upstream plug; output back-references are kept
// for fan-out walks. Connection references are acyclic by construction: the
// mutation path rejects edits that would close a loop.
type Plug struct {
	id        uint64
	name      string
	direction Direction
	flags     Flags

	typ   cty.Type  // leaf value type; cty.NilType for structured plugs
	def   cty.Value // default value of a leaf
	value cty.Value // local value; cty.NilVal means "unset, use default"

	node     *Node
	parent   *Plug
	children []*Plug
	input    *Plug
	outputs  []*Plug

	// epoch is bumped by the dirty propagator. It keys the fingerprint memo,
	// so bumping it makes previously memoised fingerprints unreachable.
	epoch atomic.Uint64
}

// NewPlug creates a structured plug with no value type of its own. Children
// added to it form the plug tree.
func NewPlug(name string, direction Direction) *Plug {
	return &Plug{
		id:        plugIDs.Add(1),
		name:      name,
		direction: direction,
	}
}

// NewValuePlug creates a leaf plug whose type is taken from the default
// value.
func NewValuePlug(name string, direction Direction, def cty.Value) *Plug {
	p := NewPlug(name, direction)
	p.typ = def.Type()
	p.def = def
	return p
}

// ID returns the process-unique identity of the plug.
func (p *Plug) ID() uint64 { return p.id }

// Name returns the plug's name within its parent.
func (p *Plug) Name() string { return p.name }

// Direction returns whether the plug is an input or an output.
func (p *Plug) Direction() Direction { return p.direction }

// Flags returns the plug's flags.
func (p *Plug) Flags() Flags { return p.flags }

// HasFlag reports whether f is set.
func (p *Plug) HasFlag(f Flags) bool { return p.flags&f != 0 }

// Type returns the declared leaf type, or cty.NilType for structured plugs.
func (p *Plug) Type() cty.Type { return p.typ }

// Default returns the default value of a leaf plug.
func (p *Plug) Default() cty.Value { return p.def }

// Node returns the owning node, walking up through parent plugs.
func (p *Plug) Node() *Node {
	top := p
	for top.parent != nil {
		top = top.parent
	}
	return top.node
}

// Parent returns the parent plug, or nil for a node-level plug.
func (p *Plug) Parent() *Plug { return p.parent }

// TopLevel returns the ancestor plug that sits directly under the owning
// node. For a node-level plug that is the plug itself.
func (p *Plug) TopLevel() *Plug {
	top := p
	for top.parent != nil {
		top = top.parent
	}
	return top
}

// Children returns a copy of the child plugs in order.
func (p *Plug) Children() []*Plug {
	out := make([]*Plug, len(p.children))
	copy(out, p.children)
	return out
}

// Child returns the direct child with the given name, or nil.
func (p *Plug) Child(name string) *Plug {
	for _, c := range p.children {
		if c.name == name {
			return c
		}
	}
	return nil
}

// Descendant resolves a dotted relative name ("a.b") below p.
func (p *Plug) Descendant(relName string) *Plug {
	cur := p
	for _, part := range strings.Split(relName, ".") {
		cur = cur.Child(part)
		if cur == nil {
			return nil
		}
	}
	return cur
}

// AddChild appends a child plug. It is intended for construction time (node
// kind Setup and definition loading); structural edits on a live graph go
// through the graph mutators so they are undoable and propagate dirtiness.
func (p *Plug) AddChild(child *Plug) error {
	if child.parent != nil || child.node != nil {
		return zerr.With(ErrAlreadyOwned, "plug", child.name)
	}
	if p.Child(child.name) != nil {
		return zerr.With(ErrDuplicateName, "plug", child.name)
	}
	child.parent = p
	p.children = append(p.children, child)
	return nil
}

// Input returns the upstream plug this plug is connected to, or nil.
func (p *Plug) Input() *Plug { return p.input }

// Outputs returns a copy of the plugs connected from this plug.
func (p *Plug) Outputs() []*Plug {
	out := make([]*Plug, len(p.outputs))
	copy(out, p.outputs)
	return out
}

// EffectiveValue returns the local value if one was set, else the default.
func (p *Plug) EffectiveValue() cty.Value {
	if p.value != cty.NilVal {
		return p.value
	}
	return p.def
}

// IsSetToDefault reports whether the plug carries no local override.
func (p *Plug) IsSetToDefault() bool {
	if p.value == cty.NilVal {
		return true
	}
	return p.value.RawEquals(p.def)
}

// DirtyEpoch returns the current dirty epoch of the plug.
func (p *Plug) DirtyEpoch() uint64 { return p.epoch.Load() }

func (p *Plug) bumpEpoch() { p.epoch.Add(1) }

// RelativeName returns the dotted name of p below its owning node.
func (p *Plug) RelativeName() string {
	parts := []string{p.name}
	for cur := p.parent; cur != nil; cur = cur.parent {
		parts = append([]string{cur.name}, parts...)
	}
	return strings.Join(parts, ".")
}

// FullName returns the dotted name of p from the graph root.
func (p *Plug) FullName() string {
	if n := p.Node(); n != nil {
		return n.FullName() + "." + p.RelativeName()
	}
	return p.RelativeName()
}
