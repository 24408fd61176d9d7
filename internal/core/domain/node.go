package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// Node is a unit of computation with a set of plugs, or a plain container
// when it carries no Kind. Nodes own their plugs and their child nodes;
// parent references are non-owning back-pointers.
type Node struct {
	name     string
	kind     Kind
	parent   *Node
	children []*Node
	plugs    []*Plug
	graph    *Graph
}

// NewNode creates a node. If kind is non-nil its Setup hook runs so the
// kind can add the plugs it computes with.
func NewNode(name string, kind Kind) (*Node, error) {
	n := &Node{name: name, kind: kind}
	if kind != nil {
		if err := kind.Setup(n); err != nil {
			return nil, zerr.With(zerr.With(zerr.Wrap(err, "node setup failed"), "node", name), "kind", kind.Name())
		}
	}
	return n, nil
}

// Name returns the node's name within its parent.
func (n *Node) Name() string { return n.name }

// Kind returns the node's computation kind, or nil for plain containers.
func (n *Node) Kind() Kind { return n.kind }

// Parent returns the parent node, or nil for the root.
func (n *Node) Parent() *Node { return n.parent }

// Graph returns the graph the node belongs to, or nil if detached.
func (n *Node) Graph() *Graph {
	for cur := n; cur != nil; cur = cur.parent {
		if cur.graph != nil {
			return cur.graph
		}
	}
	return nil
}

// Children returns a copy of the child nodes in order.
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// Child returns the direct child node with the given name, or nil.
func (n *Node) Child(name string) *Node {
	for _, c := range n.children {
		if c.name == name {
			return c
		}
	}
	return nil
}

// Plugs returns a copy of the node-level plugs in order.
func (n *Node) Plugs() []*Plug {
	out := make([]*Plug, len(n.plugs))
	copy(out, n.plugs)
	return out
}

// Plug returns the node-level plug with the given name, or nil.
func (n *Node) Plug(name string) *Plug {
	for _, p := range n.plugs {
		if p.name == name {
			return p
		}
	}
	return nil
}

// PlugDescendant resolves a dotted relative name ("in.childNames") to a
// plug below this node, or nil.
func (n *Node) PlugDescendant(relName string) *Plug {
	parts := strings.SplitN(relName, ".", 2)
	p := n.Plug(parts[0])
	if p == nil || len(parts) == 1 {
		return p
	}
	return p.Descendant(parts[1])
}

// AddPlug attaches a node-level plug. Like Plug.AddChild it is intended for
// construction time; live edits go through the graph mutators.
func (n *Node) AddPlug(p *Plug) error {
	if p.parent != nil || p.node != nil {
		return zerr.With(ErrAlreadyOwned, "plug", p.name)
	}
	if n.Plug(p.name) != nil {
		return zerr.With(zerr.With(ErrDuplicateName, "plug", p.name), "node", n.name)
	}
	p.node = n
	n.plugs = append(n.plugs, p)
	return nil
}

// FullName returns the dotted path of the node from the graph root. The
// root container itself is not part of the path.
func (n *Node) FullName() string {
	var parts []string
	for cur := n; cur != nil && cur.parent != nil; cur = cur.parent {
		parts = append([]string{cur.name}, parts...)
	}
	return strings.Join(parts, ".")
}

// visitPlugs calls fn for every plug below root, depth first.
func visitPlugs(root *Plug, fn func(*Plug)) {
	fn(root)
	for _, c := range root.children {
		visitPlugs(c, fn)
	}
}
