// Package domain contains the core model of the dependency graph engine:
// plugs, nodes, contexts, fingerprints, dirty propagation and the
// transaction log. It has no knowledge of caching policy, definition
// formats or presentation; those live behind ports.
package domain

import (
	"strings"

	"github.com/zclconf/go-cty/cty"
	"go.trai.ch/zerr"
)

// NodeAddedEvent is the payload of the node-added signal.
type NodeAddedEvent struct {
	Parent *Node
	Node   *Node
}

// PlugAddedEvent is the payload of the plug-added signal. Parent is nil for
// node-level plugs.
type PlugAddedEvent struct {
	Node   *Node
	Parent *Plug
	Plug   *Plug
}

// Graph owns a tree of nodes rooted at a plain container, the transaction
// log that serialises every mutation, and the structural signals consumed
// by observers. All mutation goes through the graph's mutators so that the
// dirty propagator runs exactly once per logical edit and every edit is
// undoable.
type Graph struct {
	root *Node
	log  *Log

	nodeAdded   Signal[NodeAddedEvent]
	plugAdded   Signal[PlugAddedEvent]
	plugDirtied Signal[*Plug]
}

// New creates a graph with an empty root container.
func New(rootName string) *Graph {
	root := &Node{name: rootName}
	g := &Graph{root: root}
	root.graph = g
	g.log = &Log{graph: g}
	return g
}

// Root returns the root container node.
func (g *Graph) Root() *Node { return g.root }

// Log returns the graph's transaction log.
func (g *Graph) Log() *Log { return g.log }

// NodeAdded is emitted whenever a node is attached, including during
// definition loading.
func (g *Graph) NodeAdded() *Signal[NodeAddedEvent] { return &g.nodeAdded }

// PlugAdded is emitted whenever a plug is attached, including during
// definition loading.
func (g *Graph) PlugAdded() *Signal[PlugAddedEvent] { return &g.plugAdded }

// PlugDirtied is emitted once per plug visited by a dirty propagation pass.
// Disabled transaction frames suppress this signal; dirty epochs still
// advance.
func (g *Graph) PlugDirtied() *Signal[*Plug] { return &g.plugDirtied }

// FindNode resolves a dotted node path below the root.
func (g *Graph) FindNode(path string) (*Node, error) {
	cur := g.root
	for _, part := range strings.Split(path, ".") {
		cur = cur.Child(part)
		if cur == nil {
			return nil, zerr.With(ErrNodeNotFound, "path", path)
		}
	}
	return cur, nil
}

// FindPlug resolves a dotted path below the root to a plug: the longest
// prefix of node names followed by a plug path.
func (g *Graph) FindPlug(path string) (*Plug, error) {
	parts := strings.Split(path, ".")
	cur := g.root
	for i, part := range parts {
		if child := cur.Child(part); child != nil {
			cur = child
			continue
		}
		if p := cur.PlugDescendant(strings.Join(parts[i:], ".")); p != nil {
			return p, nil
		}
		return nil, zerr.With(ErrPlugNotFound, "path", path)
	}
	return nil, zerr.With(ErrPlugNotFound, "path", path)
}

// Mutators. Each wraps a command and routes it through the log; validation
// errors surface before anything is recorded.

// AddNode attaches child under parent (the root if parent is nil).
func (g *Graph) AddNode(parent, child *Node) error {
	if parent == nil {
		parent = g.root
	}
	return g.log.Enact(&AddNodeCommand{Parent: parent, Node: child})
}

// RemoveNode detaches a node, severing every connection that crosses the
// node's boundary.
func (g *Graph) RemoveNode(n *Node) error {
	return g.log.Enact(&RemoveNodeCommand{Node: n})
}

// AddPlug attaches a node-level plug.
func (g *Graph) AddPlug(n *Node, p *Plug) error {
	return g.log.Enact(&AddPlugCommand{Node: n, Plug: p})
}

// AddChildPlug attaches a child plug under parent.
func (g *Graph) AddChildPlug(parent, child *Plug) error {
	return g.log.Enact(&AddPlugCommand{Parent: parent, Plug: child})
}

// RemovePlug detaches a plug from its parent, severing connections that
// cross the plug subtree's boundary.
func (g *Graph) RemovePlug(p *Plug) error {
	return g.log.Enact(&RemovePlugCommand{Plug: p})
}

// SetInput connects dst to src, cascading into descendant plugs with
// matching names. A nil src disconnects recursively.
func (g *Graph) SetInput(dst, src *Plug) error {
	return g.log.Enact(&SetInputCommand{Dst: dst, Src: src})
}

// SetValue sets a literal value on a leaf input plug. cty.NilVal clears the
// local override so the default shows through again.
func (g *Graph) SetValue(p *Plug, v cty.Value) error {
	return g.log.Enact(&SetValueCommand{Plug: p, Value: v})
}

// RenamePlug renames a plug within its parent.
func (g *Graph) RenamePlug(p *Plug, name string) error {
	return g.log.Enact(&RenamePlugCommand{Plug: p, To: name})
}

// SetFlags sets or clears a flag on a plug.
func (g *Graph) SetFlags(p *Plug, f Flags, enable bool) error {
	return g.log.Enact(&SetFlagsCommand{Plug: p, Flag: f, Enable: enable})
}

// Raw mutation primitives used by commands. They assume validation has
// already happened.

func (g *Graph) rawConnect(dst, src *Plug) {
	if old := dst.input; old != nil {
		for i, o := range old.outputs {
			if o == dst {
				old.outputs = append(old.outputs[:i], old.outputs[i+1:]...)
				break
			}
		}
	}
	dst.input = src
	if src != nil {
		src.outputs = append(src.outputs, dst)
	}
}

// cascadeInputs connects dst to src and recurses into children with
// matching names, recording previous inputs for undo and collecting every
// touched plug as a dirty seed.
func (g *Graph) cascadeInputs(dst, src *Plug, rec *[]inputRecord, dirtied *[]*Plug) {
	*rec = append(*rec, inputRecord{Plug: dst, Input: dst.input})
	g.rawConnect(dst, src)
	*dirtied = append(*dirtied, dst)
	for _, child := range dst.children {
		var srcChild *Plug
		if src != nil {
			if srcChild = src.Child(child.name); srcChild == nil {
				continue
			}
		}
		g.cascadeInputs(child, srcChild, rec, dirtied)
	}
}

func (g *Graph) rawSetValue(p *Plug, v cty.Value) {
	p.value = v
}

func (g *Graph) rawAddNode(parent, child *Node) {
	child.parent = parent
	parent.children = append(parent.children, child)
	g.nodeAdded.Emit(NodeAddedEvent{Parent: parent, Node: child})
}

func (g *Graph) rawRemoveNode(n *Node) (index int) {
	parent := n.parent
	for i, c := range parent.children {
		if c == n {
			parent.children = append(parent.children[:i], parent.children[i+1:]...)
			n.parent = nil
			return i
		}
	}
	return -1
}

func (g *Graph) rawInsertNode(parent, child *Node, index int) {
	child.parent = parent
	if index < 0 || index > len(parent.children) {
		index = len(parent.children)
	}
	parent.children = append(parent.children[:index], append([]*Node{child}, parent.children[index:]...)...)
}

func (g *Graph) checkSetInput(dst, src *Plug) error {
	if src == nil {
		return nil
	}
	if dst == src {
		return zerr.With(ErrCycleDetected, "plug", dst.FullName())
	}
	if dst.direction == Out {
		if n := dst.Node(); n != nil && n.kind != nil {
			return zerr.With(ErrDirectionMismatch, "plug", dst.FullName())
		}
	}
	if dst.typ != cty.NilType && src.typ != cty.NilType && !dst.typ.Equals(src.typ) {
		return zerr.With(zerr.With(zerr.With(ErrTypeMismatch,
			"plug", dst.FullName()),
			"want", dst.typ.FriendlyName()),
			"got", src.typ.FriendlyName(),
		)
	}
	if dependsOn(src, dst, make(map[*Plug]struct{})) {
		return zerr.With(zerr.With(ErrCycleDetected, "plug", dst.FullName()), "source", src.FullName())
	}
	return nil
}

// dependsOn reports whether p's value can depend on target, following
// connections, plug trees and declared affects edges upstream.
func dependsOn(p, target *Plug, visited map[*Plug]struct{}) bool {
	if p == target {
		return true
	}
	if _, ok := visited[p]; ok {
		return false
	}
	visited[p] = struct{}{}

	if p.input != nil && dependsOn(p.input, target, visited) {
		return true
	}
	for _, c := range p.children {
		if dependsOn(c, target, visited) {
			return true
		}
	}
	n := p.Node()
	if n != nil && n.kind != nil && p.TopLevel().direction == Out {
		for _, in := range n.plugs {
			if in.direction != In {
				continue
			}
			if !affectsContains(n.kind.Affects(n, in), p) {
				continue
			}
			if dependsOn(in, target, visited) {
				return true
			}
		}
	}
	return false
}

// AffectsContains reports whether p or one of its ancestors is in the list.
// Kinds return whole plug subtrees from Affects; a leaf counts as affected
// when any ancestor was declared.
func AffectsContains(list []*Plug, p *Plug) bool {
	return affectsContains(list, p)
}

func affectsContains(list []*Plug, p *Plug) bool {
	for _, a := range list {
		for cur := p; cur != nil; cur = cur.parent {
			if cur == a {
				return true
			}
		}
	}
	return false
}
