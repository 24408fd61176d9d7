package domain

import (
	"github.com/zclconf/go-cty/cty"
	"go.trai.ch/zerr"
)

// Command is one reversible graph edit. Commands are tagged structs holding
// enough state to perform and reverse themselves, so a recorded log can be
// inspected without executing anything.
type Command interface {
	// Tag identifies the command kind for log inspection.
	Tag() string
	// Do validates and performs the edit. On error the graph is unchanged
	// and nothing is recorded.
	Do(g *Graph) error
	// Undo reverses a previously performed edit.
	Undo(g *Graph) error
}

// inputRecord remembers one plug's previous upstream connection.
type inputRecord struct {
	Plug  *Plug
	Input *Plug
}

// SetInputCommand connects Dst to Src, cascading into descendants with
// matching names. A nil Src disconnects recursively.
type SetInputCommand struct {
	Dst *Plug
	Src *Plug

	prev []inputRecord
}

// Tag implements Command.
func (c *SetInputCommand) Tag() string { return "setInput" }

// Do implements Command.
func (c *SetInputCommand) Do(g *Graph) error {
	if err := g.checkSetInput(c.Dst, c.Src); err != nil {
		return err
	}
	c.prev = nil
	var dirtied []*Plug
	g.cascadeInputs(c.Dst, c.Src, &c.prev, &dirtied)
	g.propagateDirty(dirtied...)
	return nil
}

// Undo implements Command.
func (c *SetInputCommand) Undo(g *Graph) error {
	dirtied := make([]*Plug, 0, len(c.prev))
	for i := len(c.prev) - 1; i >= 0; i-- {
		rec := c.prev[i]
		g.rawConnect(rec.Plug, rec.Input)
		dirtied = append(dirtied, rec.Plug)
	}
	g.propagateDirty(dirtied...)
	return nil
}

// SetValueCommand sets a literal value on a leaf input plug. cty.NilVal
// clears the local override.
type SetValueCommand struct {
	Plug  *Plug
	Value cty.Value

	prev cty.Value
}

// Tag implements Command.
func (c *SetValueCommand) Tag() string { return "setValue" }

// Do implements Command.
func (c *SetValueCommand) Do(g *Graph) error {
	p := c.Plug
	if p.direction != In || p.typ == cty.NilType || len(p.children) > 0 {
		return zerr.With(ErrNotAnInputPlug, "plug", p.FullName())
	}
	if p.input != nil {
		return zerr.With(ErrPlugConnected, "plug", p.FullName())
	}
	if c.Value != cty.NilVal && !c.Value.Type().Equals(p.typ) {
		return zerr.With(zerr.With(zerr.With(ErrTypeMismatch,
			"plug", p.FullName()),
			"want", p.typ.FriendlyName()),
			"got", c.Value.Type().FriendlyName(),
		)
	}
	c.prev = p.value
	g.rawSetValue(p, c.Value)
	g.propagateDirty(p)
	return nil
}

// Undo implements Command.
func (c *SetValueCommand) Undo(g *Graph) error {
	g.rawSetValue(c.Plug, c.prev)
	g.propagateDirty(c.Plug)
	return nil
}

// RenamePlugCommand renames a plug within its parent.
type RenamePlugCommand struct {
	Plug *Plug
	To   string

	from string
}

// Tag implements Command.
func (c *RenamePlugCommand) Tag() string { return "renamePlug" }

// Do implements Command.
func (c *RenamePlugCommand) Do(g *Graph) error {
	p := c.Plug
	var sibling *Plug
	if p.parent != nil {
		sibling = p.parent.Child(c.To)
	} else if p.node != nil {
		sibling = p.node.Plug(c.To)
	}
	if sibling != nil && sibling != p {
		return zerr.With(ErrDuplicateName, "plug", c.To)
	}
	c.from = p.name
	p.name = c.To
	g.propagateDirty(p)
	return nil
}

// Undo implements Command.
func (c *RenamePlugCommand) Undo(g *Graph) error {
	c.Plug.name = c.from
	g.propagateDirty(c.Plug)
	return nil
}

// AddNodeCommand attaches Node under Parent.
type AddNodeCommand struct {
	Parent *Node
	Node   *Node
}

// Tag implements Command.
func (c *AddNodeCommand) Tag() string { return "addNode" }

// Do implements Command.
func (c *AddNodeCommand) Do(g *Graph) error {
	if c.Parent.Graph() != g {
		return zerr.With(ErrDetached, "node", c.Parent.name)
	}
	if c.Node.parent != nil {
		return zerr.With(ErrAlreadyOwned, "node", c.Node.name)
	}
	if c.Parent.Child(c.Node.name) != nil {
		return zerr.With(ErrDuplicateName, "node", c.Node.name)
	}
	g.rawAddNode(c.Parent, c.Node)
	return nil
}

// Undo implements Command.
func (c *AddNodeCommand) Undo(g *Graph) error {
	_, dirtied := severNodeConnections(g, c.Node)
	g.rawRemoveNode(c.Node)
	g.propagateDirty(dirtied...)
	return nil
}

// RemoveNodeCommand detaches a node, severing connections that cross the
// node's boundary so the removed subtree stays internally consistent.
type RemoveNodeCommand struct {
	Node *Node

	parent  *Node
	index   int
	severed []inputRecord
}

// Tag implements Command.
func (c *RemoveNodeCommand) Tag() string { return "removeNode" }

// Do implements Command.
func (c *RemoveNodeCommand) Do(g *Graph) error {
	if c.Node.parent == nil || c.Node.Graph() != g {
		return zerr.With(ErrDetached, "node", c.Node.name)
	}
	c.parent = c.Node.parent
	var dirtied []*Plug
	c.severed, dirtied = severNodeConnections(g, c.Node)
	c.index = g.rawRemoveNode(c.Node)
	g.propagateDirty(dirtied...)
	return nil
}

// Undo implements Command.
func (c *RemoveNodeCommand) Undo(g *Graph) error {
	g.rawInsertNode(c.parent, c.Node, c.index)
	dirtied := make([]*Plug, 0, len(c.severed))
	for i := len(c.severed) - 1; i >= 0; i-- {
		rec := c.severed[i]
		g.rawConnect(rec.Plug, rec.Input)
		dirtied = append(dirtied, rec.Plug)
	}
	g.propagateDirty(dirtied...)
	return nil
}

// AddPlugCommand attaches Plug either at node level (Node set) or below a
// parent plug (Parent set).
type AddPlugCommand struct {
	Node   *Node
	Parent *Plug
	Plug   *Plug
}

// Tag implements Command.
func (c *AddPlugCommand) Tag() string { return "addPlug" }

// Do implements Command.
func (c *AddPlugCommand) Do(g *Graph) error {
	p := c.Plug
	if p.parent != nil || p.node != nil {
		return zerr.With(ErrAlreadyOwned, "plug", p.name)
	}
	switch {
	case c.Node != nil:
		if c.Node.Graph() != g {
			return zerr.With(ErrDetached, "node", c.Node.name)
		}
		if err := c.Node.AddPlug(p); err != nil {
			return err
		}
		g.plugAdded.Emit(PlugAddedEvent{Node: c.Node, Plug: p})
	case c.Parent != nil:
		if err := c.Parent.AddChild(p); err != nil {
			return err
		}
		g.plugAdded.Emit(PlugAddedEvent{Node: c.Parent.Node(), Parent: c.Parent, Plug: p})
	default:
		return zerr.With(ErrDetached, "plug", p.name)
	}
	g.propagateDirty(p)
	return nil
}

// Undo implements Command.
func (c *AddPlugCommand) Undo(g *Graph) error {
	_, dirtied := severPlugConnections(g, c.Plug)
	detachPlug(c.Plug)
	g.propagateDirty(dirtied...)
	return nil
}

// RemovePlugCommand detaches a plug subtree.
type RemovePlugCommand struct {
	Plug *Plug

	node    *Node
	parent  *Plug
	index   int
	severed []inputRecord
}

// Tag implements Command.
func (c *RemovePlugCommand) Tag() string { return "removePlug" }

// Do implements Command.
func (c *RemovePlugCommand) Do(g *Graph) error {
	p := c.Plug
	if p.parent == nil && p.node == nil {
		return zerr.With(ErrDetached, "plug", p.name)
	}
	c.node, c.parent = p.node, p.parent
	var dirtied []*Plug
	c.severed, dirtied = severPlugConnections(g, p)
	if c.parent != nil {
		dirtied = append(dirtied, c.parent)
	}
	c.index = detachPlug(p)
	g.propagateDirty(dirtied...)
	return nil
}

// Undo implements Command.
func (c *RemovePlugCommand) Undo(g *Graph) error {
	attachPlugAt(c.node, c.parent, c.Plug, c.index)
	dirtied := []*Plug{c.Plug}
	for i := len(c.severed) - 1; i >= 0; i-- {
		rec := c.severed[i]
		g.rawConnect(rec.Plug, rec.Input)
		dirtied = append(dirtied, rec.Plug)
	}
	g.propagateDirty(dirtied...)
	return nil
}

// SetFlagsCommand sets or clears one flag on a plug.
type SetFlagsCommand struct {
	Plug   *Plug
	Flag   Flags
	Enable bool

	prev Flags
}

// Tag implements Command.
func (c *SetFlagsCommand) Tag() string { return "setFlags" }

// Do implements Command.
func (c *SetFlagsCommand) Do(_ *Graph) error {
	c.prev = c.Plug.flags
	if c.Enable {
		c.Plug.flags |= c.Flag
	} else {
		c.Plug.flags &^= c.Flag
	}
	return nil
}

// Undo implements Command.
func (c *SetFlagsCommand) Undo(_ *Graph) error {
	c.Plug.flags = c.prev
	return nil
}

// Helpers shared by the structural commands.

// nodeContains reports whether p belongs to n or one of n's descendants.
func nodeContains(n *Node, p *Plug) bool {
	for cur := p.Node(); cur != nil; cur = cur.parent {
		if cur == n {
			return true
		}
	}
	return false
}

// severNodeConnections disconnects every connection crossing n's boundary,
// in either direction, returning restore records and dirty seeds.
func severNodeConnections(g *Graph, n *Node) ([]inputRecord, []*Plug) {
	var severed []inputRecord
	var dirtied []*Plug

	var walkNode func(node *Node)
	walkNode = func(node *Node) {
		for _, top := range node.plugs {
			visitPlugs(top, func(p *Plug) {
				if p.input != nil && !nodeContains(n, p.input) {
					severed = append(severed, inputRecord{Plug: p, Input: p.input})
					g.rawConnect(p, nil)
					dirtied = append(dirtied, p)
				}
				for _, o := range p.Outputs() {
					if !nodeContains(n, o) {
						severed = append(severed, inputRecord{Plug: o, Input: p})
						g.rawConnect(o, nil)
						dirtied = append(dirtied, o)
					}
				}
			})
		}
		for _, c := range node.children {
			walkNode(c)
		}
	}
	walkNode(n)
	return severed, dirtied
}

// severPlugConnections disconnects every connection crossing the subtree
// rooted at root, in either direction.
func severPlugConnections(g *Graph, root *Plug) ([]inputRecord, []*Plug) {
	inSubtree := func(p *Plug) bool {
		for cur := p; cur != nil; cur = cur.parent {
			if cur == root {
				return true
			}
		}
		return false
	}

	var severed []inputRecord
	var dirtied []*Plug
	visitPlugs(root, func(p *Plug) {
		if p.input != nil && !inSubtree(p.input) {
			severed = append(severed, inputRecord{Plug: p, Input: p.input})
			g.rawConnect(p, nil)
			dirtied = append(dirtied, p)
		}
		for _, o := range p.Outputs() {
			if !inSubtree(o) {
				severed = append(severed, inputRecord{Plug: o, Input: p})
				g.rawConnect(o, nil)
				dirtied = append(dirtied, o)
			}
		}
	})
	return severed, dirtied
}

func detachPlug(p *Plug) (index int) {
	index = -1
	switch {
	case p.parent != nil:
		for i, c := range p.parent.children {
			if c == p {
				p.parent.children = append(p.parent.children[:i], p.parent.children[i+1:]...)
				index = i
				break
			}
		}
		p.parent = nil
	case p.node != nil:
		for i, c := range p.node.plugs {
			if c == p {
				p.node.plugs = append(p.node.plugs[:i], p.node.plugs[i+1:]...)
				index = i
				break
			}
		}
		p.node = nil
	}
	return index
}

func attachPlugAt(node *Node, parent *Plug, p *Plug, index int) {
	if parent != nil {
		p.parent = parent
		if index < 0 || index > len(parent.children) {
			index = len(parent.children)
		}
		parent.children = append(parent.children[:index], append([]*Plug{p}, parent.children[index:]...)...)
		return
	}
	p.node = node
	if index < 0 || index > len(node.plugs) {
		index = len(node.plugs)
	}
	node.plugs = append(node.plugs[:index], append([]*Plug{p}, node.plugs[index:]...)...)
}
