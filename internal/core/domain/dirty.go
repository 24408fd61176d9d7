package domain

// propagateDirty walks the graph from the edited plugs through connection
// fan-out, parent plugs and declared affects edges, bumping the dirty epoch
// of every plug visited. The visited set de-duplicates, so diamonds in the
// affects graph terminate. Dirtied signals are emitted once per visited
// plug, after the walk, unless the log is inside a disabled frame (epochs
// still advance so the cache stays correct).
func (g *Graph) propagateDirty(seeds ...*Plug) {
	visited := make(map[*Plug]struct{})
	var order []*Plug
	stack := append([]*Plug(nil), seeds...)

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if _, ok := visited[p]; ok {
			continue
		}
		visited[p] = struct{}{}
		p.bumpEpoch()
		order = append(order, p)

		// Connection fan-out.
		stack = append(stack, p.outputs...)

		// A child's change is a change of the composite parent value.
		if p.parent != nil {
			stack = append(stack, p.parent)
		}

		// Declared affects edges, expanded into the affected plug trees so
		// leaf memo entries become unreachable too.
		n := p.Node()
		if n != nil && n.kind != nil && p.TopLevel().direction == In {
			for _, out := range n.kind.Affects(n, p) {
				visitPlugs(out, func(d *Plug) { stack = append(stack, d) })
			}
		}
	}

	if g.log.suppressed() {
		return
	}
	for _, p := range order {
		g.plugDirtied.Emit(p)
	}
}
