package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"go.trai.ch/weft/internal/core/domain"
)

// dirtyCapture records dirtied plug names for the lifetime of a test.
type dirtyCapture struct {
	names []string
}

func captureDirty(g *domain.Graph) *dirtyCapture {
	c := &dirtyCapture{}
	g.PlugDirtied().Connect(func(p *domain.Plug) {
		c.names = append(c.names, p.FullName())
	})
	return c
}

func (c *dirtyCapture) reset() { c.names = nil }

func TestDirty_SetValuePropagatesThroughAffects(t *testing.T) {
	g := domain.New("root")
	n := newSumNode(t, g, "n1")
	cap := captureDirty(g)

	require.NoError(t, g.SetValue(n.Plug("a"), cty.NumberIntVal(1)))

	assert.Contains(t, cap.names, "n1.a")
	assert.Contains(t, cap.names, "n1.out")
	assert.NotContains(t, cap.names, "n1.b", "unrelated inputs stay clean")
}

func TestDirty_PropagatesThroughConnections(t *testing.T) {
	g := domain.New("root")
	n1 := newSumNode(t, g, "n1")
	n2 := newSumNode(t, g, "n2")
	n3 := newSumNode(t, g, "n3")
	require.NoError(t, g.SetInput(n2.Plug("a"), n1.Plug("out")))
	require.NoError(t, g.SetInput(n3.Plug("a"), n2.Plug("out")))

	cap := captureDirty(g)
	require.NoError(t, g.SetValue(n1.Plug("b"), cty.NumberIntVal(4)))

	for _, want := range []string{"n1.b", "n1.out", "n2.a", "n2.out", "n3.a", "n3.out"} {
		assert.Contains(t, cap.names, want)
	}
}

func TestDirty_EachPlugVisitedOnce(t *testing.T) {
	g := domain.New("root")
	n1 := newSumNode(t, g, "n1")
	n2 := newSumNode(t, g, "n2")
	// Diamond: both inputs of n2 fed by the same output.
	require.NoError(t, g.SetInput(n2.Plug("a"), n1.Plug("out")))
	require.NoError(t, g.SetInput(n2.Plug("b"), n1.Plug("out")))

	cap := captureDirty(g)
	require.NoError(t, g.SetValue(n1.Plug("a"), cty.NumberIntVal(2)))

	seen := map[string]int{}
	for _, name := range cap.names {
		seen[name]++
	}
	for name, count := range seen {
		assert.Equal(t, 1, count, "plug %s dirtied more than once", name)
	}
	assert.Equal(t, 1, seen["n2.out"])
}

func TestDirty_ChildDirtiesParent(t *testing.T) {
	g := domain.New("root")
	holder, err := domain.NewNode("holder", nil)
	require.NoError(t, err)
	require.NoError(t, g.AddNode(nil, holder))

	top := domain.NewPlug("top", domain.In)
	require.NoError(t, top.AddChild(domain.NewValuePlug("leaf", domain.In, cty.Zero)))
	require.NoError(t, g.AddPlug(holder, top))

	cap := captureDirty(g)
	require.NoError(t, g.SetValue(holder.PlugDescendant("top.leaf"), cty.NumberIntVal(5)))

	assert.Contains(t, cap.names, "holder.top.leaf")
	assert.Contains(t, cap.names, "holder.top")
}

func TestDirty_BumpsEpochs(t *testing.T) {
	g := domain.New("root")
	n := newSumNode(t, g, "n1")

	before := n.Plug("out").DirtyEpoch()
	require.NoError(t, g.SetValue(n.Plug("a"), cty.NumberIntVal(1)))
	assert.Greater(t, n.Plug("out").DirtyEpoch(), before)
}

func TestDirty_DisabledFrameSuppressesSignalNotEpoch(t *testing.T) {
	g := domain.New("root")
	n := newSumNode(t, g, "n1")
	cap := captureDirty(g)

	before := n.Plug("out").DirtyEpoch()
	g.Log().BeginDisabled()
	require.NoError(t, g.SetValue(n.Plug("a"), cty.NumberIntVal(1)))
	require.NoError(t, g.Log().End())

	assert.Empty(t, cap.names, "disabled frames emit no dirtied signals")
	assert.Greater(t, n.Plug("out").DirtyEpoch(), before, "epochs advance regardless")
}
