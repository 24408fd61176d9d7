package nodes_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"go.trai.ch/weft/internal/adapters/memo"
	"go.trai.ch/weft/internal/adapters/metrics"
	"go.trai.ch/weft/internal/core/domain"
	"go.trai.ch/weft/internal/engine/eval"
	"go.trai.ch/weft/internal/nodes"
)

func newEngine() *eval.Engine {
	return eval.New(memo.NewUnbounded(), metrics.Noop{})
}

func mustNode(t *testing.T, g *domain.Graph, name, kind string) *domain.Node {
	t.Helper()
	n, err := nodes.NewNode(name, kind)
	require.NoError(t, err)
	require.NoError(t, g.AddNode(nil, n))
	return n
}

func TestRegistry(t *testing.T) {
	assert.Contains(t, nodes.Kinds(), "add")
	assert.Contains(t, nodes.Kinds(), "subtree")

	_, err := nodes.New("noSuchKind")
	assert.ErrorIs(t, err, domain.ErrUnknownKind)
}

func TestContextValue_ReadsNamedEntry(t *testing.T) {
	g := domain.New("root")
	e := newEngine()
	n := mustNode(t, g, "cv", "contextValue")
	require.NoError(t, g.SetValue(n.Plug("name"), cty.StringVal("shot")))
	require.NoError(t, g.SetValue(n.Plug("fallback"), cty.StringVal("none")))

	c := domain.NewContext().WithValue("shot", cty.StringVal("sh010"))
	v, err := e.Value(n.Plug("out"), c)
	require.NoError(t, err)
	assert.True(t, v.RawEquals(cty.StringVal("sh010")))

	// Missing entry falls back.
	v, err = e.Value(n.Plug("out"), domain.NewContext())
	require.NoError(t, err)
	assert.True(t, v.RawEquals(cty.StringVal("none")))
}

func TestContextValue_HashCoversOnlyNamedEntry(t *testing.T) {
	g := domain.New("root")
	e := newEngine()
	n := mustNode(t, g, "cv", "contextValue")
	require.NoError(t, g.SetValue(n.Plug("name"), cty.StringVal("shot")))

	base := domain.NewContext().WithValue("shot", cty.StringVal("sh010"))
	noisy := base.WithValue("unrelated", cty.StringVal("noise"))
	changed := base.WithValue("shot", cty.StringVal("sh020"))

	fpBase, err := e.Fingerprint(n.Plug("out"), base)
	require.NoError(t, err)
	fpNoisy, err := e.Fingerprint(n.Plug("out"), noisy)
	require.NoError(t, err)
	fpChanged, err := e.Fingerprint(n.Plug("out"), changed)
	require.NoError(t, err)

	assert.Equal(t, fpBase, fpNoisy, "unrelated context entries do not disturb the hash")
	assert.NotEqual(t, fpBase, fpChanged)
}

func TestContextVariables_ExtendsContextForUpstream(t *testing.T) {
	g := domain.New("root")
	e := newEngine()

	cv := mustNode(t, g, "cv", "contextValue")
	require.NoError(t, g.SetValue(cv.Plug("name"), cty.StringVal("shot")))
	require.NoError(t, g.SetValue(cv.Plug("fallback"), cty.StringVal("none")))

	vars := mustNode(t, g, "vars", "contextVariables")
	require.NoError(t, g.SetInput(vars.Plug("in"), cv.Plug("out")))
	require.NoError(t, g.SetValue(vars.Plug("variables"), cty.MapVal(map[string]cty.Value{
		"shot": cty.StringVal("sh042"),
	})))

	// Upstream alone sees no entry.
	v, err := e.Value(cv.Plug("out"), domain.NewContext())
	require.NoError(t, err)
	assert.True(t, v.RawEquals(cty.StringVal("none")))

	// Through the wrapper the variable is visible upstream.
	v, err = e.Value(vars.Plug("out"), domain.NewContext())
	require.NoError(t, err)
	assert.True(t, v.RawEquals(cty.StringVal("sh042")))
}

func TestContextVariables_OverridesOuterContext(t *testing.T) {
	g := domain.New("root")
	e := newEngine()

	cv := mustNode(t, g, "cv", "contextValue")
	require.NoError(t, g.SetValue(cv.Plug("name"), cty.StringVal("shot")))

	vars := mustNode(t, g, "vars", "contextVariables")
	require.NoError(t, g.SetInput(vars.Plug("in"), cv.Plug("out")))
	require.NoError(t, g.SetValue(vars.Plug("variables"), cty.MapVal(map[string]cty.Value{
		"shot": cty.StringVal("inner"),
	})))

	outer := domain.NewContext().WithValue("shot", cty.StringVal("outer"))
	v, err := e.Value(vars.Plug("out"), outer)
	require.NoError(t, err)
	assert.True(t, v.RawEquals(cty.StringVal("inner")))
}

func TestContextVariables_EditDirtiesOutput(t *testing.T) {
	g := domain.New("root")
	vars := mustNode(t, g, "vars", "contextVariables")

	var dirtied []string
	g.PlugDirtied().Connect(func(p *domain.Plug) { dirtied = append(dirtied, p.FullName()) })

	require.NoError(t, g.SetValue(vars.Plug("variables"), cty.MapVal(map[string]cty.Value{
		"x": cty.StringVal("1"),
	})))
	assert.Contains(t, dirtied, "vars.out")
}

func treeFixture(t *testing.T, g *domain.Graph) *domain.Node {
	t.Helper()
	src := mustNode(t, g, "tree", "treeSource")
	require.NoError(t, g.SetValue(src.Plug("paths"), cty.ListVal([]cty.Value{
		cty.StringVal("/a/b"),
		cty.StringVal("/a/c"),
		cty.StringVal("/d"),
	})))
	return src
}

func evalAt(t *testing.T, e *eval.Engine, p *domain.Plug, path string) cty.Value {
	t.Helper()
	c := domain.NewContext().WithValue(nodes.PathKey, cty.StringVal(path))
	v, err := e.Value(p, c)
	require.NoError(t, err)
	return v
}

func TestTreeSource_ChildNamesPerLocation(t *testing.T) {
	g := domain.New("root")
	e := newEngine()
	src := treeFixture(t, g)
	out := src.PlugDescendant("out.childNames")

	assert.True(t, evalAt(t, e, out, "/").RawEquals(cty.ListVal([]cty.Value{
		cty.StringVal("a"), cty.StringVal("d"),
	})))
	assert.True(t, evalAt(t, e, out, "/a").RawEquals(cty.ListVal([]cty.Value{
		cty.StringVal("b"), cty.StringVal("c"),
	})))
	assert.True(t, evalAt(t, e, out, "/a/b").RawEquals(cty.ListValEmpty(cty.String)))
}

func TestTreeSource_HashSeparatesLocations(t *testing.T) {
	g := domain.New("root")
	e := newEngine()
	src := treeFixture(t, g)
	out := src.PlugDescendant("out.childNames")

	cRoot := domain.NewContext().WithValue(nodes.PathKey, cty.StringVal("/"))
	cA := domain.NewContext().WithValue(nodes.PathKey, cty.StringVal("/a"))

	fpRoot, err := e.Fingerprint(out, cRoot)
	require.NoError(t, err)
	fpA, err := e.Fingerprint(out, cA)
	require.NoError(t, err)
	assert.NotEqual(t, fpRoot, fpA)
}

func TestSubtree_RemapsLocations(t *testing.T) {
	g := domain.New("root")
	e := newEngine()
	src := treeFixture(t, g)

	sub := mustNode(t, g, "sub", "subtree")
	require.NoError(t, g.SetInput(sub.Plug("in"), src.Plug("out")))
	require.NoError(t, g.SetValue(sub.Plug("root"), cty.StringVal("/a")))

	out := sub.PlugDescendant("out.childNames")
	assert.True(t, evalAt(t, e, out, "/").RawEquals(cty.ListVal([]cty.Value{
		cty.StringVal("b"), cty.StringVal("c"),
	})), "output root shows the re-rooted location's children")
	assert.True(t, evalAt(t, e, out, "/b").RawEquals(cty.ListValEmpty(cty.String)))
}

func TestSubtree_SharesUpstreamCacheEntries(t *testing.T) {
	g := domain.New("root")
	e := newEngine()
	src := treeFixture(t, g)

	sub := mustNode(t, g, "sub", "subtree")
	require.NoError(t, g.SetInput(sub.Plug("in"), src.Plug("out")))
	require.NoError(t, g.SetValue(sub.Plug("root"), cty.StringVal("/a")))

	cSrc := domain.NewContext().WithValue(nodes.PathKey, cty.StringVal("/a/b"))

	// attrs of the remapped location delegate to upstream.
	vSub := evalAt(t, e, sub.PlugDescendant("out.attrs"), "/b")
	vSrc, err := e.Value(src.PlugDescendant("out.attrs"), cSrc)
	require.NoError(t, err)
	assert.True(t, vSub.RawEquals(vSrc))
}

func TestSubtree_RootAttrsIndependentOfUpstream(t *testing.T) {
	g := domain.New("root")
	e := newEngine()
	src := treeFixture(t, g)

	sub := mustNode(t, g, "sub", "subtree")
	require.NoError(t, g.SetInput(sub.Plug("in"), src.Plug("out")))
	require.NoError(t, g.SetValue(sub.Plug("root"), cty.StringVal("/a")))

	attrs := sub.PlugDescendant("out.attrs")
	fpBefore, err := e.Fingerprint(attrs, domain.NewContext().WithValue(nodes.PathKey, cty.StringVal("/")))
	require.NoError(t, err)

	v := evalAt(t, e, attrs, "/")
	assert.True(t, v.RawEquals(cty.StringVal("")), "the output root carries no migrated attributes")

	// Changing the upstream tree leaves the output root's hash alone.
	require.NoError(t, g.SetValue(src.Plug("paths"), cty.ListVal([]cty.Value{
		cty.StringVal("/a/z"),
	})))
	fpAfter, err := e.Fingerprint(attrs, domain.NewContext().WithValue(nodes.PathKey, cty.StringVal("/")))
	require.NoError(t, err)
	assert.Equal(t, fpBefore, fpAfter)
}

func TestAdd_NullOperandIsAnError(t *testing.T) {
	g := domain.New("root")
	e := newEngine()
	n := mustNode(t, g, "n1", "add")

	// Null of the declared type passes the mutation API's type check.
	require.NoError(t, g.SetValue(n.Plug("a"), cty.NullVal(cty.Number)))
	require.NoError(t, g.SetValue(n.Plug("b"), cty.NumberIntVal(2)))

	_, err := e.Value(n.Plug("sum"), domain.NewContext())
	assert.ErrorIs(t, err, domain.ErrTypeMismatch)
}

func TestAdd_Affects(t *testing.T) {
	g := domain.New("root")
	n := mustNode(t, g, "n1", "add")

	var dirtied []string
	g.PlugDirtied().Connect(func(p *domain.Plug) { dirtied = append(dirtied, p.Name()) })

	require.NoError(t, g.SetValue(n.Plug("a"), cty.NumberIntVal(1)))
	assert.Contains(t, dirtied, "sum")
}
