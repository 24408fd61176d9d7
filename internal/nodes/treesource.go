package nodes

import (
	"sort"
	"strings"

	"github.com/zclconf/go-cty/cty"

	"go.trai.ch/weft/internal/core/domain"
)

// PathKey is the context entry naming the tree location being evaluated.
// Tree-shaped outputs produce a different result per location; the key is
// what makes one output plug stand for a whole hierarchy.
const PathKey = "tree:path"

func init() {
	Register("treeSource", func() domain.Kind { return &TreeSource{} })
}

// TreeSource generates a tree from a flat list of absolute paths. The out
// plug is structured: out.childNames lists the children of the location
// named by the context and out.attrs carries a per-location attribute
// string. Both outputs hash only the paths input and the one context entry
// they read.
type TreeSource struct{}

var (
	_ domain.Kind         = (*TreeSource)(nil)
	_ domain.OutputHasher = (*TreeSource)(nil)
)

func (*TreeSource) Name() string { return "treeSource" }

func (*TreeSource) Setup(n *domain.Node) error {
	paths := domain.NewValuePlug("paths", domain.In, cty.ListValEmpty(cty.String))
	if err := n.AddPlug(paths); err != nil {
		return err
	}
	out := domain.NewPlug("out", domain.Out)
	if err := out.AddChild(domain.NewValuePlug("childNames", domain.Out, cty.ListValEmpty(cty.String))); err != nil {
		return err
	}
	if err := out.AddChild(domain.NewValuePlug("attrs", domain.Out, cty.StringVal(""))); err != nil {
		return err
	}
	return n.AddPlug(out)
}

func (*TreeSource) Affects(n *domain.Node, input *domain.Plug) []*domain.Plug {
	if input.Name() == "paths" {
		return []*domain.Plug{n.Plug("out")}
	}
	return nil
}

func (k *TreeSource) Compute(e domain.Evaluator, n *domain.Node, out *domain.Plug, c *domain.Context) (cty.Value, error) {
	paths, err := declaredPaths(e, n, c)
	if err != nil {
		return cty.NilVal, err
	}
	loc := c.GetString(PathKey, "/")
	switch out.Name() {
	case "childNames":
		names := childNames(paths, loc)
		if len(names) == 0 {
			return cty.ListValEmpty(cty.String), nil
		}
		vals := make([]cty.Value, len(names))
		for i, name := range names {
			vals[i] = cty.StringVal(name)
		}
		return cty.ListVal(vals), nil
	case "attrs":
		if loc == "/" || containsPath(paths, loc) {
			return cty.StringVal("source:" + loc), nil
		}
		return cty.StringVal(""), nil
	}
	return cty.NilVal, errUnknownOutput(out)
}

func (k *TreeSource) HashOutput(e domain.Evaluator, n *domain.Node, out *domain.Plug, c *domain.Context, d *domain.Digest) error {
	fp, err := e.Fingerprint(n.Plug("paths"), c)
	if err != nil {
		return err
	}
	d.WriteFingerprint(fp)
	d.WriteString(c.GetString(PathKey, "/"))
	return nil
}

// declaredPaths returns the paths input as a cleaned string slice.
func declaredPaths(e domain.Evaluator, n *domain.Node, c *domain.Context) ([]string, error) {
	v, err := e.Value(n.Plug("paths"), c)
	if err != nil {
		return nil, err
	}
	if v.IsNull() || v.LengthInt() == 0 {
		return nil, nil
	}
	out := make([]string, 0, v.LengthInt())
	for _, el := range v.AsValueSlice() {
		if el.IsNull() {
			continue
		}
		p := el.AsString()
		if !strings.HasPrefix(p, "/") {
			p = "/" + p
		}
		out = append(out, strings.TrimRight(p, "/"))
	}
	return out, nil
}

// childNames lists the distinct next path components below loc, sorted.
func childNames(paths []string, loc string) []string {
	prefix := loc
	if prefix != "/" {
		prefix += "/"
	}
	seen := map[string]struct{}{}
	var names []string
	for _, p := range paths {
		if !strings.HasPrefix(p, prefix) || p == loc {
			continue
		}
		rest := strings.TrimPrefix(p, prefix)
		name := rest
		if i := strings.Index(rest, "/"); i >= 0 {
			name = rest[:i]
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func containsPath(paths []string, loc string) bool {
	for _, p := range paths {
		if p == loc || strings.HasPrefix(p, loc+"/") {
			return true
		}
	}
	return false
}
