package nodes

import (
	"strings"

	"github.com/zclconf/go-cty/cty"

	"go.trai.ch/weft/internal/core/domain"
)

func init() {
	Register("subtree", func() domain.Kind { return &Subtree{} })
}

// Subtree re-roots an upstream tree: the location named by the root input
// becomes "/" of the output. Computation is pure context remapping, so
// every non-root output delegates straight to the upstream at the remapped
// location and inherits its fingerprint unchanged. The output root is the
// exception: it stands for the re-rooted location itself, whose attributes
// do not carry over.
type Subtree struct{}

var (
	_ domain.Kind         = (*Subtree)(nil)
	_ domain.OutputHasher = (*Subtree)(nil)
)

func (*Subtree) Name() string { return "subtree" }

func (*Subtree) Setup(n *domain.Node) error {
	in := domain.NewPlug("in", domain.In)
	if err := in.AddChild(domain.NewValuePlug("childNames", domain.In, cty.ListValEmpty(cty.String))); err != nil {
		return err
	}
	if err := in.AddChild(domain.NewValuePlug("attrs", domain.In, cty.StringVal(""))); err != nil {
		return err
	}
	if err := n.AddPlug(in); err != nil {
		return err
	}
	if err := n.AddPlug(domain.NewValuePlug("root", domain.In, cty.StringVal("/"))); err != nil {
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

func (*Subtree) Affects(n *domain.Node, input *domain.Plug) []*domain.Plug {
	switch input.TopLevel().Name() {
	case "in", "root":
		return []*domain.Plug{n.Plug("out")}
	}
	return nil
}

func (k *Subtree) Compute(e domain.Evaluator, n *domain.Node, out *domain.Plug, c *domain.Context) (cty.Value, error) {
	loc := c.GetString(PathKey, "/")
	if out.Name() == "attrs" && loc == "/" {
		return cty.StringVal(""), nil
	}
	inner, err := k.sourceContext(e, n, c, loc)
	if err != nil {
		return cty.NilVal, err
	}
	src := n.PlugDescendant("in." + out.Name())
	if src == nil {
		return cty.NilVal, errUnknownOutput(out)
	}
	return e.Value(src, inner)
}

func (k *Subtree) HashOutput(e domain.Evaluator, n *domain.Node, out *domain.Plug, c *domain.Context, d *domain.Digest) error {
	loc := c.GetString(PathKey, "/")
	if out.Name() == "attrs" && loc == "/" {
		d.WriteString("root")
		return nil
	}
	inner, err := k.sourceContext(e, n, c, loc)
	if err != nil {
		return err
	}
	src := n.PlugDescendant("in." + out.Name())
	if src == nil {
		return errUnknownOutput(out)
	}
	fp, err := e.Fingerprint(src, inner)
	if err != nil {
		return err
	}
	d.WriteFingerprint(fp)
	return nil
}

// sourceContext remaps the evaluation location into upstream coordinates:
// output location loc corresponds to source location root+loc.
func (*Subtree) sourceContext(e domain.Evaluator, n *domain.Node, c *domain.Context, loc string) (*domain.Context, error) {
	root, err := e.Value(n.Plug("root"), c)
	if err != nil {
		return nil, err
	}
	r := "/"
	if root.Type() == cty.String && !root.IsNull() {
		r = root.AsString()
	}
	return c.WithValue(PathKey, cty.StringVal(joinPath(r, loc))), nil
}

// joinPath concatenates two absolute paths, treating "/" as identity.
func joinPath(root, loc string) string {
	root = strings.TrimRight(root, "/")
	if root != "" && !strings.HasPrefix(root, "/") {
		root = "/" + root
	}
	if loc == "/" {
		if root == "" {
			return "/"
		}
		return root
	}
	return root + loc
}
