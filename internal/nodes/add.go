package nodes

import (
	"github.com/zclconf/go-cty/cty"
	"go.trai.ch/zerr"

	"go.trai.ch/weft/internal/core/domain"
)

func init() {
	Register("add", func() domain.Kind { return &Add{} })
}

// Add sums two numeric inputs. Its output depends on nothing but the two
// operands, so its hash skips the context entirely: evaluating a sum in two
// different contexts shares one cache entry.
type Add struct{}

var (
	_ domain.Kind         = (*Add)(nil)
	_ domain.OutputHasher = (*Add)(nil)
)

func (*Add) Name() string { return "add" }

func (*Add) Setup(n *domain.Node) error {
	for _, name := range []string{"a", "b"} {
		if err := n.AddPlug(domain.NewValuePlug(name, domain.In, cty.Zero)); err != nil {
			return err
		}
	}
	return n.AddPlug(domain.NewValuePlug("sum", domain.Out, cty.Zero))
}

func (*Add) Affects(n *domain.Node, input *domain.Plug) []*domain.Plug {
	switch input.Name() {
	case "a", "b":
		return []*domain.Plug{n.Plug("sum")}
	}
	return nil
}

func (*Add) Compute(e domain.Evaluator, n *domain.Node, out *domain.Plug, c *domain.Context) (cty.Value, error) {
	a, err := e.Value(n.Plug("a"), c)
	if err != nil {
		return cty.NilVal, err
	}
	b, err := e.Value(n.Plug("b"), c)
	if err != nil {
		return cty.NilVal, err
	}
	if a.IsNull() || b.IsNull() || a.Type() != cty.Number || b.Type() != cty.Number {
		return cty.NilVal, zerr.With(domain.ErrTypeMismatch, "node", n.FullName())
	}
	return a.Add(b), nil
}

func (*Add) HashOutput(e domain.Evaluator, n *domain.Node, out *domain.Plug, c *domain.Context, d *domain.Digest) error {
	for _, name := range []string{"a", "b"} {
		fp, err := e.Fingerprint(n.Plug(name), c)
		if err != nil {
			return err
		}
		d.WriteFingerprint(fp)
	}
	return nil
}
