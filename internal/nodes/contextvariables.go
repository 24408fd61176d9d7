package nodes

import (
	"github.com/zclconf/go-cty/cty"

	"go.trai.ch/weft/internal/core/domain"
)

func init() {
	Register("contextVariables", func() domain.Kind { return &ContextVariables{} })
}

// ContextVariables passes its input through, evaluated in a context extended
// with a map of variables. Entries override same-named entries of the outer
// context for everything upstream of the input.
type ContextVariables struct{}

var (
	_ domain.Kind         = (*ContextVariables)(nil)
	_ domain.OutputHasher = (*ContextVariables)(nil)
)

func (*ContextVariables) Name() string { return "contextVariables" }

func (*ContextVariables) Setup(n *domain.Node) error {
	if err := n.AddPlug(domain.NewValuePlug("in", domain.In, cty.StringVal(""))); err != nil {
		return err
	}
	vars := domain.NewValuePlug("variables", domain.In, cty.MapValEmpty(cty.String))
	if err := n.AddPlug(vars); err != nil {
		return err
	}
	return n.AddPlug(domain.NewValuePlug("out", domain.Out, cty.StringVal("")))
}

func (*ContextVariables) Affects(n *domain.Node, input *domain.Plug) []*domain.Plug {
	switch input.Name() {
	case "in", "variables":
		return []*domain.Plug{n.Plug("out")}
	}
	return nil
}

func (k *ContextVariables) Compute(e domain.Evaluator, n *domain.Node, out *domain.Plug, c *domain.Context) (cty.Value, error) {
	inner, err := k.innerContext(e, n, c)
	if err != nil {
		return cty.NilVal, err
	}
	return e.Value(n.Plug("in"), inner)
}

// HashOutput hashes the input under the extended context and the variables
// under the outer one. The outer context itself contributes only through
// those two, so outer entries the upstream never reads do not disturb the
// hash.
func (k *ContextVariables) HashOutput(e domain.Evaluator, n *domain.Node, out *domain.Plug, c *domain.Context, d *domain.Digest) error {
	inner, err := k.innerContext(e, n, c)
	if err != nil {
		return err
	}
	fp, err := e.Fingerprint(n.Plug("in"), inner)
	if err != nil {
		return err
	}
	d.WriteFingerprint(fp)
	vfp, err := e.Fingerprint(n.Plug("variables"), c)
	if err != nil {
		return err
	}
	d.WriteFingerprint(vfp)
	return nil
}

// innerContext extends c with the entries of the variables plug.
func (*ContextVariables) innerContext(e domain.Evaluator, n *domain.Node, c *domain.Context) (*domain.Context, error) {
	vars, err := e.Value(n.Plug("variables"), c)
	if err != nil {
		return nil, err
	}
	if vars.IsNull() || vars.LengthInt() == 0 {
		return c, nil
	}
	return c.WithValues(vars.AsValueMap()), nil
}
