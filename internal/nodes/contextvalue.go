package nodes

import (
	"github.com/zclconf/go-cty/cty"

	"go.trai.ch/weft/internal/core/domain"
)

func init() {
	Register("contextValue", func() domain.Kind { return &ContextValue{} })
}

// ContextValue reads one entry out of the evaluation context. The name of
// the entry is itself an input, so it may be driven by an upstream
// connection. The output hash covers only the named entry rather than the
// whole context: changing unrelated context entries leaves the cache warm.
type ContextValue struct{}

var (
	_ domain.Kind         = (*ContextValue)(nil)
	_ domain.OutputHasher = (*ContextValue)(nil)
)

func (*ContextValue) Name() string { return "contextValue" }

func (*ContextValue) Setup(n *domain.Node) error {
	if err := n.AddPlug(domain.NewValuePlug("name", domain.In, cty.StringVal(""))); err != nil {
		return err
	}
	if err := n.AddPlug(domain.NewValuePlug("fallback", domain.In, cty.StringVal(""))); err != nil {
		return err
	}
	return n.AddPlug(domain.NewValuePlug("out", domain.Out, cty.StringVal("")))
}

func (*ContextValue) Affects(n *domain.Node, input *domain.Plug) []*domain.Plug {
	switch input.Name() {
	case "name", "fallback":
		return []*domain.Plug{n.Plug("out")}
	}
	return nil
}

func (k *ContextValue) Compute(e domain.Evaluator, n *domain.Node, out *domain.Plug, c *domain.Context) (cty.Value, error) {
	v, _, err := k.lookup(e, n, c)
	return v, err
}

func (k *ContextValue) HashOutput(e domain.Evaluator, n *domain.Node, out *domain.Plug, c *domain.Context, d *domain.Digest) error {
	v, name, err := k.lookup(e, n, c)
	if err != nil {
		return err
	}
	d.WriteString(name)
	d.WriteValue(v)
	return nil
}

// lookup resolves the name input and returns the context entry registered
// under it, or the fallback.
func (*ContextValue) lookup(e domain.Evaluator, n *domain.Node, c *domain.Context) (cty.Value, string, error) {
	name, err := e.Value(n.Plug("name"), c)
	if err != nil {
		return cty.NilVal, "", err
	}
	key := ""
	if name.Type() == cty.String && !name.IsNull() {
		key = name.AsString()
	}
	if v, ok := c.Get(key); ok && v.Type() == cty.String {
		return v, key, nil
	}
	fallback, err := e.Value(n.Plug("fallback"), c)
	if err != nil {
		return cty.NilVal, "", err
	}
	return fallback, key, nil
}
