// Package loader reads YAML definition files and reconstructs their content
// inside a container node. Loading is tolerant of bad items: a plug or node
// that cannot be built is logged and skipped so the rest of the definition
// still loads.
package loader

import (
	"os"
	"sort"
	"strings"

	"github.com/zclconf/go-cty/cty"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"

	"go.trai.ch/weft/internal/core/domain"
	"go.trai.ch/weft/internal/core/ports"
	"go.trai.ch/weft/internal/nodes"
)

// Resolver turns a definition source name into its raw bytes.
type Resolver interface {
	Read(source string) ([]byte, error)
}

// FileResolver reads definitions from the filesystem.
type FileResolver struct{}

func (FileResolver) Read(source string) ([]byte, error) {
	return os.ReadFile(source) //nolint:gosec // path is provided by user
}

// MapResolver serves definitions from memory. Tests use it to reload a
// container from changing definitions without touching the filesystem.
type MapResolver map[string][]byte

func (m MapResolver) Read(source string) ([]byte, error) {
	data, ok := m[source]
	if !ok {
		return nil, zerr.With(zerr.New("definition not found"), "source", source)
	}
	return data, nil
}

// Loader implements ports.DefinitionSource on YAML definitions.
type Loader struct {
	resolver Resolver
	log      ports.Logger
	meta     ports.MetadataStore
}

var _ ports.DefinitionSource = (*Loader)(nil)

// New creates a loader reading through resolver.
func New(resolver Resolver, log ports.Logger, meta ports.MetadataStore) *Loader {
	return &Loader{resolver: resolver, log: log, meta: meta}
}

// Load reconstructs the definition named by source inside target. The
// returned erred flag reports items that were skipped; a non-nil error means
// the source could not be read or parsed at all.
func (l *Loader) Load(target *domain.Node, source string) (bool, error) {
	data, err := l.resolver.Read(source)
	if err != nil {
		return false, zerr.Wrap(err, "reading definition")
	}
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return false, zerr.Wrap(err, "parsing definition")
	}
	g := target.Graph()
	if g == nil {
		return false, zerr.With(domain.ErrDetached, "node", target.Name())
	}

	erred := false
	skip := func(what, name string, err error) {
		erred = true
		l.log.Warn("skipping definition item", "item", what, "name", name, "error", err)
	}

	for _, dto := range def.Plugs {
		p, err := buildPlug(dto)
		if err != nil {
			skip("plug", dto.Name, err)
			continue
		}
		if err := g.AddPlug(target, p); err != nil {
			skip("plug", dto.Name, err)
		}
	}

	for _, dto := range def.Nodes {
		n, err := nodes.NewNode(dto.Name, dto.Kind)
		if err != nil {
			skip("node", dto.Name, err)
			continue
		}
		if err := g.AddNode(target, n); err != nil {
			skip("node", dto.Name, err)
			continue
		}
		for _, rel := range sortedKeys(dto.Values) {
			p := n.PlugDescendant(rel)
			if p == nil {
				skip("value", dto.Name+"."+rel, zerr.With(domain.ErrPlugNotFound, "plug", rel))
				continue
			}
			v, err := ctyFromAny(dto.Values[rel], p.Type())
			if err != nil {
				skip("value", dto.Name+"."+rel, err)
				continue
			}
			if err := g.SetValue(p, v); err != nil {
				skip("value", dto.Name+"."+rel, err)
			}
		}
	}

	for _, dto := range def.Connections {
		src := resolvePlug(target, dto.From)
		dst := resolvePlug(target, dto.To)
		if src == nil || dst == nil {
			skip("connection", dto.From+" -> "+dto.To, zerr.With(zerr.With(domain.ErrPlugNotFound, "from", dto.From), "to", dto.To))
			continue
		}
		if err := g.SetInput(dst, src); err != nil {
			skip("connection", dto.From+" -> "+dto.To, err)
		}
	}

	for _, dto := range def.Metadata {
		comp, err := resolveComponent(target, dto.Target)
		if err != nil {
			skip("metadata", dto.Target+":"+dto.Key, err)
			continue
		}
		l.meta.Set(comp, dto.Key, dto.Value, dto.Persistent)
	}

	l.meta.Set(target, ports.MilestoneVersionKey, def.Version.Milestone, true)
	l.meta.Set(target, ports.MajorVersionKey, def.Version.Major, true)
	return erred, nil
}

// buildPlug converts a PlugDTO tree into a plug tree.
func buildPlug(dto PlugDTO) (*domain.Plug, error) {
	dir := domain.In
	switch dto.Direction {
	case "", "in":
	case "out":
		dir = domain.Out
	default:
		return nil, zerr.With(zerr.New("bad plug direction"), "direction", dto.Direction)
	}

	if len(dto.Children) > 0 {
		p := domain.NewPlug(dto.Name, dir)
		for _, c := range dto.Children {
			child, err := buildPlug(c)
			if err != nil {
				return nil, err
			}
			if err := p.AddChild(child); err != nil {
				return nil, err
			}
		}
		return p, nil
	}

	typ, err := parseType(dto.Type)
	if err != nil {
		return nil, err
	}
	def := zeroValue(typ)
	if dto.Default != nil {
		if def, err = ctyFromAny(dto.Default, typ); err != nil {
			return nil, err
		}
	}
	return domain.NewValuePlug(dto.Name, dir, def), nil
}

// parseType maps a definition type name to a cty type.
func parseType(name string) (cty.Type, error) {
	switch {
	case name == "string":
		return cty.String, nil
	case name == "number":
		return cty.Number, nil
	case name == "bool":
		return cty.Bool, nil
	case strings.HasPrefix(name, "list(") && strings.HasSuffix(name, ")"):
		el, err := parseType(name[len("list(") : len(name)-1])
		if err != nil {
			return cty.NilType, err
		}
		return cty.List(el), nil
	case strings.HasPrefix(name, "map(") && strings.HasSuffix(name, ")"):
		el, err := parseType(name[len("map(") : len(name)-1])
		if err != nil {
			return cty.NilType, err
		}
		return cty.Map(el), nil
	}
	return cty.NilType, zerr.With(zerr.New("unknown plug type"), "type", name)
}

// zeroValue returns the natural empty value of a type.
func zeroValue(typ cty.Type) cty.Value {
	switch {
	case typ == cty.String:
		return cty.StringVal("")
	case typ == cty.Number:
		return cty.Zero
	case typ == cty.Bool:
		return cty.False
	case typ.IsListType():
		return cty.ListValEmpty(typ.ElementType())
	case typ.IsMapType():
		return cty.MapValEmpty(typ.ElementType())
	}
	return cty.NullVal(typ)
}

// ctyFromAny converts a decoded YAML value to a cty value of the wanted
// type.
func ctyFromAny(raw any, want cty.Type) (cty.Value, error) {
	switch {
	case want == cty.String:
		if s, ok := raw.(string); ok {
			return cty.StringVal(s), nil
		}
	case want == cty.Number:
		switch n := raw.(type) {
		case int:
			return cty.NumberIntVal(int64(n)), nil
		case int64:
			return cty.NumberIntVal(n), nil
		case float64:
			return cty.NumberFloatVal(n), nil
		}
	case want == cty.Bool:
		if b, ok := raw.(bool); ok {
			return cty.BoolVal(b), nil
		}
	case want.IsListType():
		items, ok := raw.([]any)
		if !ok {
			break
		}
		if len(items) == 0 {
			return cty.ListValEmpty(want.ElementType()), nil
		}
		vals := make([]cty.Value, len(items))
		for i, item := range items {
			v, err := ctyFromAny(item, want.ElementType())
			if err != nil {
				return cty.NilVal, err
			}
			vals[i] = v
		}
		return cty.ListVal(vals), nil
	case want.IsMapType():
		items, ok := raw.(map[string]any)
		if !ok {
			break
		}
		if len(items) == 0 {
			return cty.MapValEmpty(want.ElementType()), nil
		}
		vals := make(map[string]cty.Value, len(items))
		for k, item := range items {
			v, err := ctyFromAny(item, want.ElementType())
			if err != nil {
				return cty.NilVal, err
			}
			vals[k] = v
		}
		return cty.MapVal(vals), nil
	}
	return cty.NilVal, zerr.With(domain.ErrTypeMismatch, "want", want.FriendlyName())
}

// resolvePlug resolves a dotted address relative to the container: the
// longest prefix of child node names followed by a plug path.
func resolvePlug(target *domain.Node, addr string) *domain.Plug {
	parts := strings.Split(addr, ".")
	cur := target
	for i, part := range parts {
		if child := cur.Child(part); child != nil {
			cur = child
			continue
		}
		return cur.PlugDescendant(strings.Join(parts[i:], "."))
	}
	return nil
}

// resolveComponent resolves a metadata target: empty means the container, a
// node path means the node, anything else a plug.
func resolveComponent(target *domain.Node, addr string) (ports.Component, error) {
	if addr == "" {
		return target, nil
	}
	cur := target
	found := true
	for _, part := range strings.Split(addr, ".") {
		if cur = cur.Child(part); cur == nil {
			found = false
			break
		}
	}
	if found {
		return cur, nil
	}
	if p := resolvePlug(target, addr); p != nil {
		return p, nil
	}
	return nil, zerr.With(domain.ErrPlugNotFound, "target", addr)
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
