// Package app implements the application layer for weft: opening definition
// files into live graphs and evaluating plugs in caller-supplied contexts.
package app

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
	"go.trai.ch/zerr"

	"go.trai.ch/weft/internal/core/domain"
	"go.trai.ch/weft/internal/core/ports"
	"go.trai.ch/weft/internal/engine/reconcile"
)

// App opens definitions and evaluates plugs.
type App struct {
	defs    ports.DefinitionSource
	eval    domain.Evaluator
	meta    ports.MetadataStore
	log     ports.Logger
	metrics ports.Metrics
}

// New creates a new App instance.
func New(defs ports.DefinitionSource, eval domain.Evaluator, meta ports.MetadataStore, log ports.Logger, metrics ports.Metrics) *App {
	return &App{defs: defs, eval: eval, meta: meta, log: log, metrics: metrics}
}

// Session is one open definition: a graph whose root holds a single
// reference container loaded from the source file.
type Session struct {
	Graph *domain.Graph
	Ref   *reconcile.Reference

	eval domain.Evaluator
}

// Open loads a definition file into a fresh graph. The session is returned
// even when loading reported skipped items, together with the load error,
// so callers can decide whether a partial graph is acceptable.
func (a *App) Open(source string) (*Session, error) {
	g := domain.New("root")
	g.PlugDirtied().Connect(func(*domain.Plug) { a.metrics.PlugsDirtied(1) })

	container, err := domain.NewNode(containerName(source), nil)
	if err != nil {
		return nil, err
	}
	if err := g.AddNode(nil, container); err != nil {
		return nil, err
	}
	ref, err := reconcile.New(container, a.defs, a.meta, a.log, a.metrics)
	if err != nil {
		return nil, err
	}

	s := &Session{Graph: g, Ref: ref, eval: a.eval}
	if err := ref.Load(source); err != nil {
		if errors.Is(err, domain.ErrDefinitionLoad) {
			return s, err
		}
		return nil, err
	}
	return s, nil
}

// Eval evaluates a dotted plug path in a context assembled from string
// key/value pairs and renders the result as JSON.
func (a *App) Eval(source, plugPath string, vars map[string]string) (string, error) {
	s, err := a.Open(source)
	if err != nil && !errors.Is(err, domain.ErrDefinitionLoad) {
		return "", err
	}
	v, err := s.Eval(plugPath, vars)
	if err != nil {
		return "", err
	}
	data, err := ctyjson.Marshal(v, v.Type())
	if err != nil {
		return "", zerr.Wrap(err, "rendering value")
	}
	return string(data), nil
}

// Inspect renders the node and plug tree of a definition.
func (a *App) Inspect(source string) (string, error) {
	s, err := a.Open(source)
	if err != nil && !errors.Is(err, domain.ErrDefinitionLoad) {
		return "", err
	}
	return s.Describe(), nil
}

// Eval evaluates a plug path relative to the graph root.
func (s *Session) Eval(plugPath string, vars map[string]string) (cty.Value, error) {
	p, err := s.Graph.FindPlug(plugPath)
	if err != nil {
		return cty.NilVal, err
	}
	c := domain.NewContext()
	if len(vars) > 0 {
		vals := make(map[string]cty.Value, len(vars))
		for k, v := range vars {
			vals[k] = cty.StringVal(v)
		}
		c = c.WithValues(vals)
	}
	return s.eval.Value(p, c)
}

// Describe renders the session's node tree with plugs, connections and
// local values.
func (s *Session) Describe() string {
	var b strings.Builder
	describeNode(&b, s.Graph.Root(), 0)
	return b.String()
}

func describeNode(b *strings.Builder, n *domain.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	if n.Parent() != nil {
		kind := "container"
		if n.Kind() != nil {
			kind = n.Kind().Name()
		}
		fmt.Fprintf(b, "%s%s (%s)\n", indent, n.Name(), kind)
		for _, p := range n.Plugs() {
			describePlug(b, p, depth+1)
		}
	}
	children := n.Children()
	sort.Slice(children, func(i, j int) bool { return children[i].Name() < children[j].Name() })
	for _, c := range children {
		describeNode(b, c, depth+1)
	}
}

func describePlug(b *strings.Builder, p *domain.Plug, depth int) {
	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(b, "%s.%s [%s]", indent, p.Name(), p.Direction())
	if in := p.Input(); in != nil {
		fmt.Fprintf(b, " <- %s", in.FullName())
	} else if len(p.Children()) == 0 && !p.IsSetToDefault() {
		fmt.Fprintf(b, " = %s", p.EffectiveValue().GoString())
	}
	b.WriteString("\n")
	for _, c := range p.Children() {
		describePlug(b, c, depth+1)
	}
}

// containerName derives a node name from a source path: the base name
// without extensions, with dots replaced so the name stays addressable.
func containerName(source string) string {
	base := filepath.Base(source)
	if i := strings.Index(base, "."); i > 0 {
		base = base[:i]
	}
	base = strings.ReplaceAll(base, ".", "_")
	if base == "" || base == "/" {
		return "main"
	}
	return base
}
