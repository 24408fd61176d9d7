// Package reconcile implements reference containers: nodes whose content is
// loaded from an external definition and can be reloaded in place. A reload
// migrates local state (values, connections, metadata) from the old
// interface plugs onto the freshly loaded ones, tolerating per-plug
// mismatches so one renamed plug never loses the rest of the rig.
package reconcile

import (
	"errors"
	"sort"
	"strings"

	"go.trai.ch/zerr"

	"go.trai.ch/weft/internal/core/domain"
	"go.trai.ch/weft/internal/core/ports"
)

const (
	// UserPlugName is the container-local plug holding user-authored
	// children. It never takes part in definition loading or migration.
	UserPlugName = "user"

	// reservedPrefix marks plug names the engine owns. Definition files may
	// not declare them and reloads never migrate them.
	reservedPrefix = "__"

	// tmpPrefix namespaces old interface plugs while the replacement
	// definition loads, so old and new can coexist during migration.
	tmpPrefix = "__tmp__"
)

// Legacy version cutover: definitions exported before milestone 0, major 9
// saved every value, so values equal to defaults carry no intent and must
// not survive migration as overrides.
const (
	legacyMilestone = 0
	legacyMajor     = 9
)

// Reference manages one container node backed by an external definition.
type Reference struct {
	node    *domain.Node
	source  string
	defs    ports.DefinitionSource
	meta    ports.MetadataStore
	log     ports.Logger
	metrics ports.Metrics

	loaded domain.Signal[*Reference]
}

// New wraps an attached container node. The container gets a user plug if
// it does not have one yet.
func New(node *domain.Node, defs ports.DefinitionSource, meta ports.MetadataStore, log ports.Logger, metrics ports.Metrics) (*Reference, error) {
	if node.Graph() == nil {
		return nil, zerr.With(domain.ErrDetached, "node", node.Name())
	}
	if node.Plug(UserPlugName) == nil {
		if err := node.AddPlug(domain.NewPlug(UserPlugName, domain.In)); err != nil {
			return nil, err
		}
	}
	return &Reference{
		node:    node,
		defs:    defs,
		meta:    meta,
		log:     log,
		metrics: metrics,
	}, nil
}

// Node returns the container node.
func (r *Reference) Node() *domain.Node { return r.node }

// Source returns the definition the container currently holds, or "".
func (r *Reference) Source() string { return r.source }

// Loaded is emitted after every completed (re)load, including erroneous
// best-effort ones.
func (r *Reference) Loaded() *domain.Signal[*Reference] { return &r.loaded }

// Load replaces the container's content with the named definition,
// migrating local state from the previous content. The whole reload forms
// one undoable command; undoing it reloads the previous definition.
//
// A best-effort load that skipped items returns ErrDefinitionLoad but is
// still recorded and undoable; only a fatal load leaves the log untouched.
func (r *Reference) Load(source string) error {
	cmd := &loadCommand{ref: r, next: source, prev: r.source}
	if err := r.node.Graph().Log().Enact(cmd); err != nil {
		return err
	}
	return cmd.deferred
}

// loadCommand makes a reload undoable by source name rather than by
// recording every internal edit: undo is simply a reload of the previous
// definition, which re-runs the same migration machinery.
type loadCommand struct {
	ref  *Reference
	next string
	prev string

	// deferred carries ErrDefinitionLoad past the transaction log, which
	// would otherwise treat the best-effort load as a failed command and
	// not record it.
	deferred error
}

func (c *loadCommand) Tag() string { return "referenceLoad" }

func (c *loadCommand) Do(_ *domain.Graph) error {
	c.deferred = nil
	err := c.ref.loadInternal(c.next)
	if errors.Is(err, domain.ErrDefinitionLoad) {
		c.deferred = err
		return nil
	}
	return err
}

func (c *loadCommand) Undo(_ *domain.Graph) error {
	err := c.ref.loadInternal(c.prev)
	if errors.Is(err, domain.ErrDefinitionLoad) {
		return nil
	}
	return err
}

func (r *Reference) loadInternal(source string) error {
	g := r.node.Graph()
	if g == nil {
		return zerr.With(domain.ErrDetached, "node", r.node.Name())
	}

	// Internal edits must not be individually undoable; the load command is
	// the undo unit.
	g.Log().BeginDisabled()
	defer func() { _ = g.Log().End() }()

	// Move the old interface aside so the new definition can claim the
	// original names.
	old := map[string]*domain.Plug{}
	for _, p := range r.node.Plugs() {
		if !isInterfacePlug(p) {
			continue
		}
		old[p.Name()] = p
		if err := g.RenamePlug(p, tmpPrefix+p.Name()); err != nil {
			return err
		}
	}

	for _, child := range r.node.Children() {
		if err := g.RemoveNode(child); err != nil {
			return err
		}
	}

	erred := false
	if source != "" {
		var added []*domain.Plug
		disconnect := g.PlugAdded().Connect(func(ev domain.PlugAddedEvent) {
			if ev.Node == r.node && ev.Parent == nil {
				added = append(added, ev.Plug)
			}
		})
		loadErred, err := r.defs.Load(r.node, source)
		disconnect()
		if err != nil {
			// The source itself was unreadable. Put the old interface back
			// and give up; removed child nodes are gone, which is the best
			// a failed in-place reload can do.
			for _, name := range sortedNames(old) {
				if rerr := g.RenamePlug(old[name], name); rerr != nil {
					r.log.Error("restoring plug after failed load", "plug", name, "error", rerr)
				}
			}
			return zerr.With(zerr.Wrap(err, "loading definition"), "source", source)
		}
		erred = loadErred

		for _, p := range added {
			r.adoptLoadedPlug(g, p)
		}

		legacy := r.isLegacyDefinition()
		for _, name := range sortedNames(old) {
			// Migration failures are warnings: the plug keeps its new
			// default and the load itself still counts as clean.
			if err := r.migratePlug(g, old[name], r.node.Plug(name), !legacy); err != nil {
				r.log.Warn("plug migration failed",
					"source", source,
					"plug", r.node.FullName()+"."+name,
					"error", err,
				)
			}
		}
	}

	for _, name := range sortedNames(old) {
		if err := g.RemovePlug(old[name]); err != nil {
			return err
		}
	}

	r.source = source
	r.metrics.ReferenceLoaded()
	r.loaded.Emit(r)

	if erred {
		return zerr.With(domain.ErrDefinitionLoad, "source", source)
	}
	return nil
}

// adoptLoadedPlug normalises a freshly loaded top-level plug: the dynamic
// flag means locally authored, which definition content is not, and
// persistent metadata would shadow the definition as the source of truth.
func (r *Reference) adoptLoadedPlug(g *domain.Graph, top *domain.Plug) {
	walkPlugs(top, func(p *domain.Plug) {
		if p.HasFlag(domain.FlagDynamic) {
			if err := g.SetFlags(p, domain.FlagDynamic, false); err != nil {
				r.log.Warn("stripping dynamic flag", "plug", p.FullName(), "error", err)
			}
		}
		for _, key := range r.meta.Keys(p, true) {
			if v, ok := r.meta.Get(p, key); ok {
				r.meta.Set(p, key, v, false)
			}
		}
	})
}

// isLegacyDefinition reports whether the loaded definition predates
// default-aware exporting.
func (r *Reference) isLegacyDefinition() bool {
	milestone := r.versionMeta(ports.MilestoneVersionKey)
	major := r.versionMeta(ports.MajorVersionKey)
	return milestone == legacyMilestone && major < legacyMajor
}

func (r *Reference) versionMeta(key string) int {
	v, ok := r.meta.Get(r.node, key)
	if !ok {
		return 0
	}
	n, ok := v.(int)
	if !ok {
		return 0
	}
	return n
}

// migratePlug moves local state from an old interface plug onto its
// replacement. A nil replacement means the definition dropped the plug; its
// local state is discarded silently, matching how removal behaves.
func (r *Reference) migratePlug(g *domain.Graph, old, now *domain.Plug, ignoreDefaults bool) error {
	if now == nil {
		return nil
	}
	if err := r.copyInputsAndValues(g, old, now, ignoreDefaults); err != nil {
		return err
	}
	if err := r.transferOutputs(g, old, now); err != nil {
		return err
	}
	r.copyMetadata(old, now)
	return nil
}

// copyInputsAndValues recreates incoming connections and local value
// overrides on the new plug, child by child. Children the new definition no
// longer has are skipped.
func (r *Reference) copyInputsAndValues(g *domain.Graph, old, now *domain.Plug, ignoreDefaults bool) error {
	if in := old.Input(); in != nil {
		return g.SetInput(now, in)
	}
	if children := old.Children(); len(children) > 0 {
		for _, oc := range children {
			nc := now.Child(oc.Name())
			if nc == nil {
				continue
			}
			if err := r.copyInputsAndValues(g, oc, nc, ignoreDefaults); err != nil {
				return err
			}
		}
		return nil
	}
	if now.Input() != nil || now.Direction() != domain.In {
		return nil
	}
	if ignoreDefaults && old.IsSetToDefault() {
		return nil
	}
	if !old.Type().Equals(now.Type()) {
		return zerr.With(zerr.With(zerr.With(domain.ErrTypeMismatch,
			"plug", now.FullName()),
			"want", now.Type().FriendlyName()),
			"got", old.Type().FriendlyName(),
		)
	}
	return g.SetValue(now, old.EffectiveValue())
}

// transferOutputs repoints downstream connections from the old plug tree to
// the corresponding plugs of the new one.
func (r *Reference) transferOutputs(g *domain.Graph, old, now *domain.Plug) error {
	for _, dst := range old.Outputs() {
		if err := g.SetInput(dst, now); err != nil {
			return err
		}
	}
	for _, oc := range old.Children() {
		nc := now.Child(oc.Name())
		if nc == nil {
			continue
		}
		if err := r.transferOutputs(g, oc, nc); err != nil {
			return err
		}
	}
	return nil
}

// copyMetadata carries instance metadata from the old plug tree onto the
// new one, preserving per-entry persistence.
func (r *Reference) copyMetadata(old, now *domain.Plug) {
	for _, key := range r.meta.Keys(old, false) {
		if v, ok := r.meta.Get(old, key); ok {
			r.meta.Set(now, key, v, r.meta.IsPersistent(old, key))
		}
	}
	for _, oc := range old.Children() {
		if nc := now.Child(oc.Name()); nc != nil {
			r.copyMetadata(oc, nc)
		}
	}
}

// isInterfacePlug classifies a top-level plug as definition content. The
// user plug, reserved names and locally authored (dynamic) plugs stay out
// of reloads. Only top-level plugs are ever classified, so descendants of
// the user plug survive reloads whether or not a definition source flagged
// them dynamic; old sources did not.
func isInterfacePlug(p *domain.Plug) bool {
	name := p.Name()
	if name == UserPlugName || strings.HasPrefix(name, reservedPrefix) {
		return false
	}
	return !p.HasFlag(domain.FlagDynamic)
}

func walkPlugs(root *domain.Plug, fn func(*domain.Plug)) {
	fn(root)
	for _, c := range root.Children() {
		walkPlugs(c, fn)
	}
}

func sortedNames(m map[string]*domain.Plug) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
