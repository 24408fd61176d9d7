// Package nodes holds the built-in node kinds and the registry that maps
// kind names to factories. Kind names appear in definitions and in
// fingerprints, so renaming a kind invalidates every cached result it ever
// produced.
package nodes

import (
	"sort"
	"sync"

	"go.trai.ch/zerr"

	"go.trai.ch/weft/internal/core/domain"
)

var (
	mu       sync.RWMutex
	registry = map[string]func() domain.Kind{}
)

// Register adds a kind factory under its name. Registering the same name
// twice panics; kinds are registered from init functions and a collision is
// a programming error.
func Register(name string, factory func() domain.Kind) {
	mu.Lock()
	defer mu.Unlock()
	if _, ok := registry[name]; ok {
		panic("nodes: kind registered twice: " + name)
	}
	registry[name] = factory
}

// New creates a fresh kind instance by name.
func New(name string) (domain.Kind, error) {
	mu.RLock()
	factory, ok := registry[name]
	mu.RUnlock()
	if !ok {
		return nil, zerr.With(domain.ErrUnknownKind, "kind", name)
	}
	return factory(), nil
}

// NewNode creates a node of the named kind, running the kind's Setup.
func NewNode(name, kind string) (*domain.Node, error) {
	k, err := New(kind)
	if err != nil {
		return nil, err
	}
	return domain.NewNode(name, k)
}

// Kinds returns the registered kind names, sorted.
func Kinds() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
