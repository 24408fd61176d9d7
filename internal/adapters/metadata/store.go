// Package metadata implements the in-memory metadata store. Entries attach
// to node and plug instances directly, so they follow a component through
// renames and survive undo round-trips without any bookkeeping.
package metadata

import (
	"sync"

	"go.trai.ch/weft/internal/core/ports"
)

type entry struct {
	key        string
	value      any
	persistent bool
}

// Store is an in-memory ports.MetadataStore. Keys keep registration order,
// so serialisation and migration treat metadata deterministically.
type Store struct {
	mu      sync.RWMutex
	entries map[ports.Component][]entry
}

var _ ports.MetadataStore = (*Store)(nil)

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{entries: make(map[ports.Component][]entry)}
}

// Get returns the value registered under key.
func (s *Store) Get(c ports.Component, key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.entries[c] {
		if e.key == key {
			return e.value, true
		}
	}
	return nil, false
}

// Set registers a value under key, replacing any previous entry in place.
func (s *Store) Set(c ports.Component, key string, value any, persistent bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.entries[c]
	for i := range list {
		if list[i].key == key {
			list[i].value = value
			list[i].persistent = persistent
			return
		}
	}
	s.entries[c] = append(list, entry{key: key, value: value, persistent: persistent})
}

// Keys lists registered keys in registration order.
func (s *Store) Keys(c ports.Component, persistentOnly bool) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []string
	for _, e := range s.entries[c] {
		if persistentOnly && !e.persistent {
			continue
		}
		out = append(out, e.key)
	}
	return out
}

// IsPersistent reports whether key is registered persistently.
func (s *Store) IsPersistent(c ports.Component, key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.entries[c] {
		if e.key == key {
			return e.persistent
		}
	}
	return false
}
