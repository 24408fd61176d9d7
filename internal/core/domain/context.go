package domain

import (
	"sort"

	"github.com/zclconf/go-cty/cty"
)

// ContextEntry is one key/value pair of a Context.
type ContextEntry struct {
	Key   string
	Value cty.Value
}

// Context is the immutable parameter set scoping one evaluation request,
// for example the hierarchical address being computed or the frame number.
// A Context is never mutated in place; WithValue and WithValues return
// copies. Contexts are freely shared by reference across goroutines.
type Context struct {
	entries []ContextEntry // sorted by key
	hash    Fingerprint
}

// NewContext creates an empty Context.
func NewContext() *Context {
	c := &Context{}
	c.rehash()
	return c
}

// WithValue returns a copy of c with key set to value.
func (c *Context) WithValue(key string, value cty.Value) *Context {
	return c.WithValues(map[string]cty.Value{key: value})
}

// WithValues returns a copy of c with every entry of values applied.
func (c *Context) WithValues(values map[string]cty.Value) *Context {
	merged := make(map[string]cty.Value, len(c.entries)+len(values))
	for _, e := range c.entries {
		merged[e.Key] = e.Value
	}
	for k, v := range values {
		merged[k] = v
	}

	out := &Context{entries: make([]ContextEntry, 0, len(merged))}
	for k, v := range merged {
		out.entries = append(out.entries, ContextEntry{Key: k, Value: v})
	}
	sort.Slice(out.entries, func(i, j int) bool { return out.entries[i].Key < out.entries[j].Key })
	out.rehash()
	return out
}

// Get returns the value stored under key.
func (c *Context) Get(key string) (cty.Value, bool) {
	i := sort.Search(len(c.entries), func(i int) bool { return c.entries[i].Key >= key })
	if i < len(c.entries) && c.entries[i].Key == key {
		return c.entries[i].Value, true
	}
	return cty.NilVal, false
}

// GetString returns the string stored under key, or def if the key is
// absent or not a string.
func (c *Context) GetString(key, def string) string {
	v, ok := c.Get(key)
	if !ok || v.Type() != cty.String || v.IsNull() {
		return def
	}
	return v.AsString()
}

// Len returns the number of entries.
func (c *Context) Len() int {
	return len(c.entries)
}

// Entries returns a copy of the entries in key order.
func (c *Context) Entries() []ContextEntry {
	out := make([]ContextEntry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Hash returns the structural fingerprint of the context. It is computed
// once at construction.
func (c *Context) Hash() Fingerprint {
	return c.hash
}

// Equal reports whether two contexts hold structurally equal entries.
func (c *Context) Equal(o *Context) bool {
	if c.hash != o.hash || len(c.entries) != len(o.entries) {
		return false
	}
	for i, e := range c.entries {
		if o.entries[i].Key != e.Key || !o.entries[i].Value.RawEquals(e.Value) {
			return false
		}
	}
	return true
}

func (c *Context) rehash() {
	d := NewDigest()
	d.WriteString("context")
	for _, e := range c.entries {
		d.WriteString(e.Key)
		d.WriteValue(e.Value)
	}
	c.hash = d.Sum()
}
