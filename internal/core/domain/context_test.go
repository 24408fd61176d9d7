package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/zclconf/go-cty/cty"

	"go.trai.ch/weft/internal/core/domain"
)

func TestContext_CopyOnWrite(t *testing.T) {
	base := domain.NewContext()
	derived := base.WithValue("frame", cty.NumberIntVal(7))

	assert.Equal(t, 0, base.Len(), "base must stay untouched")
	assert.Equal(t, 1, derived.Len())

	v, ok := derived.Get("frame")
	assert.True(t, ok)
	assert.True(t, v.RawEquals(cty.NumberIntVal(7)))

	_, ok = base.Get("frame")
	assert.False(t, ok)
}

func TestContext_HashIgnoresInsertionOrder(t *testing.T) {
	a := domain.NewContext().
		WithValue("x", cty.StringVal("1")).
		WithValue("y", cty.StringVal("2"))
	b := domain.NewContext().
		WithValue("y", cty.StringVal("2")).
		WithValue("x", cty.StringVal("1"))

	assert.Equal(t, a.Hash(), b.Hash())
	assert.True(t, a.Equal(b))
}

func TestContext_HashSeparatesValues(t *testing.T) {
	a := domain.NewContext().WithValue("x", cty.StringVal("1"))
	b := domain.NewContext().WithValue("x", cty.StringVal("2"))
	c := domain.NewContext().WithValue("y", cty.StringVal("1"))

	assert.NotEqual(t, a.Hash(), b.Hash())
	assert.NotEqual(t, a.Hash(), c.Hash())
	assert.NotEqual(t, a.Hash(), domain.NewContext().Hash())
}

func TestContext_Override(t *testing.T) {
	base := domain.NewContext().WithValue("x", cty.StringVal("outer"))
	inner := base.WithValue("x", cty.StringVal("inner"))

	assert.Equal(t, "outer", base.GetString("x", ""))
	assert.Equal(t, "inner", inner.GetString("x", ""))
	assert.NotEqual(t, base.Hash(), inner.Hash())
}

func TestContext_GetString(t *testing.T) {
	c := domain.NewContext().
		WithValue("s", cty.StringVal("hello")).
		WithValue("n", cty.NumberIntVal(1))

	assert.Equal(t, "hello", c.GetString("s", "def"))
	assert.Equal(t, "def", c.GetString("missing", "def"))
	assert.Equal(t, "def", c.GetString("n", "def"), "non-string entries fall back")
}

func TestContext_Entries(t *testing.T) {
	c := domain.NewContext().WithValues(map[string]cty.Value{
		"b": cty.StringVal("2"),
		"a": cty.StringVal("1"),
	})
	entries := c.Entries()
	assert.Len(t, entries, 2)
	assert.Equal(t, "a", entries[0].Key, "entries are key-sorted")
	assert.Equal(t, "b", entries[1].Key)
}
