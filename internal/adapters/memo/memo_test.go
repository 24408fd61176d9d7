package memo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"go.trai.ch/weft/internal/adapters/memo"
	"go.trai.ch/weft/internal/core/domain"
)

func TestCache_ValueRoundTrip(t *testing.T) {
	c, err := memo.NewCache(0)
	require.NoError(t, err)
	defer c.Close()

	fp := domain.Fingerprint{Hi: 1, Lo: 2}
	_, ok := c.Value(fp)
	assert.False(t, ok)

	c.SetValue(fp, cty.StringVal("cached"))
	c.Wait()

	v, ok := c.Value(fp)
	require.True(t, ok)
	assert.True(t, v.RawEquals(cty.StringVal("cached")))
}

func TestCache_FingerprintRoundTrip(t *testing.T) {
	c, err := memo.NewCache(0)
	require.NoError(t, err)
	defer c.Close()

	k := domain.HashKey{PlugID: 7, Context: domain.Fingerprint{Hi: 9}, Epoch: 1}
	_, ok := c.Fingerprint(k)
	assert.False(t, ok)

	want := domain.Fingerprint{Hi: 3, Lo: 4}
	c.SetFingerprint(k, want)
	c.Wait()

	got, ok := c.Fingerprint(k)
	require.True(t, ok)
	assert.Equal(t, want, got)

	// A bumped epoch is a different key; the old entry is unreachable.
	k.Epoch = 2
	_, ok = c.Fingerprint(k)
	assert.False(t, ok)
}

func TestUnbounded(t *testing.T) {
	c := memo.NewUnbounded()

	fp := domain.Fingerprint{Hi: 5}
	c.SetValue(fp, cty.True)
	v, ok := c.Value(fp)
	require.True(t, ok)
	assert.True(t, v.RawEquals(cty.True))
	assert.Equal(t, 1, c.Len())

	k := domain.HashKey{PlugID: 1}
	c.SetFingerprint(k, fp)
	got, ok := c.Fingerprint(k)
	require.True(t, ok)
	assert.Equal(t, fp, got)
}
