package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/zclconf/go-cty/cty"

	"go.trai.ch/weft/internal/core/domain"
)

func TestDigest_Deterministic(t *testing.T) {
	sum := func() domain.Fingerprint {
		d := domain.NewDigest()
		d.WriteString("compute")
		d.WriteUint64(42)
		d.WriteValue(cty.StringVal("x"))
		return d.Sum()
	}
	assert.Equal(t, sum(), sum())
	assert.False(t, sum().IsZero())
}

func TestDigest_FieldBoundaries(t *testing.T) {
	a := domain.NewDigest()
	a.WriteString("ab")
	a.WriteString("c")

	b := domain.NewDigest()
	b.WriteString("a")
	b.WriteString("bc")

	assert.NotEqual(t, a.Sum(), b.Sum(), "adjacent fields must not alias")
}

func TestDigest_WriteValue(t *testing.T) {
	tests := []struct {
		name string
		a, b cty.Value
		same bool
	}{
		{"equal strings", cty.StringVal("x"), cty.StringVal("x"), true},
		{"different strings", cty.StringVal("x"), cty.StringVal("y"), false},
		{"string vs number", cty.StringVal("1"), cty.NumberIntVal(1), false},
		{"nil vs empty string", cty.NilVal, cty.StringVal(""), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			da := domain.NewDigest()
			da.WriteValue(tt.a)
			db := domain.NewDigest()
			db.WriteValue(tt.b)
			if tt.same {
				assert.Equal(t, da.Sum(), db.Sum())
			} else {
				assert.NotEqual(t, da.Sum(), db.Sum())
			}
		})
	}
}

func TestFingerprint_String(t *testing.T) {
	fp := domain.Fingerprint{Hi: 0xdead, Lo: 0xbeef}
	s := fp.String()
	assert.Len(t, s, 32)
	assert.Equal(t, "000000000000dead000000000000beef", s)
}

func TestHashKey_String(t *testing.T) {
	k1 := domain.HashKey{PlugID: 1, Context: domain.Fingerprint{Hi: 2}, Epoch: 3}
	k2 := domain.HashKey{PlugID: 1, Context: domain.Fingerprint{Hi: 2}, Epoch: 4}
	assert.NotEqual(t, k1.String(), k2.String(), "epoch must separate keys")
}
