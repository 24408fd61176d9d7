package domain

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/zclconf/go-cty/cty"
)

// Fingerprint is a 128-bit content hash summarising everything that can
// influence one (plug, context) result. It doubles as the computation cache
// key and as the change-detection signature: equal inputs must yield equal
// fingerprints, and distinct inputs must collide only with cryptographically
// negligible probability.
type Fingerprint struct {
	Hi uint64
	Lo uint64
}

// ZeroFingerprint is the fingerprint of nothing. It is never produced by a
// Digest and can be used as a sentinel.
var ZeroFingerprint Fingerprint

// IsZero reports whether f is the zero fingerprint.
func (f Fingerprint) IsZero() bool {
	return f == ZeroFingerprint
}

// String returns the fingerprint as 32 lowercase hex characters.
func (f Fingerprint) String() string {
	return fmt.Sprintf("%016x%016x", f.Hi, f.Lo)
}

// loLaneSalt differentiates the low lane from the high lane so the two
// xxhash64 sums are independent.
var loLaneSalt = [8]byte{'w', 'e', 'f', 't', 0x00, 0xd1, 0x6e, 0x57}

// Digest accumulates data into a Fingerprint. It streams every write into
// two xxhash64 lanes, the second one salted, and separates writes with a
// zero byte so that adjacent fields cannot alias each other.
type Digest struct {
	hi *xxhash.Digest
	lo *xxhash.Digest
}

// NewDigest creates an empty Digest.
func NewDigest() *Digest {
	d := &Digest{
		hi: xxhash.New(),
		lo: xxhash.New(),
	}
	_, _ = d.lo.Write(loLaneSalt[:])
	return d
}

func (d *Digest) write(b []byte) {
	_, _ = d.hi.Write(b)
	_, _ = d.lo.Write(b)
}

// WriteString appends s to the digest.
func (d *Digest) WriteString(s string) {
	_, _ = d.hi.WriteString(s)
	_, _ = d.lo.WriteString(s)
	d.write([]byte{0})
}

// WriteUint64 appends v to the digest.
func (d *Digest) WriteUint64(v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	d.write(b[:])
	d.write([]byte{0})
}

// WriteFingerprint appends another fingerprint to the digest.
func (d *Digest) WriteFingerprint(f Fingerprint) {
	var b [16]byte
	binary.LittleEndian.PutUint64(b[:8], f.Hi)
	binary.LittleEndian.PutUint64(b[8:], f.Lo)
	d.write(b[:])
	d.write([]byte{0})
}

// WriteValue appends a typed value to the digest using its canonical
// textual representation, which encodes both the type and the value.
func (d *Digest) WriteValue(v cty.Value) {
	if v == cty.NilVal {
		d.WriteString("~nil")
		return
	}
	d.WriteString(v.GoString())
}

// Sum returns the fingerprint of everything written so far. The digest
// remains usable afterwards.
func (d *Digest) Sum() Fingerprint {
	return Fingerprint{Hi: d.hi.Sum64(), Lo: d.lo.Sum64()}
}

// HashKey identifies one memoised fingerprint computation: a specific output
// plug, evaluated in a specific context, at a specific dirty epoch. Bumping
// a plug's epoch makes every previously memoised key unreachable, which is
// how invalidation works without any active deletion.
type HashKey struct {
	PlugID  uint64
	Context Fingerprint
	Epoch   uint64
}

// String renders the key for adapters that want string cache keys.
func (k HashKey) String() string {
	return fmt.Sprintf("%d/%s/%d", k.PlugID, k.Context, k.Epoch)
}
