package ports

import (
	"github.com/zclconf/go-cty/cty"

	"go.trai.ch/weft/internal/core/domain"
)

// ComputationCache is the process-wide memo table shared across all graph
// instances. Entries are immutable once inserted; invalidation happens by
// keys ceasing to be reachable, never by in-place mutation, so concurrent
// readers racing to fill the same miss may duplicate work but never corrupt
// state. Implementations must be safe for concurrent use. Absent entries
// are always recomputed, so any eviction policy satisfies the contract.
//
//go:generate go run go.uber.org/mock/mockgen -source=cache.go -destination=mocks/mock_cache.go -package=mocks
type ComputationCache interface {
	// Value returns the cached value for a fingerprint.
	Value(fp domain.Fingerprint) (cty.Value, bool)
	// SetValue stores a computed value under its fingerprint.
	SetValue(fp domain.Fingerprint, v cty.Value)
	// Fingerprint returns the memoised fingerprint for a hash key.
	Fingerprint(k domain.HashKey) (domain.Fingerprint, bool)
	// SetFingerprint memoises a computed fingerprint.
	SetFingerprint(k domain.HashKey, fp domain.Fingerprint)
}
