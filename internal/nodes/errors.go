package nodes

import (
	"go.trai.ch/zerr"

	"go.trai.ch/weft/internal/core/domain"
)

// errUnknownOutput reports a compute request for an output the kind does not
// produce. It indicates a wiring bug, not bad user data.
func errUnknownOutput(out *domain.Plug) error {
	return zerr.With(domain.ErrPlugNotFound, "plug", out.FullName())
}
