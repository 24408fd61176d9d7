package memo

import (
	"context"

	"github.com/grindlemire/graft"

	"go.trai.ch/weft/internal/core/ports"
)

const NodeID graft.ID = "adapter.computation_cache"

func init() {
	graft.Register(graft.Node[ports.ComputationCache]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.ComputationCache, error) {
			return NewCache(0)
		},
	})
}
