package eval

import (
	"context"

	"github.com/grindlemire/graft"

	"go.trai.ch/weft/internal/adapters/memo"
	"go.trai.ch/weft/internal/adapters/metrics"
	"go.trai.ch/weft/internal/core/ports"
)

const NodeID graft.ID = "engine.evaluator"

func init() {
	graft.Register(graft.Node[*Engine]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			memo.NodeID,
			metrics.NodeID,
		},
		Run: func(ctx context.Context) (*Engine, error) {
			cache, err := graft.Dep[ports.ComputationCache](ctx)
			if err != nil {
				return nil, err
			}
			m, err := graft.Dep[ports.Metrics](ctx)
			if err != nil {
				return nil, err
			}
			return New(cache, m), nil
		},
	})
}
