package loader

import (
	"context"

	"github.com/grindlemire/graft"

	"go.trai.ch/weft/internal/adapters/logger"
	"go.trai.ch/weft/internal/adapters/metadata"
	"go.trai.ch/weft/internal/core/ports"
)

const NodeID graft.ID = "adapter.definition_source"

func init() {
	graft.Register(graft.Node[ports.DefinitionSource]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			logger.NodeID,
			metadata.NodeID,
		},
		Run: func(ctx context.Context) (ports.DefinitionSource, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			meta, err := graft.Dep[ports.MetadataStore](ctx)
			if err != nil {
				return nil, err
			}
			return New(FileResolver{}, log, meta), nil
		},
	})
}
