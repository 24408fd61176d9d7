package app

import (
	"context"

	"github.com/grindlemire/graft"

	"go.trai.ch/weft/internal/adapters/loader"
	"go.trai.ch/weft/internal/adapters/logger"
	"go.trai.ch/weft/internal/adapters/metadata"
	"go.trai.ch/weft/internal/adapters/metrics"
	"go.trai.ch/weft/internal/core/ports"
	"go.trai.ch/weft/internal/engine/eval"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components contains the initialized application components needed by the
// CLI layer.
type Components struct {
	App    *App
	Logger ports.Logger
}

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			loader.NodeID,
			logger.NodeID,
			metadata.NodeID,
			metrics.NodeID,
			eval.NodeID,
		},
		Run: func(ctx context.Context) (*App, error) {
			defs, err := graft.Dep[ports.DefinitionSource](ctx)
			if err != nil {
				return nil, err
			}
			engine, err := graft.Dep[*eval.Engine](ctx)
			if err != nil {
				return nil, err
			}
			meta, err := graft.Dep[ports.MetadataStore](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			m, err := graft.Dep[ports.Metrics](ctx)
			if err != nil {
				return nil, err
			}
			return New(defs, engine, meta, log, m), nil
		},
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			a, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return &Components{App: a, Logger: log}, nil
		},
	})
}
